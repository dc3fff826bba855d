package entities

import "time"

// BattleStatus represents the lifecycle state of a battle
type BattleStatus string

const (
	BattleStatusPending   BattleStatus = "pending"
	BattleStatusActive    BattleStatus = "active"    // Accepting turns
	BattleStatusCompleted BattleStatus = "completed" // One side reached 0 HP
	BattleStatusCancelled BattleStatus = "cancelled"
)

// Action is what a side does with its turn
type Action string

const (
	ActionAttack Action = "attack"
	ActionDefend Action = "defend"
)

// Valid reports whether the action is one a side may submit
func (a Action) Valid() bool {
	return a == ActionAttack || a == ActionDefend
}

// Default battle inventory per side
const (
	DefaultPotions  = 2
	DefaultXAttack  = 1
	DefaultXDefense = 1
)

// Inventory holds a side's consumable charges
type Inventory struct {
	Potions  int `json:"potions"`
	XAttack  int `json:"x_attack"`
	XDefense int `json:"x_defense"`
}

// DefaultInventory is what every side starts a battle with
func DefaultInventory() Inventory {
	return Inventory{
		Potions:  DefaultPotions,
		XAttack:  DefaultXAttack,
		XDefense: DefaultXDefense,
	}
}

// BattleSide is one participant's state within a battle
type BattleSide struct {
	PlayerID          string    `json:"player_id"`
	Username          string    `json:"username"`
	IsAI              bool      `json:"is_ai"`
	OwnedCreatureID   string    `json:"owned_creature_id"`
	Creature          *Creature `json:"creature"` // snapshot of the template at creation
	CurrentHP         int       `json:"current_hp"`
	Inventory         Inventory `json:"inventory"`
	AttackBoostTurns  int       `json:"attack_boost_turns"`
	DefenseBoostTurns int       `json:"defense_boost_turns"`
	Stance            Action    `json:"stance,omitempty"` // last declared action; empty after an item
}

// MaxHP is the side's health cap
func (s *BattleSide) MaxHP() int {
	return s.Creature.MaxHP()
}

// SetHP clamps hp to [0, MaxHP]
func (s *BattleSide) SetHP(hp int) {
	if hp < 0 {
		hp = 0
	}
	if limit := s.MaxHP(); hp > limit {
		hp = limit
	}
	s.CurrentHP = hp
}

// AttackBoosted reports whether the attack multiplier applies
func (s *BattleSide) AttackBoosted() bool {
	return s.AttackBoostTurns > 0
}

// DefenseBoosted reports whether the defense multiplier applies
func (s *BattleSide) DefenseBoosted() bool {
	return s.DefenseBoostTurns > 0
}

// DecayBoosts counts down any active boost by one resolved turn
func (s *BattleSide) DecayBoosts() {
	if s.AttackBoostTurns > 0 {
		s.AttackBoostTurns--
	}
	if s.DefenseBoostTurns > 0 {
		s.DefenseBoostTurns--
	}
}

// Turn is an append-only record of one resolved action
type Turn struct {
	TurnNumber       int       `json:"turn_number"`
	PlayerID         string    `json:"player_id"`
	Action           Action    `json:"action"`
	Damage           int       `json:"damage"`
	IsCritical       bool      `json:"is_critical"`
	IsSuperEffective bool      `json:"is_super_effective"`
	Message          string    `json:"message"`
	CreatedAt        time.Time `json:"created_at"`
}

// Battle is the mutable record of one match between two sides
type Battle struct {
	ID                  string         `json:"id"`
	Sides               [2]*BattleSide `json:"sides"`
	Status              BattleStatus   `json:"status"`
	WinnerID            string         `json:"winner_id,omitempty"`
	TurnNumber          int            `json:"turn_number"`
	CurrentTurnPlayerID string         `json:"current_turn_player_id"`
	// PendingAutoTurn is set when control passed to a side whose automatic
	// action has not been resolved yet (item handover, faster opponent).
	PendingAutoTurn bool       `json:"pending_auto_turn"`
	Turns           []*Turn    `json:"turns"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// SideIndex returns 0 or 1 for a participant, -1 otherwise
func (b *Battle) SideIndex(playerID string) int {
	for i, side := range b.Sides {
		if side != nil && side.PlayerID == playerID {
			return i
		}
	}
	return -1
}

// IsParticipant reports whether the player is one of the two sides
func (b *Battle) IsParticipant(playerID string) bool {
	return b.SideIndex(playerID) >= 0
}

// Side returns the participant's side, or nil
func (b *Battle) Side(playerID string) *BattleSide {
	idx := b.SideIndex(playerID)
	if idx < 0 {
		return nil
	}
	return b.Sides[idx]
}

// Opponent returns the other participant's side, or nil
func (b *Battle) Opponent(playerID string) *BattleSide {
	idx := b.SideIndex(playerID)
	if idx < 0 {
		return nil
	}
	return b.Sides[1-idx]
}

// IsActive reports whether the battle accepts turns
func (b *Battle) IsActive() bool {
	return b.Status == BattleStatusActive
}

// IsPlayerTurn reports whether the player must act next
func (b *Battle) IsPlayerTurn(playerID string) bool {
	return b.CurrentTurnPlayerID == playerID
}

// HandOver advances the turn counter and gives control to the other side
func (b *Battle) HandOver(fromPlayerID string) {
	b.TurnNumber++
	if opponent := b.Opponent(fromPlayerID); opponent != nil {
		b.CurrentTurnPlayerID = opponent.PlayerID
	}
}

// Complete freezes the battle with a winner
func (b *Battle) Complete(winnerID string, at time.Time) {
	b.Status = BattleStatusCompleted
	b.WinnerID = winnerID
	b.PendingAutoTurn = false
	b.CompletedAt = &at
}

// Clone returns a deep copy so callers can mutate without touching stored state
func (b *Battle) Clone() *Battle {
	if b == nil {
		return nil
	}
	clone := *b
	for i, side := range b.Sides {
		if side == nil {
			continue
		}
		sc := *side
		if side.Creature != nil {
			cc := *side.Creature
			sc.Creature = &cc
		}
		clone.Sides[i] = &sc
	}
	if b.Turns != nil {
		clone.Turns = make([]*Turn, len(b.Turns))
		for i, t := range b.Turns {
			tc := *t
			clone.Turns[i] = &tc
		}
	}
	if b.CompletedAt != nil {
		at := *b.CompletedAt
		clone.CompletedAt = &at
	}
	return &clone
}
