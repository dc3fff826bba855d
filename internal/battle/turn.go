package battle

import (
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/battle-arena/internal/entities"
)

// TurnResult is the outcome of one resolved action
type TurnResult struct {
	Turn           *entities.Turn
	BattleComplete bool
	WinnerID       string
	LoserID        string
	Damage         int
	NewHP          int // target's HP after the action
}

// TurnProcessor resolves one side's action against a battle
type TurnProcessor struct {
	calculator *DamageCalculator
	now        func() time.Time
}

// NewTurnProcessor creates a processor. now stamps turn records and completion.
func NewTurnProcessor(calculator *DamageCalculator, now func() time.Time) *TurnProcessor {
	if calculator == nil {
		panic("damage calculator is required")
	}
	if now == nil {
		now = time.Now
	}
	return &TurnProcessor{
		calculator: calculator,
		now:        now,
	}
}

// Process validates and applies playerID's action. Nothing is mutated when an
// error is returned. Win/loss counters are left to the caller via the result.
func (p *TurnProcessor) Process(b *entities.Battle, playerID string, action entities.Action) (*TurnResult, error) {
	if !action.Valid() {
		return nil, ErrInvalidAction
	}
	if !b.IsActive() {
		return nil, ErrBattleNotActive
	}
	actor := b.Side(playerID)
	if actor == nil {
		return nil, ErrNotParticipant
	}
	if !b.IsPlayerTurn(playerID) {
		return nil, ErrNotYourTurn
	}
	target := b.Opponent(playerID)

	damage := &DamageResult{}
	if action == entities.ActionAttack {
		var err error
		damage, err = p.calculator.Calculate(&DamageInput{
			Attacker:       actor.Creature,
			Defender:       target.Creature,
			AttackBoosted:  actor.AttackBoosted(),
			DefenseBoosted: target.DefenseBoosted(),
			DefenderAction: target.Stance,
		})
		if err != nil {
			return nil, err
		}
	}

	target.SetHP(target.CurrentHP - damage.Damage)
	actor.Stance = action

	now := p.now()
	turn := &entities.Turn{
		TurnNumber:       b.TurnNumber,
		PlayerID:         actor.PlayerID,
		Action:           action,
		Damage:           damage.Damage,
		IsCritical:       damage.IsCritical,
		IsSuperEffective: damage.IsSuperEffective,
		Message:          narrate(actor.Username, action, damage),
		CreatedAt:        now,
	}
	b.Turns = append(b.Turns, turn)

	result := &TurnResult{
		Turn:   turn,
		Damage: damage.Damage,
		NewHP:  target.CurrentHP,
	}

	if target.CurrentHP == 0 {
		b.Complete(actor.PlayerID, now)
		result.BattleComplete = true
		result.WinnerID = actor.PlayerID
		result.LoserID = target.PlayerID
		return result, nil
	}

	b.HandOver(actor.PlayerID)
	for _, side := range b.Sides {
		side.DecayBoosts()
	}

	return result, nil
}

func narrate(name string, action entities.Action, damage *DamageResult) string {
	if action == entities.ActionDefend {
		return fmt.Sprintf("%s chose to defend!", name)
	}

	parts := []string{fmt.Sprintf("%s attacks!", name)}
	if damage.IsCritical {
		parts = append(parts, "Critical hit!")
	}
	if damage.IsSuperEffective {
		parts = append(parts, "It's super effective!")
	}
	parts = append(parts, fmt.Sprintf("Dealt %d damage.", damage.Damage))

	return strings.Join(parts, " ")
}
