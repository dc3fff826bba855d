package entities

import (
	"math"
	"time"
)

// Player is a contestant. Automatic opponents are players with IsAI set.
type Player struct {
	ID               string           `json:"id"`
	Username         string           `json:"username"`
	IsAI             bool             `json:"is_ai"`
	Wins             int              `json:"wins"`
	Losses           int              `json:"losses"`
	Creatures        []*OwnedCreature `json:"creatures"`
	ActiveCreatureID string           `json:"active_creature_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// ActiveCreature returns the creature marked for battle, or nil
func (p *Player) ActiveCreature() *OwnedCreature {
	if p.ActiveCreatureID == "" {
		return nil
	}
	return p.FindCreature(p.ActiveCreatureID)
}

// FindCreature returns the owned creature with the given id, or nil
func (p *Player) FindCreature(id string) *OwnedCreature {
	for _, c := range p.Creatures {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// FindCreatureByKey returns the owned instance of a catalog creature, or nil
func (p *Player) FindCreatureByKey(key string) *OwnedCreature {
	for _, c := range p.Creatures {
		if c.CreatureKey == key {
			return c
		}
	}
	return nil
}

// WinRate is the percentage of finished battles won, rounded to two
// decimals; zero before the first battle
func (p *Player) WinRate() float64 {
	total := p.Wins + p.Losses
	if total == 0 {
		return 0
	}
	return math.Round(float64(p.Wins)/float64(total)*10000) / 100
}

// Clone returns a deep copy
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Creatures != nil {
		clone.Creatures = make([]*OwnedCreature, len(p.Creatures))
		for i, c := range p.Creatures {
			cc := *c
			clone.Creatures[i] = &cc
		}
	}
	return &clone
}
