package testutils

import (
	"time"

	"github.com/KirkDiggler/battle-arena/internal/entities"
)

// CreateTestCreature creates a single-typed creature template
func CreateTestCreature(key string, hp, attack, defense, speed int, primaryType string) *entities.Creature {
	return &entities.Creature{
		Key:         key,
		Name:        key,
		BaseHP:      hp,
		BaseAttack:  attack,
		BaseDefense: defense,
		BaseSpeed:   speed,
		PrimaryType: primaryType,
	}
}

// CreateTestPlayer creates a player owning one active creature
func CreateTestPlayer(id, username, creatureKey string) *entities.Player {
	owned := &entities.OwnedCreature{
		ID:          id + "-" + creatureKey,
		PlayerID:    id,
		CreatureKey: creatureKey,
	}
	return &entities.Player{
		ID:               id,
		Username:         username,
		Creatures:        []*entities.OwnedCreature{owned},
		ActiveCreatureID: owned.ID,
		CreatedAt:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// CreateTestBattle creates an active battle where the first player moves first
func CreateTestBattle(id string, first, second *entities.Player, firstCreature, secondCreature *entities.Creature) *entities.Battle {
	side := func(p *entities.Player, c *entities.Creature) *entities.BattleSide {
		return &entities.BattleSide{
			PlayerID:        p.ID,
			Username:        p.Username,
			IsAI:            p.IsAI,
			OwnedCreatureID: p.ActiveCreatureID,
			Creature:        c,
			CurrentHP:       c.MaxHP(),
			Inventory:       entities.DefaultInventory(),
		}
	}

	return &entities.Battle{
		ID:                  id,
		Sides:               [2]*entities.BattleSide{side(first, firstCreature), side(second, secondCreature)},
		Status:              entities.BattleStatusActive,
		TurnNumber:          1,
		CurrentTurnPlayerID: first.ID,
		CreatedAt:           time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
