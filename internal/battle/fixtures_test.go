package battle_test

import (
	"time"

	"github.com/KirkDiggler/battle-arena/internal/battle"
	mockdice "github.com/KirkDiggler/battle-arena/internal/dice/mock"
	"github.com/KirkDiggler/battle-arena/internal/entities"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func charmander() *entities.Creature {
	return &entities.Creature{
		Key: "charmander", Name: "Charmander",
		BaseHP: 39, BaseAttack: 52, BaseDefense: 43, BaseSpeed: 65,
		PrimaryType: "fire",
	}
}

func bulbasaur() *entities.Creature {
	return &entities.Creature{
		Key: "bulbasaur", Name: "Bulbasaur",
		BaseHP: 45, BaseAttack: 49, BaseDefense: 43, BaseSpeed: 45,
		PrimaryType: "grass", SecondaryType: "poison",
	}
}

func testChart() entities.TypeChart {
	chart := entities.TypeChart{}
	chart.Set("fire", "grass", entities.SuperEffective)
	chart.Set("fire", "water", entities.NotVeryEffective)
	chart.Set("grass", "fire", entities.NotVeryEffective)
	chart.Set("poison", "grass", entities.SuperEffective)
	chart.Set("ground", "poison", entities.SuperEffective)
	chart.Set("electric", "ground", entities.NoEffect)
	return chart
}

// newTestBattle pits ash (attacker) against gary; both neutral to each other
func newTestBattle(ashCreature, garyCreature *entities.Creature) *entities.Battle {
	return &entities.Battle{
		ID: "battle-1",
		Sides: [2]*entities.BattleSide{
			{
				PlayerID:  "ash",
				Username:  "Ash",
				Creature:  ashCreature,
				CurrentHP: ashCreature.BaseHP,
				Inventory: entities.DefaultInventory(),
			},
			{
				PlayerID:  "gary",
				Username:  "Gary",
				IsAI:      true,
				Creature:  garyCreature,
				CurrentHP: garyCreature.BaseHP,
				Inventory: entities.DefaultInventory(),
			},
		},
		Status:              entities.BattleStatusActive,
		TurnNumber:          1,
		CurrentTurnPlayerID: "ash",
		CreatedAt:           fixedNow,
	}
}

func newProcessor(chart entities.TypeChart, roller *mockdice.ManualMockRoller) *battle.TurnProcessor {
	calc := battle.NewDamageCalculator(battle.NewEffectivenessResolver(chart), roller)
	return battle.NewTurnProcessor(calc, func() time.Time { return fixedNow })
}
