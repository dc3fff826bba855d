package battle_test

import (
	"testing"

	"github.com/KirkDiggler/battle-arena/internal/battle"
	mockdice "github.com/KirkDiggler/battle-arena/internal/dice/mock"
	"github.com/KirkDiggler/battle-arena/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rollNormal   = 50
	rollCritical = 91
)

func TestEffectivenessResolver_Multiplier(t *testing.T) {
	resolver := battle.NewEffectivenessResolver(testChart())

	tests := []struct {
		name      string
		attacking string
		defender  *entities.Creature
		want      float64
	}{
		{name: "single type super effective", attacking: "fire", defender: &entities.Creature{PrimaryType: "grass"}, want: 2.0},
		{name: "single type resisted", attacking: "fire", defender: &entities.Creature{PrimaryType: "water"}, want: 0.5},
		{name: "unknown pair is neutral", attacking: "fire", defender: &entities.Creature{PrimaryType: "normal"}, want: 1.0},
		{name: "unknown attacking type is neutral", attacking: "dragon", defender: &entities.Creature{PrimaryType: "grass"}, want: 1.0},
		{name: "immune", attacking: "electric", defender: &entities.Creature{PrimaryType: "ground"}, want: 0.0},
		{name: "dual type is product", attacking: "fire", defender: &entities.Creature{PrimaryType: "grass", SecondaryType: "water"}, want: 1.0},
		{name: "dual type with unknown secondary", attacking: "fire", defender: &entities.Creature{PrimaryType: "grass", SecondaryType: "poison"}, want: 2.0},
		{name: "dual type stacks", attacking: "ground", defender: &entities.Creature{PrimaryType: "poison", SecondaryType: "poison"}, want: 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Multiplier(tt.attacking, tt.defender))
			// repeated lookups are stable
			assert.Equal(t, tt.want, resolver.Multiplier(tt.attacking, tt.defender))
		})
	}
}

func TestDamageCalculator_Scenarios(t *testing.T) {
	neutralDefender := &entities.Creature{BaseDefense: 43, PrimaryType: "normal"}

	tests := []struct {
		name           string
		roll           int
		input          battle.DamageInput
		wantDamage     int
		wantCritical   bool
		wantSuperEffec bool
	}{
		{
			name:       "base case",
			roll:       rollNormal,
			input:      battle.DamageInput{Attacker: charmander(), Defender: neutralDefender, DefenderAction: entities.ActionAttack},
			wantDamage: 15, // floor(52*0.3)
		},
		{
			name:         "critical doubles",
			roll:         rollCritical,
			input:        battle.DamageInput{Attacker: charmander(), Defender: neutralDefender},
			wantDamage:   31, // floor(52*0.3*2)
			wantCritical: true,
		},
		{
			name:       "roll of exactly 90 is not critical",
			roll:       90,
			input:      battle.DamageInput{Attacker: charmander(), Defender: neutralDefender},
			wantDamage: 15,
		},
		{
			name:       "defending target subtracts a tenth of its defense",
			roll:       rollNormal,
			input:      battle.DamageInput{Attacker: charmander(), Defender: neutralDefender, DefenderAction: entities.ActionDefend},
			wantDamage: 11, // 15.6 - 4.3
		},
		{
			name:       "attack boost",
			roll:       rollNormal,
			input:      battle.DamageInput{Attacker: charmander(), Defender: neutralDefender, AttackBoosted: true},
			wantDamage: 23, // floor(15.6*1.5)
		},
		{
			name:       "defense boost",
			roll:       rollNormal,
			input:      battle.DamageInput{Attacker: charmander(), Defender: neutralDefender, DefenseBoosted: true},
			wantDamage: 7, // floor(15.6*0.5)
		},
		{
			name: "defense boost and defend stance both apply",
			roll: rollNormal,
			input: battle.DamageInput{
				Attacker: charmander(), Defender: neutralDefender,
				DefenseBoosted: true, DefenderAction: entities.ActionDefend,
			},
			wantDamage: 3, // floor(7.8 - 4.3)
		},
		{
			name:           "super effective",
			roll:           rollNormal,
			input:          battle.DamageInput{Attacker: charmander(), Defender: bulbasaur()},
			wantDamage:     31, // floor(15.6*2)
			wantSuperEffec: true,
		},
		{
			name: "floor of one when reduction exceeds damage",
			roll: rollNormal,
			input: battle.DamageInput{
				Attacker:       &entities.Creature{BaseAttack: 5, PrimaryType: "normal"},
				Defender:       &entities.Creature{BaseDefense: 230, PrimaryType: "normal"},
				DefenderAction: entities.ActionDefend,
			},
			wantDamage: 1,
		},
		{
			name: "immune target still takes one",
			roll: rollCritical,
			input: battle.DamageInput{
				Attacker: &entities.Creature{BaseAttack: 90, PrimaryType: "electric"},
				Defender: &entities.Creature{BaseDefense: 40, PrimaryType: "ground"},
			},
			wantDamage:   1,
			wantCritical: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls([]int{tt.roll})
			calc := battle.NewDamageCalculator(battle.NewEffectivenessResolver(testChart()), roller)

			input := tt.input
			result, err := calc.Calculate(&input)

			require.NoError(t, err)
			assert.Equal(t, tt.wantDamage, result.Damage)
			assert.Equal(t, tt.wantCritical, result.IsCritical)
			assert.Equal(t, tt.wantSuperEffec, result.IsSuperEffective)
		})
	}
}

func TestDamageCalculator_NeverBelowOne(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	calc := battle.NewDamageCalculator(battle.NewEffectivenessResolver(testChart()), roller)

	for attack := 0; attack <= 200; attack += 10 {
		for defense := 0; defense <= 250; defense += 25 {
			for _, roll := range []int{rollNormal, rollCritical} {
				roller.SetRolls([]int{roll})
				result, err := calc.Calculate(&battle.DamageInput{
					Attacker:       &entities.Creature{BaseAttack: attack, PrimaryType: "electric"},
					Defender:       &entities.Creature{BaseDefense: defense, PrimaryType: "ground"},
					DefenseBoosted: true,
					DefenderAction: entities.ActionDefend,
				})
				require.NoError(t, err)
				assert.GreaterOrEqual(t, result.Damage, battle.MinimumDamage)
			}
		}
	}
}

func TestDamageCalculator_RollerFailure(t *testing.T) {
	calc := battle.NewDamageCalculator(battle.NewEffectivenessResolver(testChart()), mockdice.NewManualMockRoller())

	_, err := calc.Calculate(&battle.DamageInput{Attacker: charmander(), Defender: bulbasaur()})

	assert.Error(t, err)
}

func TestOpponentSelector_SelectAction(t *testing.T) {
	tests := []struct {
		roll int
		want entities.Action
	}{
		{roll: 1, want: entities.ActionAttack},
		{roll: 75, want: entities.ActionAttack},
		{roll: 76, want: entities.ActionDefend},
		{roll: 100, want: entities.ActionDefend},
	}

	for _, tt := range tests {
		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{tt.roll})
		selector := battle.NewOpponentSelector(roller)

		action, err := selector.SelectAction()

		require.NoError(t, err)
		assert.Equal(t, tt.want, action, "roll %d", tt.roll)
	}
}
