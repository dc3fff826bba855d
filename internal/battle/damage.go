package battle

import (
	"math"

	"github.com/KirkDiggler/battle-arena/internal/dice"
	"github.com/KirkDiggler/battle-arena/internal/entities"
)

const (
	BaseDamageFactor      = 0.3
	CriticalChancePercent = 10
	CriticalMultiplier    = 2.0
	AttackBoostMultiplier = 1.5
	DefenseBoostModifier  = 0.5
	DefendReductionFactor = 0.1
	MinimumDamage         = 1
)

// DamageInput describes one attack
type DamageInput struct {
	Attacker       *entities.Creature
	Defender       *entities.Creature
	AttackBoosted  bool
	DefenseBoosted bool
	// DefenderAction is the target's declared action; defend subtracts a flat reduction
	DefenderAction entities.Action
}

// DamageResult is the outcome of one attack
type DamageResult struct {
	Damage           int
	IsCritical       bool
	IsSuperEffective bool
	TypeMultiplier   float64
}

// DamageCalculator computes attack damage
type DamageCalculator struct {
	resolver *EffectivenessResolver
	roller   dice.Roller
}

// NewDamageCalculator creates a calculator. The roller decides critical hits.
func NewDamageCalculator(resolver *EffectivenessResolver, roller dice.Roller) *DamageCalculator {
	if resolver == nil {
		panic("effectiveness resolver is required")
	}
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	return &DamageCalculator{
		resolver: resolver,
		roller:   roller,
	}
}

// Calculate applies
//
//	max(1, floor(attack*0.3 * type * crit * atkBoost * defBoost - defendReduction))
//
// The only error source is the roller.
func (c *DamageCalculator) Calculate(in *DamageInput) (*DamageResult, error) {
	base := float64(in.Attacker.BaseAttack) * BaseDamageFactor
	typeMultiplier := c.resolver.Multiplier(in.Attacker.PrimaryType, in.Defender)

	roll, err := dice.Percent(c.roller)
	if err != nil {
		return nil, err
	}
	isCritical := roll > 100-CriticalChancePercent

	criticalMultiplier := 1.0
	if isCritical {
		criticalMultiplier = CriticalMultiplier
	}

	attackMultiplier := 1.0
	if in.AttackBoosted {
		attackMultiplier = AttackBoostMultiplier
	}

	defenseMultiplier := 1.0
	if in.DefenseBoosted {
		defenseMultiplier = DefenseBoostModifier
	}

	reduction := 0.0
	if in.DefenderAction == entities.ActionDefend {
		reduction = float64(in.Defender.BaseDefense) * DefendReductionFactor
	}

	raw := base * typeMultiplier * criticalMultiplier * attackMultiplier * defenseMultiplier
	damage := int(math.Floor(raw - reduction))
	if damage < MinimumDamage {
		damage = MinimumDamage
	}

	return &DamageResult{
		Damage:           damage,
		IsCritical:       isCritical,
		IsSuperEffective: typeMultiplier > 1.0,
		TypeMultiplier:   typeMultiplier,
	}, nil
}
