package battle

import (
	"github.com/KirkDiggler/battle-arena/internal/dice"
	"github.com/KirkDiggler/battle-arena/internal/entities"
)

// AttackChancePercent is how often the automatic side attacks rather than defends
const AttackChancePercent = 75

// OpponentSelector picks actions for the automatically played side
type OpponentSelector struct {
	roller dice.Roller
}

// NewOpponentSelector creates a selector drawing from roller
func NewOpponentSelector(roller dice.Roller) *OpponentSelector {
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	return &OpponentSelector{roller: roller}
}

// SelectAction returns attack 75% of the time, defend otherwise
func (s *OpponentSelector) SelectAction() (entities.Action, error) {
	roll, err := dice.Percent(s.roller)
	if err != nil {
		return "", err
	}
	if roll <= AttackChancePercent {
		return entities.ActionAttack, nil
	}
	return entities.ActionDefend, nil
}
