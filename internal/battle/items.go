package battle

import (
	"fmt"

	"github.com/KirkDiggler/battle-arena/internal/entities"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
)

// ItemType identifies a consumable
type ItemType string

const (
	ItemPotion   ItemType = "potion"
	ItemXAttack  ItemType = "x-attack"
	ItemXDefense ItemType = "x-defense"
)

const (
	PotionHealAmount = 50
	BoostTurns       = 2
)

// AllItemTypes lists every usable item in display order
var AllItemTypes = []ItemType{ItemPotion, ItemXAttack, ItemXDefense}

// ParseItemType validates a raw item name
func ParseItemType(raw string) (ItemType, error) {
	item := ItemType(raw)
	if _, ok := itemHandlers[item]; !ok {
		return "", dnderr.Wrapf(ErrInvalidItemType, "unknown item %q", raw)
	}
	return item, nil
}

// ItemResult reports what an item did
type ItemResult struct {
	Item                ItemType
	Message             string
	HPRestored          int
	NewHP               int
	BoostTurnsRemaining int
}

type itemHandler struct {
	validate func(side *entities.BattleSide) error
	apply    func(side *entities.BattleSide) *ItemResult
}

var itemHandlers = map[ItemType]itemHandler{
	ItemPotion: {
		validate: func(side *entities.BattleSide) error {
			if side.Inventory.Potions <= 0 {
				return ErrNoPotionRemaining
			}
			return nil
		},
		apply: func(side *entities.BattleSide) *ItemResult {
			side.Inventory.Potions--
			before := side.CurrentHP
			side.SetHP(before + PotionHealAmount)
			restored := side.CurrentHP - before
			return &ItemResult{
				Item:       ItemPotion,
				Message:    fmt.Sprintf("Used Potion! Restored %d HP.", restored),
				HPRestored: restored,
				NewHP:      side.CurrentHP,
			}
		},
	},
	ItemXAttack: {
		validate: func(side *entities.BattleSide) error {
			if side.Inventory.XAttack <= 0 {
				return ErrNoXAttackRemaining
			}
			return nil
		},
		apply: func(side *entities.BattleSide) *ItemResult {
			side.Inventory.XAttack--
			side.AttackBoostTurns = BoostTurns
			return &ItemResult{
				Item:                ItemXAttack,
				Message:             fmt.Sprintf("Used X-Attack! Attack boosted by 50%% for %d turns.", BoostTurns),
				NewHP:               side.CurrentHP,
				BoostTurnsRemaining: BoostTurns,
			}
		},
	},
	ItemXDefense: {
		validate: func(side *entities.BattleSide) error {
			if side.Inventory.XDefense <= 0 {
				return ErrNoXDefenseRemaining
			}
			return nil
		},
		apply: func(side *entities.BattleSide) *ItemResult {
			side.Inventory.XDefense--
			side.DefenseBoostTurns = BoostTurns
			return &ItemResult{
				Item:                ItemXDefense,
				Message:             fmt.Sprintf("Used X-Defense! Defense boosted for %d turns.", BoostTurns),
				NewHP:               side.CurrentHP,
				BoostTurnsRemaining: BoostTurns,
			}
		},
	},
}

// UseItem consumes one charge of item from the player's side and applies it.
// Using an item replaces the side's action, so any defend stance is dropped.
// Turn handover is the caller's job.
func UseItem(b *entities.Battle, playerID string, item ItemType) (*ItemResult, error) {
	handler, ok := itemHandlers[item]
	if !ok {
		return nil, dnderr.Wrapf(ErrInvalidItemType, "unknown item %q", item)
	}

	side := b.Side(playerID)
	if side == nil {
		return nil, ErrNotParticipant
	}

	if err := handler.validate(side); err != nil {
		return nil, err
	}

	result := handler.apply(side)
	side.Stance = ""
	return result, nil
}
