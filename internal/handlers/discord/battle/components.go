package battle

import (
	"fmt"
	"strings"

	engine "github.com/KirkDiggler/battle-arena/internal/battle"
	"github.com/KirkDiggler/battle-arena/internal/entities"
	"github.com/bwmarrin/discordgo"
)

// CustomIDPrefix marks components routed to this package
const CustomIDPrefix = "battle:"

// customID encodes "battle:<verb>:<battleID>" or "battle:item:<item>:<battleID>"
func customID(parts ...string) string {
	return CustomIDPrefix + strings.Join(parts, ":")
}

// parseCustomID reverses customID into a request
func parseCustomID(id string) (*Request, error) {
	if !strings.HasPrefix(id, CustomIDPrefix) {
		return nil, fmt.Errorf("not a battle component: %q", id)
	}
	parts := strings.Split(strings.TrimPrefix(id, CustomIDPrefix), ":")

	switch {
	case len(parts) == 2 && (parts[0] == SubcommandAttack || parts[0] == SubcommandDefend || parts[0] == SubcommandStatus):
		return &Request{Subcommand: parts[0], BattleID: parts[1]}, nil
	case len(parts) == 3 && parts[0] == SubcommandItem:
		return &Request{Subcommand: SubcommandItem, BattleID: parts[2], Options: map[string]string{"item": parts[1]}}, nil
	default:
		return nil, fmt.Errorf("malformed battle component: %q", id)
	}
}

// buildBattleComponents renders the action buttons for the viewer's side.
// A finished battle gets no buttons.
func buildBattleComponents(b *entities.Battle, viewerID string) []discordgo.MessageComponent {
	if !b.IsActive() {
		return []discordgo.MessageComponent{}
	}
	side := b.Side(viewerID)
	if side == nil || side.IsAI {
		return []discordgo.MessageComponent{}
	}

	actions := discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Attack",
			Style:    discordgo.DangerButton,
			CustomID: customID(SubcommandAttack, b.ID),
			Emoji:    &discordgo.ComponentEmoji{Name: "⚔️"},
		},
		discordgo.Button{
			Label:    "Defend",
			Style:    discordgo.PrimaryButton,
			CustomID: customID(SubcommandDefend, b.ID),
			Emoji:    &discordgo.ComponentEmoji{Name: "🛡️"},
		},
		discordgo.Button{
			Label:    "Refresh",
			Style:    discordgo.SecondaryButton,
			CustomID: customID(SubcommandStatus, b.ID),
		},
	}}

	counts := map[engine.ItemType]int{
		engine.ItemPotion:   side.Inventory.Potions,
		engine.ItemXAttack:  side.Inventory.XAttack,
		engine.ItemXDefense: side.Inventory.XDefense,
	}
	items := discordgo.ActionsRow{}
	for _, item := range engine.AllItemTypes {
		items.Components = append(items.Components, discordgo.Button{
			Label:    fmt.Sprintf("%s (%d)", itemLabel(item), counts[item]),
			Style:    discordgo.SuccessButton,
			CustomID: customID(SubcommandItem, string(item), b.ID),
			Disabled: counts[item] == 0,
		})
	}

	return []discordgo.MessageComponent{actions, items}
}

func itemLabel(item engine.ItemType) string {
	switch item {
	case engine.ItemPotion:
		return "Potion"
	case engine.ItemXAttack:
		return "X-Attack"
	case engine.ItemXDefense:
		return "X-Defense"
	default:
		return string(item)
	}
}
