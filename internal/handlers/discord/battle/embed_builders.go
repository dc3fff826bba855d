package battle

import (
	"fmt"
	"strconv"
	"strings"

	engine "github.com/KirkDiggler/battle-arena/internal/battle"
	"github.com/KirkDiggler/battle-arena/internal/entities"
	battleService "github.com/KirkDiggler/battle-arena/internal/services/battle"
	playerService "github.com/KirkDiggler/battle-arena/internal/services/player"
	"github.com/bwmarrin/discordgo"
)

const (
	colorActive   = 0x3498db
	colorFinished = 0xf1c40f
	colorItem     = 0x2ecc71

	hpBarWidth = 10
	// recentTurns is how much history the status embed shows
	recentTurns = 5
)

// buildBattleEmbed shows both sides; the viewer also sees their inventory
func buildBattleEmbed(b *entities.Battle, viewerID string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("⚔️ %s vs %s", b.Sides[0].Username, b.Sides[1].Username),
		Color:  colorActive,
		Fields: []*discordgo.MessageEmbedField{},
	}

	for _, side := range b.Sides {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s's %s", side.Username, side.Creature.Name),
			Value:  sideSummary(side, side.PlayerID == viewerID),
			Inline: true,
		})
	}

	if viewer := b.Side(viewerID); viewer != nil && viewer.Creature.SpriteURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: viewer.Creature.SpriteURL}
	}

	switch b.Status {
	case entities.BattleStatusCompleted:
		embed.Color = colorFinished
		winner := b.Side(b.WinnerID)
		if winner != nil {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("🏆 %s wins after %d turns", winner.Username, len(b.Turns))}
		}
	case entities.BattleStatusActive:
		next := b.Side(b.CurrentTurnPlayerID)
		text := fmt.Sprintf("Turn %d", b.TurnNumber)
		if next != nil {
			text += fmt.Sprintf(" · %s to move", next.Username)
		}
		embed.Footer = &discordgo.MessageEmbedFooter{Text: text}
	}

	return embed
}

func sideSummary(side *entities.BattleSide, showInventory bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s **%d/%d HP**\n", hpBar(side.CurrentHP, side.MaxHP()), side.CurrentHP, side.MaxHP()))
	sb.WriteString(typeLine(side.Creature))

	if side.AttackBoosted() {
		sb.WriteString(fmt.Sprintf("\n⬆️ Attack boosted (%d)", side.AttackBoostTurns))
	}
	if side.DefenseBoosted() {
		sb.WriteString(fmt.Sprintf("\n🛡️ Defense boosted (%d)", side.DefenseBoostTurns))
	}
	if side.Stance == entities.ActionDefend {
		sb.WriteString("\n🧱 Defending")
	}
	if showInventory {
		sb.WriteString(fmt.Sprintf("\n🎒 Potion ×%d · X-Attack ×%d · X-Defense ×%d",
			side.Inventory.Potions, side.Inventory.XAttack, side.Inventory.XDefense))
	}

	return sb.String()
}

func typeLine(c *entities.Creature) string {
	if c.SecondaryType == "" {
		return fmt.Sprintf("Type: %s", c.PrimaryType)
	}
	return fmt.Sprintf("Type: %s/%s", c.PrimaryType, c.SecondaryType)
}

// hpBar renders a fixed-width bar; any HP left shows at least one block
func hpBar(current, maxHP int) string {
	if maxHP <= 0 {
		return strings.Repeat("⬛", hpBarWidth)
	}
	filled := current * hpBarWidth / maxHP
	if current > 0 && filled == 0 {
		filled = 1
	}

	block := "🟩"
	switch {
	case current*4 <= maxHP:
		block = "🟥"
	case current*2 <= maxHP:
		block = "🟨"
	}

	return strings.Repeat(block, filled) + strings.Repeat("⬛", hpBarWidth-filled)
}

// buildStatusEmbed adds the most recent turn history to the battle view
func buildStatusEmbed(b *entities.Battle, viewerID string) *discordgo.MessageEmbed {
	embed := buildBattleEmbed(b, viewerID)

	turns := b.Turns
	if len(turns) > recentTurns {
		turns = turns[len(turns)-recentTurns:]
	}
	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		lines = append(lines, fmt.Sprintf("`%d` %s", turn.TurnNumber, turn.Message))
	}
	if len(lines) == 0 {
		lines = append(lines, "No turns yet.")
	}
	embed.Description = strings.Join(lines, "\n")

	return embed
}

// buildExchangeEmbed narrates everything one submission resolved
func buildExchangeEmbed(outcome *battleService.TurnOutcome, viewerID string) *discordgo.MessageEmbed {
	embed := buildBattleEmbed(outcome.Battle, viewerID)
	embed.Description = strings.Join(narration(outcome.Owed, outcome.Result, outcome.Counter), "\n")
	return embed
}

// buildItemEmbed reports an item use, or the owed action that ended the battle first
func buildItemEmbed(outcome *battleService.ItemOutcome, viewerID string) *discordgo.MessageEmbed {
	embed := buildBattleEmbed(outcome.Battle, viewerID)

	lines := narration(outcome.Owed)
	if outcome.Success {
		lines = append(lines, "🎒 "+outcome.Message)
		if outcome.Battle.IsActive() {
			embed.Color = colorItem
		}
	} else if outcome.Message != "" {
		lines = append(lines, outcome.Message)
	}
	embed.Description = strings.Join(lines, "\n")

	return embed
}

func narration(results ...*engine.TurnResult) []string {
	lines := make([]string, 0, len(results))
	for _, result := range results {
		if result == nil {
			continue
		}
		line := result.Turn.Message
		if result.BattleComplete {
			line += " 💀"
		}
		lines = append(lines, line)
	}
	return lines
}

// buildRosterEmbed lists catalog creatures; Discord caps embeds at 25 fields
func buildRosterEmbed(creatures []*entities.Creature) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📖 Available Pokémon",
		Description: "Pick one with `/battle starter pokemon:<name>`",
		Color:       colorActive,
	}

	const maxFields = 25
	for i, c := range creatures {
		if i == maxFields {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("…and %d more", len(creatures)-maxFields)}
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("#%03d %s", c.PokedexNumber, c.Name),
			Value:  fmt.Sprintf("`%s` · %s\nHP %d · Atk %d · Def %d · Spe %d", c.Key, typeLine(c), c.BaseHP, c.BaseAttack, c.BaseDefense, c.BaseSpeed),
			Inline: true,
		})
	}

	return embed
}

func buildProfileEmbed(profile *playerService.Profile) *discordgo.MessageEmbed {
	active := "None, pick one with `/battle starter`"
	if c := profile.ActiveCreature; c != nil {
		active = fmt.Sprintf("%s (%s)", c.Name, typeLine(c))
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🏆 %s", profile.Player.Username),
		Color: colorActive,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Wins", Value: strconv.Itoa(profile.Player.Wins), Inline: true},
			{Name: "Losses", Value: strconv.Itoa(profile.Player.Losses), Inline: true},
			{Name: "Win rate", Value: strconv.FormatFloat(profile.WinRate, 'f', -1, 64) + "%", Inline: true},
			{Name: "Active Pokémon", Value: active},
		},
	}
}
