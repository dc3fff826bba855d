package battle

import (
	engine "github.com/KirkDiggler/battle-arena/internal/battle"
	"github.com/bwmarrin/discordgo"
)

// CommandName is the slash command this package serves
const CommandName = "battle"

// Subcommands of /battle
const (
	SubcommandStart   = "start"
	SubcommandAttack  = "attack"
	SubcommandDefend  = "defend"
	SubcommandItem    = "item"
	SubcommandStatus  = "status"
	SubcommandStarter = "starter"
	SubcommandRoster  = "roster"
	SubcommandProfile = "profile"
)

// Command returns the /battle definition to register with Discord
func Command() *discordgo.ApplicationCommand {
	itemChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(engine.AllItemTypes))
	for _, item := range engine.AllItemTypes {
		itemChoices = append(itemChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  itemLabel(item),
			Value: string(item),
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        CommandName,
		Description: "Pokémon battles",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        SubcommandStart,
				Description: "Start a battle against another trainer or the AI",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "opponent",
						Description: "Trainer to battle (random if omitted)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "pokemon",
						Description: "Pokémon to use for this battle only, e.g. pikachu",
						Required:    false,
					},
				},
			},
			{
				Name:        SubcommandAttack,
				Description: "Attack in your current battle",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        SubcommandDefend,
				Description: "Brace for the next incoming attack",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        SubcommandItem,
				Description: "Use an item instead of acting",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "item",
						Description: "Item to use",
						Required:    true,
						Choices:     itemChoices,
					},
				},
			},
			{
				Name:        SubcommandStatus,
				Description: "Show your current battle",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        SubcommandStarter,
				Description: "Choose your active Pokémon",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "pokemon",
						Description: "Pokémon name, e.g. pikachu",
						Required:    true,
					},
				},
			},
			{
				Name:        SubcommandRoster,
				Description: "List the Pokémon you can choose from",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        SubcommandProfile,
				Description: "Show your wins, losses and active Pokémon",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
		},
	}
}
