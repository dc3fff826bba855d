package discord

import (
	"log"
	"strings"

	"github.com/KirkDiggler/battle-arena/internal/handlers/discord/battle"
	"github.com/KirkDiggler/battle-arena/internal/services"
	"github.com/bwmarrin/discordgo"
)

// Handler handles all Discord interactions
type Handler struct {
	ServiceProvider *services.Provider
	battleHandler   *battle.Handler
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	ServiceProvider *services.Provider
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.ServiceProvider == nil {
		panic("service provider is required")
	}
	return &Handler{
		ServiceProvider: cfg.ServiceProvider,
		battleHandler: battle.NewHandler(&battle.HandlerConfig{
			BattleService: cfg.ServiceProvider.BattleService,
			PlayerService: cfg.ServiceProvider.PlayerService,
		}),
	}
}

// Commands lists every slash command the bot owns
func (h *Handler) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{battle.Command()}
}

// RegisterCommands registers all slash commands with Discord. An empty
// guildID registers globally.
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	for _, cmd := range h.Commands() {
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd); err != nil {
			log.Printf("Cannot create '%v' command: %v", cmd.Name, err)
			return err
		}
		log.Printf("Registered command: %s", cmd.Name)
	}

	return nil
}

// HandleInteraction handles all Discord interactions
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		RecoverMiddleware("command", h.handleCommand)(s, i)
	case discordgo.InteractionMessageComponent:
		RecoverMiddleware("component", h.handleComponent)(s, i)
	}
}

func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.ApplicationCommandData().Name != battle.CommandName {
		return
	}
	h.battleHandler.HandleCommand(s, i)
}

func (h *Handler) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	if !strings.HasPrefix(customID, battle.CustomIDPrefix) {
		log.Printf("Ignoring component with unknown custom ID: %s", customID)
		return
	}
	h.battleHandler.HandleComponent(s, i)
}
