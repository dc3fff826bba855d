package battle

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	engine "github.com/KirkDiggler/battle-arena/internal/battle"
	"github.com/KirkDiggler/battle-arena/internal/entities"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
	battleService "github.com/KirkDiggler/battle-arena/internal/services/battle"
	playerService "github.com/KirkDiggler/battle-arena/internal/services/player"
	"github.com/bwmarrin/discordgo"
)

// requestTimeout keeps us inside Discord's three second acknowledgement window
const requestTimeout = 2500 * time.Millisecond

// Request is one /battle invocation or button press
type Request struct {
	UserID     string
	Username   string
	Subcommand string
	BattleID   string // set by buttons; commands act on the active battle
	Options    map[string]string
}

// Handler serves the /battle command and its buttons
type Handler struct {
	battleService battleService.Service
	playerService playerService.Service
}

// HandlerConfig holds configuration for the battle handler
type HandlerConfig struct {
	BattleService battleService.Service
	PlayerService playerService.Service
}

// NewHandler creates a new battle handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.BattleService == nil {
		panic("battle service is required")
	}
	if cfg.PlayerService == nil {
		panic("player service is required")
	}
	return &Handler{
		battleService: cfg.BattleService,
		playerService: cfg.PlayerService,
	}
}

// HandleCommand answers a /battle slash command
func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	req := &Request{
		Subcommand: sub.Name,
		Options:    make(map[string]string),
	}
	req.UserID, req.Username = interactionUser(i)
	for _, opt := range sub.Options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionUser:
			req.Options[opt.Name] = opt.UserValue(nil).ID
		default:
			req.Options[opt.Name] = opt.StringValue()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	h.respond(s, i, discordgo.InteractionResponseChannelMessageWithSource, h.Execute(ctx, req))
}

// HandleComponent answers a battle button press by updating the battle message
func (h *Handler) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	req, err := parseCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		log.Printf("Battle component: %v", err)
		return
	}
	req.UserID, req.Username = interactionUser(i)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	data := h.Execute(ctx, req)
	responseType := discordgo.InteractionResponseUpdateMessage
	if data.Flags&discordgo.MessageFlagsEphemeral != 0 {
		// Errors go to the presser alone, leaving the shared message intact
		responseType = discordgo.InteractionResponseChannelMessageWithSource
	}
	h.respond(s, i, responseType, data)
}

func (h *Handler) respond(s *discordgo.Session, i *discordgo.InteractionCreate, responseType discordgo.InteractionResponseType, data *discordgo.InteractionResponseData) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: responseType,
		Data: data,
	}); err != nil {
		log.Printf("Failed to respond to battle interaction: %v", err)
	}
}

// Execute runs a request against the services and renders the reply
func (h *Handler) Execute(ctx context.Context, req *Request) *discordgo.InteractionResponseData {
	log.Printf("Battle command: sub=%s user=%s battle=%s", req.Subcommand, req.UserID, req.BattleID)

	if _, err := h.playerService.EnsurePlayer(ctx, req.UserID, req.Username); err != nil {
		return errorResponse(err)
	}

	var (
		data *discordgo.InteractionResponseData
		err  error
	)
	switch req.Subcommand {
	case SubcommandStart:
		data, err = h.start(ctx, req)
	case SubcommandAttack:
		data, err = h.submit(ctx, req, entities.ActionAttack)
	case SubcommandDefend:
		data, err = h.submit(ctx, req, entities.ActionDefend)
	case SubcommandItem:
		data, err = h.useItem(ctx, req)
	case SubcommandStatus:
		data, err = h.status(ctx, req)
	case SubcommandStarter:
		data, err = h.starter(ctx, req)
	case SubcommandRoster:
		data, err = h.roster(ctx)
	case SubcommandProfile:
		data, err = h.profile(ctx, req)
	default:
		err = dnderr.InvalidArgumentf("unknown subcommand %q", req.Subcommand)
	}
	if err != nil {
		return errorResponse(err)
	}

	return data
}

func (h *Handler) start(ctx context.Context, req *Request) (*discordgo.InteractionResponseData, error) {
	input := &battleService.CreateBattleInput{
		PlayerID:   req.UserID,
		OpponentID: req.Options["opponent"],
	}
	if key := req.Options["pokemon"]; key != "" {
		// Explicit creatures are chosen by catalog key for this battle only;
		// the active selection stays as it was
		owned, err := h.playerService.AcquireCreature(ctx, req.UserID, key)
		if err != nil {
			return nil, err
		}
		input.CreatureID = owned.ID
	}

	battle, err := h.battleService.CreateBattle(ctx, input)
	if err != nil {
		return nil, err
	}

	embed := buildStatusEmbed(battle, req.UserID)
	embed.Description = "The battle begins!"
	if battle.PendingAutoTurn {
		embed.Description += fmt.Sprintf(" %s is faster and will move first.", battle.Side(battle.CurrentTurnPlayerID).Username)
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: buildBattleComponents(battle, req.UserID),
	}, nil
}

func (h *Handler) submit(ctx context.Context, req *Request, action entities.Action) (*discordgo.InteractionResponseData, error) {
	battleID, err := h.battleID(ctx, req)
	if err != nil {
		return nil, err
	}

	outcome, err := h.battleService.SubmitTurn(ctx, &battleService.SubmitTurnInput{
		BattleID: battleID,
		PlayerID: req.UserID,
		Action:   action,
	})
	if err != nil {
		return nil, err
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{buildExchangeEmbed(outcome, req.UserID)},
		Components: buildBattleComponents(outcome.Battle, req.UserID),
	}, nil
}

func (h *Handler) useItem(ctx context.Context, req *Request) (*discordgo.InteractionResponseData, error) {
	battleID, err := h.battleID(ctx, req)
	if err != nil {
		return nil, err
	}

	outcome, err := h.battleService.UseItem(ctx, &battleService.UseItemInput{
		BattleID: battleID,
		PlayerID: req.UserID,
		Item:     engine.ItemType(req.Options["item"]),
	})
	if err != nil {
		return nil, err
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{buildItemEmbed(outcome, req.UserID)},
		Components: buildBattleComponents(outcome.Battle, req.UserID),
	}, nil
}

func (h *Handler) status(ctx context.Context, req *Request) (*discordgo.InteractionResponseData, error) {
	var (
		battle *entities.Battle
		err    error
	)
	if req.BattleID != "" {
		battle, err = h.battleService.GetBattle(ctx, req.BattleID, req.UserID)
	} else {
		battle, err = h.battleService.GetActiveBattle(ctx, req.UserID)
	}
	if err != nil {
		return nil, err
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{buildStatusEmbed(battle, req.UserID)},
		Components: buildBattleComponents(battle, req.UserID),
	}, nil
}

func (h *Handler) starter(ctx context.Context, req *Request) (*discordgo.InteractionResponseData, error) {
	key := req.Options["pokemon"]
	if key == "" {
		return nil, dnderr.InvalidArgument("Choose a Pokémon by name")
	}

	player, err := h.playerService.ChooseCreature(ctx, req.UserID, key)
	if err != nil {
		return nil, err
	}

	return &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("✅ %s is now your active Pokémon! Start a fight with `/battle start`.", player.ActiveCreature().CreatureKey),
		Flags:   discordgo.MessageFlagsEphemeral,
	}, nil
}

func (h *Handler) roster(ctx context.Context) (*discordgo.InteractionResponseData, error) {
	creatures, err := h.playerService.ListCreatures(ctx)
	if err != nil {
		return nil, err
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{buildRosterEmbed(creatures)},
		Flags:  discordgo.MessageFlagsEphemeral,
	}, nil
}

func (h *Handler) profile(ctx context.Context, req *Request) (*discordgo.InteractionResponseData, error) {
	profile, err := h.playerService.GetProfile(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{buildProfileEmbed(profile)},
		Flags:  discordgo.MessageFlagsEphemeral,
	}, nil
}

// battleID is the button's battle, or the caller's active one for commands
func (h *Handler) battleID(ctx context.Context, req *Request) (string, error) {
	if req.BattleID != "" {
		return req.BattleID, nil
	}
	battle, err := h.battleService.GetActiveBattle(ctx, req.UserID)
	if err != nil {
		return "", err
	}
	return battle.ID, nil
}

// errorResponse shows caller-correctable errors verbatim and hides the rest
func errorResponse(err error) *discordgo.InteractionResponseData {
	message := err.Error()
	if dnderr.HTTPStatus(err) >= http.StatusInternalServerError {
		log.Printf("Battle command failed: %v", err)
		message = "Something went wrong, please try again."
	}

	return &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}

func interactionUser(i *discordgo.InteractionCreate) (id, username string) {
	user := i.User
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User
	}
	if user == nil {
		return "", ""
	}
	return user.ID, user.Username
}
