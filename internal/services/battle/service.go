package battle

//go:generate mockgen -destination=mock/mock_service.go -package=mockbattle -source=service.go

import (
	"context"
	"time"

	engine "github.com/KirkDiggler/battle-arena/internal/battle"
	"github.com/KirkDiggler/battle-arena/internal/dice"
	"github.com/KirkDiggler/battle-arena/internal/entities"
	"github.com/KirkDiggler/battle-arena/internal/metrics"
	"github.com/KirkDiggler/battle-arena/internal/repositories/battles"
	"github.com/KirkDiggler/battle-arena/internal/repositories/players"
	"github.com/KirkDiggler/battle-arena/internal/uuid"
)

// DefaultAIUsername is the standing automatic opponent
const DefaultAIUsername = "AI Trainer"

// Service defines the battle service interface
type Service interface {
	// CreateBattle pairs the initiator with an opponent and starts an active battle
	CreateBattle(ctx context.Context, input *CreateBattleInput) (*entities.Battle, error)

	// SubmitTurn resolves the caller's action and the automatic counter-action
	// as one exchange
	SubmitTurn(ctx context.Context, input *SubmitTurnInput) (*TurnOutcome, error)

	// UseItem applies an item and hands the turn to the opponent
	UseItem(ctx context.Context, input *UseItemInput) (*ItemOutcome, error)

	// GetBattle returns a snapshot including the full turn history
	GetBattle(ctx context.Context, battleID, requesterID string) (*entities.Battle, error)

	// GetActiveBattle returns the battle in progress where the player controls
	// a side. Sides played automatically for them do not count.
	GetActiveBattle(ctx context.Context, playerID string) (*entities.Battle, error)
}

// CreateBattleInput contains data for starting a battle
type CreateBattleInput struct {
	PlayerID   string
	CreatureID string // Optional, defaults to the player's active creature
	OpponentID string // Optional, defaults to a random opponent or the AI
}

// SubmitTurnInput contains a side's declared action
type SubmitTurnInput struct {
	BattleID string
	PlayerID string
	Action   entities.Action
}

// UseItemInput contains the item a side wants to use
type UseItemInput struct {
	BattleID string
	PlayerID string
	Item     engine.ItemType
}

// TurnOutcome is everything resolved while the battle was locked
type TurnOutcome struct {
	Battle *entities.Battle
	// Owed is the automatic action that was still due from an earlier handover
	Owed *engine.TurnResult
	// Result is nil when the owed action already ended the battle
	Result         *engine.TurnResult
	Counter        *engine.TurnResult
	BattleComplete bool
	WinnerID       string
}

// ItemOutcome reports an item use and the side's remaining inventory
type ItemOutcome struct {
	Battle              *entities.Battle
	Success             bool
	Message             string
	HPRestored          int
	NewHP               int
	BoostTurnsRemaining int
	Inventory           map[engine.ItemType]int
	Owed                *engine.TurnResult
	BattleComplete      bool
	WinnerID            string
}

type service struct {
	battleRepo    battles.Repository
	playerRepo    players.Repository
	catalog       CreatureCatalog
	roller        dice.Roller
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
	metrics       *metrics.BattleMetrics
	aiUsername    string
	actionTimeout time.Duration

	processor *engine.TurnProcessor
	selector  *engine.OpponentSelector
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	BattleRepository battles.Repository     // Required
	PlayerRepository players.Repository     // Required
	Catalog          CreatureCatalog        // Required
	DiceRoller       dice.Roller            // Optional, random if nil
	UUIDGenerator    uuid.Generator         // Optional, will use default if nil
	TimeProvider     TimeProvider           // Optional, wall clock if nil
	Metrics          *metrics.BattleMetrics // Optional
	AIUsername       string                 // Optional, defaults to DefaultAIUsername
	ActionTimeout    time.Duration          // Optional, bounds one locked exchange including the wait
}

// NewService creates a new battle service
func NewService(cfg *ServiceConfig) Service {
	if cfg.BattleRepository == nil {
		panic("battle repository is required")
	}
	if cfg.PlayerRepository == nil {
		panic("player repository is required")
	}
	if cfg.Catalog == nil {
		panic("catalog is required")
	}

	svc := &service{
		battleRepo:    cfg.BattleRepository,
		playerRepo:    cfg.PlayerRepository,
		catalog:       cfg.Catalog,
		roller:        cfg.DiceRoller,
		uuidGenerator: cfg.UUIDGenerator,
		timeProvider:  cfg.TimeProvider,
		metrics:       cfg.Metrics,
		aiUsername:    cfg.AIUsername,
		actionTimeout: cfg.ActionTimeout,
	}

	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.timeProvider == nil {
		svc.timeProvider = &RealTimeProvider{}
	}
	if svc.aiUsername == "" {
		svc.aiUsername = DefaultAIUsername
	}

	calculator := engine.NewDamageCalculator(engine.NewEffectivenessResolver(svc.catalog.TypeChart()), svc.roller)
	svc.processor = engine.NewTurnProcessor(calculator, svc.timeProvider.Now)
	svc.selector = engine.NewOpponentSelector(svc.roller)

	return svc
}
