package services

import (
	"time"

	"github.com/KirkDiggler/battle-arena/internal/dice"
	"github.com/KirkDiggler/battle-arena/internal/metrics"
	"github.com/KirkDiggler/battle-arena/internal/repositories/battles"
	"github.com/KirkDiggler/battle-arena/internal/repositories/players"
	battleService "github.com/KirkDiggler/battle-arena/internal/services/battle"
	playerService "github.com/KirkDiggler/battle-arena/internal/services/player"
	"github.com/KirkDiggler/battle-arena/internal/uuid"
)

// Catalog is what both services need from the creature catalog
type Catalog interface {
	battleService.CreatureCatalog
	playerService.Catalog
}

// Provider holds all service instances
type Provider struct {
	BattleService battleService.Service
	PlayerService playerService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Catalog          Catalog // Required
	BattleRepository battles.Repository
	PlayerRepository players.Repository
	DiceRoller       dice.Roller
	UUIDGenerator    uuid.Generator
	TimeProvider     battleService.TimeProvider
	Metrics          *metrics.BattleMetrics
	AIUsername       string
	ActionTimeout    time.Duration
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repositories if none provided
	battleRepo := cfg.BattleRepository
	if battleRepo == nil {
		battleRepo = battles.NewInMemoryRepository()
	}

	playerRepo := cfg.PlayerRepository
	if playerRepo == nil {
		playerRepo = players.NewInMemoryRepository()
	}

	uuidGen := cfg.UUIDGenerator
	if uuidGen == nil {
		uuidGen = uuid.NewGoogleUUIDGenerator()
	}

	clock := cfg.TimeProvider
	if clock == nil {
		clock = &battleService.RealTimeProvider{}
	}

	bService := battleService.NewService(&battleService.ServiceConfig{
		BattleRepository: battleRepo,
		PlayerRepository: playerRepo,
		Catalog:          cfg.Catalog,
		DiceRoller:       cfg.DiceRoller,
		UUIDGenerator:    uuidGen,
		TimeProvider:     clock,
		Metrics:          cfg.Metrics,
		AIUsername:       cfg.AIUsername,
		ActionTimeout:    cfg.ActionTimeout,
	})

	pService := playerService.NewService(&playerService.ServiceConfig{
		Repository:    playerRepo,
		Catalog:       cfg.Catalog,
		UUIDGenerator: uuidGen,
		TimeProvider:  clock,
	})

	return &Provider{
		BattleService: bService,
		PlayerService: pService,
	}
}
