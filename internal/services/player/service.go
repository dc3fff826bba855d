package player

//go:generate mockgen -destination=mock/mock_service.go -package=mockplayer -source=service.go

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/KirkDiggler/battle-arena/internal/catalog"
	"github.com/KirkDiggler/battle-arena/internal/entities"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/KirkDiggler/battle-arena/internal/repositories/players"
	"github.com/KirkDiggler/battle-arena/internal/uuid"
)

var (
	ErrCreatureNotFound = dnderr.NotFound("Pokémon not found")
	ErrUsernameTaken    = dnderr.AlreadyExists("Username is already taken")
)

// Profile is a player's record as shown to them
type Profile struct {
	Player         *entities.Player
	ActiveCreature *entities.Creature // nil until a starter is chosen
	WinRate        float64            // percentage, two decimals
}

// Service manages contestants and their creature selection
type Service interface {
	// EnsurePlayer returns the player, registering them on first contact
	EnsurePlayer(ctx context.Context, id, username string) (*entities.Player, error)

	// ChooseCreature adds the creature to the player's collection if needed
	// and marks it active
	ChooseCreature(ctx context.Context, playerID, creatureKey string) (*entities.Player, error)

	// AcquireCreature adds the creature to the player's collection if needed
	// without changing the active selection
	AcquireCreature(ctx context.Context, playerID, creatureKey string) (*entities.OwnedCreature, error)

	// GetProfile returns the player's win/loss record and active creature
	GetProfile(ctx context.Context, playerID string) (*Profile, error)

	// ListCreatures returns every template a player may choose
	ListCreatures(ctx context.Context) ([]*entities.Creature, error)
}

type service struct {
	repository    players.Repository
	catalog       Catalog
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    players.Repository // Required
	Catalog       Catalog            // Required
	UUIDGenerator uuid.Generator     // Optional, will use default if nil
	TimeProvider  TimeProvider       // Optional, will use default if nil
}

// NewService creates a new player service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Catalog == nil {
		panic("catalog is required")
	}

	svc := &service{
		repository: cfg.Repository,
		catalog:    cfg.Catalog,
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	if cfg.TimeProvider != nil {
		svc.timeProvider = cfg.TimeProvider
	} else {
		svc.timeProvider = &RealTimeProvider{}
	}

	return svc
}

func (s *service) EnsurePlayer(ctx context.Context, id, username string) (*entities.Player, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("player ID is required")
	}
	if strings.TrimSpace(username) == "" {
		return nil, dnderr.InvalidArgument("username is required")
	}

	existing, err := s.repository.Get(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !dnderr.IsNotFound(err) {
		return nil, dnderr.Wrap(err, "failed to get player")
	}

	player := &entities.Player{
		ID:        id,
		Username:  username,
		CreatedAt: s.timeProvider.Now(),
	}
	if err := s.repository.Create(ctx, player); err != nil {
		if dnderr.GetCode(err) != dnderr.CodeAlreadyExists {
			return nil, dnderr.Wrap(err, "failed to create player")
		}
		// Either a concurrent registration for the same id, or the username
		// belongs to someone else
		if existing, getErr := s.repository.Get(ctx, id); getErr == nil {
			return existing, nil
		}
		return nil, ErrUsernameTaken
	}

	log.Printf("Registered player %s (%s)", username, id)
	return player, nil
}

func (s *service) ChooseCreature(ctx context.Context, playerID, creatureKey string) (*entities.Player, error) {
	player, owned, _, err := s.acquire(ctx, playerID, creatureKey)
	if err != nil {
		return nil, err
	}
	player.ActiveCreatureID = owned.ID

	if err := s.repository.Update(ctx, player); err != nil {
		return nil, dnderr.Wrap(err, "failed to update player")
	}

	return player, nil
}

func (s *service) AcquireCreature(ctx context.Context, playerID, creatureKey string) (*entities.OwnedCreature, error) {
	player, owned, added, err := s.acquire(ctx, playerID, creatureKey)
	if err != nil {
		return nil, err
	}
	if !added {
		return owned, nil
	}

	if err := s.repository.Update(ctx, player); err != nil {
		return nil, dnderr.Wrap(err, "failed to update player")
	}

	return owned, nil
}

func (s *service) GetProfile(ctx context.Context, playerID string) (*Profile, error) {
	if playerID == "" {
		return nil, dnderr.InvalidArgument("player ID is required")
	}

	player, err := s.repository.Get(ctx, playerID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to get player")
	}

	profile := &Profile{
		Player:  player,
		WinRate: player.WinRate(),
	}
	if owned := player.ActiveCreature(); owned != nil {
		creature, err := s.catalog.Get(owned.CreatureKey)
		if err != nil && !errors.Is(err, catalog.ErrNotFound) {
			return nil, dnderr.Wrap(err, "failed to get creature")
		}
		// a creature dropped from the catalog shows as no selection
		profile.ActiveCreature = creature
	}

	return profile, nil
}

// acquire loads the player and finds or appends their instance of the
// creature; added reports whether the collection changed
func (s *service) acquire(ctx context.Context, playerID, creatureKey string) (*entities.Player, *entities.OwnedCreature, bool, error) {
	if playerID == "" {
		return nil, nil, false, dnderr.InvalidArgument("player ID is required")
	}

	creature, err := s.catalog.Get(creatureKey)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, nil, false, ErrCreatureNotFound
		}
		return nil, nil, false, dnderr.Wrap(err, "failed to get creature")
	}

	player, err := s.repository.Get(ctx, playerID)
	if err != nil {
		return nil, nil, false, dnderr.Wrap(err, "failed to get player")
	}

	if owned := player.FindCreatureByKey(creature.Key); owned != nil {
		return player, owned, false, nil
	}

	owned := &entities.OwnedCreature{
		ID:          s.uuidGenerator.New(),
		PlayerID:    player.ID,
		CreatureKey: creature.Key,
	}
	player.Creatures = append(player.Creatures, owned)

	return player, owned, true, nil
}

func (s *service) ListCreatures(ctx context.Context) ([]*entities.Creature, error) {
	return s.catalog.List(), nil
}
