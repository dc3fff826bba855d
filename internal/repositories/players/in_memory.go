package players

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/battle-arena/internal/entities"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/KirkDiggler/battle-arena/internal/repositories"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu         sync.RWMutex
	players    map[string]*entities.Player
	byUsername map[string]string // username -> playerID
}

// NewInMemoryRepository creates a new in-memory player repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		players:    make(map[string]*entities.Player),
		byUsername: make(map[string]string),
	}
}

func (r *inMemoryRepository) Create(ctx context.Context, player *entities.Player) error {
	if err := validate(player); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[player.ID]; exists {
		return repositories.NewRecordExistsError(repositories.RecordPlayer, player.ID)
	}
	if _, exists := r.byUsername[player.Username]; exists {
		return repositories.NewRecordExistsError(repositories.RecordPlayer, player.Username)
	}

	r.players[player.ID] = player.Clone()
	r.byUsername[player.Username] = player.ID

	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, id string) (*entities.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player, exists := r.players[id]
	if !exists {
		return nil, repositories.NewRecordNotFoundError(repositories.RecordPlayer, id)
	}

	return player.Clone(), nil
}

func (r *inMemoryRepository) GetByUsername(ctx context.Context, username string) (*entities.Player, error) {
	r.mu.RLock()
	id, exists := r.byUsername[username]
	r.mu.RUnlock()

	if !exists {
		return nil, repositories.NewRecordNotFoundError(repositories.RecordPlayer, username)
	}

	return r.Get(ctx, id)
}

func (r *inMemoryRepository) Update(ctx context.Context, player *entities.Player) error {
	if err := validate(player); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.players[player.ID]
	if !exists {
		return repositories.NewRecordNotFoundError(repositories.RecordPlayer, player.ID)
	}

	updated := player.Clone()
	updated.Username = existing.Username
	updated.Wins = existing.Wins
	updated.Losses = existing.Losses
	r.players[player.ID] = updated

	return nil
}

func (r *inMemoryRepository) ListWithActiveCreature(ctx context.Context) ([]*entities.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Player, 0, len(r.players))
	for _, player := range r.players {
		if player.ActiveCreature() == nil {
			continue
		}
		result = append(result, player.Clone())
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

func (r *inMemoryRepository) RecordResult(ctx context.Context, winnerID, loserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	winner, ok := r.players[winnerID]
	if !ok {
		return repositories.NewRecordNotFoundError(repositories.RecordPlayer, winnerID)
	}
	loser, ok := r.players[loserID]
	if !ok {
		return repositories.NewRecordNotFoundError(repositories.RecordPlayer, loserID)
	}

	winner.Wins++
	loser.Losses++

	return nil
}

func validate(player *entities.Player) error {
	if player == nil {
		return dnderr.InvalidArgument("player cannot be nil")
	}
	if player.ID == "" {
		return dnderr.InvalidArgument("player ID cannot be empty")
	}
	if player.Username == "" {
		return dnderr.InvalidArgument("player username cannot be empty")
	}
	return nil
}
