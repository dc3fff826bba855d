package battles

import (
	"context"
	"sync"

	"github.com/KirkDiggler/battle-arena/internal/entities"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/KirkDiggler/battle-arena/internal/repositories"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu      sync.RWMutex
	battles map[string]*entities.Battle
	active  map[string]map[string]struct{} // playerID -> battle ids
	locks   map[string]chan struct{}       // battleID -> one-slot semaphore
}

// NewInMemoryRepository creates a new in-memory battle repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		battles: make(map[string]*entities.Battle),
		active:  make(map[string]map[string]struct{}),
		locks:   make(map[string]chan struct{}),
	}
}

func (r *inMemoryRepository) Create(ctx context.Context, battle *entities.Battle) error {
	if battle == nil {
		return dnderr.InvalidArgument("battle cannot be nil")
	}
	if battle.ID == "" {
		return dnderr.InvalidArgument("battle ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.battles[battle.ID]; exists {
		return repositories.NewRecordExistsError(repositories.RecordBattle, battle.ID)
	}

	r.battles[battle.ID] = battle.Clone()
	r.index(battle)

	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, id string) (*entities.Battle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	battle, exists := r.battles[id]
	if !exists {
		return nil, repositories.NewRecordNotFoundError(repositories.RecordBattle, id)
	}

	return battle.Clone(), nil
}

func (r *inMemoryRepository) GetActiveByPlayer(ctx context.Context, playerID string) (*entities.Battle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *entities.Battle
	for id := range r.active[playerID] {
		battle, ok := r.battles[id]
		if !ok || !battle.IsActive() {
			continue
		}
		if latest == nil || battle.CreatedAt.After(latest.CreatedAt) {
			latest = battle
		}
	}
	if latest == nil {
		return nil, repositories.NewRecordNotFoundError(repositories.RecordBattle, "active:"+playerID)
	}

	return latest.Clone(), nil
}

func (r *inMemoryRepository) WithLock(ctx context.Context, id string, fn MutateFunc) (*entities.Battle, error) {
	lock, err := r.lockFor(id)
	if err != nil {
		return nil, err
	}

	select {
	case lock <- struct{}{}:
	case <-ctx.Done():
		return nil, dnderr.WrapWithCode(ctx.Err(), dnderr.CodeUnavailable, "timed out waiting for battle lock")
	}
	defer func() { <-lock }()

	battle, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(battle); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.battles[id] = battle.Clone()
	r.index(battle)
	r.mu.Unlock()

	return battle, nil
}

func (r *inMemoryRepository) lockFor(id string) (chan struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.battles[id]; !exists {
		return nil, repositories.NewRecordNotFoundError(repositories.RecordBattle, id)
	}

	lock, ok := r.locks[id]
	if !ok {
		lock = make(chan struct{}, 1)
		r.locks[id] = lock
	}
	return lock, nil
}

// index must be called with mu held
func (r *inMemoryRepository) index(battle *entities.Battle) {
	for _, side := range battle.Sides {
		if side == nil {
			continue
		}
		if battle.IsActive() && !side.IsAI {
			if r.active[side.PlayerID] == nil {
				r.active[side.PlayerID] = make(map[string]struct{})
			}
			r.active[side.PlayerID][battle.ID] = struct{}{}
			continue
		}
		delete(r.active[side.PlayerID], battle.ID)
	}
}
