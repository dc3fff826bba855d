package battles

//go:generate mockgen -destination=mock/mock_repository.go -package=mockbattles -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/battle-arena/internal/entities"
)

// MutateFunc changes a battle in place while the battle's lock is held
type MutateFunc func(battle *entities.Battle) error

// Repository stores battles and serializes their mutation
type Repository interface {
	// Create stores a new battle. While active it is indexed for each
	// participant who controls their side; automatic sides are not indexed.
	Create(ctx context.Context, battle *entities.Battle) error

	// Get returns the last persisted state of a battle
	Get(ctx context.Context, id string) (*entities.Battle, error)

	// GetActiveByPlayer returns the latest active battle in which the player
	// controls a side, or a not found error
	GetActiveByPlayer(ctx context.Context, playerID string) (*entities.Battle, error)

	// WithLock acquires the battle's exclusive lock, reloads it, and runs fn
	// on the fresh copy. If fn returns an error nothing is persisted;
	// otherwise the battle is saved before the lock is released.
	WithLock(ctx context.Context, id string, fn MutateFunc) (*entities.Battle, error)
}
