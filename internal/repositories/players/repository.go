package players

//go:generate mockgen -destination=mock/mock_repository.go -package=mockplayers -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/battle-arena/internal/entities"
)

// Repository stores contestants and their win/loss record
type Repository interface {
	// Create stores a new player; both ID and username must be unused
	Create(ctx context.Context, player *entities.Player) error

	Get(ctx context.Context, id string) (*entities.Player, error)

	GetByUsername(ctx context.Context, username string) (*entities.Player, error)

	// Update replaces an existing player's profile and creatures.
	// Wins and losses are only changed through RecordResult.
	Update(ctx context.Context, player *entities.Player) error

	// ListWithActiveCreature returns every player able to battle
	ListWithActiveCreature(ctx context.Context) ([]*entities.Player, error)

	// RecordResult adds one win to the winner and one loss to the loser
	RecordResult(ctx context.Context, winnerID, loserID string) error
}
