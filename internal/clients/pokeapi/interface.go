package pokeapi

import (
	"context"

	"github.com/KirkDiggler/battle-arena/internal/catalog"
	"github.com/KirkDiggler/battle-arena/internal/entities"
)

// Client reads creature and type data from a PokeAPI-compatible service
type Client interface {
	GetCreature(ctx context.Context, id int) (*entities.Creature, error)
	GetTypeRelations(ctx context.Context, name string) (*catalog.TypeRelations, error)

	// BuildCatalog fetches the first count creatures and the relations of
	// every type they use
	BuildCatalog(ctx context.Context, count int) (*catalog.Catalog, error)
}
