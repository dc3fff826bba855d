package player

import "github.com/KirkDiggler/battle-arena/internal/entities"

// Catalog is the template source players choose from
type Catalog interface {
	Get(key string) (*entities.Creature, error)
	List() []*entities.Creature
}
