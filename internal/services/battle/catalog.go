package battle

import (
	"github.com/KirkDiggler/battle-arena/internal/dice"
	"github.com/KirkDiggler/battle-arena/internal/entities"
)

// CreatureCatalog is the read-only template source. *catalog.Catalog satisfies it.
type CreatureCatalog interface {
	Get(key string) (*entities.Creature, error)
	Random(roller dice.Roller) (*entities.Creature, error)
	TypeChart() entities.TypeChart
}
