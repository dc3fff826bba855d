package battle

import (
	"github.com/KirkDiggler/battle-arena/internal/entities"
)

// TypeLookup is the read-only effectiveness table
type TypeLookup interface {
	Lookup(attacking, defending string) (float64, bool)
}

// EffectivenessResolver scales damage by type matchup
type EffectivenessResolver struct {
	chart TypeLookup
}

// NewEffectivenessResolver creates a resolver over the given table
func NewEffectivenessResolver(chart TypeLookup) *EffectivenessResolver {
	if chart == nil {
		chart = entities.TypeChart{}
	}
	return &EffectivenessResolver{chart: chart}
}

// Multiplier returns the attacking type's multiplier against the defender.
// Dual-typed defenders get the product of both lookups; unknown pairs are 1.0.
func (r *EffectivenessResolver) Multiplier(attacking string, defender *entities.Creature) float64 {
	primary, _ := r.chart.Lookup(attacking, defender.PrimaryType)
	if defender.SecondaryType == "" {
		return primary
	}

	secondary, _ := r.chart.Lookup(attacking, defender.SecondaryType)
	return primary * secondary
}
