package pokeapi

import (
	"strings"

	"github.com/KirkDiggler/battle-arena/internal/catalog"
	"github.com/KirkDiggler/battle-arena/internal/entities"
)

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type pokemonResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
	} `json:"sprites"`
	Types []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
}

type typeResponse struct {
	Name            string `json:"name"`
	DamageRelations struct {
		DoubleDamageTo []namedResource `json:"double_damage_to"`
		HalfDamageTo   []namedResource `json:"half_damage_to"`
		NoDamageTo     []namedResource `json:"no_damage_to"`
	} `json:"damage_relations"`
}

func pokemonToCreature(in *pokemonResponse) *entities.Creature {
	stats := make(map[string]int, len(in.Stats))
	for _, s := range in.Stats {
		stats[s.Stat.Name] = s.BaseStat
	}

	creature := &entities.Creature{
		Key:           strings.ToLower(in.Name),
		Name:          displayName(in.Name),
		PokedexNumber: in.ID,
		BaseHP:        stats["hp"],
		BaseAttack:    stats["attack"],
		BaseDefense:   stats["defense"],
		BaseSpeed:     stats["speed"],
	}
	if in.Sprites.FrontDefault != nil {
		creature.SpriteURL = *in.Sprites.FrontDefault
	}

	// slot 1 is primary, slot 2 secondary
	for _, t := range in.Types {
		switch t.Slot {
		case 1:
			creature.PrimaryType = t.Type.Name
		case 2:
			creature.SecondaryType = t.Type.Name
		}
	}

	return creature
}

func typeToRelations(in *typeResponse) *catalog.TypeRelations {
	return &catalog.TypeRelations{
		Name:           in.Name,
		DoubleDamageTo: names(in.DamageRelations.DoubleDamageTo),
		HalfDamageTo:   names(in.DamageRelations.HalfDamageTo),
		NoDamageTo:     names(in.DamageRelations.NoDamageTo),
	}
}

func names(in []namedResource) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		out = append(out, r.Name)
	}
	return out
}

func displayName(name string) string {
	parts := strings.Split(name, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "-")
}
