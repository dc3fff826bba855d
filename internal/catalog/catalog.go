// Package catalog holds the immutable creature templates and the type chart
// battles are resolved against.
package catalog

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/KirkDiggler/battle-arena/internal/dice"
	"github.com/KirkDiggler/battle-arena/internal/entities"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

var (
	ErrNotFound = dnderr.NotFound("creature not found")
	ErrEmpty    = dnderr.NotFound("catalog has no creatures")
)

// TypeRelations lists what an attacking type does to defending types.
// Shape follows the PokeAPI damage_relations block.
type TypeRelations struct {
	Name           string   `yaml:"name" json:"name"`
	DoubleDamageTo []string `yaml:"double_damage_to" json:"double_damage_to"`
	HalfDamageTo   []string `yaml:"half_damage_to" json:"half_damage_to"`
	NoDamageTo     []string `yaml:"no_damage_to" json:"no_damage_to"`
}

type document struct {
	Creatures []*entities.Creature `yaml:"creatures"`
	Types     []*TypeRelations     `yaml:"types"`
}

// Catalog is read-only after construction and safe for concurrent use
type Catalog struct {
	creatures map[string]*entities.Creature
	ordered   []*entities.Creature
	chart     entities.TypeChart
}

// New validates creatures and relations and builds a catalog
func New(creatures []*entities.Creature, relations []*TypeRelations) (*Catalog, error) {
	c := &Catalog{
		creatures: make(map[string]*entities.Creature, len(creatures)),
		chart:     ChartFromRelations(relations),
	}

	for _, creature := range creatures {
		if err := validate(creature); err != nil {
			return nil, err
		}
		if _, exists := c.creatures[creature.Key]; exists {
			return nil, dnderr.InvalidArgumentf("duplicate creature key %q", creature.Key)
		}
		cc := *creature
		c.creatures[cc.Key] = &cc
		c.ordered = append(c.ordered, &cc)
	}

	sort.SliceStable(c.ordered, func(i, j int) bool {
		if c.ordered[i].PokedexNumber != c.ordered[j].PokedexNumber {
			return c.ordered[i].PokedexNumber < c.ordered[j].PokedexNumber
		}
		return c.ordered[i].Key < c.ordered[j].Key
	})

	return c, nil
}

func validate(creature *entities.Creature) error {
	if creature == nil {
		return dnderr.InvalidArgument("creature is nil")
	}
	if creature.Key == "" {
		return dnderr.InvalidArgumentf("creature %q has no key", creature.Name)
	}
	if creature.Key != strings.ToLower(creature.Key) {
		return dnderr.InvalidArgumentf("creature key %q must be lowercase", creature.Key)
	}
	if creature.PrimaryType == "" {
		return dnderr.InvalidArgumentf("creature %q has no primary type", creature.Key)
	}
	if creature.BaseHP <= 0 {
		return dnderr.InvalidArgumentf("creature %q must have positive base hp", creature.Key)
	}
	if creature.BaseAttack < 0 || creature.BaseDefense < 0 || creature.BaseSpeed < 0 {
		return dnderr.InvalidArgumentf("creature %q has negative stats", creature.Key)
	}
	return nil
}

// ChartFromRelations flattens per-type relations into a lookup table.
// Pairs not mentioned stay neutral.
func ChartFromRelations(relations []*TypeRelations) entities.TypeChart {
	chart := entities.TypeChart{}
	for _, rel := range relations {
		if rel == nil {
			continue
		}
		for _, def := range rel.DoubleDamageTo {
			chart.Set(rel.Name, def, entities.SuperEffective)
		}
		for _, def := range rel.HalfDamageTo {
			chart.Set(rel.Name, def, entities.NotVeryEffective)
		}
		for _, def := range rel.NoDamageTo {
			chart.Set(rel.Name, def, entities.NoEffect)
		}
	}
	return chart
}

// Load reads a YAML catalog document
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "failed to decode catalog")
	}

	return New(doc.Creatures, doc.Types)
}

// LoadFile reads a YAML catalog from disk
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to open catalog %s", path)
	}
	defer f.Close()

	return Load(f)
}

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// Get returns a copy of the template with the given key
func (c *Catalog) Get(key string) (*entities.Creature, error) {
	creature, ok := c.creatures[strings.ToLower(key)]
	if !ok {
		return nil, dnderr.Wrapf(ErrNotFound, "creature %q", key).WithMeta("creature_key", key)
	}
	cc := *creature
	return &cc, nil
}

// List returns copies of every template in pokedex order
func (c *Catalog) List() []*entities.Creature {
	out := make([]*entities.Creature, 0, len(c.ordered))
	for _, creature := range c.ordered {
		cc := *creature
		out = append(out, &cc)
	}
	return out
}

// Len is the number of templates
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// TypeChart returns the effectiveness table. Callers must not modify it.
func (c *Catalog) TypeChart() entities.TypeChart {
	return c.chart
}

// Random picks a template uniformly
func (c *Catalog) Random(roller dice.Roller) (*entities.Creature, error) {
	if len(c.ordered) == 0 {
		return nil, ErrEmpty
	}

	idx, err := dice.Pick(roller, len(c.ordered))
	if err != nil {
		return nil, err
	}

	cc := *c.ordered[idx]
	return &cc, nil
}
