package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KirkDiggler/battle-arena/internal/catalog"
	mockdice "github.com/KirkDiggler/battle-arena/internal/dice/mock"
	"github.com/KirkDiggler/battle-arena/internal/entities"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallCatalog = `
creatures:
  - key: squirtle
    name: Squirtle
    pokedex_number: 7
    base_hp: 44
    base_attack: 48
    base_defense: 65
    base_speed: 43
    primary_type: water
  - key: charmander
    name: Charmander
    pokedex_number: 4
    base_hp: 39
    base_attack: 52
    base_defense: 43
    base_speed: 65
    primary_type: fire
types:
  - name: water
    double_damage_to: [fire]
    half_damage_to: [water]
  - name: electric
    no_damage_to: [ground]
`

func TestDefault(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, c.Len(), 3)

	pikachu, err := c.Get("pikachu")
	require.NoError(t, err)
	assert.Equal(t, "electric", pikachu.PrimaryType)
	assert.Equal(t, 35, pikachu.MaxHP())

	chart := c.TypeChart()
	m, ok := chart.Lookup("fire", "grass")
	assert.True(t, ok)
	assert.Equal(t, entities.SuperEffective, m)
	m, _ = chart.Lookup("electric", "ground")
	assert.Equal(t, entities.NoEffect, m)
	m, ok = chart.Lookup("normal", "normal")
	assert.False(t, ok)
	assert.Equal(t, entities.NormalEffective, m)
}

func TestDefault_EveryTypeIsCharted(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	chart := c.TypeChart()
	for _, creature := range c.List() {
		for _, typ := range []string{creature.PrimaryType, creature.SecondaryType} {
			if typ == "" {
				continue
			}
			_, ok := chart[typ]
			assert.True(t, ok, "type %s of %s has no relations", typ, creature.Key)
		}
	}
}

func TestLoad(t *testing.T) {
	c, err := catalog.Load(strings.NewReader(smallCatalog))
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "charmander", list[0].Key, "ordered by pokedex number")
	assert.Equal(t, "squirtle", list[1].Key)

	m, _ := c.TypeChart().Lookup("water", "fire")
	assert.Equal(t, 2.0, m)
}

func TestGet_ReturnsCopy(t *testing.T) {
	c, err := catalog.Load(strings.NewReader(smallCatalog))
	require.NoError(t, err)

	first, err := c.Get("Squirtle")
	require.NoError(t, err)
	first.BaseHP = 1

	second, err := c.Get("squirtle")
	require.NoError(t, err)
	assert.Equal(t, 44, second.BaseHP)
}

func TestGet_NotFound(t *testing.T) {
	c, err := catalog.Load(strings.NewReader(smallCatalog))
	require.NoError(t, err)

	_, err = c.Get("mewtwo")

	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.True(t, dnderr.IsNotFound(err))
	assert.Equal(t, "mewtwo", dnderr.GetMeta(err)["creature_key"])
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed", doc: "creatures: [oops"},
		{name: "unknown field", doc: "creatures:\n  - key: a\n    colour: red\n"},
		{name: "missing type", doc: "creatures:\n  - key: a\n    base_hp: 10\n"},
		{name: "zero hp", doc: "creatures:\n  - key: a\n    primary_type: fire\n"},
		{name: "uppercase key", doc: "creatures:\n  - key: Abc\n    base_hp: 1\n    primary_type: fire\n"},
		{
			name: "duplicate",
			doc:  "creatures:\n  - key: a\n    base_hp: 1\n    primary_type: fire\n  - key: a\n    base_hp: 1\n    primary_type: fire\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, dnderr.IsInvalidArgument(err))
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallCatalog), 0o600))

	c, err := catalog.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = catalog.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRandom(t *testing.T) {
	c, err := catalog.Load(strings.NewReader(smallCatalog))
	require.NoError(t, err)

	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{1, 2})

	first, err := c.Random(roller)
	require.NoError(t, err)
	assert.Equal(t, "charmander", first.Key)

	second, err := c.Random(roller)
	require.NoError(t, err)
	assert.Equal(t, "squirtle", second.Key)

	empty, err := catalog.New(nil, nil)
	require.NoError(t, err)
	_, err = empty.Random(roller)
	assert.ErrorIs(t, err, catalog.ErrEmpty)
}
