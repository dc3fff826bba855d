package entities

// Creature is an immutable catalog template
type Creature struct {
	Key           string `json:"key" yaml:"key"`
	Name          string `json:"name" yaml:"name"`
	PokedexNumber int    `json:"pokedex_number,omitempty" yaml:"pokedex_number"`
	SpriteURL     string `json:"sprite_url,omitempty" yaml:"sprite_url"`
	BaseHP        int    `json:"base_hp" yaml:"base_hp"`
	BaseAttack    int    `json:"base_attack" yaml:"base_attack"`
	BaseDefense   int    `json:"base_defense" yaml:"base_defense"`
	BaseSpeed     int    `json:"base_speed" yaml:"base_speed"`
	PrimaryType   string `json:"primary_type" yaml:"primary_type"`
	SecondaryType string `json:"secondary_type,omitempty" yaml:"secondary_type"`
}

// MaxHP is the creature's starting and maximum health in battle
func (c *Creature) MaxHP() int {
	return c.BaseHP
}

// OwnedCreature is a contestant's instance of a catalog creature
type OwnedCreature struct {
	ID          string `json:"id"`
	PlayerID    string `json:"player_id"`
	CreatureKey string `json:"creature_key"`
}

// Effectiveness multipliers found in a type chart
const (
	SuperEffective   = 2.0
	NormalEffective  = 1.0
	NotVeryEffective = 0.5
	NoEffect         = 0.0
)

// TypeChart maps attacking type -> defending type -> multiplier.
// Missing pairs are neutral.
type TypeChart map[string]map[string]float64

// Lookup returns the multiplier for a single pair and whether it was recorded
func (t TypeChart) Lookup(attacking, defending string) (float64, bool) {
	row, ok := t[attacking]
	if !ok {
		return NormalEffective, false
	}
	multiplier, ok := row[defending]
	if !ok {
		return NormalEffective, false
	}
	return multiplier, true
}

// Set records a multiplier for a pair
func (t TypeChart) Set(attacking, defending string, multiplier float64) {
	row, ok := t[attacking]
	if !ok {
		row = make(map[string]float64)
		t[attacking] = row
	}
	row[defending] = multiplier
}
