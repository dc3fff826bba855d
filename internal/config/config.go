package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Catalog sources
const (
	CatalogEmbedded = "embedded"
	CatalogFile     = "file"
	CatalogPokeAPI  = "pokeapi"
)

// Config holds all configuration for the application
type Config struct {
	Discord DiscordConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Metrics MetricsConfig
	Battle  BattleConfig
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `env:"DISCORD_TOKEN,required,notEmpty"`
	AppID   string `env:"DISCORD_APP_ID,required,notEmpty"`
	GuildID string `env:"DISCORD_GUILD_ID"` // Optional: for guild-specific commands
}

// RedisConfig holds Redis-specific configuration. An empty URL means the
// in-memory repositories are used.
type RedisConfig struct {
	URL       string        `env:"REDIS_URL"`
	LockTTL   time.Duration `env:"REDIS_LOCK_TTL" envDefault:"10s"`
	LockRetry time.Duration `env:"REDIS_LOCK_RETRY" envDefault:"25ms"`
}

// CatalogConfig selects where creature templates come from
type CatalogConfig struct {
	Source     string `env:"CATALOG_SOURCE" envDefault:"embedded"`
	Path       string `env:"CATALOG_PATH"`
	PokeAPIURL string `env:"POKEAPI_URL" envDefault:"https://pokeapi.co/api/v2"`
	Count      int    `env:"POKEAPI_COUNT" envDefault:"151"`
}

// defaultMetricsAddr applies only when METRICS_ADDR is unset
const defaultMetricsAddr = ":9090"

// MetricsConfig holds the Prometheus listener address. Setting METRICS_ADDR
// to an empty value disables the listener.
type MetricsConfig struct {
	Addr string `env:"METRICS_ADDR"`
}

// BattleConfig holds gameplay settings
type BattleConfig struct {
	AIUsername    string        `env:"AI_USERNAME" envDefault:"AI Trainer"`
	ActionTimeout time.Duration `env:"BATTLE_ACTION_TIMEOUT" envDefault:"5s"` // bounds waiting on a battle lock
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	// envDefault would also replace an explicit empty value
	if _, ok := os.LookupEnv("METRICS_ADDR"); !ok {
		cfg.Metrics.Addr = defaultMetricsAddr
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Catalog.Source {
	case CatalogEmbedded, CatalogPokeAPI:
	case CatalogFile:
		if c.Catalog.Path == "" {
			return fmt.Errorf("CATALOG_PATH is required when CATALOG_SOURCE=%s", CatalogFile)
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.Catalog.Source)
	}

	if c.Catalog.Source == CatalogPokeAPI && c.Catalog.Count <= 0 {
		return fmt.Errorf("POKEAPI_COUNT must be positive")
	}
	if c.Battle.AIUsername == "" {
		return fmt.Errorf("AI_USERNAME cannot be empty")
	}
	if c.Redis.LockTTL <= 0 {
		return fmt.Errorf("REDIS_LOCK_TTL must be positive")
	}

	return nil
}
