package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/KirkDiggler/battle-arena/internal/catalog"
	"github.com/KirkDiggler/battle-arena/internal/clients/pokeapi"
	"github.com/KirkDiggler/battle-arena/internal/config"
)

// catalogBuildTimeout bounds the PokeAPI fan-out at startup
const catalogBuildTimeout = 2 * time.Minute

func loadCatalog(ctx context.Context, cfg *config.CatalogConfig) (*catalog.Catalog, error) {
	switch cfg.Source {
	case config.CatalogEmbedded:
		return catalog.Default()
	case config.CatalogFile:
		return catalog.LoadFile(cfg.Path)
	case config.CatalogPokeAPI:
		client, err := pokeapi.New(&pokeapi.Config{
			BaseURL:    cfg.PokeAPIURL,
			HttpClient: &http.Client{Timeout: 30 * time.Second},
		})
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(ctx, catalogBuildTimeout)
		defer cancel()
		return client.BuildCatalog(ctx, cfg.Count)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}
