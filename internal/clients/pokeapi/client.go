package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/battle-arena/internal/catalog"
	"github.com/KirkDiggler/battle-arena/internal/entities"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBaseURL     = "https://pokeapi.co/api/v2"
	DefaultConcurrency = 8
	defaultTimeout     = 30 * time.Second
)

type client struct {
	baseURL     string
	httpClient  *http.Client
	concurrency int
}

type Config struct {
	BaseURL     string
	HttpClient  *http.Client
	Concurrency int
}

func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("pokeapi config is required")
	}

	c := &client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  cfg.HttpClient,
		concurrency: cfg.Concurrency,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.concurrency <= 0 {
		c.concurrency = DefaultConcurrency
	}

	return c, nil
}

func (c *client) GetCreature(ctx context.Context, id int) (*entities.Creature, error) {
	if id <= 0 {
		return nil, dnderr.InvalidArgumentf("invalid pokedex number %d", id)
	}

	var resp pokemonResponse
	if err := c.get(ctx, fmt.Sprintf("/pokemon/%d", id), &resp); err != nil {
		return nil, err
	}

	return pokemonToCreature(&resp), nil
}

func (c *client) GetTypeRelations(ctx context.Context, name string) (*catalog.TypeRelations, error) {
	if name == "" {
		return nil, dnderr.InvalidArgument("type name is required")
	}

	var resp typeResponse
	if err := c.get(ctx, "/type/"+strings.ToLower(name), &resp); err != nil {
		return nil, err
	}

	return typeToRelations(&resp), nil
}

func (c *client) BuildCatalog(ctx context.Context, count int) (*catalog.Catalog, error) {
	if count <= 0 {
		return nil, dnderr.InvalidArgumentf("catalog size must be positive, got %d", count)
	}

	creatures := make([]*entities.Creature, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i := 0; i < count; i++ {
		id := i + 1
		g.Go(func() error {
			creature, err := c.GetCreature(gctx, id)
			if err != nil {
				// gaps in the dex are skipped rather than failing the build
				if dnderr.IsNotFound(err) {
					log.Printf("pokeapi: creature %d not found, skipping", id)
					return nil
				}
				return err
			}
			creatures[id-1] = creature
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	found := make([]*entities.Creature, 0, count)
	typeSet := make(map[string]struct{})
	for _, creature := range creatures {
		if creature == nil {
			continue
		}
		found = append(found, creature)
		typeSet[creature.PrimaryType] = struct{}{}
		if creature.SecondaryType != "" {
			typeSet[creature.SecondaryType] = struct{}{}
		}
	}

	typeNames := make([]string, 0, len(typeSet))
	for name := range typeSet {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	var mu sync.Mutex
	relations := make([]*catalog.TypeRelations, 0, len(typeNames))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, name := range typeNames {
		g.Go(func() error {
			rel, err := c.GetTypeRelations(gctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			relations = append(relations, rel)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Printf("pokeapi: built catalog with %d creatures and %d types", len(found), len(relations))

	return catalog.New(found, relations)
}

func (c *client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return dnderr.Wrapf(err, "failed to build request for %s", path)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, fmt.Sprintf("request to %s failed", path))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return dnderr.NotFoundf("%s not found", path)
	case resp.StatusCode != http.StatusOK:
		return dnderr.Newf(dnderr.CodeUnavailable, "unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dnderr.Wrapf(err, "failed to decode %s", path)
	}

	return nil
}
