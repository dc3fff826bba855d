package players

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/KirkDiggler/battle-arena/internal/entities"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/KirkDiggler/battle-arena/internal/repositories"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	// Key patterns
	playerKey       = "player:%s"
	usernameKey     = "player:username:%s"
	recordKey       = "player:%s:record"
	withCreatureKey = "players:with_creature"

	winsField   = "wins"
	lossesField = "losses"
)

// Data is the stored profile. The win/loss record lives in its own hash so
// it can be incremented without a read-modify-write.
type Data struct {
	ID               string                    `json:"id"`
	Username         string                    `json:"username"`
	IsAI             bool                      `json:"is_ai"`
	Creatures        []*entities.OwnedCreature `json:"creatures"`
	ActiveCreatureID string                    `json:"active_creature_id,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
}

type redisRepo struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) Repository {
	if client == nil {
		panic("redis client is required")
	}
	return &redisRepo{client: client}
}

func (r *redisRepo) Create(ctx context.Context, player *entities.Player) error {
	if err := validate(player); err != nil {
		return err
	}

	jsonData, err := json.Marshal(toPlayerData(player))
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal player data")
	}

	nameKey := fmt.Sprintf(usernameKey, player.Username)
	claimed, err := r.client.SetNX(ctx, nameKey, player.ID, 0).Result()
	if err != nil {
		return dnderr.Wrapf(err, "failed to claim username %s", player.Username)
	}
	if !claimed {
		return repositories.NewRecordExistsError(repositories.RecordPlayer, player.Username)
	}

	created, err := r.client.SetNX(ctx, fmt.Sprintf(playerKey, player.ID), string(jsonData), 0).Result()
	if err != nil || !created {
		// give the username back
		r.client.Del(ctx, nameKey)
		if err != nil {
			return dnderr.Wrapf(err, "failed to create player %s", player.ID)
		}
		return repositories.NewRecordExistsError(repositories.RecordPlayer, player.ID)
	}

	if player.ActiveCreature() != nil {
		if err := r.client.SAdd(ctx, withCreatureKey, player.ID).Err(); err != nil {
			return dnderr.Wrapf(err, "failed to index player %s", player.ID)
		}
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, id string) (*entities.Player, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("player ID cannot be empty")
	}

	jsonData, err := r.client.Get(ctx, fmt.Sprintf(playerKey, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repositories.NewRecordNotFoundError(repositories.RecordPlayer, id)
		}
		return nil, dnderr.Wrapf(err, "failed to get player %s", id)
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, dnderr.Wrapf(err, "failed to unmarshal player %s", id)
	}

	record, err := r.client.HGetAll(ctx, fmt.Sprintf(recordKey, id)).Result()
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get record for player %s", id)
	}

	player := toPlayer(&data)
	player.Wins, _ = strconv.Atoi(record[winsField])
	player.Losses, _ = strconv.Atoi(record[lossesField])

	return player, nil
}

func (r *redisRepo) GetByUsername(ctx context.Context, username string) (*entities.Player, error) {
	id, err := r.client.Get(ctx, fmt.Sprintf(usernameKey, username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repositories.NewRecordNotFoundError(repositories.RecordPlayer, username)
		}
		return nil, dnderr.Wrapf(err, "failed to look up username %s", username)
	}

	return r.Get(ctx, id)
}

func (r *redisRepo) Update(ctx context.Context, player *entities.Player) error {
	if err := validate(player); err != nil {
		return err
	}

	existing, err := r.Get(ctx, player.ID)
	if err != nil {
		return err
	}

	data := toPlayerData(player)
	data.Username = existing.Username

	jsonData, err := json.Marshal(data)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal player data")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, fmt.Sprintf(playerKey, player.ID), string(jsonData), 0)
	if player.ActiveCreature() != nil {
		pipe.SAdd(ctx, withCreatureKey, player.ID)
	} else {
		pipe.SRem(ctx, withCreatureKey, player.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrapf(err, "failed to update player %s", player.ID)
	}

	return nil
}

func (r *redisRepo) ListWithActiveCreature(ctx context.Context) ([]*entities.Player, error) {
	ids, err := r.client.SMembers(ctx, withCreatureKey).Result()
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list players")
	}

	found := make([]*entities.Player, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			player, err := r.Get(gctx, id)
			if err != nil {
				if dnderr.IsNotFound(err) {
					return nil
				}
				return err
			}
			found[i] = player
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*entities.Player, 0, len(found))
	for _, player := range found {
		if player == nil || player.ActiveCreature() == nil {
			continue
		}
		result = append(result, player)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

func (r *redisRepo) RecordResult(ctx context.Context, winnerID, loserID string) error {
	if winnerID == "" || loserID == "" {
		return dnderr.InvalidArgument("winner and loser are required")
	}

	pipe := r.client.Pipeline()
	pipe.HIncrBy(ctx, fmt.Sprintf(recordKey, winnerID), winsField, 1)
	pipe.HIncrBy(ctx, fmt.Sprintf(recordKey, loserID), lossesField, 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrapf(err, "failed to record result %s over %s", winnerID, loserID)
	}

	return nil
}

func toPlayerData(player *entities.Player) *Data {
	return &Data{
		ID:               player.ID,
		Username:         player.Username,
		IsAI:             player.IsAI,
		Creatures:        player.Creatures,
		ActiveCreatureID: player.ActiveCreatureID,
		CreatedAt:        player.CreatedAt,
	}
}

func toPlayer(data *Data) *entities.Player {
	return &entities.Player{
		ID:               data.ID,
		Username:         data.Username,
		IsAI:             data.IsAI,
		Creatures:        data.Creatures,
		ActiveCreatureID: data.ActiveCreatureID,
		CreatedAt:        data.CreatedAt,
	}
}
