package battles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/KirkDiggler/battle-arena/internal/entities"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/KirkDiggler/battle-arena/internal/repositories"
	"github.com/KirkDiggler/battle-arena/internal/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	// Key patterns
	battleKey        = "battle:%s"
	battleLockKey    = "battle:%s:lock"
	activeBattlesKey = "player:%s:active_battles"

	DefaultLockTTL   = 10 * time.Second
	DefaultLockRetry = 25 * time.Millisecond
)

// releaseScript deletes the lock only if this holder still owns it
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        *redis.Client
	UUIDGenerator uuid.Generator // lock tokens
	LockTTL       time.Duration
	LockRetry     time.Duration
}

type redisRepo struct {
	client        *redis.Client
	uuidGenerator uuid.Generator
	lockTTL       time.Duration
	lockRetry     time.Duration
}

// NewRedisRepository creates a Redis-backed battle repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	repo := &redisRepo{
		client:        cfg.Client,
		uuidGenerator: cfg.UUIDGenerator,
		lockTTL:       cfg.LockTTL,
		lockRetry:     cfg.LockRetry,
	}
	if repo.uuidGenerator == nil {
		repo.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if repo.lockTTL <= 0 {
		repo.lockTTL = DefaultLockTTL
	}
	if repo.lockRetry <= 0 {
		repo.lockRetry = DefaultLockRetry
	}

	return repo
}

func (r *redisRepo) Create(ctx context.Context, battle *entities.Battle) error {
	if battle == nil {
		return dnderr.InvalidArgument("battle cannot be nil")
	}
	if battle.ID == "" {
		return dnderr.InvalidArgument("battle ID cannot be empty")
	}

	data, err := json.Marshal(battle)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal battle")
	}

	created, err := r.client.SetNX(ctx, fmt.Sprintf(battleKey, battle.ID), string(data), 0).Result()
	if err != nil {
		return dnderr.Wrapf(err, "failed to create battle %s", battle.ID)
	}
	if !created {
		return repositories.NewRecordExistsError(repositories.RecordBattle, battle.ID)
	}

	if !battle.IsActive() {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, side := range battle.Sides {
		if side.IsAI {
			continue
		}
		pipe.SAdd(ctx, fmt.Sprintf(activeBattlesKey, side.PlayerID), battle.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrapf(err, "failed to index battle %s", battle.ID)
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, id string) (*entities.Battle, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("battle ID cannot be empty")
	}

	data, err := r.client.Get(ctx, fmt.Sprintf(battleKey, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repositories.NewRecordNotFoundError(repositories.RecordBattle, id)
		}
		return nil, dnderr.Wrapf(err, "failed to get battle %s", id)
	}

	var battle entities.Battle
	if err := json.Unmarshal(data, &battle); err != nil {
		return nil, dnderr.Wrapf(err, "failed to unmarshal battle %s", id)
	}

	return &battle, nil
}

func (r *redisRepo) GetActiveByPlayer(ctx context.Context, playerID string) (*entities.Battle, error) {
	ids, err := r.client.SMembers(ctx, fmt.Sprintf(activeBattlesKey, playerID)).Result()
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get active battles for %s", playerID)
	}

	found := make([]*entities.Battle, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			battle, err := r.Get(gctx, id)
			if err != nil {
				// index entries can outlive a battle record
				if dnderr.IsNotFound(err) {
					return nil
				}
				return err
			}
			found[i] = battle
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var latest *entities.Battle
	for _, battle := range found {
		if battle == nil || !battle.IsActive() {
			continue
		}
		// only battles the player controls count
		if side := battle.Side(playerID); side == nil || side.IsAI {
			continue
		}
		if latest == nil || battle.CreatedAt.After(latest.CreatedAt) {
			latest = battle
		}
	}
	if latest == nil {
		return nil, repositories.NewRecordNotFoundError(repositories.RecordBattle, "active:"+playerID)
	}

	return latest, nil
}

func (r *redisRepo) WithLock(ctx context.Context, id string, fn MutateFunc) (*entities.Battle, error) {
	lockKey := fmt.Sprintf(battleLockKey, id)
	token := r.uuidGenerator.New()

	if err := r.acquire(ctx, lockKey, token); err != nil {
		return nil, err
	}
	defer r.release(context.WithoutCancel(ctx), lockKey, token)

	battle, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(battle); err != nil {
		return nil, err
	}

	if err := r.save(ctx, battle); err != nil {
		return nil, err
	}

	return battle, nil
}

func (r *redisRepo) acquire(ctx context.Context, lockKey, token string) error {
	for {
		ok, err := r.client.SetNX(ctx, lockKey, token, r.lockTTL).Result()
		if err != nil {
			return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to acquire battle lock")
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return dnderr.WrapWithCode(ctx.Err(), dnderr.CodeUnavailable, "timed out waiting for battle lock")
		case <-time.After(r.lockRetry):
		}
	}
}

func (r *redisRepo) release(ctx context.Context, lockKey, token string) {
	if err := r.client.Eval(ctx, releaseScript, []string{lockKey}, token).Err(); err != nil {
		// the TTL frees it eventually
		log.Printf("Failed to release battle lock %s: %v", lockKey, err)
	}
}

func (r *redisRepo) save(ctx context.Context, battle *entities.Battle) error {
	data, err := json.Marshal(battle)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal battle")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, fmt.Sprintf(battleKey, battle.ID), string(data), 0)
	if !battle.IsActive() {
		for _, side := range battle.Sides {
			pipe.SRem(ctx, fmt.Sprintf(activeBattlesKey, side.PlayerID), battle.ID)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrapf(err, "failed to save battle %s", battle.ID)
	}

	return nil
}
