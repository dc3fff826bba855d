package battles_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/battle-arena/internal/entities"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/KirkDiggler/battle-arena/internal/repositories/battles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBattle(id string, createdAt time.Time) *entities.Battle {
	return &entities.Battle{
		ID: id,
		Sides: [2]*entities.BattleSide{
			{PlayerID: "ash", Username: "Ash", Creature: &entities.Creature{Key: "pikachu", BaseHP: 35}, CurrentHP: 35, Inventory: entities.DefaultInventory()},
			{PlayerID: "ai", Username: "AI Trainer", IsAI: true, Creature: &entities.Creature{Key: "eevee", BaseHP: 55}, CurrentHP: 55, Inventory: entities.DefaultInventory()},
		},
		Status:              entities.BattleStatusActive,
		TurnNumber:          1,
		CurrentTurnPlayerID: "ash",
		CreatedAt:           createdAt,
	}
}

func TestInMemory_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := battles.NewInMemoryRepository()
	battle := newBattle("b1", time.Now())

	require.NoError(t, repo.Create(ctx, battle))

	// stored copy is isolated from the caller
	battle.Sides[0].CurrentHP = 1

	got, err := repo.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 35, got.Sides[0].CurrentHP)

	got.Sides[0].CurrentHP = 2
	again, err := repo.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 35, again.Sides[0].CurrentHP)

	err = repo.Create(ctx, newBattle("b1", time.Now()))
	assert.Equal(t, dnderr.CodeAlreadyExists, dnderr.GetCode(err))

	_, err = repo.Get(ctx, "missing")
	assert.True(t, dnderr.IsNotFound(err))

	assert.Error(t, repo.Create(ctx, nil))
	assert.Error(t, repo.Create(ctx, &entities.Battle{}))
}

func TestInMemory_GetActiveByPlayer(t *testing.T) {
	ctx := context.Background()
	repo := battles.NewInMemoryRepository()
	now := time.Now()

	_, err := repo.GetActiveByPlayer(ctx, "ash")
	assert.True(t, dnderr.IsNotFound(err))

	require.NoError(t, repo.Create(ctx, newBattle("older", now.Add(-time.Minute))))
	require.NoError(t, repo.Create(ctx, newBattle("newer", now)))

	got, err := repo.GetActiveByPlayer(ctx, "ash")
	require.NoError(t, err)
	assert.Equal(t, "newer", got.ID)

	// a side played automatically does not count as the player's battle
	_, err = repo.GetActiveByPlayer(ctx, "ai")
	assert.True(t, dnderr.IsNotFound(err))

	_, err = repo.WithLock(ctx, "newer", func(b *entities.Battle) error {
		b.Complete("ash", now)
		return nil
	})
	require.NoError(t, err)

	got, err = repo.GetActiveByPlayer(ctx, "ash")
	require.NoError(t, err)
	assert.Equal(t, "older", got.ID)
}

func TestInMemory_WithLock(t *testing.T) {
	ctx := context.Background()
	repo := battles.NewInMemoryRepository()
	require.NoError(t, repo.Create(ctx, newBattle("b1", time.Now())))

	t.Run("persists on success", func(t *testing.T) {
		updated, err := repo.WithLock(ctx, "b1", func(b *entities.Battle) error {
			b.Sides[1].CurrentHP = 40
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 40, updated.Sides[1].CurrentHP)

		got, err := repo.Get(ctx, "b1")
		require.NoError(t, err)
		assert.Equal(t, 40, got.Sides[1].CurrentHP)
	})

	t.Run("discards on error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := repo.WithLock(ctx, "b1", func(b *entities.Battle) error {
			b.Sides[1].CurrentHP = 0
			b.Status = entities.BattleStatusCompleted
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := repo.Get(ctx, "b1")
		require.NoError(t, err)
		assert.Equal(t, 40, got.Sides[1].CurrentHP)
		assert.True(t, got.IsActive())
	})

	t.Run("missing battle", func(t *testing.T) {
		called := false
		_, err := repo.WithLock(ctx, "missing", func(b *entities.Battle) error {
			called = true
			return nil
		})
		assert.True(t, dnderr.IsNotFound(err))
		assert.False(t, called)
	})
}

func TestInMemory_WithLockSerializes(t *testing.T) {
	ctx := context.Background()
	repo := battles.NewInMemoryRepository()
	require.NoError(t, repo.Create(ctx, newBattle("b1", time.Now())))

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.WithLock(ctx, "b1", func(b *entities.Battle) error {
				turn := b.TurnNumber
				time.Sleep(time.Millisecond)
				b.TurnNumber = turn + 1
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 1+workers, got.TurnNumber)
}

func TestInMemory_WithLockHonorsContext(t *testing.T) {
	ctx := context.Background()
	repo := battles.NewInMemoryRepository()
	require.NoError(t, repo.Create(ctx, newBattle("b1", time.Now())))

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = repo.WithLock(ctx, "b1", func(b *entities.Battle) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err := repo.WithLock(waitCtx, "b1", func(b *entities.Battle) error {
		t.Error("should not run while the lock is held")
		return nil
	})
	assert.Equal(t, dnderr.CodeUnavailable, dnderr.GetCode(err))

	close(release)
	<-done

	// other battles are never blocked
	require.NoError(t, repo.Create(ctx, newBattle("b2", time.Now())))
	_, err = repo.WithLock(ctx, "b2", func(b *entities.Battle) error { return nil })
	assert.NoError(t, err)
}
