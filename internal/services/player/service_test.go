package player_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/battle-arena/internal/catalog"
	"github.com/KirkDiggler/battle-arena/internal/entities"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/KirkDiggler/battle-arena/internal/repositories/players"
	mockplayers "github.com/KirkDiggler/battle-arena/internal/repositories/players/mock"
	"github.com/KirkDiggler/battle-arena/internal/services/player"
	mockplayer "github.com/KirkDiggler/battle-arena/internal/services/player/mock"
	mockuuid "github.com/KirkDiggler/battle-arena/internal/uuid/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]*entities.Creature{
		{Key: "bulbasaur", Name: "Bulbasaur", PokedexNumber: 1, BaseHP: 45, BaseAttack: 49, BaseDefense: 49, BaseSpeed: 45, PrimaryType: "grass"},
		{Key: "pikachu", Name: "Pikachu", PokedexNumber: 25, BaseHP: 35, BaseAttack: 55, BaseDefense: 40, BaseSpeed: 90, PrimaryType: "electric"},
	}, nil)
	require.NoError(t, err)
	return c
}

func TestEnsurePlayer(t *testing.T) {
	ctx := context.Background()
	repo := players.NewInMemoryRepository()
	svc := player.NewService(&player.ServiceConfig{Repository: repo, Catalog: newCatalog(t)})

	created, err := svc.EnsurePlayer(ctx, "123", "ash")
	require.NoError(t, err)
	assert.Equal(t, "ash", created.Username)
	assert.False(t, created.CreatedAt.IsZero())

	again, err := svc.EnsurePlayer(ctx, "123", "ash")
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, again.CreatedAt)

	_, err = svc.EnsurePlayer(ctx, "456", "ash")
	assert.ErrorIs(t, err, player.ErrUsernameTaken)

	_, err = svc.EnsurePlayer(ctx, "", "ash")
	assert.True(t, dnderr.IsInvalidArgument(err))
	_, err = svc.EnsurePlayer(ctx, "789", "  ")
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestEnsurePlayer_StampsCreatedAtFromClock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := mockplayer.NewMockTimeProvider(ctrl)
	clock.EXPECT().Now().Return(now)

	svc := player.NewService(&player.ServiceConfig{
		Repository:   players.NewInMemoryRepository(),
		Catalog:      newCatalog(t),
		TimeProvider: clock,
	})

	created, err := svc.EnsurePlayer(context.Background(), "123", "ash")

	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
}

func TestEnsurePlayer_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mockplayers.NewMockRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "123").Return(nil, errors.New("redis down"))

	svc := player.NewService(&player.ServiceConfig{Repository: repo, Catalog: newCatalog(t)})
	_, err := svc.EnsurePlayer(context.Background(), "123", "ash")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get player")
}

func TestChooseCreature(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	uuidGen := mockuuid.NewMockGenerator(ctrl)
	repo := players.NewInMemoryRepository()
	svc := player.NewService(&player.ServiceConfig{Repository: repo, Catalog: newCatalog(t), UUIDGenerator: uuidGen})

	_, err := svc.EnsurePlayer(ctx, "123", "ash")
	require.NoError(t, err)

	uuidGen.EXPECT().New().Return("owned-1")
	p, err := svc.ChooseCreature(ctx, "123", "Pikachu")
	require.NoError(t, err)
	assert.Equal(t, "owned-1", p.ActiveCreatureID)
	assert.Equal(t, "pikachu", p.ActiveCreature().CreatureKey)

	uuidGen.EXPECT().New().Return("owned-2")
	_, err = svc.ChooseCreature(ctx, "123", "bulbasaur")
	require.NoError(t, err)

	// switching back reuses the owned instance
	p, err = svc.ChooseCreature(ctx, "123", "pikachu")
	require.NoError(t, err)
	assert.Equal(t, "owned-1", p.ActiveCreatureID)
	assert.Len(t, p.Creatures, 2)

	stored, err := repo.Get(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, p.Creatures, stored.Creatures)

	withActive, err := repo.ListWithActiveCreature(ctx)
	require.NoError(t, err)
	assert.Len(t, withActive, 1)
}

func TestChooseCreature_Errors(t *testing.T) {
	ctx := context.Background()
	svc := player.NewService(&player.ServiceConfig{Repository: players.NewInMemoryRepository(), Catalog: newCatalog(t)})

	_, err := svc.ChooseCreature(ctx, "123", "missingno")
	assert.ErrorIs(t, err, player.ErrCreatureNotFound)

	_, err = svc.ChooseCreature(ctx, "123", "pikachu")
	assert.True(t, dnderr.IsNotFound(err), "unregistered player")
}

func TestListCreatures(t *testing.T) {
	svc := player.NewService(&player.ServiceConfig{Repository: players.NewInMemoryRepository(), Catalog: newCatalog(t)})

	creatures, err := svc.ListCreatures(context.Background())

	require.NoError(t, err)
	require.Len(t, creatures, 2)
	assert.Equal(t, "bulbasaur", creatures[0].Key)
}

func TestAcquireCreature_KeepsActiveSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	uuidGen := mockuuid.NewMockGenerator(ctrl)
	repo := players.NewInMemoryRepository()
	svc := player.NewService(&player.ServiceConfig{Repository: repo, Catalog: newCatalog(t), UUIDGenerator: uuidGen})

	_, err := svc.EnsurePlayer(ctx, "123", "ash")
	require.NoError(t, err)
	uuidGen.EXPECT().New().Return("owned-1")
	_, err = svc.ChooseCreature(ctx, "123", "pikachu")
	require.NoError(t, err)

	uuidGen.EXPECT().New().Return("owned-2")
	owned, err := svc.AcquireCreature(ctx, "123", "bulbasaur")
	require.NoError(t, err)
	assert.Equal(t, "owned-2", owned.ID)
	assert.Equal(t, "bulbasaur", owned.CreatureKey)

	stored, err := repo.Get(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "owned-1", stored.ActiveCreatureID)
	assert.Len(t, stored.Creatures, 2)

	// an owned creature is reused
	again, err := svc.AcquireCreature(ctx, "123", "Bulbasaur")
	require.NoError(t, err)
	assert.Equal(t, "owned-2", again.ID)
}

func TestAcquireCreature_OwnedCreatureSkipsUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mockplayers.NewMockRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "123").Return(&entities.Player{
		ID:       "123",
		Username: "ash",
		Creatures: []*entities.OwnedCreature{
			{ID: "owned-1", PlayerID: "123", CreatureKey: "pikachu"},
		},
	}, nil)

	svc := player.NewService(&player.ServiceConfig{Repository: repo, Catalog: newCatalog(t)})
	owned, err := svc.AcquireCreature(context.Background(), "123", "pikachu")

	require.NoError(t, err)
	assert.Equal(t, "owned-1", owned.ID)
}

func TestAcquireCreature_Errors(t *testing.T) {
	ctx := context.Background()
	repo := players.NewInMemoryRepository()
	svc := player.NewService(&player.ServiceConfig{Repository: repo, Catalog: newCatalog(t)})

	_, err := svc.EnsurePlayer(ctx, "123", "ash")
	require.NoError(t, err)

	_, err = svc.AcquireCreature(ctx, "123", "missingno")
	assert.ErrorIs(t, err, player.ErrCreatureNotFound)

	stored, err := repo.Get(ctx, "123")
	require.NoError(t, err)
	assert.Empty(t, stored.Creatures)
	assert.Empty(t, stored.ActiveCreatureID)

	_, err = svc.AcquireCreature(ctx, "", "pikachu")
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	repo := players.NewInMemoryRepository()
	svc := player.NewService(&player.ServiceConfig{Repository: repo, Catalog: newCatalog(t)})

	_, err := svc.EnsurePlayer(ctx, "ash", "Ash")
	require.NoError(t, err)
	_, err = svc.EnsurePlayer(ctx, "gary", "Gary")
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, "ash")
	require.NoError(t, err)
	assert.Equal(t, "Ash", profile.Player.Username)
	assert.Nil(t, profile.ActiveCreature)
	assert.Zero(t, profile.WinRate)

	_, err = svc.ChooseCreature(ctx, "ash", "pikachu")
	require.NoError(t, err)
	require.NoError(t, repo.RecordResult(ctx, "ash", "gary"))
	require.NoError(t, repo.RecordResult(ctx, "ash", "gary"))
	require.NoError(t, repo.RecordResult(ctx, "gary", "ash"))

	profile, err = svc.GetProfile(ctx, "ash")
	require.NoError(t, err)
	assert.Equal(t, 2, profile.Player.Wins)
	assert.Equal(t, 1, profile.Player.Losses)
	assert.Equal(t, 66.67, profile.WinRate)
	require.NotNil(t, profile.ActiveCreature)
	assert.Equal(t, "Pikachu", profile.ActiveCreature.Name)
}

func TestGetProfile_Errors(t *testing.T) {
	ctx := context.Background()
	svc := player.NewService(&player.ServiceConfig{Repository: players.NewInMemoryRepository(), Catalog: newCatalog(t)})

	_, err := svc.GetProfile(ctx, "")
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = svc.GetProfile(ctx, "nobody")
	assert.True(t, dnderr.IsNotFound(err))
}
