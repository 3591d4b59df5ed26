package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"baduk/internal/bootstrap"
	"baduk/internal/domain/baduk"
	errs "baduk/internal/errors"
)

func newRedisRepository(t *testing.T, ttlHours int) (*GameRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cfg := bootstrap.Config{StateTTLHours: ttlHours}
	return NewGameRepository(cfg, zaptest.NewLogger(t).Sugar(), client), mr
}

func TestGameRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRedisRepository(t, 2)

	key, err := repo.GenerateGameKey(ctx)
	require.NoError(t, err)
	assert.Len(t, key, 36)

	stored := storedGame(t, 9)
	stored.State, _, err = baduk.PlaceStone(stored.State, 2, 6)
	require.NoError(t, err)
	require.NoError(t, repo.SaveGame(ctx, key, stored))
	require.NoError(t, repo.SaveSGF(ctx, key, "(;SZ[9];B[gc])"))

	loaded, err := repo.LoadGame(ctx, key)
	require.NoError(t, err)
	assert.True(t, stored.State.Board.Equal(loaded.State.Board))
	assert.Equal(t, baduk.White, loaded.State.CurrentPlayer)
	assert.Equal(t, 1, loaded.State.MoveNumber)

	text, err := repo.LoadSGF(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "(;SZ[9];B[gc])", text)

	assert.Equal(t, 2*time.Hour, mr.TTL(stateKeyPrefix+key))
	assert.Equal(t, 2*time.Hour, mr.TTL(sgfKeyPrefix+key))
}

func TestGameRepositoryExpires(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRedisRepository(t, 1)
	require.NoError(t, repo.SaveGame(ctx, "k", storedGame(t, 5)))
	require.NoError(t, repo.SaveSGF(ctx, "k", "(;SZ[5])"))

	mr.FastForward(61 * time.Minute)

	_, err := repo.LoadGame(ctx, "k")
	assert.ErrorIs(t, err, errs.ErrGameNotFound)
	_, err = repo.LoadSGF(ctx, "k")
	assert.ErrorIs(t, err, errs.ErrGameNotFound)
}

func TestGameRepositoryZeroTTLKeepsGames(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRedisRepository(t, 0)
	require.NoError(t, repo.SaveGame(ctx, "k", storedGame(t, 5)))

	assert.Zero(t, mr.TTL(stateKeyPrefix+"k"))
	mr.FastForward(1000 * time.Hour)
	_, err := repo.LoadGame(ctx, "k")
	assert.NoError(t, err)
}

func TestGameRepositoryMissing(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRedisRepository(t, 1)

	_, err := repo.LoadGame(ctx, "nope")
	assert.ErrorIs(t, err, errs.ErrGameNotFound)
	_, err = repo.LoadSGF(ctx, "nope")
	assert.ErrorIs(t, err, errs.ErrGameNotFound)
}

func TestGameRepositoryRejectsBrokenState(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRedisRepository(t, 1)
	require.NoError(t, mr.Set(stateKeyPrefix+"k", `{"state":{"board":["..",".."],"current_player":"","consecutive_passes":0}}`))

	_, err := repo.LoadGame(ctx, "k")
	assert.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestGameRepositoryKeySkipsTakenKeys(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRedisRepository(t, 1)

	for i := 0; i < 5; i++ {
		key, err := repo.GenerateGameKey(ctx)
		require.NoError(t, err)
		assert.False(t, mr.Exists(stateKeyPrefix+key))
		require.NoError(t, repo.SaveGame(ctx, key, storedGame(t, 5)))
	}
	assert.Len(t, mr.Keys(), 5)
}

func TestGameRepositoryRedisDown(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRedisRepository(t, 1)
	mr.Close()

	_, err := repo.LoadGame(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrGameNotFound)
	_, err = repo.GenerateGameKey(ctx)
	assert.Error(t, err)
	assert.Error(t, repo.SaveGame(ctx, "k", storedGame(t, 5)))
}
