package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"baduk/internal/bootstrap"
	"baduk/internal/domain/game"
	errs "baduk/internal/errors"
)

const (
	stateKeyPrefix = "baduk:game:"
	sgfKeyPrefix   = "baduk:sgf:"
	redisTimeout   = 5 * time.Second
)

// GameRepository keeps live games in redis: the encoded state and the SGF
// record under separate keys, both expiring after cfg.StateTTL of inactivity.
type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
	}
}

func (g *GameRepository) GenerateGameKey(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	for {
		key := uuid.New().String()
		n, err := g.redis.Exists(ctx, stateKeyPrefix+key).Result()
		if err != nil {
			return "", err
		}
		if n == 0 {
			return key, nil
		}
	}
}

func (g *GameRepository) SaveGame(ctx context.Context, key string, stored game.StoredGame) error {
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", key, err)
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	if err = g.redis.Set(ctx, stateKeyPrefix+key, data, g.cfg.StateTTL()).Err(); err != nil {
		g.log.Errorf("failed to save game %s to redis: %v", key, err)
		return err
	}
	return nil
}

func (g *GameRepository) LoadGame(ctx context.Context, key string) (game.StoredGame, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	data, err := g.redis.Get(ctx, stateKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return game.StoredGame{}, fmt.Errorf("%w: %s", errs.ErrGameNotFound, key)
	}
	if err != nil {
		g.log.Errorf("failed to load game %s from redis: %v", key, err)
		return game.StoredGame{}, err
	}
	return decodeStoredGame(key, data)
}

func (g *GameRepository) SaveSGF(ctx context.Context, key string, sgfText string) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	return g.redis.Set(ctx, sgfKeyPrefix+key, sgfText, g.cfg.StateTTL()).Err()
}

func (g *GameRepository) LoadSGF(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	v, err := g.redis.Get(ctx, sgfKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: sgf for %s", errs.ErrGameNotFound, key)
	}
	return v, err
}
