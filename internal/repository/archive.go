package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"baduk/internal/domain/game"
	errs "baduk/internal/errors"
)

const gamesCollection = "games"

// ArchiveRepository stores finished games in mongo, one document per game
// key and start time. A game that is reset and finished again gets a new
// document; archiving the same game twice replaces its document.
type ArchiveRepository struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewArchiveRepository(log *zap.SugaredLogger, mongo *mongo.Database) *ArchiveRepository {
	return &ArchiveRepository{
		log:   log,
		mongo: mongo,
	}
}

func (a *ArchiveRepository) ArchiveGame(ctx context.Context, finished game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := a.mongo.Collection(gamesCollection)
	filter := bson.D{{Key: "game_key", Value: finished.GameKey}, {Key: "created_at", Value: finished.CreatedAt}}
	opts := options.Replace().SetUpsert(true)

	if _, err := collection.ReplaceOne(ctx, filter, finished, opts); err != nil {
		a.log.Errorf("failed to archive game %s: %v", finished.GameKey, err)
		return err
	}
	a.log.Infof("game archived with key: %s", finished.GameKey)
	return nil
}

func (a *ArchiveRepository) GetArchivedGame(ctx context.Context, key string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// the latest finished game under key
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var found game.Game
	err := a.mongo.Collection(gamesCollection).FindOne(ctx, bson.M{"game_key": key}, opts).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Game{}, fmt.Errorf("%w: archived %s", errs.ErrGameNotFound, key)
	}
	if err != nil {
		a.log.Error(err)
		return game.Game{}, err
	}
	return found, nil
}

// EnsureIndexes creates the unique (game_key, created_at) index.
func (a *ArchiveRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := a.mongo.Collection(gamesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "game_key", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
