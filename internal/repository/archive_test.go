package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap/zaptest"

	"baduk/internal/domain/game"
	errs "baduk/internal/errors"
)

func TestArchiveRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	log := zaptest.NewLogger(t).Sugar()

	mt.Run("archive upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}}}}))
		repo := NewArchiveRepository(log, mt.DB)
		started := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
		err := repo.ArchiveGame(context.Background(), game.Game{GameKey: "abc", Status: "completed", BoardSize: 9, CreatedAt: started})
		require.NoError(mt, err)

		// a game reset under the same key starts a new document
		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, "abc", cmd.Lookup("updates", "0", "q", "game_key").StringValue())
		assert.True(mt, started.Equal(cmd.Lookup("updates", "0", "q", "created_at").Time()))
		assert.True(mt, cmd.Lookup("updates", "0", "upsert").Boolean())
	})

	mt.Run("get archived", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + gamesCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "game_key", Value: "abc"},
			{Key: "status", Value: "completed"},
			{Key: "board_size", Value: 9},
			{Key: "board", Value: bson.A{"X........"}},
			{Key: "move_number", Value: 7},
		}))
		repo := NewArchiveRepository(log, mt.DB)
		found, err := repo.GetArchivedGame(context.Background(), "abc")
		require.NoError(mt, err)
		assert.Equal(mt, "abc", found.GameKey)
		assert.Equal(mt, 9, found.BoardSize)
		assert.Equal(mt, 7, found.MoveNumber)
		assert.Equal(mt, []string{"X........"}, found.Board)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, "abc", cmd.Lookup("filter", "game_key").StringValue())
		assert.Equal(mt, int32(-1), cmd.Lookup("sort", "created_at").Int32())
	})

	mt.Run("missing archived game", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + gamesCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewArchiveRepository(log, mt.DB)
		_, err := repo.GetArchivedGame(context.Background(), "nope")
		assert.ErrorIs(mt, err, errs.ErrGameNotFound)
	})

	mt.Run("index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewArchiveRepository(log, mt.DB)
		assert.NoError(mt, repo.EnsureIndexes(context.Background()))
	})
}
