package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"baduk/internal/domain/baduk"
	"baduk/internal/domain/game"
	errs "baduk/internal/errors"
	"baduk/internal/statuses"
)

type GameStore interface {
	GenerateGameKey(ctx context.Context) (string, error)
	SaveGame(ctx context.Context, key string, stored game.StoredGame) error
	LoadGame(ctx context.Context, key string) (game.StoredGame, error)
	SaveSGF(ctx context.Context, key string, sgfText string) error
	LoadSGF(ctx context.Context, key string) (string, error)
}

// GameArchive keeps finished games. Optional.
type GameArchive interface {
	ArchiveGame(ctx context.Context, finished game.Game) error
	GetArchivedGame(ctx context.Context, key string) (game.Game, error)
}

// Publisher receives every committed update. Optional.
type Publisher interface {
	Publish(key string, update game.GameUpdate)
}

type GameUseCase struct {
	store     GameStore
	archive   GameArchive
	publisher Publisher
	log       *zap.SugaredLogger
	now       func() time.Time

	locksMu sync.Mutex
	locks   map[string]*gameLock
}

// gameLock serializes commands on one game key. refs counts the callers
// holding or waiting for mu; the entry is dropped when it reaches zero.
type gameLock struct {
	mu   sync.Mutex
	refs int
}

func NewGameUseCase(store GameStore, archive GameArchive, publisher Publisher, log *zap.SugaredLogger) *GameUseCase {
	return &GameUseCase{
		store:     store,
		archive:   archive,
		publisher: publisher,
		log:       log,
		now:       time.Now,
		locks:     make(map[string]*gameLock),
	}
}

func (g *GameUseCase) CreateGame(ctx context.Context, boardSize int) (game.Game, error) {
	state, err := baduk.NewGame(boardSize)
	if err != nil {
		return game.Game{}, err
	}

	key, err := g.store.GenerateGameKey(ctx)
	if err != nil {
		return game.Game{}, fmt.Errorf("generate game key: %w", err)
	}

	now := g.now()
	stored := game.StoredGame{State: state, CreatedAt: now, UpdatedAt: now}
	if err = g.store.SaveGame(ctx, key, stored); err != nil {
		return game.Game{}, fmt.Errorf("save game %s: %w", key, err)
	}

	record := PrepareSgfFile(boardSize, now)
	sgfText := SerializeSGF(&record)
	if err = g.store.SaveSGF(ctx, key, sgfText); err != nil {
		return game.Game{}, fmt.Errorf("save sgf %s: %w", key, err)
	}

	g.log.Infof("game %s created, board %dx%d", key, boardSize, boardSize)
	return buildView(key, stored, sgfText), nil
}

func (g *GameUseCase) GetGame(ctx context.Context, key string) (game.Game, error) {
	stored, err := g.store.LoadGame(ctx, key)
	if err != nil {
		return game.Game{}, err
	}
	sgfText, err := g.store.LoadSGF(ctx, key)
	if err != nil && !errors.Is(err, errs.ErrGameNotFound) {
		return game.Game{}, err
	}
	return buildView(key, stored, sgfText), nil
}

func (g *GameUseCase) PlaceStone(ctx context.Context, key string, row, col int, color baduk.Color) (game.GameUpdate, error) {
	return g.apply(ctx, key, func(baduk.GameState) (baduk.Command, error) {
		return baduk.Command{Kind: baduk.CommandPlace, Point: baduk.Point{Row: row, Col: col}, Color: color}, nil
	})
}

// PlayVertex accepts a GTP vertex; "pass" is played as a pass.
func (g *GameUseCase) PlayVertex(ctx context.Context, key string, vertex string, color baduk.Color) (game.GameUpdate, error) {
	return g.apply(ctx, key, func(state baduk.GameState) (baduk.Command, error) {
		p, pass, err := baduk.ParseVertex(vertex, state.Size())
		if err != nil {
			return baduk.Command{}, err
		}
		if pass {
			return baduk.Command{Kind: baduk.CommandPass, Color: color}, nil
		}
		return baduk.Command{Kind: baduk.CommandPlace, Point: p, Color: color}, nil
	})
}

func (g *GameUseCase) Pass(ctx context.Context, key string, color baduk.Color) (game.GameUpdate, error) {
	return g.apply(ctx, key, func(baduk.GameState) (baduk.Command, error) {
		return baduk.Command{Kind: baduk.CommandPass, Color: color}, nil
	})
}

func (g *GameUseCase) Reset(ctx context.Context, key string) (game.GameUpdate, error) {
	return g.apply(ctx, key, func(baduk.GameState) (baduk.Command, error) {
		return baduk.Command{Kind: baduk.CommandReset}, nil
	})
}

func (g *GameUseCase) GetArchivedGame(ctx context.Context, key string) (game.Game, error) {
	if g.archive == nil {
		return game.Game{}, errs.ErrArchiveDisabled
	}
	return g.archive.GetArchivedGame(ctx, key)
}

// apply runs one command against the stored game. Commands on the same key
// are serialized; nothing is written unless the reducer accepts the command.
func (g *GameUseCase) apply(ctx context.Context, key string, build func(baduk.GameState) (baduk.Command, error)) (game.GameUpdate, error) {
	unlock := g.lock(key)
	defer unlock()

	stored, err := g.store.LoadGame(ctx, key)
	if err != nil {
		return game.GameUpdate{}, err
	}
	prev := stored.State

	cmd, err := build(prev)
	if err != nil {
		g.log.Warnf("game %s: rejected input: %v", key, err)
		return game.GameUpdate{}, err
	}
	next, outcome, err := baduk.Apply(prev, cmd)
	if err != nil {
		g.log.Warnf("game %s: rejected %s: %v", key, cmd.Kind, err)
		return game.GameUpdate{}, err
	}

	now := g.now()
	stored.State = next
	stored.UpdatedAt = now
	switch {
	case cmd.Kind == baduk.CommandReset:
		stored.CreatedAt = now
		stored.EndedAt = nil
	case next.Ended:
		stored.EndedAt = &now
	}
	if err = g.store.SaveGame(ctx, key, stored); err != nil {
		g.log.Errorf("game %s: failed to save state: %v", key, err)
		return game.GameUpdate{}, fmt.Errorf("save game %s: %w", key, err)
	}

	sgfText, err := g.updateSgf(ctx, key, prev, stored, cmd)
	if err != nil {
		// the state is committed; the record is best effort
		g.log.Errorf("game %s: failed to update sgf: %v", key, err)
	}

	view := buildView(key, stored, sgfText)
	if next.Ended && !prev.Ended {
		g.archiveGame(ctx, view)
	}

	update := game.GameUpdate{Command: cmd.Kind.String(), Captured: outcome.Captured, Game: view}
	if g.publisher != nil {
		g.publisher.Publish(key, update)
	}
	g.log.Infof("game %s: %s accepted, move %d, captured %d", key, cmd.Kind, next.MoveNumber, outcome.Captured)
	return update, nil
}

func (g *GameUseCase) updateSgf(ctx context.Context, key string, prev baduk.GameState, stored game.StoredGame, cmd baduk.Command) (string, error) {
	if cmd.Kind == baduk.CommandReset {
		record := PrepareSgfFile(stored.State.Size(), stored.CreatedAt)
		sgfText := SerializeSGF(&record)
		return sgfText, g.store.SaveSGF(ctx, key, sgfText)
	}

	sgfText, err := g.store.LoadSGF(ctx, key)
	if errors.Is(err, errs.ErrGameNotFound) {
		record := PrepareSgfFile(stored.State.Size(), stored.CreatedAt)
		sgfText, err = SerializeSGF(&record), nil
	}
	if err != nil {
		return "", err
	}
	sgfText = AppendMoveToSgf(sgfText, sgfMove(prev.CurrentPlayer, cmd))
	return sgfText, g.store.SaveSGF(ctx, key, sgfText)
}

func (g *GameUseCase) archiveGame(ctx context.Context, view game.Game) {
	if g.archive == nil {
		return
	}
	if err := g.archive.ArchiveGame(ctx, view); err != nil {
		g.log.Errorf("game %s: failed to archive: %v", view.GameKey, err)
		return
	}
	g.log.Infof("game %s archived after %d moves", view.GameKey, view.MoveNumber)
}

func (g *GameUseCase) lock(key string) (unlock func()) {
	g.locksMu.Lock()
	l, ok := g.locks[key]
	if !ok {
		l = &gameLock{}
		g.locks[key] = l
	}
	l.refs++
	g.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		g.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(g.locks, key)
		}
		g.locksMu.Unlock()
	}
}

func buildView(key string, stored game.StoredGame, sgfText string) game.Game {
	state := stored.State
	view := game.Game{
		GameKey:           key,
		Status:            statuses.StatusActive,
		BoardSize:         state.Size(),
		Board:             state.Board.Rows(),
		CurrentTurn:       state.CurrentPlayer.String(),
		CapturedByBlack:   state.CapturedByBlack,
		CapturedByWhite:   state.CapturedByWhite,
		ConsecutivePasses: state.ConsecutivePasses,
		MoveNumber:        state.MoveNumber,
		Sgf:               sgfText,
		CreatedAt:         stored.CreatedAt,
		UpdatedAt:         stored.UpdatedAt,
		EndedAt:           stored.EndedAt,
	}
	if state.Ended {
		view.Status = statuses.StatusCompleted
	}
	if state.LastMove != nil {
		view.LastMove = state.LastMove.Vertex(state.Size())
	}
	return view
}
