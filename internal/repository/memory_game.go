package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"baduk/internal/domain/game"
	errs "baduk/internal/errors"
)

// GameMapStorage keeps games in process memory. States are stored encoded
// so callers never share a board with the storage.
type GameMapStorage struct {
	mu    sync.RWMutex
	games map[string][]byte
	sgf   map[string]string
}

func NewGameMapStorage() *GameMapStorage {
	return &GameMapStorage{
		games: make(map[string][]byte),
		sgf:   make(map[string]string),
	}
}

func (m *GameMapStorage) GenerateGameKey(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for {
		key := uuid.New().String()
		if _, taken := m.games[key]; !taken {
			return key, nil
		}
	}
}

func (m *GameMapStorage) SaveGame(ctx context.Context, key string, stored game.StoredGame) error {
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", key, err)
	}
	m.mu.Lock()
	m.games[key] = data
	m.mu.Unlock()
	return nil
}

func (m *GameMapStorage) LoadGame(ctx context.Context, key string) (game.StoredGame, error) {
	m.mu.RLock()
	data, ok := m.games[key]
	m.mu.RUnlock()
	if !ok {
		return game.StoredGame{}, fmt.Errorf("%w: %s", errs.ErrGameNotFound, key)
	}
	return decodeStoredGame(key, data)
}

func (m *GameMapStorage) SaveSGF(ctx context.Context, key string, sgfText string) error {
	m.mu.Lock()
	m.sgf[key] = sgfText
	m.mu.Unlock()
	return nil
}

func (m *GameMapStorage) LoadSGF(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.sgf[key]
	if !ok {
		return "", fmt.Errorf("%w: sgf for %s", errs.ErrGameNotFound, key)
	}
	return v, nil
}

func decodeStoredGame(key string, data []byte) (game.StoredGame, error) {
	var stored game.StoredGame
	if err := json.Unmarshal(data, &stored); err != nil {
		return game.StoredGame{}, fmt.Errorf("decode game %s: %w", key, err)
	}
	if err := stored.State.Validate(); err != nil {
		return game.StoredGame{}, fmt.Errorf("game %s: %w", key, err)
	}
	return stored, nil
}
