package game

import (
	"time"

	"baduk/internal/domain/baduk"
)

// Game is the public view of a game, also the document stored in the
// archive collection.
type Game struct {
	GameKey           string     `json:"game_key" bson:"game_key"`
	Status            string     `json:"status" bson:"status"`
	BoardSize         int        `json:"board_size" bson:"board_size"`
	Board             []string   `json:"board" bson:"board"`
	CurrentTurn       string     `json:"current_turn" bson:"current_turn"`
	CapturedByBlack   int        `json:"captured_by_black" bson:"captured_by_black"`
	CapturedByWhite   int        `json:"captured_by_white" bson:"captured_by_white"`
	LastMove          string     `json:"last_move,omitempty" bson:"last_move,omitempty"`
	ConsecutivePasses int        `json:"consecutive_passes" bson:"consecutive_passes"`
	MoveNumber        int        `json:"move_number" bson:"move_number"`
	Sgf               string     `json:"sgf,omitempty" bson:"sgf,omitempty"`
	CreatedAt         time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" bson:"updated_at"`
	EndedAt           *time.Time `json:"ended_at,omitempty" bson:"ended_at,omitempty"`
}

// StoredGame is what the live store keeps per game key.
type StoredGame struct {
	State     baduk.GameState `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	EndedAt   *time.Time      `json:"ended_at,omitempty"`
}

type CreateGameRequest struct {
	BoardSize *int `json:"board_size,omitempty"`
}

// @name GameUpdate
// GameUpdate answers every committed command and is pushed to websocket
// subscribers of the game.
type GameUpdate struct {
	Command  string `json:"command"`
	Captured int    `json:"captured"`
	Game     Game   `json:"game"`
}
