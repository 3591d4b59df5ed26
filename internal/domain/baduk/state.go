package baduk

import (
	"fmt"

	errs "baduk/internal/errors"
)

const passesToEnd = 2

// GameState is an immutable snapshot of a game. Transitions return a new
// value and never modify the receiver's board.
type GameState struct {
	Board             Board  `json:"board"`
	CurrentPlayer     Color  `json:"current_player"`
	CapturedByBlack   int    `json:"captured_by_black"`
	CapturedByWhite   int    `json:"captured_by_white"`
	LastMove          *Point `json:"last_move,omitempty"`
	ConsecutivePasses int    `json:"consecutive_passes"`
	Ended             bool   `json:"ended"`
	MoveNumber        int    `json:"move_number"`
}

// NewGame returns an empty size×size game with Black to move.
func NewGame(size int) (GameState, error) {
	board, err := NewBoard(size)
	if err != nil {
		return GameState{}, err
	}
	return GameState{Board: board, CurrentPlayer: Black}, nil
}

func (s GameState) Size() int {
	return s.Board.Size()
}

// Captures returns the number of opponent stones c has removed.
func (s GameState) Captures(c Color) int {
	switch c {
	case Black:
		return s.CapturedByBlack
	case White:
		return s.CapturedByWhite
	}
	return 0
}

// PlaceStone plays the current player's stone at (row, col) and returns the
// new state together with the number of stones captured by the move.
func PlaceStone(s GameState, row, col int) (GameState, int, error) {
	if s.Ended {
		return s, 0, errs.ErrActionAfterGameEnd
	}
	p := Point{Row: row, Col: col}
	verdict, err := ValidateMove(s.Board, p, s.CurrentPlayer)
	if err != nil {
		return s, 0, err
	}

	next := s
	next.Board = verdict.Board
	switch s.CurrentPlayer {
	case Black:
		next.CapturedByBlack += verdict.Captured
	case White:
		next.CapturedByWhite += verdict.Captured
	}
	next.LastMove = &p
	next.ConsecutivePasses = 0
	next.CurrentPlayer = s.CurrentPlayer.Opponent()
	next.MoveNumber++
	return next, verdict.Captured, nil
}

// Pass gives up the current player's turn. The second pass in a row ends
// the game and leaves CurrentPlayer unchanged.
func Pass(s GameState) (GameState, error) {
	if s.Ended {
		return s, errs.ErrActionAfterGameEnd
	}
	next := s
	next.Board = s.Board.Clone()
	next.ConsecutivePasses++
	next.MoveNumber++
	if next.ConsecutivePasses >= passesToEnd {
		next.Ended = true
		return next, nil
	}
	next.CurrentPlayer = s.CurrentPlayer.Opponent()
	return next, nil
}

// Reset discards s and returns a fresh game of the same size.
func Reset(s GameState) GameState {
	fresh, err := NewGame(s.Size())
	if err != nil {
		// s was never built by NewGame; fall back to the default size.
		fresh, _ = NewGame(DefaultSize)
	}
	return fresh
}

// DefaultSize is the standard board dimension.
const DefaultSize = 19

type CommandKind uint8

const (
	CommandPlace CommandKind = iota + 1
	CommandPass
	CommandReset
)

func (k CommandKind) String() string {
	switch k {
	case CommandPlace:
		return "place"
	case CommandPass:
		return "pass"
	case CommandReset:
		return "reset"
	}
	return fmt.Sprintf("command(%d)", uint8(k))
}

// Command is one input to the game state machine. Color is optional; when
// set it must be the side to move.
type Command struct {
	Kind  CommandKind
	Point Point
	Color Color
}

func Place(row, col int) Command {
	return Command{Kind: CommandPlace, Point: Point{Row: row, Col: col}}
}

// Outcome reports what a command did besides producing the next state.
type Outcome struct {
	Captured int
}

// Apply is the state machine's reducer: it returns the state following cmd,
// or the unchanged state and an error if cmd is rejected.
func Apply(s GameState, cmd Command) (GameState, Outcome, error) {
	if cmd.Kind != CommandReset && cmd.Color != Empty && cmd.Color != s.CurrentPlayer && !s.Ended {
		return s, Outcome{}, fmt.Errorf("%w: %s to move, got %s", errs.ErrNotYourTurn, s.CurrentPlayer, cmd.Color)
	}
	switch cmd.Kind {
	case CommandPlace:
		next, captured, err := PlaceStone(s, cmd.Point.Row, cmd.Point.Col)
		return next, Outcome{Captured: captured}, err
	case CommandPass:
		next, err := Pass(s)
		return next, Outcome{}, err
	case CommandReset:
		return Reset(s), Outcome{}, nil
	}
	return s, Outcome{}, fmt.Errorf("%w: unknown %s", errs.ErrInvalidState, cmd.Kind)
}

// Validate checks the invariants of a state restored from storage.
func (s GameState) Validate() error {
	if s.Board.Size() <= 0 {
		return fmt.Errorf("%w: empty board", errs.ErrInvalidState)
	}
	if s.CurrentPlayer != Black && s.CurrentPlayer != White {
		return fmt.Errorf("%w: current player %s", errs.ErrInvalidState, s.CurrentPlayer)
	}
	if s.CapturedByBlack < 0 || s.CapturedByWhite < 0 {
		return fmt.Errorf("%w: negative capture count", errs.ErrInvalidState)
	}
	if s.ConsecutivePasses < 0 || s.ConsecutivePasses > passesToEnd {
		return fmt.Errorf("%w: %d consecutive passes", errs.ErrInvalidState, s.ConsecutivePasses)
	}
	if s.Ended != (s.ConsecutivePasses >= passesToEnd) {
		return fmt.Errorf("%w: ended=%t with %d passes", errs.ErrInvalidState, s.Ended, s.ConsecutivePasses)
	}
	if s.LastMove != nil && !s.Board.InBounds(s.LastMove.Row, s.LastMove.Col) {
		return fmt.Errorf("%w: last move %s", errs.ErrInvalidState, *s.LastMove)
	}
	return nil
}
