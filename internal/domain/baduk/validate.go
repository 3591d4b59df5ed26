package baduk

import (
	"fmt"

	errs "baduk/internal/errors"
)

// Verdict is the outcome of a legal move: the board after placement and
// captures, and how many opponent stones were removed.
type Verdict struct {
	Board    Board
	Captured int
}

// ValidateMove tries a stone of color at p on a copy of b. The move is
// legal if the point is empty and, after removing opponent groups left
// without liberties, either something was captured or the placed stone's
// group still has a liberty. b is never modified.
//
// Repetition of earlier positions is not checked.
func ValidateMove(b Board, p Point, color Color) (Verdict, error) {
	if color != Black && color != White {
		return Verdict{}, fmt.Errorf("%w: cannot place %s", errs.ErrNotYourTurn, color)
	}
	current, err := b.Get(p.Row, p.Col)
	if err != nil {
		return Verdict{}, err
	}
	if current != Empty {
		return Verdict{}, fmt.Errorf("%w: %s holds %s", errs.ErrOccupied, p, current)
	}

	trial := b.Clone()
	trial.cells[trial.index(p)] = color

	after, captured := RemoveCaptured(trial, color.Opponent())
	if captured > 0 {
		return Verdict{Board: after, Captured: captured}, nil
	}

	if CountLiberties(after, FindGroup(after, p, color)) == 0 {
		return Verdict{}, fmt.Errorf("%w: %s at %s", errs.ErrSuicide, color, p)
	}
	return Verdict{Board: after}, nil
}
