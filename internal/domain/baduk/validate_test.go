package baduk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "baduk/internal/errors"
)

func TestValidateMoveOccupied(t *testing.T) {
	b := mustBoard(t,
		"X..",
		"...",
		"..O",
	)
	_, err := ValidateMove(b, Point{0, 0}, White)
	assert.ErrorIs(t, err, errs.ErrOccupied)
	_, err = ValidateMove(b, Point{2, 2}, Black)
	assert.ErrorIs(t, err, errs.ErrOccupied)
}

func TestValidateMoveOutOfBounds(t *testing.T) {
	b := mustBoard(t, "..", "..")
	_, err := ValidateMove(b, Point{2, 0}, Black)
	assert.ErrorIs(t, err, errs.ErrOutOfBounds)
}

func TestValidateMoveSuicide(t *testing.T) {
	b := mustBoard(t,
		".........",
		".........",
		".........",
		"....O....",
		"...O.O...",
		"....O....",
		".........",
		".........",
		".........",
	)
	before := b.Clone()

	_, err := ValidateMove(b, Point{4, 4}, Black)
	assert.ErrorIs(t, err, errs.ErrSuicide)
	assert.True(t, b.Equal(before))
}

func TestValidateMoveGroupSuicide(t *testing.T) {
	// Filling the last liberty of a black pair kills it.
	b := mustBoard(t,
		"X.O..",
		"XO...",
		"O....",
		".....",
		".....",
	)
	_, err := ValidateMove(b, Point{0, 1}, Black)
	assert.ErrorIs(t, err, errs.ErrSuicide)
}

func TestValidateMoveCaptureBeatsSuicide(t *testing.T) {
	b := mustBoard(t,
		".OX..",
		"OX...",
		"X....",
		".....",
		".....",
	)
	verdict, err := ValidateMove(b, Point{0, 0}, Black)
	require.NoError(t, err)
	assert.Equal(t, 2, verdict.Captured)
	assert.Equal(t, []string{
		"X.X..",
		".X...",
		"X....",
		".....",
		".....",
	}, verdict.Board.Rows())
	assert.Equal(t, White, mustGet(t, b, 0, 1), "input board must not change")
}

func TestValidateMoveLegalWithoutCapture(t *testing.T) {
	b := mustBoard(t,
		"...",
		".O.",
		"...",
	)
	verdict, err := ValidateMove(b, Point{0, 1}, Black)
	require.NoError(t, err)
	assert.Equal(t, 0, verdict.Captured)
	assert.Equal(t, Black, mustGet(t, verdict.Board, 0, 1))
	assert.Equal(t, Empty, mustGet(t, b, 0, 1))

	group := FindGroup(verdict.Board, Point{0, 1}, Black)
	assert.GreaterOrEqual(t, CountLiberties(verdict.Board, group), 1)
}

func TestValidateMoveRejectsEmptyColor(t *testing.T) {
	b := mustBoard(t, "..", "..")
	_, err := ValidateMove(b, Point{0, 0}, Empty)
	assert.Error(t, err)
}
