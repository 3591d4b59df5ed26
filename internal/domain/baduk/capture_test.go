package baduk

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveCapturedClearsOnlyDeadGroups(t *testing.T) {
	b := mustBoard(t,
		"OX...",
		"X..XO",
		"...XO",
		"XO.XO",
		"OX..X",
	)
	after, removed := RemoveCaptured(b, White)

	// (0,0) and (4,0) are dead; the (1,4)-(3,4) chain and (3,1) live.
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{
		".X...",
		"X..XO",
		"...XO",
		"XO.XO",
		".X..X",
	}, after.Rows())

	// the input is untouched
	assert.Equal(t, White, mustGet(t, b, 0, 0))
}

func TestRemoveCapturedLeavesOtherColor(t *testing.T) {
	b := mustBoard(t,
		"XO",
		"O.",
	)
	after, removed := RemoveCaptured(b, Black)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{".O", "O."}, after.Rows())

	after, removed = RemoveCaptured(b, White)
	assert.Equal(t, 0, removed)
	assert.True(t, after.Equal(b))
}

func TestRemoveCapturedFullBoard(t *testing.T) {
	b, err := NewBoard(19)
	require.NoError(t, err)
	for i := range b.cells {
		b.cells[i] = Black
	}
	after, removed := RemoveCaptured(b, Black)
	assert.Equal(t, 19*19, removed)
	assert.Equal(t, 19*19, after.Count(Empty))
}

func TestRemoveCapturedIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		size := 2 + rng.Intn(11)
		b, err := NewBoard(size)
		require.NoError(t, err)
		for i := range b.cells {
			b.cells[i] = Color(rng.Intn(3))
		}
		for _, color := range []Color{Black, White} {
			once, _ := RemoveCaptured(b, color)
			twice, again := RemoveCaptured(once, color)
			assert.Equal(t, 0, again)
			assert.True(t, once.Equal(twice), "round %d\n%s", round, once)
		}
	}
}

func mustGet(t *testing.T, b Board, row, col int) Color {
	t.Helper()
	c, err := b.Get(row, col)
	require.NoError(t, err)
	return c
}
