package baduk

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindGroupOrthogonalOnly(t *testing.T) {
	b := mustBoard(t,
		"XX...",
		".X.X.",
		"..X..",
		".....",
		"....O",
	)

	group := FindGroup(b, Point{0, 0}, Black)
	assert.Equal(t, []Point{{0, 0}, {0, 1}, {1, 1}}, group)

	// (2,2) and (1,3) only touch the first group diagonally.
	assert.Equal(t, []Point{{2, 2}}, FindGroup(b, Point{2, 2}, Black))
	assert.Equal(t, []Point{{1, 3}}, FindGroup(b, Point{1, 3}, Black))
}

func TestFindGroupColorMismatch(t *testing.T) {
	b := mustBoard(t,
		"X.",
		".O",
	)
	assert.Empty(t, FindGroup(b, Point{0, 0}, White))
	assert.Empty(t, FindGroup(b, Point{0, 1}, Black))
	assert.Empty(t, FindGroup(b, Point{0, 1}, Empty))
	assert.Empty(t, FindGroup(b, Point{5, 5}, Black))
}

func TestFindGroupSameFromAnyMember(t *testing.T) {
	b := mustBoard(t,
		"OOO.",
		"O.O.",
		"OOOX",
		"...X",
	)
	want := FindGroup(b, Point{0, 0}, White)
	require.Len(t, want, 8)
	for _, p := range want {
		assert.Equal(t, want, FindGroup(b, p, White), "start %s", p)
	}
}

func TestFindGroupWholeBoard(t *testing.T) {
	b, err := NewBoard(19)
	require.NoError(t, err)
	for i := range b.cells {
		b.cells[i] = Black
	}
	b.cells[0] = Empty

	group := FindGroup(b, Point{18, 18}, Black)
	assert.Len(t, group, 19*19-1)
	assert.Equal(t, 1, CountLiberties(b, group))
}

func TestCountLibertiesSharedPointCountsOnce(t *testing.T) {
	b := mustBoard(t,
		"...",
		"X.X",
		"XXX",
	)
	group := FindGroup(b, Point{2, 0}, Black)
	require.Len(t, group, 5)
	// (0,0), (0,2) and (1,1); (1,1) touches three members.
	assert.Equal(t, 3, CountLiberties(b, group))
}

func TestCountLibertiesSurrounded(t *testing.T) {
	b := mustBoard(t,
		".X.",
		"XOX",
		".X.",
	)
	assert.Equal(t, 0, CountLiberties(b, FindGroup(b, Point{1, 1}, White)))
	assert.Equal(t, 0, CountLiberties(b, nil))
}

// bruteLiberties counts empty points adjacent to any group member by
// checking every point of the board.
func bruteLiberties(b Board, group []Point) int {
	member := make(map[Point]bool, len(group))
	for _, p := range group {
		member[p] = true
	}
	n := 0
	for r := 0; r < b.Size(); r++ {
		for c := 0; c < b.Size(); c++ {
			if v, _ := b.Get(r, c); v != Empty {
				continue
			}
			if member[Point{r - 1, c}] || member[Point{r + 1, c}] || member[Point{r, c - 1}] || member[Point{r, c + 1}] {
				n++
			}
		}
	}
	return n
}

func TestCountLibertiesMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		size := 1 + rng.Intn(13)
		b, err := NewBoard(size)
		require.NoError(t, err)
		for i := range b.cells {
			b.cells[i] = Color(rng.Intn(3))
		}

		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				color, _ := b.Get(r, c)
				if color == Empty {
					continue
				}
				group := FindGroup(b, Point{r, c}, color)
				require.NotEmpty(t, group)

				reversed := make([]Point, len(group))
				for i, p := range group {
					reversed[len(group)-1-i] = p
				}
				want := bruteLiberties(b, group)
				assert.Equal(t, want, CountLiberties(b, group))
				assert.Equal(t, want, CountLiberties(b, reversed))
			}
		}
	}
}
