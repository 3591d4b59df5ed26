package baduk

import (
	"fmt"
	"strconv"
	"strings"

	errs "baduk/internal/errors"
)

// GTP vertices name columns A..T skipping I and count rows from the bottom
// edge, so on 19x19 "A19" is Point{0, 0} and "T1" is Point{18, 18}.
const (
	maxVertexSize = 25
	passVertex    = "pass"
)

// ParseVertex converts a GTP vertex to a point on a size×size board.
// pass reports whether the vertex was "pass".
func ParseVertex(vertex string, size int) (p Point, pass bool, err error) {
	v := strings.ToUpper(strings.TrimSpace(vertex))
	if strings.EqualFold(v, passVertex) {
		return Point{}, true, nil
	}
	if len(v) < 2 || size <= 0 || size > maxVertexSize {
		return Point{}, false, fmt.Errorf("%w: %q", errs.ErrInvalidVertex, vertex)
	}
	letter := v[0]
	if letter < 'A' || letter > 'Z' || letter == 'I' {
		return Point{}, false, fmt.Errorf("%w: bad column in %q", errs.ErrInvalidVertex, vertex)
	}
	col := int(letter - 'A')
	if letter > 'I' {
		col--
	}
	number, err := strconv.Atoi(v[1:])
	if err != nil {
		return Point{}, false, fmt.Errorf("%w: bad row in %q", errs.ErrInvalidVertex, vertex)
	}
	p = Point{Row: size - number, Col: col}
	if p.Row < 0 || p.Row >= size || p.Col >= size {
		return Point{}, false, fmt.Errorf("%w: %q on %dx%d", errs.ErrOutOfBounds, vertex, size, size)
	}
	return p, false, nil
}

// Vertex is the GTP name of p on a size×size board, or "" when GTP cannot
// name it (boards above 25 or p off the board).
func (p Point) Vertex(size int) string {
	if size <= 0 || size > maxVertexSize || p.Row < 0 || p.Row >= size || p.Col < 0 || p.Col >= size {
		return ""
	}
	letter := byte('A' + p.Col)
	if letter >= 'I' {
		letter++
	}
	return fmt.Sprintf("%c%d", letter, size-p.Row)
}

// SGF returns the two-letter SGF point, column first ("pd" is Point{3, 15}).
// Coordinates 26..51 use upper case letters; anything else yields "".
func (p Point) SGF() string {
	col, okCol := sgfLetter(p.Col)
	row, okRow := sgfLetter(p.Row)
	if !okCol || !okRow {
		return ""
	}
	return string([]byte{col, row})
}

func sgfLetter(n int) (byte, bool) {
	switch {
	case n >= 0 && n < 26:
		return byte('a' + n), true
	case n >= 26 && n < MaxSize:
		return byte('A' + n - 26), true
	}
	return 0, false
}

func sgfIndex(ch byte) (int, bool) {
	switch {
	case ch >= 'a' && ch <= 'z':
		return int(ch - 'a'), true
	case ch >= 'A' && ch <= 'Z':
		return int(ch-'A') + 26, true
	}
	return 0, false
}

// ParseSGFPoint is the inverse of Point.SGF. An empty value or "tt" on
// boards up to 19 is a pass.
func ParseSGFPoint(s string, size int) (p Point, pass bool, err error) {
	if s == "" || (s == "tt" && size <= 19) {
		return Point{}, true, nil
	}
	if len(s) != 2 {
		return Point{}, false, fmt.Errorf("%w: sgf point %q", errs.ErrInvalidVertex, s)
	}
	col, okCol := sgfIndex(s[0])
	row, okRow := sgfIndex(s[1])
	if !okCol || !okRow {
		return Point{}, false, fmt.Errorf("%w: sgf point %q", errs.ErrInvalidVertex, s)
	}
	p = Point{Row: row, Col: col}
	if p.Row >= size || p.Col >= size {
		return Point{}, false, fmt.Errorf("%w: sgf point %q on %dx%d", errs.ErrOutOfBounds, s, size, size)
	}
	return p, false, nil
}
