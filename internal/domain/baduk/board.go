// Package baduk implements the rules of Go: stone placement, group and
// liberty accounting, captures, suicide prevention and pass-based game end.
package baduk

import (
	"encoding/json"
	"fmt"
	"strings"

	errs "baduk/internal/errors"
)

// Color is the content of a single board point.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// MarshalText encodes stones as "black"/"white" and Empty as "".
func (c Color) MarshalText() ([]byte, error) {
	if c == Empty {
		return []byte{}, nil
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "black"/"b"/"B" and "white"/"w"/"W"; "" and "empty"
// map to Empty.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "empty":
		return Empty, nil
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	}
	return Empty, fmt.Errorf("unknown color %q", s)
}

// Point addresses a board cell, row 0 is the top edge.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Board is an N×N grid stored as a flat slice indexed row*N+col.
// The zero value is an unusable empty board; use NewBoard.
type Board struct {
	size  int
	cells []Color
}

// MaxSize is the largest board an SGF point can address.
const MaxSize = 52

// NewBoard returns an empty size×size board, 1 <= size <= MaxSize.
func NewBoard(size int) (Board, error) {
	if size <= 0 || size > MaxSize {
		return Board{}, fmt.Errorf("%w: %d", errs.ErrInvalidSize, size)
	}
	return Board{size: size, cells: make([]Color, size*size)}, nil
}

func (b Board) Size() int {
	return b.size
}

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

func (b Board) Get(row, col int) (Color, error) {
	if !b.InBounds(row, col) {
		return Empty, fmt.Errorf("%w: (%d,%d) on %dx%d", errs.ErrOutOfBounds, row, col, b.size, b.size)
	}
	return b.cells[row*b.size+col], nil
}

func (b *Board) Set(row, col int, c Color) error {
	if !b.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d", errs.ErrOutOfBounds, row, col, b.size, b.size)
	}
	b.cells[row*b.size+col] = c
	return nil
}

// Clone returns a board that shares no storage with b.
func (b Board) Clone() Board {
	cells := make([]Color, len(b.cells))
	copy(cells, b.cells)
	return Board{size: b.size, cells: cells}
}

// Equal reports whether both boards have the same size and contents.
func (b Board) Equal(other Board) bool {
	if b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Count returns how many points hold c.
func (b Board) Count(c Color) int {
	n := 0
	for _, v := range b.cells {
		if v == c {
			n++
		}
	}
	return n
}

func (b Board) index(p Point) int {
	return p.Row*b.size + p.Col
}

func (b Board) point(idx int) Point {
	return Point{Row: idx / b.size, Col: idx % b.size}
}

// neighbors appends the orthogonal neighbours of idx to buf.
func (b Board) neighbors(idx int, buf []int) []int {
	row, col := idx/b.size, idx%b.size
	if row > 0 {
		buf = append(buf, idx-b.size)
	}
	if row < b.size-1 {
		buf = append(buf, idx+b.size)
	}
	if col > 0 {
		buf = append(buf, idx-1)
	}
	if col < b.size-1 {
		buf = append(buf, idx+1)
	}
	return buf
}

const (
	emptyRune = '.'
	blackRune = 'X'
	whiteRune = 'O'
)

// Rows renders the board top to bottom, one string per row.
func (b Board) Rows() []string {
	rows := make([]string, b.size)
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		sb.Reset()
		for c := 0; c < b.size; c++ {
			switch b.cells[r*b.size+c] {
			case Black:
				sb.WriteRune(blackRune)
			case White:
				sb.WriteRune(whiteRune)
			default:
				sb.WriteRune(emptyRune)
			}
		}
		rows[r] = sb.String()
	}
	return rows
}

// ParseBoard is the inverse of Rows. All rows must have the same length
// as the number of rows.
func ParseBoard(rows []string) (Board, error) {
	b, err := NewBoard(len(rows))
	if err != nil {
		return Board{}, err
	}
	for r, line := range rows {
		if len(line) != b.size {
			return Board{}, fmt.Errorf("%w: row %d has %d points, want %d", errs.ErrInvalidState, r, len(line), b.size)
		}
		for c, ch := range []byte(line) {
			switch ch {
			case emptyRune:
			case blackRune:
				b.cells[r*b.size+c] = Black
			case whiteRune:
				b.cells[r*b.size+c] = White
			default:
				return Board{}, fmt.Errorf("%w: unexpected %q at (%d,%d)", errs.ErrInvalidState, ch, r, c)
			}
		}
	}
	return b, nil
}

func (b Board) String() string {
	return strings.Join(b.Rows(), "\n")
}

func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Rows())
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	parsed, err := ParseBoard(rows)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
