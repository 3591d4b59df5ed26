package baduk

// RemoveCaptured scans every point of b once and clears each group of color
// that has no liberties. It returns the resulting board and the number of
// stones removed; b itself is not modified.
//
// Liberties are evaluated against the board as it was before any removal,
// so the result does not depend on scan order.
func RemoveCaptured(b Board, color Color) (Board, int) {
	out := b.Clone()
	if color == Empty {
		return out, 0
	}
	visited := make([]bool, len(b.cells))
	var (
		stack   []int
		removed int
	)
	for idx := range b.cells {
		if visited[idx] || b.cells[idx] != color {
			continue
		}
		members := collectGroup(b, idx, color, visited, stack)
		if countLiberties(b, members) > 0 {
			continue
		}
		for _, m := range members {
			out.cells[m] = Empty
		}
		removed += len(members)
	}
	return out, removed
}
