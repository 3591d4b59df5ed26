package baduk

import "sort"

// FindGroup returns the stones orthogonally connected to start that share
// color, ordered row-major. It returns nil when start is off the board or
// does not hold color, and nil for color Empty.
func FindGroup(b Board, start Point, color Color) []Point {
	if color == Empty || !b.InBounds(start.Row, start.Col) {
		return nil
	}
	visited := make([]bool, len(b.cells))
	members := collectGroup(b, b.index(start), color, visited, nil)
	if len(members) == 0 {
		return nil
	}
	sort.Ints(members)
	group := make([]Point, len(members))
	for i, idx := range members {
		group[i] = b.point(idx)
	}
	return group
}

// collectGroup walks the group containing start with an explicit stack,
// marking every member in visited. Cells already visited are skipped, which
// lets a full-board scan share one visited slice across groups.
func collectGroup(b Board, start int, color Color, visited []bool, stack []int) []int {
	if visited[start] || b.cells[start] != color {
		return nil
	}
	var (
		members []int
		adj     [4]int
	)
	visited[start] = true
	stack = append(stack[:0], start)
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		members = append(members, idx)
		for _, n := range b.neighbors(idx, adj[:0]) {
			if !visited[n] && b.cells[n] == color {
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}
	return members
}

// CountLiberties returns the number of distinct empty points orthogonally
// adjacent to any member of group. Points outside the board are ignored.
func CountLiberties(b Board, group []Point) int {
	if len(group) == 0 {
		return 0
	}
	members := make([]int, 0, len(group))
	for _, p := range group {
		if b.InBounds(p.Row, p.Col) {
			members = append(members, b.index(p))
		}
	}
	return countLiberties(b, members)
}

func countLiberties(b Board, members []int) int {
	seen := make([]bool, len(b.cells))
	var adj [4]int
	liberties := 0
	for _, idx := range members {
		for _, n := range b.neighbors(idx, adj[:0]) {
			if b.cells[n] == Empty && !seen[n] {
				seen[n] = true
				liberties++
			}
		}
	}
	return liberties
}
