package sgf

// GameTree is a sequence of nodes (the main line) plus variations.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node holds SGF properties such as B[pd] or SZ[19]. A property may carry
// several values (AB[aa][bb]).
type Node struct {
	Properties map[string][]string
}

type SGF struct {
	Root *GameTree
}

// Properties written first, in this order; anything else follows sorted
// by name.
var PropertyOrder = []string{"FF", "GM", "CA", "AP", "SZ", "PB", "PW", "DT", "RE", "KM", "RU", "C", "B", "W"}
