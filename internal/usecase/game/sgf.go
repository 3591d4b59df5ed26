package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"baduk/internal/domain/baduk"
	"baduk/internal/domain/game"
	"baduk/internal/domain/sgf"
)

const sgfApplication = "baduk:1"

func PrepareSgfFile(boardSize int, createdAt time.Time) sgf.SGF {
	return sgf.SGF{
		Root: &sgf.GameTree{
			Nodes: []sgf.Node{
				{
					Properties: map[string][]string{
						"FF": {"4"},
						"GM": {"1"},
						"CA": {"UTF-8"},
						"AP": {sgfApplication},
						"SZ": {strconv.Itoa(boardSize)},
						"DT": {createdAt.Format("2006-01-02")},
						"RU": {"Japanese"},
					},
				},
			},
		},
	}
}

func SerializeSGF(s *sgf.SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	if s.Root != nil {
		serializeGameTree(&builder, s.Root)
	}
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *sgf.GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")

		used := make(map[string]bool, len(node.Properties))
		for _, key := range sgf.PropertyOrder {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				writeProperty(builder, key, values)
			}
		}

		rest := make([]string, 0, len(node.Properties))
		for key := range node.Properties {
			if !used[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			writeProperty(builder, key, node.Properties[key])
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

func writeProperty(builder *strings.Builder, key string, values []string) {
	builder.WriteString(key)
	for _, v := range values {
		builder.WriteString("[")
		builder.WriteString(escapeSgfValue(v))
		builder.WriteString("]")
	}
}

func escapeSgfValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, "]", `\]`)
}

// AppendMoveToSgf adds a move node to the end of a serialized main line.
func AppendMoveToSgf(sgfText string, move game.Move) string {
	sgfText = strings.TrimSuffix(sgfText, ")")
	return sgfText + fmt.Sprintf(";%s[%s])", move.Color, move.Coordinates)
}

// sgfMove converts a committed command into its record node. Passes are
// written with an empty value.
func sgfMove(color baduk.Color, cmd baduk.Command) game.Move {
	move := game.Move{Color: "B"}
	if color == baduk.White {
		move.Color = "W"
	}
	if cmd.Kind == baduk.CommandPlace {
		move.Coordinates = cmd.Point.SGF()
	}
	return move
}
