// Package sgf extracts moves and header metadata from SGF game records.
//
// The scanner is deliberately lenient: problem files are curated by hand, so
// malformed properties are skipped instead of failing the whole record.
// Variations are not interpreted; move properties are read in textual order.
package sgf

import (
	"strconv"

	"igomon/coord"
	"igomon/types"
)

// GameInfo holds metadata parsed from an SGF root node.
type GameInfo struct {
	BoardSize   int
	Komi        float64
	PlayerBlack string
	PlayerWhite string
	Date        string
	Result      string
	MoveCount   int // B/W properties, passes included
}

// property is one KEY[v1][v2]... entry of a node.
type property struct {
	key    string
	values []string
}

// node is the ordered list of properties following a ';'.
type node []property

// ExtractMoves returns the stone placements of the record in document order.
// Passes and properties with malformed coordinates are skipped.
// It holds no state, so it can be called any number of times on the same text.
func ExtractMoves(content string) []types.Move {
	var moves []types.Move
	for _, n := range scanNodes(content) {
		for _, p := range n {
			color, ok := moveColor(p.key)
			if !ok || len(p.values) == 0 {
				continue
			}
			x, y, err := coord.SGFToEngine(p.values[0])
			if err != nil {
				continue // pass or malformed
			}
			moves = append(moves, types.Move{Color: color, X: x, Y: y})
		}
	}
	return moves
}

// LastMoveColor returns the color of the final B/W property, passes included.
func LastMoveColor(content string) (types.Color, bool) {
	last := types.Empty
	for _, n := range scanNodes(content) {
		for _, p := range n {
			if color, ok := moveColor(p.key); ok {
				last = color
			}
		}
	}
	return last, last != types.Empty
}

// SetupStones returns AB/AW setup placements in document order.
func SetupStones(content string) []types.Move {
	var stones []types.Move
	for _, n := range scanNodes(content) {
		for _, p := range n {
			var color types.Color
			switch p.key {
			case "AB":
				color = types.Black
			case "AW":
				color = types.White
			default:
				continue
			}
			for _, v := range p.values {
				x, y, err := coord.SGFToEngine(v)
				if err != nil {
					continue
				}
				stones = append(stones, types.Move{Color: color, X: x, Y: y})
			}
		}
	}
	return stones
}

// ParseHeader extracts metadata from the root node of an SGF string.
func ParseHeader(content string) GameInfo {
	info := GameInfo{BoardSize: types.BoardSize}

	nodes := scanNodes(content)
	if len(nodes) == 0 {
		return info
	}

	props := make(map[string]string)
	for _, p := range nodes[0] {
		if len(p.values) > 0 {
			props[p.key] = p.values[len(p.values)-1] // last value wins for simple props
		}
	}

	if v, ok := props["SZ"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			info.BoardSize = n
		}
	}
	if v, ok := props["KM"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			info.Komi = f
		}
	}
	info.PlayerBlack = props["PB"]
	info.PlayerWhite = props["PW"]
	info.Date = props["DT"]
	info.Result = props["RE"]

	for _, n := range nodes {
		for _, p := range n {
			if _, ok := moveColor(p.key); ok {
				info.MoveCount++
			}
		}
	}
	return info
}

func moveColor(key string) (types.Color, bool) {
	switch key {
	case "B":
		return types.Black, true
	case "W":
		return types.White, true
	}
	return types.Empty, false
}

// scanNodes splits an SGF string into nodes. Tree structure ('(' and ')')
// is flattened away.
func scanNodes(content string) []node {
	var nodes []node
	var current node
	inNode := false

	i := 0
	for i < len(content) {
		ch := content[i]
		switch {
		case ch == ';':
			if inNode {
				nodes = append(nodes, current)
			}
			current = nil
			inNode = true
			i++
		case ch == '(' || ch == ')':
			if inNode {
				nodes = append(nodes, current)
				current = nil
				inNode = false
			}
			i++
		case ch >= 'A' && ch <= 'Z':
			// Read property identifier (uppercase letters)
			keyStart := i
			for i < len(content) && content[i] >= 'A' && content[i] <= 'Z' {
				i++
			}
			key := content[keyStart:i]
			values, next := readValues(content, i)
			i = next
			if inNode && len(values) > 0 {
				current = append(current, property{key: key, values: values})
			}
		case ch == '[':
			// Stray value without an identifier
			_, next := readValues(content, i)
			i = next
		default:
			i++
		}
	}
	if inNode {
		nodes = append(nodes, current)
	}
	return nodes
}

// readValues reads consecutive [value] groups starting at i, skipping
// whitespace between them. It returns the values and the index after them.
func readValues(content string, i int) ([]string, int) {
	var values []string
	for {
		j := i
		for j < len(content) && isSpace(content[j]) {
			j++
		}
		if j >= len(content) || content[j] != '[' {
			return values, i
		}
		j++ // skip '['
		var val []byte
		for j < len(content) && content[j] != ']' {
			if content[j] == '\\' && j+1 < len(content) {
				j++ // keep escaped char
			}
			val = append(val, content[j])
			j++
		}
		if j < len(content) {
			j++ // skip ']'
		}
		values = append(values, string(val))
		i = j
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}
