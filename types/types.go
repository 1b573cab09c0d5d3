// Package types contains shared data structures for igomon.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BoardSize is the only supported board size.
const BoardSize = 19

// Color is the state of a single intersection, or the color of a player.
type Color int

const (
	Empty Color = 0
	Black Color = 1
	White Color = 2
)

// Opposite returns the other player's color. Empty stays Empty.
func (c Color) Opposite() Color {
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

// ParseColor accepts "black"/"b" and "white"/"w", case-insensitive.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b":
		return Black, nil
	case "white", "w":
		return White, nil
	}
	return Empty, fmt.Errorf("unknown color %q", s)
}

// OnBoard reports whether (x, y) lies on the 19x19 grid.
func OnBoard(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

// Move is a single stone placement decoded from SGF.
type Move struct {
	Color Color
	X     int
	Y     int
}

// Position is a snapshot of the board. It is a value type: copying a
// Position copies the grid, so a returned Position never aliases engine state.
type Position struct {
	cells [BoardSize][BoardSize]Color // cells[x][y]
}

// At returns the stone at (x, y), or Empty when off board.
func (p Position) At(x, y int) Color {
	if !OnBoard(x, y) {
		return Empty
	}
	return p.cells[x][y]
}

// With returns a copy of p with (x, y) set to c. Off-board writes are ignored.
func (p Position) With(x, y int, c Color) Position {
	if OnBoard(x, y) {
		p.cells[x][y] = c
	}
	return p
}

// Stones counts occupied intersections.
func (p Position) Stones() int {
	n := 0
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			if p.cells[x][y] != Empty {
				n++
			}
		}
	}
	return n
}

// LastMove identifies the most recently applied move of a replay.
type LastMove struct {
	X     int
	Y     int
	Color Color
}

// VoteEntry aggregates the answers given for one proposed coordinate.
// Answers are opaque and passed through untouched.
type VoteEntry struct {
	Votes   int               `json:"votes"`
	Answers []json.RawMessage `json:"answers"`
}

// Votes maps SGF coordinates ("dd") to their aggregated entry.
type Votes map[string]VoteEntry

// AnnotationKind tags the variant held by an Annotation.
type AnnotationKind int

const (
	StoneMark AnnotationKind = iota
	LastMoveMark
	VoteBadge
	VoteLabelOnStone
	ClickSelection
	ProposedMove
)

func (k AnnotationKind) String() string {
	switch k {
	case StoneMark:
		return "stone"
	case LastMoveMark:
		return "last-move"
	case VoteBadge:
		return "vote-badge"
	case VoteLabelOnStone:
		return "vote-label"
	case ClickSelection:
		return "click-selection"
	case ProposedMove:
		return "proposed-move"
	}
	return "unknown"
}

// Tier buckets a vote count for display weight.
type Tier string

const (
	TierNone Tier = ""
	TierLow  Tier = "low"
	TierMid  Tier = "mid"
	TierHigh Tier = "high"
)

// Annotation is one renderable object on the board. Which fields are
// meaningful depends on Kind:
//
//	StoneMark        X, Y, Color
//	LastMoveMark     X, Y, Color (ring color, opposite of the stone)
//	VoteBadge        X, Y, Count, Tier
//	VoteLabelOnStone X, Y, Count
//	ClickSelection   X, Y
//	ProposedMove     X, Y, Color (player to move)
type Annotation struct {
	Kind  AnnotationKind
	X     int
	Y     int
	Color Color
	Count int
	Tier  Tier
}
