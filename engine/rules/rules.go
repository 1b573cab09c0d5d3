// Package rules is an in-process Go rules engine: captures, suicide and simple ko.
package rules

import (
	"fmt"

	"igomon/engine"
	"igomon/types"
)

var neighbors = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Engine implements engine.Engine without any external process.
type Engine struct {
	pos types.Position
	// ko is the point the next player may not play at, or (-1, -1).
	koX, koY int
	koColor  types.Color
}

// New creates an empty board.
func New() *Engine {
	return &Engine{koX: -1, koY: -1}
}

// Factory adapts New to engine.Factory.
func Factory() (engine.Engine, error) {
	return New(), nil
}

// Play applies a move, removing captured opponent groups.
func (e *Engine) Play(x, y int, color types.Color) error {
	next, koX, koY, err := e.try(x, y, color)
	if err != nil {
		return err
	}
	e.pos = next
	e.koX, e.koY = koX, koY
	e.koColor = color.Opposite()
	return nil
}

// Position returns a copy of the board.
func (e *Engine) Position() types.Position {
	return e.pos
}

// IsValid reports whether color may play at (x, y).
func (e *Engine) IsValid(x, y int, color types.Color) bool {
	_, _, _, err := e.try(x, y, color)
	return err == nil
}

// Close is a no-op.
func (e *Engine) Close() {}

// try computes the position after a move without mutating the engine.
func (e *Engine) try(x, y int, color types.Color) (types.Position, int, int, error) {
	if color != types.Black && color != types.White {
		return e.pos, -1, -1, fmt.Errorf("%w: no color", engine.ErrReplayRejected)
	}
	if !types.OnBoard(x, y) {
		return e.pos, -1, -1, fmt.Errorf("%w: (%d, %d) is off board", engine.ErrReplayRejected, x, y)
	}
	if e.pos.At(x, y) != types.Empty {
		return e.pos, -1, -1, fmt.Errorf("%w: (%d, %d) is occupied", engine.ErrReplayRejected, x, y)
	}
	if x == e.koX && y == e.koY && color == e.koColor {
		return e.pos, -1, -1, fmt.Errorf("%w: (%d, %d) retakes ko", engine.ErrReplayRejected, x, y)
	}

	pos := e.pos.With(x, y, color)
	pos, captured, capX, capY := removeCaptures(pos, x, y, color)

	if !hasLiberties(pos, x, y, color) {
		return e.pos, -1, -1, fmt.Errorf("%w: (%d, %d) is suicide", engine.ErrReplayRejected, x, y)
	}

	// A single stone that captured exactly one stone and now has exactly one
	// liberty (the captured point) creates a ko.
	koX, koY := -1, -1
	if captured == 1 && groupSize(pos, x, y, color) == 1 && liberties(pos, x, y, color) == 1 {
		koX, koY = capX, capY
	}
	return pos, koX, koY, nil
}

// removeCaptures removes opponent groups adjacent to (x, y) that have no liberties.
// It returns the new position, the number of stones removed and the location
// of the last stone removed.
func removeCaptures(pos types.Position, x, y int, color types.Color) (types.Position, int, int, int) {
	opponent := color.Opposite()
	captured, lastX, lastY := 0, -1, -1

	for _, d := range neighbors {
		nx, ny := x+d[0], y+d[1]
		if pos.At(nx, ny) != opponent || hasLiberties(pos, nx, ny, opponent) {
			continue
		}
		for _, p := range group(pos, nx, ny, opponent) {
			pos = pos.With(p[0], p[1], types.Empty)
			captured++
			lastX, lastY = p[0], p[1]
		}
	}
	return pos, captured, lastX, lastY
}

// group returns every stone connected to (x, y) of the given color.
func group(pos types.Position, x, y int, color types.Color) [][2]int {
	var visited [types.BoardSize][types.BoardSize]bool
	var stones [][2]int
	stack := [][2]int{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !types.OnBoard(p[0], p[1]) || visited[p[0]][p[1]] || pos.At(p[0], p[1]) != color {
			continue
		}
		visited[p[0]][p[1]] = true
		stones = append(stones, p)
		for _, d := range neighbors {
			stack = append(stack, [2]int{p[0] + d[0], p[1] + d[1]})
		}
	}
	return stones
}

func groupSize(pos types.Position, x, y int, color types.Color) int {
	return len(group(pos, x, y, color))
}

// liberties counts the distinct empty points adjacent to the group at (x, y).
func liberties(pos types.Position, x, y int, color types.Color) int {
	var seen [types.BoardSize][types.BoardSize]bool
	n := 0
	for _, p := range group(pos, x, y, color) {
		for _, d := range neighbors {
			nx, ny := p[0]+d[0], p[1]+d[1]
			if !types.OnBoard(nx, ny) || seen[nx][ny] || pos.At(nx, ny) != types.Empty {
				continue
			}
			seen[nx][ny] = true
			n++
		}
	}
	return n
}

// hasLiberties checks if the group at (x, y) has any liberties.
func hasLiberties(pos types.Position, x, y int, color types.Color) bool {
	return liberties(pos, x, y, color) > 0
}
