// Package coord converts between the three coordinate notations used by igomon.
//
// Engine coordinates:
//   - X: 0-18 (left to right)
//   - Y: 0-18 (top to bottom)
//
// SGF coordinates:
//   - two lowercase letters, column then row: "aa" is the top-left corner
//   - Example: "dp" for (3, 15)
//
// Display coordinates:
//   - Columns: A-T (skipping I to avoid confusion with 1)
//   - Rows: 19-1 (from top of board)
//   - Example: "D4" for (3, 15), "Q16" for (15, 3)
package coord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"igomon/types"
)

// ErrInvalidCoordinate is returned for malformed or out-of-range coordinates.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// OffBoard is the sentinel returned alongside ErrInvalidCoordinate.
const OffBoard = -1

// Letters are the display column letters, "I" omitted.
const Letters = "ABCDEFGHJKLMNOPQRST"

// SGFToEngine decodes a two-letter SGF coordinate.
// On failure it returns (OffBoard, OffBoard) and ErrInvalidCoordinate.
func SGFToEngine(code string) (int, int, error) {
	if len(code) != 2 {
		return OffBoard, OffBoard, fmt.Errorf("%w: %q", ErrInvalidCoordinate, code)
	}
	x := int(code[0]) - 'a'
	y := int(code[1]) - 'a'
	if !types.OnBoard(x, y) {
		return OffBoard, OffBoard, fmt.Errorf("%w: %q", ErrInvalidCoordinate, code)
	}
	return x, y, nil
}

// EngineToSGF encodes (x, y) as a two-letter SGF coordinate.
// (0,0) -> "aa", (3,4) -> "de", (18,18) -> "ss".
func EngineToSGF(x, y int) (string, error) {
	if !types.OnBoard(x, y) {
		return "", fmt.Errorf("%w: (%d, %d)", ErrInvalidCoordinate, x, y)
	}
	return string(rune('a'+x)) + string(rune('a'+y)), nil
}

// EngineToDisplay converts (x, y) to display notation.
// (0, 18) -> A1, (3, 15) -> D4, (15, 3) -> Q16
func EngineToDisplay(x, y int) (string, error) {
	if !types.OnBoard(x, y) {
		return "", fmt.Errorf("%w: (%d, %d)", ErrInvalidCoordinate, x, y)
	}
	return fmt.Sprintf("%c%d", Letters[x], types.BoardSize-y), nil
}

// SGFToDisplay converts an SGF coordinate to display notation, or returns
// "" and ErrInvalidCoordinate for malformed input.
func SGFToDisplay(code string) (string, error) {
	x, y, err := SGFToEngine(code)
	if err != nil {
		return "", err
	}
	return EngineToDisplay(x, y)
}

// DisplayToEngine parses display notation such as "D4" or "q16".
// "I" is never a valid column.
func DisplayToEngine(vertex string) (int, int, error) {
	vertex = strings.TrimSpace(strings.ToUpper(vertex))
	if len(vertex) < 2 {
		return OffBoard, OffBoard, fmt.Errorf("%w: %q", ErrInvalidCoordinate, vertex)
	}

	x := strings.IndexByte(Letters, vertex[0])
	if x < 0 {
		return OffBoard, OffBoard, fmt.Errorf("%w: %q", ErrInvalidCoordinate, vertex)
	}

	row, err := strconv.Atoi(vertex[1:])
	if err != nil || row < 1 || row > types.BoardSize {
		return OffBoard, OffBoard, fmt.Errorf("%w: %q", ErrInvalidCoordinate, vertex)
	}

	// Rows count up from the bottom edge, y counts down from the top.
	return x, types.BoardSize - row, nil
}

// DisplayToSGF converts display notation to an SGF coordinate.
func DisplayToSGF(vertex string) (string, error) {
	x, y, err := DisplayToEngine(vertex)
	if err != nil {
		return "", err
	}
	return EngineToSGF(x, y)
}
