package problem

import (
	"igomon/sgf"
	"igomon/types"
)

// ResolveTurn decides whose move is next.
//
// An explicit turn wins. Otherwise the move count decides by parity, black
// having played move 1: odd counts leave white to move, even counts black.
// Without either, the color opposite the record's final move is returned,
// and black when the record holds no moves.
func ResolveTurn(explicit *types.Color, moves *int, sgfText string) types.Color {
	if explicit != nil && *explicit != types.Empty {
		return *explicit
	}
	if moves != nil {
		if *moves%2 == 1 {
			return types.White
		}
		return types.Black
	}
	if last, ok := sgf.LastMoveColor(sgfText); ok {
		return last.Opposite()
	}
	return types.Black
}
