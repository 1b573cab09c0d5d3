package overlay

import (
	"errors"

	"igomon/coord"
	"igomon/types"
)

var (
	ErrOffBoard = errors.New("point is off the board")
	ErrOccupied = errors.New("point is occupied")
	ErrIllegal  = errors.New("move is not legal")
)

// RenderState is the selection state threaded between rebuilds. Methods
// return a new value; a RenderState is never modified in place.
type RenderState struct {
	Clicked  string
	Proposed *Point
}

// Input combines the state with the rest of the board data.
func (s RenderState) Input(pos types.Position, lastMove *types.LastMove, votes types.Votes, turn types.Color) Input {
	in := Input{
		Position: pos,
		LastMove: lastMove,
		Votes:    votes,
		Clicked:  s.Clicked,
		Turn:     turn,
	}
	if s.Proposed != nil {
		p := *s.Proposed
		in.Proposed = &p
	}
	return in
}

// WithProposed returns a copy of s with the proposed move set to (x, y).
func (s RenderState) WithProposed(x, y int) RenderState {
	s.Proposed = &Point{X: x, Y: y}
	return s
}

// AnswerDetail is emitted when a voted point is clicked.
type AnswerDetail struct {
	Coordinate string // display notation, "D4"
	SGF        string // "dp"
	Entry      types.VoteEntry
}

// Select handles a click in results mode. Clicking a voted point selects it
// and returns its detail; clicking anywhere else on the board clears the
// selection. Off-board clicks leave the state unchanged.
func Select(state RenderState, votes types.Votes, x, y int) (RenderState, *AnswerDetail) {
	code, err := coord.EngineToSGF(x, y)
	if err != nil {
		return state, nil
	}
	entry, ok := votes[code]
	if !ok || entry.Votes < 1 {
		state.Clicked = ""
		return state, nil
	}
	display, err := coord.SGFToDisplay(code)
	if err != nil {
		return state, nil
	}
	state.Clicked = code
	return state, &AnswerDetail{Coordinate: display, SGF: code, Entry: entry}
}

// Validator is the part of a replay session Propose needs.
type Validator interface {
	Position() types.Position
	IsValid(x, y int, color types.Color) bool
}

// Propose checks whether turn may play at (x, y) and returns the SGF
// coordinate the caller should submit.
func Propose(v Validator, turn types.Color, x, y int) (string, error) {
	code, err := coord.EngineToSGF(x, y)
	if err != nil {
		return "", ErrOffBoard
	}
	if v.Position().At(x, y) != types.Empty {
		return "", ErrOccupied
	}
	if turn == types.Empty || !v.IsValid(x, y, turn) {
		return "", ErrIllegal
	}
	return code, nil
}
