// Package engine defines the contract for Go rules engines used to replay moves.
package engine

import (
	"errors"

	"igomon/types"
)

// ErrReplayRejected is returned by Play when the engine refuses a move.
var ErrReplayRejected = errors.New("move rejected by rules engine")

// Engine resolves captures and legality for a single 19x19 game.
// A freshly created engine holds an empty board with Black to move.
type Engine interface {
	// Play applies a move. It returns an error wrapping ErrReplayRejected
	// if the move is illegal (off board, occupied, suicide or ko); the
	// position is left unchanged in that case.
	Play(x, y int, color types.Color) error

	// Position returns a snapshot of the current board.
	Position() types.Position

	// IsValid reports whether Play(x, y, color) would succeed, without playing it.
	IsValid(x, y int, color types.Color) bool

	// Close releases any resources held by the engine.
	Close()
}

// Factory creates a new, empty engine.
type Factory func() (Engine, error)

// Kind names an engine implementation in configuration.
type Kind string

const (
	KindRules Kind = "rules"
	KindGTP   Kind = "gtp"
)
