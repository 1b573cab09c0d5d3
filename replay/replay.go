// Package replay reconstructs a board position by feeding SGF moves to a rules engine.
package replay

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"igomon/engine"
	"igomon/types"
)

// AllMoves disables truncation.
const AllMoves = -1

// RejectPolicy decides what happens when the engine refuses a move.
type RejectPolicy int

const (
	// ContinueOnReject treats a rejected move as a pass and keeps replaying.
	ContinueOnReject RejectPolicy = iota
	// AbortOnReject stops at the first rejected move.
	AbortOnReject
)

// Options configures a replay.
type Options struct {
	// MaxMoves limits the replay to the first MaxMoves moves; AllMoves (or
	// any negative value) replays everything.
	MaxMoves int
	Policy   RejectPolicy
	// Setup stones (AB/AW) are placed before the move list and never count
	// toward MaxMoves or LastMove.
	Setup []types.Move
	Log   *zap.SugaredLogger
}

// Rejected records a move the engine refused.
type Rejected struct {
	Index int // position in the move list
	Move  types.Move
	Err   error
}

// Session owns the engine used for one replay. Its Position and LastMove
// are fixed once Run returns; a changed SGF or move limit means a new Session.
type Session struct {
	eng      engine.Engine
	position types.Position
	lastMove *types.LastMove
	applied  int
	rejected []Rejected
}

// Run replays moves on a fresh engine from newEngine.
//
// With AbortOnReject, the returned error wraps engine.ErrReplayRejected and
// the Session reflects the moves applied before the rejection.
func Run(newEngine engine.Factory, moves []types.Move, opts Options) (*Session, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	eng, err := newEngine()
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	s := &Session{eng: eng}

	for _, st := range opts.Setup {
		if err := eng.Play(st.X, st.Y, st.Color); err != nil {
			log.Debugw("setup stone rejected", "x", st.X, "y", st.Y, "color", st.Color.String(), "error", err)
		}
	}

	limit := len(moves)
	if opts.MaxMoves >= 0 && opts.MaxMoves < limit {
		limit = opts.MaxMoves
	}

	var abortErr error
	for i, m := range moves[:limit] {
		if err := eng.Play(m.X, m.Y, m.Color); err != nil {
			if !errors.Is(err, engine.ErrReplayRejected) {
				// Transport failure, not a rules decision.
				s.snapshot()
				return s, fmt.Errorf("replay move %d: %w", i+1, err)
			}
			s.rejected = append(s.rejected, Rejected{Index: i, Move: m, Err: err})
			log.Debugw("move rejected", "index", i, "x", m.X, "y", m.Y, "color", m.Color.String(), "error", err)
			if opts.Policy == AbortOnReject {
				abortErr = fmt.Errorf("replay move %d: %w", i+1, err)
				break
			}
			continue
		}
		s.applied++
		s.lastMove = &types.LastMove{X: m.X, Y: m.Y, Color: m.Color}
	}

	s.snapshot()
	log.Debugw("replay finished", "moves", len(moves), "limit", limit, "applied", s.applied, "rejected", len(s.rejected))
	return s, abortErr
}

func (s *Session) snapshot() {
	s.position = s.eng.Position()
}

// Position is the board after replay.
func (s *Session) Position() types.Position {
	return s.position
}

// LastMove is the last successfully applied move, or nil.
func (s *Session) LastMove() *types.LastMove {
	if s.lastMove == nil {
		return nil
	}
	lm := *s.lastMove
	return &lm
}

// Applied is the number of moves the engine accepted.
func (s *Session) Applied() int {
	return s.applied
}

// Rejected lists the moves the engine refused, in order.
func (s *Session) Rejected() []Rejected {
	out := make([]Rejected, len(s.rejected))
	copy(out, s.rejected)
	return out
}

// IsValid asks the engine whether color may play at (x, y) in the replayed position.
func (s *Session) IsValid(x, y int, color types.Color) bool {
	return s.eng.IsValid(x, y, color)
}

// Close releases the engine.
func (s *Session) Close() {
	s.eng.Close()
}
