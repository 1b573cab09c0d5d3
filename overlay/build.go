// Package overlay turns a replayed position, its last move and vote results
// into an ordered list of renderer-neutral annotations.
package overlay

import (
	"sort"

	"igomon/coord"
	"igomon/types"
)

// Tier thresholds.
const (
	MidVotes  = 5
	HighVotes = 10
)

// Point is an engine coordinate.
type Point struct {
	X, Y int
}

// Input carries everything Build needs. A zero Input yields no annotations.
type Input struct {
	Position types.Position
	LastMove *types.LastMove
	Votes    types.Votes
	// Clicked is the SGF coordinate of the selected vote, if any.
	Clicked string
	// Proposed is the viewer's candidate move, drawn in Turn's color.
	Proposed *Point
	Turn     types.Color
}

// TierFor buckets a vote count. Counts below one have no tier.
func TierFor(votes int) types.Tier {
	switch {
	case votes >= HighVotes:
		return types.TierHigh
	case votes >= MidVotes:
		return types.TierMid
	case votes >= 1:
		return types.TierLow
	}
	return types.TierNone
}

// Build returns annotations in a fixed order: stones (x then y), the
// last-move mark, votes sorted by coordinate, the click selection, then the
// proposed move. Identical inputs always produce identical output.
func Build(in Input) []types.Annotation {
	var out []types.Annotation

	for x := 0; x < types.BoardSize; x++ {
		for y := 0; y < types.BoardSize; y++ {
			if c := in.Position.At(x, y); c != types.Empty {
				out = append(out, types.Annotation{Kind: types.StoneMark, X: x, Y: y, Color: c})
			}
		}
	}

	if lm := in.LastMove; lm != nil && types.OnBoard(lm.X, lm.Y) {
		out = append(out, types.Annotation{
			Kind:  types.LastMoveMark,
			X:     lm.X,
			Y:     lm.Y,
			Color: lm.Color.Opposite(),
		})
	}

	for _, code := range sortedKeys(in.Votes) {
		entry := in.Votes[code]
		if entry.Votes < 1 {
			continue
		}
		x, y, err := coord.SGFToEngine(code)
		if err != nil {
			continue
		}
		if in.Position.At(x, y) != types.Empty {
			out = append(out, types.Annotation{Kind: types.VoteLabelOnStone, X: x, Y: y, Count: entry.Votes})
			continue
		}
		out = append(out, types.Annotation{
			Kind:  types.VoteBadge,
			X:     x,
			Y:     y,
			Count: entry.Votes,
			Tier:  TierFor(entry.Votes),
		})
	}

	if in.Clicked != "" {
		if _, ok := in.Votes[in.Clicked]; ok {
			if x, y, err := coord.SGFToEngine(in.Clicked); err == nil {
				out = append(out, types.Annotation{Kind: types.ClickSelection, X: x, Y: y})
			}
		}
	}

	if p := in.Proposed; p != nil && types.OnBoard(p.X, p.Y) && in.Position.At(p.X, p.Y) == types.Empty {
		out = append(out, types.Annotation{Kind: types.ProposedMove, X: p.X, Y: p.Y, Color: in.Turn})
	}

	return out
}

func sortedKeys(votes types.Votes) []string {
	keys := make([]string, 0, len(votes))
	for k := range votes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
