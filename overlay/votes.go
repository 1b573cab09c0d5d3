package overlay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"igomon/types"
)

// ErrInvalidVotes is returned for a votes file with negative counts.
var ErrInvalidVotes = errors.New("invalid votes")

// ReadVotes loads a votes file. An empty path yields no votes.
func ReadVotes(path string) (types.Votes, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeVotes(f)
}

// DecodeVotes reads a JSON object keyed by SGF coordinate:
//
//	{"dd": {"votes": 3, "answers": [...]}}
//
// Answers are kept as raw JSON. Keys are not validated here; Build drops
// coordinates it cannot place.
func DecodeVotes(r io.Reader) (types.Votes, error) {
	var votes types.Votes
	if err := json.NewDecoder(r).Decode(&votes); err != nil {
		return nil, fmt.Errorf("decode votes: %w", err)
	}
	for code, entry := range votes {
		if entry.Votes < 0 {
			return nil, fmt.Errorf("%w: %s has %d votes", ErrInvalidVotes, code, entry.Votes)
		}
	}
	return votes, nil
}
