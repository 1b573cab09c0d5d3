// Package problem loads problem directories and resolves whose turn it is.
package problem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"igomon/sgf"
	"igomon/types"
)

const (
	descriptionFile = "description.txt"
	kifuFile        = "kifu.sgf"
)

// Problem is one fully loaded problem.
type Problem struct {
	ID          int
	Turn        types.Color
	Description string
	Moves       *int
	Deadline    *time.Time
	SGF         string
}

// Closed reports whether the deadline has passed at now.
func (p *Problem) Closed(now time.Time) bool {
	return p.Deadline != nil && !now.Before(*p.Deadline)
}

// Summary is the browser's view of a problem.
type Summary struct {
	ID          int
	Description string
	Turn        types.Color
	Deadline    *time.Time
}

// Loader reads problems from Dir/<id>/.
type Loader struct {
	Dir string
	Log *zap.SugaredLogger
}

// NewLoader returns a Loader rooted at dir.
func NewLoader(dir string, log *zap.SugaredLogger) *Loader {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Loader{Dir: dir, Log: log}
}

// Load reads description.txt and kifu.sgf for id and resolves the turn.
func (l *Loader) Load(id string) (*Problem, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: problem id %q", ErrInvalidField, id)
	}
	dir := filepath.Join(l.Dir, id)

	desc, err := os.ReadFile(filepath.Join(dir, descriptionFile))
	if err != nil {
		return nil, fmt.Errorf("problem %s: %w", id, err)
	}
	kifu, err := os.ReadFile(filepath.Join(dir, kifuFile))
	if err != nil {
		return nil, fmt.Errorf("problem %s: %w", id, err)
	}

	md, err := ParseDescription(string(desc))
	if err != nil {
		return nil, fmt.Errorf("problem %s: %w", id, err)
	}

	sgfText := string(kifu)
	if size := sgf.ParseHeader(sgfText).BoardSize; size != types.BoardSize {
		return nil, fmt.Errorf("problem %s: %w: board size %d", id, ErrInvalidField, size)
	}

	p := &Problem{
		ID:          n,
		Turn:        ResolveTurn(md.Turn, md.Moves, sgfText),
		Description: md.Description,
		Moves:       md.Moves,
		Deadline:    md.Deadline,
		SGF:         sgfText,
	}
	l.log().Debugw("problem loaded", "id", n, "turn", p.Turn.String(), "explicit_turn", md.Turn != nil)
	return p, nil
}

// List returns every loadable problem under Dir, sorted by id.
// Entries that fail to load are logged and skipped.
func (l *Loader) List() ([]Summary, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list problems: %w", err)
	}

	var out []Summary
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := strconv.Atoi(e.Name()); err != nil {
			continue
		}
		p, err := l.Load(e.Name())
		if err != nil {
			l.log().Warnw("skipping problem", "dir", e.Name(), "error", err)
			continue
		}
		out = append(out, Summary{
			ID:          p.ID,
			Description: p.Description,
			Turn:        p.Turn,
			Deadline:    p.Deadline,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (l *Loader) log() *zap.SugaredLogger {
	if l.Log == nil {
		return zap.NewNop().Sugar()
	}
	return l.Log
}
