package problem

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"igomon/types"
)

var (
	// ErrMissingRequiredField is returned when description.txt lacks a mandatory key.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrInvalidField is returned when a value cannot be parsed.
	ErrInvalidField = errors.New("invalid field")
)

// deadlineLayouts are tried in order.
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Metadata is the parsed content of a description.txt file.
type Metadata struct {
	Turn        *types.Color
	Description string
	Moves       *int
	Deadline    *time.Time
}

// ParseDescription reads "key: value" lines. Everything after the first ':'
// belongs to the value. Unknown keys and lines without ':' are ignored, and
// a repeated key keeps its last value.
func ParseDescription(content string) (Metadata, error) {
	fields := map[string]string{}
	content = strings.TrimPrefix(content, "\ufeff")
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return Metadata{}, fmt.Errorf("read description: %w", err)
	}

	var md Metadata
	md.Description = fields["description"]
	if md.Description == "" {
		return Metadata{}, fmt.Errorf("%w: description", ErrMissingRequiredField)
	}

	if v := fields["turn"]; v != "" {
		c, err := types.ParseColor(v)
		if err != nil {
			return Metadata{}, fmt.Errorf("%w: turn: %v", ErrInvalidField, err)
		}
		md.Turn = &c
	}

	if v := fields["moves"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Metadata{}, fmt.Errorf("%w: moves %q", ErrInvalidField, v)
		}
		if n < 0 {
			return Metadata{}, fmt.Errorf("%w: moves must not be negative, got %d", ErrInvalidField, n)
		}
		md.Moves = &n
	}

	if v := fields["deadline"]; v != "" {
		t, err := parseDeadline(v)
		if err != nil {
			return Metadata{}, err
		}
		md.Deadline = &t
	}

	return md, nil
}

func parseDeadline(v string) (time.Time, error) {
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: deadline %q", ErrInvalidField, v)
}
