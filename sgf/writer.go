package sgf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"igomon/types"
)

// AnswerRecord is a problem position and the viewer's answer, written as SGF.
// The position is stored as AB/AW setup so captures made during replay are
// already resolved for whoever opens the file.
type AnswerRecord struct {
	ProblemID   int
	Info        GameInfo
	Description string
	Position    types.Position
	Answer      types.Move
	Date        string
}

// sgfCoord converts 0-indexed board coordinates to SGF letter pair.
// (0,0) -> "aa", (3,4) -> "de", (18,18) -> "ss".
func sgfCoord(x, y int) string {
	return string(rune('a'+x)) + string(rune('a'+y))
}

// escapeText escapes a SimpleText/Text value.
func escapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `]`, `\]`)
	return r.Replace(s)
}

// String renders the record.
func (r AnswerRecord) String() string {
	var b strings.Builder

	// Root node
	b.WriteString("(;GM[1]FF[4]CA[UTF-8]")
	b.WriteString("AP[igomon:1.0]")
	b.WriteString(fmt.Sprintf("SZ[%d]", types.BoardSize))
	if r.Info.Komi != 0 {
		b.WriteString(fmt.Sprintf("KM[%.1f]", r.Info.Komi))
	}
	if r.Info.PlayerBlack != "" {
		b.WriteString(fmt.Sprintf("PB[%s]", escapeText(r.Info.PlayerBlack)))
	}
	if r.Info.PlayerWhite != "" {
		b.WriteString(fmt.Sprintf("PW[%s]", escapeText(r.Info.PlayerWhite)))
	}
	if r.Date != "" {
		b.WriteString(fmt.Sprintf("DT[%s]", r.Date))
	}
	b.WriteString(fmt.Sprintf("GN[problem %d]", r.ProblemID))
	if r.Description != "" {
		b.WriteString(fmt.Sprintf("GC[%s]", escapeText(r.Description)))
	}
	if r.Answer.Color == types.White {
		b.WriteString("PL[W]")
	} else {
		b.WriteString("PL[B]")
	}

	var setupBlack, setupWhite []string
	for y := 0; y < types.BoardSize; y++ {
		for x := 0; x < types.BoardSize; x++ {
			switch r.Position.At(x, y) {
			case types.Black:
				setupBlack = append(setupBlack, sgfCoord(x, y))
			case types.White:
				setupWhite = append(setupWhite, sgfCoord(x, y))
			}
		}
	}
	if len(setupBlack) > 0 {
		b.WriteString("AB")
		for _, c := range setupBlack {
			b.WriteString(fmt.Sprintf("[%s]", c))
		}
	}
	if len(setupWhite) > 0 {
		b.WriteString("AW")
		for _, c := range setupWhite {
			b.WriteString(fmt.Sprintf("[%s]", c))
		}
	}
	b.WriteString("\n")

	colorChar := "B"
	if r.Answer.Color == types.White {
		colorChar = "W"
	}
	b.WriteString(fmt.Sprintf(";%s[%s]", colorChar, sgfCoord(r.Answer.X, r.Answer.Y)))
	b.WriteString(")\n")
	return b.String()
}

// WriteAnswer saves r as <dir>/<problem id>.sgf, replacing an earlier answer,
// and returns the file path.
func WriteAnswer(dir string, r AnswerRecord) (string, error) {
	if !types.OnBoard(r.Answer.X, r.Answer.Y) {
		return "", fmt.Errorf("answer (%d, %d) is off the board", r.Answer.X, r.Answer.Y)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create answers dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%d.sgf", r.ProblemID))
	if err := os.WriteFile(path, []byte(r.String()), 0644); err != nil {
		return "", fmt.Errorf("write answer: %w", err)
	}
	return path, nil
}
