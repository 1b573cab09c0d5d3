package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawStoneBackground:      false,
		DrawCursorBackground:     true,
		DrawLastPlayedBackground: true,
		FullWidthLetters:         false,
		UseGridLines:             true,
		Colors: ConfigColors{
			BoardColor:        180,
			BoardColorAlt:     180,
			BlackColor:        232,
			WhiteColor:        255,
			LineColor:         94,
			CursorColorFG:     2,
			CursorColorBG:     4,
			LastPlayedColorBG: 2,
			SelectedColorBG:   5,
			ProposedColorBG:   6,
			LabelColorFG:      226,
		},
		VoteColors: VoteColors{
			Low:  "#57a4ff",
			Mid:  "#ffa502",
			High: "#ff4757",
		},
		Symbols: ConfigSymbols{
			BlackStone:  '●',
			WhiteStone:  '●',
			BoardSquare: '┼',
			Proposed:    '◎',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Problems: ProblemsConfig{
			Dir:        filepath.Join(xdg.DataHome, "igomon", "problems"),
			AnswersDir: filepath.Join(xdg.DataHome, "igomon", "answers"),
		},
		Engine: EngineConfig{
			Kind:      "rules",
			GnuGoPath: "gnugo",
		},
		Log: LogConfig{
			Path:  filepath.Join(xdg.StateHome, "igomon", "igomon.log"),
			Level: "info",
		},
	}
}
