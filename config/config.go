package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/adrg/xdg"
)

var (
	cfgFile = "igomon/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board"`
	BoardColorAlt     int `json:"board_alt"`
	BlackColor        int `json:"black"`
	WhiteColor        int `json:"white"`
	LineColor         int `json:"line"`
	CursorColorFG     int `json:"cursor_fg"`
	CursorColorBG     int `json:"cursor_bg"`
	LastPlayedColorBG int `json:"last_played_bg"`
	SelectedColorBG   int `json:"selected_bg"`
	ProposedColorBG   int `json:"proposed_bg"`
	LabelColorFG      int `json:"label_fg"`
}

// VoteColors are badge backgrounds per tier, as names or "#rrggbb".
type VoteColors struct {
	Low  string `json:"low"`
	Mid  string `json:"mid"`
	High string `json:"high"`
}

type ConfigSymbols struct {
	BlackStone  rune `json:"black"`
	WhiteStone  rune `json:"white"`
	BoardSquare rune `json:"board"`
	Proposed    rune `json:"proposed"`
}

type Theme struct {
	DrawStoneBackground      bool          `json:"draw_stone_bg"`
	DrawCursorBackground     bool          `json:"draw_cursor_bg"`
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg"`
	FullWidthLetters         bool          `json:"fullwidth_letters"`
	UseGridLines             bool          `json:"use_grid_lines"`
	Colors                   ConfigColors  `json:"colors"`
	VoteColors               VoteColors    `json:"vote_colors"`
	Symbols                  ConfigSymbols `json:"symbols"`
}

// ProblemsConfig locates problem directories.
type ProblemsConfig struct {
	Dir string `json:"dir"`
	// AnswersDir receives an SGF per answered problem. Empty disables saving.
	AnswersDir string `json:"answers_dir"`
}

// EngineConfig selects the rules engine used for replay.
type EngineConfig struct {
	Kind      string `json:"kind"` // "rules" or "gtp"
	GnuGoPath string `json:"gnugo_path"`
}

// LogConfig controls the log file. An empty path disables logging.
type LogConfig struct {
	Path  string `json:"path"`
	Level string `json:"level"`
}

type Config struct {
	Theme    Theme          `json:"theme"`
	Problems ProblemsConfig `json:"problems"`
	Engine   EngineConfig   `json:"engine"`
	Log      LogConfig      `json:"log"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.BlackStone, c.Theme.Symbols.WhiteStone, c.Theme.Symbols.BoardSquare, c.Theme.Symbols.Proposed} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	switch strings.ToLower(c.Engine.Kind) {
	case "rules", "gtp":
	default:
		return &InvalidConfig{fmt.Sprintf("unknown engine kind %q, expected rules or gtp", c.Engine.Kind)}
	}
	if c.Problems.Dir == "" {
		return &InvalidConfig{"problems.dir must not be empty"}
	}
	for _, col := range []string{c.Theme.VoteColors.Low, c.Theme.VoteColors.Mid, c.Theme.VoteColors.High} {
		if col == "" {
			return &InvalidConfig{"vote colors must not be empty"}
		}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(configReader, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
