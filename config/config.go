package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"flickboard/engine"
	"flickboard/types"
)

var (
	cfgFile = "flickboard/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor      int `json:"board"`
	BoardColorAlt   int `json:"board_alt"`
	Player1Color    int `json:"player1"`
	Player2Color    int `json:"player2"`
	HintColor       int `json:"hint"`
	CursorColorFG   int `json:"cursor_fg"`
	CursorColorBG   int `json:"cursor_bg"`
	SelectedColorBG int `json:"selected_bg"`
	PadColorBG      int `json:"pad_bg"`
}

type ConfigSymbols struct {
	Player1 rune `json:"player1"`
	Player2 rune `json:"player2"`
	Empty   rune `json:"empty"`
	Slot    rune `json:"slot"`
}

type Theme struct {
	DrawPieceBackground    bool          `json:"draw_piece_bg"`
	DrawCursorBackground   bool          `json:"draw_cursor_bg"`
	DrawSelectedBackground bool          `json:"draw_selected_bg"`
	ShowFlickPad           bool          `json:"show_flick_pad"`
	Colors                 ConfigColors  `json:"colors"`
	Symbols                ConfigSymbols `json:"symbols"`
}

// EngineConfig selects and configures the rule engine.
type EngineConfig struct {
	Kind        string   `json:"kind"`
	Path        string   `json:"path"`
	Args        []string `json:"args"`
	MaxHandSize int      `json:"max_hand_size"`
}

// AnalysisConfig holds the analysis defaults.
type AnalysisConfig struct {
	DepthPlayer1 int `json:"depth_player1"`
	DepthPlayer2 int `json:"depth_player2"`
	DebounceMs   int `json:"debounce_ms"`
}

type Config struct {
	Theme    Theme          `json:"theme"`
	Engine   EngineConfig   `json:"engine"`
	Analysis AnalysisConfig `json:"analysis"`
	LogLevel string         `json:"log_level"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err = readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.Player1, c.Theme.Symbols.Player2, c.Theme.Symbols.Empty, c.Theme.Symbols.Slot} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	switch c.Engine.Kind {
	case KindNative:
	case KindProcess:
		if c.Engine.Path == "" {
			return &InvalidConfig{"engine kind \"process\" needs a path"}
		}
	default:
		return &InvalidConfig{fmt.Sprintf("unknown engine kind %q", c.Engine.Kind)}
	}
	if c.Engine.MaxHandSize < 1 || c.Engine.MaxHandSize > types.BoardSize {
		return &InvalidConfig{fmt.Sprintf("max_hand_size must be between 1 and %d", types.BoardSize)}
	}
	for _, d := range []int{c.Analysis.DepthPlayer1, c.Analysis.DepthPlayer2} {
		if d < types.MinDepth || d > types.MaxDepth {
			return &InvalidConfig{fmt.Sprintf("analysis depth must be between %d and %d", types.MinDepth, types.MaxDepth)}
		}
	}
	if c.Analysis.DebounceMs < 0 {
		return &InvalidConfig{"debounce_ms must not be negative"}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	return nil
}

// EngineSettings converts the engine section for the engine loaders.
func (c *Config) EngineSettings() engine.Config {
	return engine.Config{
		Kind:        c.Engine.Kind,
		Path:        c.Engine.Path,
		Args:        append([]string(nil), c.Engine.Args...),
		MaxHandSize: c.Engine.MaxHandSize,
	}
}

// Debounce returns the analysis debounce delay.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Analysis.DebounceMs) * time.Millisecond
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	if err = json.Unmarshal(configReader, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
