package config

import (
	"flickboard/types"
)

const (
	KindNative  = "native"
	KindProcess = "process"
)

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawPieceBackground:    false,
		DrawCursorBackground:   true,
		DrawSelectedBackground: true,
		ShowFlickPad:           true,
		Colors: ConfigColors{
			BoardColor:      180,
			BoardColorAlt:   179,
			Player1Color:    160,
			Player2Color:    27,
			HintColor:       244,
			CursorColorFG:   2,
			CursorColorBG:   4,
			SelectedColorBG: 2,
			PadColorBG:      137,
		},
		Symbols: ConfigSymbols{
			Player1: '●',
			Player2: '●',
			Empty:   '·',
			Slot:    '○',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Engine: EngineConfig{
			Kind:        KindNative,
			Path:        "flickengine",
			MaxHandSize: types.DefaultMaxHandSize,
		},
		Analysis: AnalysisConfig{
			DepthPlayer1: 6,
			DepthPlayer2: 6,
			DebounceMs:   10,
		},
		LogLevel: "info",
	}
}
