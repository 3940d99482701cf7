// flickboard is a terminal board for the 5×5 Put/Flick game, with live analysis from a
// rule engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"flickboard/config"
	"flickboard/engine"
	"flickboard/engine/native"
	"flickboard/engine/textproto"
	"flickboard/session"
	"flickboard/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagEngine     = flag.String("engine", "", "Engine kind (native or process)")
	flagEnginePath = flag.String("engine-path", "", "Path to the engine binary for -engine process")
	flagDepth1     = flag.Int("depth1", 0, "Analysis depth for player 1 (1-7)")
	flagDepth2     = flag.Int("depth2", 0, "Analysis depth for player 2 (1-7)")
	flagDebounce   = flag.Duration("debounce", -1, "Delay before analysis runs after a change")
	flagLogLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

const logFile = "flickboard/debug.log"

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("flickboard %s\n", Version)
		return
	}

	cfg, err := config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, closeLog, err := openLog(cfg.Level())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %s\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("application exited")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	app := tview.NewApplication()

	var ctrl *session.Controller
	var layout *ui.Layout
	ctrl = session.New(session.Options{
		Loader:   newLoader(cfg.EngineSettings(), log),
		Debounce: cfg.Debounce(),
		Depths: session.Depths{
			Player1: cfg.Analysis.DepthPlayer1,
			Player2: cfg.Analysis.DepthPlayer2,
		},
		MaxHand: cfg.Engine.MaxHandSize,
		Logger:  log,
		OnUpdate: func(session.Snapshot) {
			// Called with the controller locked; hop off this goroutine and draw the
			// latest snapshot on the tview goroutine.
			go func() {
				app.QueueUpdateDraw(func() {
					layout.Update(ctrl.Snapshot())
				})
			}()
		},
	})
	layout = ui.NewLayout(cfg, ctrl, app.Stop)

	app.SetInputCapture(layout.HandleKey)
	app.SetMouseCapture(func(event *tcell.EventMouse, action tview.MouseAction) (*tcell.EventMouse, tview.MouseAction) {
		if action == tview.MouseMove {
			layout.TrackPointer(event.Position())
		}
		return event, action
	})

	root := tview.NewFlex().SetDirection(tview.FlexRow)
	root.AddItem(layout.Pages, 0, 1, true)
	root.SetBorder(true).SetTitle(" ⬡ flickboard ")

	log.Info().Str("version", Version).Str("engine", cfg.Engine.Kind).Msg("starting")
	ctrl.Start()
	defer ctrl.Stop()

	return app.SetRoot(root, true).EnableMouse(true).Run()
}

// newLoader picks the engine implementation named by cfg.Kind.
func newLoader(cfg engine.Config, log zerolog.Logger) engine.Loader {
	if cfg.Kind == config.KindProcess {
		return textproto.NewLoader(cfg, log)
	}
	return native.NewLoader(cfg.MaxHandSize)
}

// applyFlags overrides the configuration with the flags that were set.
func applyFlags(cfg *config.Config) {
	if *flagEngine != "" {
		cfg.Engine.Kind = *flagEngine
	}
	if *flagEnginePath != "" {
		cfg.Engine.Path = *flagEnginePath
	}
	if *flagDepth1 != 0 {
		cfg.Analysis.DepthPlayer1 = *flagDepth1
	}
	if *flagDepth2 != 0 {
		cfg.Analysis.DepthPlayer2 = *flagDepth2
	}
	if *flagDebounce >= 0 {
		cfg.Analysis.DebounceMs = int(*flagDebounce / time.Millisecond)
	}
	if *flagLogLevel != "" {
		cfg.LogLevel = *flagLogLevel
	}
}

// openLog writes structured logs to the XDG state directory, since the terminal belongs
// to the board.
func openLog(level zerolog.Level) (zerolog.Logger, func(), error) {
	path, err := xdg.StateFile(logFile)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, func() { f.Close() }, nil
}
