// popalot is Pop-a-Lot, a click-to-pop arcade game for the terminal.
//
// Usage:
//
//	popalot list              - List available modes
//	popalot play <mode>       - Play a mode
//	popalot menu              - Start menu to pick modes interactively
//	popalot serve             - Start SSH server for remote play
//	popalot history [mode]    - Print the run history
//	popalot card [run-id]     - Write a PNG scorecard for a run
//	popalot api               - Serve history and scorecards over HTTP
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.popalot/popalot.db)
//	--config <path>       - Use a custom pop.yaml
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pop-arcade/internal/audio"
	"github.com/vovakirdan/pop-arcade/internal/commentary"
	"github.com/vovakirdan/pop-arcade/internal/config"
	"github.com/vovakirdan/pop-arcade/internal/core"
	"github.com/vovakirdan/pop-arcade/internal/games/pop"
	"github.com/vovakirdan/pop-arcade/internal/history"
	"github.com/vovakirdan/pop-arcade/internal/platform/tui"
	"github.com/vovakirdan/pop-arcade/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "popalot",
	Short: "Pop-a-Lot - Pop targets with your mouse in the terminal",
	Long: `Pop-a-Lot is a timed clicking game for the terminal. Pop targets to
build a streak multiplier before the 30 second countdown runs out.

Available commands:
  list     - Show all available modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  history  - Print the run history
  card     - Write a PNG scorecard
  api      - Serve history over HTTP

Examples:
  popalot list
  popalot play arcade
  popalot menu --difficulty hard
  popalot serve --ssh :2222
  popalot card --mode pro --best`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.popalot/popalot.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom pop.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(apiCmd)
}

// newLogger builds the command logger. Interactive commands write to
// ~/.popalot/popalot.log since the alt screen owns the terminal.
func newLogger(toFile bool) (*log.Logger, func()) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	if toFile {
		w = io.Discard
		path := filepath.Join(tui.DataDir(), "popalot.log")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err == nil {
				w = f
				closeFn = func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "popalot",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger, closeFn
}

// setupConfig loads pop.yaml and points new runs at it. With watch set the
// file is reloaded on change until ctx ends.
func setupConfig(ctx context.Context, logger *log.Logger, watch bool) error {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
	}
	if flagDifficulty != "" {
		pop.SetDifficultyPreset(preset)
	}

	cfg, err := config.LoadPop(flagConfig)
	if err != nil {
		return err
	}
	live := config.NewLive(cfg)
	pop.SetConfigSource(live.Get)

	if !watch {
		return nil
	}
	path := flagConfig
	if path == "" {
		path = config.UserConfigPath()
	}
	if path == "" {
		return nil
	}
	go func() {
		if err := live.Watch(ctx, path, logger); err != nil {
			logger.Debug("config hot reload disabled", "path", path, "error", err)
		}
	}()
	return nil
}

// openServices opens the database and builds the shared services. Without
// a database the history lives in memory.
func openServices(logger *log.Logger, withAudio bool) (tui.Services, func()) {
	svc := tui.Services{Logger: logger}

	var kv history.KV
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, history will not be saved", "error", err)
	} else {
		svc.Store = store
		kv = store
	}
	svc.History = history.New(kv, logger)
	svc.Commentary = commentary.New(flagSeed, commentary.DefaultDelay)

	if withAudio {
		player := audio.NewPlayer(logger)
		if err := player.Initialize(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			svc.Audio = player
		}
	}

	return svc, func() {
		if svc.Audio != nil {
			svc.Audio.Cleanup()
		}
		if svc.Store != nil {
			svc.Store.Close()
		}
	}
}

// runtimeConfig sizes a run to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
