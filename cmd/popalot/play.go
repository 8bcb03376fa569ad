package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pop-arcade/internal/platform/tui"
	"github.com/vovakirdan/pop-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Mouse click  - Pop a target
  Enter/Space  - Start a new run
  Esc          - Abort the run / leave
  P            - Pause
  R            - Restart (after game over)
  M            - Mute sound
  Ctrl+S       - Save a PNG card
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Small stacks, progresses slowly
  normal - Config as written
  hard   - Starts halfway up the stack ramp
  fixed  - No progression, stays at config's initial level

Examples:
  popalot play arcade
  popalot play pro --difficulty hard
  popalot play arcade --config ./my-pop.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	modeID := args[0]

	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q, run 'popalot list' to see available modes", modeID)
	}

	logger, closeLog := newLogger(true)
	defer closeLog()

	if err := setupConfig(context.Background(), logger, false); err != nil {
		return err
	}

	game, err := registry.Create(modeID)
	if err != nil {
		return err
	}

	svc, cleanup := openServices(logger, true)
	defer cleanup()

	logger.Info("run started", "mode", modeID)
	return tui.Run(game, svc, runtimeConfig())
}
