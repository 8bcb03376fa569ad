package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pop-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Pop-a-Lot with a mode picker menu",
	Long: `Start Pop-a-Lot in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
Esc on a mode's start screen returns to the menu.
The config file is reloaded when it changes; the next run picks it up.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Run history
  Q            - Quit

Examples:
  popalot menu
  popalot menu --fps 30
  popalot menu --db ./popalot.db`,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	logger, closeLog := newLogger(true)
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := setupConfig(ctx, logger, true); err != nil {
		return err
	}

	svc, cleanup := openServices(logger, true)
	defer cleanup()

	return tui.RunMenuLoop(svc, runtimeConfig())
}
