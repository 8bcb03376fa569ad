package main

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pop-arcade/internal/history"
	"github.com/vovakirdan/pop-arcade/internal/registry"
)

var flagHistoryBest bool

var historyCmd = &cobra.Command{
	Use:   "history [mode]",
	Short: "Print the run history",
	Long: fmt.Sprintf(`Print the kept runs (at most %d), newest first.

With a mode, only runs of that mode are listed. Lifetime totals come from
the scores table, which keeps every run.

Examples:
  popalot history
  popalot history pro --best`, history.MaxRuns),
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryBest, "best", false, "Sort by score instead of time")
}

func runHistory(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
		if !registry.Exists(mode) {
			return fmt.Errorf("unknown mode %q, run 'popalot list' to see available modes", mode)
		}
	}

	logger, closeLog := newLogger(false)
	defer closeLog()

	svc, cleanup := openServices(logger, false)
	defer cleanup()

	runs := svc.History.Runs()
	if mode != "" {
		runs = slices.DeleteFunc(runs, func(r history.Record) bool { return r.Mode != mode })
	}
	if flagHistoryBest {
		slices.SortStableFunc(runs, func(a, b history.Record) int { return b.Score - a.Score })
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'popalot play arcade' to start a history!")
		return nil
	}

	now := time.Now()
	fmt.Printf("  %-4s  %-12s  %-8s  %-8s  %-6s  %s\n", "#", "When", "Mode", "Score", "Peak", "Rank")
	fmt.Printf("  %-4s  %-12s  %-8s  %-8s  %-6s  %s\n", "-", "----", "----", "-----", "----", "----")
	for i, r := range runs {
		rank := r.RankTitle
		if rank == "" {
			rank = "-"
		}
		fmt.Printf("  %-4d  %-12s  %-8s  %-8d  x%-5.1f  %s\n",
			i+1, history.FormatWhen(r.Time(), now), r.Mode, r.Score, r.MaxMultiplier, rank)
	}

	if svc.Store == nil {
		return nil
	}
	stats, err := svc.Store.GetAllModeStats()
	if err != nil {
		logger.Warn("cannot read lifetime stats", "error", err)
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		if mode == "" || id == mode {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	fmt.Println()
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("%s: %d runs, best %d, average %.0f\n", id, s.RunsCount, s.HighScore, s.AvgScore)
	}
	return nil
}
