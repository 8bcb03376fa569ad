package main

import (
	"errors"
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pop-arcade/internal/card"
	"github.com/vovakirdan/pop-arcade/internal/history"
)

var (
	flagCardMode  string
	flagCardBest  bool
	flagCardOut   string
	flagCardThumb int
)

var cardCmd = &cobra.Command{
	Use:   "card [run-id]",
	Short: "Write a PNG scorecard for a run",
	Long: `Render a scorecard for a saved run as PNG.

Without a run id the latest run is used; --best picks the highest score.
--mode restricts the pick to one mode.

Examples:
  popalot card
  popalot card --mode pro --best
  popalot card 3f0c... --out run.png --thumb 320`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCard,
}

func init() {
	cardCmd.Flags().StringVar(&flagCardMode, "mode", "", "Only consider runs of this mode")
	cardCmd.Flags().BoolVar(&flagCardBest, "best", false, "Pick the best run instead of the latest")
	cardCmd.Flags().StringVarP(&flagCardOut, "out", "o", "", "Output path (default <mode>_<time>.png)")
	cardCmd.Flags().IntVar(&flagCardThumb, "thumb", 0, "Scale the card down to fit this many pixels")
}

var errNoRuns = errors.New("no runs recorded yet")

// pickRun selects the run a card is drawn for. runs are newest first.
func pickRun(runs []history.Record, id, mode string, best bool) (history.Record, error) {
	if id != "" {
		for _, r := range runs {
			if r.ID == id {
				return r, nil
			}
		}
		return history.Record{}, fmt.Errorf("no run with id %q", id)
	}

	var picked *history.Record
	for i := range runs {
		r := &runs[i]
		if mode != "" && r.Mode != mode {
			continue
		}
		if picked == nil {
			picked = r
			if !best {
				break
			}
			continue
		}
		if r.Score > picked.Score {
			picked = r
		}
	}
	if picked == nil {
		return history.Record{}, errNoRuns
	}
	return *picked, nil
}

func runCard(_ *cobra.Command, args []string) error {
	logger, closeLog := newLogger(false)
	defer closeLog()

	svc, cleanup := openServices(logger, false)
	defer cleanup()

	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	run, err := pickRun(svc.History.Runs(), id, flagCardMode, flagCardBest)
	if err != nil {
		return err
	}

	var img image.Image = card.Scorecard(card.FromRecord(run))
	if flagCardThumb > 0 {
		img = card.Thumbnail(img, flagCardThumb)
	}

	out := flagCardOut
	if out == "" {
		out = fmt.Sprintf("%s_%s.png", run.Mode, run.Time().Format("20060102_150405"))
	}
	if err := card.Save(out, img); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%s, %d points)\n", out, run.Mode, run.Score)
	return nil
}
