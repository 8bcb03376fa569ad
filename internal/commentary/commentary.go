// Package commentary picks a rank title and a one-line remark for a finished
// run. Remarks are canned and tiered by score; some quote the run's stats.
package commentary

import (
	"context"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/pop-arcade/internal/games/pop"
)

// DefaultDelay is the pause before a verdict is delivered.
const DefaultDelay = 600 * time.Millisecond

// Commentary is the verdict for a run.
type Commentary struct {
	RankTitle string `json:"rankTitle"`
	Comment   string `json:"comment"`
}

type phrase struct {
	title string
	text  string
}

// Generator produces commentary. It is safe for concurrent use.
type Generator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	delay time.Duration
}

// New creates a generator. A zero seed uses the current time; a negative
// delay means DefaultDelay.
func New(seed int64, delay time.Duration) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if delay < 0 {
		delay = DefaultDelay
	}
	return &Generator{rng: rand.New(rand.NewSource(seed)), delay: delay}
}

// Generate waits for the configured delay, then picks a phrase for score.
// It returns ctx.Err() if ctx ends first. The phrase tables are shared by
// all modes.
func (g *Generator) Generate(ctx context.Context, score int, stats pop.Summary, mode string) (Commentary, error) {
	if g.delay > 0 {
		t := time.NewTimer(g.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Commentary{}, ctx.Err()
		case <-t.C:
		}
	}
	return g.Pick(score, stats), nil
}

// Pick returns commentary immediately.
func (g *Generator) Pick(score int, stats pop.Summary) Commentary {
	table := tierFor(score)

	g.mu.Lock()
	p := table[g.rng.Intn(len(table))]
	g.mu.Unlock()

	if score == 0 {
		return Commentary{RankTitle: p.title, Comment: p.text}
	}
	return Commentary{RankTitle: p.title, Comment: Format(p.text, stats)}
}

// tierFor returns the phrase table for a score.
func tierFor(score int) []phrase {
	switch {
	case score == 0:
		return zeroPhrases
	case score < 5000:
		return tier1Phrases
	case score < 10000:
		return tier2Phrases
	case score < 15000:
		return tier3Phrases
	default:
		return tier4Phrases
	}
}

// Format fills the stat placeholders in text. Response times are whole
// milliseconds and the multiplier has one decimal.
func Format(text string, stats pop.Summary) string {
	r := strings.NewReplacer(
		"{bestResponseTime}", ms(stats.BestResponseMs),
		"{maxMultiplier}", strconv.FormatFloat(stats.MaxMultiplier, 'f', 1, 64),
		"{medianResponseTime}", ms(stats.MedianResponseMs),
		"{worstResponseTime}", ms(stats.WorstResponseMs),
	)
	return r.Replace(text)
}

func ms(v float64) string {
	return strconv.Itoa(int(math.Round(v)))
}
