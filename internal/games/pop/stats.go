package pop

import (
	"math"
	"slices"
)

// Points returns the score for a hit at base multiplier.
func Points(basePoints int, base float64, stack int) int {
	return int(math.Floor(float64(basePoints) * base * float64(stack)))
}

// Summary is the frozen statistics of a run. Response times are in
// milliseconds; all zero when no interval was recorded.
type Summary struct {
	BestResponseMs   float64   `json:"bestResponseTime"`
	WorstResponseMs  float64   `json:"worstResponseTime"`
	MedianResponseMs float64   `json:"medianResponseTime"`
	Intervals        []float64 `json:"clickIntervals"`
	MaxMultiplier    float64   `json:"maxMultiplier"`
}

// Stats aggregates click intervals and the peak multiplier.
type Stats struct {
	intervals []float64
	peak      float64
}

// NewStats creates empty stats with a peak of 1.0.
func NewStats() *Stats {
	return &Stats{peak: 1.0}
}

// Reset clears all samples.
func (s *Stats) Reset() {
	s.intervals = nil
	s.peak = 1.0
}

// RecordInterval adds one click interval in milliseconds.
func (s *Stats) RecordInterval(ms float64) {
	s.intervals = append(s.intervals, ms)
}

// ObserveMultiplier updates the running peak.
func (s *Stats) ObserveMultiplier(v float64) {
	s.peak = math.Max(s.peak, v)
}

// Peak returns the highest multiplier seen.
func (s *Stats) Peak() float64 { return s.peak }

// Count returns the number of recorded intervals.
func (s *Stats) Count() int { return len(s.intervals) }

// Summary computes best, worst and median response times.
func (s *Stats) Summary() Summary {
	sum := Summary{
		Intervals:     slices.Clone(s.intervals),
		MaxMultiplier: s.peak,
	}
	if len(s.intervals) == 0 {
		return sum
	}

	sorted := slices.Clone(s.intervals)
	slices.Sort(sorted)

	n := len(sorted)
	sum.BestResponseMs = sorted[0]
	sum.WorstResponseMs = sorted[n-1]
	if n%2 == 0 {
		sum.MedianResponseMs = (sorted[n/2-1] + sorted[n/2]) / 2
	} else {
		sum.MedianResponseMs = sorted[n/2]
	}
	return sum
}
