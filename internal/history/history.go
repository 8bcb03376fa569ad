// Package history keeps the list of recent runs. The list is stored as one
// JSON document under a fixed key, newest first and capped, so it can live in
// any key/value backend.
package history

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Key is the storage key holding the run list.
const Key = "pop-a-lot-run-history-v1"

// MaxRuns is the number of runs kept.
const MaxRuns = 30

// ShelfSize is the number of runs shown per mode in the latest and best lists.
const ShelfSize = 3

// Record is one finished run.
type Record struct {
	ID            string  `json:"id"`
	Timestamp     int64   `json:"timestamp"` // Unix milliseconds
	Score         int     `json:"score"`
	Mode          string  `json:"mode"`
	MaxMultiplier float64 `json:"maxMultiplier"`
	RankTitle     string  `json:"rankTitle,omitempty"`
}

// Time returns the record timestamp.
func (r Record) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// KV is the backend the list is persisted in.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// ScoreRecorder is implemented by backends that also keep lifetime scores,
// which outlive the capped list.
type ScoreRecorder interface {
	SaveScore(modeID string, score int) (int64, error)
}

// Store is the run history. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	kv     KV
	logger *log.Logger
	now    func() time.Time
	runs   []Record
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for new records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store over kv and loads the saved list. A nil kv keeps the
// history in memory only.
func New(kv KV, logger *log.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{kv: kv, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.Reload()
	return s
}

// Reload replaces the in-memory list with the persisted one.
func (s *Store) Reload() {
	var runs []Record
	if s.kv != nil {
		raw, err := s.kv.Get(Key)
		if err == nil {
			runs = Decode(raw)
		} else {
			s.logger.Debug("no saved run history", "error", err)
		}
	}

	s.mu.Lock()
	s.runs = runs
	s.mu.Unlock()
}

// Runs returns every kept run, newest first.
func (s *Store) Runs() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.runs)
}

// Updater is implemented by backends that can replace a value atomically
// against its current contents. Stores sharing such a backend never drop
// each other's runs.
type Updater interface {
	Update(key string, fn func(current string) (string, error)) error
}

// Add prepends a run to the persisted list and saves it. The list is read
// back from the backend first, so runs written by other stores over the
// same backend are kept. A missing ID or timestamp is filled in.
// Persistence failures are logged and otherwise ignored; the run stays in
// memory.
func (s *Store) Add(r Record) Record {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp == 0 {
		r.Timestamp = s.now().UnixMilli()
	}

	// Held through the write so saves land in the same order as the list.
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv == nil {
		s.runs = prepend(s.runs, r)
		return r
	}

	var runs []Record
	err := s.update(func(current []Record) ([]Record, error) {
		runs = prepend(current, r)
		return runs, nil
	})
	if runs == nil {
		runs = prepend(s.runs, r)
	}
	s.runs = runs
	if err != nil {
		s.logger.Warn("cannot save run history", "error", err)
	}

	if rec, ok := s.kv.(ScoreRecorder); ok {
		if _, err := rec.SaveScore(r.Mode, r.Score); err != nil {
			s.logger.Warn("cannot save lifetime score", "mode", r.Mode, "error", err)
		}
	}
	s.logger.Debug("run saved", "id", r.ID, "mode", r.Mode, "score", r.Score)
	return r
}

// update rewrites the persisted list with fn. Backends without Updater get
// a plain read then write; a failed read falls back to the list in memory.
func (s *Store) update(fn func(current []Record) ([]Record, error)) error {
	apply := func(raw string) (string, error) {
		runs, err := fn(Decode(raw))
		if err != nil {
			return "", err
		}
		return Encode(runs)
	}

	if u, ok := s.kv.(Updater); ok {
		return u.Update(Key, apply)
	}

	raw, err := s.kv.Get(Key)
	if err != nil {
		s.logger.Debug("no saved run history", "error", err)
		if raw, err = Encode(s.runs); err != nil {
			return err
		}
	}
	data, err := apply(raw)
	if err != nil {
		return err
	}
	if err := s.kv.Set(Key, data); err != nil {
		return fmt.Errorf("history: cannot save: %w", err)
	}
	return nil
}

func prepend(runs []Record, r Record) []Record {
	out := append([]Record{r}, runs...)
	if len(out) > MaxRuns {
		out = out[:MaxRuns]
	}
	return out
}

// Latest returns up to ShelfSize most recent runs of mode.
func (s *Store) Latest(mode string) []Record {
	return LatestForMode(s.Runs(), mode, ShelfSize)
}

// Best returns up to ShelfSize highest scoring runs of mode.
func (s *Store) Best(mode string) []Record {
	return BestForMode(s.Runs(), mode, ShelfSize)
}

// LatestForMode filters runs by mode, keeping their order, and returns at
// most n.
func LatestForMode(runs []Record, mode string, n int) []Record {
	var out []Record
	for _, r := range runs {
		if r.Mode != mode {
			continue
		}
		out = append(out, r)
		if len(out) == n {
			break
		}
	}
	return out
}

// BestForMode returns at most n runs of mode by score, newest first on ties.
func BestForMode(runs []Record, mode string, n int) []Record {
	var out []Record
	for _, r := range runs {
		if r.Mode == mode {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// rawRecord mirrors Record with optional fields so missing or mistyped
// entries can be told apart from zero values.
type rawRecord struct {
	ID            *string  `json:"id"`
	Timestamp     *float64 `json:"timestamp"`
	Score         *float64 `json:"score"`
	Mode          *string  `json:"mode"`
	MaxMultiplier *float64 `json:"maxMultiplier"`
	RankTitle     *string  `json:"rankTitle"`
}

var errMalformed = errors.New("history: malformed record")

func (r rawRecord) record() (Record, error) {
	if r.ID == nil || r.Timestamp == nil || r.Score == nil || r.Mode == nil || r.MaxMultiplier == nil {
		return Record{}, errMalformed
	}
	if *r.Mode == "" {
		return Record{}, errMalformed
	}
	rec := Record{
		ID:            *r.ID,
		Timestamp:     int64(*r.Timestamp),
		Score:         int(*r.Score),
		Mode:          *r.Mode,
		MaxMultiplier: *r.MaxMultiplier,
	}
	if r.RankTitle != nil {
		rec.RankTitle = *r.RankTitle
	}
	return rec, nil
}

// Decode parses a stored list. Anything that is not a JSON array yields an
// empty list; malformed entries are dropped. The result is sorted newest
// first and capped at MaxRuns.
func Decode(raw string) []Record {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}

	runs := make([]Record, 0, len(items))
	for _, item := range items {
		var rr rawRecord
		if err := json.Unmarshal(item, &rr); err != nil {
			continue
		}
		rec, err := rr.record()
		if err != nil {
			continue
		}
		runs = append(runs, rec)
	}

	slices.SortStableFunc(runs, func(a, b Record) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
	if len(runs) > MaxRuns {
		runs = runs[:MaxRuns]
	}
	return runs
}

// Encode serializes at most MaxRuns records.
func Encode(runs []Record) (string, error) {
	if len(runs) > MaxRuns {
		runs = runs[:MaxRuns]
	}
	if runs == nil {
		runs = []Record{}
	}
	data, err := json.Marshal(runs)
	if err != nil {
		return "", fmt.Errorf("history: cannot encode: %w", err)
	}
	return string(data), nil
}

// FormatWhen renders a run time as "dd.mm hh:mm", adding the two-digit year
// for runs outside the current year.
func FormatWhen(t, now time.Time) string {
	if t.Year() == now.Year() {
		return t.Format("02.01 15:04")
	}
	return t.Format("02.01.06 15:04")
}
