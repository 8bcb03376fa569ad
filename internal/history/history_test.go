package history

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pop-arcade/internal/storage"
)

type memKV struct {
	mu      sync.Mutex
	data    map[string]string
	failSet bool
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func (m *memKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestAddKeepsNewestThirty(t *testing.T) {
	kv := newMemKV()
	s := New(kv, quietLogger())

	for i := 1; i <= 31; i++ {
		s.Add(Record{ID: fmt.Sprintf("run-%d", i), Timestamp: int64(i * 1000), Score: i, Mode: "arcade", MaxMultiplier: 1})
	}

	runs := s.Runs()
	if len(runs) != MaxRuns {
		t.Fatalf("kept %d runs, want %d", len(runs), MaxRuns)
	}
	if runs[0].ID != "run-31" || runs[len(runs)-1].ID != "run-2" {
		t.Errorf("expected run-31..run-2, got %s..%s", runs[0].ID, runs[len(runs)-1].ID)
	}

	// The persisted list matches.
	reloaded := New(kv, quietLogger()).Runs()
	if len(reloaded) != MaxRuns || reloaded[0].ID != "run-31" {
		t.Errorf("reloaded %d runs, first %+v", len(reloaded), reloaded[0])
	}
}

func TestAddFillsIDAndTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(nil, quietLogger(), WithClock(func() time.Time { return now }))

	r := s.Add(Record{Score: 10, Mode: "pro", MaxMultiplier: 1.3})
	if r.ID == "" {
		t.Error("ID should be generated")
	}
	if r.Timestamp != now.UnixMilli() || !r.Time().Equal(now) {
		t.Errorf("timestamp = %d", r.Timestamp)
	}
}

func TestAddIgnoresWriteFailure(t *testing.T) {
	kv := newMemKV()
	kv.failSet = true
	s := New(kv, quietLogger())

	s.Add(Record{ID: "a", Timestamp: 1, Score: 5, Mode: "arcade", MaxMultiplier: 1})
	if len(s.Runs()) != 1 {
		t.Error("run should stay in memory when saving fails")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantIDs []string
	}{
		{"empty string", "", nil},
		{"not json", "{{{", nil},
		{"object", `{"id":"a"}`, nil},
		{"empty list", `[]`, nil},
		{
			"sorted newest first",
			`[{"id":"old","timestamp":1,"score":1,"mode":"arcade","maxMultiplier":1},
			  {"id":"new","timestamp":5,"score":2,"mode":"pro","maxMultiplier":2.5}]`,
			[]string{"new", "old"},
		},
		{
			"malformed entries dropped",
			`[{"id":"ok","timestamp":3,"score":1,"mode":"arcade","maxMultiplier":1},
			  {"id":"no-score","timestamp":4,"mode":"arcade","maxMultiplier":1},
			  {"id":7,"timestamp":5,"score":1,"mode":"arcade","maxMultiplier":1},
			  {"id":"bad-mode","timestamp":6,"score":1,"mode":"","maxMultiplier":1},
			  "junk", null, 12]`,
			[]string{"ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := Decode(tt.raw)
			if len(runs) != len(tt.wantIDs) {
				t.Fatalf("got %d runs, want %d: %+v", len(runs), len(tt.wantIDs), runs)
			}
			for i, id := range tt.wantIDs {
				if runs[i].ID != id {
					t.Errorf("runs[%d] = %s, want %s", i, runs[i].ID, id)
				}
			}
		})
	}
}

func TestDecodeCapsAndKeepsRankTitle(t *testing.T) {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < 40; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"id":"r%d","timestamp":%d,"score":%d,"mode":"arcade","maxMultiplier":1.5,"rankTitle":"Meh"}`, i, i, i)
	}
	b.WriteString("]")

	runs := Decode(b.String())
	if len(runs) != MaxRuns {
		t.Fatalf("decoded %d runs, want %d", len(runs), MaxRuns)
	}
	if runs[0].ID != "r39" || runs[0].RankTitle != "Meh" || runs[0].MaxMultiplier != 1.5 {
		t.Errorf("first run = %+v", runs[0])
	}
}

func TestShelves(t *testing.T) {
	runs := []Record{
		{ID: "a", Timestamp: 6, Score: 100, Mode: "arcade"},
		{ID: "b", Timestamp: 5, Score: 900, Mode: "pro"},
		{ID: "c", Timestamp: 4, Score: 300, Mode: "arcade"},
		{ID: "d", Timestamp: 3, Score: 300, Mode: "arcade"},
		{ID: "e", Timestamp: 2, Score: 50, Mode: "arcade"},
		{ID: "f", Timestamp: 1, Score: 700, Mode: "arcade"},
	}

	latest := LatestForMode(runs, "arcade", 3)
	if ids := recordIDs(latest); ids != "a,c,d" {
		t.Errorf("latest = %s", ids)
	}
	best := BestForMode(runs, "arcade", 3)
	if ids := recordIDs(best); ids != "f,c,d" {
		t.Errorf("best = %s (ties should favor the newer run)", ids)
	}
	if got := BestForMode(runs, "zen", 3); len(got) != 0 {
		t.Errorf("unknown mode should be empty, got %v", got)
	}
}

func recordIDs(runs []Record) string {
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	return strings.Join(ids, ",")
}

func TestSQLiteRoundTrip(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer db.Close()

	s := New(db, quietLogger())
	want := Record{ID: "x", Timestamp: 1700000000000, Score: 12345, Mode: "pro", MaxMultiplier: 7.3, RankTitle: "Cooking"}
	s.Add(want)

	got := New(db, quietLogger()).Runs()
	if len(got) != 1 || got[0] != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}

	// Lifetime scores are recorded alongside.
	high, err := db.HighScore("pro")
	if err != nil || high != 12345 {
		t.Errorf("HighScore = %d, %v", high, err)
	}

	// A corrupted document reads as empty.
	if err := db.Set(Key, "not json"); err != nil {
		t.Fatal(err)
	}
	if runs := New(db, quietLogger()).Runs(); len(runs) != 0 {
		t.Errorf("corrupted history should be empty, got %v", runs)
	}
}

func TestConcurrentAdd(t *testing.T) {
	s := New(newMemKV(), quietLogger())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add(Record{Score: i, Mode: "arcade", MaxMultiplier: 1})
		}(i)
	}
	wg.Wait()
	if n := len(s.Runs()); n != MaxRuns {
		t.Errorf("kept %d runs, want %d", n, MaxRuns)
	}
}

func TestStoresSharingBackendKeepEachOthersRuns(t *testing.T) {
	tests := []struct {
		name    string
		backend func(t *testing.T) KV
	}{
		{"key value", func(t *testing.T) KV { return newMemKV() }},
		{"sqlite", func(t *testing.T) KV {
			db, err := storage.Open(filepath.Join(t.TempDir(), "shared.db"))
			if err != nil {
				t.Fatalf("storage.Open() failed: %v", err)
			}
			t.Cleanup(func() { db.Close() })
			return db
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := tt.backend(t)
			tui := New(kv, quietLogger())
			ssh := New(kv, quietLogger())

			tui.Add(Record{ID: "r1", Timestamp: 1000, Score: 10, Mode: "arcade", MaxMultiplier: 1})
			ssh.Add(Record{ID: "r2", Timestamp: 2000, Score: 20, Mode: "pro", MaxMultiplier: 1})
			tui.Add(Record{ID: "r3", Timestamp: 3000, Score: 30, Mode: "arcade", MaxMultiplier: 1})

			var ids []string
			for _, r := range New(kv, quietLogger()).Runs() {
				ids = append(ids, r.ID)
			}
			if got := strings.Join(ids, ","); got != "r3,r2,r1" {
				t.Errorf("persisted runs = %s, want r3,r2,r1", got)
			}
			if n := len(tui.Runs()); n != 3 {
				t.Errorf("writer sees %d runs, want 3", n)
			}
		})
	}
}

func TestConcurrentAddAcrossStores(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "shared.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer db.Close()

	stores := []*Store{New(db, quietLogger()), New(db, quietLogger())}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stores[i%2].Add(Record{Timestamp: int64(1000 + i), Score: i, Mode: "arcade", MaxMultiplier: 1})
		}(i)
	}
	wg.Wait()

	if n := len(New(db, quietLogger()).Runs()); n != 20 {
		t.Errorf("persisted %d runs, want 20", n)
	}
}

func TestFormatWhen(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	if got := FormatWhen(time.Date(2026, 3, 4, 7, 5, 0, 0, time.UTC), now); got != "04.03 07:05" {
		t.Errorf("same year = %q", got)
	}
	if got := FormatWhen(time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC), now); got != "31.12.25 23:59" {
		t.Errorf("other year = %q", got)
	}
}
