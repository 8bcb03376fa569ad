package pop

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/pop-arcade/internal/config"
	"github.com/vovakirdan/pop-arcade/internal/core"
)

// recorder captures notifier events in order.
type recorder struct {
	events []string
}

func (r *recorder) OnPop(i int)       { r.events = append(r.events, fmt.Sprintf("pop:%d", i)) }
func (r *recorder) OnStreakBreak()    { r.events = append(r.events, "break") }
func (r *recorder) OnMilestone(v int) { r.events = append(r.events, fmt.Sprintf("milestone:%d", v)) }
func (r *recorder) OnSpeedBonus()     { r.events = append(r.events, "speed") }
func (r *recorder) OnCountdownTick(left int) {
	r.events = append(r.events, fmt.Sprintf("tick:%d", left))
}
func (r *recorder) OnGameOver() { r.events = append(r.events, "game_over") }

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

func (r *recorder) reset() { r.events = nil }

func testMode(t *testing.T, cfg config.PopConfig, id string) Mode {
	t.Helper()
	mc, ok := cfg.Mode(id)
	if !ok {
		t.Fatalf("mode %s missing", id)
	}
	m, err := ModeFromConfig(mc)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func newTestSession(t *testing.T, modeID string) (*Session, *recorder) {
	t.Helper()
	cfg := config.DefaultPopConfig()
	rec := &recorder{}
	n := 0
	s := NewSession(cfg, testMode(t, cfg, modeID), Options{
		Notifier: rec,
		Seed:     1,
		Now:      func() time.Time { return time.Unix(0, 0) },
		NewID: func() string {
			n++
			return fmt.Sprintf("t%d", n)
		},
	})
	return s, rec
}

// placeTargets replaces the board with hand-placed single targets.
func placeTargets(s *Session, targets ...Target) {
	for i := range targets {
		if targets[i].StackCount == 0 {
			targets[i].StackCount = 1
		}
		if targets[i].X == 0 {
			targets[i].X = 10 + float64(i)*15
			targets[i].Y = 60
		}
	}
	s.targets = targets
	s.route.Reset()
}

const (
	red   = core.Color("#EF4444")
	blue  = core.Color("#3B82F6")
	green = core.Color("#22C55E")
)

func TestSessionStartSpawnsImmediately(t *testing.T) {
	s, _ := newTestSession(t, "arcade")
	if s.Phase() != PhaseStart {
		t.Fatalf("new session phase = %s", s.Phase())
	}

	s.Start(ViewportForScreen(120, 40))
	snap := s.Snapshot()
	if snap.Phase != PhasePlaying {
		t.Fatalf("phase = %s", snap.Phase)
	}
	if len(snap.Targets) == 0 {
		t.Fatal("start should spawn targets")
	}
	if snap.Started || snap.TimeLeft != 30 {
		t.Errorf("clock should wait for the first hit: started=%v left=%d", snap.Started, snap.TimeLeft)
	}

	// No countdown before the first pop.
	s.Advance(5 * time.Second)
	if got := s.Snapshot().TimeLeft; got != 30 {
		t.Errorf("time left = %d before first hit", got)
	}
}

func TestSessionArcadeStreak(t *testing.T) {
	s, rec := newTestSession(t, "arcade")
	s.Start(ViewportForScreen(120, 40))
	placeTargets(s,
		Target{ID: "r1", Color: red, Shape: ShapeCircle},
		Target{ID: "b1", Color: blue, Shape: ShapeSquare},
		Target{ID: "b2", Color: blue, Shape: ShapeSquare},
	)

	res, ok := s.Hit("r1", 0)
	if !ok {
		t.Fatal("hit on r1 rejected")
	}
	if res.Earned != 10 || !approx(res.Transition.Next, 1.3) || res.Text != "+10" {
		t.Errorf("first hit: %+v", res)
	}
	if snap := s.Snapshot(); snap.StreakPoints != 10 || snap.ActiveKey != string(red) || !snap.Started {
		t.Errorf("after first hit: streak %d key %q", snap.StreakPoints, snap.ActiveKey)
	}

	res, _ = s.Hit("b1", time.Second)
	if !res.Transition.Broke || !approx(res.Transition.Base, 1.0) || !approx(res.Transition.Next, 1.3) {
		t.Errorf("color change should break: %+v", res.Transition)
	}
	if res.Earned != 10 || res.Text != "RESET! +10" {
		t.Errorf("break hit: earned %d text %q", res.Earned, res.Text)
	}
	snap := s.Snapshot()
	if snap.Score != 20 || snap.StreakPoints != 10 || snap.BestStreak != 10 {
		t.Errorf("score %d streak %d best %d", snap.Score, snap.StreakPoints, snap.BestStreak)
	}
	if rec.count("break") != 1 || rec.count("pop:0") != 2 {
		t.Errorf("events = %v", rec.events)
	}

	// Same color within the speed threshold.
	res, _ = s.Hit("b2", time.Second+100*time.Millisecond)
	if !res.Transition.Rapid || res.Earned != 13 || res.Text != "SPEED! +13" {
		t.Errorf("rapid hit: %+v", res)
	}
	if !approx(s.Snapshot().Multiplier, 1.9) {
		t.Errorf("multiplier = %.2f, want 1.9", s.Snapshot().Multiplier)
	}
	if rec.count("speed") != 1 {
		t.Errorf("expected one speed event, got %v", rec.events)
	}

	st := s.Snapshot().Stats
	if !slices.Equal(st.Intervals, []float64{1000, 100}) {
		t.Errorf("intervals = %v", st.Intervals)
	}
}

func TestSessionStackedHit(t *testing.T) {
	s, rec := newTestSession(t, "arcade")
	s.Start(ViewportForScreen(120, 40))
	placeTargets(s, Target{ID: "r", Color: red, StackCount: 4})

	res, _ := s.Hit("r", 0)
	if res.Earned != 40 || res.Text != "BURST x4! +40" {
		t.Errorf("stacked hit: earned %d text %q", res.Earned, res.Text)
	}
	if !approx(res.Transition.Next, 2.2) {
		t.Errorf("next = %.2f", res.Transition.Next)
	}
	want := []string{"pop:0", "pop:1", "pop:2", "pop:3"}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestSessionMilestones(t *testing.T) {
	s, rec := newTestSession(t, "arcade")
	s.Start(ViewportForScreen(120, 40))
	placeTargets(s,
		Target{ID: "a", Color: red},
		Target{ID: "b", Color: red, StackCount: 40},
	)
	s.Hit("a", 0)
	s.mult.value = 9.5
	rec.reset()

	res, _ := s.Hit("b", time.Second)
	if !slices.Equal(res.Transition.Milestones, []int{10, 20}) {
		t.Errorf("milestones = %v", res.Transition.Milestones)
	}
	if rec.events[0] != "milestone:10" || rec.events[1] != "milestone:20" {
		t.Errorf("milestones should precede pops, got %v", rec.events[:3])
	}
	if s.Snapshot().Multiplier != 20 {
		t.Errorf("multiplier = %.2f, want cap", s.Snapshot().Multiplier)
	}
}

func TestSessionProWrongShape(t *testing.T) {
	s, rec := newTestSession(t, "pro")
	s.Start(ViewportForScreen(120, 40))
	placeTargets(s,
		Target{ID: "c", Color: red, Shape: ShapeCircle},
		Target{ID: "q", Color: blue, Shape: ShapeSquare},
	)
	s.route.Sync(s.targets, []Shape{ShapeCircle, ShapeSquare})

	res, ok := s.Hit("q", 0)
	if !ok {
		t.Fatal("hit rejected")
	}
	if !res.Wrong || res.Required != ShapeCircle {
		t.Fatalf("square before circle should be wrong: %+v", res)
	}
	if res.Earned != 18 || res.Text != "WRONG CIR! +18" {
		t.Errorf("wrong hit: earned %d text %q", res.Earned, res.Text)
	}
	if rec.count("break") != 1 {
		t.Errorf("wrong shape should break the streak, events %v", rec.events)
	}
	if q := s.Snapshot().Route; !slices.Equal(q, []Shape{ShapeCircle}) {
		t.Errorf("route = %v, want [circle]", q)
	}

	res, _ = s.Hit("c", time.Second)
	if res.Wrong || res.Transition.Broke {
		t.Errorf("route head hit should continue: %+v", res)
	}
	if res.Earned != 23 || res.Text != "+23" {
		t.Errorf("continued hit: earned %d text %q", res.Earned, res.Text)
	}
	if s.Snapshot().Score != 41 {
		t.Errorf("score = %d, want 41", s.Snapshot().Score)
	}
}

func TestSessionProFollowsRoute(t *testing.T) {
	s, _ := newTestSession(t, "pro")
	s.Start(ViewportForScreen(120, 40))
	placeTargets(s,
		Target{ID: "c", Color: red, Shape: ShapeCircle},
		Target{ID: "q", Color: blue, Shape: ShapeSquare},
		Target{ID: "t", Color: green, Shape: ShapeTriangle},
	)
	s.route.Sync(s.targets, []Shape{ShapeTriangle, ShapeCircle, ShapeSquare})

	for i, id := range []string{"t", "c", "q"} {
		res, ok := s.Hit(id, time.Duration(i)*time.Second)
		if !ok || res.Wrong {
			t.Fatalf("hit %s: wrong=%v ok=%v", id, res.Wrong, ok)
		}
	}
	snap := s.Snapshot()
	if snap.StreakPoints != snap.Score {
		t.Errorf("unbroken route: streak %d score %d", snap.StreakPoints, snap.Score)
	}
	if !approx(snap.Multiplier, 1.9) {
		t.Errorf("multiplier = %.2f", snap.Multiplier)
	}
}

func TestSessionProRouteHeadOnBoard(t *testing.T) {
	s, _ := newTestSession(t, "pro")
	s.Start(ViewportForScreen(160, 50))

	for i := 0; i < 40; i++ {
		snap := s.Snapshot()
		if len(snap.Targets) == 0 {
			break
		}
		if head, ok := s.route.Head(); ok && !hasShape(snap.Targets, head) {
			t.Fatalf("step %d: head %s not on board", i, head)
		}
		if snap.Zone != nil {
			for _, tg := range snap.Targets {
				if snap.Zone.Contains(tg.Center(snap.Viewport)) {
					t.Fatalf("target %s spawned inside the route zone", tg.ID)
				}
			}
		}
		s.Hit(snap.Targets[0].ID, time.Duration(i)*200*time.Millisecond)
		s.Advance(200 * time.Millisecond)
	}
}

func TestSessionSpawnKeepsInvariants(t *testing.T) {
	s, _ := newTestSession(t, "arcade")
	s.Start(ViewportForScreen(120, 40))

	for i := 0; i < 100; i++ {
		snap := s.Snapshot()
		if len(snap.Targets) > s.mode.MaxTargets {
			t.Fatalf("%d targets exceed ceiling %d", len(snap.Targets), s.mode.MaxTargets)
		}
		checkBoardInvariants(t, snap.Targets, snap.Viewport, snap.Diameter)
		for _, tg := range snap.Targets {
			if tg.StackCount < 1 {
				t.Fatalf("target %s has stack %d", tg.ID, tg.StackCount)
			}
		}
		if i%3 == 0 && len(snap.Targets) > 0 {
			s.Hit(snap.Targets[len(snap.Targets)-1].ID, s.Clock())
		}
		s.Advance(100 * time.Millisecond)
	}
}

func TestSessionCountdown(t *testing.T) {
	s, rec := newTestSession(t, "arcade")
	s.Start(ViewportForScreen(120, 40))
	s.Hit(s.Snapshot().Targets[0].ID, 0)
	rec.reset()

	for i := 0; i < 29; i++ {
		s.Advance(time.Second)
	}
	if s.Phase() != PhasePlaying || s.Snapshot().TimeLeft != 1 {
		t.Fatalf("after 29s: phase %s left %d", s.Phase(), s.Snapshot().TimeLeft)
	}

	s.Advance(time.Second)
	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %s, want game_over", s.Phase())
	}

	var ticks []string
	for _, e := range rec.events {
		if len(e) > 5 && e[:5] == "tick:" {
			ticks = append(ticks, e)
		}
	}
	want := []string{"tick:10", "tick:5", "tick:3", "tick:2", "tick:1"}
	if !slices.Equal(ticks, want) {
		t.Errorf("ticks = %v, want %v", ticks, want)
	}
	if rec.count("game_over") != 1 {
		t.Errorf("game over fired %d times", rec.count("game_over"))
	}

	// Nothing runs after the end.
	n := len(rec.events)
	s.Advance(5 * time.Second)
	if len(rec.events) != n {
		t.Errorf("events after game over: %v", rec.events[n:])
	}
	if _, ok := s.Hit("anything", s.Clock()); ok {
		t.Error("hits after game over should be rejected")
	}
}

func TestSessionGameOverFreezesStats(t *testing.T) {
	s, _ := newTestSession(t, "arcade")
	s.Start(ViewportForScreen(120, 40))
	placeTargets(s,
		Target{ID: "a", Color: red},
		Target{ID: "b", Color: red},
		Target{ID: "c", Color: red},
	)
	s.Hit("a", 0)
	s.Hit("b", 300*time.Millisecond)
	s.Hit("c", 500*time.Millisecond)
	s.EndGame()

	st := s.Snapshot().Stats
	if st.BestResponseMs != 200 || st.WorstResponseMs != 300 || st.MedianResponseMs != 250 {
		t.Errorf("summary = %+v", st)
	}
	if !approx(st.MaxMultiplier, 1.9) {
		t.Errorf("peak = %.2f", st.MaxMultiplier)
	}
}

func TestSessionResizeResets(t *testing.T) {
	s, rec := newTestSession(t, "arcade")
	s.Start(ViewportForScreen(120, 40))
	s.Hit(s.Snapshot().Targets[0].ID, 0)
	rec.reset()

	s.Resize(ViewportForScreen(120, 40))
	if s.Phase() != PhasePlaying {
		t.Fatal("same size should not reset")
	}

	s.Resize(ViewportForScreen(100, 30))
	snap := s.Snapshot()
	if snap.Phase != PhaseStart || len(snap.Targets) != 0 {
		t.Fatalf("resize should reset: phase %s targets %d", snap.Phase, len(snap.Targets))
	}
	if snap.Notice != ResizeNotice {
		t.Errorf("notice = %q", snap.Notice)
	}
	if !slices.Equal(rec.events, []string{"break"}) {
		t.Errorf("events = %v", rec.events)
	}
	if snap.Viewport != ViewportForScreen(100, 30) {
		t.Errorf("viewport = %+v", snap.Viewport)
	}

	s.Advance(1999 * time.Millisecond)
	if s.Snapshot().Notice == "" {
		t.Error("notice expired early")
	}
	s.Advance(time.Millisecond)
	if s.Snapshot().Notice != "" {
		t.Error("notice should expire after 2s")
	}
}

func TestSessionAbort(t *testing.T) {
	s, _ := newTestSession(t, "arcade")
	s.Start(ViewportForScreen(120, 40))
	s.Hit(s.Snapshot().Targets[0].ID, 0)

	s.Abort()
	snap := s.Snapshot()
	if snap.Phase != PhaseStart || len(snap.Targets) != 0 {
		t.Fatalf("abort: phase %s targets %d", snap.Phase, len(snap.Targets))
	}
	s.Advance(3 * time.Second)
	if len(s.Snapshot().Targets) != 0 {
		t.Error("spawning continued after abort")
	}

	s.Start(ViewportForScreen(120, 40))
	snap = s.Snapshot()
	if snap.Score != 0 || snap.Multiplier != 1.0 || snap.TimeLeft != 30 {
		t.Errorf("restart did not reset: %+v", snap)
	}
}

func TestSessionHitAt(t *testing.T) {
	s, _ := newTestSession(t, "arcade")
	s.Start(ViewportForScreen(120, 40))
	placeTargets(s,
		Target{ID: "under", Color: red, X: 50, Y: 50},
		Target{ID: "over", Color: blue, X: 50, Y: 50},
	)

	center := s.targets[0].Center(s.viewport)
	if _, ok := s.HitAt(core.Point{X: 1, Y: 1}, 0); ok {
		t.Error("miss should not hit")
	}
	res, ok := s.HitAt(center, 0)
	if !ok || res.Target.ID != "over" {
		t.Errorf("topmost target should win, got %+v", res.Target)
	}

	if _, ok := s.Hit("missing", 0); ok {
		t.Error("unknown id should be rejected")
	}
}

func TestFeedbackText(t *testing.T) {
	tests := []struct {
		name string
		res  HitResult
		want string
	}{
		{"plain", HitResult{Target: Target{StackCount: 1}, Earned: 10}, "+10"},
		{"reset", HitResult{Target: Target{StackCount: 1}, Earned: 10, Transition: Transition{Broke: true}}, "RESET! +10"},
		{"speed", HitResult{Target: Target{StackCount: 1}, Earned: 13, Transition: Transition{Rapid: true}}, "SPEED! +13"},
		{"burst", HitResult{Target: Target{StackCount: 3}, Earned: 30}, "BURST x3! +30"},
		{"speed burst", HitResult{Target: Target{StackCount: 2}, Earned: 26, Transition: Transition{Rapid: true}}, "SPEED BURST x2! +26"},
		{"reset burst", HitResult{Target: Target{StackCount: 2}, Earned: 20, Transition: Transition{Broke: true}}, "RESET BURST x2! +20"},
		{"wrong", HitResult{Target: Target{StackCount: 2}, Earned: 36, Wrong: true, Required: ShapeStar, Transition: Transition{Broke: true}}, "WRONG STR! +36"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := feedbackText(tt.res); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
