package pop

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/pop-arcade/internal/config"
	"github.com/vovakirdan/pop-arcade/internal/core"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseStart Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Scheduler task names.
const (
	taskSpawn     = "spawn"
	taskDecay     = "decay"
	taskCountdown = "countdown"
)

// ResizeNotice is shown when a resize cancels a running game.
const ResizeNotice = "WINDOW RESIZED! GAME RESET!"

// Feedback is a floating hit label.
type Feedback struct {
	Text  string
	X, Y  float64 // Percent, at the popped target
	Reset bool    // The hit broke a streak
	Scale float64
	until time.Duration
}

// HitResult describes an accepted hit.
type HitResult struct {
	Target     Target
	Earned     int
	Interval   time.Duration // Zero on the first hit
	Transition Transition
	Wrong      bool  // Pro: popped shape was not the route head
	Required   Shape // Pro: route head at the time of the hit
	Text       string
}

// Options configures a session.
type Options struct {
	Notifier Notifier
	Seed     int64
	Now      func() time.Time
	NewID    func() string
}

// Session is the mutable state of one game. It is not safe for concurrent
// use; the platform serializes clicks and ticks on one goroutine.
type Session struct {
	cfg      config.PopConfig
	mode     Mode
	notifier Notifier
	now      func() time.Time

	rng     *rand.Rand
	spawner *Spawner
	route   *Route
	mult    *Multiplier
	stats   *Stats
	sched   *Scheduler

	phase     Phase
	viewport  Viewport
	diameter  float64
	targets   []Target
	score     int
	timeLeft  int
	clock     time.Duration
	started   bool
	lastClick time.Duration

	notice      string
	noticeUntil time.Duration
	feedback    []Feedback
	final       Summary
}

// NewSession creates a session in the start phase.
func NewSession(cfg config.PopConfig, mode Mode, opts Options) *Session {
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	diffCfg := cfg.Difficulty
	if diffCfg.Progression.Type == "time" && diffCfg.Progression.MaxAt <= 0 {
		diffCfg.Progression.MaxAt = cfg.Game.DurationSecs
	}

	rng := rand.New(rand.NewSource(seed))
	s := &Session{
		cfg:      cfg,
		mode:     mode,
		notifier: opts.Notifier,
		now:      opts.Now,
		rng:      rng,
		route:    NewRoute(cfg.Game.RouteLength, rng),
		mult:     NewMultiplier(cfg.Multiplier),
		stats:    NewStats(),
		sched:    NewScheduler(),
		timeLeft: cfg.Game.DurationSecs,
	}
	s.spawner = NewSpawner(mode, cfg.Spawn, NewPlacer(cfg.Placement, rng), config.NewDifficultyManager(diffCfg), rng, opts.NewID)

	s.sched.Add(taskSpawn, time.Duration(cfg.Game.SpawnIntervalMs)*time.Millisecond, func(time.Duration) { s.spawn() })
	s.sched.Add(taskDecay, 0, s.decay)
	s.sched.Add(taskCountdown, time.Second, func(time.Duration) { s.countdown() })
	return s
}

// SetNotifier replaces the event sink.
func (s *Session) SetNotifier(n Notifier) {
	if n == nil {
		n = NopNotifier{}
	}
	s.notifier = n
}

// Mode returns the session mode.
func (s *Session) Mode() Mode { return s.mode }

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Clock returns time since the session was created, as advanced by the owner.
func (s *Session) Clock() time.Duration { return s.clock }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Start begins a new run on vp: everything is reset and the first spawn
// happens immediately. The countdown and decay wait for the first hit.
func (s *Session) Start(vp Viewport) {
	s.sched.Stop()

	s.setViewport(vp)
	s.targets = nil
	s.score = 0
	s.timeLeft = s.cfg.Game.DurationSecs
	s.started = false
	s.lastClick = 0
	s.feedback = nil
	s.notice = ""
	s.final = Summary{}
	s.mult.Reset()
	s.stats.Reset()
	s.route.Reset()

	s.phase = PhasePlaying
	s.sched.Start()
	s.sched.Enable(taskSpawn)
	s.spawn()
}

// Advance moves the session clock and drives the scheduler.
func (s *Session) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.clock += dt
	s.expire()
	s.sched.Advance(dt)
}

// Hit pops the target with the given id at session time at. It reports
// false when no game is running or the target no longer exists.
func (s *Session) Hit(id string, at time.Duration) (HitResult, bool) {
	if s.phase != PhasePlaying {
		return HitResult{}, false
	}
	idx, ok := findTarget(s.targets, id)
	if !ok {
		return HitResult{}, false
	}

	first := !s.started
	if first {
		s.started = true
		s.lastClick = at
		s.sched.Enable(taskDecay)
		s.sched.Enable(taskCountdown)
	}
	interval := at - s.lastClick
	rapid := !first && interval < s.mode.SpeedThreshold
	s.lastClick = at

	hit := s.targets[idx]
	before := s.targets
	s.targets = removeTarget(s.targets, idx)

	res := HitResult{Target: hit, Interval: interval}
	key := s.mode.streakKey(hit)

	var broke bool
	if s.mode.Route {
		// Judge against a healed route, then resync on the smaller board.
		s.route.Heal(before)
		head, hasHead := s.route.Head()
		if !hasHead {
			s.route.Sync(before, nil)
			head, hasHead = s.route.Head()
		}
		res.Required = head
		broke = hasHead && hit.Shape != head
		res.Wrong = broke
		if broke {
			s.route.Sync(s.targets, s.route.Queue())
		} else {
			s.route.Sync(s.targets, s.route.Tail())
		}
	} else {
		broke = s.mult.Breaks(key)
	}

	tr := s.mult.Apply(key, broke, hit.StackCount, s.mode.MultGainBase, rapid)
	res.Transition = tr
	res.Earned = Points(s.mode.BasePoints, tr.Base, hit.StackCount)
	s.score += res.Earned
	s.mult.Credit(res.Earned)

	if !first {
		s.stats.RecordInterval(float64(interval) / float64(time.Millisecond))
	}
	s.stats.ObserveMultiplier(tr.Next)

	if broke {
		s.notifier.OnStreakBreak()
	}
	for _, m := range tr.Milestones {
		s.notifier.OnMilestone(m)
	}
	for i := 0; i < hit.StackCount; i++ {
		if rapid {
			s.notifier.OnSpeedBonus()
		} else {
			s.notifier.OnPop(i)
		}
	}

	res.Text = feedbackText(res)
	s.feedback = append(s.feedback, Feedback{
		Text:  res.Text,
		X:     hit.X,
		Y:     hit.Y,
		Reset: broke,
		Scale: min(1+tr.Base*0.1+float64(hit.StackCount)*0.2, 3.5),
		until: s.clock + time.Duration(s.cfg.Game.FeedbackMs)*time.Millisecond,
	})
	return res, true
}

func feedbackText(r HitResult) string {
	n := r.Target.StackCount
	switch {
	case r.Wrong:
		return fmt.Sprintf("WRONG %s! +%d", r.Required.Label(), r.Earned)
	case n > 1 && r.Transition.Broke:
		return fmt.Sprintf("RESET BURST x%d! +%d", n, r.Earned)
	case n > 1 && r.Transition.Rapid:
		return fmt.Sprintf("SPEED BURST x%d! +%d", n, r.Earned)
	case n > 1:
		return fmt.Sprintf("BURST x%d! +%d", n, r.Earned)
	case r.Transition.Rapid:
		return fmt.Sprintf("SPEED! +%d", r.Earned)
	case r.Transition.Broke:
		return fmt.Sprintf("RESET! +%d", r.Earned)
	default:
		return fmt.Sprintf("+%d", r.Earned)
	}
}

// HitAt pops the topmost target under a viewport point.
func (s *Session) HitAt(p core.Point, at time.Duration) (HitResult, bool) {
	t, ok := s.TargetAt(p)
	if !ok {
		return HitResult{}, false
	}
	return s.Hit(t.ID, at)
}

// TargetAt returns the most recently spawned target whose disc contains p.
// Half a unit of slack absorbs terminal cell rounding.
func (s *Session) TargetAt(p core.Point) (Target, bool) {
	r := s.diameter/2 + 0.5
	for i := len(s.targets) - 1; i >= 0; i-- {
		if s.targets[i].Center(s.viewport).Dist(p) <= r {
			return s.targets[i], true
		}
	}
	return Target{}, false
}

// EndGame stops every task and freezes the run statistics.
func (s *Session) EndGame() {
	if s.phase != PhasePlaying {
		return
	}
	s.sched.Stop()
	s.phase = PhaseGameOver
	s.final = s.stats.Summary()
	s.notifier.OnGameOver()
}

// Abort cancels the run, or leaves the game over screen, and returns to
// the start phase with an empty board.
func (s *Session) Abort() {
	s.sched.Stop()
	s.phase = PhaseStart
	s.targets = nil
	s.feedback = nil
	s.route.Reset()
}

// Resize applies a new viewport. A running game cannot survive it: the
// board and safe zones are invalid, so the run is reset with a notice.
func (s *Session) Resize(vp Viewport) {
	if vp == s.viewport {
		return
	}
	s.setViewport(vp)
	if s.phase != PhasePlaying {
		return
	}

	s.sched.Stop()
	s.phase = PhaseStart
	s.targets = nil
	s.route.Reset()
	s.feedback = nil
	s.notifier.OnStreakBreak()
	s.notice = ResizeNotice
	s.noticeUntil = s.clock + time.Duration(s.cfg.Game.NoticeMs)*time.Millisecond
}

func (s *Session) setViewport(vp Viewport) {
	s.viewport = vp
	s.diameter = TargetDiameter(vp, s.cfg.Game.TargetSizePct)
}

func (s *Session) zone() *core.Zone {
	if !s.mode.Route || s.viewport.Empty() {
		return nil
	}
	z := QueueZone(s.viewport, s.diameter, s.cfg.RouteZone, s.cfg.Game.RouteLength)
	return &z
}

func (s *Session) panel() *core.Zone {
	if !s.mode.Route || s.viewport.Empty() {
		return nil
	}
	z := QueuePanel(s.viewport, s.diameter, s.cfg.RouteZone, s.cfg.Game.RouteLength)
	return &z
}

func (s *Session) spawn() {
	if s.phase != PhasePlaying {
		return
	}
	created := s.spawner.Fill(Board{
		Targets:   s.targets,
		Viewport:  s.viewport,
		Diameter:  s.diameter,
		Zone:      s.zone(),
		ActiveKey: s.mult.ActiveKey(),
		Route:     s.route.Queue(),
		Score:     s.score,
		TimeLeft:  s.timeLeft,
		Duration:  s.cfg.Game.DurationSecs,
		Now:       s.now(),
	})
	if len(created) > 0 {
		s.targets = append(s.targets, created...)
	}
	if s.mode.Route {
		s.route.Heal(s.targets)
	}
}

func (s *Session) decay(dt time.Duration) {
	if s.phase != PhasePlaying || !s.started {
		return
	}
	s.mult.Decay(dt)
}

func (s *Session) countdown() {
	if s.phase != PhasePlaying {
		return
	}
	s.timeLeft--
	if s.timeLeft > 0 && slices.Contains(s.cfg.Game.CountdownPings, s.timeLeft) {
		s.notifier.OnCountdownTick(s.timeLeft)
	}
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.EndGame()
	}
}

func (s *Session) expire() {
	if s.notice != "" && s.clock >= s.noticeUntil {
		s.notice = ""
	}
	if len(s.feedback) == 0 {
		return
	}
	kept := s.feedback[:0]
	for _, f := range s.feedback {
		if s.clock < f.until {
			kept = append(kept, f)
		}
	}
	s.feedback = kept
}

// Snapshot is an immutable copy of the session for renderers and tests.
type Snapshot struct {
	Phase        Phase
	Mode         Mode
	Viewport     Viewport
	Diameter     float64
	Targets      []Target
	Route        []Shape
	Zone         *core.Zone // No-spawn rectangle around the route HUD
	Panel        *core.Zone // Route HUD rectangle
	Score        int
	TimeLeft     int
	Duration     int
	Started      bool
	Multiplier   float64
	ActiveKey    string
	StreakPoints int
	BestStreak   int
	Notice       string
	Feedback     []Feedback
	Stats        Summary // Frozen at game over, live otherwise
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	stats := s.final
	if s.phase != PhaseGameOver {
		stats = s.stats.Summary()
	}
	return Snapshot{
		Phase:        s.phase,
		Mode:         s.mode,
		Viewport:     s.viewport,
		Diameter:     s.diameter,
		Targets:      slices.Clone(s.targets),
		Route:        s.route.Queue(),
		Zone:         s.zone(),
		Panel:        s.panel(),
		Score:        s.score,
		TimeLeft:     s.timeLeft,
		Duration:     s.cfg.Game.DurationSecs,
		Started:      s.started,
		Multiplier:   s.mult.Value(),
		ActiveKey:    s.mult.ActiveKey(),
		StreakPoints: s.mult.StreakPoints(),
		BestStreak:   s.mult.BestStreak(),
		Notice:       s.notice,
		Feedback:     slices.Clone(s.feedback),
		Stats:        stats,
	}
}

// nextSeed draws a seed for the run that follows this one.
func (s *Session) nextSeed() int64 {
	return s.rng.Int63()
}
