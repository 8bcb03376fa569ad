package pop

import (
	"sync"
	"time"

	"github.com/vovakirdan/pop-arcade/internal/config"
	"github.com/vovakirdan/pop-arcade/internal/core"
	"github.com/vovakirdan/pop-arcade/internal/registry"
)

// Minimum playable terminal size.
const (
	MinScreenW = 40
	MinScreenH = 16
)

var (
	sourceMu         sync.RWMutex
	configSource     = loadDefaultConfig
	difficultyPreset config.DifficultyPreset
)

func loadDefaultConfig() config.PopConfig {
	cfg, err := config.LoadPop("")
	if err != nil {
		return config.DefaultPopConfig()
	}
	return cfg
}

// SetConfigSource sets where new runs read their configuration from.
// Long-running commands pass a hot-reloading source.
func SetConfigSource(fn func() config.PopConfig) {
	sourceMu.Lock()
	defer sourceMu.Unlock()
	if fn == nil {
		fn = loadDefaultConfig
	}
	configSource = fn
}

// SetDifficultyPreset sets the preset applied on top of the loaded config.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	sourceMu.Lock()
	defer sourceMu.Unlock()
	difficultyPreset = preset
}

func currentConfig() config.PopConfig {
	sourceMu.RLock()
	fn, preset := configSource, difficultyPreset
	sourceMu.RUnlock()

	cfg := fn()
	if preset != "" {
		config.ApplyPopPreset(&cfg, preset)
	}
	return cfg
}

// Modes returns the modes of the current configuration, or the built-in
// ones when it does not validate.
func Modes() []Mode {
	modes, err := LoadModes(currentConfig())
	if err != nil || len(modes) == 0 {
		modes, _ = LoadModes(config.DefaultPopConfig())
	}
	return modes
}

// Game adapts a Session to the platform's registry.Game interface.
// Mouse clicks arrive in InputFrame.Clicks as screen cells.
type Game struct {
	modeID   string
	fixed    *config.PopConfig // Set by NewWithConfig; nil reads the config source
	cfg      config.PopConfig
	mode     Mode
	session  *Session
	notifier Notifier
	rt       core.RuntimeConfig
	paused   bool
	tooSmall bool
	err      error
}

// New creates a game for a mode id. Configuration is read at Reset so every
// run picks up the latest file.
func New(modeID string) *Game {
	return &Game{modeID: modeID, notifier: NopNotifier{}}
}

// NewWithConfig creates a game bound to a fixed configuration.
func NewWithConfig(cfg config.PopConfig, modeID string) (*Game, error) {
	mc, ok := cfg.Mode(modeID)
	if !ok {
		return nil, &UnknownModeError{ID: modeID}
	}
	mode, err := ModeFromConfig(mc)
	if err != nil {
		return nil, err
	}
	return &Game{modeID: modeID, fixed: &cfg, cfg: cfg, mode: mode, notifier: NopNotifier{}}, nil
}

// UnknownModeError reports a mode id missing from the configuration.
type UnknownModeError struct {
	ID string
}

func (e *UnknownModeError) Error() string {
	return "pop: unknown mode " + e.ID
}

// ID returns the mode id.
func (g *Game) ID() string {
	return g.modeID
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	if g.mode.Title != "" {
		return "Pop-a-Lot " + g.mode.Title
	}
	if mc, ok := config.DefaultPopConfig().Mode(g.modeID); ok {
		return "Pop-a-Lot " + mc.Title
	}
	return "Pop-a-Lot " + g.modeID
}

// Err returns the configuration problem found by the last Reset, if any.
// The game falls back to built-in defaults in that case.
func (g *Game) Err() error {
	return g.err
}

// SetNotifier sets the event sink for this and later runs.
func (g *Game) SetNotifier(n Notifier) {
	if n == nil {
		n = NopNotifier{}
	}
	g.notifier = n
	if g.session != nil {
		g.session.SetNotifier(n)
	}
}

// Reset loads configuration and starts a new run.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.paused = false
	g.err = nil

	if g.fixed == nil {
		g.cfg = currentConfig()
		mc, ok := g.cfg.Mode(g.modeID)
		if !ok {
			g.err = &UnknownModeError{ID: g.modeID}
			g.cfg = config.DefaultPopConfig()
			mc, _ = g.cfg.Mode("arcade")
		}
		mode, err := ModeFromConfig(mc)
		if err != nil {
			g.err = err
			g.cfg = config.DefaultPopConfig()
			mc, _ = g.cfg.Mode("arcade")
			mode, _ = ModeFromConfig(mc)
		}
		g.mode = mode
	}

	g.session = NewSession(g.cfg, g.mode, Options{
		Notifier: g.notifier,
		Seed:     rt.Seed,
	})
	g.tooSmall = rt.ScreenW < MinScreenW || rt.ScreenH < MinScreenH
	if !g.tooSmall {
		g.session.Start(ViewportForScreen(rt.ScreenW, rt.ScreenH))
	}
}

// Resize applies a new terminal size. A running game resets.
func (g *Game) Resize(cols, rows int) {
	g.rt.ScreenW, g.rt.ScreenH = cols, rows
	g.tooSmall = cols < MinScreenW || rows < MinScreenH
	if g.session != nil {
		g.session.Resize(ViewportForScreen(cols, rows))
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}
	s := g.session
	tick := time.Duration(g.rt.TickSeconds() * float64(time.Second))

	if in.Has(core.ActionBack) && s.Phase() != PhaseStart {
		s.Abort()
		g.paused = false
	}

	if s.Phase() != PhasePlaying {
		if !g.tooSmall && (in.Has(core.ActionConfirm) || in.Has(core.ActionRestart)) {
			g.restart()
			return core.StepResult{State: g.State()}
		}
		// Notices still expire outside of play.
		s.Advance(tick)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, c := range in.Clicks {
		s.HitAt(CellToUnit(c.X, c.Y), s.Clock())
	}
	s.Advance(tick)

	return core.StepResult{
		State:    g.State(),
		Finished: s.Phase() == PhaseGameOver,
	}
}

// restart begins a new run on a fresh board. The seed is drawn from the
// finished run so seeded games stay reproducible.
func (g *Game) restart() {
	rt := g.rt
	rt.Seed = g.session.nextSeed()
	g.Reset(rt)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.Phase() == PhaseGameOver,
		Paused:   g.paused,
	}
}

// Snapshot returns the session state.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{Mode: g.mode}
	}
	return g.session.Snapshot()
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// Mode returns the resolved mode of the current run.
func (g *Game) Mode() Mode {
	return g.mode
}

// Register built-in modes with the registry
func init() {
	for _, mc := range config.DefaultPopConfig().Modes {
		id := mc.ID
		registry.Register(id, func() registry.Game {
			return New(id)
		})
	}
}
