package tui

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pop-arcade/internal/card"
	"github.com/vovakirdan/pop-arcade/internal/commentary"
	"github.com/vovakirdan/pop-arcade/internal/core"
	"github.com/vovakirdan/pop-arcade/internal/games/pop"
	"github.com/vovakirdan/pop-arcade/internal/history"
	"github.com/vovakirdan/pop-arcade/internal/registry"
)

const statusDuration = 2 * time.Second

// popGame is what the model needs beyond registry.Game to keep a run alive
// across resizes and to report its end state.
type popGame interface {
	registry.Game
	Resize(cols, rows int)
	SetNotifier(n pop.Notifier)
	Snapshot() pop.Snapshot
}

// verdictMsg carries the commentary for run number seq.
type verdictMsg struct {
	seq        int
	commentary commentary.Commentary
	err        error
}

// runState is shared between copies of the model so a verdict arriving
// after a value copy still finds its run.
type runState struct {
	seq     int
	pending *history.Record // saved once the verdict is in
	cancel  context.CancelFunc
	result  *commentary.Commentary
}

// Model is the Bubble Tea model for playing one mode.
type Model struct {
	game       registry.Game
	pop        popGame // nil for games without the extended API
	screen     *core.Screen
	svc        Services
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	spinner    spinner.Model
	run        *runState
	status     string
	statusTill time.Time
	standalone bool // Esc on the start screen quits instead of returning to a menu
	embedded   bool // Runs inside another model, which watches BackToMenu
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, svc Services, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		svc:        svc,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		run:        &runState{},
	}
	if pg, ok := game.(popGame); ok {
		m.pop = pg
		if svc.Audio != nil {
			pg.SetNotifier(svc.Audio)
		}
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case verdictMsg:
		return m.handleVerdict(msg)

	case spinner.TickMsg:
		if m.run.pending == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.exportCard()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.abandonVerdict()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionMute) {
		delete(m.inputFrame.Actions, core.ActionMute)
		m.toggleMute()
	}

	// Esc on the start screen leaves the mode.
	if m.inputFrame.Has(core.ActionBack) && m.phase() == pop.PhaseStart {
		m.inputFrame.Clear()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		if !m.embedded {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize keeps the screen in sync with the terminal. A running game
// is reset by the game itself.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.pop != nil {
		m.pop.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Leaving the results screen drops a verdict still being written.
	if m.gameState.GameOver && (m.inputFrame.Has(core.ActionRestart) ||
		m.inputFrame.Has(core.ActionConfirm) || m.inputFrame.Has(core.ActionBack)) {
		m.abandonVerdict()
		m.run.result = nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if result.Finished {
		cmds = append(cmds, m.finishRun())
	}
	return m, tea.Batch(cmds...)
}

// finishRun records the run and asks for a verdict. The record is saved
// when the verdict arrives so it carries the rank title.
func (m Model) finishRun() tea.Cmd {
	rec := history.Record{
		Timestamp: time.Now().UnixMilli(),
		Score:     m.gameState.Score,
		Mode:      m.game.ID(),
	}
	var stats pop.Summary
	if m.pop != nil {
		stats = m.pop.Snapshot().Stats
	}
	rec.MaxMultiplier = stats.MaxMultiplier

	m.run.seq++
	m.run.pending = &rec
	m.run.result = nil

	gen := m.svc.Commentary
	if gen == nil {
		m.flushRun("")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.run.cancel = cancel
	seq, mode := m.run.seq, rec.Mode
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		c, err := gen.Generate(ctx, rec.Score, stats, mode)
		return verdictMsg{seq: seq, commentary: c, err: err}
	})
}

func (m Model) handleVerdict(msg verdictMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.run.seq || m.run.pending == nil {
		return m, nil
	}
	if msg.err != nil {
		m.svc.logger().Debug("no commentary for run", "error", msg.err)
		m.flushRun("")
		return m, nil
	}
	c := msg.commentary
	m.run.result = &c
	m.flushRun(c.RankTitle)
	return m, nil
}

// flushRun saves the pending record, if any.
func (m Model) flushRun(rankTitle string) {
	rec := m.run.pending
	if rec == nil {
		return
	}
	m.run.pending = nil
	if m.run.cancel != nil {
		m.run.cancel()
		m.run.cancel = nil
	}
	rec.RankTitle = rankTitle
	if m.svc.History != nil {
		m.svc.History.Add(*rec)
	}
}

// abandonVerdict saves the pending run without a rank title.
func (m Model) abandonVerdict() {
	m.flushRun("")
}

func (m *Model) toggleMute() {
	if m.svc.Audio == nil {
		m.setStatus("No sound device")
		return
	}
	if m.svc.Audio.ToggleMute() {
		m.setStatus("Sound off")
	} else {
		m.setStatus("Sound on")
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTill = time.Now().Add(statusDuration)
}

func (m Model) phase() pop.Phase {
	if m.pop == nil {
		if m.gameState.GameOver {
			return pop.PhaseGameOver
		}
		return pop.PhasePlaying
	}
	return m.pop.Snapshot().Phase
}

// exportCard writes a PNG: the scorecard after a run, the board otherwise.
func (m *Model) exportCard() {
	if m.pop == nil {
		return
	}
	snap := m.pop.Snapshot()

	var img image.Image
	if snap.Phase == pop.PhaseGameOver {
		run := card.Run{
			Mode:          m.game.ID(),
			Score:         snap.Score,
			MaxMultiplier: snap.Stats.MaxMultiplier,
			When:          time.Now(),
			Stats:         &snap.Stats,
		}
		if r := m.run.result; r != nil {
			run.RankTitle, run.Comment = r.RankTitle, r.Comment
		}
		img = card.Scorecard(run)
	} else {
		board, err := card.Board(snap, 1200)
		if err != nil {
			m.setStatus("Nothing to export")
			return
		}
		img = board
	}

	dir := m.svc.cardDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.svc.logger().Warn("cannot create card directory", "dir", dir, "error", err)
		m.setStatus("Export failed")
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", m.game.ID(), time.Now().Format("20060102_150405")))
	if err := card.Save(path, img); err != nil {
		m.svc.logger().Warn("cannot save card", "path", path, "error", err)
		m.setStatus("Export failed")
		return
	}
	m.svc.logger().Info("card saved", "path", path)
	m.setStatus("Saved " + filepath.Base(path))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	m.drawOverlay(m.screen)
	return RenderScreen(m.screen)
}

// drawOverlay adds what the game itself does not know about: run history,
// the verdict, and platform status.
func (m Model) drawOverlay(dst *core.Screen) {
	h := dst.Height()
	if h < pop.MinScreenH || dst.Width() < pop.MinScreenW {
		return
	}

	switch m.phase() {
	case pop.PhaseStart:
		if m.svc.History != nil {
			drawShelves(dst, h/2+4, m.svc.History.Latest(m.game.ID()), m.svc.History.Best(m.game.ID()))
		}
	case pop.PhaseGameOver:
		switch {
		case m.run.pending != nil && m.run.cancel != nil:
			dst.DrawTextCentered(h-3, m.spinner.View()+" Judging your run...", core.ColorGray)
		case m.run.result != nil:
			dst.DrawTextCentered(h-3, m.run.result.RankTitle, core.ColorMagenta)
			dst.DrawTextCentered(h-2, truncate(m.run.result.Comment, dst.Width()-2), core.ColorDefault)
		}
	}

	if m.svc.Audio != nil && m.svc.Audio.Muted() {
		dst.DrawTextColored(dst.Width()-7, h-1, "MUTED", core.ColorGray)
	}
	if m.status != "" && time.Now().Before(m.statusTill) {
		dst.DrawTextColored(1, h-1, truncate(m.status, dst.Width()-10), core.ColorYellow)
	}
}

// drawShelves draws the latest and best runs side by side from row y.
func drawShelves(dst *core.Screen, y int, latest, best []history.Record) {
	colW := 26
	left := dst.Width()/2 - colW - 1
	right := dst.Width()/2 + 1
	now := time.Now()

	dst.DrawTextColored(left, y, "LATEST", core.ColorCyan)
	dst.DrawTextColored(right, y, "BEST", core.ColorYellow)
	for i := range history.ShelfSize {
		dst.DrawTextColored(left, y+1+i, shelfLine(latest, i, now), core.ColorDefault)
		dst.DrawTextColored(right, y+1+i, shelfLine(best, i, now), core.ColorDefault)
	}
}

func shelfLine(runs []history.Record, i int, now time.Time) string {
	if i >= len(runs) {
		return "-"
	}
	r := runs[i]
	return fmt.Sprintf("%s %6d x%.1f", history.FormatWhen(r.Time(), now), r.Score, r.MaxMultiplier)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single mode.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) error {
	_, err := runGame(game, svc, cfg, true)
	return err
}

// runGame plays until the user quits or, unless standalone, asks for the
// menu. It reports whether the menu was requested.
func runGame(game registry.Game, svc Services, cfg core.RuntimeConfig, standalone bool) (bool, error) {
	model := NewModel(game, svc, cfg)
	model.standalone = standalone

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	m.abandonVerdict()
	return m.BackToMenu(), nil
}
