package pop

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/pop-arcade/internal/core"
)

const fillRune = '█'

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.session == nil {
		renderTooSmall(dst)
		return
	}

	snap := g.session.Snapshot()
	switch snap.Phase {
	case PhaseStart:
		renderStart(dst, snap)
	case PhasePlaying:
		renderBoard(dst, snap)
		renderHUD(dst, snap)
		if !snap.Started {
			dst.DrawTextCentered(dst.Height()-1, "Pop any target to start the clock", core.ColorGray)
		}
		if g.paused {
			drawCenteredMessage(dst, "PAUSED", "Press P to resume")
		}
	case PhaseGameOver:
		renderBoard(dst, snap)
		renderHUD(dst, snap)
		renderGameOver(dst, snap)
	}

	if snap.Notice != "" {
		dst.DrawTextCentered(dst.Height()/2, " "+snap.Notice+" ", core.ColorYellow)
	}
}

// renderTooSmall shows a "window too small" message.
func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", MinScreenW, MinScreenH), core.ColorGray)
}

func renderStart(dst *core.Screen, snap Snapshot) {
	y := dst.Height()/2 - 3
	dst.DrawTextCentered(y, "P O P - A - L O T", core.ColorMagenta)
	dst.DrawTextCentered(y+2, snap.Mode.Title+" mode", core.ColorBrightWhite)
	if snap.Mode.Description != "" {
		dst.DrawTextCentered(y+3, snap.Mode.Description, core.ColorGray)
	}
	dst.DrawTextCentered(y+5, "Enter to play  ·  Q to quit", core.ColorDefault)
}

func renderHUD(dst *core.Screen, snap Snapshot) {
	left := fmt.Sprintf(" SCORE %d", snap.Score)
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	timeColor := core.ColorDefault
	if snap.TimeLeft <= 5 && snap.Started {
		timeColor = core.ColorRed
	}
	dst.DrawTextCentered(0, fmt.Sprintf("%ds", snap.TimeLeft), timeColor)

	mult := fmt.Sprintf("x%.1f ", snap.Multiplier)
	dst.DrawTextColored(dst.Width()-len(mult), 0, mult, multiplierColor(snap.Multiplier))

	streak := fmt.Sprintf(" STREAK %d  BEST %d", snap.StreakPoints, snap.BestStreak)
	dst.DrawTextColored(0, 1, streak, core.ColorGray)

	if !snap.Mode.Route && snap.ActiveKey != "" {
		label := "COMBO "
		x := dst.Width() - len(label) - 3
		dst.DrawTextColored(x, 1, label, core.ColorGray)
		dst.DrawTextColored(x+len(label), 1, "██", core.Color(snap.ActiveKey))
	}

	if snap.Mode.Route {
		renderRoute(dst, snap)
	}
}

func multiplierColor(m float64) core.Color {
	switch {
	case m >= 10:
		return core.ColorMagenta
	case m >= 5:
		return core.ColorOrange
	case m > 1:
		return core.ColorYellow
	default:
		return core.ColorDefault
	}
}

// renderRoute draws the queue panel with the required shape first.
func renderRoute(dst *core.Screen, snap Snapshot) {
	if snap.Panel == nil {
		return
	}
	x0, y0 := UnitToCell(core.Point{X: snap.Panel.Left, Y: snap.Panel.Top})
	x1, y1 := UnitToCell(core.Point{X: snap.Panel.Right, Y: snap.Panel.Bottom})
	r := core.NewRect(x0, y0, max(x1-x0, 20), max(y1-y0, 3))

	dst.DrawRect(r, ' ')
	dst.DrawBox(r, core.ColorGray)
	dst.DrawTextColored(r.X+2, r.Y, " ROUTE ", core.ColorGray)

	x := r.X + 2
	y := r.Y + r.H/2
	for i, shape := range snap.Route {
		color := snap.Mode.ColorFor(shape)
		if i == 0 {
			dst.DrawTextColored(x-1, y, "▶", core.ColorBrightWhite)
		}
		dst.SetColored(x, y, shape.Glyph(), color)
		dst.DrawTextColored(x+1, y, shape.Label(), color)
		x += 6
	}
}

func renderBoard(dst *core.Screen, snap Snapshot) {
	for _, t := range snap.Targets {
		drawTarget(dst, t, snap.Viewport, snap.Diameter)
	}
	for _, f := range snap.Feedback {
		cx, cy := UnitToCell(core.Point{
			X: core.FromPct(f.X, snap.Viewport.W),
			Y: core.FromPct(f.Y, snap.Viewport.H),
		})
		color := core.ColorBrightWhite
		if f.Reset {
			color = core.ColorGray
		}
		dst.DrawTextColored(cx-len(f.Text)/2, cy, f.Text, color)
	}
}

// drawTarget rasterizes a target's outline into cells and labels its center
// with the shape glyph and, for stacks, the pop count.
func drawTarget(dst *core.Screen, t Target, vp Viewport, diameter float64) {
	c := t.Center(vp)
	r := diameter / 2
	if r <= 0 {
		return
	}

	minX := int(math.Floor(c.X - r))
	maxX := int(math.Ceil(c.X + r))
	minY := int(math.Floor((c.Y - r) / 2))
	maxY := int(math.Ceil((c.Y + r) / 2))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := CellToUnit(x, y)
			if t.Shape.Contains((p.X-c.X)/r, (p.Y-c.Y)/r) {
				dst.SetColored(x, y, fillRune, t.Color)
			}
		}
	}

	cx, cy := UnitToCell(c)
	dst.SetColored(cx, cy, t.Shape.Glyph(), core.ColorBrightWhite)
	if t.StackCount > 1 {
		label := "x" + strconv.Itoa(t.StackCount)
		dst.DrawTextColored(cx-len(label)/2, cy+1, label, core.ColorBrightWhite)
	}
}

func renderGameOver(dst *core.Screen, snap Snapshot) {
	lines := []string{
		fmt.Sprintf("Score %d", snap.Score),
		fmt.Sprintf("Peak multiplier x%.1f", snap.Stats.MaxMultiplier),
		fmt.Sprintf("Best streak %d", snap.BestStreak),
		fmt.Sprintf("Response best %.0fms  median %.0fms  worst %.0fms",
			snap.Stats.BestResponseMs, snap.Stats.MedianResponseMs, snap.Stats.WorstResponseMs),
		"",
		"R to play again  ·  Esc for start",
	}

	w := len("GAME OVER")
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	boxW := w + 4
	boxH := len(lines) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorMagenta)
	dst.DrawTextCentered(box.Y+1, "GAME OVER", core.ColorMagenta)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+3+i, l, core.ColorDefault)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorDefault)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorGray)
}
