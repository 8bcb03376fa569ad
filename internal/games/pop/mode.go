package pop

import (
	"fmt"
	"time"

	"github.com/vovakirdan/pop-arcade/internal/config"
	"github.com/vovakirdan/pop-arcade/internal/core"
)

// Mode is a validated, typed mode definition. Colors and Shapes are
// paired by index.
type Mode struct {
	ID             string
	Title          string
	Description    string
	Colors         []core.Color
	Shapes         []Shape
	MaxTargets     int
	BasePoints     int
	MultGainBase   float64
	SpeedThreshold time.Duration

	// Route makes the streak follow the route queue by shape instead of
	// following the last popped color.
	Route bool
}

// ModeFromConfig converts and validates a mode definition.
func ModeFromConfig(mc config.ModeConfig) (Mode, error) {
	if err := mc.Validate(); err != nil {
		return Mode{}, fmt.Errorf("mode %s: %w", mc.ID, err)
	}

	m := Mode{
		ID:             mc.ID,
		Title:          mc.Title,
		Description:    mc.Description,
		Colors:         make([]core.Color, len(mc.Colors)),
		Shapes:         make([]Shape, len(mc.Shapes)),
		MaxTargets:     mc.MaxTargets,
		BasePoints:     mc.BasePoints,
		MultGainBase:   mc.MultGainBase,
		SpeedThreshold: time.Duration(mc.SpeedThresholdMs) * time.Millisecond,
		Route:          mc.Route,
	}
	if m.Title == "" {
		m.Title = mc.ID
	}
	for i, c := range mc.Colors {
		m.Colors[i] = core.Color(c)
	}
	for i, name := range mc.Shapes {
		s, err := ParseShape(name)
		if err != nil {
			return Mode{}, fmt.Errorf("mode %s: %w", mc.ID, err)
		}
		m.Shapes[i] = s
	}
	return m, nil
}

// LoadModes converts every mode in cfg.
func LoadModes(cfg config.PopConfig) ([]Mode, error) {
	modes := make([]Mode, 0, len(cfg.Modes))
	for _, mc := range cfg.Modes {
		m, err := ModeFromConfig(mc)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// streakKey is the attribute a streak is built on.
func (m Mode) streakKey(t Target) string {
	if m.Route {
		return t.Shape.String()
	}
	return string(t.Color)
}

// ColorFor returns the palette color paired with shape s.
func (m Mode) ColorFor(s Shape) core.Color {
	for i, shape := range m.Shapes {
		if shape == s {
			return m.Colors[i]
		}
	}
	return core.ColorWhite
}
