// Package config provides YAML-based game configuration loading and
// difficulty management for Pop-a-Lot.
package config

// PopConfig contains all configuration for the Pop-a-Lot game.
type PopConfig struct {
	Game       PopGame          `yaml:"game"`
	Multiplier PopMultiplier    `yaml:"multiplier"`
	Spawn      PopSpawn         `yaml:"spawn"`
	Placement  PopPlacement     `yaml:"placement"`
	RouteZone  PopRouteZone     `yaml:"route_zone"`
	Modes      []ModeConfig     `yaml:"modes"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PopGame defines run-level timing and sizing.
type PopGame struct {
	DurationSecs    int     `yaml:"duration_secs"`     // Countdown length once the first pop lands
	TargetSizePct   float64 `yaml:"target_size_pct"`   // Target diameter as % of the smaller viewport side
	SpawnIntervalMs int     `yaml:"spawn_interval_ms"` // Spawn task period
	CountdownPings  []int   `yaml:"countdown_pings"`   // Remaining seconds that trigger a ping
	FeedbackMs      int     `yaml:"feedback_ms"`       // Floating hit text lifetime
	NoticeMs        int     `yaml:"notice_ms"`         // Banner lifetime (resize notice)
	RouteLength     int     `yaml:"route_length"`      // Pro route queue length
}

// PopMultiplier defines the combo multiplier curve.
type PopMultiplier struct {
	Cap           float64 `yaml:"cap"`
	DecayRate     float64 `yaml:"decay_rate"`     // Per-second rate, scaled by half the current value
	MilestoneStep int     `yaml:"milestone_step"` // Announce every N
}

// PopSpawn defines stack (burst) randomization and selection weights.
type PopSpawn struct {
	StackChanceMin    float64 `yaml:"stack_chance_min"`
	StackChanceMax    float64 `yaml:"stack_chance_max"`
	StackMaxStart     float64 `yaml:"stack_max_start"`
	StackMaxEnd       float64 `yaml:"stack_max_end"`
	FinalStretchSecs  int     `yaml:"final_stretch_secs"`
	FinalStretchMax   int     `yaml:"final_stretch_max"`
	HighTierRoll      float64 `yaml:"high_tier_roll"`
	ExtremeTierRoll   float64 `yaml:"extreme_tier_roll"`
	HighTierFactor    int     `yaml:"high_tier_factor"`
	ExtremeTierFactor int     `yaml:"extreme_tier_factor"`
	ClusterChance     float64 `yaml:"cluster_chance"`
	StreakWeight      int     `yaml:"streak_weight"`
	RouteHeadWeight   int     `yaml:"route_head_weight"`
	RouteNextWeight   int     `yaml:"route_next_weight"`
}

// PopPlacement defines placement geometry as multiples of the target diameter.
type PopPlacement struct {
	Attempts       int     `yaml:"attempts"`
	AnchorAttempts int     `yaml:"anchor_attempts"`
	AnchorOffset   float64 `yaml:"anchor_offset"`
	EdgeInset      float64 `yaml:"edge_inset"`
	EdgeMargin     float64 `yaml:"edge_margin"`
	HeaderBand     float64 `yaml:"header_band"` // Fraction of viewport height
	MinSpacing     float64 `yaml:"min_spacing"`
	TouchDistance  float64 `yaml:"touch_distance"`
	MaxTouching    int     `yaml:"max_touching"`
}

// PopRouteZone defines the no-spawn rectangle around the route queue HUD,
// in viewport units.
type PopRouteZone struct {
	TopOffset    float64 `yaml:"top_offset"`
	PaddingX     float64 `yaml:"padding_x"`
	PaddingY     float64 `yaml:"padding_y"`
	Gap          float64 `yaml:"gap"`
	IconScale    float64 `yaml:"icon_scale"`
	MinIconSize  float64 `yaml:"min_icon_size"`
	Expansion    float64 `yaml:"expansion"` // Multiple of target diameter
	MinExpansion float64 `yaml:"min_expansion"`
}

// ModeConfig defines one playable mode. Colors and shapes are paired by index.
type ModeConfig struct {
	ID               string   `yaml:"id"`
	Title            string   `yaml:"title"`
	Description      string   `yaml:"description"`
	Colors           []string `yaml:"colors"`
	Shapes           []string `yaml:"shapes"`
	MaxTargets       int      `yaml:"max_targets"`
	BasePoints       int      `yaml:"base_points"`
	MultGainBase     float64  `yaml:"mult_gain_base"`
	SpeedThresholdMs int      `yaml:"speed_threshold_ms"`
	Route            bool     `yaml:"route"` // Streak follows the route queue by shape
}

// Mode returns the mode with the given id.
func (c PopConfig) Mode(id string) (ModeConfig, bool) {
	for _, m := range c.Modes {
		if m.ID == id {
			return m, true
		}
	}
	return ModeConfig{}, false
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = start of the ramp, 1.0 = end
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/seconds at which max difficulty is reached (0 = run duration for "time")
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.5
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset maps a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}
