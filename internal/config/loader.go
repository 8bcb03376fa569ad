package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched for in the config directories.
const ConfigFile = "pop.yaml"

// LoadPop loads Pop-a-Lot configuration.
// Search order: customPath -> ~/.popalot/configs/pop.yaml -> ./configs/pop.yaml -> embedded default
//
// Only an explicitly requested file is reported as an error. Broken files
// found on the search path are skipped.
func LoadPop(customPath string) (PopConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readPop(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if cfg, err := readPop(userCfgPath); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := readPop(filepath.Join("configs", ConfigFile)); err == nil && cfg.Validate() == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := ParsePop(defaultPopYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultPopConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParsePop decodes YAML on top of the hardcoded defaults, so a partial
// file only overrides the keys it sets.
func ParsePop(data []byte) (PopConfig, error) {
	cfg := DefaultPopConfig()
	// Lists replace rather than merge.
	cfg.Modes = nil
	cfg.Game.CountdownPings = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	def := DefaultPopConfig()
	if len(cfg.Modes) == 0 {
		cfg.Modes = def.Modes
	}
	if cfg.Game.CountdownPings == nil {
		cfg.Game.CountdownPings = def.Game.CountdownPings
	}
	return cfg, nil
}

func readPop(path string) (PopConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PopConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := ParsePop(data)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// UserConfigPath returns the path to the user config file, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".popalot", "configs", ConfigFile)
}

// ApplyPopPreset modifies the config based on a difficulty preset.
func ApplyPopPreset(cfg *PopConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust combo forgiveness based on difficulty.
	// Modes are copied so a shared config is never mutated.
	cfg.Modes = slices.Clone(cfg.Modes)
	switch preset {
	case DifficultyEasy:
		cfg.Multiplier.DecayRate *= 0.5
		for i := range cfg.Modes {
			cfg.Modes[i].SpeedThresholdMs = cfg.Modes[i].SpeedThresholdMs * 3 / 2
		}
	case DifficultyHard:
		cfg.Multiplier.DecayRate *= 1.5
	}
}

// Validate reports every structural problem in the configuration.
// Shape names are checked by the game package, which owns the shape set.
func (c PopConfig) Validate() error {
	var errs []error

	if c.Game.DurationSecs <= 0 {
		errs = append(errs, errors.New("game.duration_secs must be positive"))
	}
	if c.Game.TargetSizePct <= 0 || c.Game.TargetSizePct > 100 {
		errs = append(errs, fmt.Errorf("game.target_size_pct %.2f out of range (0, 100]", c.Game.TargetSizePct))
	}
	if c.Game.SpawnIntervalMs <= 0 {
		errs = append(errs, errors.New("game.spawn_interval_ms must be positive"))
	}
	if c.Game.RouteLength <= 0 {
		errs = append(errs, errors.New("game.route_length must be positive"))
	}
	if c.Multiplier.Cap < 1 {
		errs = append(errs, fmt.Errorf("multiplier.cap %.2f below 1.0", c.Multiplier.Cap))
	}
	if c.Multiplier.DecayRate < 0 {
		errs = append(errs, errors.New("multiplier.decay_rate must not be negative"))
	}
	if c.Multiplier.MilestoneStep <= 0 {
		errs = append(errs, errors.New("multiplier.milestone_step must be positive"))
	}
	if c.Placement.Attempts <= 0 {
		errs = append(errs, errors.New("placement.attempts must be positive"))
	}
	if c.Placement.MinSpacing > c.Placement.TouchDistance {
		errs = append(errs, errors.New("placement.min_spacing exceeds touch_distance"))
	}

	switch c.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q unknown", c.Difficulty.Progression.Type))
	}
	if c.Difficulty.Progression.MaxAt < 0 {
		errs = append(errs, errors.New("difficulty.progression.max_at must not be negative"))
	}

	if len(c.Modes) == 0 {
		errs = append(errs, errors.New("no modes defined"))
	}
	seen := make(map[string]bool, len(c.Modes))
	for i, m := range c.Modes {
		if m.ID == "" {
			errs = append(errs, fmt.Errorf("modes[%d]: missing id", i))
			continue
		}
		if seen[m.ID] {
			errs = append(errs, fmt.Errorf("modes[%d]: duplicate id %q", i, m.ID))
		}
		seen[m.ID] = true
		if err := m.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("mode %s: %w", m.ID, err))
		}
	}

	return errors.Join(errs...)
}

// Validate checks a single mode definition.
func (m ModeConfig) Validate() error {
	var errs []error
	if len(m.Colors) == 0 {
		errs = append(errs, errors.New("empty palette"))
	}
	if len(m.Colors) != len(m.Shapes) {
		errs = append(errs, fmt.Errorf("%d colors but %d shapes", len(m.Colors), len(m.Shapes)))
	}
	if m.MaxTargets <= 0 {
		errs = append(errs, errors.New("max_targets must be positive"))
	}
	if m.BasePoints <= 0 {
		errs = append(errs, errors.New("base_points must be positive"))
	}
	if m.MultGainBase < 0 {
		errs = append(errs, errors.New("mult_gain_base must not be negative"))
	}
	if m.SpeedThresholdMs < 0 {
		errs = append(errs, errors.New("speed_threshold_ms must not be negative"))
	}
	return errors.Join(errs...)
}
