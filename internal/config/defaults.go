package config

import (
	_ "embed"
)

//go:embed defaults/pop.yaml
var defaultPopYAML []byte

// DefaultPopConfig returns the default Pop-a-Lot configuration.
func DefaultPopConfig() PopConfig {
	return PopConfig{
		Game: PopGame{
			DurationSecs:    30,
			TargetSizePct:   17.5,
			SpawnIntervalMs: 100,
			CountdownPings:  []int{10, 5, 3, 2, 1},
			FeedbackMs:      800,
			NoticeMs:        2000,
			RouteLength:     3,
		},
		Multiplier: PopMultiplier{
			Cap:           20.0,
			DecayRate:     0.08,
			MilestoneStep: 10,
		},
		Spawn: PopSpawn{
			StackChanceMin:    0.1,
			StackChanceMax:    0.3,
			StackMaxStart:     5,
			StackMaxEnd:       10,
			FinalStretchSecs:  5,
			FinalStretchMax:   15,
			HighTierRoll:      0.90,
			ExtremeTierRoll:   0.95,
			HighTierFactor:    3,
			ExtremeTierFactor: 5,
			ClusterChance:     0.35,
			StreakWeight:      4,
			RouteHeadWeight:   7,
			RouteNextWeight:   3,
		},
		Placement: PopPlacement{
			Attempts:       50,
			AnchorAttempts: 15,
			AnchorOffset:   1.05,
			EdgeInset:      0.85,
			EdgeMargin:     0.6,
			HeaderBand:     0.15,
			MinSpacing:     0.8,
			TouchDistance:  1.1,
			MaxTouching:    1,
		},
		RouteZone: PopRouteZone{
			TopOffset:    8,
			PaddingX:     2,
			PaddingY:     1,
			Gap:          2,
			IconScale:    0.75,
			MinIconSize:  4,
			Expansion:    1.15,
			MinExpansion: 4,
		},
		Modes: []ModeConfig{
			{
				ID:               "arcade",
				Title:            "Arcade",
				Description:      "Chain pops of one color to grow the multiplier.",
				Colors:           []string{"#EF4444", "#3B82F6", "#22C55E"},
				Shapes:           []string{"circle", "square", "triangle"},
				MaxTargets:       10,
				BasePoints:       10,
				MultGainBase:     0.3,
				SpeedThresholdMs: 170,
			},
			{
				ID:          "pro",
				Title:       "Pro",
				Description: "Follow the route queue. Wrong shapes reset the streak.",
				Colors: []string{
					"#EF4444", "#3B82F6", "#22C55E", "#EAB308",
					"#A855F7", "#F97316", "#06B6D4",
				},
				Shapes: []string{
					"circle", "square", "triangle", "star",
					"pentagon", "hexagon", "diamond",
				},
				MaxTargets:       15,
				BasePoints:       18,
				MultGainBase:     0.3,
				SpeedThresholdMs: 170,
				Route:            true,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 0,
			},
		},
	}
}
