package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-runner/internal/core"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}

// DefaultRunnerConfig returns the hardcoded default configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file
// cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Track: TrackConfig{
			CellSize:         0.3,
			Rows:             200,
			LiveRows:         100,
			Columns:          30,
			BaseHeight:       2.0,
			MinHeight:        0.1,
			DistanceIncrease: 0.1,
			GrowthStep:       0.6,
			ColliderRadius:   2.0,
			GrowthRadius:     0.5,
			Color:            core.RGB{R: 0.55, G: 0.78, B: 0.62},
			ColorJitter:      0.1,
		},
		Player: PlayerConfig{
			Speed:         20.0,
			RotationSpeed: 1.0,
			Friction:      0.1,
			ForwardAccel:  20.0,
			Gravity:       4.0,
			JumpImpulse:   10.0,
			CoyoteTime:    0.2,
			MinTurnSpeed:  1.0,
			HalfExtent:    0.25,
			StepHeight:    0.35,
			Start:         core.V3(0, 1.5, 0),
		},
		Survival: SurvivalConfig{
			StallFraction: 0.1,
			StallTime:     3.0,
			FallMargin:    3.0,
			TimerClamp:    3.0,
		},
		Food: FoodConfig{
			PickupRadius: 1.0,
			ScoreValue:   10,
			Hover:        0.5,
			SpinSpeed:    1.2,
		},
		Camera: CameraConfig{
			OffsetX: -2.8,
			OffsetY: 0.75,
			Speed:   20.0,
		},
	}
}
