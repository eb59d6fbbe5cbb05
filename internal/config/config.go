// Package config provides YAML/TOML-based run configuration loading,
// validation and difficulty presets for the runner.
package config

import "github.com/vovakirdan/tui-runner/internal/core"

// RunnerConfig contains all configuration for one run.
type RunnerConfig struct {
	Track    TrackConfig    `yaml:"track" toml:"track"`
	Player   PlayerConfig   `yaml:"player" toml:"player"`
	Survival SurvivalConfig `yaml:"survival" toml:"survival"`
	Food     FoodConfig     `yaml:"food" toml:"food"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
}

// TrackConfig defines the recycle queue geometry and growth rules.
type TrackConfig struct {
	CellSize         float64  `yaml:"cell_size" toml:"cell_size"`                 // World size of one segment edge
	Rows             int      `yaml:"rows" toml:"rows"`                           // NUMBER_OF_ROWS, whole queue
	LiveRows         int      `yaml:"live_rows" toml:"live_rows"`                 // NUMBER_OF_LIVE_ROWS, materialized window
	Columns          int      `yaml:"columns" toml:"columns"`                     // NUMBER_OF_COLUMNS, lanes per row
	BaseHeight       float64  `yaml:"base_height" toml:"base_height"`             // Height of every segment at build time
	MinHeight        float64  `yaml:"min_height" toml:"min_height"`               // Floor no segment may go below
	DistanceIncrease float64  `yaml:"distance_increase" toml:"distance_increase"` // Lap growth factor minus one
	GrowthStep       float64  `yaml:"growth_step" toml:"growth_step"`             // Height added behind the player per tick
	ColliderRadius   float64  `yaml:"collider_radius" toml:"collider_radius"`     // Planar distance with active colliders
	GrowthRadius     float64  `yaml:"growth_radius" toml:"growth_radius"`         // Planar distance where segments grow
	Color            core.RGB `yaml:"color" toml:"color"`                         // Base segment color
	ColorJitter      float64  `yaml:"color_jitter" toml:"color_jitter"`           // Max per-spawn color shift
}

// PlayerConfig defines locomotion parameters.
type PlayerConfig struct {
	Speed         float64   `yaml:"speed" toml:"speed"`                   // Max velocity length
	RotationSpeed float64   `yaml:"rotation_speed" toml:"rotation_speed"` // Turn rate; facing currently snaps to the motion angle
	Friction      float64   `yaml:"friction" toml:"friction"`             // Velocity kept after one second
	ForwardAccel  float64   `yaml:"forward_acceleration" toml:"forward_acceleration"`
	Gravity       float64   `yaml:"gravity" toml:"gravity"`
	JumpImpulse   float64   `yaml:"jump_impulse" toml:"jump_impulse"`
	CoyoteTime    float64   `yaml:"coyote_time" toml:"coyote_time"`       // Cooldown floor while grounded
	MinTurnSpeed  float64   `yaml:"min_turn_speed" toml:"min_turn_speed"` // Velocity needed to update facing
	HalfExtent    float64   `yaml:"half_extent" toml:"half_extent"`       // Half size of the player box
	StepHeight    float64   `yaml:"step_height" toml:"step_height"`       // Max ledge the controller climbs
	Start         core.Vec3 `yaml:"start" toml:"start"`
}

// SurvivalConfig defines stall and fall termination rules.
type SurvivalConfig struct {
	StallFraction float64 `yaml:"stall_fraction" toml:"stall_fraction"` // Fraction of max speed below which the run stalls
	StallTime     float64 `yaml:"stall_time" toml:"stall_time"`         // Seconds of stall before termination
	FallMargin    float64 `yaml:"fall_margin" toml:"fall_margin"`       // Distance below lowest segment that kills
	TimerClamp    float64 `yaml:"timer_clamp" toml:"timer_clamp"`       // Symmetric clamp for the stall timer
}

// FoodConfig defines collectible parameters.
type FoodConfig struct {
	PickupRadius float64 `yaml:"pickup_radius" toml:"pickup_radius"`
	ScoreValue   int     `yaml:"score_value" toml:"score_value"`
	Hover        float64 `yaml:"hover" toml:"hover"` // Height above the highest segment
	SpinSpeed    float64 `yaml:"spin_speed" toml:"spin_speed"`
}

// CameraConfig defines how the camera trails the player.
type CameraConfig struct {
	OffsetX float64 `yaml:"offset_x" toml:"offset_x"`
	OffsetY float64 `yaml:"offset_y" toml:"offset_y"`
	Speed   float64 `yaml:"speed" toml:"speed"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every known preset in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset maps a CLI string to a preset. Unknown strings map to "".
func ParsePreset(s string) DifficultyPreset {
	for _, p := range Presets {
		if string(p) == s {
			return p
		}
	}
	return ""
}
