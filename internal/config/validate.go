package config

import (
	"errors"
	"fmt"
)

// Validate rejects configurations the simulation cannot run with.
// The track code assumes these invariants unconditionally, so they are
// checked once here rather than on every tick.
func (c RunnerConfig) Validate() error {
	return errors.Join(c.Track.Validate(), c.Player.Validate(), c.Survival.Validate())
}

// Validate checks the track geometry.
func (t TrackConfig) Validate() error {
	var errs []error
	if t.Rows <= 0 {
		errs = append(errs, fmt.Errorf("config: track.rows must be positive, got %d", t.Rows))
	}
	if t.LiveRows <= 0 {
		errs = append(errs, fmt.Errorf("config: track.live_rows must be positive, got %d", t.LiveRows))
	}
	if t.LiveRows > t.Rows {
		errs = append(errs, fmt.Errorf("config: track.live_rows (%d) exceeds track.rows (%d)", t.LiveRows, t.Rows))
	}
	if t.Columns <= 0 {
		errs = append(errs, fmt.Errorf("config: track.columns must be positive, got %d", t.Columns))
	}
	if t.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("config: track.cell_size must be positive, got %g", t.CellSize))
	}
	if t.MinHeight <= 0 {
		errs = append(errs, fmt.Errorf("config: track.min_height must be positive, got %g", t.MinHeight))
	}
	if t.BaseHeight < t.MinHeight {
		errs = append(errs, fmt.Errorf("config: track.base_height (%g) is below track.min_height (%g)", t.BaseHeight, t.MinHeight))
	}
	if t.DistanceIncrease < 0 {
		errs = append(errs, fmt.Errorf("config: track.distance_increase must not be negative, got %g", t.DistanceIncrease))
	}
	if t.GrowthStep < 0 {
		errs = append(errs, fmt.Errorf("config: track.growth_step must not be negative, got %g", t.GrowthStep))
	}
	return errors.Join(errs...)
}

// Validate checks locomotion parameters.
func (p PlayerConfig) Validate() error {
	var errs []error
	if p.Speed <= 0 {
		errs = append(errs, fmt.Errorf("config: player.speed must be positive, got %g", p.Speed))
	}
	if p.Friction <= 0 || p.Friction >= 1 {
		errs = append(errs, fmt.Errorf("config: player.friction must be in (0, 1), got %g", p.Friction))
	}
	if p.HalfExtent <= 0 {
		errs = append(errs, fmt.Errorf("config: player.half_extent must be positive, got %g", p.HalfExtent))
	}
	return errors.Join(errs...)
}

// Validate checks the survival thresholds.
func (s SurvivalConfig) Validate() error {
	var errs []error
	if s.StallTime <= 0 {
		errs = append(errs, fmt.Errorf("config: survival.stall_time must be positive, got %g", s.StallTime))
	}
	if s.TimerClamp < s.StallTime {
		errs = append(errs, fmt.Errorf("config: survival.timer_clamp (%g) is below survival.stall_time (%g)", s.TimerClamp, s.StallTime))
	}
	if s.StallFraction < 0 || s.StallFraction >= 1 {
		errs = append(errs, fmt.Errorf("config: survival.stall_fraction must be in [0, 1), got %g", s.StallFraction))
	}
	return errors.Join(errs...)
}
