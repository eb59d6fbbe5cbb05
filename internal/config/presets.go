package config

// ApplyPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded values; the other presets tune how fast the
// ground rises and how long a stall is tolerated.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Track.DistanceIncrease = 0.05
		cfg.Track.GrowthStep = 0.3
		cfg.Survival.StallTime = 3.0
	case DifficultyHard:
		cfg.Track.DistanceIncrease = 0.2
		cfg.Track.GrowthStep = 0.9
		cfg.Survival.StallTime = 1.5
	case DifficultyFixed:
		// No lap growth: the track only rises where the player has run.
		cfg.Track.DistanceIncrease = 0
	}
	if cfg.Survival.TimerClamp < cfg.Survival.StallTime {
		cfg.Survival.TimerClamp = cfg.Survival.StallTime
	}
}

// PresetTitle returns the display name for a preset.
func PresetTitle(preset DifficultyPreset) string {
	switch preset {
	case DifficultyEasy:
		return "Stack Runner (Easy)"
	case DifficultyNormal:
		return "Stack Runner"
	case DifficultyHard:
		return "Stack Runner (Hard)"
	case DifficultyFixed:
		return "Stack Runner (Flat Laps)"
	default:
		return "Stack Runner"
	}
}
