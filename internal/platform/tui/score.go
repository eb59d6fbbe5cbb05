package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Final score weights.
const (
	DistanceWeight = 10
	HeightWeight   = 100
)

// ScoreLine is one row of the game over breakdown.
type ScoreLine struct {
	Label string
	Value string
}

// FinalScore combines a finished run into a single number:
// score x max(donuts, 1) + distance x 10 + max height x 100.
func FinalScore(s core.RunStats) int {
	multiplier := max(s.Donuts, 1)
	total := float64(s.Score*multiplier) +
		s.Distance*DistanceWeight +
		s.MaxHeight*HeightWeight
	if math.IsNaN(total) || total < 0 {
		return 0
	}
	return int(math.Floor(total))
}

// Breakdown returns the labelled terms of FinalScore in display order.
func Breakdown(s core.RunStats) []ScoreLine {
	return []ScoreLine{
		{"Score", fmt.Sprintf("%d", s.Score)},
		{"Donuts", fmt.Sprintf("x%d", max(s.Donuts, 1))},
		{"Distance", fmt.Sprintf("%.1f m  +%d", s.Distance, int(s.Distance*DistanceWeight))},
		{"Max height", fmt.Sprintf("%.2f m  +%d", s.MaxHeight, int(s.MaxHeight*HeightWeight))},
		{"Laps", fmt.Sprintf("%d", s.Laps)},
		{"Final", fmt.Sprintf("%d", FinalScore(s))},
	}
}
