package tui

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/core"
)

func TestFinalScore(t *testing.T) {
	tests := []struct {
		name  string
		stats core.RunStats
		want  int
	}{
		{"empty run", core.RunStats{}, 0},
		{"no donuts keeps score", core.RunStats{Score: 30}, 30},
		{"donuts multiply score", core.RunStats{Score: 30, Donuts: 3}, 90},
		{"distance weight", core.RunStats{Distance: 12.5}, 125},
		{"height weight", core.RunStats{MaxHeight: 1.5}, 150},
		{"all terms", core.RunStats{Score: 20, Donuts: 2, Distance: 10, MaxHeight: 2}, 40 + 100 + 200},
		{"fraction floors", core.RunStats{Distance: 0.09}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FinalScore(tt.stats); got != tt.want {
				t.Errorf("FinalScore(%+v) = %d, want %d", tt.stats, got, tt.want)
			}
		})
	}
}

func TestBreakdownEndsWithFinal(t *testing.T) {
	s := core.RunStats{Score: 20, Donuts: 2, Distance: 10, MaxHeight: 2, Laps: 3}
	lines := Breakdown(s)
	last := lines[len(lines)-1]
	if last.Label != "Final" || last.Value != "340" {
		t.Errorf("last line = %+v, want Final 340", last)
	}
	if lines[1].Value != "x2" {
		t.Errorf("donut multiplier = %q, want x2", lines[1].Value)
	}
}
