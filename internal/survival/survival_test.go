package survival

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
)

func newMachine() *Machine {
	return New(config.DefaultRunnerConfig().Survival, 20)
}

var noFloor = math.Inf(1)

func TestStallTimerTerminatesOnce(t *testing.T) {
	m := newMachine()
	const dt = 0.1

	fired := 0
	firedAt := -1
	for tick := 1; tick <= 31; tick++ {
		if m.Update(dt, Sample{ForwardVelocity: 0, Height: 1, Lowest: noFloor}) {
			fired++
			firedAt = tick
		}
	}

	if fired != 1 {
		t.Fatalf("termination fired %d times, expected 1", fired)
	}
	// 3.0s of stall is 30 ticks; crossing may land on tick 30 or 31
	if firedAt < 30 || firedAt > 31 {
		t.Errorf("fired on tick %d, expected 30 or 31", firedAt)
	}
	if m.State() != Terminated || m.Cause() != CauseStalled {
		t.Errorf("state %v cause %v", m.State(), m.Cause())
	}
}

func TestRecoveryResetsTimer(t *testing.T) {
	m := newMachine()
	slow := Sample{ForwardVelocity: 1, Height: 1, Lowest: noFloor}
	fast := Sample{ForwardVelocity: 10, Height: 1, Lowest: noFloor}

	for i := 0; i < 25; i++ {
		if m.Update(0.1, slow) {
			t.Fatal("terminated too early")
		}
	}
	if m.State() != Stalling {
		t.Fatalf("state = %v, expected stalling", m.State())
	}

	m.Update(0.1, fast)
	if m.State() != Healthy {
		t.Fatalf("state = %v after recovering, expected healthy", m.State())
	}
	if _, ok := m.Timer(); ok {
		t.Error("Timer() should report false when healthy")
	}

	// A fresh stall gets the full allowance again
	for i := 0; i < 25; i++ {
		if m.Update(0.1, slow) {
			t.Fatalf("terminated on tick %d of the second stall", i+1)
		}
	}
}

func TestFallDeath(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		lowest float64
		want   bool
	}{
		{"just below the margin", 1 - 3.01, 1, true},
		{"inside the margin", 1 - 2.99, 1, false},
		{"no lap bounds yet", -100, noFloor, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newMachine()
			got := m.Update(0.1, Sample{ForwardVelocity: 10, Height: tc.height, Lowest: tc.lowest})
			if got != tc.want {
				t.Errorf("Update() = %v, expected %v", got, tc.want)
			}
			if tc.want && m.Cause() != CauseFell {
				t.Errorf("Cause() = %v, expected fell", m.Cause())
			}
		})
	}
}

func TestFallDeathIgnoresStallTimer(t *testing.T) {
	m := newMachine()
	for i := 0; i < 5; i++ {
		m.Update(0.1, Sample{ForwardVelocity: 0, Height: 1, Lowest: 1})
	}
	if !m.Update(0.1, Sample{ForwardVelocity: 0, Height: 1 - 3.01, Lowest: 1}) {
		t.Fatal("fall should terminate while stalling")
	}
	if m.Cause() != CauseFell {
		t.Errorf("Cause() = %v, expected fell", m.Cause())
	}
}

func TestTerminatedIsAbsorbing(t *testing.T) {
	m := newMachine()
	m.Update(0.1, Sample{Height: -10, Lowest: 0})

	for i := 0; i < 50; i++ {
		if m.Update(0.1, Sample{ForwardVelocity: 20, Height: 5, Lowest: 0}) {
			t.Fatal("termination fired twice")
		}
	}
	if m.State() != Terminated {
		t.Errorf("state = %v, expected terminated", m.State())
	}

	m.Reset()
	if m.State() != Healthy || m.Cause() != CauseNone {
		t.Errorf("Reset() left state %v cause %v", m.State(), m.Cause())
	}
}

func TestTimerClamp(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Survival
	cfg.StallTime = 2
	cfg.TimerClamp = 2
	m := New(cfg, 20)

	// A single huge tick cannot push the timer below the clamp
	m.Update(100, Sample{Height: 1, Lowest: noFloor})
	if timer, _ := m.Timer(); timer < -cfg.TimerClamp {
		t.Errorf("timer %v below clamp", timer)
	}
}
