// Package food places and collects the donut dropped at the start of
// every lap.
package food

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Donut is one collectible in the world.
type Donut struct {
	Pos   core.Vec3
	Spin  float64 // Rotation around the vertical axis, radians
	Scale float64 // Pulses between 1.0 and 1.2
}

// LevelBounds is where a donut may be placed.
type LevelBounds struct {
	Near, Far core.Vec2 // Ground-plane corners, Y holds world Z
	Highest   float64   // Highest segment this lap, world units
}

// Spawner owns the live donuts.
type Spawner struct {
	cfg    config.FoodConfig
	seed   int64
	rng    *rand.Rand
	donuts []Donut
}

// NewSpawner creates a spawner with a deterministic RNG.
func NewSpawner(cfg config.FoodConfig, seed int64) *Spawner {
	s := &Spawner{cfg: cfg, seed: seed}
	s.Reset()
	return s
}

// Reset removes every donut and reseeds the RNG.
func (s *Spawner) Reset() {
	s.rng = rand.New(rand.NewSource(s.seed))
	s.donuts = s.donuts[:0]
}

// Place drops a donut at a random point inside the bounds, hovering above
// the highest segment. It reports false when the bounds are not usable yet.
func (s *Spawner) Place(b LevelBounds) (Donut, bool) {
	if math.IsInf(b.Highest, 0) || math.IsNaN(b.Highest) {
		return Donut{}, false
	}
	d := Donut{
		Pos: core.V3(
			between(s.rng, b.Near.X, b.Far.X),
			b.Highest+s.cfg.Hover,
			between(s.rng, b.Near.Y, b.Far.Y),
		),
		Scale: 1,
	}
	s.donuts = append(s.donuts, d)
	return d, true
}

// Update animates the donuts and removes the ones within pickup range of
// the player. It returns how many were collected.
func (s *Spawner) Update(dt, elapsed float64, player core.Vec3) int {
	collected := 0
	kept := s.donuts[:0]
	for _, d := range s.donuts {
		if d.Pos.Sub(player).Len() < s.cfg.PickupRadius {
			collected++
			continue
		}
		d.Spin = math.Mod(d.Spin+dt*s.cfg.SpinSpeed, 2*math.Pi)
		d.Scale = 1 + math.Abs(math.Sin(elapsed))*0.2
		kept = append(kept, d)
	}
	s.donuts = kept
	return collected
}

// Donuts returns the live donuts. The slice is only valid until the next
// Place or Update.
func (s *Spawner) Donuts() []Donut {
	return s.donuts
}

// Count returns the number of live donuts.
func (s *Spawner) Count() int {
	return len(s.donuts)
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + rng.Float64()*(hi-lo)
}
