package track

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// liveSegment is a segment materialized in the world.
type liveSegment struct {
	Segment
	x, z           float64
	collider       bool
	colliderHeight float64 // Height the attached collider was sized for
}

// liveRow records where a live row was placed.
type liveRow struct {
	id   int
	x    float64
	slot int // Spawn position, x = slot * CellSize
}

// Manager owns the recycle queue and every live segment of one run.
// All mutation happens through Spawn, Update and Shift; world-side effects
// are staged as commands and applied by Flush.
type Manager struct {
	cfg  config.TrackConfig
	seed int64
	rng  *rand.Rand

	queue RecycleQueue
	arena map[core.CellKey]*liveSegment
	rows  []liveRow   // Live rows in spawn order
	slots map[int]int // Spawn position -> row id

	frontier        int
	score           int
	lowest, highest float64
	laps            int
	lapTriggers     int

	minLane, maxLane int
	commands         []Command
}

// NewManager validates the track configuration and builds a fresh track.
// Configuration violations are reported here; every other operation
// assumes a valid configuration.
func NewManager(cfg config.TrackConfig, seed int64) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("track: invalid configuration: %w", err)
	}
	m := &Manager{
		cfg:     cfg,
		seed:    seed,
		minLane: -cfg.Columns / 2,
	}
	m.maxLane = m.minLane + cfg.Columns - 1
	m.Reset()
	return m, nil
}

// Reset clears all state, rebuilds the full queue at base height and
// spawns the initial live window. The first row spawned carries row id 0,
// so a reset always starts lap one.
func (m *Manager) Reset() {
	m.rng = rand.New(rand.NewSource(m.seed))
	m.queue.Clear()
	m.arena = make(map[core.CellKey]*liveSegment, m.cfg.LiveRows*m.cfg.Columns)
	m.rows = m.rows[:0]
	m.slots = make(map[int]int, m.cfg.LiveRows)
	m.frontier = 0
	m.score = 0
	m.laps = 0
	m.lapTriggers = 0
	m.lowest = math.Inf(1)
	m.highest = math.Inf(-1)
	m.commands = m.commands[:0]

	for id := 0; id < m.cfg.Rows; id++ {
		row := Row{ID: id, Segments: make([]Segment, 0, m.cfg.Columns)}
		for lane := m.minLane; lane <= m.maxLane; lane++ {
			row.Segments = append(row.Segments, Segment{
				RowID:  id,
				Lane:   lane,
				Height: m.cfg.BaseHeight,
				Color:  m.cfg.Color,
			})
		}
		m.queue.PushBack(row)
	}

	m.Spawn(m.cfg.LiveRows)
}

// Spawn pops up to n rows from the queue head and places them at the
// frontier. Every spawned segment grows by the lap factor. Popping row 0
// starts a new lap: the level bounds are reset and a lap trigger is queued.
// It returns the number of rows spawned; an empty queue spawns nothing.
func (m *Manager) Spawn(n int) int {
	spawned := 0
	for spawned < n {
		row, ok := m.queue.PopFront()
		if !ok {
			break
		}
		if row.ID == 0 {
			m.lowest = math.Inf(1)
			m.highest = math.Inf(-1)
			m.laps++
			m.lapTriggers++
		}

		slot := m.frontier + spawned
		x := float64(slot) * m.cfg.CellSize
		for _, seg := range row.Segments {
			seg.Height = max(seg.Height*(1+m.cfg.DistanceIncrease), m.cfg.MinHeight)
			m.lowest = min(m.lowest, seg.Height)
			m.highest = max(m.highest, seg.Height)
			seg.Color = m.jitter(seg.Color)

			ls := &liveSegment{Segment: seg, x: x, z: float64(seg.Lane) * m.cfg.CellSize}
			m.arena[seg.Key()] = ls
			m.stage(Command{
				Kind:   CmdSpawn,
				Key:    seg.Key(),
				Pos:    core.V3(ls.x, 0, ls.z),
				Height: seg.Height,
				Box:    m.box(ls),
				Color:  seg.Color,
			})
		}
		m.rows = append(m.rows, liveRow{id: row.ID, x: x, slot: slot})
		m.slots[slot] = row.ID
		spawned++
	}
	m.frontier += spawned
	return spawned
}

// Update toggles colliders around the player and grows the ground just
// behind them. The two rules are evaluated independently, so a segment can
// lose its collider and grow in the same tick.
func (m *Manager) Update(player core.Vec3) {
	half := m.cfg.CellSize / 2
	for _, r := range m.rows {
		for lane := m.minLane; lane <= m.maxLane; lane++ {
			s := m.arena[core.CellKey{Row: r.id, Lane: lane}]
			if s == nil {
				continue
			}
			dist := math.Hypot(s.x-player.X, s.z-player.Z)
			ahead := s.x > player.X

			if dist > m.cfg.ColliderRadius || !ahead {
				if s.collider {
					s.collider = false
					m.stage(Command{Kind: CmdDetachCollider, Key: s.Key(), Pos: core.V3(s.x, 0, s.z), Height: s.Height})
				}
			}
			if dist <= m.cfg.ColliderRadius && ahead {
				if !s.collider || s.colliderHeight != s.Height {
					s.collider = true
					s.colliderHeight = s.Height
					m.stage(Command{Kind: CmdAttachCollider, Key: s.Key(), Pos: core.V3(s.x, 0, s.z), Height: s.Height, Box: m.box(s)})
				}
			}

			if dist < m.cfg.GrowthRadius && player.X-s.x >= half {
				s.Height += m.cfg.GrowthStep
				m.stage(Command{Kind: CmdResize, Key: s.Key(), Pos: core.V3(s.x, 0, s.z), Height: s.Height, Box: m.box(s), Color: s.Color})
			}
		}
	}
}

// Shift recycles every live segment behind cameraX. Captured segments are
// regrouped into rows, each row is restored to lane order and the rows are
// appended to the queue tail in track order. The same number of rows is
// then spawned at the frontier. It returns the number of rows recycled.
func (m *Manager) Shift(cameraX float64) int {
	grouped := make(map[int][]Segment)
	rowX := make(map[int]float64)
	for key, s := range m.arena {
		if s.x < cameraX {
			grouped[key.Row] = append(grouped[key.Row], s.Segment)
			rowX[key.Row] = s.x
			delete(m.arena, key)
		}
	}
	if len(grouped) == 0 {
		return 0
	}

	ids := make([]int, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if rowX[ids[i]] != rowX[ids[j]] {
			return rowX[ids[i]] < rowX[ids[j]]
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		segs := grouped[id]
		sort.Slice(segs, func(i, j int) bool { return segs[i].Lane < segs[j].Lane })
		for _, seg := range segs {
			m.stage(Command{Kind: CmdDespawn, Key: seg.Key(), Pos: core.V3(rowX[id], 0, float64(seg.Lane)*m.cfg.CellSize), Height: seg.Height})
		}
		m.queue.PushBack(Row{ID: id, Segments: segs})
	}

	kept := m.rows[:0]
	for _, r := range m.rows {
		if _, gone := grouped[r.id]; gone {
			delete(m.slots, r.slot)
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept

	m.Spawn(len(ids))
	return len(ids)
}

// CurrentLevelSize returns the ground-plane bounds of the live window as
// (near, far) corners. X is longitudinal and Y holds the lateral Z.
func (m *Manager) CurrentLevelSize() (near, far core.Vec2) {
	cell := m.cfg.CellSize
	farX := float64(m.frontier-1) * cell
	nearX := float64(m.frontier-m.cfg.LiveRows) * cell
	return core.Vec2{X: nearX, Y: float64(m.minLane) * cell},
		core.Vec2{X: farX, Y: float64(m.maxLane) * cell}
}

// CurrentLevelHeights returns the lowest and highest segment heights seen
// this lap, in world units. Both are infinite until a segment of the lap
// has been spawned.
func (m *Manager) CurrentLevelHeights() (lowest, highest float64) {
	return m.lowest * m.cfg.CellSize, m.highest * m.cfg.CellSize
}

// At returns the live segment under the ground-plane point (x, z).
func (m *Manager) At(x, z float64) (Placed, bool) {
	slot := int(math.Round(x / m.cfg.CellSize))
	id, ok := m.slots[slot]
	if !ok {
		return Placed{}, false
	}
	lane := int(math.Round(z / m.cfg.CellSize))
	return m.Segment(core.CellKey{Row: id, Lane: lane})
}

// SurfaceAt returns the world height of the upper face of the live segment
// under (x, z).
func (m *Manager) SurfaceAt(x, z float64) (float64, bool) {
	p, ok := m.At(x, z)
	return p.Top, ok
}

// EachLive calls fn for every live segment, row by row in track order and
// lane by lane within a row.
func (m *Manager) EachLive(fn func(p Placed)) {
	for _, r := range m.rows {
		for lane := m.minLane; lane <= m.maxLane; lane++ {
			s := m.arena[core.CellKey{Row: r.id, Lane: lane}]
			if s == nil {
				continue
			}
			fn(Placed{Segment: s.Segment, X: s.x, Z: s.z, Top: m.top(s), Collider: s.collider})
		}
	}
}

// Segment returns the live segment stored under key.
func (m *Manager) Segment(key core.CellKey) (Placed, bool) {
	s := m.arena[key]
	if s == nil {
		return Placed{}, false
	}
	return Placed{Segment: s.Segment, X: s.x, Z: s.z, Top: m.top(s), Collider: s.collider}, true
}

// TakeLapTriggers returns the number of laps started since the last call
// and clears the counter.
func (m *Manager) TakeLapTriggers() int {
	n := m.lapTriggers
	m.lapTriggers = 0
	return n
}

// Score returns the run score.
func (m *Manager) Score() int { return m.score }

// AddScore increases the score. Negative amounts are ignored so the score
// never decreases.
func (m *Manager) AddScore(n int) {
	if n > 0 {
		m.score += n
	}
}

// Frontier returns the number of rows spawned since the last reset.
func (m *Manager) Frontier() int { return m.frontier }

// LiveRows returns the number of rows materialized in the world.
func (m *Manager) LiveRows() int { return len(m.rows) }

// DormantRows returns the number of rows waiting in the queue.
func (m *Manager) DormantRows() int { return m.queue.Len() }

// Laps returns the number of laps started, including the first.
func (m *Manager) Laps() int { return m.laps }

// Lanes returns the inclusive lane range.
func (m *Manager) Lanes() (lo, hi int) { return m.minLane, m.maxLane }

// Config returns the track configuration.
func (m *Manager) Config() config.TrackConfig { return m.cfg }

func (m *Manager) top(s *liveSegment) float64 {
	return s.Height * m.cfg.CellSize / 2
}

// box is the segment's extent: one cell wide and deep, centered on the
// ground plane, Height cells tall.
func (m *Manager) box(s *liveSegment) core.Box {
	half := m.cfg.CellSize / 2
	return core.BoxAround(core.V3(s.x, 0, s.z), core.V3(half, half*s.Height, half))
}

func (m *Manager) jitter(c core.RGB) core.RGB {
	d := m.rng.Float64() * m.cfg.ColorJitter
	return core.RGB{R: c.R - d, G: c.G - d, B: c.B - d}.Clamped()
}
