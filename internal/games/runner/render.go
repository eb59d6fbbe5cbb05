package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/survival"
)

// Visual characters for rendering
const (
	PlayerChar  = '@'
	DonutChar   = 'o'
	ProfileChar = '█'
	RuleChar    = '─'
)

// shades map relative segment height to a glyph, lowest first.
var shades = []rune{'.', ':', '-', '=', '+', '*', '#', '%', '&'}

// Render draws a top-down height map of the visible track, a side profile
// of the player's lane and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w < 20 || h < 10 {
		dst.DrawText(0, 0, "Terminal too small")
		return
	}

	profileH := max(5, h/4)
	mapH := h - 2 - profileH
	g.drawTopDown(dst, 1, mapH)
	dst.DrawHLine(0, 1+mapH, w, RuleChar)
	g.drawProfile(dst, 2+mapH, profileH)
	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		reason := "You stalled"
		if g.machine.Cause() == survival.CauseFell {
			reason = "You fell off the track"
		}
		g.drawCenteredMessage(dst, "GAME OVER", reason+"  |  Press R to restart")
	}
}

// laneRow maps a lane to a screen row of the top-down view.
func (g *Game) laneRow(lane, top, rows int) int {
	lo, hi := g.track.Lanes()
	return top + (lane-lo)*rows/(hi-lo+1)
}

// drawTopDown renders the track from above. Columns are track rows
// starting at the camera, screen rows are lanes.
func (g *Game) drawTopDown(dst *core.Screen, top, rows int) {
	cell := g.cfg.Track.CellSize
	x0 := g.camera.Pos.X
	lo, hi := g.track.Lanes()
	lanes := hi - lo + 1

	type sample struct {
		top      float64
		color    core.RGB
		collider bool
		ok       bool
	}
	grid := make([]sample, dst.Width()*rows)
	minTop, maxTop := 0.0, 0.0
	first := true
	for r := 0; r < rows; r++ {
		lane := lo + r*lanes/rows
		for c := 0; c < dst.Width(); c++ {
			p, ok := g.track.At(x0+float64(c)*cell, float64(lane)*cell)
			if !ok {
				continue
			}
			grid[r*dst.Width()+c] = sample{p.Top, p.Color, p.Collider, true}
			if first || p.Top < minTop {
				minTop = p.Top
			}
			if first || p.Top > maxTop {
				maxTop = p.Top
			}
			first = false
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < dst.Width(); c++ {
			s := grid[r*dst.Width()+c]
			if !s.ok {
				continue
			}
			idx := 0
			if maxTop > minTop {
				idx = int((s.top - minTop) / (maxTop - minTop) * float64(len(shades)-1))
			}
			if s.collider {
				dst.SetColored(c, top+r, shades[idx], core.ColorBrightYellow)
			} else {
				dst.SetRGB(c, top+r, shades[idx], s.color)
			}
		}
	}

	for _, d := range g.food.Donuts() {
		col := int((d.Pos.X - x0) / cell)
		lane := int(math.Round(d.Pos.Z / cell))
		dst.SetColored(col, g.laneRow(core.Clamp(lane, lo, hi), top, rows), DonutChar, core.ColorBrightMagenta)
	}

	pos := g.player.Position
	col := int((pos.X - x0) / cell)
	lane := core.Clamp(int(math.Round(pos.Z/cell)), lo, hi)
	dst.SetColored(col, g.laneRow(lane, top, rows), PlayerChar, core.ColorBrightRed)
}

// drawProfile renders the player's lane from the side.
func (g *Game) drawProfile(dst *core.Screen, top, rows int) {
	cell := g.cfg.Track.CellSize
	x0 := g.camera.Pos.X
	pos := g.player.Position

	yMax := pos.Y + g.cfg.Player.HalfExtent
	tops := make([]float64, dst.Width())
	colors := make([]core.RGB, dst.Width())
	present := make([]bool, dst.Width())
	for c := range tops {
		p, ok := g.track.At(x0+float64(c)*cell, pos.Z)
		if !ok {
			continue
		}
		tops[c], colors[c], present[c] = p.Top, p.Color, true
		yMax = max(yMax, p.Top)
	}
	yMax += 0.2
	scale := float64(rows) / yMax
	bottom := top + rows - 1

	for c := range tops {
		if !present[c] {
			continue
		}
		bar := core.Clamp(int(tops[c]*scale+0.5), 1, rows)
		for i := 0; i < bar; i++ {
			dst.SetRGB(c, bottom-i, ProfileChar, colors[c])
		}
	}

	py := bottom - core.Clamp(int(pos.Y*scale), 0, rows-1)
	dst.SetColored(int((pos.X-x0)/cell), py, PlayerChar, core.ColorBrightRed)
}

// drawHUD renders the run readout on the top line.
func (g *Game) drawHUD(dst *core.Screen) {
	s := g.Stats()
	left := fmt.Sprintf(" Score: %d  Donuts: %d  Dist: %.1f  Lap: %d ", s.Score, s.Donuts, s.Distance, s.Laps)
	dst.DrawText(2, 0, left)

	right := fmt.Sprintf(" Spd: %.1f ", s.Speed)
	if s.Stalling {
		right = fmt.Sprintf(" STALL %.1f ", s.StallLeft) + right
		dst.DrawTextColored(dst.Width()-len(right)-2, 0, right, core.ColorBrightRed)
		return
	}
	dst.DrawText(dst.Width()-len(right)-2, 0, right)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}
