package core

import "math"

// Vec2 is a planar point. The runner uses it for (longitudinal, lateral)
// pairs, so Y holds the world Z coordinate.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a world-space vector. X is forward along the track, Y is up and
// Z is lateral.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// LenSq returns the squared length.
func (v Vec3) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Len returns the length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Planar drops the vertical component.
func (v Vec3) Planar() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// PlanarDist returns the distance between v and o on the ground plane.
func (v Vec3) PlanarDist(o Vec3) float64 {
	return v.Planar().Sub(o.Planar()).Len()
}

// ClampLen scales v down so its length does not exceed max.
// Vectors already within max are returned unchanged.
func (v Vec3) ClampLen(max float64) Vec3 {
	lsq := v.LenSq()
	if lsq <= max*max || lsq == 0 {
		return v
	}
	return v.Scale(max / math.Sqrt(lsq))
}

// ZeroSignum maps each component to -1, 0 or 1, treating anything inside
// (-0.1, 0.1) as zero.
func (v Vec3) ZeroSignum() Vec3 {
	return Vec3{zeroSignum(v.X), zeroSignum(v.Y), zeroSignum(v.Z)}
}

func zeroSignum(n float64) float64 {
	switch {
	case n < 0.1 && n > -0.1:
		return 0
	case n > 0:
		return 1
	default:
		return -1
	}
}

// IsFinite reports whether every component is a finite number.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Box is an axis-aligned bounding box in world space.
type Box struct {
	Min, Max Vec3
}

// BoxAround builds a box from its center and half extents.
func BoxAround(center, half Vec3) Box {
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the midpoint of the box.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Intersects returns true if the boxes overlap with positive volume.
// Touching faces do not count as overlap.
func (b Box) Intersects(o Box) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y &&
		b.Min.Z < o.Max.Z && o.Min.Z < b.Max.Z
}

// OverlapsPlanar returns true if the boxes overlap on the X/Z plane,
// ignoring height.
func (b Box) OverlapsPlanar(o Box) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Z < o.Max.Z && o.Min.Z < b.Max.Z
}

// Translate returns the box moved by d.
func (b Box) Translate(d Vec3) Box {
	return Box{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// CellKey identifies one track segment by its logical row and lateral slot.
// It stays stable while the segment is live, unlike any engine-side handle.
type CellKey struct {
	Row  int
	Lane int
}
