// Package math provides small vector helpers for the map plane.
package math

import "math"

// Vec2 is a point or direction on the map plane, in cell units.
type Vec2 struct {
	X, Y float64
}

// FromAngle returns the unit vector pointing along angle (radians, from +X towards +Y).
func FromAngle(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// Along returns the point reached by walking t units from v in direction dir.
func (v Vec2) Along(dir Vec2, t float64) Vec2 {
	return Vec2{v.X + t*dir.X, v.Y + t*dir.Y}
}

// Cell returns the integer grid cell containing v. Negative coordinates
// round down, so -0.5 lands in cell -1 rather than 0.
func (v Vec2) Cell() (int, int) {
	return int(math.Floor(v.X)), int(math.Floor(v.Y))
}

// CenterOffset returns the signed offset of each coordinate from the nearest
// cell boundary grid line, in [-0.5, 0.5).
func (v Vec2) CenterOffset() Vec2 {
	return Vec2{v.X - math.Floor(v.X+0.5), v.Y - math.Floor(v.Y+0.5)}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
