package raycast

import (
	gomath "math"

	"github.com/Faultbox/midgard-ray/internal/gridmap"
	"github.com/Faultbox/midgard-ray/pkg/math"
)

// Hit describes where a ray stopped.
type Hit struct {
	OK           bool      // false if the ray ran out of budget
	Distance     float64   // distance along the ray (not perpendicular)
	Point        math.Vec2 // hit position on the map plane
	CellX, CellY int       // occupied cell that stopped the ray
	Code         int       // wall code of that cell
}

// occupied treats everything outside the grid as open space, so a camera
// placed off the map just sees nothing in that direction.
func occupied(m *gridmap.Map, i, j int) bool {
	return m.Contains(i, j) && !m.IsEmpty(i, j)
}

func hitAt(m *gridmap.Map, p math.Vec2, t float64, i, j int) Hit {
	return Hit{OK: true, Distance: t, Point: p, CellX: i, CellY: j, Code: m.Get(i, j)}
}

// Cast walks a single ray from origin at angle and returns the first wall.
// A non-finite origin or angle never hits anything.
func (r *Renderer) Cast(m *gridmap.Map, origin math.Vec2, angle float64) Hit {
	if !finite(origin.X) || !finite(origin.Y) || !finite(angle) {
		return Hit{}
	}
	if r.opts.Marcher == MarchDDA {
		return r.castDDA(m, origin, angle)
	}
	return r.castFixed(m, origin, angle)
}

func (r *Renderer) castFixed(m *gridmap.Map, origin math.Vec2, angle float64) Hit {
	dir := math.FromAngle(angle)
	steps := int(gomath.Round(r.opts.MaxDistance / r.opts.StepSize))

	for n := 0; n < steps; n++ {
		t := float64(n) * r.opts.StepSize
		p := origin.Along(dir, t)
		i, j := p.Cell()
		if occupied(m, i, j) {
			return hitAt(m, p, t, i, j)
		}
	}
	return Hit{}
}

// castDDA visits every cell the ray crosses, in order, and stops at the
// first occupied one. Distances are exact boundary crossings.
func (r *Renderer) castDDA(m *gridmap.Map, origin math.Vec2, angle float64) Hit {
	dir := math.FromAngle(angle)
	i, j := origin.Cell()
	if occupied(m, i, j) {
		return hitAt(m, origin, 0, i, j)
	}

	stepX, sideX, deltaX := ddaAxis(origin.X, dir.X, i)
	stepY, sideY, deltaY := ddaAxis(origin.Y, dir.Y, j)

	for {
		var t float64
		if sideX < sideY {
			t = sideX
			sideX += deltaX
			i += stepX
		} else {
			t = sideY
			sideY += deltaY
			j += stepY
		}

		// NaN compares false both ways, so test the negation.
		if !(t <= r.opts.MaxDistance) {
			return Hit{}
		}
		if occupied(m, i, j) {
			return hitAt(m, origin.Along(dir, t), t, i, j)
		}
	}
}

// ddaAxis returns the cell step, the ray distance to the first boundary on
// this axis and the distance between consecutive boundaries.
func ddaAxis(pos, dir float64, cell int) (step int, side, delta float64) {
	if dir == 0 {
		return 0, gomath.Inf(1), gomath.Inf(1)
	}
	delta = gomath.Abs(1 / dir)
	if dir < 0 {
		return -1, (pos - float64(cell)) * delta, delta
	}
	return 1, (float64(cell) + 1 - pos) * delta, delta
}

func finite(v float64) bool {
	return !gomath.IsNaN(v) && !gomath.IsInf(v, 0)
}
