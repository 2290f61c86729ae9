package raycast

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-ray/pkg/math"
)

// MinDistance bounds the perpendicular distance used for projection, so a
// camera standing inside a wall still gets a finite column height.
const MinDistance = 1e-3

// ColumnHeight returns the projected height in pixels of a wall hit at
// distance t along a ray at angle, for a camera facing heading.
//
// Multiplying by cos(angle-heading) converts the distance along the ray
// into distance from the view plane, which removes fisheye distortion.
func ColumnHeight(screenHeight int, t, angle, heading float64) int {
	d := t * gomath.Cos(angle-heading)
	if !(d > MinDistance) {
		d = MinDistance
	}
	return int(float64(screenHeight) / d)
}

// TextureColumn returns the texel column in [0, size) for a hit at p.
//
// The offset of p from the nearest grid line is computed on both axes; the
// face that was struck is perpendicular to the axis with the smaller offset,
// so the larger one runs along the face and selects the column.
func TextureColumn(p math.Vec2, size int) int {
	o := p.CenterOffset()
	frac := o.X
	if gomath.Abs(o.Y) > gomath.Abs(o.X) {
		frac = o.Y
	}

	coord := int(frac * float64(size))
	if coord < 0 {
		coord += size
	}
	if coord < 0 || coord >= size {
		panic(fmt.Sprintf("raycast: texture column %d outside [0,%d) for hit %v", coord, size, p))
	}
	return coord
}
