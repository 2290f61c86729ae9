package raycast

import (
	gomath "math"

	"github.com/Faultbox/midgard-ray/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-ray/internal/engine/pixel"
	"github.com/Faultbox/midgard-ray/internal/engine/texture"
	"github.com/Faultbox/midgard-ray/internal/gridmap"
	"github.com/Faultbox/midgard-ray/pkg/math"
)

// minimap maps cell coordinates onto the left half of the framebuffer.
type minimap struct {
	fb           *framebuffer.Framebuffer
	cellW, cellH int
	limitX       int // first column of the 3-D view
}

func newMinimap(fb *framebuffer.Framebuffer, m *gridmap.Map) minimap {
	w, h := fb.Size()
	return minimap{
		fb:     fb,
		cellW:  w / (m.Width() * 2),
		cellH:  h / m.Height(),
		limitX: w / 2,
	}
}

// toScreen converts a map-plane point to minimap pixel coordinates.
func (mm minimap) toScreen(p math.Vec2) (int, int) {
	return int(gomath.Floor(p.X * float64(mm.cellW))), int(gomath.Floor(p.Y * float64(mm.cellH)))
}

// plot sets one pixel if it falls inside the minimap area.
func (mm minimap) plot(p math.Vec2, c pixel.Color) {
	x, y := mm.toScreen(p)
	if x < mm.limitX && mm.fb.Contains(x, y) {
		mm.fb.SetPixel(x, y, c)
	}
}

// mark draws a 3x3 square centred on p.
func (mm minimap) mark(p math.Vec2, c pixel.Color) {
	x, y := mm.toScreen(p)
	if x < 0 || x >= mm.limitX {
		return
	}
	mm.fb.FillRect(x-1, y-1, min(3, mm.limitX-x+1), 3, c)
}

func (r *Renderer) drawMinimapCells(fb *framebuffer.Framebuffer, mm minimap, m *gridmap.Map, atlas texture.Source) {
	for j := 0; j < m.Height(); j++ {
		for i := 0; i < m.Width(); i++ {
			if m.IsEmpty(i, j) {
				continue
			}
			code := m.Get(i, j)

			c := pixel.ForCode(code)
			if r.opts.Minimap.Source == MinimapTexture {
				c = atlas.Get(0, 0, code)
			}
			fb.FillRect(i*mm.cellW, j*mm.cellH, mm.cellW, mm.cellH, c)
		}
	}
}

// traceRay plots the ray path from the camera up to its hit, or up to the
// march budget when nothing was hit.
func (r *Renderer) traceRay(mm minimap, origin math.Vec2, angle float64, hit Hit) {
	end := r.opts.MaxDistance
	if hit.OK {
		end = hit.Distance
	}
	dir := math.FromAngle(angle)
	steps := int(end / r.opts.StepSize)
	for n := 0; n <= steps; n++ {
		mm.plot(origin.Along(dir, float64(n)*r.opts.StepSize), r.opts.Minimap.RayColor)
	}
}
