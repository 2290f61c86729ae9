// Package raycast renders a first-person view of a grid map by casting one
// ray per screen column.
//
// The framebuffer is split in two: the left half shows a top-down minimap,
// the right half the projected wall slices.
package raycast

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-ray/internal/engine/camera"
	"github.com/Faultbox/midgard-ray/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-ray/internal/engine/pixel"
	"github.com/Faultbox/midgard-ray/internal/engine/texture"
	"github.com/Faultbox/midgard-ray/internal/gridmap"
)

// ErrOptions is returned by New for unusable options.
var ErrOptions = errors.New("invalid renderer options")

// Marcher selects how rays walk the grid.
type Marcher string

const (
	// MarchFixed advances the sample point by StepSize until it enters a wall.
	MarchFixed Marcher = "fixed"
	// MarchDDA steps exactly from cell boundary to cell boundary.
	MarchDDA Marcher = "dda"
)

// MinimapSource selects how minimap cells are coloured.
type MinimapSource string

const (
	// MinimapFlat colours a cell with the palette entry of its wall code.
	MinimapFlat MinimapSource = "flat"
	// MinimapTexture colours a cell with the top-left pixel of its texture tile.
	MinimapTexture MinimapSource = "texture"
)

// MinimapOptions controls the top-down overlay.
type MinimapOptions struct {
	Enabled     bool
	Source      MinimapSource
	DrawRays    bool // plot the path of every ray
	DrawCamera  bool // mark the camera position
	RayColor    pixel.Color
	CameraColor pixel.Color
}

// Options configures a Renderer.
type Options struct {
	Marcher     Marcher
	StepSize    float64 // fixed-step increment, cell units
	MaxDistance float64 // march budget, cell units
	Minimap     MinimapOptions
}

// DefaultOptions returns the settings of the reference renderer.
func DefaultOptions() Options {
	return Options{
		Marcher:     MarchFixed,
		StepSize:    0.01,
		MaxDistance: 15,
		Minimap: MinimapOptions{
			Enabled:     true,
			Source:      MinimapFlat,
			DrawRays:    true,
			DrawCamera:  false,
			RayColor:    pixel.Gray,
			CameraColor: pixel.Red,
		},
	}
}

// Stats summarises one rendered frame.
type Stats struct {
	Columns  int     // rays cast
	Hits     int     // rays that reached a wall
	Nearest  float64 // shortest hit distance (0 if no hits)
	Farthest float64 // longest hit distance
}

func (s *Stats) add(h Hit) {
	if s.Hits == 0 || h.Distance < s.Nearest {
		s.Nearest = h.Distance
	}
	if h.Distance > s.Farthest {
		s.Farthest = h.Distance
	}
	s.Hits++
}

// Frame is everything one render depends on besides the target buffer.
type Frame struct {
	Map    *gridmap.Map
	Camera camera.Camera
	Atlas  texture.Source
}

// Renderer holds immutable settings only, so one Renderer may render many
// frames concurrently into different framebuffers.
type Renderer struct {
	opts Options
}

// New creates a renderer.
func New(opts Options) (*Renderer, error) {
	switch opts.Marcher {
	case MarchFixed, MarchDDA:
	default:
		return nil, fmt.Errorf("%w: unknown marcher %q", ErrOptions, opts.Marcher)
	}
	switch opts.Minimap.Source {
	case MinimapFlat, MinimapTexture:
	default:
		return nil, fmt.Errorf("%w: unknown minimap source %q", ErrOptions, opts.Minimap.Source)
	}
	if !(opts.StepSize > 0) {
		return nil, fmt.Errorf("%w: step size must be positive, got %v", ErrOptions, opts.StepSize)
	}
	if !(opts.MaxDistance > 0) {
		return nil, fmt.Errorf("%w: max distance must be positive, got %v", ErrOptions, opts.MaxDistance)
	}
	return &Renderer{opts: opts}, nil
}

// RenderFrame draws f into fb.
func (r *Renderer) RenderFrame(fb *framebuffer.Framebuffer, f Frame) Stats {
	return r.Render(fb, f.Map, f.Camera, f.Atlas)
}

// Render draws the minimap into the left half of fb and the 3-D view into
// the right half. Pixels not covered by either are left untouched, so
// callers clear fb first to get a background.
func (r *Renderer) Render(fb *framebuffer.Framebuffer, m *gridmap.Map, cam camera.Camera, atlas texture.Source) Stats {
	width, height := fb.Size()
	rays := width / 2
	mm := newMinimap(fb, m)

	if r.opts.Minimap.Enabled {
		r.drawMinimapCells(fb, mm, m, atlas)
	}

	stats := Stats{Columns: rays}
	origin := cam.Position()

	for col := 0; col < rays; col++ {
		angle := cam.RayAngle(col, rays)
		hit := r.Cast(m, origin, angle)

		if r.opts.Minimap.Enabled && r.opts.Minimap.DrawRays {
			r.traceRay(mm, origin, angle, hit)
		}
		if !hit.OK {
			continue
		}
		stats.add(hit)

		h := ColumnHeight(height, hit.Distance, angle, cam.A)
		drawSlice(fb, rays+col, h, hit, atlas)
	}

	if r.opts.Minimap.Enabled && r.opts.Minimap.DrawCamera {
		mm.mark(origin, r.opts.Minimap.CameraColor)
	}

	return stats
}

// drawSlice writes one textured wall column of height h centred vertically
// at screen column x. Rows outside the buffer are skipped.
func drawSlice(fb *framebuffer.Framebuffer, x, h int, hit Hit, atlas texture.Source) {
	if h <= 0 {
		return
	}
	if hit.Code >= atlas.Count() {
		panic(fmt.Sprintf("raycast: wall code %d at (%d,%d) but atlas has %d textures", hit.Code, hit.CellX, hit.CellY, atlas.Count()))
	}

	height := fb.Height()
	size := atlas.Size()
	texCol := TextureColumn(hit.Point, size)

	top := height/2 - h/2
	for y := max(top, 0); y < min(top+h, height); y++ {
		j := y - top
		fb.SetPixel(x, y, atlas.Get(texCol, j*size/h, hit.Code))
	}
}
