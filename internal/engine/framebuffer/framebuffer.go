// Package framebuffer provides the CPU pixel buffer the ray caster draws into.
package framebuffer

import (
	"fmt"
	"image"

	"github.com/Faultbox/midgard-ray/internal/engine/pixel"
)

// Framebuffer is a row-major grid of packed colours.
//
// SetPixel treats an out-of-range coordinate as a caller bug and panics.
// FillRect clips silently, so partially visible rectangles are fine.
type Framebuffer struct {
	width  int
	height int
	pixels []pixel.Color
}

// New creates a framebuffer filled with the given colour.
func New(width, height int, fill pixel.Color) *Framebuffer {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("framebuffer: invalid size %dx%d", width, height))
	}

	fb := &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]pixel.Color, width*height),
	}
	fb.Clear(fill)
	return fb
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int) {
	return fb.width, fb.height
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// Contains reports whether (x, y) lies inside the buffer.
func (fb *Framebuffer) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.width && y < fb.height
}

// SetPixel writes one pixel.
func (fb *Framebuffer) SetPixel(x, y int, c pixel.Color) {
	if !fb.Contains(x, y) {
		panic(fmt.Sprintf("framebuffer: pixel (%d,%d) outside %dx%d", x, y, fb.width, fb.height))
	}
	fb.pixels[x+y*fb.width] = c
}

// At returns the pixel at (x, y).
func (fb *Framebuffer) At(x, y int) pixel.Color {
	if !fb.Contains(x, y) {
		panic(fmt.Sprintf("framebuffer: pixel (%d,%d) outside %dx%d", x, y, fb.width, fb.height))
	}
	return fb.pixels[x+y*fb.width]
}

// FillRect fills a w*h rectangle with its top-left corner at (x, y),
// clipped to the buffer.
func (fb *Framebuffer) FillRect(x, y, w, h int, c pixel.Color) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, fb.width), min(y+h, fb.height)

	for py := y0; py < y1; py++ {
		row := fb.pixels[py*fb.width : (py+1)*fb.width]
		for px := x0; px < x1; px++ {
			row[px] = c
		}
	}
}

// Clear resets every pixel to c.
func (fb *Framebuffer) Clear(c pixel.Color) {
	for i := range fb.pixels {
		fb.pixels[i] = c
	}
}

// Pixels returns the backing slice. Callers must not change its length.
func (fb *Framebuffer) Pixels() []pixel.Color {
	return fb.pixels
}

// Image copies the buffer into a standard library image.
func (fb *Framebuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	for i, c := range fb.pixels {
		r, g, b, a := c.Unpack()
		img.Pix[i*4] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = b
		img.Pix[i*4+3] = a
	}
	return img
}
