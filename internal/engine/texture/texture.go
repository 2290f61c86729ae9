// Package texture loads wall texture atlases: square tiles packed side by side.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder

	"github.com/Faultbox/midgard-ray/internal/engine/pixel"
)

// ErrNotPacked is returned when an image is not a row of equal square tiles.
var ErrNotPacked = errors.New("texture file doesn't contain enough packed square textures")

// Source is a read-only set of equal-size square tiles.
type Source interface {
	// Size is the tile edge length in pixels.
	Size() int
	// Count is the number of tiles.
	Count() int
	// Get samples pixel (col, row) of tile idx.
	Get(col, row, idx int) pixel.Color
}

// Atlas is a decoded texture sheet of Count tiles, each Size x Size.
type Atlas struct {
	size   int
	count  int
	width  int
	pixels []pixel.Color
}

// Load reads and validates an atlas image. TGA is detected by extension,
// everything else by the decoders registered with the image package.
func Load(path string) (*Atlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", path, err)
	}

	atlas, err := FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	return atlas, nil
}

// FromImage builds an atlas from a decoded image. The width must be an
// exact multiple of the height.
func FromImage(img image.Image) (*Atlas, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if height < 1 || width < height || width%height != 0 {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrNotPacked, width, height)
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(nrgba, nrgba.Bounds(), img, b.Min, xdraw.Src)

	a := &Atlas{
		size:   height,
		count:  width / height,
		width:  width,
		pixels: make([]pixel.Color, width*height),
	}
	for i := range a.pixels {
		p := nrgba.Pix[i*4 : i*4+4]
		a.pixels[i] = pixel.RGBA(p[0], p[1], p[2], p[3])
	}
	return a, nil
}

// Solid builds an atlas of count tiles filled with one colour.
func Solid(size, count int, c pixel.Color) *Atlas {
	colors := make([]pixel.Color, count)
	for i := range colors {
		colors[i] = c
	}
	return FromPalette(size, colors)
}

// FromPalette builds an atlas with one flat tile per colour.
func FromPalette(size int, colors []pixel.Color) *Atlas {
	if size < 1 || len(colors) == 0 {
		panic(fmt.Sprintf("texture: invalid palette atlas size=%d count=%d", size, len(colors)))
	}

	a := &Atlas{
		size:   size,
		count:  len(colors),
		width:  size * len(colors),
		pixels: make([]pixel.Color, size*size*len(colors)),
	}
	for y := 0; y < size; y++ {
		for x := 0; x < a.width; x++ {
			a.pixels[x+y*a.width] = colors[x/size]
		}
	}
	return a
}

// Size returns the tile edge length in pixels.
func (a *Atlas) Size() int { return a.size }

// Count returns the number of tiles.
func (a *Atlas) Count() int { return a.count }

// Get returns pixel (col, row) of tile idx. Coordinates outside the tile
// indicate broken texture math and panic.
func (a *Atlas) Get(col, row, idx int) pixel.Color {
	if col < 0 || col >= a.size || row < 0 || row >= a.size || idx < 0 || idx >= a.count {
		panic(fmt.Sprintf("texture: sample (%d,%d) of tile %d outside %d tiles of %dpx", col, row, idx, a.count, a.size))
	}
	return a.pixels[idx*a.size+col+row*a.width]
}
