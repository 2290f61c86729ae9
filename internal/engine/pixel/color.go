// Package pixel defines the packed 32-bit colour the renderer writes.
package pixel

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color packs four 8-bit channels into one value: R in the lowest byte,
// then G, B and A in the highest byte.
type Color uint32

// Predefined colours.
const (
	Black Color = 0xFF000000
	White Color = 0xFFFFFFFF
	Red   Color = 0xFF0000FF
	Green Color = 0xFF00FF00
	Blue  Color = 0xFFFF0000
	Gray  Color = 0xFFA0A0A0 // ray trace dots on the minimap
)

// RGBA packs 8-bit channels into a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r))
}

// RGB packs an opaque colour.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// Unpack returns the individual channels.
func (c Color) Unpack() (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// NRGBA converts to the standard library colour type.
func (c Color) NRGBA() color.NRGBA {
	r, g, b, a := c.Unpack()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// FromColor converts any standard library colour, un-premultiplying alpha.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}

// Palette holds the flat colours used for wall codes 0-9 when no texture
// atlas is loaded, and on the minimap.
var Palette = []Color{
	RGB(255, 255, 255),
	RGB(200, 100, 60),
	RGB(60, 140, 200),
	RGB(100, 180, 90),
	RGB(220, 200, 80),
	RGB(170, 90, 170),
	RGB(90, 90, 90),
	RGB(230, 140, 40),
	RGB(40, 170, 160),
	RGB(140, 60, 40),
}

// ForCode returns the palette colour for a wall code, wrapping past the end.
func ForCode(code int) Color {
	return Palette[code%len(Palette)]
}

// ParseHex parses "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return 0, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	if len(s) == 6 {
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	return RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// Hex formats c as "#rrggbbaa".
func (c Color) Hex() string {
	r, g, b, a := c.Unpack()
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}
