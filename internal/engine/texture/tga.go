package texture

import (
	"errors"
	"fmt"
	"image"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// tgaMaxRun is the most pixels one RLE packet can describe.
const tgaMaxRun = 128

var errTGATruncated = errors.New("TGA data truncated")

type tgaHeader struct {
	idLength    int
	colorMap    byte
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < 18 {
		return tgaHeader{}, fmt.Errorf("TGA data too short")
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		colorMap:    data[1],
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]),
		topToBottom: data[17]&0x20 != 0,
	}

	if h.colorMap != 0 {
		return h, fmt.Errorf("color-mapped TGA not supported")
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return h, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", h.imageType)
	}
	if h.bpp != 24 && h.bpp != 32 {
		return h, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", h.bpp)
	}
	return h, nil
}

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-colour
// TGA image with 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (*image.NRGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := 18 + h.idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	src := data[offset:]
	size := h.bpp / 8
	pixels := h.width * h.height

	// Check the header against the payload before allocating: raw data needs
	// size bytes per pixel, an RLE packet of 1+size bytes covers at most 128.
	switch h.imageType {
	case TGATypeUncompressed:
		if len(src) < pixels*size {
			return nil, errTGATruncated
		}
	case TGATypeRLE:
		if pixels > len(src)/(1+size)*tgaMaxRun {
			return nil, errTGATruncated
		}
	}

	w := &tgaWriter{
		img:  image.NewNRGBA(image.Rect(0, 0, h.width, h.height)),
		hdr:  h,
		size: size,
	}

	if h.imageType == TGATypeUncompressed {
		for len(src) >= w.size && !w.full() {
			w.put(src[:w.size])
			src = src[w.size:]
		}
		return w.img, nil
	}

	for len(src) > 0 && !w.full() {
		packet := src[0]
		src = src[1:]
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if len(src) < w.size {
				return nil, errTGATruncated
			}
			for i := 0; i < count && !w.full(); i++ {
				w.put(src[:w.size])
			}
			src = src[w.size:]
			continue
		}

		for i := 0; i < count && !w.full(); i++ {
			if len(src) < w.size {
				return nil, errTGATruncated
			}
			w.put(src[:w.size])
			src = src[w.size:]
		}
	}
	return w.img, nil
}

// tgaWriter places BGR(A) pixels into the image in file order.
type tgaWriter struct {
	img  *image.NRGBA
	hdr  tgaHeader
	size int
	n    int
}

func (w *tgaWriter) full() bool {
	return w.n >= w.hdr.width*w.hdr.height
}

func (w *tgaWriter) put(px []byte) {
	x, y := w.n%w.hdr.width, w.n/w.hdr.width
	if !w.hdr.topToBottom {
		y = w.hdr.height - 1 - y
	}
	a := byte(255)
	if w.size == 4 {
		a = px[3]
	}
	i := w.img.PixOffset(x, y)
	w.img.Pix[i] = px[2]
	w.img.Pix[i+1] = px[1]
	w.img.Pix[i+2] = px[0]
	w.img.Pix[i+3] = a
	w.n++
}
