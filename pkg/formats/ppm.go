package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-ray/internal/engine/pixel"
)

// PPM format errors.
var (
	ErrInvalidPPMMagic  = errors.New("invalid PPM magic: expected 'P6'")
	ErrInvalidPPMHeader = errors.New("invalid PPM header")
	ErrTruncatedPPMData = errors.New("truncated PPM data")
)

// PPMMagic identifies binary RGB portable pixmaps.
const PPMMagic = "P6"

// EncodePPM writes pixels as a binary PPM: the header "P6\n<w> <h>\n255\n"
// followed by one R,G,B triple per pixel, row-major. Alpha is dropped.
// len(pixels) must equal width*height.
func EncodePPM(w io.Writer, pixels []pixel.Color, width, height int) error {
	if width < 1 || height < 1 || len(pixels) != width*height {
		panic(fmt.Sprintf("formats: %d pixels for %dx%d image", len(pixels), width, height))
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n255\n", PPMMagic, width, height); err != nil {
		return fmt.Errorf("writing PPM header: %w", err)
	}

	var rgb [3]byte
	for _, c := range pixels {
		rgb[0], rgb[1], rgb[2], _ = c.Unpack()
		if _, err := bw.Write(rgb[:]); err != nil {
			return fmt.Errorf("writing PPM pixels: %w", err)
		}
	}
	return bw.Flush()
}

// WritePPM encodes pixels into a new file at path.
func WritePPM(path string, pixels []pixel.Color, width, height int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	return EncodePPM(f, pixels, width, height)
}

// PPM is a decoded binary PPM image.
type PPM struct {
	Width  int
	Height int
	Pixels []pixel.Color // opaque, row-major
}

// DecodePPM reads a P6 image with a max channel value of 255.
// Header comments starting with '#' are skipped.
func DecodePPM(r io.Reader) (*PPM, error) {
	br := bufio.NewReader(r)

	magic, err := ppmToken(br)
	if err != nil {
		return nil, err
	}
	if magic != PPMMagic {
		return nil, ErrInvalidPPMMagic
	}

	var fields [3]int
	for i := range fields {
		tok, err := ppmToken(br)
		if err != nil {
			return nil, err
		}
		if _, err := fmt.Sscanf(tok, "%d", &fields[i]); err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidPPMHeader, tok)
		}
	}
	width, height, maxVal := fields[0], fields[1], fields[2]
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidPPMHeader, width, height)
	}
	if maxVal != 255 {
		return nil, fmt.Errorf("%w: max value %d (only 255 supported)", ErrInvalidPPMHeader, maxVal)
	}

	raw := make([]byte, width*height*3)
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedPPMData, err)
	}

	img := &PPM{Width: width, Height: height, Pixels: make([]pixel.Color, width*height)}
	for i := range img.Pixels {
		img.Pixels[i] = pixel.RGB(raw[i*3], raw[i*3+1], raw[i*3+2])
	}
	return img, nil
}

// ppmToken reads one whitespace-delimited header token, consuming exactly
// one whitespace byte after it.
func ppmToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				return "", ErrTruncatedPPMData
			}
			return "", err
		}
		switch {
		case b == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", ErrTruncatedPPMData
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}
