// Package capture writes rendered frames to image files.
package capture

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-ray/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-ray/pkg/formats"
)

// Format selects the output file type.
type Format string

// Supported output formats.
const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// FrameWriter names and writes frame files under one directory.
type FrameWriter struct {
	outputDir string
	prefix    string
	format    Format
}

// NewFrameWriter creates a frame writer.
func NewFrameWriter(outputDir, prefix string, format Format) (*FrameWriter, error) {
	switch format {
	case FormatPPM, FormatPNG:
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return &FrameWriter{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
	}, nil
}

// Filename returns the path for frame index of total. A single frame is
// written as <prefix>.<ext>; sequences get a zero-padded index.
func (fw *FrameWriter) Filename(index, total int) string {
	name := fmt.Sprintf("%s.%s", fw.prefix, fw.format)
	if total > 1 {
		width := len(fmt.Sprint(total - 1))
		name = fmt.Sprintf("%s_%0*d.%s", fw.prefix, width, index, fw.format)
	}
	if fw.outputDir != "" {
		name = filepath.Join(fw.outputDir, name)
	}
	return name
}

// WriteFrame writes fb as frame index of total and returns the file path.
func (fw *FrameWriter) WriteFrame(fb *framebuffer.Framebuffer, index, total int) (string, error) {
	if fw.outputDir != "" {
		if err := os.MkdirAll(fw.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := fw.Filename(index, total)
	w, h := fb.Size()

	var err error
	switch fw.format {
	case FormatPNG:
		err = writePNG(filename, fb)
	default:
		err = formats.WritePPM(filename, fb.Pixels(), w, h)
	}
	if err != nil {
		return "", err
	}
	return filename, nil
}

func writePNG(filename string, fb *framebuffer.Framebuffer) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()

	if err := png.Encode(file, fb.Image()); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
