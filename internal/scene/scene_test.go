package scene

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/midgard-ray/internal/config"
	"github.com/Faultbox/midgard-ray/internal/engine/pixel"
	"github.com/Faultbox/midgard-ray/pkg/formats"
)

// testConfig returns a small, fast config writing into a temp dir.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Render.Width = 64
	cfg.Render.Height = 32
	cfg.Texture.FallbackSize = 4
	cfg.Output.Dir = t.TempDir()
	return cfg
}

func newScene(t *testing.T, cfg *config.Config) *Scene {
	t.Helper()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestNewDefaults(t *testing.T) {
	s := newScene(t, testConfig(t))

	if s.Map().Width() != 16 || s.Map().Height() != 16 {
		t.Errorf("expected 16x16 map, got %dx%d", s.Map().Width(), s.Map().Height())
	}
	if gomath.Abs(s.Camera().A-gomath.Pi/2) > 1e-12 {
		t.Errorf("expected heading pi/2, got %v", s.Camera().A)
	}
	if s.Atlas().Count() != len(pixel.Palette) || s.Atlas().Size() != 4 {
		t.Errorf("expected palette atlas 10x4, got %dx%d", s.Atlas().Count(), s.Atlas().Size())
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"ragged rows", func(c *config.Config) { c.Map.Rows = []string{"000", "00"} }},
		{"bad cell", func(c *config.Config) { c.Map.Rows = []string{"0x0"} }},
		{"fov", func(c *config.Config) { c.Camera.FOVDeg = 0 }},
		{"nan heading", func(c *config.Config) {
			c.Camera.AngleDeg = gomath.NaN()
			c.Render.Marcher = "dda"
		}},
		{"easing", func(c *config.Config) { c.Animation.Easing = "bounce" }},
		{"marcher", func(c *config.Config) { c.Render.Marcher = "bogus" }},
		{"format", func(c *config.Config) { c.Output.Format = "gif" }},
		{"background", func(c *config.Config) { c.Render.Background = "#12" }},
		{"missing texture", func(c *config.Config) {
			c.Texture.Path = filepath.Join(t.TempDir(), "missing.png")
			c.Texture.Fallback = false
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)
			if _, err := New(cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTextureFallback(t *testing.T) {
	cfg := testConfig(t)
	cfg.Texture.Path = filepath.Join(t.TempDir(), "missing.png")
	cfg.Texture.Fallback = true

	s := newScene(t, cfg)
	if s.Atlas().Count() != len(pixel.Palette) {
		t.Fatalf("expected %d fallback tiles, got %d", len(pixel.Palette), s.Atlas().Count())
	}
	if got := s.Atlas().Get(0, 0, 3); got != pixel.Gray {
		t.Errorf("expected grey fallback tile, got %s", got.Hex())
	}
}

func TestAtlasTooSmall(t *testing.T) {
	// One 2x2 tile, while the default map uses codes up to 5.
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "one.png")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := testConfig(t)
	cfg.Texture.Path = path
	if _, err := New(cfg); !errors.Is(err, ErrAtlasTooSmall) {
		t.Errorf("expected ErrAtlasTooSmall, got %v", err)
	}
}

func TestHeadingOffset(t *testing.T) {
	linear, err := ParseEasing("linear")
	if err != nil {
		t.Fatalf("ParseEasing failed: %v", err)
	}

	tests := []struct {
		index, total int
		turn         float64
		want         float64 // degrees
	}{
		{0, 1, 360, 0},
		{5, 1, 360, 0},
		{0, 4, 360, 0},
		{1, 4, 360, 90},
		{2, 4, 360, 180},
		{3, 4, 360, 270},
		{1, 2, -90, -45},
	}

	for _, tt := range tests {
		got := HeadingOffset(tt.index, tt.total, tt.turn, linear) * 180 / gomath.Pi
		if gomath.Abs(got-tt.want) > 1e-3 {
			t.Errorf("HeadingOffset(%d, %d, %v) = %v deg, expected %v", tt.index, tt.total, tt.turn, got, tt.want)
		}
	}
}

func TestHeadingOffsetKeepsTurnPrecision(t *testing.T) {
	linear, err := ParseEasing("linear")
	if err != nil {
		t.Fatalf("ParseEasing failed: %v", err)
	}

	// 360.0001 is not representable in float32; half of it must survive intact.
	got := HeadingOffset(2, 4, 360.0001, linear)
	want := 180.00005 * gomath.Pi / 180
	if gomath.Abs(got-want) > 1e-12 {
		t.Errorf("expected %v rad, got %v (off by %v deg)", want, got, (got-want)*180/gomath.Pi)
	}
}

func TestHeadingOffsetEased(t *testing.T) {
	fn, err := ParseEasing("inOutQuad")
	if err != nil {
		t.Fatalf("ParseEasing failed: %v", err)
	}

	// Symmetric easing: slow start, half way at the midpoint.
	first := HeadingOffset(1, 8, 360, fn) * 180 / gomath.Pi
	if first >= 45 {
		t.Errorf("expected eased first step below linear 45 deg, got %v", first)
	}
	mid := HeadingOffset(4, 8, 360, fn) * 180 / gomath.Pi
	if gomath.Abs(mid-180) > 1e-3 {
		t.Errorf("expected 180 deg at midpoint, got %v", mid)
	}

	prev := -1.0
	for i := 0; i < 8; i++ {
		cur := HeadingOffset(i, 8, 360, fn)
		if cur < prev {
			t.Errorf("heading decreased at frame %d", i)
		}
		prev = cur
	}
}

func TestEasingNames(t *testing.T) {
	names := EasingNames()
	if len(names) == 0 {
		t.Fatal("expected easing names")
	}
	for _, name := range names {
		if _, err := ParseEasing(name); err != nil {
			t.Errorf("listed easing %q does not parse: %v", name, err)
		}
	}
}

func TestRunSingleFrame(t *testing.T) {
	cfg := testConfig(t)
	s := newScene(t, cfg)

	paths, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("expected 1 path, got %d", len(paths))
	}
	if want := filepath.Join(cfg.Output.Dir, "out.ppm"); paths[0] != want {
		t.Errorf("expected %s, got %s", want, paths[0])
	}

	f, err := os.Open(paths[0])
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := formats.DecodePPM(f)
	if err != nil {
		t.Fatalf("DecodePPM failed: %v", err)
	}
	if img.Width != 64 || img.Height != 32 {
		t.Errorf("expected 64x32, got %dx%d", img.Width, img.Height)
	}

	fb, _ := s.RenderFrame(0)
	for i, c := range fb.Pixels() {
		if img.Pixels[i] != c|0xFF000000 {
			t.Fatalf("pixel %d differs from a direct render", i)
		}
	}
}

func TestRunSequenceMatchesSequential(t *testing.T) {
	cfg := testConfig(t)
	cfg.Animation.Frames = 6
	cfg.Animation.TurnDeg = 90
	cfg.Animation.Workers = 3
	s := newScene(t, cfg)

	paths, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(paths) != 6 {
		t.Fatalf("expected 6 paths, got %d", len(paths))
	}

	for i, p := range paths {
		if want := filepath.Join(cfg.Output.Dir, "out_"+string(rune('0'+i))+".ppm"); p != want {
			t.Errorf("frame %d: expected %s, got %s", i, want, p)
		}

		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		fb, _ := s.RenderFrame(i)
		var want bytes.Buffer
		formats.EncodePPM(&want, fb.Pixels(), fb.Width(), fb.Height())
		if !bytes.Equal(data, want.Bytes()) {
			t.Errorf("frame %d differs from sequential render", i)
		}
	}

	// The camera turns, so consecutive frames differ.
	a, _ := os.ReadFile(paths[0])
	b, _ := os.ReadFile(paths[3])
	if bytes.Equal(a, b) {
		t.Error("expected frames 0 and 3 to differ")
	}
}

func TestRunPNG(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Format = "png"
	cfg.Output.Prefix = "view"
	s := newScene(t, cfg)

	paths, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	f, err := os.Open(paths[0])
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("expected 64x32, got %v", b)
	}
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Animation.Frames = 4
	s := newScene(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	entries, _ := os.ReadDir(cfg.Output.Dir)
	if len(entries) != 0 {
		t.Errorf("expected no frames after cancel, got %d", len(entries))
	}
}

func TestRunUnwritableOutput(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg.Output.Dir = filepath.Join(blocker, "sub")
	s := newScene(t, cfg)

	if _, err := s.Run(context.Background()); err == nil {
		t.Error("expected error writing under a regular file")
	}
}
