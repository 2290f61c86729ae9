// Package config handles renderer configuration loading and management.
package config

import (
	"fmt"
	"math"

	"github.com/Faultbox/midgard-ray/internal/engine/pixel"
	"github.com/Faultbox/midgard-ray/internal/gridmap"
)

// Config holds all renderer settings.
type Config struct {
	Render    RenderConfig    `yaml:"render"`
	Map       MapConfig       `yaml:"map"`
	Camera    CameraConfig    `yaml:"camera"`
	Texture   TextureConfig   `yaml:"texture"`
	Animation AnimationConfig `yaml:"animation"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RenderConfig holds framebuffer and ray casting settings.
type RenderConfig struct {
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	Marcher     string        `yaml:"marcher"`      // "fixed" or "dda"
	StepSize    float64       `yaml:"step_size"`    // fixed marcher increment (cells)
	MaxDistance float64       `yaml:"max_distance"` // march budget (cells)
	Background  string        `yaml:"background"`   // hex colour
	Minimap     MinimapConfig `yaml:"minimap"`
}

// MinimapConfig holds top-down overlay settings.
type MinimapConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Source     string `yaml:"source"` // "flat" or "texture"
	DrawRays   bool   `yaml:"draw_rays"`
	DrawCamera bool   `yaml:"draw_camera"`
}

// MapConfig holds the grid, one string per row. '0'-'9' are walls, ' ' is empty.
type MapConfig struct {
	Rows []string `yaml:"rows"`
}

// CameraConfig holds the initial camera pose.
type CameraConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	AngleDeg float64 `yaml:"angle_deg"`
	FOVDeg   float64 `yaml:"fov_deg"`
}

// TextureConfig holds the wall atlas settings.
type TextureConfig struct {
	Path         string `yaml:"path"`          // empty = flat palette colours
	Fallback     bool   `yaml:"fallback"`      // use a grey atlas if loading fails
	FallbackSize int    `yaml:"fallback_size"` // tile size of the palette/fallback atlas
}

// AnimationConfig holds frame sequence settings.
type AnimationConfig struct {
	Frames  int     `yaml:"frames"`
	TurnDeg float64 `yaml:"turn_deg"` // total heading change across the sequence
	Easing  string  `yaml:"easing"`
	Workers int     `yaml:"workers"` // frames rendered in parallel
}

// OutputConfig holds where frames are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"` // "ppm" or "png"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:       1024,
			Height:      512,
			Marcher:     "fixed",
			StepSize:    0.01,
			MaxDistance: 15,
			Background:  "#ffffff",
			Minimap: MinimapConfig{
				Enabled:    true,
				Source:     "flat",
				DrawRays:   true,
				DrawCamera: false,
			},
		},
		Map: MapConfig{
			Rows: append([]string(nil), gridmap.DefaultRows...),
		},
		Camera: CameraConfig{
			X:        3.456,
			Y:        2.345,
			AngleDeg: 90,
			FOVDeg:   60,
		},
		Texture: TextureConfig{
			Path:         "",
			Fallback:     true,
			FallbackSize: 64,
		},
		Animation: AnimationConfig{
			Frames:  1,
			TurnDeg: 360,
			Easing:  "linear",
			Workers: 4,
		},
		Output: OutputConfig{
			Dir:    "./out",
			Prefix: "out",
			Format: "ppm",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would otherwise fail deep inside rendering.
func (c *Config) Validate() error {
	if c.Render.Width < 2 || c.Render.Height < 1 {
		return fmt.Errorf("render size %dx%d too small", c.Render.Width, c.Render.Height)
	}
	switch c.Render.Marcher {
	case "fixed", "dda":
	default:
		return fmt.Errorf("unknown marcher %q", c.Render.Marcher)
	}
	if !(c.Render.StepSize > 0) || !(c.Render.MaxDistance > 0) {
		return fmt.Errorf("step_size and max_distance must be positive")
	}
	if _, err := pixel.ParseHex(c.Render.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	switch c.Render.Minimap.Source {
	case "flat", "texture":
	default:
		return fmt.Errorf("unknown minimap source %q", c.Render.Minimap.Source)
	}
	if len(c.Map.Rows) == 0 {
		return fmt.Errorf("map has no rows")
	}
	for _, v := range [...]float64{c.Camera.X, c.Camera.Y, c.Camera.AngleDeg} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("camera x, y and angle_deg must be finite")
		}
	}
	if !(c.Camera.FOVDeg > 0 && c.Camera.FOVDeg < 180) {
		return fmt.Errorf("fov_deg %v outside (0, 180)", c.Camera.FOVDeg)
	}
	if c.Texture.FallbackSize < 1 {
		return fmt.Errorf("fallback_size must be positive")
	}
	if c.Animation.Frames < 1 {
		return fmt.Errorf("animation needs at least one frame")
	}
	if c.Animation.Workers < 1 {
		return fmt.Errorf("animation needs at least one worker")
	}
	switch c.Output.Format {
	case "ppm", "png":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if c.Output.Prefix == "" {
		return fmt.Errorf("output prefix is empty")
	}
	return nil
}
