package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWidth   = flag.Int("width", 0, "Framebuffer width")
	flagHeight  = flag.Int("height", 0, "Framebuffer height")
	flagFrames  = flag.Int("frames", 0, "Number of frames to render")
	flagOut     = flag.String("out", "", "Output directory")
	flagFormat  = flag.String("format", "", "Output format (ppm, png)")
	flagTexture = flag.String("texture", "", "Wall texture atlas")
	flagMarcher = flag.String("marcher", "", "Ray marcher (fixed, dda)")
	flagSave    = flag.String("save-config", "", "Write the effective config to this path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SavePath returns the --save-config destination, if any.
func SavePath() string {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Render.Minimap.DrawCamera = true
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagFrames > 0 {
		cfg.Animation.Frames = *flagFrames
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagTexture != "" {
		cfg.Texture.Path = *flagTexture
	}
	if *flagMarcher != "" {
		cfg.Render.Marcher = *flagMarcher
	}
}
