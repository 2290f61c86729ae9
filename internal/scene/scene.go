// Package scene assembles a map, camera and wall atlas from configuration and
// renders the configured frame sequence to disk.
package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ray/internal/config"
	"github.com/Faultbox/midgard-ray/internal/engine/camera"
	"github.com/Faultbox/midgard-ray/internal/engine/capture"
	"github.com/Faultbox/midgard-ray/internal/engine/pixel"
	"github.com/Faultbox/midgard-ray/internal/engine/raycast"
	"github.com/Faultbox/midgard-ray/internal/engine/texture"
	"github.com/Faultbox/midgard-ray/internal/gridmap"
	"github.com/Faultbox/midgard-ray/internal/logger"
)

// ErrAtlasTooSmall is returned when the map uses a wall code with no tile.
var ErrAtlasTooSmall = errors.New("texture atlas has fewer tiles than the map needs")

// Scene holds the immutable inputs of a render run.
type Scene struct {
	cfg        *config.Config
	m          *gridmap.Map
	cam        camera.Camera
	atlas      texture.Source
	renderer   *raycast.Renderer
	writer     *capture.FrameWriter
	background pixel.Color
	easing     Easing
	log        *zap.Logger
}

// New builds a scene from cfg. The config is expected to have passed Validate.
func New(cfg *config.Config) (*Scene, error) {
	log := logger.Named("scene")

	m, err := gridmap.FromRows(cfg.Map.Rows)
	if err != nil {
		return nil, fmt.Errorf("building map: %w", err)
	}

	cam, err := camera.FromDegrees(cfg.Camera.X, cfg.Camera.Y, cfg.Camera.AngleDeg, cfg.Camera.FOVDeg)
	if err != nil {
		return nil, fmt.Errorf("building camera: %w", err)
	}

	atlas, err := loadAtlas(cfg.Texture, m.MaxCode(), log)
	if err != nil {
		return nil, err
	}
	if atlas.Count() <= m.MaxCode() {
		return nil, fmt.Errorf("%w: map uses code %d, atlas has %d tiles",
			ErrAtlasTooSmall, m.MaxCode(), atlas.Count())
	}

	background, err := pixel.ParseHex(cfg.Render.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	easing, err := ParseEasing(cfg.Animation.Easing)
	if err != nil {
		return nil, err
	}

	opts := raycast.DefaultOptions()
	opts.Marcher = raycast.Marcher(cfg.Render.Marcher)
	opts.StepSize = cfg.Render.StepSize
	opts.MaxDistance = cfg.Render.MaxDistance
	opts.Minimap.Enabled = cfg.Render.Minimap.Enabled
	opts.Minimap.Source = raycast.MinimapSource(cfg.Render.Minimap.Source)
	opts.Minimap.DrawRays = cfg.Render.Minimap.DrawRays
	opts.Minimap.DrawCamera = cfg.Render.Minimap.DrawCamera

	r, err := raycast.New(opts)
	if err != nil {
		return nil, fmt.Errorf("building renderer: %w", err)
	}

	writer, err := capture.NewFrameWriter(cfg.Output.Dir, cfg.Output.Prefix, capture.Format(cfg.Output.Format))
	if err != nil {
		return nil, fmt.Errorf("building frame writer: %w", err)
	}

	log.Info("scene ready",
		zap.Int("map_width", m.Width()),
		zap.Int("map_height", m.Height()),
		zap.Stringer("camera", cam),
		zap.Int("tiles", atlas.Count()),
		zap.Int("tile_size", atlas.Size()),
		zap.String("marcher", string(opts.Marcher)),
	)

	return &Scene{
		cfg:        cfg,
		m:          m,
		cam:        cam,
		atlas:      atlas,
		renderer:   r,
		writer:     writer,
		background: background,
		easing:     easing,
		log:        log,
	}, nil
}

// Map returns the scene's grid.
func (s *Scene) Map() *gridmap.Map { return s.m }

// Camera returns the starting camera.
func (s *Scene) Camera() camera.Camera { return s.cam }

// Atlas returns the wall textures in use.
func (s *Scene) Atlas() texture.Source { return s.atlas }

// loadAtlas picks the wall texture source. An empty path selects flat palette
// tiles; a failed load falls back to grey tiles when allowed.
func loadAtlas(cfg config.TextureConfig, maxCode int, log *zap.Logger) (texture.Source, error) {
	if cfg.Path == "" {
		return texture.FromPalette(cfg.FallbackSize, pixel.Palette), nil
	}

	atlas, err := texture.Load(cfg.Path)
	if err == nil {
		log.Debug("texture atlas loaded",
			zap.String("path", cfg.Path),
			zap.Int("tiles", atlas.Count()),
			zap.Int("tile_size", atlas.Size()),
		)
		return atlas, nil
	}
	if !cfg.Fallback {
		return nil, fmt.Errorf("loading texture: %w", err)
	}

	count := len(pixel.Palette)
	if maxCode >= count {
		count = maxCode + 1
	}
	log.Warn("texture atlas unavailable, using grey tiles",
		zap.String("path", cfg.Path),
		zap.Error(err),
	)
	return texture.Solid(cfg.FallbackSize, count, pixel.Gray), nil
}
