package scene

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-ray/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-ray/internal/engine/raycast"
)

// Frame returns the render inputs of frame index.
func (s *Scene) Frame(index int) raycast.Frame {
	a := s.cfg.Animation
	cam := s.cam.Rotate(HeadingOffset(index, a.Frames, a.TurnDeg, s.easing))
	return raycast.Frame{Map: s.m, Camera: cam, Atlas: s.atlas}
}

// RenderFrame renders frame index into a fresh framebuffer.
func (s *Scene) RenderFrame(index int) (*framebuffer.Framebuffer, raycast.Stats) {
	fb := framebuffer.New(s.cfg.Render.Width, s.cfg.Render.Height, s.background)
	stats := s.renderer.RenderFrame(fb, s.Frame(index))
	return fb, stats
}

// Run renders and writes every frame of the sequence. Up to
// Animation.Workers frames are in flight at once; no new frame starts after
// ctx is cancelled. It returns the written paths in frame order.
func (s *Scene) Run(ctx context.Context) ([]string, error) {
	total := s.cfg.Animation.Frames
	paths := make([]string, total)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Animation.Workers)

	for i := 0; i < total; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			began := time.Now()
			fb, stats := s.RenderFrame(i)
			path, err := s.writer.WriteFrame(fb, i, total)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			paths[i] = path

			s.log.Debug("frame rendered",
				zap.Int("index", i),
				zap.Int("hits", stats.Hits),
				zap.Float64("nearest", stats.Nearest),
				zap.Float64("farthest", stats.Farthest),
				zap.Duration("took", time.Since(began)),
			)
			s.log.Info("frame written", zap.String("path", path))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.log.Info("sequence complete",
		zap.Int("frames", total),
		zap.Duration("took", time.Since(start)),
	)
	return paths, nil
}
