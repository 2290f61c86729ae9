// Package main is the entry point for the ray casting renderer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ray/internal/config"
	"github.com/Faultbox/midgard-ray/internal/logger"
	"github.com/Faultbox/midgard-ray/internal/scene"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== Midgard Ray ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if path := config.SavePath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			logger.Error("failed to save config", zap.String("path", path), zap.Error(err))
			return 1
		}
		logger.Info("config saved", zap.String("path", path))
	}

	s, err := scene.New(cfg)
	if err != nil {
		logger.Error("failed to build scene", zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("rendering",
		zap.Int("frames", cfg.Animation.Frames),
		zap.Int("workers", cfg.Animation.Workers),
		zap.String("format", cfg.Output.Format),
	)

	paths, err := s.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Warn("render interrupted")
		return 130
	}
	if err != nil {
		logger.Error("render failed", zap.Error(err))
		return 1
	}

	logger.Info("done", zap.Int("frames", len(paths)), zap.String("dir", cfg.Output.Dir))
	return 0
}
