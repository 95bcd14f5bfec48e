package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/OCAP2/painter/internal/config"
	"github.com/OCAP2/painter/internal/painter"
	"github.com/OCAP2/painter/internal/scene"
	"github.com/OCAP2/painter/internal/surface/ggsurface"
)

// stepClock only moves when told to, so snapshot frames are reproducible.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// runSnapshot renders cfg.Frames frames, cfg.FrameStep apart, into PNG files.
func runSnapshot(sc *scene.Scene, cfg config.SurfaceConfig) (int, error) {
	settings, err := config.GetPainterSettings()
	if err != nil {
		return 0, err
	}
	return snapshot(sc, cfg, settings, PainterLogger)
}

func snapshot(sc *scene.Scene, cfg config.SurfaceConfig, settings painter.Settings, logger painter.Logger) (int, error) {
	surface, err := ggsurface.New(cfg.Width, cfg.Height,
		ggsurface.WithOutputDir(cfg.OutputDir),
		ggsurface.WithBackground(backdrop),
	)
	if err != nil {
		return 0, err
	}
	defer surface.Close()

	clock := &stepClock{now: SessionStartTime}
	camera := newOrbitCamera(sc.Camera, surface.ViewportSize())

	h, err := newHost(sc, camera, painter.Dependencies{
		Clock:   clock,
		Canvas:  surface,
		Surface: surface,
		Logger:  logger,
		Meter:   PainterMeter,
	}, settings, clock.Now())
	if err != nil {
		return 0, err
	}
	defer h.close()
	published = func() int { return len(h.painter.Published()) }

	for i := 0; i < cfg.Frames; i++ {
		h.tick(clock.Advance(cfg.FrameStep))
		h.painter.Wait()
		if err := h.painter.Draw(); err != nil {
			return surface.Frames(), fmt.Errorf("frame %d: %w", i, err)
		}
		if err := surface.Err(); err != nil {
			return surface.Frames(), fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return surface.Frames(), nil
}
