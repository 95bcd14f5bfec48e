package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/OCAP2/painter/internal/config"
	"github.com/OCAP2/painter/internal/painter"
	"github.com/OCAP2/painter/internal/scene"
)

// host plays the game engine's part: it owns the camera, adds the scene's
// drawings and removes the timed ones.
type host struct {
	painter *painter.Painter
	camera  *orbitCamera
	logger  painter.Logger

	start   time.Time
	last    time.Time
	pending []scene.Entry
}

func newHost(sc *scene.Scene, camera *orbitCamera, deps painter.Dependencies, settings painter.Settings, now time.Time) (*host, error) {
	deps.Camera = camera
	deps.Ground = flatGround{}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	p, err := painter.New(AppName, deps, settings)
	if err != nil {
		return nil, fmt.Errorf("creating painter: %w", err)
	}

	entries, err := sc.Build(now)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("building scene: %w", err)
	}

	h := &host{
		painter: p,
		camera:  camera,
		logger:  deps.Logger,
		start:   now,
		last:    now,
	}
	for _, e := range entries {
		p.AddDrawing(e.Drawing)
		if e.RemoveIn > 0 {
			h.pending = append(h.pending, e)
		}
	}
	h.logger.Info("scene loaded", "drawings", len(entries), "timed", len(h.pending))
	return h, nil
}

// watchConfig pushes config file edits into the painter.
func (h *host) watchConfig() {
	config.Watch(h.painter.SetSettings, func(err error) {
		h.logger.Error("ignoring config change", "error", err)
	})
}

// tick advances the camera, removes due drawings and runs the update tick.
func (h *host) tick(now time.Time) {
	h.camera.Advance(float32(now.Sub(h.last).Seconds()))
	h.last = now

	elapsed := now.Sub(h.start)
	kept := h.pending[:0]
	for _, e := range h.pending {
		if elapsed >= e.RemoveIn {
			h.painter.RemoveDrawing(e.Drawing)
			h.logger.Debug("drawing removed", "name", e.Name)
			continue
		}
		kept = append(kept, e)
	}
	h.pending = kept

	h.painter.Update()
}

func (h *host) close() {
	h.painter.Close()
}
