package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/OCAP2/painter/internal/config"
	"github.com/OCAP2/painter/internal/painter"
	"github.com/OCAP2/painter/internal/scene"
	"github.com/OCAP2/painter/internal/surface/ebitensurface"
	"github.com/hajimehoshi/ebiten/v2"
)

var backdrop = color.RGBA{R: 20, G: 24, B: 28, A: 255}

// game drives the painter from ebiten: Update is the update tick, Draw the
// render tick.
type game struct {
	host    *host
	surface *ebitensurface.Surface
	width   int
	height  int
}

func (g *game) Update() error {
	g.host.tick(time.Now())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(backdrop)
	g.surface.SetTarget(screen)
	if err := g.host.painter.Draw(); err != nil {
		Logger.Error("Draw failed", "error", err)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func runWindow(sc *scene.Scene) error {
	cfg := config.GetSurfaceConfig()
	settings, err := config.GetPainterSettings()
	if err != nil {
		return err
	}

	surface := ebitensurface.New(cfg.Width, cfg.Height)
	camera := newOrbitCamera(sc.Camera, surface.ViewportSize())

	h, err := newHost(sc, camera, painter.Dependencies{
		Canvas:  surface,
		Surface: surface,
		Logger:  PainterLogger,
		Meter:   PainterMeter,
	}, settings, time.Now())
	if err != nil {
		return err
	}
	defer h.close()
	published = func() int { return len(h.painter.Published()) }
	h.watchConfig()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	if err := ebiten.RunGame(&game{host: h, surface: surface, width: cfg.Width, height: cfg.Height}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
