// Package ggsurface is a headless overlay surface rendered with gogpu/gg.
// Each overlay pass starts from a transparent frame and can be written out
// as a numbered PNG.
package ggsurface

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// BaseFontSize is the text size in points at scale 1.
const BaseFontSize = 14

// Option configures a Surface.
type Option func(*Surface)

// WithOutputDir writes every finished overlay frame as a PNG into dir.
func WithOutputDir(dir string) Option {
	return func(s *Surface) {
		s.outputDir = dir
	}
}

// WithBackground fills each frame with clr instead of leaving it transparent.
func WithBackground(clr color.Color) Option {
	return func(s *Surface) {
		s.background = gg.FromColor(clr)
		s.opaque = true
	}
}

// Surface implements both the overlay surface and the primitive canvas.
// It is not safe for concurrent use; the render tick owns it.
type Surface struct {
	ctx    *gg.Context
	source *text.FontSource
	faces  map[float32]text.Face

	outputDir  string
	background gg.RGBA
	opaque     bool

	name    string
	frame   int
	lastErr error
}

// New creates a width x height surface.
func New(width, height int, opts ...Option) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}

	s := &Surface{
		ctx:    gg.NewContext(width, height),
		source: source,
		faces:  make(map[float32]text.Face),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output dir: %w", err)
		}
	}
	return s, nil
}

// ViewportSize returns the frame size in pixels.
func (s *Surface) ViewportSize() mgl32.Vec2 {
	return mgl32.Vec2{float32(s.ctx.Width()), float32(s.ctx.Height())}
}

// BeginOverlay clears the frame.
func (s *Surface) BeginOverlay(name string) bool {
	s.name = name
	if s.opaque {
		s.ctx.ClearWithColor(s.background)
	} else {
		s.ctx.Clear()
	}
	return true
}

// EndOverlay finishes the frame and saves it when an output dir is set.
func (s *Surface) EndOverlay() {
	s.frame++
	if s.outputDir == "" {
		return
	}
	path := filepath.Join(s.outputDir, fmt.Sprintf("%s_%04d.png", s.name, s.frame))
	if err := s.ctx.SavePNG(path); err != nil {
		s.lastErr = fmt.Errorf("saving %s: %w", path, err)
	}
}

// Frames returns the number of finished overlay passes.
func (s *Surface) Frames() int {
	return s.frame
}

// Err returns the last drawing or output error, if any.
func (s *Surface) Err() error {
	return s.lastErr
}

// Image returns the current frame.
func (s *Surface) Image() image.Image {
	return s.ctx.Image()
}

// Close releases the drawing context.
func (s *Surface) Close() error {
	return s.ctx.Close()
}

// StrokePolyline draws connected segments.
func (s *Surface) StrokePolyline(points []mgl32.Vec2, closed bool, clr color.RGBA, thickness float32) {
	if len(points) < 2 {
		return
	}
	s.path(points, closed)
	s.ctx.SetColor(clr)
	s.ctx.SetLineWidth(float64(thickness))
	s.record(s.ctx.Stroke())
}

// FillPolygon fills a closed outline.
func (s *Surface) FillPolygon(points []mgl32.Vec2, clr color.RGBA) {
	if len(points) < 3 {
		return
	}
	s.path(points, true)
	s.ctx.SetColor(clr)
	s.record(s.ctx.Fill())
}

// Circle fills the circle when thickness is 0, otherwise strokes it.
func (s *Surface) Circle(center mgl32.Vec2, radius float32, clr color.RGBA, thickness float32) {
	s.ctx.DrawCircle(float64(center[0]), float64(center[1]), float64(radius))
	s.ctx.SetColor(clr)
	if thickness == 0 {
		s.record(s.ctx.Fill())
		return
	}
	s.ctx.SetLineWidth(float64(thickness))
	s.record(s.ctx.Stroke())
}

// Text draws s centred on pos.
func (s *Surface) Text(pos mgl32.Vec2, str string, clr color.RGBA, scale float32) {
	s.ctx.SetFont(s.face(scale))
	s.ctx.SetColor(clr)
	s.ctx.DrawStringAnchored(str, float64(pos[0]), float64(pos[1]), 0.5, 0.5)
}

func (s *Surface) face(scale float32) text.Face {
	if scale <= 0 {
		scale = 1
	}
	f, ok := s.faces[scale]
	if !ok {
		f = s.source.Face(float64(BaseFontSize * scale))
		s.faces[scale] = f
	}
	return f
}

func (s *Surface) path(points []mgl32.Vec2, closed bool) {
	s.ctx.MoveTo(float64(points[0][0]), float64(points[0][1]))
	for _, p := range points[1:] {
		s.ctx.LineTo(float64(p[0]), float64(p[1]))
	}
	if closed {
		s.ctx.ClosePath()
	}
}

func (s *Surface) record(err error) {
	if err != nil {
		s.lastErr = err
	}
}
