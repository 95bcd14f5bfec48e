// Package primitive holds the immutable screen-space drawables produced by a
// sweep and the Canvas port they draw through.
package primitive

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Primitive is a screen-space drawable built for a single tick.
type Primitive interface {
	Draw()
}

// Canvas is the immediate-mode drawing backend primitives render through.
type Canvas interface {
	StrokePolyline(points []mgl32.Vec2, closed bool, clr color.RGBA, thickness float32)
	FillPolygon(points []mgl32.Vec2, clr color.RGBA)
	// Circle strokes the outline, or fills it when thickness is 0.
	Circle(center mgl32.Vec2, radius float32, clr color.RGBA, thickness float32)
	Text(pos mgl32.Vec2, s string, clr color.RGBA, scale float32)
}

// Fade scales a premultiplied colour by alpha, clamped to [0,1].
func Fade(clr color.RGBA, alpha float32) color.RGBA {
	alpha = mgl32.Clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float32(clr.R) * alpha),
		G: uint8(float32(clr.G) * alpha),
		B: uint8(float32(clr.B) * alpha),
		A: uint8(float32(clr.A) * alpha),
	}
}

// Polyline is a screen-space polyline. A zero thickness fills the polygon.
type Polyline struct {
	canvas    Canvas
	points    []mgl32.Vec2
	clr       color.RGBA
	thickness float32
	closed    bool
}

// NewPolyline builds a polyline drawing on canvas. points is not copied and
// must not be modified afterwards.
func NewPolyline(canvas Canvas, points []mgl32.Vec2, clr color.RGBA, thickness float32, closed bool) *Polyline {
	return &Polyline{
		canvas:    canvas,
		points:    points,
		clr:       clr,
		thickness: thickness,
		closed:    closed,
	}
}

// Thickness returns the stroke width; 0 means filled.
func (p *Polyline) Thickness() float32 { return p.thickness }

// Points returns the screen points.
func (p *Polyline) Points() []mgl32.Vec2 { return p.points }

// Color returns the draw colour.
func (p *Polyline) Color() color.RGBA { return p.clr }

// Draw renders the polyline.
func (p *Polyline) Draw() {
	if p.thickness == 0 {
		if len(p.points) < 3 {
			return
		}
		p.canvas.FillPolygon(p.points, p.clr)
		return
	}
	if len(p.points) < 2 {
		return
	}
	p.canvas.StrokePolyline(p.points, p.closed, p.clr, p.thickness)
}

// Circle is a screen-space circle.
type Circle struct {
	canvas    Canvas
	center    mgl32.Vec2
	radius    float32
	clr       color.RGBA
	thickness float32
}

// NewCircle builds a circle drawing on canvas.
func NewCircle(canvas Canvas, center mgl32.Vec2, radius float32, clr color.RGBA, thickness float32) *Circle {
	return &Circle{canvas: canvas, center: center, radius: radius, clr: clr, thickness: thickness}
}

// Center returns the screen centre.
func (c *Circle) Center() mgl32.Vec2 { return c.center }

// Radius returns the screen radius in pixels.
func (c *Circle) Radius() float32 { return c.radius }

// Draw renders the circle.
func (c *Circle) Draw() {
	if c.radius <= 0 {
		return
	}
	c.canvas.Circle(c.center, c.radius, c.clr, c.thickness)
}

// Text is a screen-space label.
type Text struct {
	canvas Canvas
	pos    mgl32.Vec2
	text   string
	clr    color.RGBA
	scale  float32
}

// NewText builds a label drawing on canvas.
func NewText(canvas Canvas, pos mgl32.Vec2, text string, clr color.RGBA, scale float32) *Text {
	return &Text{canvas: canvas, pos: pos, text: text, clr: clr, scale: scale}
}

// Position returns the anchor in screen space.
func (t *Text) Position() mgl32.Vec2 { return t.pos }

// String returns the label.
func (t *Text) String() string { return t.text }

// Draw renders the label.
func (t *Text) Draw() {
	if t.text == "" {
		return
	}
	t.canvas.Text(t.pos, t.text, t.clr, t.scale)
}

// Tier orders primitives for drawing: filled polylines first, stroked
// polylines second, everything else last.
func Tier(p Primitive) int {
	if poly, ok := p.(*Polyline); ok {
		if poly.thickness == 0 {
			return 0
		}
		return 1
	}
	return 2
}
