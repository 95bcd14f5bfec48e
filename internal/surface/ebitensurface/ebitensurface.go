// Package ebitensurface draws overlay primitives onto an ebiten screen.
package ebitensurface

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Surface implements the overlay surface and the primitive canvas on top of
// the image handed to the game's Draw. Set the target before each Draw tick.
type Surface struct {
	target *ebiten.Image
	face   *text.GoXFace
	width  int
	height int
}

// New creates a surface for a width x height logical screen.
func New(width, height int) *Surface {
	return &Surface{
		face:   text.NewGoXFace(basicfont.Face7x13),
		width:  width,
		height: height,
	}
}

// SetTarget sets the image the next overlay pass draws into.
func (s *Surface) SetTarget(screen *ebiten.Image) {
	s.target = screen
}

// Resize updates the logical screen size reported to the camera.
func (s *Surface) Resize(width, height int) {
	s.width, s.height = width, height
}

// ViewportSize returns the logical screen size.
func (s *Surface) ViewportSize() mgl32.Vec2 {
	return mgl32.Vec2{float32(s.width), float32(s.height)}
}

// BeginOverlay reports whether a target is set. The overlay draws straight
// onto the game screen, so name is not used.
func (s *Surface) BeginOverlay(name string) bool {
	return s.target != nil
}

// EndOverlay releases the target.
func (s *Surface) EndOverlay() {
	s.target = nil
}

// StrokePolyline draws connected segments.
func (s *Surface) StrokePolyline(points []mgl32.Vec2, closed bool, clr color.RGBA, thickness float32) {
	if len(points) < 2 {
		return
	}
	var path vector.Path
	s.trace(&path, points, closed)

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	vector.StrokePath(s.target, &path, &vector.StrokeOptions{
		Width:    thickness,
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}, op)
}

// FillPolygon fills a closed outline.
func (s *Surface) FillPolygon(points []mgl32.Vec2, clr color.RGBA) {
	if len(points) < 3 {
		return
	}
	var path vector.Path
	s.trace(&path, points, true)

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	vector.FillPath(s.target, &path, &vector.FillOptions{FillRule: vector.FillRuleNonZero}, op)
}

// Circle fills the circle when thickness is 0, otherwise strokes it.
func (s *Surface) Circle(center mgl32.Vec2, radius float32, clr color.RGBA, thickness float32) {
	if thickness == 0 {
		vector.FillCircle(s.target, center[0], center[1], radius, clr, true)
		return
	}
	vector.StrokeCircle(s.target, center[0], center[1], radius, thickness, clr, true)
}

// Text draws str centred on pos.
func (s *Surface) Text(pos mgl32.Vec2, str string, clr color.RGBA, scale float32) {
	if scale <= 0 {
		scale = 1
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(float64(pos[0]), float64(pos[1]))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(s.target, str, s.face, op)
}

func (s *Surface) trace(path *vector.Path, points []mgl32.Vec2, closed bool) {
	path.MoveTo(points[0][0], points[0][1])
	for _, p := range points[1:] {
		path.LineTo(p[0], p[1])
	}
	if closed {
		path.Close()
	}
}
