// Package shape provides the stock world-space annotations: paths, zones,
// ground circles and text markers.
//
// Geometry is fixed at construction; only the embedded lifecycle changes
// after a shape has been handed to the painter.
package shape

import (
	"image/color"
	"math"

	"github.com/OCAP2/painter/internal/element"
	"github.com/OCAP2/painter/internal/primitive"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCircleSegments is the ring resolution used when none is given.
const DefaultCircleSegments = 48

var (
	_ element.Drawing = (*Path)(nil)
	_ element.Drawing = (*Zone)(nil)
	_ element.Drawing = (*Circle)(nil)
	_ element.Drawing = (*Marker)(nil)
)

// Path is an open polyline laid along the ground.
type Path struct {
	element.Lifecycle

	points    []mgl32.Vec3
	clr       color.RGBA
	thickness float32
}

// NewPath copies points into a new path.
func NewPath(points []mgl32.Vec3, clr color.RGBA, thickness float32) *Path {
	return &Path{
		points:    append([]mgl32.Vec3(nil), points...),
		clr:       clr,
		thickness: thickness,
	}
}

// ToScreenPrimitives projects the path.
func (p *Path) ToScreenPrimitives(tick *element.Tick) ([]primitive.Primitive, error) {
	pts := tick.Projector.ComputeScreenPoints(p.points, false)
	if len(pts) < 2 {
		return nil, nil
	}
	clr := primitive.Fade(p.clr, p.Alpha())
	return []primitive.Primitive{primitive.NewPolyline(tick.Canvas, pts, clr, p.thickness, false)}, nil
}

// Zone is a closed area drawn with an optional fill and an optional outline.
type Zone struct {
	element.Lifecycle

	points    []mgl32.Vec3
	fill      color.RGBA
	outline   color.RGBA
	thickness float32
}

// NewZone copies points into a new zone. A zero fill alpha skips the fill and
// a zero thickness skips the outline.
func NewZone(points []mgl32.Vec3, fill, outline color.RGBA, thickness float32) *Zone {
	return &Zone{
		points:    append([]mgl32.Vec3(nil), points...),
		fill:      fill,
		outline:   outline,
		thickness: thickness,
	}
}

// ToScreenPrimitives projects the zone.
func (z *Zone) ToScreenPrimitives(tick *element.Tick) ([]primitive.Primitive, error) {
	return ring(tick, z.points, z.fill, z.outline, z.thickness, z.Alpha()), nil
}

// Circle is a ground circle around a world-space centre.
type Circle struct {
	element.Lifecycle

	points    []mgl32.Vec3
	fill      color.RGBA
	outline   color.RGBA
	thickness float32
}

// NewCircle approximates a horizontal circle with segments points.
func NewCircle(center mgl32.Vec3, radius float32, segments int, fill, outline color.RGBA, thickness float32) *Circle {
	if segments < 3 {
		segments = DefaultCircleSegments
	}
	pts := make([]mgl32.Vec3, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = center.Add(mgl32.Vec3{
			radius * float32(math.Cos(a)),
			0,
			radius * float32(math.Sin(a)),
		})
	}
	return &Circle{points: pts, fill: fill, outline: outline, thickness: thickness}
}

// ToScreenPrimitives projects the circle.
func (c *Circle) ToScreenPrimitives(tick *element.Tick) ([]primitive.Primitive, error) {
	return ring(tick, c.points, c.fill, c.outline, c.thickness, c.Alpha()), nil
}

func ring(tick *element.Tick, points []mgl32.Vec3, fill, outline color.RGBA, thickness, alpha float32) []primitive.Primitive {
	pts := tick.Projector.ComputeScreenPoints(points, true)
	if len(pts) < 3 {
		return nil
	}

	var out []primitive.Primitive
	if fill.A > 0 {
		out = append(out, primitive.NewPolyline(tick.Canvas, pts, primitive.Fade(fill, alpha), 0, true))
	}
	if thickness > 0 && outline.A > 0 {
		out = append(out, primitive.NewPolyline(tick.Canvas, pts, primitive.Fade(outline, alpha), thickness, true))
	}
	return out
}

// Marker is a text label pinned to a world point, with an optional dot.
type Marker struct {
	element.Lifecycle

	position  mgl32.Vec3
	text      string
	clr       color.RGBA
	scale     float32
	dotRadius float32
}

// NewMarker creates a label. A dotRadius of 0 draws the text only.
func NewMarker(position mgl32.Vec3, text string, clr color.RGBA, scale, dotRadius float32) *Marker {
	return &Marker{position: position, text: text, clr: clr, scale: scale, dotRadius: dotRadius}
}

// ToScreenPrimitives projects the marker anchor.
func (m *Marker) ToScreenPrimitives(tick *element.Tick) ([]primitive.Primitive, error) {
	pos, ok := tick.Projector.WorldToScreen(m.position)
	if !ok {
		return nil, nil
	}

	clr := primitive.Fade(m.clr, m.Alpha())
	var out []primitive.Primitive
	if m.dotRadius > 0 {
		out = append(out, primitive.NewCircle(tick.Canvas, pos, m.dotRadius, clr, 0))
	}
	if m.text != "" {
		out = append(out, primitive.NewText(tick.Canvas, pos, m.text, clr, m.scale))
	}
	return out, nil
}
