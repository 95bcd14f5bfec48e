package primitive

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

type recordCanvas struct {
	calls []string
}

func (c *recordCanvas) StrokePolyline(points []mgl32.Vec2, closed bool, clr color.RGBA, thickness float32) {
	c.calls = append(c.calls, fmt.Sprintf("stroke %d closed=%v w=%v", len(points), closed, thickness))
}

func (c *recordCanvas) FillPolygon(points []mgl32.Vec2, clr color.RGBA) {
	c.calls = append(c.calls, fmt.Sprintf("fill %d", len(points)))
}

func (c *recordCanvas) Circle(center mgl32.Vec2, radius float32, clr color.RGBA, thickness float32) {
	c.calls = append(c.calls, fmt.Sprintf("circle r=%v", radius))
}

func (c *recordCanvas) Text(pos mgl32.Vec2, s string, clr color.RGBA, scale float32) {
	c.calls = append(c.calls, "text "+s)
}

var tri = []mgl32.Vec2{{0, 0}, {10, 0}, {0, 10}}

func TestPolyline_Draw(t *testing.T) {
	c := &recordCanvas{}

	NewPolyline(c, tri, color.RGBA{A: 255}, 0, true).Draw()
	NewPolyline(c, tri, color.RGBA{A: 255}, 2, false).Draw()

	assert.Equal(t, []string{"fill 3", "stroke 3 closed=false w=2"}, c.calls)
}

func TestPolyline_DrawSkipsDegenerate(t *testing.T) {
	c := &recordCanvas{}

	NewPolyline(c, tri[:2], color.RGBA{}, 0, true).Draw()
	NewPolyline(c, tri[:1], color.RGBA{}, 1, false).Draw()
	NewPolyline(c, nil, color.RGBA{}, 1, false).Draw()

	assert.Empty(t, c.calls)
}

func TestCircleAndText_Draw(t *testing.T) {
	c := &recordCanvas{}

	NewCircle(c, mgl32.Vec2{1, 1}, 5, color.RGBA{}, 1).Draw()
	NewCircle(c, mgl32.Vec2{1, 1}, 0, color.RGBA{}, 1).Draw()
	NewText(c, mgl32.Vec2{}, "hello", color.RGBA{}, 1).Draw()
	NewText(c, mgl32.Vec2{}, "", color.RGBA{}, 1).Draw()

	assert.Equal(t, []string{"circle r=5", "text hello"}, c.calls)
}

func TestTier(t *testing.T) {
	c := &recordCanvas{}

	assert.Equal(t, 0, Tier(NewPolyline(c, tri, color.RGBA{}, 0, true)))
	assert.Equal(t, 1, Tier(NewPolyline(c, tri, color.RGBA{}, 1.5, false)))
	assert.Equal(t, 2, Tier(NewCircle(c, mgl32.Vec2{}, 1, color.RGBA{}, 0)))
	assert.Equal(t, 2, Tier(NewText(c, mgl32.Vec2{}, "x", color.RGBA{}, 1)))
}

func TestFade(t *testing.T) {
	clr := color.RGBA{R: 200, G: 100, B: 50, A: 255}

	assert.Equal(t, clr, Fade(clr, 1))
	assert.Equal(t, color.RGBA{}, Fade(clr, 0))
	assert.Equal(t, color.RGBA{R: 100, G: 50, B: 25, A: 127}, Fade(clr, 0.5))
	assert.Equal(t, clr, Fade(clr, 3), "alpha is clamped")
}
