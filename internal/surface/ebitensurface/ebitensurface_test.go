package ebitensurface

import (
	"testing"

	"github.com/OCAP2/painter/internal/primitive"
	"github.com/OCAP2/painter/internal/render"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

var (
	_ primitive.Canvas = (*Surface)(nil)
	_ render.Surface   = (*Surface)(nil)
)

// Drawing needs a running graphics driver; these tests cover the surface
// state only.

func TestBeginOverlay_NoTarget(t *testing.T) {
	s := New(640, 480)
	assert.False(t, s.BeginOverlay("painter"))
}

func TestViewportSize(t *testing.T) {
	s := New(640, 480)
	assert.Equal(t, mgl32.Vec2{640, 480}, s.ViewportSize())

	s.Resize(800, 600)
	assert.Equal(t, mgl32.Vec2{800, 600}, s.ViewportSize())
}
