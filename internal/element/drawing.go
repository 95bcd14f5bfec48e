// Package element defines the world-space annotation contract and the
// lifecycle state every annotation carries.
package element

import (
	"time"

	"github.com/OCAP2/painter/internal/primitive"
	"github.com/go-gl/mathgl/mgl32"
)

// Drawing is a world-space annotation. Embedding Lifecycle provides both
// State and a default AdvanceAnimation.
type Drawing interface {
	State() *Lifecycle
	// AdvanceAnimation mutates only the drawing's own animation state.
	AdvanceAnimation(now time.Time)
	// ToScreenPrimitives projects the drawing for the current tick.
	ToScreenPrimitives(tick *Tick) ([]primitive.Primitive, error)
}

// Projector runs the projection pipeline for one camera snapshot.
type Projector interface {
	ComputeScreenPoints(points []mgl32.Vec3, closed bool) []mgl32.Vec2
	WorldToScreen(p mgl32.Vec3) (mgl32.Vec2, bool)
	ViewportSize() mgl32.Vec2
}

// Tick is what a drawing sees while being projected.
type Tick struct {
	Now       time.Time
	Projector Projector
	Canvas    primitive.Canvas
}
