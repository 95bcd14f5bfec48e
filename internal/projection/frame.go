// Package projection turns world-space point sequences into clipped,
// perspective-correct screen-space points.
//
// The pipeline is: Divide -> ProjectOnGround -> WorldToCamera ->
// ClipBehindCamera -> ToScreen. Every stage is a pure function; Frame binds
// one camera snapshot and the ground settings so shapes can run the whole
// chain with a single call.
package projection

import "github.com/go-gl/mathgl/mgl32"

// Camera supplies the host camera state. It is queried once per frame.
// Matrices use the column-vector convention: clip = Projection * View * world.
type Camera interface {
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	ViewportSize() mgl32.Vec2
	ViewportOrigin() mgl32.Vec2
}

// Settings controls resampling and ground projection.
type Settings struct {
	SampleLength     float32
	DrawingHeight    float32
	RemoveGroundMiss bool
}

// Frame is an immutable camera snapshot for one tick.
type Frame struct {
	viewProj mgl32.Mat4
	size     mgl32.Vec2
	origin   mgl32.Vec2
	ground   Ground
	settings Settings
}

// NewFrame snapshots the camera. ground may be nil to skip ground projection.
func NewFrame(camera Camera, ground Ground, settings Settings) *Frame {
	return &Frame{
		viewProj: camera.ProjectionMatrix().Mul4(camera.ViewMatrix()),
		size:     camera.ViewportSize(),
		origin:   camera.ViewportOrigin(),
		ground:   ground,
		settings: settings,
	}
}

// ViewportSize returns the viewport size captured for this frame.
func (f *Frame) ViewportSize() mgl32.Vec2 {
	return f.size
}

// ComputeScreenPoints runs the full pipeline over a world-space curve.
// Empty or fully off-screen input yields an empty result.
func (f *Frame) ComputeScreenPoints(points []mgl32.Vec3, closed bool) []mgl32.Vec2 {
	world := ProjectOnGround(
		Divide(points, f.settings.SampleLength, closed),
		f.settings.DrawingHeight,
		f.ground,
		f.settings.RemoveGroundMiss,
	)
	if len(world) == 0 {
		return nil
	}

	cam := make([]mgl32.Vec3, len(world))
	for i, p := range world {
		cam[i] = WorldToCamera(f.viewProj, p)
	}

	clipped := ClipBehindCamera(cam)
	screen := make([]mgl32.Vec2, len(clipped))
	for i, p := range clipped {
		screen[i] = ToScreen(p, f.size, f.origin)
	}
	return screen
}

// WorldToScreen projects a single anchor point. ok is false when the point is
// behind the camera.
func (f *Frame) WorldToScreen(p mgl32.Vec3) (screen mgl32.Vec2, ok bool) {
	cam := WorldToCamera(f.viewProj, p)
	if cam[2] <= 0 {
		return mgl32.Vec2{}, false
	}
	return ToScreen(cam, f.size, f.origin), true
}
