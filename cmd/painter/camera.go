package main

import (
	"math"
	"sync"

	"github.com/OCAP2/painter/internal/scene"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	nearPlane = 0.1
	farPlane  = 1000
)

// orbitCamera circles its target at a fixed height. Update and sweep run on
// different goroutines, so the state is guarded.
type orbitCamera struct {
	mu       sync.RWMutex
	eye      mgl32.Vec3
	target   mgl32.Vec3
	fovy     float32
	orbit    float32 // radians per second
	viewport mgl32.Vec2
}

func newOrbitCamera(cfg scene.Camera, viewport mgl32.Vec2) *orbitCamera {
	eye := mgl32.Vec3(cfg.Eye)
	if eye.Len() == 0 {
		eye = mgl32.Vec3{0, 20, -30}
	}
	return &orbitCamera{
		eye:      eye,
		target:   mgl32.Vec3(cfg.Target),
		fovy:     mgl32.DegToRad(cfg.FOV),
		orbit:    mgl32.DegToRad(cfg.Orbit),
		viewport: viewport,
	}
}

// Advance rotates the eye around the target's vertical axis.
func (c *orbitCamera) Advance(seconds float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.orbit == 0 {
		return
	}
	rot := mgl32.HomogRotate3DY(c.orbit * seconds)
	offset := rot.Mul4x1(c.eye.Sub(c.target).Vec4(0)).Vec3()
	c.eye = c.target.Add(offset)
}

func (c *orbitCamera) SetViewport(size mgl32.Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = size
}

func (c *orbitCamera) Eye() mgl32.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.eye
}

func (c *orbitCamera) ViewMatrix() mgl32.Mat4 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return mgl32.LookAtV(c.eye, c.target, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix is a GL perspective whose z row is replaced by the w row,
// so the camera-space z it produces is the view depth.
func (c *orbitCamera) ProjectionMatrix() mgl32.Mat4 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	aspect := float32(1)
	if c.viewport[1] > 0 {
		aspect = c.viewport[0] / c.viewport[1]
	}
	p := mgl32.Perspective(c.fovy, aspect, nearPlane, farPlane)
	p.SetRow(2, p.Row(3))
	return p
}

func (c *orbitCamera) ViewportSize() mgl32.Vec2 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewport
}

func (c *orbitCamera) ViewportOrigin() mgl32.Vec2 {
	return mgl32.Vec2{}
}

// flatGround is an endless horizontal plane.
type flatGround struct {
	height float32
}

func (g flatGround) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (mgl32.Vec3, bool) {
	if direction[1] == 0 {
		return mgl32.Vec3{}, false
	}
	t := (g.height - origin[1]) / direction[1]
	if t < 0 || t > maxDistance || math.IsNaN(float64(t)) {
		return mgl32.Vec3{}, false
	}
	return origin.Add(direction.Mul(t)), true
}
