package projection

import "github.com/go-gl/mathgl/mgl32"

// Ray parameters used when snapping points to the environment.
const (
	RayStartHeight = 10
	RayMaxDistance = 20
)

var (
	up   = mgl32.Vec3{0, 1, 0}
	down = mgl32.Vec3{0, -1, 0}
)

// Ground answers ray queries against the host's collision geometry.
type Ground interface {
	Raycast(origin, direction mgl32.Vec3, maxDistance float32) (mgl32.Vec3, bool)
}

// GroundFunc adapts a plain function to Ground.
type GroundFunc func(origin, direction mgl32.Vec3, maxDistance float32) (mgl32.Vec3, bool)

// Raycast calls f.
func (f GroundFunc) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (mgl32.Vec3, bool) {
	return f(origin, direction, maxDistance)
}

// ProjectOnGround snaps every point onto the ground below it, keeping the
// result inside the band [p.Y-height, p.Y+height].
// Points without a hit are dropped when removeMiss is set, otherwise they are
// lowered by height. A nil ground leaves points untouched.
func ProjectOnGround(points []mgl32.Vec3, height float32, ground Ground, removeMiss bool) []mgl32.Vec3 {
	if ground == nil {
		return points
	}

	out := make([]mgl32.Vec3, 0, len(points))
	for _, p := range points {
		hit, ok := ground.Raycast(p.Add(up.Mul(RayStartHeight)), down, RayMaxDistance)
		if !ok {
			if removeMiss {
				continue
			}
			out = append(out, p.Sub(up.Mul(height)))
			continue
		}
		hit[1] = mgl32.Clamp(hit[1], p[1]-height, p[1]+height)
		out = append(out, hit)
	}
	return out
}
