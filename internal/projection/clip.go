package projection

import "github.com/go-gl/mathgl/mgl32"

const (
	// PlaneZ is the depth boundary points behind the camera are moved onto.
	PlaneZ = 0.001
	// Epsilon is the distance under which consecutive clip output points collapse.
	Epsilon = 0.001
)

// WorldToCamera transforms a world point by the composed view-projection
// matrix and keeps the first three components. z carries the depth used for
// front/back tests.
func WorldToCamera(viewProj mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return viewProj.Mul4x1(p.Vec4(1)).Vec3()
}

// ClipBehindCamera walks the points as a closed ring and replaces every
// endpoint lying behind the camera (z <= 0) on an edge that crosses into
// view with the crossing point at z = PlaneZ. Points closer than Epsilon to
// the previously emitted one are skipped. Every returned point has z > 0.
func ClipBehindCamera(ring []mgl32.Vec3) []mgl32.Vec3 {
	n := len(ring)
	if n == 0 {
		return nil
	}

	out := make([]mgl32.Vec3, 0, n*2)
	for i := 0; i < n; i++ {
		prev := ring[(i-1+n)%n]
		curr := ring[i]

		if prev[2] > 0 && curr[2] <= 0 {
			curr = pointOnPlane(prev, curr)
		}
		if curr[2] > 0 && prev[2] <= 0 {
			prev = pointOnPlane(curr, prev)
		}

		if len(out) > 0 && prev.Sub(out[len(out)-1]).Len() > Epsilon {
			out = append(out, prev)
		}
		out = append(out, curr)
	}

	front := out[:0]
	for _, p := range out {
		if p[2] > 0 {
			front = append(front, p)
		}
	}
	return front
}

// pointOnPlane moves back along the segment towards front until it reaches
// z = PlaneZ.
func pointOnPlane(front, back mgl32.Vec3) mgl32.Vec3 {
	if front[2] < 0 || back[2] > 0 {
		return back
	}

	ratio := (PlaneZ - back[2]) / (front[2] - back[2])
	return mgl32.Vec3{
		(front[0]-back[0])*ratio + back[0],
		(front[1]-back[1])*ratio + back[1],
		PlaneZ,
	}
}
