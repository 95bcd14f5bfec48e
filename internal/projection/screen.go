package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ToScreen performs the perspective divide and maps the normalized [-1,1]
// range onto the viewport. Screen y grows downwards.
func ToScreen(p mgl32.Vec3, size, origin mgl32.Vec2) mgl32.Vec2 {
	depth := float32(math.Abs(float64(p[2])))
	x := p[0] / depth
	y := p[1] / depth

	return mgl32.Vec2{
		0.5*size[0]*(x+1) + origin[0],
		0.5*size[1]*(1-y) + origin[1],
	}
}
