package projection

import "github.com/go-gl/mathgl/mgl32"

// MinSampleLength is the smallest spacing Divide will resample with.
const MinSampleLength = 0.01

// Divide resamples a curve so consecutive points are roughly sampleLength apart.
// Each segment (and the closing segment when closed is set) contributes
// max(1, floor(len/sampleLength)) evenly spaced points starting at its first
// endpoint. Open curves keep their final point.
// Curves with fewer than 2 points, or a sampleLength <= MinSampleLength,
// are returned unchanged.
func Divide(points []mgl32.Vec3, sampleLength float32, closed bool) []mgl32.Vec3 {
	if len(points) < 2 || sampleLength <= MinSampleLength {
		return points
	}

	out := make([]mgl32.Vec3, 0, len(points)*2)
	for i := 1; i < len(points); i++ {
		out = appendDashPoints(out, points[i-1], points[i], sampleLength)
	}

	last := points[len(points)-1]
	if closed {
		out = appendDashPoints(out, last, points[0], sampleLength)
	} else {
		out = append(out, last)
	}
	return out
}

func appendDashPoints(dst []mgl32.Vec3, from, to mgl32.Vec3, length float32) []mgl32.Vec3 {
	dir := to.Sub(from)
	count := int(dir.Len() / length)
	if count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		dst = append(dst, from.Add(dir.Mul(float32(i)/float32(count))))
	}
	return dst
}
