package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// PathSegments is the default sampling of an orbit path.
const PathSegments = 50

// Tilt is an Euler rotation in degrees, applied about Z, then Y, then X.
type Tilt struct {
	X, Y, Z float64
}

// Rotate applies the tilt to p.
func (t Tilt) Rotate(p r3.Vec) r3.Vec {
	const deg = math.Pi / 180
	if t.Z != 0 {
		p = r3.NewRotation(t.Z*deg, r3.Vec{Z: 1}).Rotate(p)
	}
	if t.Y != 0 {
		p = r3.NewRotation(t.Y*deg, r3.Vec{Y: 1}).Rotate(p)
	}
	if t.X != 0 {
		p = r3.NewRotation(t.X*deg, r3.Vec{X: 1}).Rotate(p)
	}
	return p
}

// EllipsePath samples a closed ellipse centred on the origin in the XY plane
// and tilts it. The result has segments+1 points and the last one repeats the
// first. A segments value below 1 uses PathSegments.
func EllipsePath(xRadius, yRadius float64, segments int, tilt Tilt) []r3.Vec {
	if segments < 1 {
		segments = PathSegments
	}

	points := make([]r3.Vec, segments+1)
	for i := range points {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		sin, cos := math.Sincos(theta)
		points[i] = tilt.Rotate(r3.Vec{X: xRadius * cos, Y: yRadius * sin})
	}
	return points
}
