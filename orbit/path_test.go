package orbit_test

import (
	"math"
	"testing"

	"github.com/plus3/orrery/orbit"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestEllipsePathIsClosedCircle(t *testing.T) {
	points := orbit.EllipsePath(20, 20, orbit.PathSegments, orbit.Tilt{X: 65, Y: 22})

	assert.Len(t, points, orbit.PathSegments+1)
	assertVec(t, points[0], points[len(points)-1])
	for _, p := range points {
		assert.InDelta(t, 20, r3.Norm(p), 1e-9)
	}
}

func TestEllipsePathDefaultsSegments(t *testing.T) {
	assert.Len(t, orbit.EllipsePath(5, 5, 0, orbit.Tilt{}), orbit.PathSegments+1)
}

func TestTiltRotatesIntoPlane(t *testing.T) {
	// A 90 degree tilt about X lays the XY-plane circle onto the XZ plane.
	points := orbit.EllipsePath(10, 10, 4, orbit.Tilt{X: 90})

	assertVec(t, r3.Vec{X: 10}, points[0])
	assertVec(t, r3.Vec{Z: 10}, points[1])
	for _, p := range points {
		assert.InDelta(t, 0, p.Y, 1e-9)
	}
}

func TestTiltOrderIsZThenYThenX(t *testing.T) {
	tilt := orbit.Tilt{X: 90, Y: 90}
	// Y first: (1,0,0) -> (0,0,-1); then X: (0,0,-1) -> (0,1,0).
	assertVec(t, r3.Vec{Y: 1}, tilt.Rotate(r3.Vec{X: 1}))

	tilt = orbit.Tilt{Z: 90}
	got := tilt.Rotate(r3.Vec{X: 1})
	assert.InDelta(t, 1, got.Y, 1e-9)
	assert.InDelta(t, 0, math.Abs(got.X), 1e-9)
}
