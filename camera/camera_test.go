package camera_test

import (
	"math"
	"testing"

	"github.com/plus3/orrery/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewStartsOnZAxis(t *testing.T) {
	c := camera.New(800, 600)

	pos := c.Position()
	assert.InDelta(t, 0, pos.X, 1e-9)
	assert.InDelta(t, 0, pos.Y, 1e-9)
	assert.InDelta(t, camera.DefaultDistance, pos.Z, 1e-9)
	assert.Equal(t, camera.DefaultFOV, c.FOV)
}

func TestProjectCentersTarget(t *testing.T) {
	c := camera.New(800, 600)

	p, ok := c.Project(r3.Vec{})
	require.True(t, ok)
	assert.InDelta(t, 400, p.X, 1e-9)
	assert.InDelta(t, 300, p.Y, 1e-9)
	assert.InDelta(t, camera.DefaultDistance, p.Depth, 1e-9)
}

func TestProjectOrientation(t *testing.T) {
	c := camera.New(800, 600)

	right, ok := c.Project(r3.Vec{X: 10})
	require.True(t, ok)
	assert.Greater(t, right.X, 400.0)
	assert.InDelta(t, 300, right.Y, 1e-9)

	above, ok := c.Project(r3.Vec{Y: 10})
	require.True(t, ok)
	assert.Less(t, above.Y, 300.0)
}

func TestProjectEdgeOfFrustum(t *testing.T) {
	c := camera.New(600, 600)

	// A point on the top edge of a 75 degree frustum lands on row zero.
	y := camera.DefaultDistance * math.Tan(camera.DefaultFOV/2*math.Pi/180)
	p, ok := c.Project(r3.Vec{Y: y})
	require.True(t, ok)
	assert.InDelta(t, 0, p.Y, 1e-6)
}

func TestProjectClipsNearAndFar(t *testing.T) {
	c := camera.New(800, 600)

	_, ok := c.Project(r3.Vec{Z: 250})
	assert.False(t, ok, "behind the camera")

	_, ok = c.Project(r3.Vec{Z: -900})
	assert.False(t, ok, "beyond the far plane")
}

func TestOrbitKeepsDistance(t *testing.T) {
	c := camera.New(800, 600)
	c.Orbit(math.Pi/2, 0)

	pos := c.Position()
	assert.InDelta(t, camera.DefaultDistance, pos.X, 1e-9)
	assert.InDelta(t, 0, pos.Z, 1e-9)

	c.Orbit(0, -10)
	assert.Greater(t, c.Polar, 0.0)
	assert.InDelta(t, camera.DefaultDistance, r3.Norm(c.Position()), 1e-9)

	p, ok := c.Project(r3.Vec{})
	require.True(t, ok)
	assert.InDelta(t, 400, p.X, 1e-6)
}

func TestDollyClamps(t *testing.T) {
	c := camera.New(800, 600)

	c.Dolly(0.5)
	assert.InDelta(t, 100, c.Distance, 1e-9)

	c.Dolly(1e6)
	assert.Equal(t, camera.MaxDistance, c.Distance)

	c.Dolly(1e-9)
	assert.Equal(t, camera.MinDistance, c.Distance)

	c.Dolly(-1)
	assert.Equal(t, camera.MinDistance, c.Distance)
}

func TestPointScaleAttenuates(t *testing.T) {
	c := camera.New(800, 600)

	assert.InDelta(t, 3, c.PointScale(100), 1e-9)
	assert.InDelta(t, 2*c.PointScale(200), c.PointScale(100), 1e-9)
	assert.Zero(t, c.PointScale(0))
	assert.Greater(t, c.Scale(100), c.Scale(200))
}

func TestSetViewportGuardsZero(t *testing.T) {
	c := camera.New(800, 600)
	c.SetViewport(0, -4)

	assert.Equal(t, 1, c.Width)
	assert.Equal(t, 1, c.Height)
	assert.Equal(t, 1.0, c.Aspect())
}
