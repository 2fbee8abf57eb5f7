// Package camera implements a perspective camera orbiting a target point,
// used by both renderers to turn scene coordinates into screen coordinates.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultFOV      = 75.0
	DefaultNear     = 0.1
	DefaultFar      = 1000.0
	DefaultDistance = 200.0

	MinDistance = 1.0
	MaxDistance = 1000.0

	// polarLimit keeps the camera off the poles where the up vector degenerates.
	polarLimit = 1e-3
)

var worldUp = r3.Vec{Y: 1}

// Camera looks at Target from Distance away. Azimuth is measured about the
// y-axis from +z, Polar from +y, both in radians.
type Camera struct {
	Target   r3.Vec
	Azimuth  float64
	Polar    float64
	Distance float64

	FOV  float64 // vertical, degrees
	Near float64
	Far  float64

	Width  int
	Height int
}

// New returns a camera on the +z axis looking at the origin.
func New(width, height int) Camera {
	return Camera{
		Polar:    math.Pi / 2,
		Distance: DefaultDistance,
		FOV:      DefaultFOV,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Width:    max(width, 1),
		Height:   max(height, 1),
	}
}

// SetViewport updates the output size. Sizes below one pixel are raised to one.
func (c *Camera) SetViewport(width, height int) {
	c.Width = max(width, 1)
	c.Height = max(height, 1)
}

// Aspect is width over height.
func (c *Camera) Aspect() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Orbit rotates the camera around the target.
func (c *Camera) Orbit(dAzimuth, dPolar float64) {
	c.Azimuth = math.Remainder(c.Azimuth+dAzimuth, 2*math.Pi)
	c.Polar = min(max(c.Polar+dPolar, polarLimit), math.Pi-polarLimit)
}

// Dolly scales the distance to the target; factors below one move closer.
func (c *Camera) Dolly(factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	c.Distance = min(max(c.Distance*factor, MinDistance), MaxDistance)
}

// Position returns the eye point.
func (c *Camera) Position() r3.Vec {
	sinP, cosP := math.Sincos(c.Polar)
	sinA, cosA := math.Sincos(c.Azimuth)
	return r3.Add(c.Target, r3.Scale(c.Distance, r3.Vec{
		X: sinP * sinA,
		Y: cosP,
		Z: sinP * cosA,
	}))
}

// Projection is a point in screen space. X and Y are pixels from the top-left
// corner, Depth is the distance along the view direction.
type Projection struct {
	X, Y  float64
	Depth float64
}

// Project maps p to the screen. It reports false when p lies outside the
// near and far planes; points beside the viewport are still returned.
func (c *Camera) Project(p r3.Vec) (Projection, bool) {
	eye := c.Position()
	forward := r3.Unit(r3.Sub(c.Target, eye))
	right := r3.Unit(r3.Cross(forward, worldUp))
	up := r3.Cross(right, forward)

	rel := r3.Sub(p, eye)
	depth := r3.Dot(rel, forward)
	if depth < c.Near || depth > c.Far {
		return Projection{}, false
	}

	f := c.focal()
	ndcX := r3.Dot(rel, right) * f / c.Aspect() / depth
	ndcY := r3.Dot(rel, up) * f / depth

	return Projection{
		X:     (ndcX + 1) / 2 * float64(c.Width),
		Y:     (1 - ndcY) / 2 * float64(c.Height),
		Depth: depth,
	}, true
}

// Scale converts a world-space length at depth into pixels.
func (c *Camera) Scale(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return c.focal() * float64(c.Height) / 2 / depth
}

// PointScale is the size attenuation factor for point sprites at depth: a
// point of size s covers s*PointScale(depth) pixels.
func (c *Camera) PointScale(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return float64(c.Height) / 2 / depth
}

func (c *Camera) focal() float64 {
	return 1 / math.Tan(c.FOV*math.Pi/360)
}
