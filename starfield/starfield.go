// Package starfield generates the background star layers: points sampled
// uniformly over spherical shells, coloured with a muted blue hue.
package starfield

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

// Shell bounds and colour of every generated star.
const (
	MinRadius  = 500.0
	MaxRadius  = 1000.0
	Hue        = 0.6
	Saturation = 0.2
)

// SpinRate is the starfield's rotation about the y-axis in radians per
// second, a slow clockwise drift.
const SpinRate = -0.012

var ErrInvalidPointSize = errors.New("point size must be a finite, non-negative number")

// Layer describes one point cloud.
type Layer struct {
	Count     int
	PointSize float64
}

// Config lists the layers to generate, nearest-looking last.
type Config struct {
	Layers []Layer
}

// DefaultConfig returns the three stock layers: a dense field of small
// points, a sparse field of large ones, and a handful of very large ones.
func DefaultConfig() Config {
	return Config{Layers: []Layer{
		{Count: 10_000_000, PointSize: 5},
		{Count: 500, PointSize: 50},
		{Count: 15, PointSize: 250},
	}}
}

// Validate rejects point sizes that cannot be rendered. Counts are not
// checked; a non-positive count produces an empty layer.
func (c Config) Validate() error {
	for i, l := range c.Layers {
		if math.IsNaN(l.PointSize) || math.IsInf(l.PointSize, 0) || l.PointSize < 0 {
			return fmt.Errorf("layer %d size %v: %w", i, l.PointSize, ErrInvalidPointSize)
		}
	}
	return nil
}

// Star is one generated point.
type Star struct {
	Position r3.Vec
	Color    colorful.Color
}

// Points is a generated layer stored as flat xyz and rgb buffers, ready to
// upload or walk without per-star allocations.
type Points struct {
	PointSize float64
	Positions []float32
	Colors    []float32
}

// Len returns the number of stars in the layer.
func (p *Points) Len() int {
	return len(p.Positions) / 3
}

// At returns star i.
func (p *Points) At(i int) Star {
	j := 3 * i
	return Star{
		Position: r3.Vec{X: float64(p.Positions[j]), Y: float64(p.Positions[j+1]), Z: float64(p.Positions[j+2])},
		Color:    colorful.Color{R: float64(p.Colors[j]), G: float64(p.Colors[j+1]), B: float64(p.Colors[j+2])},
	}
}

// Starfield groups the generated layers. Spin is the group rotation about the
// y-axis; star positions themselves never change.
type Starfield struct {
	Layers []*Points
	Spin   float64
}

// Len returns the total number of stars.
func (s *Starfield) Len() int {
	n := 0
	for _, l := range s.Layers {
		n += l.Len()
	}
	return n
}

// Rotate advances the spin by dt seconds at SpinRate.
func (s *Starfield) Rotate(dt float64) {
	s.Spin = math.Remainder(s.Spin+SpinRate*dt, 2*math.Pi)
}

// Generate builds every layer of cfg from rng.
func Generate(rng *rand.Rand, cfg Config) *Starfield {
	field := &Starfield{Layers: make([]*Points, 0, len(cfg.Layers))}
	for _, layer := range cfg.Layers {
		field.Layers = append(field.Layers, generateLayer(rng, layer))
	}
	return field
}

func generateLayer(rng *rand.Rand, layer Layer) *Points {
	count := max(layer.Count, 0)
	points := &Points{
		PointSize: layer.PointSize,
		Positions: make([]float32, 0, 3*count),
		Colors:    make([]float32, 0, 3*count),
	}

	for range count {
		p := RandomSpherePoint(rng)
		c := colorful.Hsl(Hue*360, Saturation, rng.Float64())
		points.Positions = append(points.Positions, float32(p.X), float32(p.Y), float32(p.Z))
		points.Colors = append(points.Colors, float32(c.R), float32(c.G), float32(c.B))
	}
	return points
}

// RandomSpherePoint draws a radius uniformly from [MinRadius, MaxRadius) and
// a direction uniformly over the sphere. The polar angle comes from
// acos(2v-1) so points do not bunch up at the poles.
func RandomSpherePoint(rng *rand.Rand) r3.Vec {
	radius := rng.Float64()*(MaxRadius-MinRadius) + MinRadius
	theta := 2 * math.Pi * rng.Float64()
	phi := math.Acos(2*rng.Float64() - 1)

	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return r3.Vec{
		X: radius * sinPhi * cosTheta,
		Y: radius * sinPhi * sinTheta,
		Z: radius * cosPhi,
	}
}
