// Package orbit computes the positions of bodies on fixed circular orbits.
//
// Positions are a closed-form function of absolute elapsed time, so a body
// can be placed for any instant without replaying earlier frames and never
// drifts off its orbit.
package orbit

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrInvalidDistance = errors.New("orbital distance must be a finite, non-negative number")
	ErrNonFinite       = errors.New("orbital parameter must be finite")
	ErrNoParent        = errors.New("moon requires a parent body")
)

// Body orbits the origin on a circle of radius Distance whose plane is tilted
// about the x-axis by Inclination degrees.
type Body struct {
	Distance     float64
	AngularSpeed float64 // radians per millisecond at multiplier 1
	Inclination  float64 // degrees
	Position     r3.Vec
}

// NewBody validates the orbital elements and returns a body placed at its
// elapsed-zero position.
func NewBody(distance, angularSpeed, inclination float64) (*Body, error) {
	if err := checkDistance(distance); err != nil {
		return nil, err
	}
	if !finite(angularSpeed) {
		return nil, fmt.Errorf("angular speed %v: %w", angularSpeed, ErrNonFinite)
	}
	if !finite(inclination) {
		return nil, fmt.Errorf("inclination %v: %w", inclination, ErrNonFinite)
	}

	b := &Body{
		Distance:     distance,
		AngularSpeed: angularSpeed,
		Inclination:  inclination,
	}
	b.Advance(0, DefaultSpeed)
	return b, nil
}

// Advance moves the body to where it is after elapsed at the given speed
// multiplier.
func (b *Body) Advance(elapsed time.Duration, multiplier float64) {
	b.Position = Position(b.Distance, Angle(elapsed, b.AngularSpeed, multiplier), b.Inclination)
}

// Moon orbits a parent body in the parent's local frame. Its orbit is never
// inclined, and Position is relative to the parent.
type Moon struct {
	Distance     float64
	AngularSpeed float64
	Position     r3.Vec
	Parent       *Body
}

// NewMoon validates the elements and attaches the moon to parent.
func NewMoon(distance, angularSpeed float64, parent *Body) (*Moon, error) {
	if parent == nil {
		return nil, ErrNoParent
	}
	if err := checkDistance(distance); err != nil {
		return nil, err
	}
	if !finite(angularSpeed) {
		return nil, fmt.Errorf("angular speed %v: %w", angularSpeed, ErrNonFinite)
	}

	m := &Moon{
		Distance:     distance,
		AngularSpeed: angularSpeed,
		Parent:       parent,
	}
	m.Advance(0, DefaultSpeed)
	return m, nil
}

// Advance moves the moon within its parent's frame.
func (m *Moon) Advance(elapsed time.Duration, multiplier float64) {
	m.Position = Position(m.Distance, Angle(elapsed, m.AngularSpeed, multiplier), 0)
}

// World returns the moon's position in the parent's coordinate space, that is
// the parent's position plus the local offset. A detached moon reports its
// local offset.
func (m *Moon) World() r3.Vec {
	if m.Parent == nil {
		return m.Position
	}
	return r3.Add(m.Parent.Position, m.Position)
}

// Advance recomputes every body and moon for the given instant. Moons only
// get their parent-relative offset; their parents are updated independently.
func Advance(bodies []*Body, moons []*Moon, elapsed time.Duration, multiplier float64) {
	multiplier = ClampSpeed(multiplier)
	for _, b := range bodies {
		b.Advance(elapsed, multiplier)
	}
	for _, m := range moons {
		m.Advance(elapsed, multiplier)
	}
}

// Angle is the orbital phase after elapsed. The multiplier is clamped.
func Angle(elapsed time.Duration, angularSpeed, multiplier float64) float64 {
	ms := float64(elapsed) / float64(time.Millisecond)
	return ms * angularSpeed * ClampSpeed(multiplier)
}

// Position places a point at phase angle on a circle of radius distance
// tilted by inclination degrees about the x-axis. At angle zero the point is
// (distance, 0, 0) for every inclination.
func Position(distance, angle, inclination float64) r3.Vec {
	incl := inclination * math.Pi / 180
	sin, cos := math.Sincos(angle)
	return r3.Vec{
		X: distance * cos,
		Y: distance * sin * math.Sin(incl),
		Z: distance * sin * math.Cos(incl),
	}
}

func checkDistance(distance float64) error {
	if !finite(distance) || distance < 0 {
		return fmt.Errorf("distance %v: %w", distance, ErrInvalidDistance)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
