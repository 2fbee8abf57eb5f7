package scene

import (
	"context"
	"math"

	"github.com/plus3/orrery/orbit"
)

// SpeedControl is the singleton behind the speed slider. The value is always
// within [orbit.MinSpeed, orbit.MaxSpeed] and snapped to orbit.SpeedStep.
type SpeedControl struct {
	value float64
	set   bool
}

// NewSpeedControl returns a control at the clamped initial value.
func NewSpeedControl(initial float64) SpeedControl {
	var s SpeedControl
	s.Set(initial)
	return s
}

// Set stores v, clamped and snapped to the slider step.
func (s *SpeedControl) Set(v float64) {
	v = orbit.ClampSpeed(v)
	v = math.Round(v/orbit.SpeedStep) * orbit.SpeedStep
	s.value = orbit.ClampSpeed(v)
	s.set = true
}

// Nudge moves the value by steps slider increments.
func (s *SpeedControl) Nudge(steps int) {
	s.Set(s.Value() + float64(steps)*orbit.SpeedStep)
}

// Value returns the current multiplier. A zero control reports the default.
func (s *SpeedControl) Value() float64 {
	if !s.set {
		return orbit.DefaultSpeed
	}
	return s.value
}

type speedKey struct{}

// WithSpeed returns a context carrying the frame's speed multiplier.
func WithSpeed(ctx context.Context, speed float64) context.Context {
	return context.WithValue(ctx, speedKey{}, speed)
}

// SpeedFrom returns the multiplier carried by ctx, clamped, or the default.
func SpeedFrom(ctx context.Context) float64 {
	if ctx == nil {
		return orbit.DefaultSpeed
	}
	if v, ok := ctx.Value(speedKey{}).(float64); ok {
		return orbit.ClampSpeed(v)
	}
	return orbit.DefaultSpeed
}
