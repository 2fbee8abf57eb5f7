package orbit

import "math"

// Range and default of the global speed multiplier.
const (
	MinSpeed     = 0.1
	MaxSpeed     = 2.0
	DefaultSpeed = 1.0
	SpeedStep    = 0.1
)

// ClampSpeed limits m to [MinSpeed, MaxSpeed]. NaN maps to DefaultSpeed.
func ClampSpeed(m float64) float64 {
	switch {
	case math.IsNaN(m):
		return DefaultSpeed
	case m < MinSpeed:
		return MinSpeed
	case m > MaxSpeed:
		return MaxSpeed
	}
	return m
}
