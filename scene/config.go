package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/starfield"
)

var (
	ErrInvalidRadius = errors.New("radius must be a finite, non-negative number")
	ErrInvalidColor  = errors.New("color must be a #rrggbb hex string")
	ErrUnknownParent = errors.New("parent body not found")
	ErrDuplicateName = errors.New("duplicate body name")
)

// BodySpec seeds one body that orbits the origin.
type BodySpec struct {
	Name        string
	Kind        BodyKind
	Radius      float64
	Distance    float64
	Speed       float64
	Inclination float64
	Color       string
}

// MoonSpec seeds a moon orbiting the body named Parent.
type MoonSpec struct {
	Name     string
	Parent   string
	Radius   float64
	Distance float64
	Speed    float64
	Color    string
}

// PathSpec seeds a decorative orbit outline.
type PathSpec struct {
	Name     string
	Distance float64
	Tilt     orbit.Tilt
}

// Config is the full startup description of the scene.
type Config struct {
	Sun       BodySpec
	Bodies    []BodySpec
	Moons     []MoonSpec
	Paths     []PathSpec
	Starfield starfield.Config
}

// DefaultConfig returns the stock solar system: the sun, eight planets, ten
// asteroids, Earth's moon and eight orbit outlines.
func DefaultConfig() Config {
	return Config{
		Sun: BodySpec{Name: "Sun", Kind: KindStar, Radius: 10, Color: "#FDB813"},
		Bodies: []BodySpec{
			{Name: "Mercury", Kind: KindPlanet, Radius: 0.4, Distance: 11, Speed: 0.004, Inclination: 7, Color: "#B5B5B5"},
			{Name: "Venus", Kind: KindPlanet, Radius: 0.8, Distance: 15, Speed: 0.0016, Inclination: 3.39, Color: "#E8CDA2"},
			{Name: "Earth", Kind: KindPlanet, Radius: 1, Distance: 20, Speed: 0.001, Inclination: 23.5, Color: "#2E86AB"},
			{Name: "Mars", Kind: KindPlanet, Radius: 0.5, Distance: 30, Speed: 0.0008, Inclination: 25.19, Color: "#C1440E"},
			{Name: "Jupiter", Kind: KindPlanet, Radius: 2, Distance: 50, Speed: 0.0004, Inclination: 3.13, Color: "#C88B3A"},
			{Name: "Saturn", Kind: KindPlanet, Radius: 1.7, Distance: 70, Speed: 0.0003, Inclination: 26.73, Color: "#E4D191"},
			{Name: "Uranus", Kind: KindPlanet, Radius: 1.2, Distance: 90, Speed: 0.0002, Inclination: 97.77, Color: "#7DE8E8"},
			{Name: "Neptune", Kind: KindPlanet, Radius: 1.1, Distance: 110, Speed: 0.0001, Inclination: 28.32, Color: "#3F54BA"},

			{Name: "Lucy", Kind: KindAsteroid, Radius: 0.5, Distance: 104, Speed: 0.001, Inclination: 20, Color: "#8C8C8C"},
			{Name: "Bennu", Kind: KindAsteroid, Radius: 0.5, Distance: 133, Speed: 0.0001, Inclination: 13, Color: "#8C8C8C"},
			{Name: "Leucus", Kind: KindAsteroid, Radius: 0.5, Distance: 58, Speed: 0.009, Inclination: 75, Color: "#8C8C8C"},
			{Name: "Asteroid 4", Kind: KindAsteroid, Radius: 0.5, Distance: 287, Speed: 0.001, Inclination: 75, Color: "#8C8C8C"},
			{Name: "Asteroid 5", Kind: KindAsteroid, Radius: 0.5, Distance: 250, Speed: 0.06, Inclination: 75, Color: "#8C8C8C"},
			{Name: "Asteroid 6", Kind: KindAsteroid, Radius: 0.5, Distance: 217, Speed: 0.069, Inclination: 75, Color: "#8C8C8C"},
			{Name: "Asteroid 7", Kind: KindAsteroid, Radius: 0.5, Distance: 337, Speed: 0.00001, Inclination: 75, Color: "#8C8C8C"},
			{Name: "Asteroid 8", Kind: KindAsteroid, Radius: 0.5, Distance: 177, Speed: 0.003, Inclination: 75, Color: "#8C8C8C"},
			{Name: "Asteroid 9", Kind: KindAsteroid, Radius: 0.5, Distance: 117, Speed: 0.008, Inclination: 75, Color: "#8C8C8C"},
			{Name: "Asteroid 10", Kind: KindAsteroid, Radius: 0.5, Distance: 150, Speed: 0.039, Inclination: 75, Color: "#8C8C8C"},
		},
		Moons: []MoonSpec{
			{Name: "Moon", Parent: "Earth", Radius: 0.27, Distance: 2, Speed: 0.01, Color: "#C8C8C8"},
		},
		Paths: []PathSpec{
			{Name: "Mercury", Distance: 11, Tilt: orbit.Tilt{X: 83, Y: 7}},
			{Name: "Venus", Distance: 15, Tilt: orbit.Tilt{X: 88, Y: 3}},
			{Name: "Earth", Distance: 20, Tilt: orbit.Tilt{X: 65, Y: 22}},
			{Name: "Mars", Distance: 30, Tilt: orbit.Tilt{X: 62, Y: 22}},
			{Name: "Jupiter", Distance: 50, Tilt: orbit.Tilt{X: 87, Y: 4}},
			{Name: "Saturn", Distance: 70, Tilt: orbit.Tilt{X: 61, Y: 24}},
			{Name: "Uranus", Distance: 90, Tilt: orbit.Tilt{X: 1, Y: -8}},
			{Name: "Neptune", Distance: 110, Tilt: orbit.Tilt{X: 58, Y: 25}},
		},
		Starfield: starfield.Config{Layers: []starfield.Layer{
			{Count: 2000, PointSize: 5},
			{Count: 500, PointSize: 50},
			{Count: 15, PointSize: 250},
		}},
	}
}

// Validate checks every seed so that a bad table fails at startup instead of
// producing NaN positions later.
func (c Config) Validate() error {
	names := make(map[string]bool)
	bodies := make(map[string]bool)

	for _, spec := range append([]BodySpec{c.Sun}, c.Bodies...) {
		if names[spec.Name] {
			return fmt.Errorf("body %q: %w", spec.Name, ErrDuplicateName)
		}
		names[spec.Name] = true
		bodies[spec.Name] = true

		if _, err := orbit.NewBody(spec.Distance, spec.Speed, spec.Inclination); err != nil {
			return fmt.Errorf("body %q: %w", spec.Name, err)
		}
		if err := checkLook(spec.Radius, spec.Color); err != nil {
			return fmt.Errorf("body %q: %w", spec.Name, err)
		}
	}

	for _, spec := range c.Moons {
		if names[spec.Name] {
			return fmt.Errorf("moon %q: %w", spec.Name, ErrDuplicateName)
		}
		names[spec.Name] = true

		if !bodies[spec.Parent] {
			return fmt.Errorf("moon %q parent %q: %w", spec.Name, spec.Parent, ErrUnknownParent)
		}
		if _, err := orbit.NewMoon(spec.Distance, spec.Speed, &orbit.Body{}); err != nil {
			return fmt.Errorf("moon %q: %w", spec.Name, err)
		}
		if err := checkLook(spec.Radius, spec.Color); err != nil {
			return fmt.Errorf("moon %q: %w", spec.Name, err)
		}
	}

	for _, spec := range c.Paths {
		if _, err := orbit.NewBody(spec.Distance, 0, 0); err != nil {
			return fmt.Errorf("path %q: %w", spec.Name, err)
		}
	}

	if err := c.Starfield.Validate(); err != nil {
		return fmt.Errorf("starfield: %w", err)
	}
	return nil
}

func checkLook(radius float64, color string) error {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return fmt.Errorf("radius %v: %w", radius, ErrInvalidRadius)
	}
	if _, err := parseColor(color); err != nil {
		return err
	}
	return nil
}

func parseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%q: %w", hex, ErrInvalidColor)
	}
	return c, nil
}
