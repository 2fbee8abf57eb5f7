package scene_test

import (
	"math"
	"testing"

	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/scene"
	"github.com/plus3/orrery/starfield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := scene.DefaultConfig()
	require.NoError(t, cfg.Validate())

	planets, asteroids := 0, 0
	for _, b := range cfg.Bodies {
		switch b.Kind {
		case scene.KindPlanet:
			planets++
		case scene.KindAsteroid:
			asteroids++
		}
	}
	assert.Equal(t, 8, planets)
	assert.Equal(t, 10, asteroids)
	assert.Len(t, cfg.Moons, 1)
	assert.Equal(t, "Earth", cfg.Moons[0].Parent)
	assert.Len(t, cfg.Paths, 8)
	assert.Equal(t, 2000, cfg.Starfield.Layers[0].Count)
}

func TestValidateNamesTheOffendingBody(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.Bodies[3].Distance = -1

	err := cfg.Validate()
	require.ErrorIs(t, err, orbit.ErrInvalidDistance)
	assert.Contains(t, err.Error(), `"Mars"`)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*scene.Config)
		want   error
	}{
		{"nan speed", func(c *scene.Config) { c.Bodies[0].Speed = math.NaN() }, orbit.ErrNonFinite},
		{"infinite inclination", func(c *scene.Config) { c.Bodies[0].Inclination = math.Inf(1) }, orbit.ErrNonFinite},
		{"negative radius", func(c *scene.Config) { c.Sun.Radius = -2 }, scene.ErrInvalidRadius},
		{"bad color", func(c *scene.Config) { c.Bodies[1].Color = "blue" }, scene.ErrInvalidColor},
		{"duplicate name", func(c *scene.Config) { c.Bodies[1].Name = "Mercury" }, scene.ErrDuplicateName},
		{"unknown parent", func(c *scene.Config) { c.Moons[0].Parent = "Vulcan" }, scene.ErrUnknownParent},
		{"moon as parent", func(c *scene.Config) {
			c.Moons = append(c.Moons, scene.MoonSpec{Name: "Moonmoon", Parent: "Moon", Distance: 1, Color: "#FFFFFF"})
		}, scene.ErrUnknownParent},
		{"moon distance", func(c *scene.Config) { c.Moons[0].Distance = math.NaN() }, orbit.ErrInvalidDistance},
		{"path distance", func(c *scene.Config) { c.Paths[0].Distance = -5 }, orbit.ErrInvalidDistance},
		{"star size", func(c *scene.Config) { c.Starfield.Layers[1].PointSize = -1 }, starfield.ErrInvalidPointSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scene.DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestMoonMayOrbitTheSun(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.Moons[0].Parent = "Sun"
	assert.NoError(t, cfg.Validate())
}
