package render

import (
	"context"
	"image/color"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/orrery/camera"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/logging"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestRGBAIsPremultiplied(t *testing.T) {
	c := colorful.Color{R: 1, G: 0.5, B: 0}

	assert.Equal(t, color.RGBA{255, 128, 0, 255}, rgba(c, 255))
	assert.Equal(t, color.RGBA{0, 0, 0, 0}, rgba(c, 0))

	half := rgba(c, 128)
	assert.Equal(t, uint8(128), half.A)
	assert.LessOrEqual(t, half.R, half.A)
}

func TestSpawnControlsKeepsExistingSpeed(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	ecs.NewSingleton[scene.SpeedControl](storage, scene.NewSpeedControl(1.5))
	SpawnControls(storage)
	SpawnStatsWindow(storage)

	var speed *scene.SpeedControl
	require.True(t, storage.ReadSingleton(&speed))
	assert.InDelta(t, 1.5, speed.Value(), 1e-9)

	overlays := ecs.NewQuery[struct{ *Overlay }](storage)
	overlays.Execute()
	assert.Equal(t, 2, overlays.Len())
}

func TestSpawnControlsCreatesDefaultSpeed(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	SpawnControls(storage)

	var speed *scene.SpeedControl
	require.True(t, storage.ReadSingleton(&speed))
	assert.Equal(t, orbit.DefaultSpeed, speed.Value())
}

func newPopulatedStorage(t *testing.T) *ecs.Storage {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	scene.RegisterComponents(registry)
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	require.NoError(t, scene.Populate(storage, scene.DefaultConfig(), rand.New(rand.NewPCG(1, 2)), logging.Discard()))
	return storage
}

func TestBodyRows(t *testing.T) {
	storage := newPopulatedStorage(t)

	rows := bodyRows(storage, "")
	require.Len(t, rows, 20)
	assert.Equal(t, "Sun", rows[0].Name)
	assert.Equal(t, "Mercury", rows[1].Name)
	assert.Equal(t, "Moon", rows[len(rows)-1].Name)

	for i := 1; i < len(rows); i++ {
		if rows[i].Kind == rows[i-1].Kind {
			assert.LessOrEqual(t, rows[i-1].Distance, rows[i].Distance)
		}
	}

	filtered := bodyRows(storage, "EAR")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Earth", filtered[0].Name)
	assert.Equal(t, scene.KindPlanet, filtered[0].Kind)

	assert.Len(t, bodyRows(storage, "asteroid"), 7)
	assert.Empty(t, bodyRows(storage, "pluto"))
}

func TestFocusSystemFollowsBody(t *testing.T) {
	storage := newPopulatedStorage(t)
	cam := ecs.NewSingleton[camera.Camera](storage, camera.New(800, 600))
	focus := ecs.NewSingleton[Focus](storage)

	update := scene.NewUpdateScheduler(storage, nil)
	follow := ecs.NewScheduler(storage)
	follow.Register(&FocusSystem{})

	earth := bodyRows(storage, "earth")[0].ID
	focus.Get().Ref = storage.CreateEntityRef(earth)

	tick := ecs.Tick{Elapsed: 2 * time.Second, Delta: 2 * time.Second}
	update.Once(context.Background(), tick)
	follow.Once(context.Background(), tick)

	want := ecs.ReadComponent[orbit.Body](storage, earth).Position
	assert.Equal(t, want, cam.Get().Target)
	assert.NotEqual(t, r3.Vec{X: 20}, want)

	// Moons report their world position.
	moon := bodyRows(storage, "moon")[0].ID
	focus.Get().Ref = storage.CreateEntityRef(moon)
	follow.Once(context.Background(), tick)
	assert.Equal(t, ecs.ReadComponent[scene.Satellite](storage, moon).World, cam.Get().Target)

	// A deleted body clears the focus and leaves the camera alone.
	storage.Delete(moon)
	before := cam.Get().Target
	follow.Once(context.Background(), tick)
	assert.Nil(t, focus.Get().Ref)
	assert.Equal(t, before, cam.Get().Target)
}

func TestSpawnBodyBrowserCreatesFocus(t *testing.T) {
	storage := newPopulatedStorage(t)
	SpawnBodyBrowser(storage)

	var focus *Focus
	require.True(t, storage.ReadSingleton(&focus))
	assert.Nil(t, focus.Ref)
}
