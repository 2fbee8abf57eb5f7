package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/orrery/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Location{X: 3, Y: 4}, Label("Ceres"))
	assert.NotEqual(t, ecs.EntityId(0), id)

	loc := storage.GetComponent(id, reflect.TypeFor[Location]())
	require.NotNil(t, loc)
	assert.Equal(t, 3.0, loc.(*Location).X)

	assert.Equal(t, Label("Ceres"), *ecs.ReadComponent[Label](storage, id))
	assert.Nil(t, ecs.ReadComponent[Drift](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Label]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Drift]()))
}

func TestComponentOrderDoesNotMatter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Location{}, Label("a"))
	b := storage.Spawn(Label("b"), Location{})
	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotNil(t, storage.GetArchetype(Label(""), Location{}))
	assert.Nil(t, storage.GetArchetype(Drift{}))
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Location{X: 1}, Mass(5))
	storage.Delete(id)

	assert.Nil(t, ecs.ReadComponent[Location](storage, id))
	assert.Nil(t, ecs.ReadComponent[Mass](storage, id))

	// Deleting twice or deleting an unknown id is harmless.
	storage.Delete(id)
	storage.Delete(ecs.NewEntityId(42, 0))
}

func TestDeletedSlotsAreReused(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Mass(1))
	storage.Spawn(Mass(2))
	storage.Delete(first)

	again := storage.Spawn(Mass(3))
	assert.Equal(t, first, again)
	assert.Equal(t, Mass(3), *ecs.ReadComponent[Mass](storage, again))
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Location{X: 1})
	ptr := ecs.ReadComponent[Location](storage, first)

	for i := range 1000 {
		storage.Spawn(Location{X: float64(i)})
	}

	ptr.X = 99
	assert.Equal(t, 99.0, ecs.ReadComponent[Location](storage, first).X)
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(Clock{}) }, "unregistered component")
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var clock *Clock
	assert.False(t, storage.ReadSingleton(&clock))

	storage.AddSingleton(Clock{Frames: 3})
	require.True(t, storage.ReadSingleton(&clock))
	assert.Equal(t, 3, clock.Frames)

	clock.Frames++
	var again *Clock
	require.True(t, storage.ReadSingleton(&again))
	assert.Same(t, clock, again)
	assert.Equal(t, 4, again.Frames)

	// Adding through a pointer stores the pointed-to value.
	storage.AddSingleton(&Clock{Frames: 10})
	require.True(t, storage.ReadSingleton(&again))
	assert.Equal(t, 10, again.Frames)

	assert.Panics(t, func() { storage.AddSingleton(nil) })
	assert.Panics(t, func() { storage.ReadSingleton(clock) })
}

func TestSingletonAccessor(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	clock := ecs.NewSingleton[Clock](storage, Clock{Frames: 7})
	require.True(t, clock.Exists())
	assert.Equal(t, 7, clock.Get().Frames)

	// A second accessor shares the value and ignores its initializer.
	other := ecs.NewSingleton[Clock](storage, Clock{Frames: 100})
	other.Get().Frames++
	assert.Equal(t, 8, clock.Get().Frames)

	var unbound ecs.Singleton[Mass]
	unbound.Init(storage)
	assert.False(t, unbound.Exists())
	storage.AddSingleton(Mass(2))
	assert.Equal(t, Mass(2), *unbound.Get())
}
