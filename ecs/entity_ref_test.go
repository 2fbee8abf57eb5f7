package ecs_test

import (
	"testing"

	"github.com/plus3/orrery/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRefIsShared(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Label("Earth"))

	a := storage.CreateEntityRef(id)
	b := storage.CreateEntityRef(id)
	assert.Same(t, a, b)

	resolved, ok := storage.ResolveEntityRef(a)
	require.True(t, ok)
	assert.Equal(t, id, resolved)

	assert.Nil(t, storage.CreateEntityRef(ecs.NewEntityId(7, 0)))
}

func TestEntityRefZeroedOnDelete(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	planet := storage.Spawn(Label("Earth"), Location{X: 20})
	moon := storage.Spawn(Label("Moon"), Tracker{Target: storage.CreateEntityRef(planet)})

	tracker := ecs.ReadComponent[Tracker](storage, moon)
	parent, ok := storage.ResolveEntityRef(tracker.Target)
	require.True(t, ok)
	assert.Equal(t, 20.0, ecs.ReadComponent[Location](storage, parent).X)

	storage.Delete(planet)
	_, ok = storage.ResolveEntityRef(tracker.Target)
	assert.False(t, ok)
	assert.Zero(t, tracker.Target.Id)
	assert.Nil(t, tracker.Target.Archetype)

	// A new entity in the freed slot does not revive the old ref.
	storage.Spawn(Label("Theia"), Location{})
	_, ok = storage.ResolveEntityRef(tracker.Target)
	assert.False(t, ok)
}

func TestInvalidateEntityRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Label("Mars"))

	ref := storage.CreateEntityRef(id)
	assert.True(t, storage.InvalidateEntityRef(ref))
	assert.False(t, storage.InvalidateEntityRef(ref))
	assert.False(t, storage.InvalidateEntityRef(nil))

	// The entity itself survives and hands out a fresh ref.
	assert.NotNil(t, ecs.ReadComponent[Label](storage, id))
	fresh := storage.CreateEntityRef(id)
	assert.NotSame(t, ref, fresh)
	assert.Equal(t, id, fresh.Id)
}
