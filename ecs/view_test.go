package ecs_test

import (
	"testing"

	"github.com/plus3/orrery/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct {
		*Location
		*Label
	}](storage)

	id := storage.Spawn(Location{X: 1}, Label("Vesta"), Mass(2))
	other := storage.Spawn(Location{X: 2})

	got := view.Get(id)
	require.NotNil(t, got)
	assert.Equal(t, 1.0, got.Location.X)
	assert.Equal(t, Label("Vesta"), *got.Label)

	// Writes through the view land in storage.
	got.Location.X = 5
	assert.Equal(t, 5.0, ecs.ReadComponent[Location](storage, id).X)

	assert.Nil(t, view.Get(other))

	storage.Delete(id)
	assert.Nil(t, view.Get(id))
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Mass
	}](storage)

	ids := map[ecs.EntityId]bool{}
	ids[storage.Spawn(Mass(1))] = true
	ids[storage.Spawn(Mass(2), Label("b"))] = true

	seen := 0
	for id, item := range view.Iter() {
		assert.Equal(t, id, item.Id)
		assert.True(t, ids[item.Id])
		seen++
	}
	assert.Equal(t, 2, seen)
}

func TestViewOptionalField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct {
		*Location
		Drift *Drift `ecs:"optional"`
	}](storage)

	still := storage.Spawn(Location{X: 1})
	moving := storage.Spawn(Location{X: 2}, Drift{DX: 1})
	storage.Spawn(Drift{DX: 9})

	var drifting, total int
	for item := range view.Values() {
		total++
		if item.Drift != nil {
			drifting++
		}
	}
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, drifting)

	var out struct {
		*Location
		Drift *Drift `ecs:"optional"`
	}
	require.True(t, view.Fill(still, &out))
	assert.Nil(t, out.Drift)
	require.True(t, view.Fill(moving, &out))
	require.NotNil(t, out.Drift)
	assert.Equal(t, 1.0, out.Drift.DX)
}

func TestViewGetRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct{ *Label }](storage)

	id := storage.Spawn(Label("Pallas"))
	ref := storage.CreateEntityRef(id)

	got := view.GetRef(ref)
	require.NotNil(t, got)
	assert.Equal(t, Label("Pallas"), *got.Label)

	storage.Delete(id)
	assert.Nil(t, view.GetRef(ref))
	assert.Nil(t, view.GetRef(nil))
}

func TestViewPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[Location](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct{ Loc Location }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Loc *Location `ecs:"maybe"`
		}](storage)
	})
}
