package ecs_test

import (
	"testing"

	"github.com/plus3/orrery/ecs"
	"github.com/stretchr/testify/assert"
)

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)

	for range 3 {
		storage.Spawn(Location{}, Label("x"))
	}
	gone := storage.Spawn(Mass(1))
	storage.Spawn(Mass(2))
	storage.Delete(gone)
	storage.AddSingleton(Clock{})
	storage.AddSingleton(Drift{})

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 4, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Clock", "ecs_test.Drift"}, stats.SingletonTypes)

	assert.Less(t, stats.ArchetypeBreakdown[0].ID, stats.ArchetypeBreakdown[1].ID)

	counts := map[int][]string{}
	for _, arch := range stats.ArchetypeBreakdown {
		counts[arch.EntityCount] = arch.ComponentTypes
	}
	assert.Equal(t, []string{"ecs_test.Label", "ecs_test.Location"}, counts[3])
	assert.Equal(t, []string{"ecs_test.Mass"}, counts[1])
}
