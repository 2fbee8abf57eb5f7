package ecs

import (
	"sort"
)

// StorageStats is a point-in-time census of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype in a census.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks every archetype and singleton. It allocates, so callers
// in the frame loop should not run it every frame.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount: len(s.archetypes),
		SingletonCount: len(s.singletons),
	}

	for id, archetype := range s.archetypes {
		arch := ArchetypeStats{ID: id}
		for _, t := range archetype.types {
			arch.ComponentTypes = append(arch.ComponentTypes, t.String())
		}
		for range archetype.Iter() {
			arch.EntityCount++
		}

		stats.TotalEntityCount += arch.EntityCount
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, arch)
	}
	sort.Slice(stats.ArchetypeBreakdown, func(i, j int) bool {
		return stats.ArchetypeBreakdown[i].ID < stats.ArchetypeBreakdown[j].ID
	})

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
