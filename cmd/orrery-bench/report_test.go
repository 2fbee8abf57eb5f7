package main

import (
	"strings"
	"testing"
	"time"

	"github.com/plus3/orrery/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration: time.Second,
		Speed:    1.5,
		Stars:    2000,
		Entities: 28,
		UpdateTime: Stats{
			Samples: []time.Duration{time.Millisecond},
		},
		Scheduler: &ecs.SchedulerStats{
			SystemCount: 1,
			Systems:     []ecs.SystemStats{{Name: "OrbitSystem", ExecutionCount: 1}},
		},
		Bodies: []BodyPosition{{Name: "Earth", Position: "20.00 0.00 0.00"}},
	}
	r.UpdateTime.Finalize()

	var out strings.Builder
	require.NoError(t, r.Generate(&out))

	text := out.String()
	assert.Contains(t, text, "Frame interval: none")
	assert.Contains(t, text, "Speed:          1.5x")
	assert.Contains(t, text, "- Frames:     1")
	assert.Contains(t, text, "| OrbitSystem | 1 |")
	assert.Contains(t, text, "Earth")
}
