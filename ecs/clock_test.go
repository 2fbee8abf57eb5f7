package ecs_test

import (
	"testing"
	"time"

	"github.com/plus3/orrery/ecs"
	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := ecs.NewClock(func() time.Time { return now })

	assert.Equal(t, ecs.Tick{}, clock.Next())

	now = now.Add(16 * time.Millisecond)
	assert.Equal(t, ecs.Tick{Elapsed: 16 * time.Millisecond, Delta: 16 * time.Millisecond}, clock.Next())

	now = now.Add(20 * time.Millisecond)
	assert.Equal(t, ecs.Tick{Elapsed: 36 * time.Millisecond, Delta: 20 * time.Millisecond}, clock.Next())
}
