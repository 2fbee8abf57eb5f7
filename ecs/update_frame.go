package ecs

import (
	"context"
	"time"
)

// Tick is the timing input of one frame. Elapsed is measured from the start
// of the scene so that systems can recompute state from absolute time rather
// than accumulating deltas.
type Tick struct {
	Elapsed time.Duration
	Delta   time.Duration
}

// UpdateFrame is handed to every system during a single Scheduler.Once call.
type UpdateFrame struct {
	Context   context.Context
	Tick      Tick
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(ctx context.Context, tick Tick, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		Context:   ctx,
		Tick:      tick,
		DeltaTime: tick.Delta.Seconds(),
		Commands:  newCommands(),
		Storage:   storage,
	}
}

// Clock produces ticks from a time source.
type Clock struct {
	now   func() time.Time
	start time.Time
	last  time.Time
}

// NewClock starts a clock at now(). A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	start := now()
	return &Clock{now: now, start: start, last: start}
}

// Next returns the tick for the current instant and advances the clock.
func (c *Clock) Next() Tick {
	now := c.now()
	tick := Tick{
		Elapsed: now.Sub(c.start),
		Delta:   now.Sub(c.last),
	}
	c.last = now
	return tick
}
