package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats summarises how the registered systems have been running.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats holds execution timings for one system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemEntry struct {
	system  System
	queries []frameQuery

	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs systems in registration order against one storage.
type Scheduler struct {
	storage *Storage
	entries []*systemEntry
}

// NewScheduler creates a scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Storage returns the storage the scheduler was created for.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register binds the system's Query and Singleton fields to the storage and
// appends it to the execution order.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.entries = append(s.entries, &systemEntry{
		system:      system,
		queries:     s.bindFields(system),
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func (s *Scheduler) bindFields(system System) []frameQuery {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []frameQuery
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		ptr := field.Addr().Interface()
		binder, ok := ptr.(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if q, ok := ptr.(frameQuery); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once runs every system a single time for the given tick and then flushes
// the deferred commands they queued.
func (s *Scheduler) Once(ctx context.Context, tick Tick) {
	frame := newUpdateFrame(ctx, tick, s.storage)

	for _, entry := range s.entries {
		start := time.Now()
		for _, q := range entry.queries {
			q.Execute()
		}
		entry.system.Execute(frame)
		duration := time.Since(start)

		entry.executionCount++
		entry.lastDuration = duration
		entry.totalDuration += duration
		if duration < entry.minDuration {
			entry.minDuration = duration
		}
		if duration > entry.maxDuration {
			entry.maxDuration = duration
		}
	}

	frame.Commands.Flush(s.storage)
}

// Run calls Once at the given interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	clock := NewClock(nil)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Once(ctx, clock.Next())
		}
	}
}

// GetStats returns a snapshot of the execution statistics.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.entries),
		Systems:     make([]SystemStats, len(s.entries)),
	}

	for i, entry := range s.entries {
		var avg time.Duration
		minDuration := entry.minDuration
		if entry.executionCount > 0 {
			avg = entry.totalDuration / time.Duration(entry.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           entry.name,
			ExecutionCount: entry.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    entry.maxDuration,
			AvgDuration:    avg,
			LastDuration:   entry.lastDuration,
			TotalDuration:  entry.totalDuration,
		}
		stats.TotalExecutions += entry.executionCount
	}

	return stats
}
