package scene

import (
	"time"

	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/orbit"
	"gonum.org/v1/gonum/spatial/r3"
)

// OrbitSystem places every body and moon for the frame's elapsed time at the
// speed carried by the frame context.
type OrbitSystem struct {
	Bodies ecs.Query[struct{ *orbit.Body }]
	Moons  ecs.Query[struct{ *Satellite }]

	bodies []*orbit.Body
	moons  []*orbit.Moon
}

func (s *OrbitSystem) Execute(frame *ecs.UpdateFrame) {
	speed := SpeedFrom(frame.Context)

	s.bodies = s.bodies[:0]
	for b := range s.Bodies.Values() {
		s.bodies = append(s.bodies, b.Body)
	}
	s.moons = s.moons[:0]
	for m := range s.Moons.Values() {
		s.moons = append(s.moons, &m.Satellite.Moon)
	}

	orbit.Advance(s.bodies, s.moons, frame.Tick.Elapsed, speed)

	// Parents have been moved above, so the world positions are current.
	for m := range s.Moons.Values() {
		sat := m.Satellite
		sat.World = sat.Moon.Position
		if id, ok := frame.Storage.ResolveEntityRef(sat.Parent); ok {
			if parent := ecs.ReadComponent[orbit.Body](frame.Storage, id); parent != nil {
				sat.World = r3.Add(parent.Position, sat.Moon.Position)
			}
		}
	}
}

// SkySystem spins the starfield.
type SkySystem struct {
	Sky ecs.Singleton[Sky]
}

func (s *SkySystem) Execute(frame *ecs.UpdateFrame) {
	sky := s.Sky.Get()
	if sky == nil || sky.Field == nil {
		return
	}
	sky.Field.Rotate(frame.DeltaTime)
}

// FrameObserver receives one report per frame from MetricsSystem.
type FrameObserver interface {
	ObserveFrame(delta time.Duration, speed float64, entities int)
}

const frameSampleWindow = 60

// MetricsSystem keeps PerformanceMetrics current and forwards each frame to
// Observer when one is set.
type MetricsSystem struct {
	Performance ecs.Singleton[PerformanceMetrics]
	Observer    FrameObserver

	storageStatsCache *ecs.StorageStats
}

func (m *MetricsSystem) Execute(frame *ecs.UpdateFrame) {
	perf := m.Performance.Get()
	if perf == nil {
		return
	}
	speed := SpeedFrom(frame.Context)
	perf.Speed = speed
	perf.Frames++

	if frameTime := float32(frame.DeltaTime); frameTime > 0 {
		perf.FrameTime = frameTime
		perf.FPS = 1.0 / frameTime

		if len(perf.LastFrameSamples) >= frameSampleWindow {
			perf.LastFrameSamples = perf.LastFrameSamples[1:]
		}
		perf.LastFrameSamples = append(perf.LastFrameSamples, frameTime*1000)

		sum := float32(0)
		lo := perf.LastFrameSamples[0]
		hi := perf.LastFrameSamples[0]
		for _, sample := range perf.LastFrameSamples {
			sum += sample
			lo = min(lo, sample)
			hi = max(hi, sample)
		}
		perf.AvgFrameTime = sum / float32(len(perf.LastFrameSamples))
		if perf.AvgFrameTime > 0 {
			perf.AvgFPS = 1000.0 / perf.AvgFrameTime
		}
		perf.MinFrameTime = lo
		perf.MaxFrameTime = hi
	}

	// Entities are only spawned at startup, so the stats rarely need a refresh.
	if m.storageStatsCache == nil || perf.Frames%frameSampleWindow == 0 {
		m.storageStatsCache = frame.Storage.CollectStats()
	}
	perf.EntityCount = m.storageStatsCache.TotalEntityCount
	perf.ArchetypeCount = m.storageStatsCache.ArchetypeCount

	if m.Observer != nil {
		m.Observer.ObserveFrame(frame.Tick.Delta, speed, perf.EntityCount)
	}
}

// NewUpdateScheduler registers the scene's update systems in order: orbits,
// sky, metrics. The PerformanceMetrics singleton is created if missing.
func NewUpdateScheduler(storage *ecs.Storage, observer FrameObserver) *ecs.Scheduler {
	ecs.NewSingleton[PerformanceMetrics](storage)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&OrbitSystem{})
	scheduler.Register(&SkySystem{})
	scheduler.Register(&MetricsSystem{Observer: observer})
	return scheduler
}
