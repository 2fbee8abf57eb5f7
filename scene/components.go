package scene

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/starfield"
	"gonum.org/v1/gonum/spatial/r3"
)

type Name string

type BodyKind int

const (
	KindStar BodyKind = iota
	KindPlanet
	KindAsteroid
	KindMoon
)

func (k BodyKind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlanet:
		return "planet"
	case KindAsteroid:
		return "asteroid"
	case KindMoon:
		return "moon"
	}
	return "unknown"
}

// Appearance is everything a renderer needs besides the position.
type Appearance struct {
	Kind   BodyKind
	Radius float64
	Color  colorful.Color
}

// Satellite is a moon together with the entity it circles. World is the
// parent position plus the moon's local offset, refreshed every frame.
type Satellite struct {
	Moon   orbit.Moon
	Parent *ecs.EntityRef
	World  r3.Vec
}

// Path is a decorative orbit outline.
type Path struct {
	Points []r3.Vec
}

// Sky is the singleton holding the generated starfield.
type Sky struct {
	Field *starfield.Starfield
}

// PerformanceMetrics is the singleton the metrics system fills for overlays.
type PerformanceMetrics struct {
	Frames           int64
	FrameTime        float32
	FPS              float32
	AvgFrameTime     float32
	AvgFPS           float32
	MinFrameTime     float32
	MaxFrameTime     float32
	LastFrameSamples []float32
	EntityCount      int
	ArchetypeCount   int
	Speed            float64
}

// RegisterComponents registers every component type the scene spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Appearance](registry)
	ecs.RegisterComponent[orbit.Body](registry)
	ecs.RegisterComponent[Satellite](registry)
	ecs.RegisterComponent[Path](registry)
}
