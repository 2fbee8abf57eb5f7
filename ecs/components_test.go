package ecs_test

import "github.com/plus3/orrery/ecs"

type Location struct {
	X, Y, Z float64
}

type Drift struct {
	DX, DY, DZ float64
}

type Label string

type Mass float64

// Tracker follows another entity through a ref.
type Tracker struct {
	Target *ecs.EntityRef
}

type Clock struct {
	Frames int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Location](registry)
	ecs.RegisterComponent[Drift](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Mass](registry)
	ecs.RegisterComponent[Tracker](registry)
	return registry
}
