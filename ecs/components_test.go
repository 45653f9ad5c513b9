package ecs_test

import "github.com/plus3/flycam/ecs"

// Common test component types
type Position struct {
	X, Y, Z float64
}

type Velocity struct {
	DX, DY, DZ float64
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type Score int32

type Clock struct {
	Elapsed float64
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Clock](registry)
	return registry
}
