package ecs

// UpdateFrame is passed to every system during one tick.
type UpdateFrame struct {
	// DeltaTime is the elapsed time since the previous tick, in seconds.
	DeltaTime float64
	// Tick counts calls to Scheduler.Once, starting at 1.
	Tick     uint64
	Commands *Commands
	Storage  *Storage
}
