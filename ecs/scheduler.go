package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Ticks           uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
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
	system System
	stats  SystemStats
}

// Scheduler manages and executes systems in registration order.
type Scheduler struct {
	storage  *Storage
	systems  []*systemEntry
	commands *Commands
	ticks    uint64
	now      func() time.Time
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
		now:      time.Now,
	}
}

// Storage returns the storage the scheduler runs against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register adds a system to the scheduler and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.bindFields(system)
	s.systems = append(s.systems, &systemEntry{
		system: system,
		stats: SystemStats{
			Name:        typeName(system),
			MinDuration: time.Duration(1<<63 - 1),
		},
	})
}

func (s *Scheduler) bindFields(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() != reflect.Ptr {
		return
	}
	systemValue = systemValue.Elem()
	if systemValue.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		if binder, ok := field.Addr().Interface().(storageBinder); ok {
			binder.Init(s.storage)
		}
	}
}

// Once executes all registered systems once with the given delta time, then
// flushes the commands they queued.
func (s *Scheduler) Once(dt float64) {
	s.ticks++
	frame := &UpdateFrame{
		DeltaTime: dt,
		Tick:      s.ticks,
		Commands:  s.commands,
		Storage:   s.storage,
	}

	for _, entry := range s.systems {
		start := s.now()
		entry.system.Execute(frame)
		entry.record(s.now().Sub(start))
	}

	s.commands.Flush(s.storage)
}

func (e *systemEntry) record(d time.Duration) {
	e.stats.ExecutionCount++
	e.stats.LastDuration = d
	e.stats.TotalDuration += d
	if d < e.stats.MinDuration {
		e.stats.MinDuration = d
	}
	if d > e.stats.MaxDuration {
		e.stats.MaxDuration = d
	}
}

// Run executes all systems repeatedly at the given interval until the context
// is cancelled. Delta time is measured from the ticker, so a stalled tick
// produces a larger step rather than a burst of catch-up ticks.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := s.now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.ticks,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		sys := entry.stats
		if sys.ExecutionCount > 0 {
			sys.AvgDuration = sys.TotalDuration / time.Duration(sys.ExecutionCount)
		} else {
			sys.MinDuration = 0
		}
		stats.Systems[i] = sys
		stats.TotalExecutions += sys.ExecutionCount
	}

	return stats
}
