package ecs

import "reflect"

// Singleton provides access to a single component instance that is not
// associated with any entity. Use this for global state such as input
// devices, configuration, or the active clock.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton creates a new Singleton accessor for the given storage.
// If the singleton doesn't exist yet it is created from initializer, or from
// the zero value when no initializer is given.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.singleton(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the Singleton to a storage.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.refresh()
}

// Get returns a pointer to the singleton component, or nil if it has not
// been added to storage.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	return s.ptr
}

// Exists returns true if the singleton component has been added to storage
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	s.ptr, _ = s.storage.singleton(reflect.TypeFor[T]()).(*T)
}
