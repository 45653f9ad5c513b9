package ecs

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/kamstrup/intmap"
)

// Storage owns every entity, component and singleton of one ECS world.
type Storage struct {
	registry   *ComponentRegistry
	columns    map[reflect.Type]column
	alive      *intmap.Map[EntityId, int]
	nextId     EntityId
	singletons map[reflect.Type]any
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		columns:    make(map[reflect.Type]column),
		alive:      intmap.New[EntityId, int](256),
		singletons: make(map[reflect.Type]any),
	}
}

// Spawn creates a new entity with the provided components. Components may be
// passed by value or by pointer; the storage always keeps its own copy.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	for i := 1; i < len(types); i++ {
		if types[i] == types[i-1] {
			panic("duplicate component type " + types[i].String() + " in spawn")
		}
	}

	for _, t := range types {
		s.columnFor(t)
	}

	s.nextId++
	id := s.nextId
	for _, comp := range components {
		s.columnFor(componentType(comp)).insert(id, comp)
	}
	s.alive.Put(id, len(components))
	return id
}

// Alive reports whether the entity exists.
func (s *Storage) Alive(id EntityId) bool {
	_, ok := s.alive.Get(id)
	return ok
}

// Delete removes all data related to the entity ID. Unknown ids are ignored.
func (s *Storage) Delete(id EntityId) {
	if !s.Alive(id) {
		return
	}
	for _, col := range s.columns {
		col.remove(id)
	}
	s.alive.Del(id)
}

// AddComponent attaches a component to a live entity, replacing any existing
// component of the same type. It returns false if the entity does not exist.
func (s *Storage) AddComponent(id EntityId, component any) bool {
	count, ok := s.alive.Get(id)
	if !ok {
		return false
	}

	col := s.columnFor(componentType(component))
	existed := col.has(id)
	col.insert(id, component)
	if !existed {
		s.alive.Put(id, count+1)
	}
	return true
}

// RemoveComponent detaches a component from an entity. Removing the last
// component deletes the entity.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) {
	count, ok := s.alive.Get(id)
	if !ok {
		return
	}

	col, ok := s.columns[compType]
	if !ok || !col.remove(id) {
		return
	}

	if count <= 1 {
		s.alive.Del(id)
		return
	}
	s.alive.Put(id, count-1)
}

// GetComponent returns a pointer to the component for the given entity ID and
// component type, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	col, ok := s.columns[compType]
	if !ok {
		return nil
	}
	return col.value(id)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	col, ok := s.columns[compType]
	if !ok {
		return false
	}
	return col.has(id)
}

// Count returns the number of live entities.
func (s *Storage) Count() int {
	return s.alive.Len()
}

func (s *Storage) columnFor(t reflect.Type) column {
	if col, ok := s.columns[t]; ok {
		return col
	}

	factory := s.registry.factories[t]
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	col := factory()
	s.columns[t] = col
	return col
}

// AddSingleton stores a component that is not attached to any entity. Adding a
// singleton of an existing type replaces its value in place, so pointers
// obtained earlier observe the new value.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if existing, ok := s.singletons[t]; ok {
		reflect.ValueOf(existing).Elem().Set(v)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	s.singletons[t] = ptr.Interface()
}

// ReadSingleton points target (a **T) at the stored singleton of type T.
// It returns false if no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Ptr || tv.Elem().Kind() != reflect.Ptr {
		panic(fmt.Sprintf("ReadSingleton target must be a pointer to a pointer, got %T", target))
	}

	existing, ok := s.singletons[tv.Elem().Type().Elem()]
	if !ok {
		return false
	}
	tv.Elem().Set(reflect.ValueOf(existing))
	return true
}

func (s *Storage) singleton(t reflect.Type) any {
	return s.singletons[t]
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t == nil {
		panic("component cannot be nil")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		// Components can be structs or primitives (int, string, etc.)
		// But not pointers, maps, channels, or functions (those aren't value types)
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })
	return types
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's component of type T, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
