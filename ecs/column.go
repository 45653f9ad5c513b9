package ecs

import (
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() column {
		return &typedColumn[T]{
			index: intmap.New[EntityId, int](64),
		}
	}
}

// Registered reports whether the component type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// column is the type-erased storage for one component type.
type column interface {
	insert(id EntityId, item any) bool
	remove(id EntityId) bool
	ptr(id EntityId) unsafe.Pointer
	value(id EntityId) any
	has(id EntityId) bool
	len() int
	ids() []EntityId
}

// typedColumn stores components of type T densely. Each component is
// allocated separately so pointers handed out to systems stay valid when
// other entities are removed from the column.
type typedColumn[T any] struct {
	index   *intmap.Map[EntityId, int]
	owners  []EntityId
	entries []*T
}

func (c *typedColumn[T]) insert(id EntityId, item any) bool {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return false
	}

	if slot, ok := c.index.Get(id); ok {
		*c.entries[slot] = value
		return true
	}

	entry := new(T)
	*entry = value
	c.index.Put(id, len(c.entries))
	c.owners = append(c.owners, id)
	c.entries = append(c.entries, entry)
	return true
}

func (c *typedColumn[T]) remove(id EntityId) bool {
	slot, ok := c.index.Get(id)
	if !ok {
		return false
	}

	last := len(c.entries) - 1
	if slot != last {
		c.entries[slot] = c.entries[last]
		c.owners[slot] = c.owners[last]
		c.index.Put(c.owners[slot], slot)
	}
	c.entries[last] = nil
	c.entries = c.entries[:last]
	c.owners = c.owners[:last]
	c.index.Del(id)
	return true
}

func (c *typedColumn[T]) ptr(id EntityId) unsafe.Pointer {
	slot, ok := c.index.Get(id)
	if !ok {
		return nil
	}
	return unsafe.Pointer(c.entries[slot])
}

func (c *typedColumn[T]) value(id EntityId) any {
	slot, ok := c.index.Get(id)
	if !ok {
		return nil
	}
	return c.entries[slot]
}

func (c *typedColumn[T]) has(id EntityId) bool {
	_, ok := c.index.Get(id)
	return ok
}

func (c *typedColumn[T]) len() int {
	return len(c.entries)
}

func (c *typedColumn[T]) ids() []EntityId {
	return c.owners
}
