package ecs

// EntityId identifies an entity within a Storage. Ids are never reused and
// the zero value never refers to a live entity.
type EntityId uint64

// Valid reports whether the id could refer to an entity.
func (e EntityId) Valid() bool {
	return e != 0
}
