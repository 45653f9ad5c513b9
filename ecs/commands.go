package ecs

import "reflect"

// Commands buffers structural changes made by systems. They are applied in
// the order they were queued when the scheduler flushes at the end of a
// tick, followed by deferred functions.
type Commands struct {
	ops    []command
	defers []func()
}

type commandKind uint8

const (
	cmdSpawn commandKind = iota
	cmdDelete
	cmdAdd
	cmdRemove
)

type command struct {
	kind       commandKind
	entity     EntityId
	components []any
	compType   reflect.Type
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.ops = append(c.ops, command{kind: cmdSpawn, components: components})
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.ops = append(c.ops, command{kind: cmdDelete, entity: entity})
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.ops = append(c.ops, command{kind: cmdAdd, entity: entity, components: []any{component}})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.ops = append(c.ops, command{kind: cmdRemove, entity: entity, compType: compType})
}

// Defer queues a function to run after all structural changes.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations, deferred functions included.
func (c *Commands) Len() int {
	return len(c.ops) + len(c.defers)
}

// Flush applies all commands to the provided storage and resets the buffer.
// Operations that target entities deleted earlier in the same flush are
// dropped.
func (c *Commands) Flush(storage *Storage) {
	for _, op := range c.ops {
		switch op.kind {
		case cmdSpawn:
			storage.Spawn(op.components...)
		case cmdDelete:
			storage.Delete(op.entity)
		case cmdAdd:
			storage.AddComponent(op.entity, op.components[0])
		case cmdRemove:
			storage.RemoveComponent(op.entity, op.compType)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.ops)
	c.ops = c.ops[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
}
