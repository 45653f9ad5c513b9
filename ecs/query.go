package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// Query iterates entities that carry a combination of components.
//
// The type T must be a struct whose fields are pointers to component types.
// Embedded fields are always required. Named fields can be marked optional
// with the `ecs:"optional"` struct tag and are nil when absent. A field of
// type EntityId receives the id of the entity being visited.
type Query[T any] struct {
	storage  *Storage
	types    []reflect.Type
	optional []bool
	offsets  []uintptr
	idOffset uintptr
	hasId    bool
}

// NewQuery creates a query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to a storage and parses T's layout.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("Query type parameter must be a struct")
	}

	q.storage = storage
	q.types = q.types[:0]
	q.optional = q.optional[:0]
	q.offsets = q.offsets[:0]
	q.hasId = false

	required := 0
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			q.idOffset = field.Offset
			q.hasId = true
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("Query struct fields must be pointer types or EntityId: " + field.Name)
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}
		if !isOptional {
			required++
		}

		q.types = append(q.types, field.Type.Elem())
		q.optional = append(q.optional, isOptional)
		q.offsets = append(q.offsets, field.Offset)
	}

	if required == 0 {
		panic("Query type " + structType.String() + " has no required components")
	}
}

// fill populates result for id. Returns false if a required component is
// missing.
func (q *Query[T]) fill(id EntityId, result *T) bool {
	base := unsafe.Pointer(result)

	for i, t := range q.types {
		fieldPtr := unsafe.Add(base, q.offsets[i])

		var comp unsafe.Pointer
		if col, ok := q.storage.columns[t]; ok {
			comp = col.ptr(id)
		}
		if comp == nil && !q.optional[i] {
			return false
		}
		*(*unsafe.Pointer)(fieldPtr) = comp
	}

	if q.hasId {
		*(*EntityId)(unsafe.Add(base, q.idOffset)) = id
	}
	return true
}

// Get returns the populated struct for one entity, or nil if it lacks a
// required component.
func (q *Query[T]) Get(id EntityId) *T {
	var result T
	if !q.fill(id, &result) {
		return nil
	}
	return &result
}

// driver returns the smallest column among the required components. Every
// match must appear in it.
func (q *Query[T]) driver() column {
	var best column
	for i, t := range q.types {
		if q.optional[i] {
			continue
		}
		col, ok := q.storage.columns[t]
		if !ok {
			return nil
		}
		if best == nil || col.len() < best.len() {
			best = col
		}
	}
	return best
}

// Iter returns an iterator over matching entity IDs and component data.
// Entities spawned or deleted while iterating are not visited.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		col := q.driver()
		if col == nil {
			return
		}

		ids := append([]EntityId(nil), col.ids()...)
		var result T
		for _, id := range ids {
			if !q.fill(id, &result) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range q.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}
