package ecs

import (
	"reflect"
	"sort"
)

// StorageStats is a snapshot of what a Storage currently holds.
type StorageStats struct {
	EntityCount    int
	SingletonCount int
	Components     []ComponentStats
	SingletonTypes []string
}

// ComponentStats reports how many entities carry one component type.
type ComponentStats struct {
	Name  string
	Count int
}

// CollectStats gathers entity, component and singleton counts. Output is
// sorted by type name.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		EntityCount:    s.Count(),
		SingletonCount: len(s.singletons),
		Components:     make([]ComponentStats, 0, len(s.columns)),
		SingletonTypes: make([]string, 0, len(s.singletons)),
	}

	for t, col := range s.columns {
		stats.Components = append(stats.Components, ComponentStats{
			Name:  t.String(),
			Count: col.len(),
		})
	}
	sort.Slice(stats.Components, func(i, j int) bool {
		return stats.Components[i].Name < stats.Components[j].Name
	})

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}

// typeName is used by the scheduler to label systems.
func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
