package model

// Registry is an ordered keyed collection. Iteration order is insertion
// order and is preserved end-to-end: it is the tie-break for buildings
// with equal composite scores.
type Registry[T any] struct {
	order []string
	items map[string]T
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

// Put inserts or replaces the item under id. A replaced item keeps its
// original position.
func (r *Registry[T]) Put(id string, item T) {
	if _, ok := r.items[id]; !ok {
		r.order = append(r.order, id)
	}
	r.items[id] = item
}

// Get returns the item for id if present.
func (r *Registry[T]) Get(id string) (T, bool) {
	item, ok := r.items[id]
	return item, ok
}

// Len returns the number of items.
func (r *Registry[T]) Len() int {
	return len(r.order)
}

// IDs returns the ids in insertion order.
func (r *Registry[T]) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All returns the items in insertion order.
func (r *Registry[T]) All() []T {
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// BuildingRegistry is the ordered collection of buildings keyed by id.
type BuildingRegistry = Registry[*Building]

// InfraRegistry is the ordered collection of infrastructure lines keyed
// by id.
type InfraRegistry = Registry[*InfrastructureLine]

// NewBuildingRegistry returns an empty building registry.
func NewBuildingRegistry() *BuildingRegistry { return NewRegistry[*Building]() }

// NewInfraRegistry returns an empty infrastructure registry.
func NewInfraRegistry() *InfraRegistry { return NewRegistry[*InfrastructureLine]() }
