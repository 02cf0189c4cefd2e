package parser

import "github.com/matzehuels/umlgraph/pkg/diagram"

// Registry maps class IDs to nodes and remembers creation order. A registry
// belongs to a single parse; nodes are never removed.
type Registry struct {
	byID  map[string]*diagram.Node
	order []*diagram.Node
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*diagram.Node)}
}

// GetOrCreate returns the node for id, creating an empty one on first use.
// Repeated calls with the same id return the same pointer.
func (r *Registry) GetOrCreate(id string) *diagram.Node {
	if n, ok := r.byID[id]; ok {
		return n
	}
	n := &diagram.Node{ID: id}
	r.byID[id] = n
	r.order = append(r.order, n)
	return n
}

// Lookup returns the node for id without creating it.
func (r *Registry) Lookup(id string) (*diagram.Node, bool) {
	n, ok := r.byID[id]
	return n, ok
}

// Nodes returns the registered nodes in creation order.
func (r *Registry) Nodes() []*diagram.Node { return r.order }

// Len returns the number of registered nodes.
func (r *Registry) Len() int { return len(r.order) }
