package diagram

// Handles records which nodes start or end at least one edge.
type Handles struct {
	sources map[string]struct{}
	targets map[string]struct{}
	// SourceIDs and TargetIDs list the same nodes in first-use order.
	SourceIDs []string
	TargetIDs []string
}

// ComputeHandles derives source and target handle sets from g's edges.
func ComputeHandles(g Graph) Handles {
	h := Handles{
		sources: make(map[string]struct{}),
		targets: make(map[string]struct{}),
	}
	for _, e := range g.Edges {
		if _, ok := h.sources[e.Source]; !ok {
			h.sources[e.Source] = struct{}{}
			h.SourceIDs = append(h.SourceIDs, e.Source)
		}
		if _, ok := h.targets[e.Target]; !ok {
			h.targets[e.Target] = struct{}{}
			h.TargetIDs = append(h.TargetIDs, e.Target)
		}
	}
	return h
}

// IsSource reports whether id starts an edge.
func (h Handles) IsSource(id string) bool {
	_, ok := h.sources[id]
	return ok
}

// IsTarget reports whether id ends an edge.
func (h Handles) IsTarget(id string) bool {
	_, ok := h.targets[id]
	return ok
}
