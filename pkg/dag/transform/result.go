package transform

// Result reports what [Normalize] changed in the layout graph.
type Result struct {
	// SelfLoopsRemoved counts edges whose source and target were the same class.
	SelfLoopsRemoved int
	// EdgesReversed counts back edges flipped to make the graph acyclic.
	EdgesReversed int
	// VirtualNodesAdded counts bend points inserted on long edges.
	VirtualNodesAdded int
	// MaxRow is the lowest rank after ranking. Zero for empty or flat graphs.
	MaxRow int
}
