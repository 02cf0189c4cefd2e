package transform

import "github.com/matzehuels/umlgraph/pkg/dag"

// ReverseCycles makes g acyclic. Self loops are dropped; every back edge of a
// depth-first search is reversed in place. The search starts from the
// sources in insertion order and then picks up remaining unvisited nodes,
// also in insertion order, so nodes caught in a cycle get a deterministic
// entry point.
//
// It returns the number of self loops removed and edges reversed.
func ReverseCycles(g *dag.DAG) (selfLoops, reversed int) {
	for _, n := range g.Nodes() {
		loops := 0
		for _, c := range g.Children(n.ID) {
			if c == n.ID {
				loops++
			}
		}
		if loops > 0 {
			g.RemoveEdge(n.ID, n.ID)
			selfLoops += loops
		}
	}

	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var back [][2]string

	var visit func(id string)
	visit = func(id string) {
		color[id] = gray
		for _, child := range g.Children(id) {
			switch color[child] {
			case white:
				visit(child)
			case gray:
				back = append(back, [2]string{id, child})
			}
		}
		color[id] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			visit(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			visit(n.ID)
		}
	}

	for _, e := range back {
		reversed += g.ReverseEdge(e[0], e[1])
	}
	return selfLoops, reversed
}
