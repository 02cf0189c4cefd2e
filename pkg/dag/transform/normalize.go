package transform

import "github.com/matzehuels/umlgraph/pkg/dag"

// Normalize makes g acyclic, ranks it and subdivides long edges. After it
// returns, g.Validate() reports no error.
func Normalize(g *dag.DAG) Result {
	var res Result
	res.SelfLoopsRemoved, res.EdgesReversed = ReverseCycles(g)
	AssignLayers(g)
	res.VirtualNodesAdded = Subdivide(g)
	res.MaxRow = g.MaxRow()
	return res
}
