package transform

import "github.com/matzehuels/umlgraph/pkg/dag"

// AssignLayers ranks nodes by longest path from the sources and writes the
// ranks back with [dag.DAG.SetRows].
//
// Sources sit at row 0 and every other node sits one row below its deepest
// parent, so each edge points strictly downward. Isolated nodes are sources
// and therefore land on row 0.
//
// The traversal is Kahn's algorithm seeded with the sources in insertion
// order. AssignLayers expects an acyclic graph; nodes on a cycle never reach
// in-degree zero and keep row 0. Run [ReverseCycles] first.
func AssignLayers(g *dag.DAG) map[string]int {
	nodes := g.Nodes()
	pending := make(map[string]int, len(nodes))
	rows := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		rows[n.ID] = 0
		pending[n.ID] = g.InDegree(n.ID)
		if pending[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	for head := 0; head < len(queue); head++ {
		id := queue[head]
		for _, child := range g.Children(id) {
			rows[child] = max(rows[child], rows[id]+1)
			pending[child]--
			if pending[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRows(rows)
	return rows
}
