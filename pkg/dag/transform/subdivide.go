package transform

import (
	"fmt"

	"github.com/matzehuels/umlgraph/pkg/dag"
)

// Subdivide replaces every edge spanning more than one row with a chain of
// single-row edges through [dag.NodeKindVirtual] nodes:
//
//	Before: Animal (row 0) → Egg (row 3)
//	After:  Animal → Animal_v_1 → Animal_v_2 → Egg
//
// Virtual nodes carry the source class in Origin. IDs have the form
// "origin_v_row"; on collision a numeric suffix is appended
// ("Animal_v_1__2"), so parallel long edges get distinct chains.
//
// The Reversed flag of the original edge is copied to every segment. It
// returns the number of virtual nodes added.
func Subdivide(g *dag.DAG) int {
	gen := newIDGen(g.Nodes())
	added := 0

	for _, e := range g.Edges() {
		src, srcOK := g.Node(e.From)
		dst, dstOK := g.Node(e.To)
		if !srcOK || !dstOK || dst.Row <= src.Row+1 {
			continue
		}

		// Drops all parallel copies; each copy is rebuilt by its own
		// iteration over the snapshot.
		g.RemoveEdge(e.From, e.To)
		prev := src.ID
		for row := src.Row + 1; row < dst.Row; row++ {
			id := gen.next(src.ID, row)
			mustAdd(g.AddNode(dag.Node{ID: id, Row: row, Kind: dag.NodeKindVirtual, Origin: src.ID}))
			mustAdd(g.AddEdge(dag.Edge{From: prev, To: id, Reversed: e.Reversed}))
			prev = id
			added++
		}
		mustAdd(g.AddEdge(dag.Edge{From: prev, To: dst.ID, Reversed: e.Reversed}))
	}
	return added
}

func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(base string, row int) string {
	prefix := fmt.Sprintf("%s_v_%d", base, row)
	id := prefix
	for i := 2; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", prefix, i)
	}
}
