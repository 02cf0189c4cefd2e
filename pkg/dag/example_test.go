package dag_test

import (
	"fmt"

	"github.com/matzehuels/umlgraph/pkg/dag"
)

func ExampleDAG_basic() {
	// Animal is specialised by Duck, which is specialised by Mallard
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "Animal", Row: 0})
	_ = g.AddNode(dag.Node{ID: "Duck", Row: 1})
	_ = g.AddNode(dag.Node{ID: "Mallard", Row: 2})
	_ = g.AddEdge(dag.Edge{From: "Animal", To: "Duck"})
	_ = g.AddEdge(dag.Edge{From: "Duck", To: "Mallard"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Rows:", g.RowCount())
	fmt.Println("Valid:", g.Validate() == nil)
	// Output:
	// Nodes: 3
	// Edges: 2
	// Rows: 3
	// Valid: true
}

func ExampleDAG_Nodes() {
	// Nodes come back in the order they were added
	g := dag.New()
	for _, id := range []string{"Zebra", "Ant", "Moose"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	fmt.Println(dag.NodeIDs(g.Nodes()))
	// Output:
	// [Zebra Ant Moose]
}

func ExampleDAG_ReverseEdge() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "A"})
	_ = g.AddNode(dag.Node{ID: "B"})
	_ = g.AddEdge(dag.Edge{From: "B", To: "A"})

	n := g.ReverseEdge("B", "A")
	e := g.Edges()[0]
	fmt.Println("Flipped:", n)
	fmt.Printf("%s -> %s reversed=%v\n", e.From, e.To, e.Reversed)
	// Output:
	// Flipped: 1
	// A -> B reversed=true
}

func ExampleNode_virtual() {
	regular := dag.Node{ID: "Duck"}
	bend := dag.Node{ID: "Duck_v_2", Kind: dag.NodeKindVirtual, Origin: "Duck"}

	fmt.Println("Regular is virtual:", regular.IsVirtual())
	fmt.Println("Bend is virtual:", bend.IsVirtual())
	fmt.Println("Bend effective ID:", bend.EffectiveID())
	// Output:
	// Regular is virtual: false
	// Bend is virtual: true
	// Bend effective ID: Duck
}

func ExampleCountLayerCrossings() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "a", Row: 0})
	_ = g.AddNode(dag.Node{ID: "b", Row: 0})
	_ = g.AddNode(dag.Node{ID: "x", Row: 1})
	_ = g.AddNode(dag.Node{ID: "y", Row: 1})
	_ = g.AddEdge(dag.Edge{From: "a", To: "y"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "x"})

	lower := []string{"x", "y"}
	fmt.Println("Crossings:", dag.CountLayerCrossings(g, []string{"a", "b"}, lower))
	fmt.Println("After reorder:", dag.CountLayerCrossings(g, []string{"b", "a"}, lower))
	// Output:
	// Crossings: 1
	// After reorder: 0
}
