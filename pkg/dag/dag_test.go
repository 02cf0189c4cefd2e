package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode_Errors(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "A"}); err != nil {
		t.Fatalf("AddNode(A) = %v", err)
	}
	if err := g.AddNode(Node{ID: "A"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(A) twice = %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddEdge_UnknownEndpoints(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "A"})

	tests := []struct {
		name string
		edge Edge
		want error
	}{
		{"missing source", Edge{From: "X", To: "A"}, ErrUnknownSourceNode},
		{"missing target", Edge{From: "A", To: "X"}, ErrUnknownTargetNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.edge); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSetRows_PreservesInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"c", "a", "b"} {
		_ = g.AddNode(Node{ID: id})
	}
	g.SetRows(map[string]int{"a": 1, "b": 1})

	if got := NodeIDs(g.NodesInRow(0)); !slices.Equal(got, []string{"c"}) {
		t.Errorf("row 0 = %v, want [c]", got)
	}
	if got := NodeIDs(g.NodesInRow(1)); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("row 1 = %v, want [a b]", got)
	}
	if g.MaxRow() != 1 {
		t.Errorf("MaxRow() = %d, want 1", g.MaxRow())
	}
}

func TestNeighboursInRow(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "c"})
	_ = g.AddEdge(Edge{From: "a", To: "d"})
	_ = g.AddEdge(Edge{From: "b", To: "c"})
	g.SetRows(map[string]int{"a": 0, "b": 1, "c": 2, "d": 1})

	if got := g.ChildrenInRow("a", 1); !slices.Equal(got, []string{"d"}) {
		t.Errorf("ChildrenInRow(a, 1) = %v, want [d]", got)
	}
	if got := g.ChildrenInRow("a", 2); !slices.Equal(got, []string{"c"}) {
		t.Errorf("ChildrenInRow(a, 2) = %v, want [c]", got)
	}
	if got := g.ParentsInRow("c", 1); !slices.Equal(got, []string{"b"}) {
		t.Errorf("ParentsInRow(c, 1) = %v, want [b]", got)
	}
	if got := g.ParentsInRow("c", 3); len(got) != 0 {
		t.Errorf("ParentsInRow(c, 3) = %v, want none", got)
	}
}

func TestSourcesAndSinks(t *testing.T) {
	g := New()
	for _, id := range []string{"b", "a", "c"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "c"})

	if got := NodeIDs(g.Sources()); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Sources() = %v, want [b a]", got)
	}
	if got := NodeIDs(g.Sinks()); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Sinks() = %v, want [b c]", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		build func(*DAG)
		want  error
	}{
		{
			name: "consecutive rows",
			build: func(g *DAG) {
				_ = g.AddNode(Node{ID: "a", Row: 0})
				_ = g.AddNode(Node{ID: "b", Row: 1})
				_ = g.AddEdge(Edge{From: "a", To: "b"})
			},
		},
		{
			name: "skips a row",
			build: func(g *DAG) {
				_ = g.AddNode(Node{ID: "a", Row: 0})
				_ = g.AddNode(Node{ID: "b", Row: 2})
				_ = g.AddEdge(Edge{From: "a", To: "b"})
			},
			want: ErrNonConsecutiveRows,
		},
		{
			name: "back edge across rows",
			build: func(g *DAG) {
				_ = g.AddNode(Node{ID: "a", Row: 0})
				_ = g.AddNode(Node{ID: "b", Row: 1})
				_ = g.AddEdge(Edge{From: "a", To: "b"})
				_ = g.AddEdge(Edge{From: "b", To: "a"})
				g.SetRows(map[string]int{"a": 0, "b": 1})
			},
			want: ErrNonConsecutiveRows,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			tt.build(g)
			if err := g.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDetectCycles(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "b", To: "a"})

	if err := g.detectCycles(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("detectCycles() = %v, want ErrGraphHasCycle", err)
	}
}

func TestRemoveEdge_RemovesParallel(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})

	g.RemoveEdge("a", "b")

	if g.EdgeCount() != 0 || g.OutDegree("a") != 0 || g.InDegree("b") != 0 {
		t.Errorf("edges left after RemoveEdge: %v", g.Edges())
	}
}

func TestCountCrossings(t *testing.T) {
	g := New()
	for _, n := range []Node{{ID: "a"}, {ID: "b"}, {ID: "x", Row: 1}, {ID: "y", Row: 1}, {ID: "p", Row: 2}, {ID: "q", Row: 2}} {
		_ = g.AddNode(n)
	}
	_ = g.AddEdge(Edge{From: "a", To: "y"})
	_ = g.AddEdge(Edge{From: "b", To: "x"})
	_ = g.AddEdge(Edge{From: "x", To: "q"})
	_ = g.AddEdge(Edge{From: "y", To: "p"})

	orders := map[int][]string{0: {"a", "b"}, 1: {"x", "y"}, 2: {"p", "q"}}
	if got := CountCrossings(g, orders); got != 2 {
		t.Errorf("CountCrossings() = %d, want 2", got)
	}
	if got := CountPairCrossings(g, "a", "b", []string{"x", "y"}, false); got != 1 {
		t.Errorf("CountPairCrossings(a,b) = %d, want 1", got)
	}
	if got := CountPairCrossings(g, "b", "a", []string{"x", "y"}, false); got != 0 {
		t.Errorf("CountPairCrossings(b,a) = %d, want 0", got)
	}
}
