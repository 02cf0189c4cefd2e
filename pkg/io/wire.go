package io

import (
	"errors"
	"fmt"

	"github.com/matzehuels/umlgraph/pkg/diagram"
)

var (
	// ErrDuplicateNode is returned on read when two nodes share an ID.
	ErrDuplicateNode = errors.New("duplicate node id")
	// ErrDanglingEdge is returned on read when an edge endpoint is not a node.
	ErrDanglingEdge = errors.New("edge endpoint is not a node")
)

type graph struct {
	Nodes []node `json:"nodes" yaml:"nodes"`
	Edges []edge `json:"edges" yaml:"edges"`
}

type node struct {
	ID       string           `json:"id" yaml:"id"`
	Label    string           `json:"label" yaml:"label"`
	Members  []string         `json:"members,omitempty" yaml:"members,omitempty"`
	Position diagram.Position `json:"position" yaml:"position"`
}

type edge struct {
	ID       string               `json:"id" yaml:"id"`
	Source   string               `json:"source" yaml:"source"`
	Target   string               `json:"target" yaml:"target"`
	Relation string               `json:"relation" yaml:"relation"`
	Label    string               `json:"label" yaml:"label"`
	Style    diagram.Style        `json:"style" yaml:"style"`
	Kind     diagram.RelationKind `json:"kind" yaml:"kind"`
}

func toWire(g diagram.Graph) graph {
	out := graph{
		Nodes: make([]node, len(g.Nodes)),
		Edges: make([]edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = node{ID: n.ID, Label: n.Label(), Members: n.Members, Position: n.Position}
	}
	for i, e := range g.Edges {
		out.Edges[i] = edge{
			ID:       e.ID,
			Source:   e.Source,
			Target:   e.Target,
			Relation: e.Relation,
			Label:    e.Label,
			Style:    e.Style(),
			Kind:     e.Kind(),
		}
	}
	return out
}

func fromWire(w graph) (diagram.Graph, error) {
	g := diagram.Graph{
		Nodes: make([]diagram.Node, 0, len(w.Nodes)),
		Edges: make([]diagram.Edge, 0, len(w.Edges)),
	}
	seen := make(map[string]bool, len(w.Nodes))
	for _, n := range w.Nodes {
		if seen[n.ID] {
			return diagram.Graph{}, fmt.Errorf("node %s: %w", n.ID, ErrDuplicateNode)
		}
		seen[n.ID] = true
		g.Nodes = append(g.Nodes, diagram.Node{ID: n.ID, Members: n.Members, Position: n.Position})
	}
	for _, e := range w.Edges {
		if !seen[e.Source] || !seen[e.Target] {
			return diagram.Graph{}, fmt.Errorf("edge %s->%s: %w", e.Source, e.Target, ErrDanglingEdge)
		}
		de := diagram.NewEdge(e.Source, e.Target, e.Relation, e.Label)
		if e.ID != "" {
			de.ID = e.ID
		}
		g.Edges = append(g.Edges, de)
	}
	return g, nil
}
