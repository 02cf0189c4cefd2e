package parser

import "github.com/matzehuels/umlgraph/pkg/diagram"

// Parse converts class-diagram text into a graph. It never fails; see the
// package documentation for how odd input is treated. Node positions are
// left at the origin.
func Parse(text string) diagram.Graph {
	g, _ := ParseWithReport(text)
	return g
}

// ParseWithReport is [Parse] plus a [Report] of line kinds and dropped lines.
func ParseWithReport(text string) (diagram.Graph, Report) {
	reg := NewRegistry()
	classes := &classParser{reg: reg}
	report := newReport()
	var edges []diagram.Edge

	for _, l := range ClassifyAll(text) {
		report.Lines++
		report.Counts[l.Kind]++

		switch {
		case l.Kind == KindNote:
			report.drop(l, ReasonNote)
		case l.Kind == KindClassOpen:
			classes.open(l.Class)
		case l.Kind == KindClassClose:
			if !classes.inBlock() {
				report.drop(l, ReasonStrayClose)
			}
			classes.close()
		case classes.inBlock():
			classes.member(l.Text)
		case l.Kind == KindRelationship:
			rel, ok := ParseRelationship(l.Text, l.Relation)
			if !ok {
				report.drop(l, ReasonBadEndpoints)
				continue
			}
			edges = append(edges, rel.Edge(reg))
		case l.Kind == KindInlineMember:
			classes.inline(l.Class, l.Member)
		default:
			report.drop(l, ReasonUnrecognized)
		}
	}

	return assemble(reg, edges), report
}

// assemble copies the registry into a graph: nodes in creation order,
// edges in declaration order.
func assemble(reg *Registry, edges []diagram.Edge) diagram.Graph {
	g := diagram.Graph{
		Nodes: make([]diagram.Node, 0, reg.Len()),
		Edges: edges,
	}
	for _, n := range reg.Nodes() {
		g.Nodes = append(g.Nodes, *n)
	}
	return g
}
