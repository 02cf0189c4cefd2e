// Package nodelink renders laid-out class diagrams as node-link drawings
// through Graphviz.
//
// # Usage
//
//	g := parser.Parse(text)
//	layout.Apply(&g)
//	dot := nodelink.ToDOT(g, nodelink.Options{Pinned: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// Every class becomes a record node split into three compartments: the
// class name, its attributes and its methods. Relationships become edges
// with the line style of their token (dashed for dotted tokens) and the UML
// decoration of their kind: a hollow triangle for inheritance and
// realization, filled and hollow diamonds for composition and aggregation,
// an open arrow for association and dependency, nothing for plain links.
// Decorations sit on the side of the class the token points at.
//
// With [Options.Pinned] every node carries a pinned pos attribute computed
// from its layout position, so Graphviz only routes the edges and the
// drawing matches the computed layout. [RenderSVG] uses the neato engine
// for pinned DOT and the dot engine otherwise.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which embeds Graphviz
// as WebAssembly; no system install is required.
package nodelink
