// Package diagram defines the positioned class graph produced by the parser
// and consumed by the layout engine and renderers.
//
// # Model
//
// A [Graph] holds [Node] values in first-mention order and [Edge] values in
// declaration order. Node IDs are unique and every edge endpoint is the ID
// of a node in the same graph.
//
// A node keeps its members as written, one string per line of the class
// body. [Node.Label] joins the class name and the members with newlines for
// renderers that want a single text block, while [Node.Attributes] and
// [Node.Methods] split them: a member containing "(" is a method.
//
// # Relations
//
// [Edge.Relation] is one of the eleven arrow tokens of the diagram language
// ([Inheritance], [Composition], [Dependency], ...). [Edge.Style] is dashed
// for the dotted tokens and solid otherwise; [Edge.Kind] names the UML
// relationship the token stands for so renderers can pick arrow heads.
//
// # Handles
//
// Node-link renderers draw a connection handle on the bottom of every node
// that starts an edge and on the top of every node that ends one.
// [ComputeHandles] derives both sets from the edges.
package diagram
