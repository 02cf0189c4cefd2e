// Package dag provides a directed graph organized into ranks (rows) for
// Sugiyama-style layered layout of class diagrams.
//
// # Overview
//
// A class diagram is turned into a [DAG] by the layout engine: every class
// becomes a [NodeKindRegular] node and every relationship becomes an edge from
// its source class to its target class. The graph is then made acyclic,
// ranked, and subdivided so that every edge joins two consecutive rows.
//
// # Determinism
//
// Unlike a plain map-backed graph, [DAG] remembers the order in which nodes
// were added. [DAG.Nodes], [DAG.Sources], [DAG.Sinks] and [DAG.NodesInRow]
// all report nodes in that order, so running the same transformations on the
// same input always yields the same rows and the same orderings.
//
// # Basic Usage
//
//	g := dag.New()
//	_ = g.AddNode(dag.Node{ID: "Animal"})
//	_ = g.AddNode(dag.Node{ID: "Duck"})
//	_ = g.AddEdge(dag.Edge{From: "Animal", To: "Duck"})
//
// # Node Types
//
//   - [NodeKindRegular]: a class from the diagram
//   - [NodeKindVirtual]: a synthetic bend point on an edge that spans more
//     than one row; [Node.Origin] names the class the edge starts from
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] count crossings with a Fenwick
// tree in O(E log V). [CountPairCrossings] evaluates a single adjacent swap
// and backs the transpose heuristic of the ordering package.
//
// # Concurrency
//
// A DAG is not safe for concurrent use. The layout engine builds a fresh
// graph for every run.
package dag
