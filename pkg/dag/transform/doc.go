// Package transform prepares a class graph for layered drawing.
//
// # Overview
//
// A class diagram may contain cycles (A uses B, B uses A), self references,
// and relationships that jump across several ranks. The layered layout in
// package layout needs none of those, so this package rewrites the layout
// graph into a proper layered form:
//
//  1. [ReverseCycles] removes self loops and reverses DFS back edges
//  2. [AssignLayers] ranks every node by longest path from the sources
//  3. [Subdivide] replaces every edge spanning more than one rank with a
//     chain of virtual nodes
//
// [Normalize] runs the three steps in order and reports what it did in a
// [Result].
//
// # Reversal, not removal
//
// Reversed edges stay in the graph pointing the other way, so both classes
// of a cycle still influence each other's position during ordering. The
// diagram the graph was built from is never touched; only the layout graph
// sees the flipped direction.
//
// # Determinism
//
// Every step iterates nodes in insertion order, so identical input graphs
// produce identical ranks and identical virtual node IDs.
package transform
