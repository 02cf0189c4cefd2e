// Package ordering chooses the left-to-right order of nodes within each rank
// of a layered graph so that few edges cross.
//
// # Barycenter Heuristic
//
// [Barycentric] is the classic Sugiyama sweep. Starting from insertion
// order, it alternates downward sweeps (each row sorted by the mean
// position of its parents) with upward sweeps (sorted by the mean position
// of its children). Sorting is stable, and a node with no neighbour in the
// reference row keeps its slot.
//
// After each sweep a transpose pass swaps adjacent nodes whenever that
// strictly lowers the crossing count. The ordering with the fewest
// crossings seen so far is kept; ties keep the earlier ordering, which is
// what makes the result deterministic.
//
// The loop stops after [Barycentric.Passes] sweeps ([DefaultPasses] when
// zero), as soon as an ordering without crossings is found, or when a sweep
// changes nothing.
//
// # Usage
//
//	var o ordering.Orderer = ordering.Barycentric{Passes: 24}
//	orders := o.OrderRows(g) // map[row][]nodeID
//
// Crossing minimisation is NP-hard; the heuristic gives no optimality
// guarantee.
package ordering
