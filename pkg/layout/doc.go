// Package layout positions the classes of a [diagram.Graph] with a layered
// (Sugiyama) algorithm.
//
// # Pipeline
//
// [Apply] builds a [dag.DAG] with one node per class and one edge per
// relationship (source to target), then:
//
//  1. normalizes it with [transform.Normalize]: self loops dropped, back
//     edges reversed, ranks assigned by longest path, long edges split by
//     virtual nodes
//  2. orders every rank with an [ordering.Orderer] (barycentric sweeps by
//     default)
//  3. assigns coordinates: ranks run top to bottom, real nodes keep their
//     relative order, and every rank is centered under the widest one
//
// Positions are top-left corners computed from fixed box sizes
// ([NodeWidth] by [NodeHeight]) and gaps ([NodeSep], [RankSep]).
//
// The layout only reads the diagram's structure; the diagram itself is
// never reordered and its edges keep their direction even when the layout
// reversed them.
//
// # Determinism
//
// Every step iterates in diagram order and ties always resolve to the
// earlier candidate, so the same graph always gets the same positions.
package layout
