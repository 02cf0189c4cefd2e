package layout

import (
	"context"

	"github.com/matzehuels/umlgraph/pkg/dag"
	"github.com/matzehuels/umlgraph/pkg/dag/transform"
	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/layout/ordering"
)

// Box sizes and spacing, in layout units.
const (
	NodeWidth  = 220.0
	NodeHeight = 120.0
	NodeSep    = 100.0
	RankSep    = 80.0
)

// Result describes a computed layout.
type Result struct {
	// Ranks maps class ID to rank; rank 0 is the top row.
	Ranks map[string]int
	// Orders lists the classes of each rank from left to right.
	Orders map[int][]string
	// Crossings counts edge crossings of the final ordering, virtual
	// segments included.
	Crossings int
	// Reversed counts layout edges flipped to break cycles.
	Reversed int
	// Normalize reports the graph rewrites done before ordering.
	Normalize transform.Result
	// Width and Height bound the drawing.
	Width, Height float64
}

type config struct {
	orderer ordering.Orderer
	ctx     context.Context
}

// Option customises [Apply] and [Compute].
type Option func(*config)

// WithOrderer replaces the default [ordering.Barycentric] orderer.
func WithOrderer(o ordering.Orderer) Option {
	return func(c *config) { c.orderer = o }
}

// WithContext lets a [ordering.ContextOrderer] stop early.
func WithContext(ctx context.Context) Option {
	return func(c *config) { c.ctx = ctx }
}

// Apply lays out g and writes every node's position in place.
func Apply(g *diagram.Graph, opts ...Option) Result {
	res, pos := compute(*g, opts)
	for i := range g.Nodes {
		g.Nodes[i].Position = pos[g.Nodes[i].ID]
	}
	return res
}

// Compute lays out g without modifying it and returns the positions.
func Compute(g diagram.Graph, opts ...Option) (Result, map[string]diagram.Position) {
	return compute(g, opts)
}

func compute(g diagram.Graph, opts []Option) (Result, map[string]diagram.Position) {
	cfg := config{orderer: ordering.Barycentric{Passes: ordering.DefaultPasses}, ctx: context.Background()}
	for _, opt := range opts {
		opt(&cfg)
	}

	lg := build(g)
	res := Result{Normalize: transform.Normalize(lg)}
	res.Reversed = res.Normalize.EdgesReversed

	var orders map[int][]string
	if co, ok := cfg.orderer.(ordering.ContextOrderer); ok {
		orders = co.OrderRowsContext(cfg.ctx, lg)
	} else {
		orders = cfg.orderer.OrderRows(lg)
	}
	res.Crossings = dag.CountCrossings(lg, orders)

	res.Ranks, res.Orders = realOrders(lg, orders)
	pos := assign(res.Orders)
	res.Width, res.Height = extent(res.Orders)
	return res, pos
}

// build mirrors the diagram as a layout graph. Edges whose endpoint is
// missing are skipped.
func build(g diagram.Graph) *dag.DAG {
	lg := dag.New()
	for _, n := range g.Nodes {
		_ = lg.AddNode(dag.Node{ID: n.ID})
	}
	for _, e := range g.Edges {
		_ = lg.AddEdge(dag.Edge{From: e.Source, To: e.Target})
	}
	return lg
}

// realOrders drops virtual nodes from orders.
func realOrders(lg *dag.DAG, orders map[int][]string) (map[string]int, map[int][]string) {
	ranks := make(map[string]int, lg.NodeCount())
	visible := make(map[int][]string, len(orders))
	for r, ids := range orders {
		for _, id := range ids {
			if n, ok := lg.Node(id); ok && !n.IsVirtual() {
				ranks[id] = r
				visible[r] = append(visible[r], id)
			}
		}
	}
	return ranks, visible
}
