package ordering

import (
	"cmp"
	"context"
	"slices"

	"github.com/matzehuels/umlgraph/pkg/dag"
)

// DefaultPasses is the sweep limit used when Barycentric.Passes is zero.
const DefaultPasses = 24

// Barycentric orders rows with alternating barycenter sweeps followed by
// adjacent-swap transposition. The zero value is ready to use.
type Barycentric struct {
	Passes int
}

// OrderRows implements [Orderer].
func (b Barycentric) OrderRows(g *dag.DAG) map[int][]string {
	return b.OrderRowsContext(context.Background(), g)
}

// OrderRowsContext implements [ContextOrderer].
func (b Barycentric) OrderRowsContext(ctx context.Context, g *dag.DAG) map[int][]string {
	passes := b.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}

	rows := g.RowIDs()
	orders := Initial(g)
	best, bestCrossings := clone(orders), dag.CountCrossings(g, orders)

	for pass := 0; pass < passes && bestCrossings > 0; pass++ {
		if ctx.Err() != nil {
			break
		}
		changed := sweep(g, rows, orders, pass%2 == 0)
		if transpose(g, rows, orders) {
			changed = true
		}
		if c := dag.CountCrossings(g, orders); c < bestCrossings {
			best, bestCrossings = clone(orders), c
		}
		if !changed {
			break
		}
	}
	return best
}

// sweep reorders every row against its upper neighbour (down) or lower
// neighbour (up). It reports whether any row changed.
func sweep(g *dag.DAG, rows []int, orders map[int][]string, down bool) bool {
	changed := false
	if down {
		for i := 1; i < len(rows); i++ {
			above := rows[i-1]
			parents := func(id string) []string { return g.ParentsInRow(id, above) }
			if reorder(orders[rows[i]], dag.PosMap(orders[above]), parents) {
				changed = true
			}
		}
		return changed
	}
	for i := len(rows) - 2; i >= 0; i-- {
		below := rows[i+1]
		children := func(id string) []string { return g.ChildrenInRow(id, below) }
		if reorder(orders[rows[i]], dag.PosMap(orders[below]), children) {
			changed = true
		}
	}
	return changed
}

// reorder sorts row in place by barycenter against ref. Nodes without a
// neighbour in ref stay where they are; the others are stably sorted into
// the remaining slots.
func reorder(row []string, ref map[string]int, neighbours func(string) []string) bool {
	type entry struct {
		id     string
		weight float64
	}
	var movable []entry
	var slots []int
	for i, id := range row {
		sum, n := 0, 0
		for _, nb := range neighbours(id) {
			if p, ok := ref[nb]; ok {
				sum += p
				n++
			}
		}
		if n == 0 {
			continue
		}
		movable = append(movable, entry{id, float64(sum) / float64(n)})
		slots = append(slots, i)
	}

	slices.SortStableFunc(movable, func(a, b entry) int { return cmp.Compare(a.weight, b.weight) })

	changed := false
	for i, slot := range slots {
		if row[slot] != movable[i].id {
			row[slot] = movable[i].id
			changed = true
		}
	}
	return changed
}

// transpose swaps adjacent nodes while doing so strictly reduces crossings
// with both neighbouring rows. The total crossing count drops with every
// swap, so the loop terminates.
func transpose(g *dag.DAG, rows []int, orders map[int][]string) bool {
	changed := false
	for improved := true; improved; {
		improved = false
		for i, r := range rows {
			var above, below map[string]int
			if i > 0 {
				above = dag.PosMap(orders[rows[i-1]])
			}
			if i < len(rows)-1 {
				below = dag.PosMap(orders[rows[i+1]])
			}
			row := orders[r]
			for j := 0; j+1 < len(row); j++ {
				l, rt := row[j], row[j+1]
				keep := pairCrossings(g, l, rt, above, below)
				swap := pairCrossings(g, rt, l, above, below)
				if swap < keep {
					row[j], row[j+1] = rt, l
					improved, changed = true, true
				}
			}
		}
	}
	return changed
}

func pairCrossings(g *dag.DAG, left, right string, above, below map[string]int) int {
	n := 0
	if above != nil {
		n += dag.CountPairCrossingsWithPos(g, left, right, above, true)
	}
	if below != nil {
		n += dag.CountPairCrossingsWithPos(g, left, right, below, false)
	}
	return n
}
