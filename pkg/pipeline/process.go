package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/layout"
	"github.com/matzehuels/umlgraph/pkg/observability"
	"github.com/matzehuels/umlgraph/pkg/parser"
)

// Process parses text and lays it out. It never fails: unrecognized input
// yields an empty or partial graph.
func Process(text string) diagram.Graph {
	g := parser.Parse(text)
	layout.Apply(&g)
	return g
}

// Analysis is the full outcome of [Analyze].
type Analysis struct {
	Graph  diagram.Graph
	Report parser.Report
	Layout layout.Result
	Stats  Stats
}

// Analyze is [Process] with diagnostics. It reports parse and layout timing
// to the pipeline hooks; ctx only bounds the ordering phase.
func Analyze(ctx context.Context, text string) Analysis {
	var a Analysis

	start := time.Now()
	a.Graph, a.Report = parser.ParseWithReport(text)
	a.Stats.ParseTime = time.Since(start)
	a.Stats.Lines = a.Report.Lines
	a.Stats.NodeCount = len(a.Graph.Nodes)
	a.Stats.EdgeCount = len(a.Graph.Edges)
	a.Stats.Dropped = len(a.Report.Dropped)
	observability.Pipeline().OnParse(ctx, observability.ParseStats{
		Lines:   a.Stats.Lines,
		Classes: a.Stats.NodeCount,
		Edges:   a.Stats.EdgeCount,
		Dropped: a.Stats.Dropped,
	}, a.Stats.ParseTime)

	start = time.Now()
	a.Layout = layout.Apply(&a.Graph, layout.WithContext(ctx))
	a.Stats.LayoutTime = time.Since(start)
	observability.Pipeline().OnLayout(ctx, observability.LayoutStats{
		Ranks:        len(a.Layout.Orders),
		VirtualNodes: a.Layout.Normalize.VirtualNodesAdded,
		Reversed:     a.Layout.Reversed,
		Crossings:    a.Layout.Crossings,
	}, a.Stats.LayoutTime)

	return a
}
