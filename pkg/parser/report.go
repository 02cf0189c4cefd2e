package parser

import "fmt"

// Dropped is a line that contributed nothing to the graph.
type Dropped struct {
	Line   Line
	Reason string
}

func (d Dropped) String() string {
	return fmt.Sprintf("line %d: %s: %q", d.Line.Number, d.Reason, d.Line.Text)
}

// Report summarises a parse.
type Report struct {
	Lines   int
	Counts  map[Kind]int
	Dropped []Dropped
}

func newReport() Report {
	return Report{Counts: make(map[Kind]int)}
}

func (r *Report) drop(l Line, reason string) {
	r.Dropped = append(r.Dropped, Dropped{Line: l, Reason: reason})
}

// Reasons for dropped lines.
const (
	ReasonNote         = "note"
	ReasonUnrecognized = "unrecognized"
	ReasonBadEndpoints = "relationship without class names"
	ReasonStrayClose   = "closing brace outside a block"
)
