package parser

import (
	"regexp"
	"strings"

	"github.com/matzehuels/umlgraph/pkg/diagram"
)

// Relationship is a parsed relationship line before it becomes an edge.
// Cardinalities are kept here for diagnostics only; they never reach the
// edge.
type Relationship struct {
	Source      string
	Target      string
	Relation    string
	Label       string
	SourceCard  string
	TargetCard  string
	Cardinality bool // matched the full form
}

var (
	fullRelationPattern = regexp.MustCompile(
		`^("?[\w~]+"?)\s*(?:"([^"]*)")?\s*([<|o*.\->]+)\s*(?:"([^"]*)")?\s*("?[\w~]+"?)\s*(?::\s*(.*))?$`)
	identPattern = regexp.MustCompile(`^[\w~]+$`)
)

// ParseRelationship parses a relationship line. tok is the token the
// classifier found and drives the fallback split. ok is false when no
// well-formed pair of endpoints can be extracted.
func ParseRelationship(text, tok string) (Relationship, bool) {
	if r, ok := parseFull(text); ok {
		return r, true
	}
	return parseSimple(text, tok)
}

func parseFull(text string) (Relationship, bool) {
	m := fullRelationPattern.FindStringSubmatch(text)
	if m == nil || !diagram.IsRelation(m[3]) {
		return Relationship{}, false
	}
	src, dst := endpoint(m[1]), endpoint(m[5])
	if !identPattern.MatchString(src) || !identPattern.MatchString(dst) {
		return Relationship{}, false
	}
	return Relationship{
		Source:      src,
		Target:      dst,
		Relation:    m[3],
		Label:       strings.TrimSpace(m[6]),
		SourceCard:  m[2],
		TargetCard:  m[4],
		Cardinality: true,
	}, true
}

func parseSimple(text, tok string) (Relationship, bool) {
	if tok == "" {
		return Relationship{}, false
	}
	left, right, found := strings.Cut(text, tok)
	if !found {
		return Relationship{}, false
	}
	target, label, _ := strings.Cut(right, ":")
	src, dst := endpoint(left), endpoint(target)
	if !identPattern.MatchString(src) || !identPattern.MatchString(dst) {
		return Relationship{}, false
	}
	return Relationship{
		Source:   src,
		Target:   dst,
		Relation: tok,
		Label:    strings.TrimSpace(label),
	}, true
}

// endpoint strips quotes and surrounding whitespace from a class reference.
func endpoint(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}

// Edge registers both endpoints in reg and returns the edge.
func (r Relationship) Edge(reg *Registry) diagram.Edge {
	reg.GetOrCreate(r.Source)
	reg.GetOrCreate(r.Target)
	return diagram.NewEdge(r.Source, r.Target, r.Relation, r.Label)
}
