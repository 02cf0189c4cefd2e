package parser

import (
	"regexp"
	"strings"

	"github.com/matzehuels/umlgraph/pkg/diagram"
)

// Kind is the classification of a single trimmed line.
type Kind int

const (
	KindOther Kind = iota
	KindNote
	KindClassOpen
	KindClassClose
	KindRelationship
	KindInlineMember
)

var kindNames = [...]string{
	KindOther:        "other",
	KindNote:         "note",
	KindClassOpen:    "class-open",
	KindClassClose:   "class-close",
	KindRelationship: "relationship",
	KindInlineMember: "inline-member",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Line is a classified line. Only the fields relevant to Kind are set.
type Line struct {
	Number int // 1-based physical line number, 0 when unknown
	Text   string
	Kind   Kind

	Class    string // KindClassOpen, KindInlineMember
	Member   string // KindInlineMember
	Relation string // KindRelationship: first matching token of diagram.Relations
}

var (
	notePattern         = regexp.MustCompile(`^note(?:\W|$)`)
	classOpenPattern    = regexp.MustCompile(`^class\s+(\w+)\s*\{$`)
	inlineMemberPattern = regexp.MustCompile(`^(\w+)\s*:\s*(.+)$`)
)

type matcher func(text string) (Line, bool)

// matchers are tried in order; the first hit decides the kind.
var matchers = []matcher{
	matchNote,
	matchClassOpen,
	matchClassClose,
	matchRelationship,
	matchInlineMember,
}

func matchNote(text string) (Line, bool) {
	if notePattern.MatchString(text) {
		return Line{Kind: KindNote}, true
	}
	return Line{}, false
}

func matchClassOpen(text string) (Line, bool) {
	if m := classOpenPattern.FindStringSubmatch(text); m != nil {
		return Line{Kind: KindClassOpen, Class: m[1]}, true
	}
	return Line{}, false
}

func matchClassClose(text string) (Line, bool) {
	if text == "}" {
		return Line{Kind: KindClassClose}, true
	}
	return Line{}, false
}

func matchRelationship(text string) (Line, bool) {
	if tok, ok := FindRelation(text); ok {
		return Line{Kind: KindRelationship, Relation: tok}, true
	}
	return Line{}, false
}

func matchInlineMember(text string) (Line, bool) {
	if m := inlineMemberPattern.FindStringSubmatch(text); m != nil {
		return Line{Kind: KindInlineMember, Class: m[1], Member: strings.TrimSpace(m[2])}, true
	}
	return Line{}, false
}

// FindRelation returns the first token of [diagram.Relations] contained in
// text. Priority follows list order, not position in the line.
func FindRelation(text string) (string, bool) {
	for _, tok := range diagram.Relations {
		if strings.Contains(text, tok) {
			return tok, true
		}
	}
	return "", false
}

// Classify classifies one line. The line is trimmed first.
func Classify(text string) Line {
	text = strings.TrimSpace(text)
	for _, match := range matchers {
		if l, ok := match(text); ok {
			l.Text = text
			return l
		}
	}
	return Line{Text: text, Kind: KindOther}
}

// SplitLines trims every physical line of text and drops blank ones.
func SplitLines(text string) []string {
	var out []string
	for _, l := range ClassifyAll(text) {
		out = append(out, l.Text)
	}
	return out
}

// ClassifyAll splits text into trimmed non-blank lines and classifies each,
// recording its physical line number. "\r\n" line endings are accepted.
func ClassifyAll(text string) []Line {
	var out []Line
	for i, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		l := Classify(trimmed)
		l.Number = i + 1
		out = append(out, l)
	}
	return out
}
