package diagram

import "strings"

// Position is the top-left corner of a node in layout coordinates.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// MemberKind separates attribute lines from method lines.
type MemberKind int

const (
	MemberAttribute MemberKind = iota
	MemberMethod
)

// String returns "attribute" or "method".
func (k MemberKind) String() string {
	if k == MemberMethod {
		return "method"
	}
	return "attribute"
}

// KindOfMember treats any line containing "(" as a method.
func KindOfMember(line string) MemberKind {
	if strings.Contains(line, "(") {
		return MemberMethod
	}
	return MemberAttribute
}

// Node is a class of the diagram.
type Node struct {
	ID       string
	Members  []string
	Position Position
}

// AddMember appends a member line.
func (n *Node) AddMember(line string) { n.Members = append(n.Members, line) }

// Label returns the class name followed by each member on its own line.
func (n Node) Label() string {
	if len(n.Members) == 0 {
		return n.ID
	}
	return n.ID + "\n" + strings.Join(n.Members, "\n")
}

// Attributes returns the members that are not methods, in declaration order.
func (n Node) Attributes() []string { return n.membersOf(MemberAttribute) }

// Methods returns the members containing "(", in declaration order.
func (n Node) Methods() []string { return n.membersOf(MemberMethod) }

func (n Node) membersOf(kind MemberKind) []string {
	var out []string
	for _, m := range n.Members {
		if KindOfMember(m) == kind {
			out = append(out, m)
		}
	}
	return out
}

// Edge is a relationship between two classes.
type Edge struct {
	ID       string
	Source   string
	Target   string
	Relation string
	Label    string
}

// NewEdge builds an edge whose ID is "source-target-relation". The ID is not
// unique when the same relationship is declared twice.
func NewEdge(source, target, relation, label string) Edge {
	return Edge{
		ID:       source + "-" + target + "-" + relation,
		Source:   source,
		Target:   target,
		Relation: relation,
		Label:    label,
	}
}

// Style returns dashed for dotted relation tokens.
func (e Edge) Style() Style { return StyleOf(e.Relation) }

// Kind returns the UML meaning of the relation token.
func (e Edge) Kind() RelationKind { return KindOf(e.Relation) }

// Graph is a class diagram.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Node returns the node with the given ID.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// IsEmpty reports whether the graph has neither nodes nor edges.
func (g Graph) IsEmpty() bool { return len(g.Nodes) == 0 && len(g.Edges) == 0 }

// EdgesOf returns the edges with id as source or target, in declaration order.
func (g Graph) EdgesOf(id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Source == id || e.Target == id {
			out = append(out, e)
		}
	}
	return out
}
