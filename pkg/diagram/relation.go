package diagram

import "strings"

// Relation tokens. The order of [Relations] is the classification priority.
const (
	ExtendsLeft      = "<|--"
	ExtendsRight     = "--|>"
	Composition      = "*--"
	Aggregation      = "o--"
	SolidLink        = "--"
	DependencyLeft   = "<.."
	DependencyRight  = "..>"
	AssociationLeft  = "<--"
	AssociationRight = "-->"
	Realization      = "<|.."
	DashedLink       = ".."
)

// Inheritance is the canonical inheritance token.
const Inheritance = ExtendsLeft

// Dependency is the canonical dependency token.
const Dependency = DependencyRight

// Relations lists every relation token in the order a line is tested
// against them. A line containing several tokens is classified by the
// first one listed here, even when a later token appears earlier in the
// line. "--" deliberately precedes the arrow forms that contain it.
var Relations = []string{
	ExtendsLeft,
	ExtendsRight,
	Composition,
	Aggregation,
	SolidLink,
	DependencyLeft,
	DependencyRight,
	AssociationLeft,
	AssociationRight,
	Realization,
	DashedLink,
}

// IsRelation reports whether tok is one of the relation tokens.
func IsRelation(tok string) bool {
	for _, r := range Relations {
		if r == tok {
			return true
		}
	}
	return false
}

// Style is the line style of an edge.
type Style string

const (
	StyleSolid  Style = "solid"
	StyleDashed Style = "dashed"
)

// StyleOf returns dashed when the token contains "..".
func StyleOf(relation string) Style {
	if strings.Contains(relation, "..") {
		return StyleDashed
	}
	return StyleSolid
}

// RelationKind is the UML meaning of a relation token.
type RelationKind string

const (
	KindInheritance RelationKind = "inheritance"
	KindComposition RelationKind = "composition"
	KindAggregation RelationKind = "aggregation"
	KindAssociation RelationKind = "association"
	KindDependency  RelationKind = "dependency"
	KindRealization RelationKind = "realization"
	KindLink        RelationKind = "link"
	KindDashedLink  RelationKind = "dashed-link"
)

var relationKinds = map[string]RelationKind{
	ExtendsLeft:      KindInheritance,
	ExtendsRight:     KindInheritance,
	Composition:      KindComposition,
	Aggregation:      KindAggregation,
	SolidLink:        KindLink,
	DependencyLeft:   KindDependency,
	DependencyRight:  KindDependency,
	AssociationLeft:  KindAssociation,
	AssociationRight: KindAssociation,
	Realization:      KindRealization,
	DashedLink:       KindDashedLink,
}

// KindOf returns the UML meaning of a relation token, or [KindLink] for
// tokens outside the vocabulary.
func KindOf(relation string) RelationKind {
	if k, ok := relationKinds[relation]; ok {
		return k
	}
	return KindLink
}

// DecoratesSource reports whether the token draws its decoration next to
// the left-hand class: the triangle of "<|--", the diamond of "*--", the
// open arrow of "<--".
func DecoratesSource(relation string) bool {
	return strings.HasPrefix(relation, "<") || strings.HasPrefix(relation, "*") || strings.HasPrefix(relation, "o")
}

// DecoratesTarget reports whether the token draws its decoration next to
// the right-hand class.
func DecoratesTarget(relation string) bool {
	return strings.HasSuffix(relation, ">")
}
