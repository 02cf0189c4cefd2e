package parser

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/umlgraph/pkg/diagram"
)

var classNames = []interface{}{"Animal", "Duck", "Fish", "Zebra", "Pond", "Egg"}

// genLine produces a random diagram line: relationships, members, blocks,
// notes and noise.
func genLine() gopter.Gen {
	rel := gopter.CombineGens(
		gen.OneConstOf(classNames...),
		gen.IntRange(0, len(diagram.Relations)-1),
		gen.OneConstOf(classNames...),
		gen.OneConstOf("", " : uses", " : owns many"),
	).Map(func(v []interface{}) string {
		return fmt.Sprintf("%s %s %s%s", v[0], diagram.Relations[v[1].(int)], v[2], v[3])
	})
	member := gopter.CombineGens(
		gen.OneConstOf(classNames...),
		gen.OneConstOf("+int age", "+swim()", "-String name"),
	).Map(func(v []interface{}) string {
		return fmt.Sprintf("%s : %s", v[0], v[1])
	})
	open := gen.OneConstOf(classNames...).Map(func(v interface{}) string {
		return fmt.Sprintf("class %s {", v)
	})
	return gen.OneGenOf(
		rel, rel, member, open,
		gen.Const("}"),
		gen.Const(`note "ignored"`),
		gen.Const("classDiagram"),
		gen.Const(""),
	)
}

func genDiagram() gopter.Gen {
	return gen.SliceOf(genLine()).Map(func(lines []string) string {
		return strings.Join(lines, "\n")
	})
}

func TestParse_Properties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("edge endpoints are nodes", prop.ForAll(
		func(text string) bool {
			g := Parse(text)
			ids := make(map[string]bool, len(g.Nodes))
			for _, n := range g.Nodes {
				ids[n.ID] = true
			}
			for _, e := range g.Edges {
				if !ids[e.Source] || !ids[e.Target] {
					return false
				}
			}
			return true
		},
		genDiagram(),
	))

	properties.Property("node ids are unique", prop.ForAll(
		func(text string) bool {
			seen := map[string]bool{}
			for _, n := range Parse(text).Nodes {
				if seen[n.ID] {
					return false
				}
				seen[n.ID] = true
			}
			return true
		},
		genDiagram(),
	))

	properties.Property("parsing is deterministic", prop.ForAll(
		func(text string) bool {
			return reflect.DeepEqual(Parse(text), Parse(text))
		},
		genDiagram(),
	))

	properties.Property("at most one edge per relationship line", prop.ForAll(
		func(text string) bool {
			_, report := ParseWithReport(text)
			return len(Parse(text).Edges) <= report.Counts[KindRelationship]
		},
		genDiagram(),
	))

	properties.Property("relations come from the vocabulary", prop.ForAll(
		func(text string) bool {
			for _, e := range Parse(text).Edges {
				if !diagram.IsRelation(e.Relation) {
					return false
				}
			}
			return true
		},
		genDiagram(),
	))

	properties.TestingRun(t)
}
