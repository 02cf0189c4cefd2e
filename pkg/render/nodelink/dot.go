package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/layout"
)

// pointsPerInch converts layout units to Graphviz inches.
const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Pinned fixes every node at its layout position.
	Pinned bool
	// Compact shows only class names, without member compartments.
	Compact bool
}

// ToDOT converts a diagram to Graphviz DOT.
func ToDOT(g diagram.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Pinned {
		buf.WriteString("  layout=neato;\n")
		buf.WriteString("  splines=true;\n")
		buf.WriteString("  overlap=true;\n")
	} else {
		fmt.Fprintf(&buf, "  nodesep=%.2f;\n", layout.NodeSep/pointsPerInch)
		fmt.Fprintf(&buf, "  ranksep=%.2f;\n", layout.RankSep/pointsPerInch)
	}
	fmt.Fprintf(&buf, "  node [shape=record, style=\"rounded,filled\", fillcolor=white, color=\"#101828\", fontname=\"Helvetica\", fontsize=12, width=%.2f, height=%.2f];\n",
		layout.NodeWidth/pointsPerInch, layout.NodeHeight/pointsPerInch)
	buf.WriteString("  edge [color=\"#101828cc\", fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := []string{fmt.Sprintf("label=\"%s\"", recordLabel(n, opts.Compact))}
		if opts.Pinned {
			attrs = append(attrs, pinAttr(n.Position))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// pinAttr converts a top-left layout corner to a pinned Graphviz center.
// Graphviz's y axis points up, so y is negated.
func pinAttr(p diagram.Position) string {
	x := (p.X + layout.NodeWidth/2) / pointsPerInch
	y := -(p.Y + layout.NodeHeight/2) / pointsPerInch
	return fmt.Sprintf("pos=\"%.2f,%.2f!\"", x, y)
}

func recordLabel(n diagram.Node, compact bool) string {
	name := escapeRecord(n.ID)
	if compact {
		return name
	}
	return "{" + name + "|" + compartment(n.Attributes()) + "|" + compartment(n.Methods()) + "}"
}

func compartment(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(escapeRecord(l))
		b.WriteString(`\l`)
	}
	return b.String()
}

var recordEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
)

func escapeRecord(s string) string { return recordEscaper.Replace(s) }

// arrows maps relation kinds to Graphviz arrow shapes.
var arrows = map[diagram.RelationKind]string{
	diagram.KindInheritance: "empty",
	diagram.KindRealization: "empty",
	diagram.KindComposition: "diamond",
	diagram.KindAggregation: "odiamond",
	diagram.KindAssociation: "vee",
	diagram.KindDependency:  "vee",
}

func edgeAttrs(e diagram.Edge) []string {
	attrs := []string{fmt.Sprintf("style=%s", e.Style())}
	shape, decorated := arrows[e.Kind()]
	switch {
	case !decorated:
		attrs = append(attrs, "arrowhead=none")
	case diagram.DecoratesSource(e.Relation):
		attrs = append(attrs, "dir=back", "arrowtail="+shape)
	case diagram.DecoratesTarget(e.Relation):
		attrs = append(attrs, "arrowhead="+shape)
	default:
		attrs = append(attrs, "arrowhead=none")
	}
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	return attrs
}

// RenderSVG renders DOT to SVG. DOT produced with [Options.Pinned] is laid
// out with neato so the pinned positions are kept.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	if strings.Contains(dot, "layout=neato;") {
		gv.SetLayout(graphviz.NEATO)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg element with a
// unitless one so the drawing scales with its container.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
