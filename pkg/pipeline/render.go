package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/io"
	"github.com/matzehuels/umlgraph/pkg/render/nodelink"
)

// Render formats a laid-out graph. DOT and SVG pin nodes at their layout
// positions.
func Render(ctx context.Context, g diagram.Graph, format string, compact bool) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		if err := io.WriteJSON(g, &buf); err != nil {
			return nil, fmt.Errorf("write json: %w", err)
		}
	case FormatYAML:
		if err := io.WriteYAML(g, &buf); err != nil {
			return nil, fmt.Errorf("write yaml: %w", err)
		}
	case FormatDOT:
		buf.WriteString(nodelink.ToDOT(g, nodelink.Options{Pinned: true, Compact: compact}))
	case FormatSVG:
		dot := nodelink.ToDOT(g, nodelink.Options{Pinned: true, Compact: compact})
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "render svg")
		}
		return svg, nil
	default:
		return nil, errors.ValidateFormat(format, Formats...)
	}
	return buf.Bytes(), nil
}
