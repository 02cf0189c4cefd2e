package cli

import (
	"github.com/spf13/cobra"

	uerrors "github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/pipeline"
)

// renderFormats are the drawing formats; parse covers the data formats.
var renderFormats = []string{pipeline.FormatDOT, pipeline.FormatSVG}

// renderCommand creates the render command for producing drawings.
func (c *CLI) renderCommand() *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a class diagram as Graphviz DOT or SVG",
		Long: `Render a Mermaid-style class diagram. Nodes are pinned at the computed
layout positions, so Graphviz only routes the edges.`,
		Example: `  umlgraph render diagram.mmd -o diagram.svg
  umlgraph render diagram.mmd -f dot --compact`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.format = c.pick(flags.format, renderFormats, pipeline.FormatSVG)
			if err := uerrors.ValidateFormat(flags.format, renderFormats...); err != nil {
				return err
			}
			return c.runOnce(cmd.Context(), inputArg(args), flags)
		},
	}

	flags.register(cmd, "output format: dot or svg")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "draw class names only")
	return cmd
}
