package cli

import (
	"context"
	"slices"

	"github.com/spf13/cobra"

	uerrors "github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/pipeline"
)

// outputFlags are shared by parse, render and watch.
type outputFlags struct {
	format  string
	output  string
	compact bool
	noCache bool
	refresh bool
}

func (f *outputFlags) register(cmd *cobra.Command, formatHelp string) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", formatHelp)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached artifacts and render again")
}

// pick returns the format flag, the configured default when it is one of
// allowed, or fallback.
func (c *CLI) pick(flag string, allowed []string, fallback string) string {
	if flag != "" {
		return flag
	}
	if slices.Contains(allowed, c.cfg.Render.Format) {
		return c.cfg.Render.Format
	}
	return fallback
}

// parseCommand creates the parse command for writing the laid out graph.
func (c *CLI) parseCommand() *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a class diagram and write the laid out graph",
		Long: `Parse a Mermaid-style class diagram, compute the layout and write the
graph with node positions as JSON or YAML. Reads stdin when no file is given.`,
		Example: `  umlgraph parse diagram.mmd
  umlgraph parse diagram.mmd -f yaml -o diagram.yaml
  cat diagram.mmd | umlgraph parse -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			allowed := []string{pipeline.FormatJSON, pipeline.FormatYAML}
			flags.format = c.pick(flags.format, allowed, pipeline.FormatJSON)
			if err := uerrors.ValidateFormat(flags.format, allowed...); err != nil {
				return err
			}
			return c.runOnce(cmd.Context(), inputArg(args), flags)
		},
	}

	flags.register(cmd, "output format: json or yaml")
	return cmd
}

// runOnce executes the pipeline for one input and writes the artifact.
func (c *CLI) runOnce(ctx context.Context, input string, flags outputFlags) error {
	text, err := c.readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := c.execute(ctx, runner, text, flags)
	if err != nil {
		return err
	}
	return c.emit(res, flags.output)
}

// execute runs the pipeline, showing a spinner for SVG which goes through
// Graphviz.
func (c *CLI) execute(ctx context.Context, runner *pipeline.Runner, text string, flags outputFlags) (*pipeline.Result, error) {
	opts := c.renderOptions(flags.format, flags.compact, flags.refresh)
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	prog := newProgress(logger)
	if opts.Format != pipeline.FormatSVG {
		return runner.Execute(ctx, text, opts)
	}

	spinner := newSpinner(ctx, "Rendering SVG...")
	spinner.Start()
	res, err := runner.Execute(ctx, text, opts)
	spinner.Stop()
	if err == nil {
		prog.done("Rendered SVG")
	}
	return res, err
}

// emit writes the artifact and, for file output, a short summary.
func (c *CLI) emit(res *pipeline.Result, output string) error {
	if err := c.writeOutput(output, res.Artifact); err != nil {
		return err
	}
	if toStdout(output) {
		return nil
	}
	printSuccess("Wrote %s", res.Format)
	printFile(output)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.Dropped, res.CacheHit)
	return nil
}
