package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	uerrors "github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/pipeline"
	"github.com/matzehuels/umlgraph/pkg/watch"
)

// watchCommand creates the watch command that re-renders a file on every
// save.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags    outputFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-render a diagram whenever the file changes",
		Long: `Watch a diagram file and write the output again after every save.
When saves overlap, only the result of the latest one is written.`,
		Example: `  umlgraph watch diagram.mmd -o diagram.svg
  umlgraph watch diagram.mmd -f json -o diagram.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.format = c.pick(flags.format, pipeline.Formats, pipeline.FormatSVG)
			if err := uerrors.ValidateFormat(flags.format, pipeline.Formats...); err != nil {
				return err
			}
			if err := uerrors.ValidatePath(args[0]); err != nil {
				return err
			}
			return c.watch(cmd.Context(), args[0], flags, debounce)
		},
	}

	flags.register(cmd, "output format: json, yaml, dot or svg")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "draw class names only (dot, svg)")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period after a change before rendering")
	return cmd
}

// watch runs until ctx is cancelled. Failed runs are reported and watching
// continues.
func (c *CLI) watch(ctx context.Context, path string, flags outputFlags, debounce time.Duration) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	w := watch.New(path, watch.WithDebounce(debounce), watch.WithLogger(c.Logger))
	printInfo("Watching %s", path)

	err = w.Watch(ctx, func(ctx context.Context, gen uint64) {
		prog := newProgress(c.Logger)
		text, err := c.readInput(path)
		if err != nil {
			w.Commit(gen, func() { printError("%v", uerrors.UserMessage(err)) })
			return
		}
		res, err := runner.Execute(ctx, text, c.renderOptions(flags.format, flags.compact, flags.refresh))
		if ctx.Err() != nil {
			return
		}
		w.Commit(gen, func() {
			if err != nil {
				printError("%v", uerrors.UserMessage(err))
				return
			}
			if err := c.emit(res, flags.output); err != nil {
				printError("%v", err)
				return
			}
			prog.done("Updated " + path)
		})
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
