package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/parser"
	"github.com/matzehuels/umlgraph/pkg/pipeline"
)

// inspectCommand creates the inspect command for viewing a diagram in the
// terminal.
func (c *CLI) inspectCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect [file|-]",
		Short: "Show the classes of a diagram",
		Long: `Show each class with its rank, members and relationships, followed by
the lines the parser ignored. With --interactive, browse the classes instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := inputArg(args)
			text, err := c.readInput(input)
			if err != nil {
				return err
			}
			a := pipeline.Analyze(cmd.Context(), text)

			if interactive {
				opts := []tea.ProgramOption{tea.WithContext(cmd.Context()), tea.WithOutput(c.Stdout)}
				if input == stdio {
					// stdin held the diagram; read keys from the terminal.
					opts = append(opts, tea.WithInputTTY())
				}
				_, err := tea.NewProgram(newClassBrowser(a), opts...).Run()
				return err
			}

			writeInspect(c.Stdout, a)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse classes interactively")
	return cmd
}

// writeInspect prints the class table and the parse report.
func writeInspect(w io.Writer, a pipeline.Analysis) {
	if len(a.Graph.Nodes) == 0 {
		fmt.Fprintln(w, StyleDim.Render("no classes"))
	} else {
		fmt.Fprintln(w, classTable(a).Render())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, reportSummary(a.Report))
	for _, d := range a.Report.Dropped {
		fmt.Fprintln(w, "  "+StyleDim.Render(d.String()))
	}
}

func classTable(a pipeline.Analysis) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(a.Graph.Nodes))
	for _, n := range a.Graph.Nodes {
		rows = append(rows, []string{
			n.ID,
			strconv.Itoa(a.Layout.Ranks[n.ID]),
			strings.Join(n.Attributes(), "\n"),
			strings.Join(n.Methods(), "\n"),
			strings.Join(relationLines(a.Graph, n.ID), "\n"),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		BorderRow(true).
		Headers("Class", "Rank", "Attributes", "Methods", "Relations").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return cell.Foreground(colorCyan).Bold(true)
			case col == 1:
				return cell.Foreground(colorGray)
			}
			return cell
		})
}

// relationLines describes the edges touching id, outgoing first.
func relationLines(g diagram.Graph, id string) []string {
	var out, in []string
	for _, e := range g.EdgesOf(id) {
		line := ""
		switch {
		case e.Source == id && e.Target == id:
			line = "↺ " + string(e.Kind())
		case e.Source == id:
			line = "→ " + e.Target + " " + string(e.Kind())
		default:
			line = "← " + e.Source + " " + string(e.Kind())
		}
		if e.Label != "" {
			line += " " + strconv.Quote(e.Label)
		}
		if e.Source == id {
			out = append(out, line)
		} else {
			in = append(in, line)
		}
	}
	return append(out, in...)
}

func reportSummary(r parser.Report) string {
	kinds := []parser.Kind{
		parser.KindClassOpen,
		parser.KindInlineMember,
		parser.KindRelationship,
		parser.KindNote,
		parser.KindOther,
	}
	parts := []string{fmt.Sprintf("%d lines", r.Lines)}
	for _, k := range kinds {
		if n := r.Counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, k))
		}
	}
	if len(r.Dropped) > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d ignored", len(r.Dropped))))
	}
	return StyleDim.Render(strings.Join(parts, " · "))
}
