package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// browserKeys are the class browser's key bindings.
type browserKeys struct {
	Up     key.Binding
	Down   key.Binding
	Follow key.Binding
	Quit   key.Binding
}

var defaultBrowserKeys = browserKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Follow: key.NewBinding(
		key.WithKeys("enter", "right", "l"),
		key.WithHelp("⏎", "follow relation"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k browserKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Follow, k.Quit}
}

func (k browserKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// =============================================================================
// classBrowser - Interactive class browser
// =============================================================================

// classBrowser lists the classes on the left and shows the selected one's
// members and relationships on the right.
type classBrowser struct {
	graph  diagram.Graph
	ranks  map[string]int
	cursor int
	offset int
	height int
	keys   browserKeys
	help   help.Model
}

func newClassBrowser(a pipeline.Analysis) classBrowser {
	return classBrowser{
		graph:  a.Graph,
		ranks:  a.Layout.Ranks,
		height: 15,
		keys:   defaultBrowserKeys,
		help:   help.New(),
	}
}

func (m classBrowser) Init() tea.Cmd {
	return nil
}

func (m classBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.graph.Nodes)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case key.Matches(msg, m.keys.Follow):
			m.follow()
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
		m.help.Width = msg.Width
	}
	return m, nil
}

// follow moves the cursor to the first class the selected one points at.
func (m *classBrowser) follow() {
	if len(m.graph.Nodes) == 0 {
		return
	}
	id := m.graph.Nodes[m.cursor].ID
	for _, e := range m.graph.EdgesOf(id) {
		if e.Source != id || e.Target == id {
			continue
		}
		for i, n := range m.graph.Nodes {
			if n.ID == e.Target {
				m.cursor = i
				if m.cursor < m.offset || m.cursor >= m.offset+m.height {
					m.offset = max(m.cursor-m.height+1, 0)
				}
				return
			}
		}
	}
}

func (m classBrowser) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Classes"))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")

	if len(m.graph.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  no classes"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), "  ", m.detailView()))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.graph.Nodes))))
	return b.String()
}

func (m classBrowser) listView() string {
	end := min(m.offset+m.height, len(m.graph.Nodes))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		n := m.graph.Nodes[i]
		if i == m.cursor {
			lines = append(lines, listSelectedStyle.Render("▸ "+n.ID))
			continue
		}
		lines = append(lines, listNormalStyle.Render("  "+n.ID))
	}
	return strings.Join(lines, "\n")
}

func (m classBrowser) detailView() string {
	n := m.graph.Nodes[m.cursor]

	var b strings.Builder
	b.WriteString(StyleHighlight.Bold(true).Render(n.ID))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  rank %d", m.ranks[n.ID])))
	section(&b, "Attributes", n.Attributes())
	section(&b, "Methods", n.Methods())
	section(&b, "Relations", relationLines(m.graph, n.ID))
	return detailStyle.Render(b.String())
}

func section(b *strings.Builder, title string, lines []string) {
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(title))
	if len(lines) == 0 {
		b.WriteString("\n" + listDimStyle.Render("  none"))
		return
	}
	for _, l := range lines {
		b.WriteString("\n  " + listNormalStyle.Render(l))
	}
}
