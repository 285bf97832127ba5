package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/pkg/engine"
	"github.com/matzehuels/modelgraph/pkg/graph"
	mgio "github.com/matzehuels/modelgraph/pkg/io"
	"github.com/matzehuels/modelgraph/pkg/view"
	"github.com/matzehuels/modelgraph/pkg/visibility"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listBadgeStyle    = lipgloss.NewStyle().Foreground(colorYellow)
)

// exploreCommand creates the explore command running the terminal browser.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "explore [model.json]",
		Short: "Browse a content model interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := mgio.ImportDocument(args[0])
			if err != nil {
				return fmt.Errorf("load model %s: %w", args[0], err)
			}
			s, err := c.newSession(doc, &flags)
			if err != nil {
				return err
			}

			_, err = tea.NewProgram(newExplorer(s), tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}
	flags.register(cmd)

	return cmd
}

// =============================================================================
// Explorer - Interactive session browser
// =============================================================================

// explorer is the bubbletea model driving an engine session. The cursor
// walks every node of the current view, hidden ones included, so isolated
// sessions can be navigated back out of.
type explorer struct {
	s      *engine.Session
	cursor int
	offset int
	height int
	status string
}

func newExplorer(s *engine.Session) *explorer {
	return &explorer{s: s, height: 15}
}

func (m *explorer) Init() tea.Cmd { return nil }

func (m *explorer) nodes() []graph.Node { return m.s.Graph().Nodes }

func (m *explorer) selected() (graph.Node, bool) {
	nodes := m.nodes()
	if m.cursor < 0 || m.cursor >= len(nodes) {
		return graph.Node{}, false
	}
	return nodes[m.cursor], true
}

func (m *explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m *explorer) handleKey(key string) tea.Cmd {
	n, ok := m.selected()
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter", " ":
		if ok {
			m.s.ToggleNode(n.ID)
		}
	case "a":
		m.s.ToggleAll()
	case "e":
		m.s.ExpandAll()
	case "c":
		m.s.CollapseAll()
	case "i":
		if ok {
			m.s.IsolateSingle(n.ID)
			m.status = "isolated " + n.Label
		}
	case "r":
		if ok {
			m.s.IsolateRelated(n.ID)
			m.status = "related to " + n.Label
		}
	case "x":
		m.s.Reset()
		m.status = ""
	case "t":
		m.s.ToggleRichText()
	case "v":
		next := view.Next(m.s.View().ID)
		if err := m.s.SwitchView(next); err != nil {
			m.status = err.Error()
		} else {
			m.cursor, m.offset, m.status = 0, 0, ""
		}
	}
	m.clamp()
	return nil
}

func (m *explorer) move(delta int) {
	m.cursor += delta
	m.clamp()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m *explorer) clamp() {
	m.cursor = min(m.cursor, len(m.nodes())-1)
	m.cursor = max(m.cursor, 0)
}

func (m *explorer) View() string {
	var b strings.Builder

	info := m.s.View()
	frame := m.s.Frame()
	state := m.s.State()

	b.WriteString(StyleTitle.Render(info.Label))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d of %d nodes · %d edges · %.0f×%.0f",
		len(frame.Nodes), len(m.nodes()), len(frame.Edges), frame.Width, frame.Height)))
	b.WriteString("\n")
	b.WriteString(stateLine(state))
	b.WriteString("\n\n")

	nodes := m.nodes()
	end := min(m.offset+m.height, len(nodes))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.nodeLine(i, nodes[i]))
		b.WriteString("\n")
		if i == m.cursor && nodes[i].Expanded {
			b.WriteString(m.rowLines(nodes[i]))
		}
	}
	if len(nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (empty view)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StyleSuccess.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand  a toggle all  e/c expand/collapse all  i isolate  r related  x reset  t rich text  v view  q quit"))
	return b.String()
}

func (m *explorer) nodeLine(i int, n graph.Node) string {
	cursor := "  "
	if i == m.cursor {
		cursor = "▸ "
	}
	marker := "+"
	if n.Expanded {
		marker = "−"
	}
	line := fmt.Sprintf("%s[%s] %-32s %s", cursor, marker, n.Label, kindLabel(n.Kind))

	switch {
	case i == m.cursor:
		return listSelectedStyle.Render(line)
	case n.Hidden:
		return listDimStyle.Render(line)
	}
	return listNormalStyle.Render(line)
}

func (m *explorer) rowLines(n graph.Node) string {
	rows, ok := m.s.Rows(n.ID)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, r := range rows {
		name := r.Name
		if r.Required {
			name += " *"
		}
		suffix := r.KindLabel
		if r.Origin != nil {
			suffix += " (snippet)"
		}
		if r.SelfReference {
			suffix += " ↺"
		}
		b.WriteString(listDimStyle.Render(fmt.Sprintf("      %-28s %s", name, suffix)))
		b.WriteString("\n")
	}
	return b.String()
}

func stateLine(st visibility.Snapshot) string {
	parts := []string{fmt.Sprintf("%d expanded", len(st.Expanded))}
	if st.IncludeRichText {
		parts = append(parts, "rich text on")
	} else {
		parts = append(parts, "rich text off")
	}
	line := listDimStyle.Render(strings.Join(parts, " · "))
	if st.Isolation != nil {
		line += " " + listBadgeStyle.Render(fmt.Sprintf("[%s: %s]", st.Isolation.Mode, st.Isolation.Target))
	}
	return line
}

func kindLabel(k graph.NodeKind) string {
	switch k {
	case graph.KindSnippet:
		return listDimStyle.Render("snippet")
	case graph.KindTaxonomy:
		return listDimStyle.Render("taxonomy")
	}
	return listDimStyle.Render("type")
}
