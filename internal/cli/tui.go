package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/workflowgraph/pkg/render/layout"
)

// List styles
var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	listRouteStyle = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// PreviewModel - Interactive layout browser
// =============================================================================

// PreviewModel is the bubbletea model that lists positioned stages and the
// routes leaving the selected one.
type PreviewModel struct {
	Layout     layout.Layout
	Cursor     int
	Height     int
	Offset     int
	ShowRoutes bool

	routes map[int][]layout.EdgeRoute
}

// NewPreviewModel creates a preview of l.
func NewPreviewModel(l layout.Layout) PreviewModel {
	routes := make(map[int][]layout.EdgeRoute)
	for _, r := range l.Routes {
		routes[r.Edge.Source] = append(routes[r.Edge.Source], r)
	}
	return PreviewModel{
		Layout:     l,
		Height:     15,
		ShowRoutes: true,
		routes:     routes,
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Layout.Nodes)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(n-1, 0)
		case "enter", " ":
			m.ShowRoutes = !m.ShowRoutes
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}

	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder
	p := m.Layout.Params

	b.WriteString(StyleTitle.Render("Workflow Layout"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s×%s frame · %s×%s nodes",
		fmtCoord(p.WindowWidth), fmtCoord(p.WindowHeight), fmtCoord(p.RectWidth), fmtCoord(p.RectHeight))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ routes  q quit"))
	b.WriteString("\n\n")

	if len(m.Layout.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (no stages)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Layout.Nodes))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		node := m.Layout.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(node.ID),
			node.Name,
			strconv.Itoa(node.Depth),
			fmtCoord(node.X),
			fmtCoord(node.Y),
			strconv.Itoa(node.All),
			strconv.Itoa(node.Completed),
			strconv.Itoa(node.Remaining),
			strconv.Itoa(len(m.routes[node.ID])),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Stage", "Depth", "X", "Y", "All", "Done", "Left", "Out").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			switch col {
			case 6:
				return lipgloss.NewStyle().Foreground(colorBlue)
			case 7:
				return lipgloss.NewStyle().Foreground(colorGreen)
			case 8:
				return lipgloss.NewStyle().Foreground(colorRed)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.ShowRoutes {
		b.WriteString(m.routesView(m.Layout.Nodes[m.Cursor]))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Layout.Nodes))))
	if m.Layout.Fallback {
		b.WriteString("  ")
		b.WriteString(StyleWarning.Render("no start node: all stages at depth 0"))
	}
	return b.String()
}

func (m PreviewModel) routesView(node layout.PositionedNode) string {
	var b strings.Builder
	routes := m.routes[node.ID]
	if len(routes) == 0 {
		b.WriteString(listDimStyle.Render("  no outgoing edges"))
		b.WriteString("\n")
		return b.String()
	}
	for _, r := range routes {
		legs := make([]string, len(r.Segments))
		for i, s := range r.Segments {
			legs[i] = fmt.Sprintf("(%s,%s)→(%s,%s)", fmtCoord(s.X1), fmtCoord(s.Y1), fmtCoord(s.X2), fmtCoord(s.Y2))
		}
		fmt.Fprintf(&b, "  %s %s  %s  %s\n",
			StyleDim.Render(iconArrow),
			StyleValue.Render(strconv.Itoa(r.Edge.End)),
			listRouteStyle.Render(string(r.Direction)),
			listDimStyle.Render(strings.Join(legs, " ")))
	}
	return b.String()
}

// fmtCoord prints a coordinate with at most one decimal.
func fmtCoord(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
