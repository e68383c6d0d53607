package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flightdeck-io/flightdeck/cli/view"
)

// InspectModel is a Bubble Tea model for inspect views.
type InspectModel struct {
	viewType string
	data     any
	width    int
	height   int
	quitting bool
}

// NewInspectModel creates a new inspect model.
func NewInspectModel(viewType string, data any) InspectModel {
	return InspectModel{
		viewType: viewType,
		data:     data,
	}
}

// Init implements tea.Model.
func (m InspectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m InspectModel) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.viewType {
	case "inspect_dataset":
		content = m.renderInspectDataset()
	default:
		content = fmt.Sprintf("Unknown view type: %s", m.viewType)
	}

	help := HelpStyle.Render("Press q or Ctrl+C to quit")
	return content + "\n" + help
}

func (m InspectModel) renderInspectDataset() string {
	data, ok := m.data.(*view.InspectDatasetResponse)
	if !ok {
		return "Invalid data type for inspect_dataset"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Dataset Details"))
	b.WriteString("\n\n")

	rows := [][]string{
		{"Name", data.Name},
		{"Encoding", data.Encoding},
		{"Rows", fmt.Sprintf("%d", data.Rows)},
		{"Columns", fmt.Sprintf("%d", data.Columns)},
		{"Numeric Columns", strings.Join(data.NumericColumns, ", ")},
		{"Missing Cells", fmt.Sprintf("%d", data.MissingCells)},
	}
	if data.TimeColumn != "" {
		rows = append(rows, []string{"Time Column", data.TimeColumn})
	}

	for _, row := range rows {
		label := LabelStyle.Render(row[0] + ":")
		value := ValueStyle.Render(row[1])
		b.WriteString(fmt.Sprintf("%s %s\n", label, value))
	}

	if len(data.Sample) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Sample Rows"))
		b.WriteString("\n")
		b.WriteString(ValueStyle.Render(strings.Join(data.ColumnNames, "  ")))
		b.WriteString("\n")
		for _, row := range data.Sample {
			b.WriteString(fmt.Sprintf("  %s\n", ValueStyle.Render(strings.Join(row, "  "))))
		}
	}

	return BoxStyle.Render(b.String())
}

// keyMap defines key bindings.
type keyMap struct {
	Quit   key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("c", "esc"),
		key.WithHelp("c", "cancel export"),
	),
}

// RunInspectTUI runs the inspect TUI.
func RunInspectTUI(viewType string, data any) error {
	model := NewInspectModel(viewType, data)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RenderInspectStatic renders inspect data without the full TUI loop.
func RenderInspectStatic(viewType string, data any) string {
	model := NewInspectModel(viewType, data)
	model.width = 80
	model.height = 24
	return lipgloss.NewStyle().Padding(1, 2).Render(model.View())
}
