package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flightdeck-io/flightdeck/cli/view"
)

// StatsModel is a Bubble Tea model for stats views.
type StatsModel struct {
	viewType string
	data     any
	width    int
	height   int
	quitting bool
}

// NewStatsModel creates a new stats model.
func NewStatsModel(viewType string, data any) StatsModel {
	return StatsModel{
		viewType: viewType,
		data:     data,
	}
}

// Init implements tea.Model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.viewType {
	case "stats_dataset":
		content = m.renderStatsDataset()
	default:
		content = fmt.Sprintf("Unknown view type: %s", m.viewType)
	}

	help := HelpStyle.Render("Press q or Ctrl+C to quit")
	return content + "\n" + help
}

func (m StatsModel) renderStatsDataset() string {
	data, ok := m.data.(*view.StatsDatasetResponse)
	if !ok {
		return "Invalid data type for stats_dataset"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Dataset Statistics"))
	b.WriteString("\n\n")

	outlierCount := 0
	for _, o := range data.Outliers {
		outlierCount += o.Count
	}

	boxes := []string{
		m.renderStatBox("Rows", data.Rows, highlightColor),
		m.renderStatBox("Columns", data.Columns, primaryColor),
		m.renderStatBox("Outliers", outlierCount, warningColor),
		m.renderStatBox("Strong Pairs", len(data.Correlations), successColor),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n\n")

	if len(data.Summaries) > 0 {
		b.WriteString(TitleStyle.Render("Column Summaries"))
		b.WriteString("\n")
		for _, s := range data.Summaries {
			b.WriteString(fmt.Sprintf("%s %s\n",
				LabelStyle.Render(s.Column+":"),
				ValueStyle.Render(fmt.Sprintf("mean=%.4g std=%.4g min=%.4g median=%.4g max=%.4g",
					s.Mean, s.Std, s.Min, s.Median, s.Max))))
		}
	}

	if len(data.Correlations) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Strong Correlations"))
		b.WriteString("\n")
		for _, c := range data.Correlations {
			b.WriteString(fmt.Sprintf("  %s\n",
				ValueStyle.Render(fmt.Sprintf("%s / %s: r=%.3f", c.ColumnA, c.ColumnB, c.R))))
		}
	}

	if len(data.Insights) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Insights"))
		b.WriteString("\n")
		for _, insight := range data.Insights {
			b.WriteString(fmt.Sprintf("  %s\n", ValueStyle.Render(insight)))
		}
	}

	return b.String()
}

func (m StatsModel) renderStatBox(label string, value int, color lipgloss.Color) string {
	content := StatLabelStyle.Render(label) + "\n" +
		StatValueStyle.Render(fmt.Sprintf("%d", value))
	return StatBoxStyle.BorderForeground(color).Render(content)
}

// RunStatsTUI runs the stats TUI.
func RunStatsTUI(viewType string, data any) error {
	model := NewStatsModel(viewType, data)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RenderStatsStatic renders stats data without the full TUI loop.
func RenderStatsStatic(viewType string, data any) string {
	model := NewStatsModel(viewType, data)
	model.width = 80
	model.height = 24
	return lipgloss.NewStyle().Padding(1, 2).Render(model.View())
}
