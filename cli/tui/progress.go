package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/flightdeck-io/flightdeck/types"
)

// ProgressMsg carries a pipeline progress event into the TUI.
// Send it with Program.Send from the progress observer; Bubble Tea
// serializes message delivery, so the observer never blocks rendering.
type ProgressMsg types.ProgressEvent

// DoneMsg signals that the pipeline finished.
type DoneMsg struct {
	Outcome   string
	Message   string
	SizeBytes int
}

// ExportModel is a Bubble Tea model for live export progress.
type ExportModel struct {
	exportID  string
	tier      string
	bar       progress.Model
	completed int
	total     int
	outcome   string
	message   string
	sizeBytes int
	cancel    func()
	cancelled bool
	done      bool
	quitting  bool
}

// NewExportModel creates an export progress model. cancel is invoked
// when the user requests cancellation; it must be safe to call more
// than once.
func NewExportModel(exportID, tier string, total int, cancel func()) ExportModel {
	bar := progress.New(progress.WithDefaultGradient())
	return ExportModel{
		exportID: exportID,
		tier:     tier,
		bar:      bar,
		total:    total,
		cancel:   cancel,
	}
}

// Init implements tea.Model.
func (m ExportModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > 60 {
			width = 60
		}
		if width > 0 {
			m.bar.Width = width
		}
		return m, nil

	case ProgressMsg:
		m.completed = msg.Completed
		if msg.Total > 0 {
			m.total = msg.Total
		}
		if m.total > 0 {
			return m, m.bar.SetPercent(float64(m.completed) / float64(m.total))
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.outcome = msg.Outcome
		m.message = msg.Message
		m.sizeBytes = msg.SizeBytes
		return m, tea.Quit

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			if m.cancel != nil && !m.cancelled {
				m.cancelled = true
				m.cancel()
			}
			return m, nil
		case key.Matches(msg, keys.Quit):
			// Quit also cancels; the pipeline sends DoneMsg once it
			// observes the cancel, which ends the program.
			if m.cancel != nil && !m.cancelled {
				m.cancelled = true
				m.cancel()
			}
			m.quitting = true
			return m, nil
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m ExportModel) View() string {
	title := TitleStyle.Render(fmt.Sprintf("Exporting %s (%s)", m.exportID, m.tier))

	status := fmt.Sprintf("%d/%d frames", m.completed, m.total)
	if m.cancelled && !m.done {
		status = WarningStyle.Render("cancelling, waiting for workers to stop")
	}
	if m.done {
		status = OutcomeStyle(m.outcome).Render(m.outcome)
		if m.message != "" {
			status += " " + ValueStyle.Render(m.message)
		}
		if m.sizeBytes > 0 {
			status += ValueStyle.Render(fmt.Sprintf(" (%d bytes)", m.sizeBytes))
		}
	}

	help := HelpStyle.Render("Press c to cancel, q to quit")
	return fmt.Sprintf("%s\n\n%s\n%s\n%s\n", title, m.bar.View(), status, help)
}

// Done reports whether the export has finished.
func (m ExportModel) Done() bool {
	return m.done
}

// NewExportProgram wraps an export model in a runnable program.
//
// The caller runs the pipeline in a separate goroutine, forwards
// progress events with Send(ProgressMsg(...)), and finishes with
// Send(DoneMsg{...}). Program.Send is safe to call from any goroutine.
func NewExportProgram(exportID, tier string, total int, cancel func()) *tea.Program {
	model := NewExportModel(exportID, tier, total, cancel)
	return tea.NewProgram(model)
}
