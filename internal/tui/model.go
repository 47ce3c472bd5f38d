package tui

import (
	"fmt"
	"strings"
	"time"

	"yearsort/internal/domain"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase represents the current state of an interactive run
type Phase int

const (
	PhaseScanning Phase = iota
	PhaseConfirm
	PhaseExecuting
	PhaseDone
	PhaseError
)

// Messages for the TUI
type (
	PlanReadyMsg struct {
		Plan domain.SortPlan
	}
	ScanProgressMsg struct {
		Current int
		Total   int
	}
	ExecProgressMsg struct {
		Current int
		Total   int
		File    string
	}
	ExecDoneMsg struct {
		Report domain.RunReport
	}
	ErrorMsg struct {
		Err error
	}
	ConfirmMsg struct{ Confirmed bool }
	tickMsg    time.Time
)

// ExecuteFunc starts the transfers. It runs outside the update loop and
// reports back through ExecProgressMsg and ExecDoneMsg.
type ExecuteFunc func(plan domain.SortPlan) tea.Cmd

// Config for the TUI
type Config struct {
	Downloads string
	Mode      string
	DryRun    bool
	Verbose   bool
	Execute   ExecuteFunc
}

// Model is the main TUI model
type Model struct {
	config Config

	Phase     Phase
	Plan      domain.SortPlan
	Report    domain.RunReport
	Cancelled bool
	Err       error
	Quitting  bool

	spinner  spinner.Model
	progress progress.Model

	scanCurrent      int
	scanTotal        int
	execCurrent      int
	execTotal        int
	currentFile      string
	confirmSelection bool

	width  int
	height int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseScanning,
		spinner:  s,
		progress: p,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		case "left", "h", "y", "Y":
			if m.Phase == PhaseConfirm {
				m.confirmSelection = true
			}
		case "right", "l", "n", "N":
			if m.Phase == PhaseConfirm {
				m.confirmSelection = false
			}
		case "enter":
			if m.Phase == PhaseConfirm {
				return m, func() tea.Msg {
					return ConfirmMsg{Confirmed: m.confirmSelection}
				}
			}
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case ScanProgressMsg:
		m.scanCurrent = msg.Current
		m.scanTotal = msg.Total
		return m, nil

	case PlanReadyMsg:
		m.Plan = msg.Plan
		if m.config.DryRun || len(m.Plan.Items) == 0 {
			m.Phase = PhaseDone
		} else {
			m.Phase = PhaseConfirm
		}
		return m, nil

	case ConfirmMsg:
		if !msg.Confirmed {
			m.Cancelled = true
			m.Phase = PhaseDone
			return m, nil
		}
		m.Phase = PhaseExecuting
		if m.config.Execute != nil {
			return m, tea.Batch(tickCmd(), m.config.Execute(m.Plan))
		}
		return m, nil

	case ExecProgressMsg:
		m.execCurrent = msg.Current
		m.execTotal = msg.Total
		m.currentFile = msg.File
		return m, nil

	case ExecDoneMsg:
		m.Phase = PhaseDone
		m.Report = msg.Report
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseScanning || m.Phase == PhaseExecuting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.Phase == PhaseExecuting {
			var cmds []tea.Cmd
			if m.execTotal > 0 {
				cmds = append(cmds, m.progress.SetPercent(float64(m.execCurrent)/float64(m.execTotal)))
			}
			cmds = append(cmds, tickCmd(), m.spinner.Tick)
			return m, tea.Batch(cmds...)
		}
	}

	return m, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseScanning:
		b.WriteString(m.renderScanning())
	case PhaseConfirm:
		b.WriteString(m.renderPreview())
		b.WriteString("\n")
		b.WriteString(m.renderConfirmPrompt())
	case PhaseExecuting:
		b.WriteString(m.renderPreview())
		b.WriteString("\n")
		b.WriteString(m.renderExecution())
	case PhaseDone:
		b.WriteString(m.renderPreview())
		b.WriteString("\n")
		b.WriteString(m.renderCompletion())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("🗂  yearsort")
	subtitle := subtitleStyle.Render("Downloads, filed by year")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Folder: %s", iconFolder, m.config.Downloads)),
		dimStyle.Render(fmt.Sprintf("%s Mode:   %s", iconArrow, m.config.Mode)),
	)
}

func (m Model) renderScanning() string {
	if m.scanTotal > 0 {
		percent := float64(m.scanCurrent) / float64(m.scanTotal)
		return fmt.Sprintf("%s Scanning entries...\n\n  %s\n  %s %s",
			m.spinner.View(),
			m.progress.ViewAs(percent),
			countStyle.Render(fmt.Sprintf("%d/%d", m.scanCurrent, m.scanTotal)),
			dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
		)
	}
	return fmt.Sprintf("%s Scanning entries...", m.spinner.View())
}

func (m Model) renderPreview() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Planned"))
	b.WriteString("\n\n")

	if len(m.Plan.Items) == 0 {
		b.WriteString(dimStyle.Render("  Nothing to do"))
		b.WriteString("\n")
	} else {
		for _, line := range formatItemLines(m.Plan.Items, 4) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderSummary())

	if m.config.Verbose && len(m.Plan.Warnings) > 0 {
		b.WriteString("\n\n")
		b.WriteString(warningStyle.Render("Warnings:"))
		b.WriteString("\n")
		for _, w := range m.Plan.Warnings {
			b.WriteString(fmt.Sprintf("  %s %s\n", iconWarning, w))
		}
	}

	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Planned:"), statValueStyle.Render(fmt.Sprintf("%d", len(m.Plan.Items)))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Skipped:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, len(m.Plan.Skipped)))))

	if m.config.DryRun {
		b.WriteString("\n")
		b.WriteString(highlightBoxStyle.Render("🔍 Dry run - nothing was changed"))
	}

	return b.String()
}

func (m Model) renderConfirmPrompt() string {
	verb := "Move"
	if m.config.Mode == "copy" {
		verb = "Copy"
	}
	prompt := confirmPromptStyle.Render(fmt.Sprintf("%s %d entries into year folders?", verb, len(m.Plan.Items)))

	var yesBtn, noBtn string
	if m.confirmSelection {
		yesBtn = highlightBoxStyle.Background(lipgloss.Color("#2D5A27")).Render(" Yes ")
		noBtn = boxStyle.Render(" No ")
	} else {
		yesBtn = boxStyle.Render(" Yes ")
		noBtn = highlightBoxStyle.Background(lipgloss.Color("#5A2727")).Render(" No ")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, yesBtn, "  ", noBtn)

	return lipgloss.JoinVertical(lipgloss.Left, prompt, "", buttons)
}

func (m Model) renderExecution() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Sorting"))
	b.WriteString("\n\n")

	percent := 0.0
	if m.execTotal > 0 {
		percent = float64(m.execCurrent) / float64(m.execTotal)
	}

	b.WriteString(fmt.Sprintf("  %s Working...\n\n", m.spinner.View()))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		countStyle.Render(fmt.Sprintf("%d/%d entries", m.execCurrent, m.execTotal)),
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))

	if m.currentFile != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, fileNameStyle.Render(m.currentFile)))
	}

	return b.String()
}

func (m Model) renderCompletion() string {
	if m.config.DryRun {
		return ""
	}

	var b strings.Builder

	b.WriteString(sectionStyle.Render("Done"))
	b.WriteString("\n\n")

	switch {
	case m.Cancelled:
		b.WriteString(fmt.Sprintf("  %s %s\n", dimStyle.Render(iconSkipped), dimStyle.Render("Cancelled, nothing was changed")))
	case m.Report.FailedCount() > 0:
		b.WriteString(fmt.Sprintf("  %s %s\n\n", errorStyle.Render(iconError), warningStyle.Render("Completed with failures")))
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Processed:"), statValueStyle.Render(fmt.Sprintf("%d", m.Report.SucceededCount()))))
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Failed:"), errorStyle.Render(fmt.Sprintf("%d", m.Report.FailedCount()))))
	default:
		b.WriteString(fmt.Sprintf("  %s %s\n\n", successStyle.Render(iconSuccess), successStyle.Render("Sort complete")))
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Processed:"), statValueStyle.Render(fmt.Sprintf("%d", m.Report.SucceededCount()))))
	}

	return b.String()
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(fmt.Sprintf("Error: %s", m.Err.Error()))

	return highlightBoxStyle.BorderForeground(errorColor).Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseScanning:
		help = "Press q to quit"
	case PhaseConfirm:
		help = "← → or y/n to select • Enter to confirm • q to quit"
	case PhaseExecuting:
		help = "Sorting entries... Please wait"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

// formatItemLines formats plan items for display, first and last halves
// with an ellipsis between when the list is long
func formatItemLines(items []domain.PlanItem, maxItems int) []string {
	if len(items) == 0 {
		return []string{}
	}

	lines := make([]string, 0, min(len(items), maxItems+1))

	if len(items) > maxItems {
		half := maxItems / 2
		for i := 0; i < half; i++ {
			lines = append(lines, formatItem(items[i]))
		}
		lines = append(lines, dimStyle.Render(fmt.Sprintf("... %d more entries ...", len(items)-maxItems)))
		for i := len(items) - half; i < len(items); i++ {
			lines = append(lines, formatItem(items[i]))
		}
	} else {
		for _, item := range items {
			lines = append(lines, formatItem(item))
		}
	}

	return lines
}

func formatItem(item domain.PlanItem) string {
	icon := iconFile
	if item.Entry.Kind == domain.KindDir {
		icon = iconFolder
	}
	name := fileNameStyle.Render(item.Entry.Name)
	target := dimStyle.Render(item.RelativeTarget())
	return fmt.Sprintf("%s %s %s %s", icon, name, iconArrow, target)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
