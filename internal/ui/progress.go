package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"buildjar/internal/engine"
)

type progressModel struct {
	title      string
	events     <-chan engine.Event
	spinner    spinner.Model
	prog       progress.Model
	items      []unitItem
	index      map[string]int
	stageLabel string
	width      int
	done       bool
}

type unitItem struct {
	path   string
	status string
	stage  engine.Stage
}

type eventMsg engine.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-unit
// invocation progress.
func NewProgressModel(title string, files []string, events <-chan engine.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	items := make([]unitItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, unitItem{path: file, status: "queued"})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		ev := engine.Event(msg)
		cmd := m.applyEvent(ev)
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.stageLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.stageLabel)
	}
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncate(item.path, nameWidth)
		status := item.status
		statusStyled := styleStatus(status).Render(fmt.Sprintf("%12s", status))
		line := fmt.Sprintf("  %s %s", statusStyled, name)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev engine.Event) tea.Cmd {
	label := statusLabel(ev.Stage, ev.Status)
	if ev.File == "" {
		if label != "" {
			m.stageLabel = label
		}
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	if label != "" {
		m.items[idx].status = label
		m.items[idx].stage = ev.Stage
	}

	// Overall progress: emitted units count as complete, others by stage.
	if len(m.items) > 0 {
		totalProgress := 0.0
		for _, item := range m.items {
			if item.status == "done" || item.status == "error" {
				totalProgress += 1.0
			} else {
				totalProgress += progressFromStage(item.stage)
			}
		}
		pct := totalProgress / float64(len(m.items))
		return m.prog.SetPercent(pct)
	}
	return nil
}

func progressFromStage(stage engine.Stage) float64 {
	switch stage {
	case engine.StageDecode:
		return 0.2
	case engine.StageCheck:
		return 0.6
	case engine.StageEmit:
		return 0.9
	default:
		return 0.0
	}
}

func statusLabel(stage engine.Stage, status engine.Status) string {
	switch status {
	case engine.StatusQueued:
		return "queued"
	case engine.StatusDone:
		return "done"
	case engine.StatusError:
		return "error"
	case engine.StatusWorking:
		return stageLabel(stage)
	default:
		return ""
	}
}

func stageLabel(stage engine.Stage) string {
	switch stage {
	case engine.StageDecode:
		return "decoding"
	case engine.StageCheck:
		return "checking"
	case engine.StageEmit:
		return "emitting"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "decoding", "checking", "emitting":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
