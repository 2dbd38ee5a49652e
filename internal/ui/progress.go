package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Step reports one finished rendering request.
type Step struct {
	Label  string
	Failed bool
}

const recentSteps = 6

type progressModel struct {
	title   string
	total   int
	steps   <-chan Step
	spinner spinner.Model
	prog    progress.Model
	done    int
	failed  int
	recent  []Step
	width   int
	closed  bool
}

type stepMsg Step
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model showing batch progress until
// steps is closed.
func NewProgressModel(title string, total int, steps <-chan Step) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 60
	return &progressModel{
		title:   title,
		total:   total,
		steps:   steps,
		spinner: sp,
		prog:    prog,
		width:   80,
	}
}

// RunProgress drives the progress view on out until steps is closed.
func RunProgress(title string, total int, steps <-chan Step, out io.Writer) error {
	p := tea.NewProgram(NewProgressModel(title, total, steps), tea.WithOutput(out), tea.WithInput(nil))
	_, err := p.Run()
	return err
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		return m, tea.Batch(m.apply(Step(msg)), m.listen())
	case doneMsg:
		m.closed = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.closed {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) apply(s Step) tea.Cmd {
	m.done++
	if s.Failed {
		m.failed++
	}
	m.recent = append(m.recent, s)
	if len(m.recent) > recentSteps {
		m.recent = m.recent[len(m.recent)-recentSteps:]
	}
	if m.total <= 0 {
		return nil
	}
	return m.prog.SetPercent(float64(m.done) / float64(m.total))
}

func (m *progressModel) View() string {
	header := fmt.Sprintf("%s %d/%d", m.title, m.done, m.total)
	if m.failed > 0 {
		header += fmt.Sprintf(" (%d failed)", m.failed)
	}
	if m.closed {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n\n")
	for _, s := range m.recent {
		status := "ok"
		if s.Failed {
			status = "failed"
		}
		fmt.Fprintf(&b, "  %s %s\n", styleStatus(status).Render(fmt.Sprintf("%6s", status)), truncate(s.Label, m.width-12))
	}
	b.WriteString("\n")
	if m.closed {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listen() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.steps
		if !ok {
			return doneMsg{}
		}
		return stepMsg(s)
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "ok":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "failed":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}
