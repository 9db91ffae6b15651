package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	velocut "github.com/Eric-Lautanen/velocut-ffmpeg-the-third"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/verify"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	libStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateViewStream modelState = iota
	stateFilter
	stateShowVerify
)

type interactiveModel struct {
	err      error
	opts     options
	stream   velocut.Stream
	filter   textinput.Model
	verdict  string
	selected int
	state    modelState
}

func newInteractiveModel(opts options) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "library name"
	ti.Prompt = "filter: "
	ti.Width = 30
	return &interactiveModel{opts: opts, filter: ti, state: stateViewStream}
}

type plannedMsg struct {
	err    error
	stream velocut.Stream
}

type verifiedMsg struct {
	err error
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.plan
}

func (m *interactiveModel) plan() tea.Msg {
	p, err := m.opts.pipeline()
	if err != nil {
		return plannedMsg{err: err}
	}
	stream, err := p.Plan(context.Background())
	if err != nil {
		return plannedMsg{err: err}
	}
	return plannedMsg{stream: stream}
}

func (m *interactiveModel) verifyBinary() tea.Msg {
	allow, err := verify.LoadAllowList(m.opts.allowFile)
	if err != nil {
		return verifiedMsg{err: err}
	}
	return verifiedMsg{err: verify.Binary(m.opts.binaryPath, allow)}
}

// visible returns the directives matching the current filter.
func (m *interactiveModel) visible() velocut.Stream {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		return m.stream
	}
	var out velocut.Stream
	for _, d := range m.stream {
		if d.Kind == velocut.DirectiveLinkLibrary && !strings.Contains(d.Name, query) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateFilter {
			switch msg.String() {
			case "enter", "esc":
				m.state = stateViewStream
				m.filter.Blur()
				m.selected = 0
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateViewStream && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateViewStream && m.selected < len(m.visible())-1 {
				m.selected++
			}

		case "/":
			if m.state == stateViewStream {
				m.state = stateFilter
				m.filter.Focus()
				return m, textinput.Blink
			}

		case "v":
			if m.state == stateViewStream && m.opts.binaryPath != "" && m.opts.allowFile != "" {
				return m, m.verifyBinary
			}

		case "esc", "enter":
			if m.state == stateShowVerify {
				m.state = stateViewStream
				m.verdict = ""
			}
		}

	case plannedMsg:
		m.err = msg.err
		m.stream = msg.stream

	case verifiedMsg:
		m.state = stateShowVerify
		if msg.err != nil {
			m.verdict = errorStyle.Render(msg.err.Error())
		} else {
			m.verdict = okStyle.Render(m.opts.binaryPath + ": all dynamic imports are allow-listed")
		}
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.stream) == 0 {
		return "Planning link directives..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Static Link Plan"))
	b.WriteString(" ")
	b.WriteString(m.opts.target)
	b.WriteString("\n\n")

	switch m.state {
	case stateViewStream, stateFilter:
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		for i, d := range m.visible() {
			cursor := "  "
			line := m.formatDirective(d)
			if m.state == stateViewStream && i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + line))
			} else {
				b.WriteString(cursor + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.state == stateFilter {
			b.WriteString(helpStyle.Render("enter apply • esc cancel"))
		} else {
			help := "↑/↓ select • / filter • q quit"
			if m.opts.binaryPath != "" && m.opts.allowFile != "" {
				help = "↑/↓ select • / filter • v verify binary • q quit"
			}
			b.WriteString(helpStyle.Render(help))
		}

	case stateShowVerify:
		b.WriteString("Verification of ")
		b.WriteString(pathStyle.Render(m.opts.binaryPath))
		b.WriteString(":\n\n")
		b.WriteString(m.verdict)
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter back • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatDirective(d velocut.Directive) string {
	switch d.Kind {
	case velocut.DirectiveSearchPath:
		return "search " + pathStyle.Render(d.Path)
	case velocut.DirectiveLinkLibrary:
		return "link   " + libStyle.Render(d.Name) + helpStyle.Render(" ("+d.Mode.String()+")")
	default:
		return d.String()
	}
}

func runInteractive(opts options) error {
	p := tea.NewProgram(newInteractiveModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
