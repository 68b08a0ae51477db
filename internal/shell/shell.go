package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quill-tools/quill/internal/style"
	"github.com/quill-tools/quill/quill"
)

const maxScrollback = 500

// Model is the Bubble Tea model for the interactive shell: a prompt with
// history and tab completion backed by the dispatch handler's suggestion
// engine.
type Model struct {
	handler *quill.Handler
	actor   *BufferActor

	input   textinput.Model
	lines   []string
	history []string
	histPos int

	width  int
	height int
}

// NewModel returns a shell model dispatching as the given actor.
func NewModel(handler *quill.Handler, actor *BufferActor) Model {
	input := textinput.New()
	input.Prompt = style.Prompt("qsh> ")
	input.Placeholder = "type a command, tab to complete, exit to quit"
	input.Focus()

	return Model{
		handler: handler,
		actor:   actor,
		input:   input,
		lines:   []string{style.Muted("qsh interactive shell. Type 'exit' to leave.")},
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyTab:
			return m.complete()
		case tea.KeyUp:
			return m.recall(-1)
		case tea.KeyDown:
			return m.recall(1)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if line == "" {
		return m, nil
	}
	if line == "exit" || line == "quit" {
		return m, tea.Quit
	}

	m.history = append(m.history, line)
	m.histPos = len(m.history)
	m.appendLine(style.Prompt("qsh> ") + line)

	_, ok := m.handler.Dispatch(m.actor, line)
	for _, reply := range m.actor.Drain() {
		if ok {
			m.appendLine(reply)
		} else {
			m.appendLine(style.Error(reply))
		}
	}
	return m, nil
}

func (m Model) complete() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	candidates := m.handler.AutoComplete(m.actor, value)
	switch len(candidates) {
	case 0:
		return m, nil
	case 1:
		m.input.SetValue(replaceLastToken(value, candidates[0]))
		m.input.CursorEnd()
		return m, nil
	default:
		m.appendLine(style.Muted(strings.Join(candidates, "  ")))
		return m, nil
	}
}

func (m Model) recall(delta int) (tea.Model, tea.Cmd) {
	if len(m.history) == 0 {
		return m, nil
	}
	m.histPos += delta
	if m.histPos < 0 {
		m.histPos = 0
	}
	if m.histPos >= len(m.history) {
		m.histPos = len(m.history)
		m.input.SetValue("")
		return m, nil
	}
	m.input.SetValue(m.history[m.histPos])
	m.input.CursorEnd()
	return m, nil
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxScrollback {
		m.lines = m.lines[len(m.lines)-maxScrollback:]
	}
}

func (m Model) View() string {
	visible := m.lines
	if m.height > 2 && len(visible) > m.height-2 {
		visible = visible[len(visible)-(m.height-2):]
	}

	var b strings.Builder
	for _, line := range visible {
		fmt.Fprintln(&b, line)
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

// replaceLastToken swaps the trailing partial token of value for the chosen
// completion. When value ends with a space, the completion starts a new
// token.
func replaceLastToken(value, completion string) string {
	if value == "" || strings.HasSuffix(value, " ") {
		return value + completion + " "
	}
	tokens := strings.Fields(value)
	tokens[len(tokens)-1] = completion
	return strings.Join(tokens, " ") + " "
}
