package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zephyrtronium/multicurvas"
)

// Styles of the interactive mode.
var (
	accent = lipgloss.Color("#3B82F6")
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	prompt = lipgloss.NewStyle().Foreground(accent).Bold(true)
	good   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	bad    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	panel  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput  textinput.Model
	loc        multicurvas.Locale
	x          float64
	showRPN    bool
	history    []historyEntry
	cmdHistory []string
	historyIdx int
	height     int
	showHelp   bool
	quitting   bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous expression"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next expression"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "evaluate"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "complete name"),
	),
}

func newREPLModel(loc multicurvas.Locale, x float64) replModel {
	ti := textinput.New()
	ti.Placeholder = "type an expression..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = prompt
	ti.Prompt = "f> "

	return replModel{
		textInput:  ti,
		loc:        loc,
		x:          x,
		historyIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = nil
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.complete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}
			m.textInput.SetValue("")
			m.historyIdx = -1

			if strings.HasPrefix(input, ":") {
				return m.handleCommand(input)
			}

			output, isErr := m.evaluate(input)
			m.history = append(m.history, historyEntry{
				input:  input,
				output: output,
				isErr:  isErr,
			})
			m.cmdHistory = append(m.cmdHistory, input)
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]
	arg := strings.TrimSpace(strings.TrimPrefix(input, cmd))

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = nil
	case ":rpn":
		m.showRPN = !m.showRPN
		m.note(input, "postfix display "+onOff(m.showRPN), false)
	case ":x":
		if arg == "" {
			m.note(input, "x = "+formatValue(m.x), false)
			break
		}
		v, err := constant(arg, m.loc)
		if err != nil {
			m.note(input, err.Error(), true)
			break
		}
		m.x = v
		m.note(input, "x = "+formatValue(v), false)
	case ":locale", ":l":
		if arg == "" {
			m.note(input, "locale "+m.loc.String(), false)
			break
		}
		loc, err := multicurvas.ParseLocale(arg)
		if err != nil {
			m.note(input, err.Error(), true)
			break
		}
		m.loc = loc
		m.note(input, "locale "+loc.String(), false)
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.note(input, fmt.Sprintf("Unknown command: %s", cmd), true)
	}
	return m, nil
}

func (m *replModel) note(input, output string, isErr bool) {
	m.history = append(m.history, historyEntry{input: input, output: output, isErr: isErr})
}

// complete finishes the name being typed if it is the prefix of exactly one
// keyword.
func (m replModel) complete() replModel {
	input := m.textInput.Value()
	i := len(input)
	for i > 0 && isNameByte(input[i-1]) {
		i--
	}
	word := input[i:]
	if word == "" {
		return m
	}
	var matches []string
	for _, kw := range multicurvas.Keywords() {
		if strings.HasPrefix(kw, word) {
			matches = append(matches, kw)
		}
	}
	switch len(matches) {
	case 0:
	case 1:
		m.textInput.SetValue(input[:i] + matches[0])
		m.textInput.CursorEnd()
	default:
		m.note("", "Completions: "+strings.Join(matches, ", "), false)
	}
	return m
}

func isNameByte(c byte) bool {
	return 'a' <= c && c <= 'z' || '0' <= c && c <= '9'
}

func (m replModel) evaluate(input string) (string, bool) {
	rpn, err := multicurvas.Compile(input, m.loc)
	if err != nil {
		return err.Error(), true
	}
	defer rpn.Release()
	r, err := multicurvas.EvalRPN(rpn, m.x)
	if err != nil {
		return err.Error(), true
	}
	out := formatValue(r)
	if m.showRPN {
		out = postfix(rpn) + "  =  " + out
	}
	return out, false
}

func postfix(rpn *multicurvas.TokenBuffer) string {
	var b strings.Builder
	for i := 0; i < rpn.Len(); i++ {
		tok := rpn.Token(i)
		if tok.Type == multicurvas.End {
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		if v, ok := rpn.Value(tok); ok {
			b.WriteString(formatValue(v))
		} else {
			b.WriteString(tok.Type.String())
		}
	}
	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m replModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(prompt.Render("multicurvas") + dim.Render(fmt.Sprintf("  x = %s, %s decimals", formatValue(m.x), m.loc)) + "\n\n")

	// Keep the input line on screen by dropping the oldest results.
	rows := m.height - 6
	if m.showHelp {
		rows -= len(helpLines) + 2
	}
	rows = max(rows, 1)
	history := m.history
	if len(history) > rows {
		history = history[len(history)-rows:]
	}
	for _, e := range history {
		if e.input != "" {
			b.WriteString(dim.Render("  "+e.input) + "\n")
		}
		if e.isErr {
			b.WriteString("  " + bad.Render("✗ "+e.output) + "\n")
		} else {
			b.WriteString("  " + good.Render("= "+e.output) + "\n")
		}
	}
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(panel.Render(strings.Join(helpLines, "\n")) + "\n")
	}
	b.WriteString(m.textInput.View() + "\n")
	b.WriteString(dim.Render(":help for commands, ctrl+c to quit"))
	return b.String()
}

var helpLines = []string{
	"↑/↓       expression history",
	"tab       complete a function or constant name",
	":x v      set the variable to the constant v",
	":locale   set the decimal convention, e.g. comma",
	":rpn      toggle postfix display",
	":clear    clear results",
	":quit     exit",
}

func runREPL(loc multicurvas.Locale, x float64) error {
	p := tea.NewProgram(newREPLModel(loc, x), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
