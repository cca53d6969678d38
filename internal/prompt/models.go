package prompt

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/signalsfoundry/station-journal/internal/ui"
)

// selectModel is a single-choice cursor menu.
type selectModel struct {
	title   string
	options []string
	cursor  int
	chosen  int
	aborted bool
	styles  ui.Styles
}

func newSelectModel(title string, options []string, styles ui.Styles) selectModel {
	return selectModel{title: title, options: options, chosen: -1, styles: styles}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.aborted = true
		return m, tea.Quit
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.options)
	case "enter", " ":
		m.chosen = m.cursor
		return m, tea.Quit
	default:
		// Digits jump straight to an option.
		if n, err := strconv.Atoi(key.String()); err == nil && n >= 1 && n <= len(m.options) {
			m.cursor = n - 1
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(m.title))
	if m.chosen >= 0 {
		sb.WriteString(" " + m.styles.Selected.Render(m.options[m.chosen]) + "\n")
		return sb.String()
	}
	if m.aborted {
		sb.WriteString("\n")
		return sb.String()
	}
	sb.WriteString("\n")
	for i, opt := range m.options {
		if i == m.cursor {
			sb.WriteString(m.styles.Cursor.Render("> ") + m.styles.Selected.Render(opt))
		} else {
			sb.WriteString("  " + opt)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Muted.Render("↑/↓ move • enter select • esc cancel") + "\n")
	return sb.String()
}

// textModel reads one line with a bubbles text input.
type textModel struct {
	title   string
	input   textinput.Model
	done    bool
	aborted bool
	styles  ui.Styles
}

func newTextModel(title string, styles ui.Styles) textModel {
	ti := textinput.New()
	ti.Placeholder = "type and press enter"
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()
	return textModel{title: title, input: ti, styles: styles}
}

func (m textModel) Init() tea.Cmd { return textinput.Blink }

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.done = true
			m.input.Blur()
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textModel) View() string {
	if m.done {
		return m.styles.Title.Render(m.title) + " " + m.input.Value() + "\n"
	}
	return m.styles.Title.Render(m.title) + "\n" + m.input.View() + "\n"
}
