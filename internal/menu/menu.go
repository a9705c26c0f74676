// Package menu implements a one-line horizontal selection menu. The
// model is a pure state machine over key events, so it can be tested
// without a terminal; Select runs it interactively.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Option is a selectable menu entry with a single-character shortcut.
type Option struct {
	Label    string
	Shortcut rune
}

type status int

const (
	browsing status = iota
	confirmed
	cancelled
)

var (
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	separator     = " │ "
)

// Model is the menu state machine. It starts browsing at index 0 and
// terminates confirmed or cancelled.
type Model struct {
	options []Option
	cursor  int
	state   status
}

// New creates a menu model over a non-empty option list.
func New(options []Option) Model {
	return Model{options: options}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.state != browsing {
		return m, nil
	}

	last := len(m.options) - 1

	switch key.Type {
	case tea.KeyLeft, tea.KeyUp, tea.KeyCtrlB:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyRight, tea.KeyDown, tea.KeyCtrlF:
		if m.cursor < last {
			m.cursor++
		}
	case tea.KeyHome, tea.KeyCtrlA:
		m.cursor = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		m.cursor = last
	case tea.KeyEnter:
		m.state = confirmed
		return m, tea.Quit
	case tea.KeyEsc:
		m.state = cancelled
		return m, tea.Quit
	case tea.KeyRunes:
		if len(key.Runes) != 1 {
			break
		}
		switch key.Runes[0] {
		case 'h':
			if m.cursor > 0 {
				m.cursor--
			}
		case 'l':
			if m.cursor < last {
				m.cursor++
			}
		default:
			// First option whose shortcut matches wins and confirms
			// directly, regardless of the current highlight.
			for i, option := range m.options {
				if key.Runes[0] == option.Shortcut {
					m.cursor = i
					m.state = confirmed
					return m, tea.Quit
				}
			}
		}
	default:
		// Any unrecognized control key cancels, like Esc. Everything
		// else is ignored.
		if key.Type >= tea.KeyCtrlAt && key.Type <= tea.KeyCtrlUnderscore {
			m.state = cancelled
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the options on one line, the highlighted one in reverse
// video.
func (m Model) View() string {
	var b strings.Builder
	for i, option := range m.options {
		entry := option.Label + " (" + string(option.Shortcut) + ")"
		if i == m.cursor {
			entry = selectedStyle.Render(entry)
		}
		b.WriteString(entry)
		if i < len(m.options)-1 {
			b.WriteString(separator)
		}
	}
	return b.String()
}

// Choice returns the confirmed index, or ok=false when the menu was
// cancelled or is still browsing.
func (m Model) Choice() (int, bool) {
	if m.state != confirmed {
		return 0, false
	}
	return m.cursor, true
}

// Select runs the menu on the terminal and blocks until the user
// confirms or cancels. The terminal's raw mode and cursor visibility
// are restored on every exit path, including errors.
func Select(options []Option) (int, bool, error) {
	final, err := tea.NewProgram(New(options)).Run()
	if err != nil {
		return 0, false, err
	}
	index, ok := final.(Model).Choice()
	return index, ok, nil
}
