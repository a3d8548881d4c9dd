// Package tui provides the terminal window: one text entry and one output area.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/javatronic/lms/internal/domain/ports"
)

const createPrefix = "create"

// Commands are the book commands reachable from the window.
type Commands interface {
	ListPersons(ctx context.Context) (ports.Outcome, error)
	StorePerson(ctx context.Context, firstname, lastname string) (ports.Outcome, error)
	SearchPersons(ctx context.Context, text string) (ports.Outcome, error)
}

// KeyMap defines keybindings
type KeyMap struct {
	Enter key.Binding
	Clear key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run (empty lists persons)"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear output"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Clear, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Enter, k.Clear, k.Quit}}
}

// commandDoneMsg is sent when a command started from the entry returns.
type commandDoneMsg struct {
	err error
}

// Model represents the state of the terminal window.
type Model struct {
	ctx      context.Context
	window   *Window
	commands Commands

	input   textinput.Model
	help    help.Model
	keyMap  KeyMap
	running bool

	width  int
	height int
}

// New creates the window model running commands against window.
func New(ctx context.Context, window *Window, commands Commands) Model {
	input := textinput.New()
	input.Placeholder = "create <firstname> [lastname], or a search"
	input.Prompt = "> "
	input.Focus()

	return Model{
		ctx:      ctx,
		window:   window,
		commands: commands,
		input:    input,
		help:     help.New(),
		keyMap:   DefaultKeyMap(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-6, 10)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.Clear):
			m.window.Clear()
			return m, nil

		case key.Matches(msg, m.keyMap.Enter):
			if m.running {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			m.window.Clear()
			m.running = true
			return m, m.run(text)
		}

	case commandDoneMsg:
		m.running = false
		if msg.err != nil {
			m.window.WriteLine("error: " + msg.err.Error())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// run executes text outside of the update loop.
func (m Model) run(text string) tea.Cmd {
	return func() tea.Msg {
		return commandDoneMsg{err: m.dispatch(text)}
	}
}

// dispatch maps the entry to a command: empty lists persons, "create a [b]"
// registers a person and anything else is a search.
func (m Model) dispatch(text string) error {
	if text == "" {
		m.window.WriteLine("list_persons()...")
		_, err := m.commands.ListPersons(m.ctx)
		return err
	}

	if strings.HasPrefix(text, createPrefix) {
		args := strings.Fields(text[len(createPrefix):])
		switch len(args) {
		case 0:
			m.window.WriteLine("Too few arguments (0)")
			return nil
		case 1:
			m.window.WriteLine(fmt.Sprintf("store_person(firstname=%s)", args[0]))
			_, err := m.commands.StorePerson(m.ctx, args[0], "")
			return err
		case 2:
			m.window.WriteLine(fmt.Sprintf("store_person(firstname=%s, lastname=%s)", args[0], args[1]))
			_, err := m.commands.StorePerson(m.ctx, args[0], args[1])
			return err
		default:
			m.window.WriteLine(fmt.Sprintf("Too many arguments (%d)", len(args)))
			return nil
		}
	}

	m.window.WriteLine(fmt.Sprintf("search_persons(%s)...", text))
	_, err := m.commands.SearchPersons(m.ctx, text)
	return err
}

// View renders the model.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)

	inputStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	outputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Padding(0, 1)

	if m.width > 4 {
		inputStyle = inputStyle.Width(m.width - 2)
		outputStyle = outputStyle.Width(m.width - 2)
	}

	lines := m.window.Lines()
	// title, input box, output borders and help take 8 rows
	if visible := m.height - 8; m.height > 0 && visible > 0 && len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	if m.running {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("Running..."))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("LMS"),
		inputStyle.Render(m.input.View()),
		outputStyle.Render(strings.Join(lines, "\n")),
		helpStyle.Render(m.help.View(m.keyMap)),
	)
}

// Run shows the window until the user quits or ctx is done.
func Run(ctx context.Context, window *Window, commands Commands) error {
	p := tea.NewProgram(New(ctx, window, commands), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
