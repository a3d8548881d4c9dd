package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
)

type fakeCommands struct {
	calls []string
	err   error
}

func (f *fakeCommands) ListPersons(_ context.Context) (ports.Outcome, error) {
	f.calls = append(f.calls, "list")
	return ports.Done, f.err
}

func (f *fakeCommands) StorePerson(_ context.Context, firstname, lastname string) (ports.Outcome, error) {
	f.calls = append(f.calls, "store:"+firstname+"|"+lastname)
	return ports.Done, f.err
}

func (f *fakeCommands) SearchPersons(_ context.Context, text string) (ports.Outcome, error) {
	f.calls = append(f.calls, "search:"+text)
	return ports.Done, f.err
}

func TestModel_Dispatch(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output []string
		calls  []string
	}{
		{name: "empty lists", input: "", output: []string{"list_persons()..."}, calls: []string{"list"}},
		{name: "create without argument", input: "create", output: []string{"Too few arguments (0)"}},
		{name: "create firstname", input: "create John", output: []string{"store_person(firstname=John)"}, calls: []string{"store:John|"}},
		{name: "create both names", input: "create John  Doe", output: []string{"store_person(firstname=John, lastname=Doe)"}, calls: []string{"store:John|Doe"}},
		{name: "create too many", input: "create a b c", output: []string{"Too many arguments (3)"}},
		{name: "search", input: "enfant de John", output: []string{"search_persons(enfant de John)..."}, calls: []string{"search:enfant de John"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commands := &fakeCommands{}
			window := NewWindow()
			m := New(t.Context(), window, commands)

			require.NoError(t, m.dispatch(tt.input))

			assert.Equal(t, tt.output, window.Lines())
			assert.Equal(t, tt.calls, commands.calls)
		})
	}
}

func TestModel_EnterRunsCommand(t *testing.T) {
	commands := &fakeCommands{err: errors.New("boom")}
	window := NewWindow()
	window.WriteLine("previous output")
	m := New(t.Context(), window, commands)
	m.input.SetValue("  create Emma  ")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	model := updated.(Model)
	assert.True(t, model.running)
	assert.Empty(t, model.input.Value())
	assert.Empty(t, window.Lines())

	msg := cmd()
	updated, _ = model.Update(msg)
	model = updated.(Model)

	assert.False(t, model.running)
	assert.Equal(t, []string{"store:Emma|"}, commands.calls)
	assert.Equal(t, []string{"store_person(firstname=Emma)", "error: boom"}, window.Lines())
	assert.Contains(t, model.View(), "store_person(firstname=Emma)")
}

func TestModel_Quit(t *testing.T) {
	m := New(t.Context(), NewWindow(), &fakeCommands{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindow_PromptsAreCancelled(t *testing.T) {
	window := NewWindow()
	p, err := entities.NewPerson(1, "John", "Doe")
	require.NoError(t, err)
	definition := entities.DefaultRegistry().Find("parent/enfant de")

	selected, outcome := window.SelectPerson(t.Context(), []*entities.Person{p})
	assert.Nil(t, selected)
	assert.Equal(t, ports.Cancelled, outcome)

	updated, outcome := window.UpdatePerson(t.Context(), p)
	assert.Nil(t, updated)
	assert.Equal(t, ports.Cancelled, outcome)

	assert.Equal(t, ports.Cancelled, window.DeletingPerson(t.Context(), p))
	assert.Equal(t, ports.Cancelled, window.CreatingLink(t.Context(), definition, p, p))
	assert.Equal(t, ports.Cancelled, window.DeletingRelationship(t.Context(), entities.NewRelationship(p, p, definition), p))

	lines := window.Lines()
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "ERROR")
	assert.Contains(t, lines[0], "select_person is not available in the window")
}

func TestWindow_Core(t *testing.T) {
	window := NewWindow()
	logger := zap.New(window.Core(zapcore.InfoLevel))

	logger.Debug("hidden")
	logger.Info("no person found", zap.String("pattern", "Zoe"))

	lines := window.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "INFO")
	assert.Contains(t, lines[0], "no person found")
	assert.Contains(t, lines[0], `"pattern": "Zoe"`)
}

func TestWindow_ListPersons(t *testing.T) {
	window := NewWindow()
	emma, err := entities.NewPerson(2, "Emma", "", entities.WithTags("toto"))
	require.NoError(t, err)
	john, err := entities.NewPerson(1, "John", "")
	require.NoError(t, err)

	window.ListPersons([]ports.ResolvedPerson{{Person: emma}, {Person: john}})

	lines := window.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "(1)  John")
	assert.Contains(t, lines[1], "(2)  Emma")
	assert.Equal(t, "     toto", lines[2])
}
