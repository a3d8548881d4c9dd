package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
	"github.com/javatronic/lms/internal/presentation"
)

// Window is the output area of the terminal window. It implements
// ports.IOs and ports.EventListener; interactive prompts are not available
// there and end with Cancelled.
type Window struct {
	mu     sync.Mutex
	lines  []string
	logger *zap.Logger
}

var (
	_ ports.IOs           = (*Window)(nil)
	_ ports.EventListener = (*Window)(nil)
)

// NewWindow creates an empty output area.
func NewWindow() *Window {
	w := &Window{}
	w.logger = zap.New(w.Core(zapcore.InfoLevel))
	return w
}

// Core returns a zap core writing entries at or above level into the output area.
func (w *Window) Core(level zapcore.LevelEnabler) zapcore.Core {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	return zapcore.NewCore(encoder, zapcore.AddSync(w), level)
}

// Write appends every line of p to the output area.
func (w *Window) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		w.WriteLine(line)
	}
	return len(p), nil
}

// WriteLine appends a line to the output area.
func (w *Window) WriteLine(line string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lines = append(w.lines, line)
}

// Lines returns a copy of the output area.
func (w *Window) Lines() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.lines...)
}

// Clear empties the output area.
func (w *Window) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lines = nil
}

// ShowPerson writes a person and its tags.
func (w *Window) ShowPerson(person *entities.Person) {
	for _, line := range presentation.PersonLines(person) {
		w.WriteLine(line)
	}
}

// ListPersons writes persons ordered by id, each followed by its relationships.
func (w *Window) ListPersons(persons []ports.ResolvedPerson) {
	for _, rp := range presentation.SortByID(persons) {
		w.ShowPerson(rp.Person)
		for _, r := range rp.Relationships {
			w.WriteLine(presentation.RelationshipLine(r, rp.Person))
		}
	}
}

// SelectPerson is not available in the window.
func (w *Window) SelectPerson(_ context.Context, candidates []*entities.Person) (*entities.Person, ports.Outcome) {
	w.unavailable("select_person", zap.Int("candidates", len(candidates)))
	return nil, ports.Cancelled
}

// UpdatePerson is not available in the window.
func (w *Window) UpdatePerson(_ context.Context, person *entities.Person) (*entities.Person, ports.Outcome) {
	w.unavailable("update_person", zap.Stringer("person", person))
	return nil, ports.Cancelled
}

// CreatingPerson announces the creation of person.
func (w *Window) CreatingPerson(person *entities.Person) {
	w.WriteLine(fmt.Sprintf("Create Person %s.", person))
}

// DeletingPerson is not available in the window.
func (w *Window) DeletingPerson(_ context.Context, person *entities.Person) ports.Outcome {
	w.unavailable("deleting_person", zap.Stringer("person", person))
	return ports.Cancelled
}

// CreatingLink is not available in the window.
func (w *Window) CreatingLink(_ context.Context, definition *entities.RelationshipDefinition, _, _ *entities.Person) ports.Outcome {
	w.unavailable("creating_link", zap.Stringer("definition", definition))
	return ports.Cancelled
}

// ConfiguredFromAlias announces that the sex of person was deduced from alias.
func (w *Window) ConfiguredFromAlias(person *entities.Person, alias *entities.RelationshipAlias) {
	w.WriteLine(fmt.Sprintf("Sex of %s set to %s from alias %s", person, person.Sex(), alias.Name))
}

// DeletingRelationship is not available in the window.
func (w *Window) DeletingRelationship(_ context.Context, relationship *entities.Relationship, _ *entities.Person) ports.Outcome {
	w.unavailable("deleting_relationship", zap.Stringer("definition", relationship.Definition))
	return ports.Cancelled
}

func (w *Window) unavailable(prompt string, fields ...zap.Field) {
	w.logger.Error(prompt+" is not available in the window", fields...)
}
