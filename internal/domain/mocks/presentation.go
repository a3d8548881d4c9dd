package mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
)

// IOs is a mock implementation of ports.IOs.
// By default SelectPerson picks the first candidate and UpdatePerson returns
// the person unchanged.
type IOs struct {
	SelectFunc func(candidates []*entities.Person) (*entities.Person, ports.Outcome)
	UpdateFunc func(person *entities.Person) (*entities.Person, ports.Outcome)

	Shown       []*entities.Person
	Listed      [][]ports.ResolvedPerson
	SelectCalls [][]*entities.Person
}

// ShowPerson records person.
func (m *IOs) ShowPerson(person *entities.Person) {
	m.Shown = append(m.Shown, person)
}

// ListPersons records persons.
func (m *IOs) ListPersons(persons []ports.ResolvedPerson) {
	m.Listed = append(m.Listed, persons)
}

// SelectPerson records candidates and delegates to SelectFunc.
func (m *IOs) SelectPerson(_ context.Context, candidates []*entities.Person) (*entities.Person, ports.Outcome) {
	m.SelectCalls = append(m.SelectCalls, candidates)
	if m.SelectFunc != nil {
		return m.SelectFunc(candidates)
	}
	return candidates[0], ports.Done
}

// UpdatePerson delegates to UpdateFunc.
func (m *IOs) UpdatePerson(_ context.Context, person *entities.Person) (*entities.Person, ports.Outcome) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(person)
	}
	return person, ports.Done
}

// EventListener is a mock implementation of ports.EventListener.
// Every event is recorded as "<event>:<arg>|<arg>..." in Events. Confirmation
// events return the next outcome of Confirmations, then Confirm once the script
// is exhausted. Confirm is ports.Done unless set.
type EventListener struct {
	Confirm       ports.Outcome
	Confirmations []ports.Outcome
	Events        []string
}

// CreatingPerson records the event.
func (m *EventListener) CreatingPerson(person *entities.Person) {
	m.record("creating_person", person)
}

// DeletingPerson records the event.
func (m *EventListener) DeletingPerson(_ context.Context, person *entities.Person) ports.Outcome {
	m.record("deleting_person", person)
	return m.confirm()
}

// CreatingLink records the event.
func (m *EventListener) CreatingLink(_ context.Context, definition *entities.RelationshipDefinition, left, right *entities.Person) ports.Outcome {
	m.record("creating_link", definition, left, right)
	return m.confirm()
}

// ConfiguredFromAlias records the event.
func (m *EventListener) ConfiguredFromAlias(person *entities.Person, alias *entities.RelationshipAlias) {
	m.record("configured_from_alias", person, alias)
}

// DeletingRelationship records the event.
func (m *EventListener) DeletingRelationship(_ context.Context, relationship *entities.Relationship, person *entities.Person) ports.Outcome {
	m.record("deleting_relationship", relationship.Left, relationship.Definition, relationship.Right, person)
	return m.confirm()
}

func (m *EventListener) confirm() ports.Outcome {
	if len(m.Confirmations) == 0 {
		return m.Confirm
	}
	outcome := m.Confirmations[0]
	m.Confirmations = m.Confirmations[1:]
	return outcome
}

func (m *EventListener) record(event string, args ...fmt.Stringer) {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	m.Events = append(m.Events, event+":"+strings.Join(parts, "|"))
}
