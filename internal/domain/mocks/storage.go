package mocks

import (
	"context"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
)

// Storage is an in-memory implementation of ports.Storage.
// Relationships are re-attached to the persons given to ReadRelationships,
// as a real backend would do.
type Storage struct {
	Persons       []*entities.Person
	Relationships []*entities.Relationship
	Err           error

	// Recorded calls.
	StorePersonsCalls       int
	StoreRelationshipsCalls int
	UpdatedPersons          []*entities.Person
	Cleared                 []string
	Closed                  bool
}

// NewStorage creates a Storage holding persons and relationships.
func NewStorage(persons []*entities.Person, relationships []*entities.Relationship) *Storage {
	return &Storage{Persons: persons, Relationships: relationships}
}

// ReadPersons returns a copy of the stored persons.
func (m *Storage) ReadPersons(_ context.Context) ([]*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]*entities.Person(nil), m.Persons...), nil
}

// StorePersons replaces the stored persons.
func (m *Storage) StorePersons(_ context.Context, persons []*entities.Person) error {
	if m.Err != nil {
		return m.Err
	}
	if len(persons) == 0 {
		return ports.ErrEmptyPersons
	}
	m.StorePersonsCalls++
	m.Persons = append([]*entities.Person(nil), persons...)
	return nil
}

// ReadRelationships returns the stored relationships whose endpoints are in persons.
func (m *Storage) ReadRelationships(_ context.Context, persons []*entities.Person) ([]*entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(persons) == 0 {
		return nil, ports.ErrNoPersons
	}
	var res []*entities.Relationship
	for _, r := range m.Relationships {
		left, right := find(persons, r.Left), find(persons, r.Right)
		if left == nil || right == nil {
			continue
		}
		res = append(res, entities.NewRelationship(left, right, r.Definition))
	}
	return res, nil
}

// StoreRelationships replaces the stored relationships.
func (m *Storage) StoreRelationships(_ context.Context, relationships []*entities.Relationship) error {
	if m.Err != nil {
		return m.Err
	}
	if len(relationships) == 0 {
		return ports.ErrEmptyRelationships
	}
	m.StoreRelationshipsCalls++
	m.Relationships = append([]*entities.Relationship(nil), relationships...)
	return nil
}

// UpdatePerson replaces the stored person with the same id.
func (m *Storage) UpdatePerson(_ context.Context, person *entities.Person) error {
	if m.Err != nil {
		return m.Err
	}
	for i, p := range m.Persons {
		if p.ID == person.ID {
			m.Persons[i] = person
			m.UpdatedPersons = append(m.UpdatedPersons, person)
			return nil
		}
	}
	return ports.ErrPersonNotFound
}

// ClearPersons removes every stored person.
func (m *Storage) ClearPersons(_ context.Context) error {
	if m.Err != nil {
		return m.Err
	}
	m.Persons = nil
	m.Cleared = append(m.Cleared, "persons")
	return nil
}

// ClearRelationships removes every stored relationship.
func (m *Storage) ClearRelationships(_ context.Context) error {
	if m.Err != nil {
		return m.Err
	}
	m.Relationships = nil
	m.Cleared = append(m.Cleared, "relationships")
	return nil
}

// Close marks the storage as closed.
func (m *Storage) Close() error {
	m.Closed = true
	return nil
}

func find(persons []*entities.Person, person *entities.Person) *entities.Person {
	for _, p := range persons {
		if p.ID == person.ID {
			return p
		}
	}
	return nil
}
