package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/javatronic/lms/internal/domain/entities"
)

func newPerson(t *testing.T, id int, firstname, lastname string, opts ...entities.PersonOption) *entities.Person {
	t.Helper()
	p, err := entities.NewPerson(id, firstname, lastname, opts...)
	require.NoError(t, err)
	return p
}

// family is John, father of Peter and Emma.
type family struct {
	registry entities.Registry
	parent   *entities.RelationshipDefinition
	john     *entities.Person
	peter    *entities.Person
	emma     *entities.Person
	persons  []*entities.Person
	rels     []*entities.Relationship
}

func newFamily(t *testing.T) family {
	t.Helper()
	registry := entities.DefaultRegistry()
	f := family{
		registry: registry,
		parent:   registry.Find("parent/enfant de"),
		john:     newPerson(t, 1, "John", ""),
		peter:    newPerson(t, 2, "Peter", ""),
		emma:     newPerson(t, 3, "Emma", "", entities.WithSex(entities.Female)),
	}
	f.persons = []*entities.Person{f.john, f.peter, f.emma}
	f.rels = []*entities.Relationship{
		entities.NewRelationship(f.john, f.peter, f.parent),
		entities.NewRelationship(f.john, f.emma, f.parent),
	}
	return f
}
