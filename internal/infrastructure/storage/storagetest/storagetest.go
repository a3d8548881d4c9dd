// Package storagetest holds the behaviour every ports.Storage backend must share.
package storagetest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
)

// Factory returns an empty storage resolving definitions from registry.
// Closing the storage is left to the factory's cleanup.
type Factory func(t *testing.T, registry entities.Registry) ports.Storage

// Run exercises a backend against the ports.Storage contract.
func Run(t *testing.T, factory Factory) {
	registry := entities.DefaultRegistry()
	open := func(t *testing.T) ports.Storage {
		t.Helper()
		return factory(t, registry)
	}

	t.Run("empty storage", func(t *testing.T) {
		s := open(t)

		persons, err := s.ReadPersons(t.Context())
		require.NoError(t, err)
		assert.Empty(t, persons)
	})

	t.Run("persons round trip keeps order", func(t *testing.T) {
		s := open(t)
		persons := samplePersons(t)

		require.NoError(t, s.StorePersons(t.Context(), persons))

		got, err := s.ReadPersons(t.Context())
		require.NoError(t, err)
		require.Len(t, got, len(persons))
		for i, p := range persons {
			assert.True(t, p.Equal(got[i]), "person %d", i)
			assert.Same(t, p.Sex(), got[i].Sex())
			assert.Equal(t, p.Tags, got[i].Tags)
			assert.True(t, p.Created.Equal(got[i].Created))
		}
	})

	t.Run("store replaces previous persons", func(t *testing.T) {
		s := open(t)
		persons := samplePersons(t)

		require.NoError(t, s.StorePersons(t.Context(), persons))
		require.NoError(t, s.StorePersons(t.Context(), persons[1:2]))

		got, err := s.ReadPersons(t.Context())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, persons[1].Equal(got[0]))
	})

	t.Run("empty inputs are rejected", func(t *testing.T) {
		s := open(t)

		assert.ErrorIs(t, s.StorePersons(t.Context(), nil), ports.ErrEmptyPersons)
		assert.ErrorIs(t, s.StoreRelationships(t.Context(), nil), ports.ErrEmptyRelationships)
		_, err := s.ReadRelationships(t.Context(), nil)
		assert.ErrorIs(t, err, ports.ErrNoPersons)
	})

	t.Run("relationships round trip keeps order", func(t *testing.T) {
		s := open(t)
		persons := samplePersons(t)
		rels := sampleRelationships(registry, persons)

		require.NoError(t, s.StorePersons(t.Context(), persons))
		require.NoError(t, s.StoreRelationships(t.Context(), rels))

		reread, err := s.ReadPersons(t.Context())
		require.NoError(t, err)
		got, err := s.ReadRelationships(t.Context(), reread)
		require.NoError(t, err)

		require.Len(t, got, len(rels))
		for i, r := range rels {
			assert.True(t, r.SameLink(got[i]), "relationship %d", i)
			assert.Same(t, reread[indexOf(persons, r.Left)], got[i].Left)
			assert.Same(t, reread[indexOf(persons, r.Right)], got[i].Right)
		}
	})

	t.Run("dangling relationships are dropped", func(t *testing.T) {
		s := open(t)
		persons := samplePersons(t)

		require.NoError(t, s.StorePersons(t.Context(), persons))
		require.NoError(t, s.StoreRelationships(t.Context(), sampleRelationships(registry, persons)))

		got, err := s.ReadRelationships(t.Context(), persons[:2])
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Same(t, persons[0], got[0].Left)
		assert.Same(t, persons[1], got[0].Right)
	})

	t.Run("update person", func(t *testing.T) {
		s := open(t)
		persons := samplePersons(t)
		require.NoError(t, s.StorePersons(t.Context(), persons))

		updated, err := entities.NewPerson(persons[1].ID, "Pete", "Smith",
			entities.WithCreated(persons[1].Created),
			entities.WithSex(entities.Male),
			entities.WithTags("renamed"),
		)
		require.NoError(t, err)
		require.NoError(t, s.UpdatePerson(t.Context(), updated))

		got, err := s.ReadPersons(t.Context())
		require.NoError(t, err)
		require.Len(t, got, len(persons))
		assert.True(t, persons[0].Equal(got[0]))
		assert.True(t, updated.Equal(got[1]))
		assert.Same(t, entities.Male, got[1].Sex())
		assert.Equal(t, []string{"renamed"}, got[1].Tags)
		assert.True(t, persons[2].Equal(got[2]))
	})

	t.Run("update unknown person", func(t *testing.T) {
		s := open(t)
		persons := samplePersons(t)
		require.NoError(t, s.StorePersons(t.Context(), persons))

		unknown, err := entities.NewPerson(42, "Nobody", "")
		require.NoError(t, err)
		assert.ErrorIs(t, s.UpdatePerson(t.Context(), unknown), ports.ErrPersonNotFound)
	})

	t.Run("clear", func(t *testing.T) {
		s := open(t)
		persons := samplePersons(t)
		require.NoError(t, s.StorePersons(t.Context(), persons))
		require.NoError(t, s.StoreRelationships(t.Context(), sampleRelationships(registry, persons)))

		require.NoError(t, s.ClearRelationships(t.Context()))
		rels, err := s.ReadRelationships(t.Context(), persons)
		require.NoError(t, err)
		assert.Empty(t, rels)

		require.NoError(t, s.ClearPersons(t.Context()))
		got, err := s.ReadPersons(t.Context())
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func samplePersons(t *testing.T) []*entities.Person {
	t.Helper()
	created := time.Date(2024, 4, 5, 12, 41, 9, 123456000, time.Local)

	john, err := entities.NewPerson(1, "John", "Doe", entities.WithCreated(created), entities.WithSex(entities.Male))
	require.NoError(t, err)
	peter, err := entities.NewPerson(2, "Peter", "", entities.WithCreated(created.Add(time.Second).Truncate(time.Second)))
	require.NoError(t, err)
	emma, err := entities.NewPerson(5, "Emma", "Doe",
		entities.WithCreated(created.Add(time.Minute)),
		entities.WithSex(entities.Female),
		entities.WithTags("school", "paris"),
	)
	require.NoError(t, err)

	return []*entities.Person{john, peter, emma}
}

func sampleRelationships(registry entities.Registry, persons []*entities.Person) []*entities.Relationship {
	return []*entities.Relationship{
		entities.NewRelationship(persons[0], persons[1], registry.Find("parent/enfant de")),
		entities.NewRelationship(persons[0], persons[2], registry.Find("parent/enfant de")),
		entities.NewRelationship(persons[2], persons[1], registry.Find("frère/sœur de")),
	}
}

func indexOf(persons []*entities.Person, person *entities.Person) int {
	for i, p := range persons {
		if p.ID == person.ID {
			return i
		}
	}
	return -1
}
