package badgerdb

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
	"github.com/javatronic/lms/internal/infrastructure/storage/storagetest"
)

func setupTestStorage(t *testing.T, registry entities.Registry) *Storage {
	t.Helper()
	s, err := NewInMemory(registry, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T, registry entities.Registry) ports.Storage {
		return setupTestStorage(t, registry)
	})
}

func TestStorage_Keys(t *testing.T) {
	s := setupTestStorage(t, entities.DefaultRegistry())

	var persons []*entities.Person
	for i, name := range []string{"a", "b", "c"} {
		p, err := entities.NewPerson(10-i, name, "")
		require.NoError(t, err)
		persons = append(persons, p)
	}
	require.NoError(t, s.StorePersons(t.Context(), persons))
	require.NoError(t, s.StorePersons(t.Context(), persons[:2]))

	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, personPrefix, func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"person/00000000", "person/00000001"}, keys)
}

func TestStorage_OnDisk(t *testing.T) {
	registry := entities.DefaultRegistry()
	dir := t.TempDir()

	s, err := New(dir, registry, zap.NewNop())
	require.NoError(t, err)
	john, err := entities.NewPerson(1, "John", "Doe", entities.WithSex(entities.Male))
	require.NoError(t, err)
	require.NoError(t, s.StorePersons(t.Context(), []*entities.Person{john}))
	require.NoError(t, s.Close())

	reopened, err := New(dir, registry, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	persons, err := reopened.ReadPersons(t.Context())
	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.True(t, john.Equal(persons[0]))
	assert.Same(t, entities.Male, persons[0].Sex())
}
