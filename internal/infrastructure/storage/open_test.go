package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/infrastructure/config"
	"github.com/javatronic/lms/internal/infrastructure/storage/badgerdb"
	"github.com/javatronic/lms/internal/infrastructure/storage/jsonfile"
	"github.com/javatronic/lms/internal/infrastructure/storage/sqlite"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		backend  string
		created  string
		auditLog bool
	}{
		{backend: config.BackendJSONFile, created: ""},
		{backend: config.BackendSQLite, created: sqlite.DatabaseFile, auditLog: true},
		{backend: config.BackendBadger, created: badgerdb.DatabaseDir},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := config.Default()
			cfg.Storage.Dir = t.TempDir()
			cfg.Storage.Backend = tt.backend

			s, err := Open(t.Context(), cfg, "My Family", entities.DefaultRegistry(), zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })

			p, err := entities.NewPerson(0, "John", "Doe")
			require.NoError(t, err)
			require.NoError(t, s.StorePersons(t.Context(), []*entities.Person{p}))

			dir := config.BookDir(cfg.Storage.Dir, "My Family")
			name := tt.created
			if name == "" {
				name = jsonfile.PersonsFile
			}
			_, err = os.Stat(filepath.Join(dir, name))
			assert.NoError(t, err)

			_, ok := s.(AuditLog)
			assert.Equal(t, tt.auditLog, ok)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Dir = t.TempDir()
	cfg.Storage.Backend = "mongo"

	_, err := Open(t.Context(), cfg, config.DefaultBook, entities.DefaultRegistry(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown storage backend "mongo"`)
}

func TestOpener(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Dir = t.TempDir()

	open := Opener(entities.DefaultRegistry(), zap.NewNop())
	s, err := open(t.Context(), cfg, config.DefaultBook)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
