// Package storage selects the ports.Storage backend of a book.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
	"github.com/javatronic/lms/internal/infrastructure/config"
	"github.com/javatronic/lms/internal/infrastructure/storage/badgerdb"
	"github.com/javatronic/lms/internal/infrastructure/storage/jsonfile"
	"github.com/javatronic/lms/internal/infrastructure/storage/sqlite"
)

// Open opens the storage of book with the backend named in cfg.
func Open(ctx context.Context, cfg *config.Config, book string, registry entities.Registry, logger *zap.Logger) (ports.Storage, error) {
	dir := config.BookDir(cfg.Storage.Dir, book)
	logger = logger.With(zap.String("book", config.SanitizeBookName(book)), zap.String("backend", cfg.Storage.Backend))

	switch cfg.Storage.Backend {
	case config.BackendJSONFile, "":
		return jsonfile.New(dir, registry, logger)

	case config.BackendSQLite:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating book directory: %w", err)
		}
		repo, err := sqlite.NewRepository(filepath.Join(dir, sqlite.DatabaseFile), registry, logger)
		if err != nil {
			return nil, err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			repo.Close()
			return nil, err
		}
		return repo, nil

	case config.BackendBadger:
		return badgerdb.New(filepath.Join(dir, badgerdb.DatabaseDir), registry, logger)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// Opener binds registry and logger so books can be opened from a config alone.
func Opener(registry entities.Registry, logger *zap.Logger) func(ctx context.Context, cfg *config.Config, book string) (ports.Storage, error) {
	return func(ctx context.Context, cfg *config.Config, book string) (ports.Storage, error) {
		return Open(ctx, cfg, book, registry, logger)
	}
}

// AuditLog is implemented by backends that keep a history of mutations.
type AuditLog interface {
	RecentAuditLog(ctx context.Context, limit int) ([]entities.AuditEntry, error)
	FindAuditLog(ctx context.Context, personID int) ([]entities.AuditEntry, error)
	FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error)
}

var _ AuditLog = (*sqlite.Repository)(nil)
