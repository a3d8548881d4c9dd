// Package jsonfile stores a relationship book as two JSON files.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
	"github.com/javatronic/lms/internal/infrastructure/storage/records"
)

const (
	// PersonsFile holds the person records of a book.
	PersonsFile = "persons.db"
	// RelationshipsFile holds the relationship records of a book.
	RelationshipsFile = "relationships.db"
)

// Storage implements ports.Storage on top of JSON files in a directory.
// Every store rewrites the whole file.
type Storage struct {
	dir      string
	resolver *records.Resolver
	logger   *zap.Logger
}

var _ ports.Storage = (*Storage)(nil)

// New creates a Storage in dir, creating the directory if needed.
func New(dir string, registry entities.Registry, logger *zap.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating book directory: %w", err)
	}
	return &Storage{
		dir:      dir,
		resolver: records.NewResolver(registry, logger),
		logger:   logger,
	}, nil
}

// ReadPersons returns the stored persons in file order.
func (s *Storage) ReadPersons(_ context.Context) ([]*entities.Person, error) {
	var recs []records.PersonRecord
	if err := s.read(PersonsFile, &recs); err != nil {
		return nil, err
	}
	persons, err := records.ToPersons(recs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", PersonsFile, err)
	}
	return persons, nil
}

// StorePersons replaces the persons file.
func (s *Storage) StorePersons(_ context.Context, persons []*entities.Person) error {
	if len(persons) == 0 {
		return ports.ErrEmptyPersons
	}
	return s.write(PersonsFile, records.FromPersons(persons))
}

// ReadRelationships returns the stored relationships between persons.
func (s *Storage) ReadRelationships(_ context.Context, persons []*entities.Person) ([]*entities.Relationship, error) {
	if len(persons) == 0 {
		return nil, ports.ErrNoPersons
	}
	var recs []records.RelationshipRecord
	if err := s.read(RelationshipsFile, &recs); err != nil {
		return nil, err
	}
	return s.resolver.Resolve(recs, persons), nil
}

// StoreRelationships replaces the relationships file.
func (s *Storage) StoreRelationships(_ context.Context, relationships []*entities.Relationship) error {
	if len(relationships) == 0 {
		return ports.ErrEmptyRelationships
	}
	return s.write(RelationshipsFile, records.FromRelationships(relationships))
}

// UpdatePerson rewrites the persons file with the record of person replaced.
func (s *Storage) UpdatePerson(_ context.Context, person *entities.Person) error {
	var recs []records.PersonRecord
	if err := s.read(PersonsFile, &recs); err != nil {
		return err
	}
	for i := range recs {
		if recs[i].ID == person.ID {
			recs[i] = records.FromPerson(person)
			return s.write(PersonsFile, recs)
		}
	}
	return fmt.Errorf("%w: %d", ports.ErrPersonNotFound, person.ID)
}

// ClearPersons empties the persons file.
func (s *Storage) ClearPersons(_ context.Context) error {
	return s.write(PersonsFile, []records.PersonRecord{})
}

// ClearRelationships empties the relationships file.
func (s *Storage) ClearRelationships(_ context.Context) error {
	return s.write(RelationshipsFile, []records.RelationshipRecord{})
}

// Close is a no-op: files are closed after each access.
func (s *Storage) Close() error {
	return nil
}

func (s *Storage) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

// write replaces name through a temporary file so a failed write never truncates the book.
func (s *Storage) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	s.logger.Debug("stored file", zap.String("file", name), zap.Int("bytes", len(data)))
	return nil
}
