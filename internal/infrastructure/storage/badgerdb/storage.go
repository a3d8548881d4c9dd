// Package badgerdb stores a relationship book in a Badger key-value directory.
package badgerdb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
	"github.com/javatronic/lms/internal/infrastructure/storage/records"
)

// DatabaseDir is the name of the Badger directory inside a book directory.
const DatabaseDir = "badger"

const (
	personPrefix       = "person/"
	relationshipPrefix = "relationship/"
)

// Storage implements ports.Storage with one JSON value per record.
// Keys carry the zero-padded position of the record so iteration follows storage order.
type Storage struct {
	db       *badger.DB
	resolver *records.Resolver
}

var _ ports.Storage = (*Storage)(nil)

// New opens a Badger database in dir.
func New(dir string, registry entities.Registry, logger *zap.Logger) (*Storage, error) {
	return open(badger.DefaultOptions(dir), registry, logger)
}

// NewInMemory opens a Badger database that lives in memory only.
func NewInMemory(registry entities.Registry, logger *zap.Logger) (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), registry, logger)
}

func open(opts badger.Options, registry entities.Registry, logger *zap.Logger) (*Storage, error) {
	opts.Logger = nil // Badger's default logger writes to stderr

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger db: %w", err)
	}

	return &Storage{
		db:       db,
		resolver: records.NewResolver(registry, logger),
	}, nil
}

// ReadPersons returns the stored persons in key order.
func (s *Storage) ReadPersons(_ context.Context) ([]*entities.Person, error) {
	var recs []records.PersonRecord
	err := s.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, personPrefix, func(_ []byte, value []byte) error {
			var rec records.PersonRecord
			if err := json.Unmarshal(value, &rec); err != nil {
				return fmt.Errorf("decoding person: %w", err)
			}
			recs = append(recs, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records.ToPersons(recs)
}

// StorePersons replaces every person key.
func (s *Storage) StorePersons(_ context.Context, persons []*entities.Person) error {
	if len(persons) == 0 {
		return ports.ErrEmptyPersons
	}
	values := make([]any, 0, len(persons))
	for _, rec := range records.FromPersons(persons) {
		values = append(values, rec)
	}
	return s.replace(personPrefix, values)
}

// ReadRelationships returns the stored relationships between persons, in key order.
func (s *Storage) ReadRelationships(_ context.Context, persons []*entities.Person) ([]*entities.Relationship, error) {
	if len(persons) == 0 {
		return nil, ports.ErrNoPersons
	}

	var recs []records.RelationshipRecord
	err := s.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, relationshipPrefix, func(_ []byte, value []byte) error {
			var rec records.RelationshipRecord
			if err := json.Unmarshal(value, &rec); err != nil {
				return fmt.Errorf("decoding relationship: %w", err)
			}
			recs = append(recs, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return s.resolver.Resolve(recs, persons), nil
}

// StoreRelationships replaces every relationship key.
func (s *Storage) StoreRelationships(_ context.Context, relationships []*entities.Relationship) error {
	if len(relationships) == 0 {
		return ports.ErrEmptyRelationships
	}
	values := make([]any, 0, len(relationships))
	for _, rec := range records.FromRelationships(relationships) {
		values = append(values, rec)
	}
	return s.replace(relationshipPrefix, values)
}

// UpdatePerson overwrites the value of the key holding the person with the same id.
func (s *Storage) UpdatePerson(_ context.Context, person *entities.Person) error {
	data, err := json.Marshal(records.FromPerson(person))
	if err != nil {
		return fmt.Errorf("encoding person: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		var key []byte
		err := scanPrefix(txn, personPrefix, func(k []byte, value []byte) error {
			if key != nil {
				return nil
			}
			var rec records.PersonRecord
			if err := json.Unmarshal(value, &rec); err != nil {
				return fmt.Errorf("decoding person: %w", err)
			}
			if rec.ID == person.ID {
				key = k
			}
			return nil
		})
		if err != nil {
			return err
		}
		if key == nil {
			return fmt.Errorf("%w: %d", ports.ErrPersonNotFound, person.ID)
		}
		return txn.Set(key, data)
	})
}

// ClearPersons deletes every person key.
func (s *Storage) ClearPersons(_ context.Context) error {
	return s.replace(personPrefix, nil)
}

// ClearRelationships deletes every relationship key.
func (s *Storage) ClearRelationships(_ context.Context) error {
	return s.replace(relationshipPrefix, nil)
}

// Close closes the database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// replace deletes every key under prefix then writes values at consecutive positions.
func (s *Storage) replace(prefix string, values []any) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var keys [][]byte
		err := scanPrefix(txn, prefix, func(k []byte, _ []byte) error {
			keys = append(keys, k)
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return fmt.Errorf("deleting %s: %w", k, err)
			}
		}

		for i, v := range values {
			data, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("encoding record: %w", err)
			}
			if err := txn.Set(recordKey(prefix, i), data); err != nil {
				return fmt.Errorf("writing record %d: %w", i, err)
			}
		}
		return nil
	})
}

func recordKey(prefix string, position int) []byte {
	return []byte(fmt.Sprintf("%s%08d", prefix, position))
}

// scanPrefix calls fn with a copy of every key and value under prefix, in key order.
func scanPrefix(txn *badger.Txn, prefix string, fn func(key, value []byte) error) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		item := it.Item()
		value, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("reading %s: %w", item.Key(), err)
		}
		if err := fn(item.KeyCopy(nil), value); err != nil {
			return err
		}
	}
	return nil
}
