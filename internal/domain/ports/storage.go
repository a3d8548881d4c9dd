package ports

import (
	"context"
	"errors"

	"github.com/javatronic/lms/internal/domain/entities"
)

// Sentinel errors shared by every Storage implementation.
var (
	ErrEmptyPersons       = errors.New("can't store an empty list of persons")
	ErrEmptyRelationships = errors.New("can't store an empty list of relationships")
	ErrNoPersons          = errors.New("can't read relationships without persons")
	ErrPersonNotFound     = errors.New("person not found")
)

// Storage defines the persistence of a relationship book.
// Every store replaces the whole collection and keeps the given order.
type Storage interface {
	// ReadPersons returns the stored persons in storage order.
	ReadPersons(ctx context.Context) ([]*entities.Person, error)

	// StorePersons replaces the stored persons. Fails with ErrEmptyPersons on an empty slice.
	StorePersons(ctx context.Context, persons []*entities.Person) error

	// ReadRelationships returns the stored relationships, with endpoints taken
	// from persons. Records whose endpoints or definition can't be resolved are dropped.
	ReadRelationships(ctx context.Context, persons []*entities.Person) ([]*entities.Relationship, error)

	// StoreRelationships replaces the stored relationships.
	StoreRelationships(ctx context.Context, relationships []*entities.Relationship) error

	// UpdatePerson replaces the stored person with the same id.
	UpdatePerson(ctx context.Context, person *entities.Person) error

	// ClearPersons removes every stored person.
	ClearPersons(ctx context.Context) error

	// ClearRelationships removes every stored relationship.
	ClearRelationships(ctx context.Context) error

	// Close releases the underlying resources.
	Close() error
}
