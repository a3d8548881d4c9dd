package ports

import (
	"context"

	"github.com/javatronic/lms/internal/domain/entities"
)

// Outcome is how a command or an interactive step ended when it did not fail.
type Outcome int

const (
	// Done means the step went through.
	Done Outcome = iota
	// NotFound means a pattern or phrase did not resolve to anything.
	NotFound
	// Rejected means the request was understood but refused.
	Rejected
	// Cancelled means the user interrupted the step.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Done:
		return "done"
	case NotFound:
		return "not found"
	case Rejected:
		return "rejected"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ResolvedPerson is a person along with the relationships selected for it.
type ResolvedPerson struct {
	Person        *entities.Person
	Relationships []*entities.Relationship
}

// IOs displays persons and collects interactive input.
type IOs interface {
	// ShowPerson displays a single person.
	ShowPerson(person *entities.Person)

	// ListPersons displays persons with their relationships.
	ListPersons(persons []ResolvedPerson)

	// SelectPerson asks the user to pick one of candidates.
	// A nil person with Done means the user chose none.
	SelectPerson(ctx context.Context, candidates []*entities.Person) (*entities.Person, Outcome)

	// UpdatePerson collects new values for person and returns the updated person.
	UpdatePerson(ctx context.Context, person *entities.Person) (*entities.Person, Outcome)
}

// EventListener is notified of the mutations done by commands.
// Confirmation events return Done to proceed, or Cancelled.
type EventListener interface {
	CreatingPerson(person *entities.Person)
	DeletingPerson(ctx context.Context, person *entities.Person) Outcome
	CreatingLink(ctx context.Context, definition *entities.RelationshipDefinition, left, right *entities.Person) Outcome
	ConfiguredFromAlias(person *entities.Person, alias *entities.RelationshipAlias)
	DeletingRelationship(ctx context.Context, relationship *entities.Relationship, person *entities.Person) Outcome
}
