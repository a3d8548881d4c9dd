// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
	"github.com/javatronic/lms/internal/domain/services"
)

// PersonHandler runs the commands of a relationship book.
// Writes only happen once every resolution step went through.
type PersonHandler struct {
	storage ports.Storage
	ios     ports.IOs
	events  ports.EventListener
	parser  *services.Parser
	logger  *zap.Logger
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(
	storage ports.Storage,
	ios ports.IOs,
	events ports.EventListener,
	parser *services.Parser,
	logger *zap.Logger,
) *PersonHandler {
	return &PersonHandler{
		storage: storage,
		ios:     ios,
		events:  events,
		parser:  parser,
		logger:  logger,
	}
}

// ListPersons displays every person with its relationships.
func (h *PersonHandler) ListPersons(ctx context.Context) (ports.Outcome, error) {
	persons, relationships, err := h.readAll(ctx)
	if err != nil {
		return ports.Done, err
	}

	h.ios.ListPersons(services.ResolvePersons(persons, relationships, nil, nil))
	return ports.Done, nil
}

// StorePerson registers a new person.
func (h *PersonHandler) StorePerson(ctx context.Context, firstname, lastname string) (ports.Outcome, error) {
	persons, err := h.storage.ReadPersons(ctx)
	if err != nil {
		return ports.Done, fmt.Errorf("reading persons: %w", err)
	}

	id := entities.NewPersonIDGenerator(persons).NextPersonID()
	person, err := entities.NewPerson(id, firstname, lastname)
	if err != nil {
		return ports.Done, err
	}

	h.events.CreatingPerson(person)
	if err := h.storage.StorePersons(ctx, append([]*entities.Person{person}, persons...)); err != nil {
		return ports.Done, fmt.Errorf("storing persons: %w", err)
	}
	return ports.Done, nil
}

// UpdatePerson selects a person by pattern and stores the values collected for it.
func (h *PersonHandler) UpdatePerson(ctx context.Context, pattern string) (ports.Outcome, error) {
	persons, err := h.storage.ReadPersons(ctx)
	if err != nil {
		return ports.Done, fmt.Errorf("reading persons: %w", err)
	}

	person, outcome := h.selectPerson(ctx, persons, pattern)
	if outcome != ports.Done {
		return outcome, nil
	}

	updated, outcome := h.ios.UpdatePerson(ctx, person)
	if outcome != ports.Done {
		return outcome, nil
	}
	if updated == nil {
		h.logger.Info("nothing to update", zap.Stringer("person", person))
		return ports.Rejected, nil
	}

	if err := h.storage.UpdatePerson(ctx, updated); err != nil {
		return ports.Done, fmt.Errorf("updating person %d: %w", updated.ID, err)
	}
	return ports.Done, nil
}

// DeletePerson selects a person by pattern and removes it along with its relationships.
func (h *PersonHandler) DeletePerson(ctx context.Context, pattern string) (ports.Outcome, error) {
	persons, relationships, err := h.readAll(ctx)
	if err != nil {
		return ports.Done, err
	}

	person, outcome := h.selectPerson(ctx, persons, pattern)
	if outcome != ports.Done {
		return outcome, nil
	}
	if outcome := h.events.DeletingPerson(ctx, person); outcome != ports.Done {
		return outcome, nil
	}

	remainingPersons := make([]*entities.Person, 0, len(persons))
	for _, p := range persons {
		if !p.Equal(person) {
			remainingPersons = append(remainingPersons, p)
		}
	}

	remainingRelationships := make([]*entities.Relationship, 0, len(relationships))
	for _, r := range relationships {
		if !r.AppliesTo(person) {
			remainingRelationships = append(remainingRelationships, r)
			continue
		}
		if outcome := h.events.DeletingRelationship(ctx, r, person); outcome != ports.Done {
			return outcome, nil
		}
	}

	if err := h.storePersons(ctx, remainingPersons); err != nil {
		return ports.Done, err
	}
	if err := h.storeRelationships(ctx, remainingRelationships); err != nil {
		return ports.Done, err
	}

	h.logger.Debug("person deleted",
		zap.Stringer("person", person),
		zap.Int("relationships", len(relationships)-len(remainingRelationships)),
	)
	return ports.Done, nil
}

// readAll reads the persons and the relationships between them.
func (h *PersonHandler) readAll(ctx context.Context) ([]*entities.Person, []*entities.Relationship, error) {
	persons, err := h.storage.ReadPersons(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("reading persons: %w", err)
	}
	if len(persons) == 0 {
		return persons, nil, nil
	}

	relationships, err := h.storage.ReadRelationships(ctx, persons)
	if err != nil {
		return nil, nil, fmt.Errorf("reading relationships: %w", err)
	}
	return persons, relationships, nil
}

// selectPerson resolves pattern to a single person, logging why it could not.
func (h *PersonHandler) selectPerson(ctx context.Context, persons []*entities.Person, pattern string) (*entities.Person, ports.Outcome) {
	person, outcome := services.SelectPerson(ctx, h.ios, persons, pattern)
	switch outcome {
	case ports.NotFound:
		h.logger.Info("no person found", zap.String("pattern", pattern))
	case ports.Cancelled:
		h.logger.Debug("person selection cancelled", zap.String("pattern", pattern))
	}
	return person, outcome
}

func (h *PersonHandler) storePersons(ctx context.Context, persons []*entities.Person) error {
	if len(persons) == 0 {
		if err := h.storage.ClearPersons(ctx); err != nil {
			return fmt.Errorf("clearing persons: %w", err)
		}
		return nil
	}
	if err := h.storage.StorePersons(ctx, persons); err != nil {
		return fmt.Errorf("storing persons: %w", err)
	}
	return nil
}

func (h *PersonHandler) storeRelationships(ctx context.Context, relationships []*entities.Relationship) error {
	if len(relationships) == 0 {
		if err := h.storage.ClearRelationships(ctx); err != nil {
			return fmt.Errorf("clearing relationships: %w", err)
		}
		return nil
	}
	if err := h.storage.StoreRelationships(ctx, relationships); err != nil {
		return fmt.Errorf("storing relationships: %w", err)
	}
	return nil
}
