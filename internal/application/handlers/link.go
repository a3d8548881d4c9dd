package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
)

// LinkPersons parses a request such as "John père de Emma" and stores the
// relationship it describes.
func (h *PersonHandler) LinkPersons(ctx context.Context, text string) (ports.Outcome, error) {
	request, ok := h.parser.ParseLinkRequest(text)
	if !ok {
		return ports.NotFound, nil
	}

	persons, relationships, err := h.readAll(ctx)
	if err != nil {
		return ports.Done, err
	}

	left, outcome := h.selectPerson(ctx, persons, request.LeftPersonPattern)
	if outcome != ports.Done {
		return outcome, nil
	}
	right, outcome := h.selectPerson(ctx, persons, request.RightPersonPattern)
	if outcome != ports.Done {
		return outcome, nil
	}
	if left.Equal(right) {
		h.logger.Info("can't link a person to itself", zap.Stringer("person", left))
		return ports.Rejected, nil
	}

	for _, side := range []struct {
		side   entities.Side
		person *entities.Person
	}{{entities.Left, left}, {entities.Right, right}} {
		if !request.Alias.Configure(side.side, side.person) {
			continue
		}
		h.events.ConfiguredFromAlias(side.person, request.Alias)
		if err := h.storage.UpdatePerson(ctx, side.person); err != nil {
			return ports.Done, fmt.Errorf("updating person %d: %w", side.person.ID, err)
		}
	}

	if request.Alias.Reverse {
		left, right = right, left
	}
	relationship := entities.NewRelationship(left, right, request.Definition)

	for _, r := range relationships {
		if r.SameLink(relationship) {
			h.logger.Info("relationship already exists",
				zap.Stringer("left", left),
				zap.String("definition", request.Definition.Name),
				zap.Stringer("right", right),
			)
			return ports.Rejected, nil
		}
	}

	if outcome := h.events.CreatingLink(ctx, request.Definition, left, right); outcome != ports.Done {
		return outcome, nil
	}

	if err := h.storage.StoreRelationships(ctx, append(relationships, relationship)); err != nil {
		return ports.Done, fmt.Errorf("storing relationships: %w", err)
	}
	return ports.Done, nil
}
