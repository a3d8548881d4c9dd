package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
	"github.com/javatronic/lms/internal/domain/services"
)

// SearchPersons lists the persons matching text, which is either a name
// pattern or a relationship phrase such as "fille de John".
func (h *PersonHandler) SearchPersons(ctx context.Context, text string) (ports.Outcome, error) {
	request, ok := h.parser.ParseSearchRequest(text)
	if !ok {
		return ports.NotFound, nil
	}

	persons, relationships, err := h.readAll(ctx)
	if err != nil {
		return ports.Done, err
	}

	var resolved []ports.ResolvedPerson
	if request.IsRelationshipSearch() {
		personFilter, relationshipFilter := services.RelationshipSearchFilters(request, relationships)
		resolved = services.ResolvePersons(persons, relationships, personFilter, relationshipFilter)
	} else {
		resolved = services.ResolvePersons(persons, relationships, func(p *entities.Person) bool {
			return services.MatchesPattern(p, request.Pattern)
		}, nil)
	}

	h.logger.Debug("search done", zap.String("pattern", request.Pattern), zap.Int("persons", len(resolved)))
	h.ios.ListPersons(resolved)
	return ports.Done, nil
}
