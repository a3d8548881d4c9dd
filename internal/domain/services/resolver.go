package services

import (
	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
)

// PersonFilter selects the persons kept by ResolvePersons.
type PersonFilter func(person *entities.Person) bool

// RelationshipFilter selects the relationships attached to a person by ResolvePersons.
type RelationshipFilter func(person *entities.Person, relationship *entities.Relationship) bool

// ResolvePersons attaches to each person accepted by personFilter the
// relationships that apply to it and are accepted by relationshipFilter.
// A nil filter accepts everything. Persons keep their input order and so do
// the relationships of each person.
func ResolvePersons(
	persons []*entities.Person,
	relationships []*entities.Relationship,
	personFilter PersonFilter,
	relationshipFilter RelationshipFilter,
) []ports.ResolvedPerson {
	res := make([]ports.ResolvedPerson, 0, len(persons))
	for _, person := range persons {
		if personFilter != nil && !personFilter(person) {
			continue
		}
		var rels []*entities.Relationship
		for _, r := range relationships {
			if !r.AppliesTo(person) {
				continue
			}
			if relationshipFilter != nil && !relationshipFilter(person, r) {
				continue
			}
			rels = append(rels, r)
		}
		res = append(res, ports.ResolvedPerson{Person: person, Relationships: rels})
	}
	return res
}
