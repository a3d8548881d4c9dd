package services

import (
	"github.com/javatronic/lms/internal/domain/entities"
)

// RelationshipMatch tells whether relationship answers a relationship search
// and returns the person found through it.
//
// A reverse alias names the right person of the definition: "fille de John"
// searches the right person of relationships whose left person matches John.
// The sex required by the alias applies to the found person. Relationships of
// a non-directional definition are also searched from their other side, so
// "frère de Paul" and "frère de Jean" both answer a link between Jean and Paul.
func RelationshipMatch(request *SearchRequest, relationship *entities.Relationship) (*entities.Person, bool) {
	found := foundThrough(request, relationship)
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

// foundThrough returns the persons relationship gives for request, the
// canonical side first.
func foundThrough(request *SearchRequest, relationship *entities.Relationship) []*entities.Person {
	if request.Definition == nil || relationship.Definition != request.Definition {
		return nil
	}

	searched, found := relationship.Right, relationship.Left
	if request.Alias.Reverse {
		searched, found = relationship.Left, relationship.Right
	}

	var persons []*entities.Person
	if matchesSide(request, searched, found) {
		persons = append(persons, found)
	}
	if !relationship.Definition.Directional && matchesSide(request, found, searched) {
		persons = append(persons, searched)
	}
	return persons
}

func matchesSide(request *SearchRequest, searched, found *entities.Person) bool {
	if !MatchesPattern(searched, request.Pattern) {
		return false
	}
	if sex := request.Alias.LeftPersonSex; sex != nil && found.Sex() != sex {
		return false
	}
	return true
}

// RelationshipSearchFilters returns the filters selecting, among relationships,
// the persons found by request and the relationships they were found through.
func RelationshipSearchFilters(request *SearchRequest, relationships []*entities.Relationship) (PersonFilter, RelationshipFilter) {
	matches := func(person *entities.Person, relationship *entities.Relationship) bool {
		for _, found := range foundThrough(request, relationship) {
			if found.Equal(person) {
				return true
			}
		}
		return false
	}
	personFilter := func(person *entities.Person) bool {
		for _, r := range relationships {
			if matches(person, r) {
				return true
			}
		}
		return false
	}
	return personFilter, matches
}
