package services

import (
	"context"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
)

// MatchesPattern reports whether pattern is found, ignoring case, in the last
// name or the first name of person.
func MatchesPattern(person *entities.Person, pattern string) bool {
	if person.Lastname != "" && containsFold(person.Lastname, pattern) {
		return true
	}
	return containsFold(person.Firstname, pattern)
}

// SearchPersons returns the persons matching pattern, in input order.
func SearchPersons(persons []*entities.Person, pattern string) []*entities.Person {
	var res []*entities.Person
	for _, p := range persons {
		if MatchesPattern(p, pattern) {
			res = append(res, p)
		}
	}
	return res
}

// SelectPerson resolves pattern to a single person. Several matches are
// disambiguated by ios.
func SelectPerson(ctx context.Context, ios ports.IOs, persons []*entities.Person, pattern string) (*entities.Person, ports.Outcome) {
	candidates := SearchPersons(persons, pattern)
	switch len(candidates) {
	case 0:
		return nil, ports.NotFound
	case 1:
		return candidates[0], ports.Done
	}

	person, outcome := ios.SelectPerson(ctx, candidates)
	if outcome != ports.Done {
		return nil, outcome
	}
	if person == nil {
		return nil, ports.NotFound
	}
	return person, ports.Done
}
