// Package presentation holds the rendering shared by the console and the terminal window.
package presentation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
)

// tagsIndent prefixes the tags line under a person.
const tagsIndent = "     "

// PersonLine renders "(id) [SEX] name (Y-M-D h-m-s)".
// The sex field is left blank when unset, leaving two spaces after the id.
func PersonLine(p *entities.Person) string {
	sex := ""
	if p.HasSex() {
		sex = " " + p.Sex().Name()
	}
	c := p.Created
	return fmt.Sprintf("(%d) %s %s (%d-%d-%d %d-%d-%d)",
		p.ID, sex, p, c.Year(), int(c.Month()), c.Day(), c.Hour(), c.Minute(), c.Second())
}

// TagsLine renders the tags of p on an indented line, or "" when p has no tag.
func TagsLine(p *entities.Person) string {
	if len(p.Tags) == 0 {
		return ""
	}
	return tagsIndent + strings.Join(p.Tags, ", ")
}

// PersonLines renders p and, when it has some, its tags.
func PersonLines(p *entities.Person) []string {
	lines := []string{PersonLine(p)}
	if tags := TagsLine(p); tags != "" {
		lines = append(lines, tags)
	}
	return lines
}

// RelationshipLine renders relationship r from the point of view of p.
func RelationshipLine(r *entities.Relationship, p *entities.Person) string {
	return "    -> " + RelationshipSummary(r, p)
}

// RelationshipSummary renders "<repr> (id) other" for relationship r seen from p.
func RelationshipSummary(r *entities.Relationship, p *entities.Person) string {
	repr, err := r.ReprFor(p)
	if err != nil {
		repr = r.Definition.Name
	}
	other := r.Other(p)
	return fmt.Sprintf("%s (%d) %s", repr, other.ID, other)
}

// SortByID returns a copy of persons ordered by id.
func SortByID(persons []ports.ResolvedPerson) []ports.ResolvedPerson {
	sorted := slices.Clone(persons)
	slices.SortStableFunc(sorted, func(a, b ports.ResolvedPerson) int {
		return a.Person.ID - b.Person.ID
	})
	return sorted
}

// SortPersonsByID returns a copy of persons ordered by id.
func SortPersonsByID(persons []*entities.Person) []*entities.Person {
	sorted := slices.Clone(persons)
	slices.SortStableFunc(sorted, func(a, b *entities.Person) int {
		return a.ID - b.ID
	})
	return sorted
}

// ParseTags splits comma separated tags, trimming each and dropping empty ones.
func ParseTags(text string) []string {
	var tags []string
	for _, t := range strings.Split(text, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
