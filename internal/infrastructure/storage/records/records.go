// Package records defines the serialized form of persons and relationships
// shared by the storage backends.
package records

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/javatronic/lms/internal/domain/entities"
)

// PersonRecord is the stored form of a person.
type PersonRecord struct {
	ID        int      `json:"id"`
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname,omitempty"`
	Created   string   `json:"created"`
	Sex       string   `json:"sex,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// RelationshipRecord is the stored form of a relationship. Endpoints are person ids.
type RelationshipRecord struct {
	Left       int    `json:"left"`
	Right      int    `json:"right"`
	Definition string `json:"definition"`
}

// FromPerson converts a person into its record.
func FromPerson(p *entities.Person) PersonRecord {
	rec := PersonRecord{
		ID:        p.ID,
		Firstname: p.Firstname,
		Lastname:  p.Lastname,
		Created:   entities.FormatCreated(p.Created),
	}
	if p.HasSex() {
		rec.Sex = p.Sex().Code()
	}
	if len(p.Tags) > 0 {
		rec.Tags = append([]string(nil), p.Tags...)
	}
	return rec
}

// ToPerson converts a record back into a person.
func (r PersonRecord) ToPerson() (*entities.Person, error) {
	created, err := entities.ParseCreated(r.Created)
	if err != nil {
		return nil, fmt.Errorf("person %d: %w", r.ID, err)
	}
	sex, err := entities.SexFromCode(r.Sex)
	if err != nil {
		return nil, fmt.Errorf("person %d: %w", r.ID, err)
	}
	opts := []entities.PersonOption{entities.WithCreated(created), entities.WithSex(sex)}
	if len(r.Tags) > 0 {
		opts = append(opts, entities.WithTags(r.Tags...))
	}
	return entities.NewPerson(r.ID, r.Firstname, r.Lastname, opts...)
}

// FromPersons converts persons into records, keeping their order.
func FromPersons(persons []*entities.Person) []PersonRecord {
	res := make([]PersonRecord, 0, len(persons))
	for _, p := range persons {
		res = append(res, FromPerson(p))
	}
	return res
}

// ToPersons converts records into persons, keeping their order.
func ToPersons(recs []PersonRecord) ([]*entities.Person, error) {
	res := make([]*entities.Person, 0, len(recs))
	for _, r := range recs {
		p, err := r.ToPerson()
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}

// FromRelationship converts a relationship into its record.
func FromRelationship(r *entities.Relationship) RelationshipRecord {
	return RelationshipRecord{
		Left:       r.Left.ID,
		Right:      r.Right.ID,
		Definition: r.Definition.Name,
	}
}

// FromRelationships converts relationships into records, keeping their order.
func FromRelationships(relationships []*entities.Relationship) []RelationshipRecord {
	res := make([]RelationshipRecord, 0, len(relationships))
	for _, r := range relationships {
		res = append(res, FromRelationship(r))
	}
	return res
}

// Resolver turns relationship records into relationships between known persons.
type Resolver struct {
	registry entities.Registry
	logger   *zap.Logger
}

// NewResolver creates a Resolver looking definitions up in registry.
func NewResolver(registry entities.Registry, logger *zap.Logger) *Resolver {
	return &Resolver{registry: registry, logger: logger}
}

// Resolve converts records into relationships whose endpoints are taken from
// persons. Records referencing an unknown person or definition are dropped.
func (r *Resolver) Resolve(recs []RelationshipRecord, persons []*entities.Person) []*entities.Relationship {
	byID := make(map[int]*entities.Person, len(persons))
	for _, p := range persons {
		byID[p.ID] = p
	}

	res := make([]*entities.Relationship, 0, len(recs))
	for _, rec := range recs {
		left, right := byID[rec.Left], byID[rec.Right]
		definition := r.registry.Find(rec.Definition)
		if left == nil || right == nil || definition == nil {
			r.logger.Debug("dropping unresolved relationship",
				zap.Int("left", rec.Left),
				zap.Int("right", rec.Right),
				zap.String("definition", rec.Definition),
			)
			continue
		}
		res = append(res, entities.NewRelationship(left, right, definition))
	}
	return res
}
