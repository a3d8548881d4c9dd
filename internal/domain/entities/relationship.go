package entities

import "fmt"

// Side designates one endpoint of a relationship.
type Side int

const (
	// Left is the canonical left endpoint of a definition.
	Left Side = iota
	// Right is the canonical right endpoint of a definition.
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// RelationshipAlias is a natural-language phrase for a RelationshipDefinition.
// LeftPersonSex and RightPersonSex refer to the persons on the left and right
// of the phrase as written, which are swapped compared to the definition when
// Reverse is true.
type RelationshipAlias struct {
	Name           string
	LeftPersonSex  *Sex
	RightPersonSex *Sex
	Reverse        bool
}

// SexFor returns the sex the alias requires for the person on the given side of the phrase.
func (a *RelationshipAlias) SexFor(side Side) *Sex {
	if side == Left {
		return a.LeftPersonSex
	}
	return a.RightPersonSex
}

// Configure sets the sex of person from the alias when it is unset and the
// alias specifies one for that side. It reports whether person was changed.
func (a *RelationshipAlias) Configure(side Side, person *Person) bool {
	sex := a.SexFor(side)
	if sex == nil || person.HasSex() {
		return false
	}
	person.sex = sex
	return true
}

func (a *RelationshipAlias) String() string {
	return a.Name
}

// RelationshipDefinition is a kind of relationship, such as "parent/enfant de".
type RelationshipDefinition struct {
	Name            string
	PersonLeftRepr  string
	PersonRightRepr string
	Directional     bool
	Aliases         []*RelationshipAlias
}

// LeftRepr returns how the left person of a relationship is described.
func (d *RelationshipDefinition) LeftRepr(person *Person) string {
	if alias := d.FindAlias(false, person.Sex()); alias != nil {
		return alias.Name
	}
	return firstNonEmpty(d.PersonLeftRepr, d.Name)
}

// RightRepr returns how the right person of a relationship is described.
// Both endpoints of a non-directional definition are described the same way.
func (d *RelationshipDefinition) RightRepr(person *Person) string {
	if !d.Directional {
		if alias := d.FindAlias(false, person.Sex()); alias != nil {
			return alias.Name
		}
		return firstNonEmpty(d.PersonRightRepr, d.PersonLeftRepr, d.Name)
	}
	if alias := d.FindAlias(true, person.Sex()); alias != nil {
		return alias.Name
	}
	return firstNonEmpty(d.PersonRightRepr, d.Name)
}

// FindAlias returns the first alias with the given direction whose left
// person sex is sex (nil matches aliases without sex), or nil.
func (d *RelationshipDefinition) FindAlias(reverse bool, sex *Sex) *RelationshipAlias {
	for _, alias := range d.Aliases {
		if alias.Reverse == reverse && alias.LeftPersonSex == sex {
			return alias
		}
	}
	return nil
}

func (d *RelationshipDefinition) String() string {
	return d.Name
}

// Relationship links two persons with a definition.
// Endpoints are shared with the person list they were resolved from.
type Relationship struct {
	Left       *Person
	Right      *Person
	Definition *RelationshipDefinition
}

// NewRelationship builds a relationship from its canonical left and right persons.
func NewRelationship(left, right *Person, definition *RelationshipDefinition) *Relationship {
	return &Relationship{Left: left, Right: right, Definition: definition}
}

// AppliesTo reports whether person is one of the endpoints.
func (r *Relationship) AppliesTo(person *Person) bool {
	return r.Left.Equal(person) || r.Right.Equal(person)
}

// ReprFor describes person's role in the relationship.
func (r *Relationship) ReprFor(person *Person) (string, error) {
	switch {
	case r.Left.Equal(person):
		return r.Definition.LeftRepr(person), nil
	case r.Right.Equal(person):
		return r.Definition.RightRepr(person), nil
	default:
		return "", fmt.Errorf("%w: %s is neither the left nor right person of this %s relationship",
			ErrInvalidArgument, person, r.Definition.Name)
	}
}

// Other returns the endpoint which is not person.
func (r *Relationship) Other(person *Person) *Person {
	if r.Left.Equal(person) {
		return r.Right
	}
	return r.Left
}

// SameLink reports whether other links the same persons with the same definition.
// Endpoint order only matters for directional definitions.
func (r *Relationship) SameLink(other *Relationship) bool {
	if r.Definition != other.Definition {
		return false
	}
	if r.Left.Equal(other.Left) && r.Right.Equal(other.Right) {
		return true
	}
	return !r.Definition.Directional && r.Left.Equal(other.Right) && r.Right.Equal(other.Left)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
