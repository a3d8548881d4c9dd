package entities

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidArgument is wrapped by every validation failure of the entity model.
var ErrInvalidArgument = errors.New("invalid argument")

// errNonCanonicalSex is the fixed message used when a Sex is not one of the two constants.
var errNonCanonicalSex = fmt.Errorf("%w: sex must be either constant MALE or FEMALE", ErrInvalidArgument)

// CreatedLayout is the layout of creation times in records and imports.
// Parsing also accepts fractional seconds.
const CreatedLayout = "2006-01-02 15:04:05"

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Sex is the biological sex of a Person.
// Only the two package-level values Male and Female are accepted: checks are
// done by pointer identity, never by comparing fields.
type Sex struct {
	name string
	code string
}

var (
	// Male is the canonical MALE value.
	Male = &Sex{name: "MALE", code: "M"}
	// Female is the canonical FEMALE value.
	Female = &Sex{name: "FEMALE", code: "F"}
)

// Name returns MALE or FEMALE.
func (s *Sex) Name() string {
	return s.name
}

// Code returns the storage code, M or F.
func (s *Sex) Code() string {
	return s.code
}

func (s *Sex) String() string {
	return s.name
}

// IsCanonicalSex reports whether s is nil, Male or Female.
func IsCanonicalSex(s *Sex) bool {
	return s == nil || s == Male || s == Female
}

// SexFromCode maps a storage code back to its canonical value.
// The empty code maps to nil (unset).
func SexFromCode(code string) (*Sex, error) {
	switch code {
	case "":
		return nil, nil
	case Male.code:
		return Male, nil
	case Female.code:
		return Female, nil
	default:
		return nil, fmt.Errorf("%w: unknown sex code %q", ErrInvalidArgument, code)
	}
}

// Person is an entry of the relationship book.
type Person struct {
	ID        int
	Firstname string
	Lastname  string // empty when the person has no last name
	Created   time.Time
	Tags      []string

	sex *Sex
}

// PersonOption customizes a Person built by NewPerson.
type PersonOption func(*Person) error

// WithCreated sets the creation time instead of the current time.
func WithCreated(created time.Time) PersonOption {
	return func(p *Person) error {
		p.Created = created
		return nil
	}
}

// WithSex sets the sex of the person.
func WithSex(sex *Sex) PersonOption {
	return func(p *Person) error {
		return p.SetSex(sex)
	}
}

// WithTags sets the tags of the person.
func WithTags(tags ...string) PersonOption {
	return func(p *Person) error {
		p.Tags = tags
		return nil
	}
}

// NewPerson validates and builds a Person. A negative id stands for a missing id.
func NewPerson(id int, firstname, lastname string, opts ...PersonOption) (*Person, error) {
	if id < 0 {
		return nil, fmt.Errorf("%w: person id can't be absent (got %d)", ErrInvalidArgument, id)
	}
	if firstname == "" {
		return nil, fmt.Errorf("%w: firstname can't be empty", ErrInvalidArgument)
	}

	p := &Person{
		ID:        id,
		Firstname: firstname,
		Lastname:  lastname,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.Created.IsZero() {
		p.Created = timeNow()
	}
	return p, nil
}

// FormatCreated formats t with CreatedLayout in local time, adding
// microseconds when there are some.
func FormatCreated(t time.Time) string {
	t = t.Local()
	if t.Nanosecond()/int(time.Microsecond) != 0 {
		return t.Format(CreatedLayout + ".000000")
	}
	return t.Format(CreatedLayout)
}

// ParseCreated parses a creation time written by FormatCreated.
func ParseCreated(value string) (time.Time, error) {
	t, err := time.ParseInLocation(CreatedLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid creation time %q", ErrInvalidArgument, value)
	}
	return t, nil
}

// Sex returns the sex of the person, nil when unset.
func (p *Person) Sex() *Sex {
	return p.sex
}

// SetSex sets or clears (nil) the sex of the person.
func (p *Person) SetSex(sex *Sex) error {
	if !IsCanonicalSex(sex) {
		return errNonCanonicalSex
	}
	p.sex = sex
	return nil
}

// HasSex reports whether the sex of the person is set.
func (p *Person) HasSex() bool {
	return p.sex != nil
}

// Equal compares id, first name and last name. Creation time and tags are ignored.
func (p *Person) Equal(other *Person) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID && p.Firstname == other.Firstname && p.Lastname == other.Lastname
}

func (p *Person) String() string {
	if p.Lastname != "" {
		return p.Firstname + " " + p.Lastname
	}
	return p.Firstname
}

// PersonIDGenerator hands out ids that are not used by a snapshot of persons.
type PersonIDGenerator struct {
	nextID int
}

// NewPersonIDGenerator starts after the highest id of persons, or at 0.
func NewPersonIDGenerator(persons []*Person) *PersonIDGenerator {
	g := &PersonIDGenerator{}
	for i, p := range persons {
		if i == 0 || p.ID >= g.nextID {
			g.nextID = p.ID + 1
		}
	}
	return g
}

// NextPersonID returns a new id, one more than the previous call.
func (g *PersonIDGenerator) NextPersonID() int {
	id := g.nextID
	g.nextID++
	return id
}
