package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPerson(t *testing.T, id int, firstname, lastname string, opts ...PersonOption) *Person {
	t.Helper()
	p, err := NewPerson(id, firstname, lastname, opts...)
	require.NoError(t, err)
	return p
}

func TestNewPerson_CreatedDefaultsToNow(t *testing.T) {
	expected := time.Date(2024, 4, 16, 2, 2, 2, 0, time.UTC)
	original := timeNow
	timeNow = func() time.Time { return expected }
	t.Cleanup(func() { timeNow = original })

	p := mustPerson(t, 1, "f", "n")

	assert.Equal(t, expected, p.Created)
}

func TestNewPerson_CreatedProvided(t *testing.T) {
	expected := time.Date(2024, 4, 16, 2, 2, 2, 0, time.UTC)
	original := timeNow
	timeNow = func() time.Time { return time.Date(2024, 4, 16, 10, 10, 10, 0, time.UTC) }
	t.Cleanup(func() { timeNow = original })

	p := mustPerson(t, 1, "f", "n", WithCreated(expected))

	assert.Equal(t, expected, p.Created)
}

func TestNewPerson_Validation(t *testing.T) {
	tests := []struct {
		name      string
		id        int
		firstname string
	}{
		{name: "missing id", id: -1, firstname: "John"},
		{name: "empty firstname", id: 1, firstname: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPerson(tt.id, tt.firstname, "Doe")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestPerson_Equal(t *testing.T) {
	p := mustPerson(t, 1, "f", "n")

	assert.True(t, p.Equal(mustPerson(t, 1, "f", "n")))
	assert.False(t, p.Equal(mustPerson(t, 2, "f", "n")))
	assert.False(t, p.Equal(mustPerson(t, 1, "d", "n")))
	assert.False(t, p.Equal(mustPerson(t, 1, "f", "m")))
	assert.False(t, p.Equal(mustPerson(t, 1, "f", "")))
	assert.False(t, p.Equal(nil))
}

func TestPerson_EqualIgnoresCreatedAndTags(t *testing.T) {
	t1 := time.Date(2023, 4, 16, 11, 52, 56, 0, time.UTC)
	t2 := time.Date(2023, 4, 16, 11, 53, 15, 0, time.UTC)

	a := mustPerson(t, 1, "f", "n", WithCreated(t1), WithTags("toto"))
	b := mustPerson(t, 1, "f", "n", WithCreated(t2))

	assert.True(t, a.Equal(b))
}

func TestPerson_String(t *testing.T) {
	assert.Equal(t, "John Doe", mustPerson(t, 1, "John", "Doe").String())
	assert.Equal(t, "John", mustPerson(t, 1, "John", "").String())
}

func TestPerson_Sex(t *testing.T) {
	t.Run("canonical values accepted", func(t *testing.T) {
		for _, sex := range []*Sex{Male, Female, nil} {
			p := mustPerson(t, 1, "foo", "acme", WithSex(sex))
			assert.Same(t, sex, p.Sex())
		}
	})

	nonCanonical := []*Sex{
		{name: "MALE", code: "M"},
		{name: "FEMALE", code: "F"},
		{name: "FOO"},
	}

	t.Run("constructor rejects non canonical values", func(t *testing.T) {
		for _, sex := range nonCanonical {
			_, err := NewPerson(1, "foo", "bar", WithSex(sex))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Contains(t, err.Error(), "sex must be either constant MALE or FEMALE")
		}
	})

	t.Run("setter rejects non canonical values", func(t *testing.T) {
		for _, initial := range []*Sex{nil, Male} {
			for _, sex := range nonCanonical {
				p := mustPerson(t, 1, "foo", "", WithSex(initial))
				err := p.SetSex(sex)
				require.Error(t, err)
				assert.Contains(t, err.Error(), "sex must be either constant MALE or FEMALE")
				assert.Same(t, initial, p.Sex())
			}
		}
	})
}

func TestSexFromCode(t *testing.T) {
	tests := []struct {
		code     string
		expected *Sex
		wantErr  bool
	}{
		{code: "M", expected: Male},
		{code: "F", expected: Female},
		{code: "", expected: nil},
		{code: "X", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			sex, err := SexFromCode(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.expected, sex)
		})
	}
}

func TestPersonIDGenerator(t *testing.T) {
	t.Run("no person", func(t *testing.T) {
		g := NewPersonIDGenerator(nil)
		assert.Equal(t, 0, g.NextPersonID())
	})

	t.Run("one person", func(t *testing.T) {
		g := NewPersonIDGenerator([]*Person{mustPerson(t, 2, "n", "")})
		assert.Equal(t, 3, g.NextPersonID())
	})

	t.Run("max id whatever the order", func(t *testing.T) {
		g := NewPersonIDGenerator([]*Person{
			mustPerson(t, 4, "a", ""),
			mustPerson(t, 11, "b", ""),
			mustPerson(t, 0, "c", ""),
		})
		assert.Equal(t, 12, g.NextPersonID())
		assert.Equal(t, 13, g.NextPersonID())
		assert.Equal(t, 14, g.NextPersonID())
	})
}

func TestCreatedFormat(t *testing.T) {
	tests := []struct {
		name  string
		value time.Time
		text  string
	}{
		{name: "seconds", value: time.Date(2024, 4, 5, 12, 41, 9, 0, time.Local), text: "2024-04-05 12:41:09"},
		{name: "microseconds", value: time.Date(2024, 4, 5, 12, 41, 9, 123456000, time.Local), text: "2024-04-05 12:41:09.123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.text, FormatCreated(tt.value))

			parsed, err := ParseCreated(tt.text)
			require.NoError(t, err)
			assert.True(t, tt.value.Equal(parsed))
		})
	}

	_, err := ParseCreated("yesterday")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
