package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
)

func newSearchEnv(t *testing.T) (*testEnv, []*entities.Person) {
	t.Helper()
	john := newPerson(t, 1, "John", "")
	peter := newPerson(t, 2, "Peter", "")
	emma := newPerson(t, 3, "Emma", "", entities.WithSex(entities.Female))
	env := newTestEnv([]*entities.Person{john, peter, emma}, nil)
	parent := env.registry.Find("parent/enfant de")
	env.storage.Relationships = []*entities.Relationship{
		entities.NewRelationship(john, peter, parent),
		entities.NewRelationship(john, emma, parent),
	}
	return env, []*entities.Person{john, peter, emma}
}

func listedNames(listed []ports.ResolvedPerson) []string {
	names := make([]string, len(listed))
	for i, r := range listed {
		names[i] = r.Person.String()
	}
	return names
}

func TestPersonHandler_SearchPersons(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
		rels     []int
	}{
		{name: "plain pattern", text: "e", expected: []string{"Peter", "Emma"}, rels: []int{1, 1}},
		{name: "plain pattern keeps every relationship", text: "john", expected: []string{"John"}, rels: []int{2}},
		{name: "reverse alias", text: "enfant de John", expected: []string{"Peter", "Emma"}, rels: []int{1, 1}},
		{name: "reverse alias with sex", text: "fille de John", expected: []string{"Emma"}, rels: []int{1}},
		{name: "forward alias", text: "parent de emma", expected: []string{"John"}, rels: []int{1}},
		{name: "nothing found", text: "fils de John", expected: []string{}, rels: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := newSearchEnv(t)

			outcome, err := env.handler.SearchPersons(t.Context(), tt.text)

			require.NoError(t, err)
			assert.Equal(t, ports.Done, outcome)
			require.Len(t, env.ios.Listed, 1)
			listed := env.ios.Listed[0]
			assert.Equal(t, tt.expected, listedNames(listed))
			for i, r := range listed {
				assert.Len(t, r.Relationships, tt.rels[i])
			}
		})
	}
}

func TestPersonHandler_SearchPersons_Rejected(t *testing.T) {
	env, _ := newSearchEnv(t)

	outcome, err := env.handler.SearchPersons(t.Context(), "foo père de bill")

	require.NoError(t, err)
	assert.Equal(t, ports.NotFound, outcome)
	assert.Empty(t, env.ios.Listed)
}

func TestPersonHandler_SearchPersons_NoPerson(t *testing.T) {
	env := newTestEnv(nil, nil)

	outcome, err := env.handler.SearchPersons(t.Context(), "john")

	require.NoError(t, err)
	assert.Equal(t, ports.Done, outcome)
	require.Len(t, env.ios.Listed, 1)
	assert.Empty(t, env.ios.Listed[0])
}
