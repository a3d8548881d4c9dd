package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexFold(t *testing.T) {
	tests := []struct {
		name      string
		s, substr string
		start     int
		end       int
	}{
		{name: "ascii", s: "John PÈRE DE emma", substr: "père de", start: 5, end: 13},
		{name: "first occurrence", s: "aaa aaa", substr: "aaa", start: 0, end: 3},
		{name: "inside a word", s: "fooaaa", substr: "aaa", start: 3, end: 6},
		{name: "multibyte before", s: "Léa sœur de Zoé", substr: "SŒUR DE", start: 5, end: 13},
		{name: "not found", s: "John", substr: "père de", start: -1, end: -1},
		{name: "longer than text", s: "pè", substr: "père", start: -1, end: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := indexFold(tt.s, tt.substr)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, containsFold("MarioEb", "eb"))
	assert.True(t, containsFold("Seb", "EB"))
	assert.False(t, containsFold("Seb", "bob"))
}
