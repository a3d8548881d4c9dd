package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBooks_MissingFile(t *testing.T) {
	books, err := LoadBooks(t.TempDir())

	require.NoError(t, err)
	assert.NotNil(t, books.Books)
	assert.Empty(t, books.Books)
	assert.True(t, books.Exists(DefaultBook))
}

func TestBooksConfig_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	books := &BooksConfig{}
	books.Add("work", BookEntry{Description: "Colleagues"})
	books.Add("family", BookEntry{})

	require.NoError(t, books.Save(tmpDir))

	loaded, err := LoadBooks(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"family", "work"}, loaded.Names())
	assert.Equal(t, "Colleagues", loaded.Books["work"].Description)
}

func TestBooksConfig_Remove(t *testing.T) {
	books := &BooksConfig{}
	books.Add("work", BookEntry{})

	books.Remove("work")

	assert.False(t, books.Exists("work"))
}

func TestBooksConfig_Check(t *testing.T) {
	books := &BooksConfig{}
	books.Add("work", BookEntry{})

	assert.NoError(t, books.Check("work"))
	assert.NoError(t, books.Check(DefaultBook))

	err := books.Check("family")
	require.Error(t, err)
	assert.Equal(t, `book "family" not found (available: default, work)`, err.Error())
}

func TestBooksConfig_SanitizedNames(t *testing.T) {
	books := &BooksConfig{}
	books.Add("Family Tree", BookEntry{Description: "mine"})
	books.Add("Default", BookEntry{})

	tests := []struct {
		name   string
		exists bool
	}{
		{name: "Family Tree", exists: true},
		{name: "family_tree", exists: true},
		{name: "FAMILY-TREE", exists: true},
		{name: "Default", exists: true},
		{name: "family", exists: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exists, books.Exists(tt.name))
		})
	}

	assert.Equal(t, []string{"Family Tree"}, books.Names())
	entry, ok := books.Lookup("family-tree")
	require.True(t, ok)
	assert.Equal(t, "Family Tree", entry.Name)
	assert.Equal(t, "mine", entry.Description)

	books.Remove("FAMILY TREE")
	assert.Empty(t, books.Books)
}

func TestIsDefault(t *testing.T) {
	for _, name := range []string{DefaultBook, "Default", " DEFAULT ", "!!!", ""} {
		assert.True(t, IsDefault(name), name)
	}
	assert.False(t, IsDefault("defaults"))
}

func TestLoadBooks_RekeysEntries(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(tmpDir), 0o755))
	data := "books:\n  Family:\n    description: old\n  default:\n    description: ignored\n"
	require.NoError(t, os.WriteFile(BooksFilePath(tmpDir), []byte(data), 0o600))

	books, err := LoadBooks(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, map[string]BookEntry{"family": {Name: "Family", Description: "old"}}, books.Books)
}
