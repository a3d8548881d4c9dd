package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javatronic/lms/internal/infrastructure/config"
)

func TestBooks(t *testing.T) {
	dir := inWorkspace(t, config.BackendJSONFile)

	out, err := execute(t, "", "books")
	require.NoError(t, err)
	assert.Contains(t, out, config.DefaultBook)

	out, err = execute(t, "", "books", "create", "Family Tree", "-d", "my family")
	require.NoError(t, err)
	assert.Equal(t, "Created book \"Family Tree\"\n", out)
	assert.DirExists(t, config.BookDir(config.ConfigDir(dir), "Family Tree"))

	_, err = execute(t, "", "books", "create", "Family Tree")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err = execute(t, "", "books", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Family Tree")
	assert.Contains(t, out, "my family")

	_, err = execute(t, "", "--book", "Family Tree", "create", "John")
	require.NoError(t, err)

	out, err = execute(t, "", "list")
	require.NoError(t, err)
	assert.Equal(t, "No Person registered yet.\n", out)

	_, err = execute(t, "", "books", "delete", "Family Tree")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains 1 persons, use --force to delete")

	out, err = execute(t, "", "books", "delete", "Family Tree", "--force")
	require.NoError(t, err)
	assert.Equal(t, "Deleted book \"Family Tree\"\n", out)
	_, err = os.Stat(config.BookDir(config.ConfigDir(dir), "Family Tree"))
	assert.True(t, os.IsNotExist(err))

	books, err := config.LoadBooks(dir)
	require.NoError(t, err)
	assert.False(t, books.Exists("Family Tree"))
}

func TestBooksDelete_Errors(t *testing.T) {
	inWorkspace(t, config.BackendJSONFile)

	_, err := execute(t, "", "books", "delete", config.DefaultBook)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't be deleted")

	_, err = execute(t, "", "books", "delete", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `book "missing" not found`)
}

func TestBooks_SanitizedNames(t *testing.T) {
	t.Run("default book can't be shadowed", func(t *testing.T) {
		inWorkspace(t, config.BackendJSONFile)
		_, err := execute(t, "", "create", "John")
		require.NoError(t, err)

		_, err = execute(t, "", "books", "create", "Default")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is the default book")

		_, err = execute(t, "", "books", "delete", "Default", "--force")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can't be deleted")

		out, err := execute(t, "", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "John")
	})

	t.Run("names sharing a directory are one book", func(t *testing.T) {
		dir := inWorkspace(t, config.BackendJSONFile)
		_, err := execute(t, "", "books", "create", "family")
		require.NoError(t, err)

		_, err = execute(t, "", "books", "create", "Family")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `book "Family" already exists as "family"`)

		_, err = execute(t, "", "--book", "family", "create", "John")
		require.NoError(t, err)
		out, err := execute(t, "", "--book", "Family", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "John")

		out, err = execute(t, "", "books", "list")
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(strings.ToLower(out), "family"))

		_, err = execute(t, "", "books", "delete", "Family", "--force")
		require.NoError(t, err)
		_, err = os.Stat(config.BookDir(config.ConfigDir(dir), "family"))
		assert.True(t, os.IsNotExist(err))

		_, err = execute(t, "", "--book", "family", "list")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `book "family" not found`)
	})
}
