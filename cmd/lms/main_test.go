package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javatronic/lms/internal/infrastructure/config"
)

// execute runs the root command with args, reading answers from input.
func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

// inWorkspace runs the test from an empty directory using backend.
func inWorkspace(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LMS_STORAGE_BACKEND", backend)
	t.Setenv("LMS_DATA_DIR", "")
	t.Setenv("LMS_LOG_LEVEL", "")
	t.Setenv("LMS_LOG_MODE", "")
	return dir
}

func TestArgs(t *testing.T) {
	inWorkspace(t, config.BackendJSONFile)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "create without name", args: []string{"create"}, wantErr: "Too few arguments (0)"},
		{name: "create with three words", args: []string{"create", "a", "b", "c"}, wantErr: "Too many arguments (3)"},
		{name: "link with one word", args: []string{"link", "John"}, wantErr: "Too few arguments (1)"},
		{name: "search without pattern", args: []string{"search"}, wantErr: "Missing search pattern"},
		{name: "update without pattern", args: []string{"update"}, wantErr: "requires at least 1 arg"},
		{name: "import bad conflict", args: []string{"import", "persons.json", "--on-conflict", "overwrite"}, wantErr: `invalid --on-conflict value "overwrite"`},
		{name: "unknown book", args: []string{"list", "--book", "nope"}, wantErr: `book "nope" not found`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEndToEnd(t *testing.T) {
	for _, backend := range []string{config.BackendJSONFile, config.BackendSQLite, config.BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			inWorkspace(t, backend)

			out, err := execute(t, "")
			require.NoError(t, err)
			assert.Equal(t, "No Person registered yet.\n", out)

			out, err = execute(t, "", "create", "John", "Doe")
			require.NoError(t, err)
			assert.Equal(t, "Create Person John Doe.\n", out)

			for _, name := range []string{"Peter", "Emma"} {
				_, err = execute(t, "", "create", name)
				require.NoError(t, err)
			}

			out, err = execute(t, "\n", "link", "John", "père", "de", "Peter")
			require.NoError(t, err)
			assert.Contains(t, out, "Sex of John Doe set to MALE from alias père de")
			assert.Contains(t, out, `Hit ENTER to link as "parent/enfant de":`)

			_, err = execute(t, "\n", "link", "Emma", "fille", "de", "John")
			require.NoError(t, err)

			out, err = execute(t, "", "enfant", "de", "John")
			require.NoError(t, err)
			assert.Contains(t, out, "Peter")
			assert.Contains(t, out, "Emma")
			assert.NotContains(t, out, "(0)  MALE John Doe")

			out, err = execute(t, "", "search", "fille", "de", "John")
			require.NoError(t, err)
			assert.Contains(t, out, "Emma")
			assert.NotContains(t, out, "Peter")

			out, err = execute(t, "", "list")
			require.NoError(t, err)
			assert.Contains(t, out, "(0)  MALE John Doe")
			assert.Contains(t, out, "    -> père de (1) Peter")

			out, err = execute(t, "\n\n", "delete", "Peter")
			require.NoError(t, err)
			assert.Contains(t, out, "Hit ENTER to delete:")

			out, err = execute(t, "", "list")
			require.NoError(t, err)
			assert.NotContains(t, out, "Peter")
			assert.Contains(t, out, "Emma")
		})
	}
}

func TestEndToEnd_CancelledPrompt(t *testing.T) {
	inWorkspace(t, config.BackendJSONFile)

	_, err := execute(t, "", "create", "John")
	require.NoError(t, err)
	_, err = execute(t, "", "create", "Peter")
	require.NoError(t, err)

	// no answer to the confirmation
	_, err = execute(t, "", "link", "John", "père", "de", "Peter")
	require.NoError(t, err)

	out, err := execute(t, "", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "->")
}

func TestImport(t *testing.T) {
	dir := inWorkspace(t, config.BackendJSONFile)

	file := filepath.Join(dir, "persons.json")
	require.NoError(t, os.WriteFile(file, []byte(`[
		{"firstname": "John", "lastname": "Doe", "sex": "M"},
		{"firstname": "Emma", "tags": ["school"]},
		{"lastname": "Nobody"}
	]`), 0o600))

	out, err := execute(t, "", "import", file, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: 2 persons would be imported, 1 errors")

	out, err = execute(t, "", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported: 2 persons, 1 errors")

	out, err = execute(t, "", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported: 0 persons, 2 skipped (already registered), 1 errors")

	out, err = execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "MALE John Doe")
	assert.Contains(t, out, "     school")
}

func TestInit(t *testing.T) {
	dir := inWorkspace(t, config.BackendSQLite)

	out, err := execute(t, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "lms initialized successfully!")
	assert.FileExists(t, config.ConfigFilePath(dir))

	_, err = execute(t, "", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestHistory(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		inWorkspace(t, config.BackendSQLite)

		out, err := execute(t, "", "history")
		require.NoError(t, err)
		assert.Equal(t, "No history recorded yet.\n", out)

		_, err = execute(t, "", "create", "John")
		require.NoError(t, err)

		out, err = execute(t, "", "history", "--limit", "5")
		require.NoError(t, err)
		assert.Contains(t, out, "store_persons")

		_, err = execute(t, "", "create", "Peter")
		require.NoError(t, err)
		_, err = execute(t, "\n", "delete", "John")
		require.NoError(t, err)

		out, err = execute(t, "", "history", "--person", "0")
		require.NoError(t, err)
		assert.Contains(t, out, "add_person")
		assert.Contains(t, out, "remove_person")
		assert.Contains(t, out, `{"name":"John"}`)

		out, err = execute(t, "", "history", "--action", "add_person")
		require.NoError(t, err)
		assert.Contains(t, out, `{"name":"Peter"}`)
		assert.NotContains(t, out, "store_persons")

		out, err = execute(t, "", "history", "--person", "0", "--action", "update_person")
		require.NoError(t, err)
		assert.Equal(t, "No history recorded yet.\n", out)

		out, err = execute(t, "", "history", "--action", "remove_person")
		require.NoError(t, err)
		assert.Contains(t, out, `{"name":"John"}`)
		assert.NotContains(t, out, "Peter")
	})

	t.Run("jsonfile", func(t *testing.T) {
		inWorkspace(t, config.BackendJSONFile)

		_, err := execute(t, "", "history")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `storage backend "jsonfile" keeps no history`)
	})
}
