// Package parsers provides parsers for importing persons from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawPerson represents a person parsed from an external source before validation.
type RawPerson struct {
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname,omitempty"`
	Sex       string   `json:"sex,omitempty"`     // "M", "F" or empty
	Created   string   `json:"created,omitempty"` // same layout as the stored records
	Tags      []string `json:"tags,omitempty"`
	LineNum   int      `json:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing persons from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawPerson, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
