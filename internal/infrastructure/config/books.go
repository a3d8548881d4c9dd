package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// BooksConfig holds the registered relationship books (read/write).
// Books are keyed by their sanitized name, the one their data directory uses.
// The default book is always available and is never registered.
type BooksConfig struct {
	Books map[string]BookEntry `yaml:"books,omitempty"`
}

// BookEntry holds configuration for a specific book.
type BookEntry struct {
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// LoadBooks loads book configuration from the .lms directory.
func LoadBooks(basePath string) (*BooksConfig, error) {
	data, err := os.ReadFile(BooksFilePath(basePath))
	if os.IsNotExist(err) {
		// Return empty config if file doesn't exist
		return &BooksConfig{
			Books: make(map[string]BookEntry),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading books file: %w", err)
	}

	var cfg BooksConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing books file: %w", err)
	}

	books := &BooksConfig{Books: make(map[string]BookEntry, len(cfg.Books))}
	for name, entry := range cfg.Books {
		books.Add(name, entry)
	}

	return books, nil
}

// Save writes the books configuration to the books file.
func (b *BooksConfig) Save(basePath string) error {
	if err := os.MkdirAll(ConfigDir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshaling books config: %w", err)
	}

	if err := os.WriteFile(BooksFilePath(basePath), data, 0600); err != nil {
		return fmt.Errorf("writing books file: %w", err)
	}

	return nil
}

// IsDefault reports whether name designates the default book.
func IsDefault(name string) bool {
	return SanitizeBookName(name) == DefaultBook
}

// Add registers a book under its sanitized name. The default book is never
// registered.
func (b *BooksConfig) Add(name string, entry BookEntry) {
	if IsDefault(name) {
		return
	}
	if b.Books == nil {
		b.Books = make(map[string]BookEntry)
	}
	if entry.Name == "" {
		entry.Name = name
	}
	b.Books[SanitizeBookName(name)] = entry
}

// Remove removes a book from the configuration.
func (b *BooksConfig) Remove(name string) {
	if b.Books != nil {
		delete(b.Books, SanitizeBookName(name))
	}
}

// Lookup returns the registered entry sharing the data directory of name.
func (b *BooksConfig) Lookup(name string) (BookEntry, bool) {
	entry, ok := b.Books[SanitizeBookName(name)]
	return entry, ok
}

// Exists checks if a book can be used.
func (b *BooksConfig) Exists(name string) bool {
	if IsDefault(name) {
		return true
	}
	_, ok := b.Lookup(name)
	return ok
}

// Names returns the display names of the registered books, sorted.
func (b *BooksConfig) Names() []string {
	names := make([]string, 0, len(b.Books))
	for key, entry := range b.Books {
		name := entry.Name
		if name == "" {
			name = key
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check returns an error listing the available books when name can't be used.
func (b *BooksConfig) Check(name string) error {
	if b.Exists(name) {
		return nil
	}

	names := b.Names()
	if len(names) > 5 {
		names = append(names[:5], "...")
	}
	return fmt.Errorf("book %q not found (available: %s)", name, strings.Join(append([]string{DefaultBook}, names...), ", "))
}
