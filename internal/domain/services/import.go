package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
	"github.com/javatronic/lms/internal/infrastructure/parsers"
)

// ConflictStrategy defines how to handle imported persons whose name is already registered.
type ConflictStrategy string

const (
	// ConflictSkip skips persons with the same first and last name as a registered one.
	ConflictSkip ConflictStrategy = "skip"
	// ConflictKeep imports them anyway, under a new id.
	ConflictKeep ConflictStrategy = "keep"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // Validate without saving
	OnConflict ConflictStrategy // How to handle already registered names
}

// ImportError represents an error for a specific person during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported []*entities.Person
	Skipped  int
	Errors   []ImportError
}

// ImportService handles importing persons from external sources.
type ImportService struct {
	storage ports.Storage
	logger  *zap.Logger
}

// NewImportService creates a new import service.
func NewImportService(storage ports.Storage, logger *zap.Logger) *ImportService {
	return &ImportService{
		storage: storage,
		logger:  logger,
	}
}

// Import validates raw persons, gives them fresh ids and stores them in
// front of the registered persons.
func (s *ImportService) Import(ctx context.Context, raws []parsers.RawPerson, opts ImportOptions) (*ImportResult, error) {
	existing, err := s.storage.ReadPersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading persons: %w", err)
	}

	result := &ImportResult{}
	generator := entities.NewPersonIDGenerator(existing)
	known := make(map[string]bool, len(existing)+len(raws))
	for _, p := range existing {
		known[nameKey(p.Firstname, p.Lastname)] = true
	}

	for i := range raws {
		raw := &raws[i]
		lineNum := raw.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		if importErr := validateRawPerson(raw, lineNum); importErr != nil {
			result.Errors = append(result.Errors, *importErr)
			continue
		}

		key := nameKey(raw.Firstname, raw.Lastname)
		if opts.OnConflict != ConflictKeep && known[key] {
			s.logger.Debug("skipping registered person", zap.Int("line", lineNum), zap.String("name", key))
			result.Skipped++
			continue
		}
		known[key] = true

		person, err := convertRawPerson(raw, generator.NextPersonID())
		if err != nil {
			result.Errors = append(result.Errors, ImportError{Line: lineNum, Message: err.Error()})
			continue
		}
		result.Imported = append(result.Imported, person)
	}

	if opts.DryRun || len(result.Imported) == 0 {
		return result, nil
	}

	persons := make([]*entities.Person, 0, len(result.Imported)+len(existing))
	persons = append(persons, result.Imported...)
	persons = append(persons, existing...)
	if err := s.storage.StorePersons(ctx, persons); err != nil {
		return nil, fmt.Errorf("storing persons: %w", err)
	}
	s.logger.Info("persons imported", zap.Int("imported", len(result.Imported)), zap.Int("skipped", result.Skipped))

	return result, nil
}

// validateRawPerson validates a single raw person and returns an error if invalid.
func validateRawPerson(raw *parsers.RawPerson, lineNum int) *ImportError {
	if raw.Firstname == "" {
		return &ImportError{Line: lineNum, Field: "firstname", Message: "missing required field: firstname"}
	}
	if _, err := entities.SexFromCode(raw.Sex); err != nil {
		return &ImportError{
			Line:    lineNum,
			Field:   "sex",
			Value:   raw.Sex,
			Message: fmt.Sprintf("invalid sex %q (valid: M, F or empty)", raw.Sex),
		}
	}
	if raw.Created != "" {
		if _, err := entities.ParseCreated(raw.Created); err != nil {
			return &ImportError{
				Line:    lineNum,
				Field:   "created",
				Value:   raw.Created,
				Message: fmt.Sprintf("invalid created %q (expected %s)", raw.Created, entities.CreatedLayout),
			}
		}
	}
	return nil
}

// convertRawPerson converts a validated raw person to a domain entity.
func convertRawPerson(raw *parsers.RawPerson, id int) (*entities.Person, error) {
	sex, err := entities.SexFromCode(raw.Sex)
	if err != nil {
		return nil, err
	}
	opts := []entities.PersonOption{entities.WithSex(sex)}
	if raw.Created != "" {
		created, err := entities.ParseCreated(raw.Created)
		if err != nil {
			return nil, err
		}
		opts = append(opts, entities.WithCreated(created))
	}
	if len(raw.Tags) > 0 {
		opts = append(opts, entities.WithTags(raw.Tags...))
	}
	return entities.NewPerson(id, raw.Firstname, raw.Lastname, opts...)
}

func nameKey(firstname, lastname string) string {
	if lastname == "" {
		return firstname
	}
	return firstname + " " + lastname
}
