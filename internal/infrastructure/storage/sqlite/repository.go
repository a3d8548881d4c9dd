// Package sqlite provides a SQLite implementation of ports.Storage.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
	"github.com/javatronic/lms/internal/infrastructure/storage/records"
)

// DatabaseFile is the name of the database inside a book directory.
const DatabaseFile = "lms.db"

// Audit log actions.
const (
	ActionStorePersons       = "store_persons"
	ActionStoreRelationships = "store_relationships"
	ActionAddPerson          = "add_person"
	ActionRemovePerson       = "remove_person"
	ActionUpdatePerson       = "update_person"
	ActionClearPersons       = "clear_persons"
	ActionClearRelationships = "clear_relationships"
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Repository implements ports.Storage using SQLite.
type Repository struct {
	db       *sql.DB
	resolver *records.Resolver
}

var _ ports.Storage = (*Repository)(nil)

// NewRepository opens the SQLite database at path.
func NewRepository(path string, registry entities.Registry, logger *zap.Logger) (*Repository, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Each connection to ":memory:" opens a distinct database.
	db.SetMaxOpenConns(1)

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:       db,
		resolver: records.NewResolver(registry, logger),
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS persons (
		id INTEGER PRIMARY KEY,
		position INTEGER NOT NULL,
		firstname TEXT NOT NULL,
		lastname TEXT,
		created TEXT NOT NULL,
		sex TEXT,
		tags TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_persons_position ON persons(position);

	-- Endpoints are not foreign keys: persons are replaced as a whole and
	-- dangling relationships are dropped when read.
	CREATE TABLE IF NOT EXISTS relationships (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		left_id INTEGER NOT NULL,
		right_id INTEGER NOT NULL,
		definition TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_relationships_position ON relationships(position);

	-- Audit log (tracks all mutations)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		person_id INTEGER,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_person ON audit_log(person_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// ReadPersons returns the stored persons ordered by position.
func (r *Repository) ReadPersons(ctx context.Context) ([]*entities.Person, error) {
	query := `
		SELECT id, firstname, lastname, created, sex, tags
		FROM persons
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying persons: %w", err)
	}
	defer rows.Close()

	var recs []records.PersonRecord
	for rows.Next() {
		rec, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating persons: %w", err)
	}

	return records.ToPersons(recs)
}

// StorePersons replaces the content of the persons table. Persons added or
// removed by the replacement get their own audit entry.
func (r *Repository) StorePersons(ctx context.Context, persons []*entities.Person) error {
	if len(persons) == 0 {
		return ports.ErrEmptyPersons
	}

	return r.withTx(ctx, func(tx *sql.Tx) error {
		previous, err := storedPersons(ctx, tx)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM persons`); err != nil {
			return fmt.Errorf("clearing persons: %w", err)
		}

		query := `
			INSERT INTO persons (id, position, firstname, lastname, created, sex, tags)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		for i, rec := range records.FromPersons(persons) {
			tags, err := encodeTags(rec.Tags)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query,
				rec.ID, i, rec.Firstname, nullString(rec.Lastname), rec.Created, nullString(rec.Sex), tags,
			); err != nil {
				return fmt.Errorf("saving person %d: %w", rec.ID, err)
			}
		}

		kept := make(map[int]bool, len(persons))
		for _, p := range persons {
			kept[p.ID] = true
			if _, ok := previous[p.ID]; !ok {
				if err := logAction(ctx, tx, ActionAddPerson, &p.ID, map[string]any{"name": p.String()}); err != nil {
					return err
				}
			}
		}
		if err := logRemovedPersons(ctx, tx, previous, kept); err != nil {
			return err
		}

		return logAction(ctx, tx, ActionStorePersons, nil, map[string]any{"count": len(persons)})
	})
}

// storedPersons returns the names of the stored persons by id.
func storedPersons(ctx context.Context, tx *sql.Tx) (map[int]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, firstname, lastname FROM persons ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying person ids: %w", err)
	}
	defer rows.Close()

	names := make(map[int]string)
	for rows.Next() {
		var (
			id        int
			firstname string
			lastname  sql.NullString
		)
		if err := rows.Scan(&id, &firstname, &lastname); err != nil {
			return nil, fmt.Errorf("scanning person id: %w", err)
		}
		names[id] = strings.TrimSpace(firstname + " " + lastname.String)
	}
	return names, rows.Err()
}

func logRemovedPersons(ctx context.Context, tx *sql.Tx, previous map[int]string, kept map[int]bool) error {
	ids := make([]int, 0, len(previous))
	for id := range previous {
		if !kept[id] {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	for _, id := range ids {
		if err := logAction(ctx, tx, ActionRemovePerson, &id, map[string]any{"name": previous[id]}); err != nil {
			return err
		}
	}
	return nil
}

// ReadRelationships returns the stored relationships between persons, ordered by position.
func (r *Repository) ReadRelationships(ctx context.Context, persons []*entities.Person) ([]*entities.Relationship, error) {
	if len(persons) == 0 {
		return nil, ports.ErrNoPersons
	}

	query := `
		SELECT left_id, right_id, definition
		FROM relationships
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying relationships: %w", err)
	}
	defer rows.Close()

	var recs []records.RelationshipRecord
	for rows.Next() {
		var rec records.RelationshipRecord
		if err := rows.Scan(&rec.Left, &rec.Right, &rec.Definition); err != nil {
			return nil, fmt.Errorf("scanning relationship: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating relationships: %w", err)
	}

	return r.resolver.Resolve(recs, persons), nil
}

// StoreRelationships replaces the content of the relationships table.
func (r *Repository) StoreRelationships(ctx context.Context, relationships []*entities.Relationship) error {
	if len(relationships) == 0 {
		return ports.ErrEmptyRelationships
	}

	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM relationships`); err != nil {
			return fmt.Errorf("clearing relationships: %w", err)
		}

		query := `
			INSERT INTO relationships (id, position, left_id, right_id, definition)
			VALUES (?, ?, ?, ?, ?)
		`
		for i, rec := range records.FromRelationships(relationships) {
			if _, err := tx.ExecContext(ctx, query, generateUUID(), i, rec.Left, rec.Right, rec.Definition); err != nil {
				return fmt.Errorf("saving relationship: %w", err)
			}
		}

		return logAction(ctx, tx, ActionStoreRelationships, nil, map[string]any{"count": len(relationships)})
	})
}

// UpdatePerson replaces the row of the person with the same id.
func (r *Repository) UpdatePerson(ctx context.Context, person *entities.Person) error {
	rec := records.FromPerson(person)
	tags, err := encodeTags(rec.Tags)
	if err != nil {
		return err
	}

	return r.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE persons
			SET firstname = ?, lastname = ?, created = ?, sex = ?, tags = ?
			WHERE id = ?
		`
		result, err := tx.ExecContext(ctx, query,
			rec.Firstname, nullString(rec.Lastname), rec.Created, nullString(rec.Sex), tags, rec.ID,
		)
		if err != nil {
			return fmt.Errorf("updating person: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("%w: %d", ports.ErrPersonNotFound, rec.ID)
		}

		return logAction(ctx, tx, ActionUpdatePerson, &rec.ID, map[string]any{"name": person.String()})
	})
}

// ClearPersons deletes every person.
func (r *Repository) ClearPersons(ctx context.Context) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		previous, err := storedPersons(ctx, tx)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM persons`); err != nil {
			return fmt.Errorf("clearing persons: %w", err)
		}
		if err := logRemovedPersons(ctx, tx, previous, nil); err != nil {
			return err
		}
		return logAction(ctx, tx, ActionClearPersons, nil, nil)
	})
}

// ClearRelationships deletes every relationship.
func (r *Repository) ClearRelationships(ctx context.Context) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM relationships`); err != nil {
			return fmt.Errorf("clearing relationships: %w", err)
		}
		return logAction(ctx, tx, ActionClearRelationships, nil, nil)
	})
}

func logAction(ctx context.Context, exec execer, action string, personID *int, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var id sql.NullInt64
	if personID != nil {
		id = sql.NullInt64{Int64: int64(*personID), Valid: true}
	}

	query := `INSERT INTO audit_log (action, person_id, details) VALUES (?, ?, ?)`
	if _, err := exec.ExecContext(ctx, query, action, id, detailsJSON); err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries for a specific person, most recent first.
func (r *Repository) FindAuditLog(ctx context.Context, personID int) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, person_id, details, created_at
		FROM audit_log
		WHERE person_id = ?
		ORDER BY id DESC
	`
	return r.queryAuditLog(ctx, query, personID)
}

// FindAuditLogByAction finds audit log entries by action type, most recent first.
func (r *Repository) FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, person_id, details, created_at
		FROM audit_log
		WHERE action = ?
		ORDER BY id DESC
		LIMIT ?
	`
	return r.queryAuditLog(ctx, query, action, limit)
}

// RecentAuditLog returns the last limit audit log entries, most recent first.
func (r *Repository) RecentAuditLog(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, person_id, details, created_at
		FROM audit_log
		ORDER BY id DESC
		LIMIT ?
	`
	return r.queryAuditLog(ctx, query, limit)
}

// queryAuditLog is a helper to execute audit log queries.
func (r *Repository) queryAuditLog(ctx context.Context, query string, args ...any) ([]entities.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var personID sql.NullInt64
		var details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&personID,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		if personID.Valid {
			id := int(personID.Int64)
			entry.PersonID = &id
		}

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *Repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func scanPerson(rows *sql.Rows) (records.PersonRecord, error) {
	var rec records.PersonRecord
	var lastname, sex, tags sql.NullString
	if err := rows.Scan(&rec.ID, &rec.Firstname, &lastname, &rec.Created, &sex, &tags); err != nil {
		return rec, fmt.Errorf("scanning person: %w", err)
	}
	rec.Lastname = lastname.String
	rec.Sex = sex.String
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &rec.Tags); err != nil {
			return rec, fmt.Errorf("unmarshaling tags of person %d: %w", rec.ID, err)
		}
	}
	return rec, nil
}

func encodeTags(tags []string) (sql.NullString, error) {
	if len(tags) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshaling tags: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
