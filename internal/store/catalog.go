package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no revision exists for a locator name.
var ErrNotFound = errors.New("locator not found")

// Record is one revision of a rendered locator.
type Record struct {
	ID          string // UUIDv7, assigned on insert
	Name        string
	Description string
	Expression  string
	Hash        string // content hash of the definition
	Definition  string // canonical JSON of the definition
	Seq         int64  // logical clock, assigned on insert
}

// Save records rec unless a revision with the same name and hash already
// exists. It returns the stored record and whether a new revision was
// written. ID and Seq on rec are ignored.
func (s *Store) Save(ctx context.Context, rec Record) (Record, bool, error) {
	if rec.Name == "" || rec.Hash == "" {
		return Record{}, false, fmt.Errorf("save locator: name and hash are required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, false, fmt.Errorf("save locator: begin: %w", err)
	}
	defer tx.Rollback()

	existing, err := scanRecord(tx.QueryRowContext(ctx, `
		SELECT id, name, description, expression, hash, definition, seq
		FROM locators
		WHERE name = ? AND hash = ?
	`, rec.Name, rec.Hash))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, fmt.Errorf("save locator: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM locators`).Scan(&seq); err != nil {
		return Record{}, false, fmt.Errorf("save locator: next seq: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Record{}, false, fmt.Errorf("save locator: generate id: %w", err)
	}

	rec.ID = id.String()
	rec.Seq = seq
	_, err = tx.ExecContext(ctx, `
		INSERT INTO locators (id, name, description, expression, hash, definition, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Name, rec.Description, rec.Expression, rec.Hash, rec.Definition, rec.Seq)
	if err != nil {
		return Record{}, false, fmt.Errorf("save locator: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, false, fmt.Errorf("save locator: commit: %w", err)
	}
	return rec, true, nil
}

// Latest returns the most recent revision of name, or ErrNotFound.
func (s *Store) Latest(ctx context.Context, name string) (Record, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx, `
		SELECT id, name, description, expression, hash, definition, seq
		FROM locators
		WHERE name = ?
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT 1
	`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Record{}, fmt.Errorf("latest locator: %w", err)
	}
	return rec, nil
}

// List returns the latest revision of every locator, ordered by name.
// Returns an empty slice (not nil) for an empty catalog.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.name, l.description, l.expression, l.hash, l.definition, l.seq
		FROM locators l
		WHERE l.seq = (SELECT MAX(seq) FROM locators WHERE name = l.name)
		ORDER BY l.name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list locators: %w", err)
	}
	return collectRecords(rows)
}

// History returns every revision of name, oldest first.
// Returns an empty slice (not nil) if the name was never saved.
func (s *Store) History(ctx context.Context, name string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, expression, hash, definition, seq
		FROM locators
		WHERE name = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("locator history: %w", err)
	}
	return collectRecords(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.Expression, &rec.Hash, &rec.Definition, &rec.Seq)
	return rec, err
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan locator: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locators: %w", err)
	}
	return records, nil
}
