// Package sqlite is a Store backed by a local SQLite database with the same
// entries and settings tables as the hosted service.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Tiliavir/caregiver-hours/internal/model"
	"github.com/Tiliavir/caregiver-hours/internal/paycalc"
)

const driverName = "sqlite"

// Store is a SQLite-backed entry and settings store.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default database location (~/.cht/cht.db).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".cht", "cht.db"), nil
}

// Open opens (creating if needed) and migrates the database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open(driverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ListEntries returns entries dated within [from, to], newest first.
func (s *Store) ListEntries(ctx context.Context, from, to time.Time) ([]model.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, hours, comments, expenses
		   FROM entries
		  WHERE date >= ? AND date <= ?
		  ORDER BY date DESC, id DESC`,
		paycalc.FormatDate(from), paycalc.FormatDate(to),
	)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		var e model.Entry
		if err := rows.Scan(&e.ID, &e.Date, &e.Hours, &e.Comments, &e.Expenses); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}

// InsertEntry stores a new row. Malformed dates are rejected by the schema.
func (s *Store) InsertEntry(ctx context.Context, e model.NewEntry) (model.Entry, error) {
	var created model.Entry
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO entries (date, hours, comments, expenses)
		 VALUES (?, ?, ?, ?)
		 RETURNING id, date, hours, comments, expenses`,
		e.Date, e.Hours, e.Comments, e.Expenses,
	).Scan(&created.ID, &created.Date, &created.Hours, &created.Comments, &created.Expenses)
	if err != nil {
		return model.Entry{}, fmt.Errorf("inserting entry: %w", err)
	}
	return created, nil
}

// DeleteEntry deletes the row with id; an unknown id is not an error.
func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting entry %d: %w", id, err)
	}
	return nil
}

// GetSettings returns the settings row or nil when none exists.
func (s *Store) GetSettings(ctx context.Context) (*model.Settings, error) {
	var st model.Settings
	err := s.db.QueryRowContext(ctx,
		`SELECT id, recipient_email FROM settings WHERE id = ?`, model.SettingsID,
	).Scan(&st.ID, &st.RecipientEmail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return &st, nil
}

// UpsertSettings writes the recipient to the fixed settings row.
func (s *Store) UpsertSettings(ctx context.Context, recipientEmail string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (id, recipient_email) VALUES (?, ?)
		 ON CONFLICT (id) DO UPDATE SET recipient_email = excluded.recipient_email`,
		model.SettingsID, recipientEmail,
	)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
