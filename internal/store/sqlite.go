package store

import (
	"context"
	"database/sql"
	"embed"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/mitchellh/go-homedir"

	_ "github.com/mattn/go-sqlite3"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DefaultSQLitePath is the database file used when none is configured.
const DefaultSQLitePath = "~/.byteik/contact.db"

// SQLiteStore keeps submissions in a SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// pending migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = DefaultSQLitePath
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreFailed, "resolve sqlite path", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreFailed, "create sqlite directory", err).
			WithContext("path", path)
	}

	if err := migrateUp(path); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreFailed, "migrate contact database", err).
			WithContext("path", path)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path))
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreFailed, "open contact database", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	return &SQLiteStore{db: db}, nil
}

func migrateUp(path string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite3://"+path)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, form contact.Form) (Record, error) {
	r := NewRecord(form)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_submissions (id, name, email, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Email, r.Message, r.CreatedAt)
	if err != nil {
		return Record{}, errors.NewStorageError(errors.ErrCodeStoreFailed, "insert contact record", err)
	}
	return r, nil
}

// List implements Lister.
func (s *SQLiteStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, message, created_at FROM contact_submissions ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreFailed, "query contact records", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Message, &r.CreatedAt); err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeStoreFailed, "scan contact record", err)
		}
		r.CreatedAt = r.CreatedAt.UTC()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreFailed, "iterate contact records", err)
	}
	return out, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
