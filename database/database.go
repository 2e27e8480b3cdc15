package database

import (
	"context"
	"fmt"
	"net/url"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/camden-git/contactsbackend/config"
	"github.com/camden-git/contactsbackend/logger"
)

const driverName = "sqlite3"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

const schema = `
CREATE TABLE IF NOT EXISTS user (
	username TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS person (
	person_id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	birthday TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	address_line1 TEXT NOT NULL DEFAULT '',
	address_line2 TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	prov TEXT NOT NULL DEFAULT '',
	country TEXT NOT NULL DEFAULT '',
	postcode TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS phone (
	person_id INTEGER NOT NULL REFERENCES person(person_id) ON DELETE CASCADE,
	number TEXT NOT NULL,
	label TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_phone_person_id ON phone(person_id);
`

// Store gives access to the contacts database at a single file path.
// It holds no open connection: every operation opens its own handle and
// closes it before returning.
type Store struct {
	path string
	log  zerolog.Logger
}

// NewStore returns a Store for the sqlite file at path.
func NewStore(path string, log zerolog.Logger) *Store {
	return &Store{path: path, log: log.With().Str("component", "store").Logger()}
}

// NewStoreFromConfig builds the logger described by cfg and a Store on
// cfg.DatabasePath, creating the tables first when cfg.CreateSchema is set.
func NewStoreFromConfig(ctx context.Context, cfg config.Config) (*Store, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	s := NewStore(cfg.DatabasePath, log)
	if cfg.CreateSchema {
		if err := s.EnsureSchema(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Path is the database file the store opens.
func (s *Store) Path() string {
	return s.path
}

// DataSourceName returns the go-sqlite3 DSN for path with foreign key
// enforcement switched on. The path is percent-escaped so '?', '#' and '%'
// stay part of the file name.
func DataSourceName(path string) string {
	return "file:" + (&url.URL{Path: path}).EscapedPath() + "?_foreign_keys=on"
}

// Connect opens a fresh handle to the database. Rows can be read by column
// name (sqlx struct scanning) or by position (Scan), and foreign keys are
// enforced. The caller must Close the handle.
func (s *Store) Connect(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, DataSourceName(s.path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one underlying connection so the pragma below applies to every statement
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys on %s: %w", s.path, err)
	}

	s.log.Debug().Str("path", s.path).Msg("opened database connection")
	return db, nil
}

// EnsureSchema creates the user, person and phone tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	db, err := s.Connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	s.log.Info().Str("path", s.path).Msg("database schema ready")
	return nil
}
