// Package repository persists digest state in SQLite: scores, published ledger, feed history,
// rendered pages and run statistics, all keyed by source
package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/umputun/newsdigest/pkg/domain"
)

//go:embed schema.sql
var schemaFS embed.FS

// SchemaVersion is the version of the persisted layout this code reads and writes
const SchemaVersion = 1

// Config represents database configuration
type Config struct {
	DSN    string
	Source string // source slug, keys all rows
}

// Store keeps state of a single source
type Store struct {
	db     *sqlx.DB
	source string
}

// New opens the database, creates schema if needed and checks the schema version.
// An unreadable database or unknown version is reported as domain.ErrStateCorrupt.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:newsdigest.db?mode=rwc&_txlock=immediate"
	}
	if cfg.Source == "" {
		return nil, errors.New("source is required")
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// single writer, pragmas below apply per connection
	db.SetMaxOpenConns(1)

	if err := setup(ctx, db); err != nil {
		_ = db.Close()
		if isCorruptError(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrStateCorrupt, err)
		}
		return nil, err
	}

	return &Store{db: db, source: cfg.Source}, nil
}

func setup(ctx context.Context, db *sqlx.DB) error {
	// optimize SQLite settings
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000", // 5 second timeout for locks
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if err := initSchema(ctx, db); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return checkVersion(ctx, db)
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sqlx.DB) error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	return nil
}

// checkVersion stamps a fresh database and rejects one written by an unknown layout
func checkVersion(ctx context.Context, db *sqlx.DB) error {
	var val string
	err := db.GetContext(ctx, &val, "SELECT value FROM meta WHERE key = 'schema_version'")
	if errors.Is(err, sql.ErrNoRows) {
		_, err = db.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES ('schema_version', ?)", strconv.Itoa(SchemaVersion))
		if err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("get schema version: %w", err)
	}

	if ver, err := strconv.Atoi(val); err != nil || ver != SchemaVersion {
		return fmt.Errorf("%w: schema version %q, expected %d", domain.ErrStateCorrupt, val, SchemaVersion)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
