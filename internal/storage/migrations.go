package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
const ExpectedSchemaVersion = 2

// dialect holds what differs between the SQLite and PostgreSQL backends:
// the state table DDL, placeholder style and where the version is kept.
type dialect struct {
	name         string
	stateTable   string
	numbered     bool
	readVersion  func(ctx context.Context, q queryer) (int, error)
	writeVersion func(ctx context.Context, tx *sql.Tx, version int) error
}

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// bind rewrites ? placeholders to $n for dialects that number them.
func (d dialect) bind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var sqliteDialect = dialect{
	name: "sqlite",
	stateTable: `
		CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	readVersion: func(ctx context.Context, q queryer) (int, error) {
		var v int
		err := q.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v)
		return v, err
	},
	writeVersion: func(ctx context.Context, tx *sql.Tx, version int) error {
		// PRAGMA does not take bind parameters.
		_, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version))
		return err
	},
}

var postgresDialect = dialect{
	name:     "postgres",
	numbered: true,
	stateTable: `
		CREATE TABLE IF NOT EXISTS app_state (
			key        TEXT        PRIMARY KEY,
			value      TEXT        NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	readVersion: func(ctx context.Context, q queryer) (int, error) {
		if _, err := q.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
			return 0, err
		}
		var v int
		err := q.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&v)
		return v, err
	},
	writeVersion: func(ctx context.Context, tx *sql.Tx, version int) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES ($1)`, version)
		return err
	},
}

// Migration is one schema step, shared by every backend.
type Migration struct {
	Up          func(ctx context.Context, tx *sql.Tx, d dialect) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial key/value state table",
		Up: func(ctx context.Context, tx *sql.Tx, d dialect) error {
			_, err := tx.ExecContext(ctx, d.stateTable)
			return err
		},
	},
	{
		Version:     2,
		Description: "Clear non-numeric exchange rates left by older clients",
		Up: func(ctx context.Context, tx *sql.Tx, d dialect) error {
			// Older browser builds could persist "NaN" or "" for the rate.
			_, err := tx.ExecContext(ctx, d.bind(`
				DELETE FROM app_state
				WHERE key = ? AND (TRIM(value) = '' OR LOWER(TRIM(value)) IN ('nan', 'null', 'undefined', 'infinity', '-infinity'))
			`), RateKey)
			return err
		},
	},
}

// migrate applies every step newer than the recorded version, one
// transaction per step, and checks the result against ExpectedSchemaVersion.
func migrate(ctx context.Context, db *sql.DB, d dialect) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	current, err := d.readVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := applyMigration(ctx, db, d, m); err != nil {
			return err
		}
		current = m.Version
		slog.Info("Applied migration",
			"backend", d.name,
			"version", m.Version,
			"description", m.Description)
	}

	if current != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, current)
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, d dialect, m Migration) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = m.Up(ctx, tx, d); err != nil {
		return fmt.Errorf("migration %d failed: %w", m.Version, err)
	}
	if err = d.writeVersion(ctx, tx, m.Version); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", m.Version, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}

func schemaVersion(ctx context.Context, db *sql.DB, d dialect) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	v, err := d.readVersion(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return v, nil
}

// Migrate applies all pending migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	return migrate(ctx, s.db, sqliteDialect)
}

// SchemaVersion returns the applied schema version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	return schemaVersion(ctx, s.db, sqliteDialect)
}

// Migrate applies all pending migrations.
func (ps *PostgresStorage) Migrate(ctx context.Context) error {
	return migrate(ctx, ps.db, postgresDialect)
}

// SchemaVersion returns the applied schema version.
func (ps *PostgresStorage) SchemaVersion(ctx context.Context) (int, error) {
	return schemaVersion(ctx, ps.db, postgresDialect)
}
