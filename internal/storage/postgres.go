package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/edubridge/internal/common"
)

// PostgresStorage keeps the catalog state in a shared PostgreSQL database.
type PostgresStorage struct {
	stateStore
	db *sql.DB
}

// NewPostgresStorage connects to dsn, waiting for the server to come up.
// Call Migrate before use.
func NewPostgresStorage(ctx context.Context, dsn string) (*PostgresStorage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDSN(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	err = common.WithRetry(ctx, func() error {
		return db.PingContext(ctx)
	}, common.RetryOptions{
		Operation:    "postgres ping",
		MaxAttempts:  10,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed: %w", err)
	}

	ps := &PostgresStorage{
		stateStore: stateStore{kv: keyValue{
			db:        db,
			getQuery:  `SELECT value FROM app_state WHERE key = $1`,
			putQuery:  `INSERT INTO app_state (key, value, updated_at) VALUES ($1, $2, NOW()) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
			delQuery:  `DELETE FROM app_state WHERE key = $1`,
			keysQuery: `SELECT key FROM app_state ORDER BY key`,
		}},
		db: db,
	}

	return ps, nil
}

// Close closes the database connection.
func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}
