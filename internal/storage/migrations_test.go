package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/edubridge/internal/common"
)

func TestMigrate_SetsExpectedVersion(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveRate(ctx, 30))
	require.NoError(t, store.Migrate(ctx))

	rate, err := store.LoadRate(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, rate, 1e-9)
}

func TestMigrate_CreatesStateTable(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	var count int
	err := store.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='app_state'
	`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMigration2_DropsNonNumericRate(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "legacy.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Bring the schema to version 1 by hand, then plant a legacy value.
	tx, err := store.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, migrations[0].Up(ctx, tx, sqliteDialect))
	require.NoError(t, sqliteDialect.writeVersion(ctx, tx, 1))
	require.NoError(t, tx.Commit())

	require.NoError(t, store.putRaw(ctx, RateKey, "NaN"))
	require.NoError(t, store.putRaw(ctx, CatalogKey, "[]"))

	require.NoError(t, store.Migrate(ctx))

	_, err = store.LoadRate(ctx)
	require.ErrorIs(t, err, common.ErrNotFound)

	courses, err := store.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestMigrate_NilContext(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	//nolint:staticcheck // exercising nil context handling
	err := store.Migrate(nil)
	require.ErrorIs(t, err, ErrNilContext)
}

func TestDialectBind(t *testing.T) {
	q := `DELETE FROM app_state WHERE key = ? AND value = ?`
	assert.Equal(t, q, sqliteDialect.bind(q))
	assert.Equal(t, `DELETE FROM app_state WHERE key = $1 AND value = $2`, postgresDialect.bind(q))
}

func TestMigrate_FailedStepRollsBack(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	broken := Migration{
		Version:     ExpectedSchemaVersion + 1,
		Description: "broken",
		Up: func(ctx context.Context, tx *sql.Tx, _ dialect) error {
			_, err := tx.ExecContext(ctx, `CREATE TABLE scratch (id INTEGER)`)
			require.NoError(t, err)
			_, err = tx.ExecContext(ctx, `SELECT * FROM missing_table`)
			return err
		},
	}

	err := applyMigration(ctx, store.db, sqliteDialect, broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration 3 failed")

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	var count int
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE name = 'scratch'`).Scan(&count))
	assert.Zero(t, count)
}
