// Package testutil provides shared test helpers: isolated databases and
// catalog stores backed by them.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/Veraticus/edubridge/internal/catalog"
	"github.com/Veraticus/edubridge/internal/model"
	"github.com/Veraticus/edubridge/internal/storage"
	"github.com/Veraticus/edubridge/internal/testutil/courses"
)

// TestDB is a migrated temp-dir database plus the catalog store loaded from it.
type TestDB struct {
	Storage *storage.SQLiteStorage
	Store   *catalog.Store
	Courses courses.Courses
	t       *testing.T
}

// SetupTestDB creates a fresh database. When cs is non-empty the persisted
// catalog is replaced with exactly those courses before the store loads;
// otherwise the store starts from the seed catalog.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		courses.NewBuilder(t).WithFixture(courses.FixtureMixedLevels).Build(),
//	)
func SetupTestDB(t *testing.T, cs courses.Courses) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "edubridge.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(cs) > 0 {
		if err := store.SaveCatalog(ctx, []model.Course(cs)); err != nil {
			t.Fatalf("failed to seed catalog: %v", err)
		}
	}

	return &TestDB{
		Storage: store,
		Store:   catalog.NewStore(ctx, store, QuietLogger()),
		Courses: cs,
		t:       t,
	}
}

// NewStore returns a catalog store over a fresh database holding the seed catalog.
func NewStore(t *testing.T) *catalog.Store {
	t.Helper()
	return SetupTestDB(t, nil).Store
}

// Reload builds a second store over the same database, as a restart would.
func (db *TestDB) Reload() *catalog.Store {
	db.t.Helper()
	return catalog.NewStore(context.Background(), db.Storage, QuietLogger())
}

// QuietLogger discards everything.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
