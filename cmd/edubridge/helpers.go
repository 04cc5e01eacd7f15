package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/edubridge/internal/assistant"
	"github.com/Veraticus/edubridge/internal/catalog"
	"github.com/Veraticus/edubridge/internal/common"
	"github.com/Veraticus/edubridge/internal/config"
	"github.com/Veraticus/edubridge/internal/llm"
	"github.com/Veraticus/edubridge/internal/model"
	"github.com/Veraticus/edubridge/internal/storage"
)

// persistence is a catalog backend with a versioned schema.
type persistence interface {
	catalog.Persister
	Migrate(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int, error)
	Close() error
}

// openBackend opens the configured backend without touching its schema.
func openBackend(ctx context.Context, db config.Database) (persistence, error) {
	var (
		p   persistence
		err error
	)
	switch db.Driver {
	case config.DriverPostgres:
		p, err = storage.NewPostgresStorage(ctx, db.DSN)
	default:
		p, err = storage.NewSQLiteStorage(db.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", db.Driver, err)
	}
	return p, nil
}

// openStorage opens the configured backend and brings its schema up to date.
func openStorage(ctx context.Context) (persistence, error) {
	db, err := config.LoadDatabase(viper.GetViper())
	if err != nil {
		return nil, err
	}

	p, err := openBackend(ctx, db)
	if err != nil {
		return nil, err
	}

	if err := p.Migrate(ctx); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("storage ready", "driver", db.Driver, "path", db.Path)
	return p, nil
}

// initStore opens storage and loads the catalog. The cleanup function closes
// the backend.
func initStore(ctx context.Context) (*catalog.Store, func(), error) {
	p, err := openStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := p.Close(); err != nil {
			slog.Warn("failed to close storage", "error", err)
		}
	}
	return catalog.NewStore(ctx, p, slog.Default()), cleanup, nil
}

// newBridge builds the assistant bridge. Missing or broken assistant
// configuration is logged and yields a bridge that answers with the fixed
// unavailable reply.
func newBridge(ctx context.Context) *assistant.Bridge {
	cfg, err := config.LoadLLM(viper.GetViper())
	if err != nil {
		slog.Warn("assistant disabled", "error", err)
		return assistant.NewBridge(nil, slog.Default())
	}

	client, err := llm.New(ctx, cfg, slog.Default())
	if err != nil {
		slog.Warn("assistant disabled", "provider", cfg.Provider, "error", err)
		return assistant.NewBridge(nil, slog.Default())
	}
	return assistant.NewBridge(client, slog.Default())
}

// resolveCourse finds a course by exact id or by a unique id prefix, so the
// short ids printed by `courses list` can be typed back.
func resolveCourse(courses []model.Course, ref string) (model.Course, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Course{}, common.NewUserError("a course id is required", nil)
	}

	var matches []model.Course
	for _, c := range courses {
		if c.ID == ref {
			return c, nil
		}
		if strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return model.Course{}, fmt.Errorf("course %q: %w", ref, common.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return model.Course{}, common.UserErrorf("id prefix %q matches %d courses; type more of the id", ref, len(matches))
	}
}
