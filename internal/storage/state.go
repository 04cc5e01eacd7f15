package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Veraticus/edubridge/internal/common"
	"github.com/Veraticus/edubridge/internal/model"
)

// Fixed, versioned keys for the two persisted values.
const (
	CatalogKey = "edubridge_courses_v2"
	RateKey    = "edubridge_rate"
)

// keyValue runs the backend-specific statements against the app_state table.
type keyValue struct {
	db        *sql.DB
	getQuery  string
	putQuery  string
	delQuery  string
	keysQuery string
}

func (kv keyValue) get(ctx context.Context, key string) (string, error) {
	var value string
	err := kv.db.QueryRowContext(ctx, kv.getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (kv keyValue) put(ctx context.Context, key, value string) error {
	if _, err := kv.db.ExecContext(ctx, kv.putQuery, key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (kv keyValue) delete(ctx context.Context, key string) error {
	if _, err := kv.db.ExecContext(ctx, kv.delQuery, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (kv keyValue) keys(ctx context.Context) ([]string, error) {
	rows, err := kv.db.QueryContext(ctx, kv.keysQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// stateStore implements catalog.Persister on top of a keyValue backend.
type stateStore struct {
	kv keyValue
}

// LoadCatalog reads the saved catalog. It wraps common.ErrNotFound when none
// has been saved and common.ErrDatabaseCorrupted when the value is not valid JSON.
func (s stateStore) LoadCatalog(ctx context.Context) ([]model.Course, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	raw, err := s.kv.get(ctx, CatalogKey)
	if err != nil {
		return nil, err
	}

	var courses []model.Course
	if err := json.Unmarshal([]byte(raw), &courses); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrDatabaseCorrupted, CatalogKey, err)
	}
	return courses, nil
}

// SaveCatalog replaces the saved catalog.
func (s stateStore) SaveCatalog(ctx context.Context, courses []model.Course) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if courses == nil {
		courses = []model.Course{}
	}

	data, err := json.Marshal(courses)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return s.kv.put(ctx, CatalogKey, string(data))
}

// LoadRate reads the saved exchange rate.
func (s stateStore) LoadRate(ctx context.Context) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	raw, err := s.kv.get(ctx, RateKey)
	if err != nil {
		return 0, err
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", common.ErrDatabaseCorrupted, RateKey, err)
	}
	return rate, nil
}

// SaveRate replaces the saved exchange rate.
func (s stateStore) SaveRate(ctx context.Context, rate float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.kv.put(ctx, RateKey, strconv.FormatFloat(rate, 'f', -1, 64))
}

// Clear removes both saved values so the next load falls back to defaults.
func (s stateStore) Clear(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := s.kv.delete(ctx, CatalogKey); err != nil {
		return err
	}
	return s.kv.delete(ctx, RateKey)
}

// Keys lists every stored key.
func (s stateStore) Keys(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.kv.keys(ctx)
}

// putRaw stores an arbitrary value; tests use it to plant malformed data.
func (s stateStore) putRaw(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return s.kv.put(ctx, key, value)
}
