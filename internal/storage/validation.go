// Package storage provides the persistence backends for the catalog state.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var (
	ErrNilContext = errors.New("context cannot be nil")
	ErrInvalidKey = errors.New("invalid state key")
	ErrInvalidDSN = errors.New("invalid postgres dsn")
	ErrEmptyPath  = errors.New("database path cannot be empty")
)

const keyPrefix = "edubridge_"

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateKey accepts only the application's own namespaced keys.
func validateKey(key string) error {
	if key == "" || strings.TrimSpace(key) != key {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if !strings.HasPrefix(key, keyPrefix) || len(key) == len(keyPrefix) {
		return fmt.Errorf("%w: %q must start with %s", ErrInvalidKey, key, keyPrefix)
	}
	return nil
}

func validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrEmptyPath
	}
	return nil
}

// validateDSN accepts both the URL and the key=value forms lib/pq understands.
func validateDSN(dsn string) error {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return fmt.Errorf("%w: empty", ErrInvalidDSN)
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		if _, err := pq.ParseURL(dsn); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDSN, err)
		}
		return nil
	}
	if !strings.Contains(dsn, "=") {
		return fmt.Errorf("%w: expected a URL or key=value pairs", ErrInvalidDSN)
	}
	return nil
}
