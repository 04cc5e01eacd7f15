// Package sheets publishes the course catalog to a Google Sheets spreadsheet.
package sheets

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/edubridge/internal/common"
)

// Config holds the configuration for the Google Sheets publisher.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	SheetTitle         string
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableFormatting: true,
		SpreadsheetName:  "EduBridge Course Catalog",
		SheetTitle:       "Courses",
		TimeZone:         "Asia/Kuala_Lumpur",
		BatchSize:        500,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
	}
}

// LoadFromEnv fills unset credentials from EDUBRIDGE_SHEETS_* variables.
func (c *Config) LoadFromEnv() {
	setIfEmpty(&c.ClientID, "EDUBRIDGE_SHEETS_CLIENT_ID")
	setIfEmpty(&c.ClientSecret, "EDUBRIDGE_SHEETS_CLIENT_SECRET")
	setIfEmpty(&c.RefreshToken, "EDUBRIDGE_SHEETS_REFRESH_TOKEN")
	setIfEmpty(&c.ServiceAccountPath, "EDUBRIDGE_SHEETS_SERVICE_ACCOUNT_PATH")
	setIfEmpty(&c.SpreadsheetID, "EDUBRIDGE_SHEETS_SPREADSHEET_ID")
}

func setIfEmpty(dst *string, env string) {
	if *dst == "" {
		*dst = os.Getenv(env)
	}
}

// authMethod names the credential set in use, or "" when none is complete.
func (c *Config) authMethod() (string, error) {
	oauth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	service := c.ServiceAccountPath != ""
	switch {
	case oauth && service:
		return "", fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or a service account", common.ErrInvalidConfig)
	case oauth:
		return "oauth2", nil
	case service:
		return "service_account", nil
	}
	return "", fmt.Errorf("%w: no authentication method configured; run 'edubridge auth sheets' or set sheets.service_account_path", common.ErrMissingConfig)
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.authMethod(); err != nil {
		errs = append(errs, err)
	}

	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{common.ErrInvalidConfig}, args...)...))
	}
	if strings.TrimSpace(c.SheetTitle) == "" {
		invalid("sheet title is required")
	}
	if c.BatchSize <= 0 {
		invalid("batch size must be positive")
	}
	if c.RetryAttempts < 0 {
		invalid("retry attempts cannot be negative")
	}
	if c.RetryDelay < 0 {
		invalid("retry delay cannot be negative")
	}
	if c.TimeZone != "" {
		if _, err := time.LoadLocation(c.TimeZone); err != nil {
			invalid("unknown time zone %q", c.TimeZone)
		}
	}

	return errors.Join(errs...)
}
