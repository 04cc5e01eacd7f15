package tui

import (
	"context"

	"github.com/Veraticus/edubridge/internal/catalog"
	"github.com/Veraticus/edubridge/internal/model"
	"github.com/Veraticus/edubridge/internal/tui/themes"
)

// CatalogStore is the part of the catalog store the browser reads and
// mutates.
type CatalogStore interface {
	Courses() []model.Course
	Rate() float64
	Options() catalog.Options
	Remove(ctx context.Context, id string) (bool, error)
}

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Width     int
	Height    int
	ShowStats bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Width:     100,
		Height:    30,
		ShowStats: true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithStats toggles the summary panel above the list.
func WithStats(show bool) Option {
	return func(c *Config) {
		c.ShowStats = show
	}
}
