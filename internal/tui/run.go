package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/edubridge/internal/assistant"
)

// Run starts the browser in the alternate screen and blocks until the user
// quits or ctx is canceled.
func Run(ctx context.Context, store CatalogStore, session *assistant.Session, opts ...Option) error {
	if store == nil {
		return fmt.Errorf("catalog store is required")
	}

	m := New(ctx, store, session, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("catalog browser: %w", err)
	}
	return nil
}
