package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindcart/mindcart/internal/session"
)

// Run starts the interactive shopping interface over a session and
// blocks until the shopper quits.
func Run(ctx context.Context, sess *session.Session) error {
	program := tea.NewProgram(New(sess),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("shopping interface failed: %w", err)
	}
	return nil
}
