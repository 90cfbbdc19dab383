package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperclay/ledgerdiff/internal/model"
)

// Run launches the review session and returns the corrections the user
// made. A quit without saving returns no corrections and no error.
func Run(ctx context.Context, transactions []model.Transaction) ([]Correction, error) {
	program := tea.NewProgram(
		NewModel(transactions),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("review session failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected final model type %T", final)
	}
	return m.Corrections(), nil
}
