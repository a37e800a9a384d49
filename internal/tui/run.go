package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive form and blocks until the user quits.
func Run(ctx context.Context, ctrl Controller) error {
	model := NewModel(ctx, ctrl)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
