package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the terminal UI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, h Handler, w *Widget) error {
	m := NewModel(ctx, h, w)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	w.Bind(p.Send)
	defer w.Bind(nil)

	_, err := p.Run()
	return err
}
