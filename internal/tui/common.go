// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run starts the TUI program with the given model.
// If stdout is a TTY, it runs in alternate screen mode.
// Otherwise, it points the user at the plain CLI commands.
func Run(m tea.Model) error {
	if IsTTY() {
		p := tea.NewProgram(m, tea.WithAltScreen())
		_, err := p.Run()
		return err
	}
	fmt.Println("Non-TTY environment detected.")
	fmt.Println("Use 'prajna run <file>' or 'prajna submissions <problem-uuid>' instead.")
	return nil
}
