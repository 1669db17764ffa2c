package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/prajna-dev/prajna/internal/api"
)

// Color constants.
const (
	primaryColor   = "#7C3AED" // Purple
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// SelectedStyle highlights selected items in primary color.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders accepted verdicts and success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages and rejecting verdicts.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders intermediate statuses in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// ActiveTabStyle renders the active workspace tab.
	ActiveTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(primaryColor)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 2)

	// InactiveTabStyle renders inactive workspace tabs.
	InactiveTabStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#374151")).
				Foreground(lipgloss.Color("#9CA3AF")).
				Padding(0, 2)

	// OverlayStyle frames the one-shot submission result overlay.
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 3)
)

// VerdictStyle picks the style for a submission status code.
func VerdictStyle(status string) lipgloss.Style {
	switch status {
	case api.StatusAccepted:
		return SuccessStyle
	case api.StatusPending, api.StatusRunning:
		return WarningStyle
	default:
		return ErrorStyle
	}
}
