package views

import (
	"fmt"
	"strings"

	"github.com/prajna-dev/prajna/internal/api"
	"github.com/prajna-dev/prajna/internal/tui"
)

// SubmissionsModel renders the submission history for the open problem.
// The workspace refreshes it whenever a new terminal verdict arrives;
// up/down select an attempt and enter toggles its code.
type SubmissionsModel struct {
	submissions []api.Submission
	loaded      bool
	err         string
	cursor      int
	showCode    bool
	width       int
}

// NewSubmissionsModel creates an empty history list.
func NewSubmissionsModel(width int) SubmissionsModel {
	return SubmissionsModel{width: width}
}

// Update applies a loaded history snapshot. The selection is kept where
// possible; a shrunken list resets it.
func (m SubmissionsModel) Update(msg tui.SubmissionsLoadedMsg) SubmissionsModel {
	if msg.Err != nil {
		m.err = msg.Err.Error()
		m.loaded = true
		return m
	}
	m.submissions = msg.Submissions
	m.err = ""
	m.loaded = true
	if m.cursor >= len(m.submissions) {
		m.cursor = 0
		m.showCode = false
	}
	return m
}

// MoveCursor moves the selection by delta, clamped to the list.
func (m SubmissionsModel) MoveCursor(delta int) SubmissionsModel {
	if m.showCode || len(m.submissions) == 0 {
		return m
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.submissions) {
		m.cursor = len(m.submissions) - 1
	}
	return m
}

// ToggleCode shows or hides the selected attempt's submitted code.
func (m SubmissionsModel) ToggleCode() SubmissionsModel {
	if len(m.submissions) == 0 {
		return m
	}
	m.showCode = !m.showCode
	return m
}

// View renders the history, newest first.
func (m SubmissionsModel) View() string {
	if m.err != "" {
		return tui.ErrorStyle.Render("Failed to load submissions: " + m.err)
	}
	if !m.loaded {
		return tui.DimStyle.Render("Loading submissions...")
	}
	if len(m.submissions) == 0 {
		return tui.DimStyle.Render("No submissions yet. Submit your code to see results here.")
	}

	if m.showCode {
		return m.viewCode()
	}

	var b strings.Builder
	for i, sub := range m.submissions {
		if i == m.cursor {
			b.WriteString(tui.SelectedStyle.Render("> "))
		} else {
			b.WriteString("  ")
		}
		verdict := tui.VerdictStyle(sub.Status).Render(api.StatusLabel(sub.Status))
		b.WriteString(verdict)
		b.WriteString("  ")
		b.WriteString(tui.DimStyle.Render(sub.Timestamp.Local().Format("2006-01-02 15:04")))
		b.WriteString("  ")
		b.WriteString(tui.DimStyle.Render(sub.Language))
		b.WriteString("\n")

		b.WriteString("    ")
		b.WriteString(formatCases(sub))
		if sub.Time != nil {
			b.WriteString(fmt.Sprintf("  %s", formatSeconds(*sub.Time)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("up/down: select  enter: view code"))
	return b.String()
}

// viewCode renders the submitted source of the selected attempt.
func (m SubmissionsModel) viewCode() string {
	sub := m.submissions[m.cursor]

	var b strings.Builder
	b.WriteString(tui.VerdictStyle(sub.Status).Render(api.StatusLabel(sub.Status)))
	b.WriteString("  ")
	b.WriteString(tui.DimStyle.Render(sub.Timestamp.Local().Format("2006-01-02 15:04")))
	b.WriteString("  ")
	b.WriteString(tui.DimStyle.Render(sub.Language))
	b.WriteString("\n\n")
	if sub.Code == "" {
		b.WriteString(tui.DimStyle.Render("(code not available)"))
	} else {
		b.WriteString(sub.Code)
	}
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("enter: back to list"))
	return b.String()
}

func formatCases(sub api.Submission) string {
	switch {
	case sub.Status == api.StatusAccepted:
		return tui.SuccessStyle.Render("All passed")
	case sub.Status == api.StatusPending || sub.Status == api.StatusRunning:
		return tui.WarningStyle.Render("Running...")
	case sub.PassedCases > 0:
		return fmt.Sprintf("%d / %d passed", sub.PassedCases, sub.TotalCases)
	default:
		return tui.DimStyle.Render("None passed")
	}
}

func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%.0f ms", seconds*1000)
}
