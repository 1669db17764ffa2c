package views

import (
	"fmt"
	"strings"

	"github.com/prajna-dev/prajna/internal/api"
	"github.com/prajna-dev/prajna/internal/tui"
)

// RenderOutcome renders the one-shot submission result overlay. It is
// shown while the workspace holds a published outcome and dismissed by
// the next key press.
func RenderOutcome(outcome *tui.SubmissionOutcome, width int) string {
	var b strings.Builder

	verdict := tui.VerdictStyle(outcome.Status).Bold(true).Render(api.StatusLabel(outcome.Status))
	b.WriteString(verdict)
	b.WriteString("\n\n")

	b.WriteString(outcome.Message)
	b.WriteString("\n\n")

	if outcome.TotalCases > 0 {
		b.WriteString(fmt.Sprintf("Test cases: %d / %d\n", outcome.PassedCases, outcome.TotalCases))
	}
	if outcome.Time != nil {
		b.WriteString(fmt.Sprintf("Time: %.0f ms\n", *outcome.Time*1000))
	}
	if outcome.Memory != nil {
		b.WriteString(fmt.Sprintf("Memory: %.0f KB\n", *outcome.Memory))
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Press any key to close"))

	boxWidth := 50
	if width-4 < boxWidth {
		boxWidth = width - 4
	}
	return tui.OverlayStyle.Width(boxWidth).Render(b.String())
}
