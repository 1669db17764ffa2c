// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prajna-dev/prajna/internal/api"
	"github.com/prajna-dev/prajna/internal/tui"
)

// RunCode executes the buffer ad hoc against the judge. The buffer is
// captured at call time; edits made while the request is outstanding do
// not affect it.
func RunCode(ctx context.Context, client *api.Client, code, language, input string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Execute(ctx, api.ExecuteRequest{
			Code:      code,
			Language:  language,
			InputData: input,
		})
		return tui.RunFinishedMsg{Result: result, Err: err}
	}
}

// SubmitCode creates a graded submission. The generation is threaded
// through every message of the resulting poll loop so a superseding
// submit can invalidate it.
func SubmitCode(ctx context.Context, client *api.Client, code, language, problemUUID string, generation int) tea.Cmd {
	return func() tea.Msg {
		id, err := client.Submit(ctx, api.SubmitRequest{
			Code:        code,
			Language:    language,
			ProblemUUID: problemUUID,
		})
		return tui.SubmitCreatedMsg{SubmissionID: id, Generation: generation, Err: err}
	}
}

// PollTick schedules the next poll cycle for a submission.
func PollTick(interval time.Duration, submissionID int64, generation int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tui.PollTickMsg{SubmissionID: submissionID, Generation: generation}
	})
}

// PollSubmission fetches the current status of a submission once.
// Ticks are strictly sequential: the next PollTick is only scheduled
// after this message has been processed.
func PollSubmission(ctx context.Context, client *api.Client, submissionID int64, generation int) tea.Cmd {
	return func() tea.Msg {
		sub, err := client.Submission(ctx, submissionID)
		return tui.PollResultMsg{
			SubmissionID: submissionID,
			Generation:   generation,
			Submission:   sub,
			Err:          err,
		}
	}
}

// RequestReview asks the judge for an AI review of the buffer.
func RequestReview(ctx context.Context, client *api.Client, code, language, problemUUID string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Review(ctx, api.ReviewRequest{
			Code:        code,
			Language:    language,
			ProblemUUID: problemUUID,
		})
		if err != nil {
			return tui.ReviewFinishedMsg{Err: err}
		}
		return tui.ReviewFinishedMsg{Review: resp.Review, Remaining: resp.RemainingRequests}
	}
}

// LoadSubmissions fetches the submission history for a problem.
func LoadSubmissions(ctx context.Context, client *api.Client, problemUUID string) tea.Cmd {
	return func() tea.Msg {
		subs, err := client.Submissions(ctx, problemUUID)
		return tui.SubmissionsLoadedMsg{Submissions: subs, Err: err}
	}
}
