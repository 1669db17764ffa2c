// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/prajna-dev/prajna/internal/api"
)

// ============================================================================
// Run Messages
// ============================================================================

// RunFinishedMsg carries the outcome of an ad-hoc Run request.
type RunFinishedMsg struct {
	Result *api.ExecuteResult
	Err    error
}

// ============================================================================
// Submit Messages
// ============================================================================

// SubmitCreatedMsg signals that the judge accepted (or rejected) a new
// submission. Generation ties the message to the submit that issued it.
type SubmitCreatedMsg struct {
	SubmissionID int64
	Generation   int
	Err          error
}

// PollTickMsg fires one poll cycle for a submission.
type PollTickMsg struct {
	SubmissionID int64
	Generation   int
}

// PollResultMsg carries one polled submission status.
type PollResultMsg struct {
	SubmissionID int64
	Generation   int
	Submission   *api.Submission
	Err          error
}

// ============================================================================
// AI Review Messages
// ============================================================================

// ReviewFinishedMsg carries the outcome of an AI review request.
type ReviewFinishedMsg struct {
	Review    string
	Remaining int
	Err       error
}

// ============================================================================
// Data Messages
// ============================================================================

// SubmissionsLoadedMsg delivers the submission history for a problem.
type SubmissionsLoadedMsg struct {
	Submissions []api.Submission
	Err         error
}

// ProblemsLoadedMsg delivers the problem list for the picker.
type ProblemsLoadedMsg struct {
	Problems []api.ProblemSummary
	Err      error
}

// ProblemLoadedMsg delivers one problem with its statement.
type ProblemLoadedMsg struct {
	Problem *api.ProblemDetail
	Err     error
}

// DraftLoadedMsg delivers the saved draft (or template) for a key.
type DraftLoadedMsg struct {
	Scope    string
	Language string
	Code     string
}

// DraftSaveTickMsg triggers a periodic flush of a dirty editor buffer.
type DraftSaveTickMsg struct{}

// ReviewCacheLoadedMsg delivers the cached AI review for a scope.
type ReviewCacheLoadedMsg struct {
	Review    string
	Remaining int
	OK        bool
}

// ============================================================================
// Navigation Messages
// ============================================================================

// OpenProblemMsg asks the app to open a workspace for a problem.
type OpenProblemMsg struct {
	UUID string
}

// OpenPlaygroundMsg asks the app to open the scratch workspace.
type OpenPlaygroundMsg struct{}

// CloseWorkspaceMsg asks the app to tear the workspace down and return
// to the problem picker.
type CloseWorkspaceMsg struct{}

// ============================================================================
// Utility Messages
// ============================================================================

// ErrorMsg is a generic error message for unrecoverable errors.
type ErrorMsg struct {
	Err error
}
