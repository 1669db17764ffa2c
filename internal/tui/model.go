// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"go.uber.org/zap"

	"github.com/prajna-dev/prajna/internal/api"
	"github.com/prajna-dev/prajna/internal/config"
	"github.com/prajna-dev/prajna/internal/store"
)

// ViewState represents the current screen of the TUI.
type ViewState int

const (
	StateProblems ViewState = iota // Problem picker
	StateWorkspace
)

// Tab represents the active right-pane tab inside the workspace.
type Tab int

const (
	TabStatement Tab = iota
	TabOutput
	TabSubmissions
	TabReview
)

// RunPhase is the lifecycle of the ad-hoc Run action.
type RunPhase int

const (
	RunIdle RunPhase = iota
	RunInFlight
	RunDone
	RunFailed
)

// RunState holds the ephemeral result of the latest Run.
type RunState struct {
	Phase       RunPhase
	Output      string
	StatusLabel string
	ElapsedMS   *float64
	Err         string
}

// Start clears the previous result and marks the run in flight.
func (r *RunState) Start() {
	*r = RunState{Phase: RunInFlight, StatusLabel: "Running code..."}
}

// SubmitPhase is the lifecycle of the graded Submit action.
type SubmitPhase int

const (
	SubmitReady SubmitPhase = iota
	SubmitSending // create request in flight, no id yet
	SubmitQueued  // judge reported P
	SubmitRunning // judge reported R
	SubmitDone    // terminal verdict received
	SubmitFailed  // transport or validation failure
)

// SubmitState tracks one graded attempt from creation to verdict.
// Generation distinguishes poll loops: messages from a superseded loop
// carry an older generation and are dropped.
type SubmitState struct {
	Phase        SubmitPhase
	SubmissionID int64
	Generation   int
	Verdict      string // terminal status code once Phase == SubmitDone
	Err          string
}

// InFlight reports whether a submission is between creation and verdict.
func (s SubmitState) InFlight() bool {
	switch s.Phase {
	case SubmitSending, SubmitQueued, SubmitRunning:
		return true
	}
	return false
}

// StatusLabel returns the label shown in the workspace footer.
func (s SubmitState) StatusLabel() string {
	switch s.Phase {
	case SubmitReady:
		return "Ready"
	case SubmitSending:
		return "Submitting..."
	case SubmitQueued:
		return "Pending"
	case SubmitRunning:
		return "Running"
	case SubmitDone:
		return api.StatusLabel(s.Verdict)
	case SubmitFailed:
		return "Error"
	}
	return "Ready"
}

// ReviewState holds the AI review surface. Errors are rendered inline
// in Text; there is no separate error channel.
type ReviewState struct {
	InFlight  bool
	Text      string
	Remaining int // -1 when unknown
}

// SubmissionOutcome is the record published for the result overlay once
// a submission reaches a terminal status.
type SubmissionOutcome struct {
	Status      string
	Message     string
	PassedCases int
	TotalCases  int
	Time        *float64
	Memory      *float64
}

// Model holds state shared across TUI screens.
type Model struct {
	State  ViewState
	Cfg    *config.Config
	Client *api.Client
	Store  *store.Store
	Logger *zap.Logger

	// Currently opened problem; nil in playground mode.
	Problem *api.ProblemDetail

	Width  int
	Height int
	Err    error
}

// NewModel creates the shared model with default dimensions.
func NewModel(cfg *config.Config, client *api.Client, st *store.Store, logger *zap.Logger) *Model {
	return &Model{
		State:  StateProblems,
		Cfg:    cfg,
		Client: client,
		Store:  st,
		Logger: logger,
		Width:  80,
		Height: 24,
	}
}
