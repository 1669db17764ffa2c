package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prajna-dev/prajna/internal/api"
	"github.com/prajna-dev/prajna/internal/store"
	"github.com/prajna-dev/prajna/internal/tui"
)

// draftFlushInterval is how often a dirty editor buffer is written to
// the draft store. Saving per keystroke would hit sqlite on every key.
const draftFlushInterval = 2 * time.Second

// LoadProblems fetches the problem list for the picker.
func LoadProblems(ctx context.Context, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		probs, err := client.Problems(ctx)
		return tui.ProblemsLoadedMsg{Problems: probs, Err: err}
	}
}

// LoadProblem fetches one problem with its statement.
func LoadProblem(ctx context.Context, client *api.Client, uuid string) tea.Cmd {
	return func() tea.Msg {
		prob, err := client.Problem(ctx, uuid)
		return tui.ProblemLoadedMsg{Problem: prob, Err: err}
	}
}

// LoadDraft reads the saved draft (or the language template) for a key.
func LoadDraft(st *store.Store, scope, language string) tea.Cmd {
	return func() tea.Msg {
		code, err := st.LoadDraft(scope, language)
		if err != nil {
			// A broken draft store must not block the editor; fall
			// back to the template.
			code = store.DefaultDraft(language)
		}
		return tui.DraftLoadedMsg{Scope: scope, Language: language, Code: code}
	}
}

// SaveDraft persists the buffer for a key. Fire and forget; a failed
// save only loses the local cache, never graded state.
func SaveDraft(st *store.Store, scope, language, code string) tea.Cmd {
	return func() tea.Msg {
		_ = st.SaveDraft(scope, language, code)
		return nil
	}
}

// DraftSaveTick schedules the next periodic draft flush.
func DraftSaveTick() tea.Cmd {
	return tea.Tick(draftFlushInterval, func(time.Time) tea.Msg {
		return tui.DraftSaveTickMsg{}
	})
}

// LoadReviewCache reads the cached AI review for a scope.
func LoadReviewCache(st *store.Store, scope string) tea.Cmd {
	return func() tea.Msg {
		review, remaining, ok, err := st.LoadReview(scope)
		if err != nil {
			return tui.ReviewCacheLoadedMsg{OK: false}
		}
		return tui.ReviewCacheLoadedMsg{Review: review, Remaining: remaining, OK: ok}
	}
}

// SaveReviewCache persists a successful AI review for a scope.
func SaveReviewCache(st *store.Store, scope, review string, remaining int) tea.Cmd {
	return func() tea.Msg {
		_ = st.SaveReview(scope, review, remaining)
		return nil
	}
}
