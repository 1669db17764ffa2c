// Package views provides TUI view components for the prajna client.
package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/prajna-dev/prajna/internal/api"
	"github.com/prajna-dev/prajna/internal/store"
	"github.com/prajna-dev/prajna/internal/tui"
	"github.com/prajna-dev/prajna/internal/tui/commands"
)

// Languages offered by the workspace, in cycle order.
var workspaceLanguages = []string{"python", "cpp"}

// WorkspaceModel is the view model for the code workspace. It owns the
// three independent action machines (Run, Submit, AI Review) plus the
// shared editor buffer they read from.
type WorkspaceModel struct {
	shared *tui.Model

	// Problem scope; problem is nil in playground mode and scope is
	// then the scratch sentinel.
	problem *api.ProblemDetail
	scope   string

	// Lifetime of this workspace. Every request and poll loop hangs
	// off ctx; teardown cancels them all.
	ctx    context.Context
	cancel context.CancelFunc

	// Editor buffer shared by the three actions. Each action captures
	// it at start time.
	editor     textarea.Model
	stdin      textarea.Model
	stdinOpen  bool
	language   string
	draftDirty bool

	run     tui.RunState
	submit  tui.SubmitState
	review  tui.ReviewState
	outcome *tui.SubmissionOutcome

	// generation invalidates superseded poll loops: every Submit bumps
	// it and all poll messages carry the value they were born with.
	generation int

	submissions SubmissionsModel

	activeTab tui.Tab
	statement viewport.Model
	pane      viewport.Model
	spinner   spinner.Model
	keys      tui.KeyMap

	width  int
	height int
}

// NewWorkspaceModel creates a workspace for the given problem, or the
// scratch playground when problem is nil.
func NewWorkspaceModel(shared *tui.Model, problem *api.ProblemDetail, width, height int) WorkspaceModel {
	scope := store.ScratchScope
	if problem != nil {
		scope = problem.UUID
	}

	ctx, cancel := context.WithCancel(context.Background())

	ed := textarea.New()
	ed.Placeholder = "Write your solution..."
	ed.CharLimit = 0
	ed.Focus()

	in := textarea.New()
	in.Placeholder = "stdin for test runs..."
	in.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tui.WarningStyle

	m := WorkspaceModel{
		shared:      shared,
		problem:     problem,
		scope:       scope,
		ctx:         ctx,
		cancel:      cancel,
		editor:      ed,
		stdin:       in,
		language:    shared.Cfg.Defaults.Language,
		review:      tui.ReviewState{Remaining: -1},
		submissions: NewSubmissionsModel(width),
		activeTab:   tui.TabStatement,
		statement:   viewport.New(width/2, height-8),
		pane:        viewport.New(width/2, height-8),
		spinner:     sp,
		keys:        tui.DefaultKeyMap,
		width:       width,
		height:      height,
	}
	if m.language == "" {
		m.language = "python"
	}
	if problem == nil {
		m.activeTab = tui.TabOutput
	} else {
		m.statement.SetContent(problem.Statement)
	}
	m.layout()
	return m
}

// Init loads the draft, cached review and submission history, and
// starts the periodic draft flush.
func (m WorkspaceModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textarea.Blink,
		m.spinner.Tick,
		commands.LoadDraft(m.shared.Store, m.scope, m.language),
		commands.DraftSaveTick(),
	}
	if m.problem != nil {
		cmds = append(cmds,
			commands.LoadReviewCache(m.shared.Store, m.scope),
			commands.LoadSubmissions(m.ctx, m.shared.Client, m.scope),
		)
	}
	return tea.Batch(cmds...)
}

// Close tears the workspace down: the draft is flushed and every
// outstanding request and poll loop is cancelled.
func (m *WorkspaceModel) Close() {
	_ = m.shared.Store.SaveDraft(m.scope, m.language, m.editor.Value())
	m.cancel()
}

// midFlight reports whether Run or Submit is outstanding. Both action
// triggers and their key chords are disabled while it holds.
func (m WorkspaceModel) midFlight() bool {
	return m.run.Phase == tui.RunInFlight || m.submit.InFlight()
}

// Update handles messages for the workspace.
func (m WorkspaceModel) Update(msg tea.Msg) (WorkspaceModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tui.DraftLoadedMsg:
		// Only apply the draft that matches the active key; a slow
		// load racing a language switch must not clobber the buffer.
		if msg.Scope == m.scope && msg.Language == m.language {
			m.editor.SetValue(msg.Code)
			m.draftDirty = false
		}
		return m, nil

	case tui.DraftSaveTickMsg:
		var cmd tea.Cmd
		if m.draftDirty {
			cmd = commands.SaveDraft(m.shared.Store, m.scope, m.language, m.editor.Value())
			m.draftDirty = false
		}
		return m, tea.Batch(cmd, commands.DraftSaveTick())

	case tui.RunFinishedMsg:
		return m.handleRunFinished(msg)

	case tui.SubmitCreatedMsg:
		return m.handleSubmitCreated(msg)

	case tui.PollTickMsg:
		if m.stalePoll(msg.SubmissionID, msg.Generation) || !m.submit.InFlight() {
			return m, nil
		}
		return m, commands.PollSubmission(m.ctx, m.shared.Client, msg.SubmissionID, msg.Generation)

	case tui.PollResultMsg:
		return m.handlePollResult(msg)

	case tui.ReviewFinishedMsg:
		return m.handleReviewFinished(msg)

	case tui.ReviewCacheLoadedMsg:
		if msg.OK && m.review.Text == "" {
			m.review.Text = msg.Review
			m.review.Remaining = msg.Remaining
		}
		return m, nil

	case tui.SubmissionsLoadedMsg:
		m.submissions = m.submissions.Update(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	}

	return m, nil
}

// handleKey routes key presses. Action chords are checked before the
// editor sees the key so the buffer never swallows a chord.
func (m WorkspaceModel) handleKey(msg tea.KeyMsg) (WorkspaceModel, tea.Cmd) {
	// The result overlay is modal: the next key dismisses it.
	if m.outcome != nil {
		m.outcome = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		return m, func() tea.Msg { return tui.CloseWorkspaceMsg{} }

	case key.Matches(msg, m.keys.Run):
		if m.midFlight() {
			return m, nil
		}
		return m.startRun()

	case key.Matches(msg, m.keys.Submit):
		if m.midFlight() {
			return m, nil
		}
		return m.startSubmit()

	case key.Matches(msg, m.keys.Review):
		if m.midFlight() || m.review.InFlight || m.problem == nil {
			return m, nil
		}
		return m.startReview()

	case key.Matches(msg, m.keys.Language):
		return m.switchLanguage()

	case key.Matches(msg, m.keys.StdinPane):
		m.stdinOpen = !m.stdinOpen
		if m.stdinOpen {
			m.editor.Blur()
			return m, m.stdin.Focus()
		}
		m.stdin.Blur()
		return m, m.editor.Focus()

	case key.Matches(msg, m.keys.Tab):
		m.activeTab = m.nextTab()
		return m, nil

	// The history list owns up/down/enter while its tab is showing.
	case key.Matches(msg, m.keys.Up) && m.activeTab == tui.TabSubmissions:
		m.submissions = m.submissions.MoveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down) && m.activeTab == tui.TabSubmissions:
		m.submissions = m.submissions.MoveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Enter) && m.activeTab == tui.TabSubmissions:
		m.submissions = m.submissions.ToggleCode()
		return m, nil
	}

	// Everything else goes to the focused buffer.
	var cmd tea.Cmd
	if m.stdinOpen {
		m.stdin, cmd = m.stdin.Update(msg)
	} else {
		m.editor, cmd = m.editor.Update(msg)
		m.draftDirty = true
	}
	return m, cmd
}

// ----------------------------------------------------------------------------
// Run
// ----------------------------------------------------------------------------

func (m WorkspaceModel) startRun() (WorkspaceModel, tea.Cmd) {
	m.run.Start()
	m.outcome = nil
	m.activeTab = tui.TabOutput
	m.draftDirty = false
	m.shared.Logger.Info("run started", zap.String("scope", m.scope), zap.String("language", m.language))
	return m, tea.Batch(
		commands.SaveDraft(m.shared.Store, m.scope, m.language, m.editor.Value()),
		commands.RunCode(m.ctx, m.shared.Client, m.editor.Value(), m.language, m.stdin.Value()),
	)
}

func (m WorkspaceModel) handleRunFinished(msg tui.RunFinishedMsg) (WorkspaceModel, tea.Cmd) {
	if m.run.Phase != tui.RunInFlight {
		// Stale response from a cancelled or superseded run.
		return m, nil
	}
	if msg.Err != nil {
		m.run.Phase = tui.RunFailed
		m.run.StatusLabel = "Execution failed"
		m.run.Err = msg.Err.Error()
		m.shared.Logger.Warn("run failed", zap.Error(msg.Err))
		return m, nil
	}
	m.run.Phase = tui.RunDone
	m.run.Output = msg.Result.Output
	m.run.StatusLabel = msg.Result.Status
	m.run.ElapsedMS = msg.Result.TimeMS
	m.run.Err = ""
	return m, nil
}

// ----------------------------------------------------------------------------
// Submit
// ----------------------------------------------------------------------------

func (m WorkspaceModel) startSubmit() (WorkspaceModel, tea.Cmd) {
	if m.problem == nil {
		// Grading needs a problem scope; the playground has none.
		m.submit = tui.SubmitState{Phase: tui.SubmitFailed, Err: "open a problem to submit"}
		return m, nil
	}

	// Superseding submit: bump the generation so any previous poll
	// loop's messages are dropped on arrival.
	m.generation++
	m.submit = tui.SubmitState{Phase: tui.SubmitSending, Generation: m.generation}
	m.outcome = nil
	m.draftDirty = false
	m.shared.Logger.Info("submit started", zap.String("problem", m.scope))
	return m, tea.Batch(
		commands.SaveDraft(m.shared.Store, m.scope, m.language, m.editor.Value()),
		commands.SubmitCode(m.ctx, m.shared.Client, m.editor.Value(), m.language, m.scope, m.generation),
	)
}

func (m WorkspaceModel) handleSubmitCreated(msg tui.SubmitCreatedMsg) (WorkspaceModel, tea.Cmd) {
	if msg.Generation != m.generation {
		return m, nil
	}
	if msg.Err != nil {
		m.submit.Phase = tui.SubmitFailed
		m.submit.Err = msg.Err.Error()
		m.shared.Logger.Warn("submit failed", zap.Error(msg.Err))
		return m, nil
	}
	m.submit.Phase = tui.SubmitQueued
	m.submit.SubmissionID = msg.SubmissionID
	return m, commands.PollTick(m.shared.Cfg.PollInterval(), msg.SubmissionID, msg.Generation)
}

func (m WorkspaceModel) stalePoll(submissionID int64, generation int) bool {
	return generation != m.generation || submissionID != m.submit.SubmissionID
}

func (m WorkspaceModel) handlePollResult(msg tui.PollResultMsg) (WorkspaceModel, tea.Cmd) {
	if m.stalePoll(msg.SubmissionID, msg.Generation) || !m.submit.InFlight() {
		return m, nil
	}

	if msg.Err != nil {
		// One failed poll ends the loop; no retries.
		m.submit.Phase = tui.SubmitFailed
		m.submit.Err = msg.Err.Error()
		m.shared.Logger.Warn("poll failed", zap.Int64("submission", msg.SubmissionID), zap.Error(msg.Err))
		return m, nil
	}

	sub := msg.Submission
	if api.IsTerminalStatus(sub.Status) {
		m.submit.Phase = tui.SubmitDone
		m.submit.Verdict = sub.Status

		message := sub.Output
		if message == "" {
			if sub.Status == api.StatusAccepted {
				message = "All cases passed"
			} else {
				message = "Submission Failed"
			}
		}
		m.outcome = &tui.SubmissionOutcome{
			Status:      sub.Status,
			Message:     message,
			PassedCases: sub.PassedCases,
			TotalCases:  sub.TotalCases,
			Time:        sub.Time,
			Memory:      sub.Memory,
		}
		m.shared.Logger.Info("verdict",
			zap.Int64("submission", sub.ID),
			zap.String("status", sub.Status))

		// Terminal verdict: stop polling and refresh the history list.
		return m, commands.LoadSubmissions(m.ctx, m.shared.Client, m.scope)
	}

	switch sub.Status {
	case api.StatusRunning:
		m.submit.Phase = tui.SubmitRunning
	default:
		m.submit.Phase = tui.SubmitQueued
	}
	return m, commands.PollTick(m.shared.Cfg.PollInterval(), msg.SubmissionID, msg.Generation)
}

// ----------------------------------------------------------------------------
// AI Review
// ----------------------------------------------------------------------------

func (m WorkspaceModel) startReview() (WorkspaceModel, tea.Cmd) {
	m.review.InFlight = true
	m.activeTab = tui.TabReview
	m.shared.Logger.Info("review requested", zap.String("problem", m.scope))
	return m, commands.RequestReview(m.ctx, m.shared.Client, m.editor.Value(), m.language, m.scope)
}

func (m WorkspaceModel) handleReviewFinished(msg tui.ReviewFinishedMsg) (WorkspaceModel, tea.Cmd) {
	m.review.InFlight = false
	if msg.Err != nil {
		// The review pane is the only error surface for this action.
		m.review.Text = "### Error\nFailed to fetch AI review. Please try again.\n\n" + msg.Err.Error()
		return m, nil
	}
	m.review.Text = msg.Review
	m.review.Remaining = msg.Remaining
	return m, commands.SaveReviewCache(m.shared.Store, m.scope, msg.Review, msg.Remaining)
}

// ----------------------------------------------------------------------------
// Language switching
// ----------------------------------------------------------------------------

// switchLanguage flushes the current draft and loads the draft for the
// next language. Drafts for different languages never overwrite each
// other.
func (m WorkspaceModel) switchLanguage() (WorkspaceModel, tea.Cmd) {
	save := commands.SaveDraft(m.shared.Store, m.scope, m.language, m.editor.Value())

	next := workspaceLanguages[0]
	for i, lang := range workspaceLanguages {
		if lang == m.language {
			next = workspaceLanguages[(i+1)%len(workspaceLanguages)]
			break
		}
	}
	m.language = next
	m.draftDirty = false
	return m, tea.Batch(save, commands.LoadDraft(m.shared.Store, m.scope, next))
}

func (m WorkspaceModel) nextTab() tui.Tab {
	tabs := []tui.Tab{tui.TabStatement, tui.TabOutput, tui.TabSubmissions, tui.TabReview}
	if m.problem == nil {
		tabs = []tui.Tab{tui.TabOutput}
	}
	for i, t := range tabs {
		if t == m.activeTab {
			return tabs[(i+1)%len(tabs)]
		}
	}
	return tabs[0]
}

// ----------------------------------------------------------------------------
// View
// ----------------------------------------------------------------------------

func (m *WorkspaceModel) layout() {
	paneWidth := m.width/2 - 4
	if paneWidth < 20 {
		paneWidth = 20
	}
	paneHeight := m.height - 8
	if paneHeight < 5 {
		paneHeight = 5
	}

	editorHeight := paneHeight
	if m.stdinOpen {
		editorHeight = paneHeight - 6
		m.stdin.SetWidth(paneWidth)
		m.stdin.SetHeight(4)
	}
	m.editor.SetWidth(paneWidth)
	m.editor.SetHeight(editorHeight)

	m.statement.Width = paneWidth
	m.statement.Height = paneHeight
	m.pane.Width = paneWidth
	m.pane.Height = paneHeight
}

// View renders the workspace: editor on the left, tabbed pane on the
// right, a status footer, and the one-shot result overlay when a
// verdict has just arrived.
func (m WorkspaceModel) View() string {
	if m.outcome != nil {
		overlay := RenderOutcome(m.outcome, m.width)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}

	left := m.renderEditorPane()
	right := m.renderTabPane()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m WorkspaceModel) renderHeader() string {
	title := "Playground"
	if m.problem != nil {
		title = m.problem.Title
	}
	header := tui.TitleStyle.Render(title)
	lang := tui.DimStyle.Render(fmt.Sprintf("[%s]", m.language))
	return lipgloss.JoinHorizontal(lipgloss.Top, header, " ", lang)
}

func (m WorkspaceModel) renderEditorPane() string {
	var b strings.Builder
	b.WriteString(m.editor.View())
	if m.stdinOpen {
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("stdin:"))
		b.WriteString("\n")
		b.WriteString(m.stdin.View())
	}
	return b.String()
}

func (m WorkspaceModel) renderTabPane() string {
	var b strings.Builder
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")

	switch m.activeTab {
	case tui.TabStatement:
		b.WriteString(m.statement.View())
	case tui.TabOutput:
		b.WriteString(m.renderOutput())
	case tui.TabSubmissions:
		b.WriteString(m.submissions.View())
	case tui.TabReview:
		b.WriteString(m.renderReview())
	}
	return b.String()
}

func (m WorkspaceModel) renderTabBar() string {
	type tab struct {
		name string
		id   tui.Tab
	}
	tabs := []tab{
		{"Description", tui.TabStatement},
		{"Output", tui.TabOutput},
		{"Submissions", tui.TabSubmissions},
		{"AI Review", tui.TabReview},
	}
	if m.problem == nil {
		tabs = []tab{{"Output", tui.TabOutput}}
	}

	var rendered []string
	for _, t := range tabs {
		if t.id == m.activeTab {
			rendered = append(rendered, tui.ActiveTabStyle.Render(t.name))
		} else {
			rendered = append(rendered, tui.InactiveTabStyle.Render(t.name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m WorkspaceModel) renderOutput() string {
	var b strings.Builder
	switch m.run.Phase {
	case tui.RunIdle:
		b.WriteString(tui.DimStyle.Render("Run your code to see output here."))
	case tui.RunInFlight:
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), m.run.StatusLabel))
	case tui.RunDone:
		b.WriteString(tui.SuccessStyle.Render(m.run.StatusLabel))
		if m.run.ElapsedMS != nil {
			b.WriteString(tui.DimStyle.Render(fmt.Sprintf("  %.0f ms", *m.run.ElapsedMS)))
		}
		b.WriteString("\n\n")
		b.WriteString(m.run.Output)
	case tui.RunFailed:
		b.WriteString(tui.ErrorStyle.Render(m.run.StatusLabel))
		b.WriteString("\n\n")
		b.WriteString(tui.ErrorStyle.Render(m.run.Err))
	}
	return b.String()
}

func (m WorkspaceModel) renderReview() string {
	var b strings.Builder
	if m.review.InFlight {
		b.WriteString(fmt.Sprintf("%s Reviewing your code...", m.spinner.View()))
		return b.String()
	}
	if m.review.Remaining >= 0 {
		b.WriteString(tui.DimStyle.Render(fmt.Sprintf("%d reviews left today", m.review.Remaining)))
		b.WriteString("\n\n")
	}
	if m.review.Text == "" {
		b.WriteString(tui.DimStyle.Render("Request an AI review of your solution."))
	} else {
		b.WriteString(m.review.Text)
	}
	return b.String()
}

func (m WorkspaceModel) renderFooter() string {
	var status string
	if m.submit.Phase == tui.SubmitFailed && m.submit.Err != "" {
		status = tui.ErrorStyle.Render(fmt.Sprintf("Submit: %s (%s)", m.submit.StatusLabel(), m.submit.Err))
	} else if m.submit.InFlight() {
		status = fmt.Sprintf("%s Submit: %s", m.spinner.View(), m.submit.StatusLabel())
	} else {
		status = tui.DimStyle.Render("Submit: " + m.submit.StatusLabel())
	}

	hints := "ctrl+r: Run  ctrl+s: Submit  ctrl+g: AI Review  ctrl+l: Language  ctrl+e: Stdin  tab: Panes  esc: Back"
	if m.midFlight() {
		hints = "waiting for the judge..."
	}
	return status + "\n" + tui.DimStyle.Render(hints)
}
