// Package app provides the main TUI application that wires all views
// together.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/prajna-dev/prajna/internal/tui"
	"github.com/prajna-dev/prajna/internal/tui/commands"
	"github.com/prajna-dev/prajna/internal/tui/views"
)

// App is the main TUI application.
type App struct {
	model *tui.Model

	problemsView  views.ProblemsModel
	workspaceView views.WorkspaceModel
	hasWorkspace  bool

	// openPlayground skips the picker and goes straight to the scratch
	// workspace (prajna --playground).
	openPlayground bool
}

// New creates a new App around the shared model.
func New(model *tui.Model, playground bool) *App {
	return &App{
		model:          model,
		problemsView:   views.NewProblemsModel(model.Width, model.Height),
		openPlayground: playground,
	}
}

// Init returns the initial command for the TUI.
func (a *App) Init() tea.Cmd {
	if a.openPlayground {
		return func() tea.Msg { return tui.OpenPlaygroundMsg{} }
	}
	return commands.LoadProblems(context.Background(), a.model.Client)
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		var cmd tea.Cmd
		switch a.model.State {
		case tui.StateProblems:
			a.problemsView, cmd = a.problemsView.Update(msg)
		case tui.StateWorkspace:
			a.workspaceView, cmd = a.workspaceView.Update(msg)
		}
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if a.hasWorkspace {
				a.workspaceView.Close()
			}
			return a, tea.Quit
		}

	case tui.OpenProblemMsg:
		return a, commands.LoadProblem(context.Background(), a.model.Client, msg.UUID)

	case tui.ProblemLoadedMsg:
		if msg.Err != nil {
			a.model.Err = msg.Err
			a.model.Logger.Warn("problem load failed", zap.Error(msg.Err))
			return a, nil
		}
		a.model.Problem = msg.Problem
		return a, a.openWorkspace()

	case tui.OpenPlaygroundMsg:
		a.model.Problem = nil
		return a, a.openWorkspace()

	case tui.CloseWorkspaceMsg:
		if a.hasWorkspace {
			a.workspaceView.Close()
			a.hasWorkspace = false
		}
		a.model.State = tui.StateProblems
		a.model.Problem = nil
		return a, commands.LoadProblems(context.Background(), a.model.Client)
	}

	// Route everything else to the active screen.
	switch a.model.State {
	case tui.StateProblems:
		var cmd tea.Cmd
		a.problemsView, cmd = a.problemsView.Update(msg)
		return a, cmd

	case tui.StateWorkspace:
		var cmd tea.Cmd
		a.workspaceView, cmd = a.workspaceView.Update(msg)
		return a, cmd
	}

	return a, nil
}

// openWorkspace tears down any previous workspace and creates a fresh
// one for the current problem (or the playground).
func (a *App) openWorkspace() tea.Cmd {
	if a.hasWorkspace {
		a.workspaceView.Close()
	}
	a.workspaceView = views.NewWorkspaceModel(a.model, a.model.Problem, a.model.Width, a.model.Height)
	a.hasWorkspace = true
	a.model.State = tui.StateWorkspace
	return a.workspaceView.Init()
}

// View renders the current application state.
func (a *App) View() string {
	switch a.model.State {
	case tui.StateProblems:
		return a.problemsView.View()
	case tui.StateWorkspace:
		return a.workspaceView.View()
	}
	return ""
}
