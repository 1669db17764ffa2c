package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/prajna-dev/prajna/internal/api"
	"github.com/prajna-dev/prajna/internal/tui"
)

// problemItem adapts an api.ProblemSummary to the bubbles list.
type problemItem struct {
	problem api.ProblemSummary
}

func (i problemItem) Title() string       { return i.problem.Title }
func (i problemItem) Description() string { return i.problem.Difficulty }
func (i problemItem) FilterValue() string { return i.problem.Title }

// ProblemsModel is the problem picker screen.
type ProblemsModel struct {
	list   list.Model
	loaded bool
	err    string
	keys   tui.KeyMap
	width  int
	height int
}

// NewProblemsModel creates the picker with an empty list.
func NewProblemsModel(width, height int) ProblemsModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), width-4, height-6)
	l.Title = "Problems"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return ProblemsModel{
		list:   l,
		keys:   tui.DefaultKeyMap,
		width:  width,
		height: height,
	}
}

// Init is a no-op; the app issues the initial problem load.
func (m ProblemsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m ProblemsModel) Update(msg tea.Msg) (ProblemsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.ProblemsLoadedMsg:
		m.loaded = true
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.err = ""
		items := make([]list.Item, len(msg.Problems))
		for i, p := range msg.Problems {
			items[i] = problemItem{problem: p}
		}
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		// Let the list's filter input take precedence over shortcuts.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Enter):
			if item, ok := m.list.SelectedItem().(problemItem); ok {
				uuid := item.problem.UUID
				return m, func() tea.Msg { return tui.OpenProblemMsg{UUID: uuid} }
			}
			return m, nil
		case msg.String() == "p":
			return m, func() tea.Msg { return tui.OpenPlaygroundMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m ProblemsModel) View() string {
	if m.err != "" {
		body := tui.ErrorStyle.Render("Failed to load problems: "+m.err) + "\n\n" +
			tui.DimStyle.Render("p: Playground  ctrl+c: Exit")
		return tui.BoxStyle.Render(body)
	}
	if !m.loaded {
		return tui.BoxStyle.Render(tui.DimStyle.Render("Loading problems..."))
	}

	footer := tui.DimStyle.Render(fmt.Sprintf("%d problems  |  enter: Open  p: Playground  ctrl+c: Exit", len(m.list.Items())))
	return m.list.View() + "\n" + footer
}
