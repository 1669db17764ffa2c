package views

import (
	"strings"
	"testing"
	"time"

	"github.com/prajna-dev/prajna/internal/api"
	"github.com/prajna-dev/prajna/internal/tui"
)

func loadedHistory(subs ...api.Submission) SubmissionsModel {
	m := NewSubmissionsModel(80)
	return m.Update(tui.SubmissionsLoadedMsg{Submissions: subs})
}

func TestCursorClampsToList(t *testing.T) {
	m := loadedHistory(
		api.Submission{ID: 1, Status: api.StatusAccepted, Timestamp: time.Now()},
		api.Submission{ID: 2, Status: api.StatusWrongAnswer, Timestamp: time.Now()},
	)

	m = m.MoveCursor(-1)
	if m.cursor != 0 {
		t.Errorf("cursor: got %d, want 0 at the top", m.cursor)
	}

	m = m.MoveCursor(1)
	m = m.MoveCursor(1)
	m = m.MoveCursor(1)
	if m.cursor != 1 {
		t.Errorf("cursor: got %d, want 1 at the bottom", m.cursor)
	}
}

func TestToggleCodeOnEmptyListIsNoop(t *testing.T) {
	m := loadedHistory()
	m = m.ToggleCode()
	if m.showCode {
		t.Error("code view opened with no submissions")
	}
}

func TestCodeViewShowsSubmittedSource(t *testing.T) {
	m := loadedHistory(api.Submission{
		ID: 1, Status: api.StatusAccepted,
		Timestamp: time.Now(),
		Code:      "print(42)",
	})

	m = m.ToggleCode()
	if !strings.Contains(m.View(), "print(42)") {
		t.Error("code view does not contain the submitted source")
	}

	m = m.ToggleCode()
	if m.showCode {
		t.Error("second toggle should return to the list")
	}
}

func TestReloadResetsOutOfRangeCursor(t *testing.T) {
	m := loadedHistory(
		api.Submission{ID: 1, Status: api.StatusAccepted, Timestamp: time.Now()},
		api.Submission{ID: 2, Status: api.StatusWrongAnswer, Timestamp: time.Now()},
	)
	m = m.MoveCursor(1)

	m = m.Update(tui.SubmissionsLoadedMsg{Submissions: []api.Submission{
		{ID: 3, Status: api.StatusAccepted, Timestamp: time.Now()},
	}})
	if m.cursor != 0 {
		t.Errorf("cursor: got %d, want reset to 0", m.cursor)
	}
}
