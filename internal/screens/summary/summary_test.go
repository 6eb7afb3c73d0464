package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/session"
)

func testSummary() session.Summary {
	return session.Summary{
		Total:           10,
		Correct:         7,
		Incorrect:       3,
		Accuracy:        70,
		DurationSeconds: 95,
		Mode:            session.ModeQuiz,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), "Animals")
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary(), "Animals")
	view := s.View(100, 24)
	for _, want := range []string{"Session complete!", "Animals", "70%", "1:35", "quiz"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if strings.Contains(view, "not reached") {
		t.Error("complete session should not report unreached items")
	}
}

func TestSummaryScreen_TimeUp(t *testing.T) {
	sum := testSummary()
	sum.TimeUp = true
	sum.Correct, sum.Incorrect, sum.Accuracy = 2, 1, 20

	view := New(sum, "").View(100, 24)
	if !strings.Contains(view, "Time's up!") {
		t.Error("expected time-up headline")
	}
	if !strings.Contains(view, "7 items not reached") {
		t.Error("expected unreached item count")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary(), "")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary(), "")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary(), "")
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
