package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/session"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/layout"
	"github.com/abhisek/tango/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary session.Summary
	title   string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. title names what was studied.
func New(summary session.Summary, title string) *SummaryScreen {
	return &SummaryScreen{summary: summary, title: title}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder

	headline := "Session complete!"
	if sum.TimeUp {
		headline = "Time's up!"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(headline))
	b.WriteString("\n")
	if s.title != "" {
		b.WriteString(theme.Subtitle.Width(width).Render(s.title))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %s    Mode: %s", layout.FormatClock(sum.DurationSeconds), sum.Mode)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Items: %d        Correct: %d        Incorrect: %d        Accuracy: %d%%",
		sum.Total, sum.Correct, sum.Incorrect, sum.Accuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	bar := components.AnswerBar{
		Label:        "Accuracy",
		Correct:      sum.Correct,
		Incorrect:    sum.Incorrect,
		Total:        sum.Total,
		Width:        min(width-8, 60),
		ShowAccuracy: true,
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")

	if skipped := sum.Total - sum.Correct - sum.Incorrect; skipped > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render(fmt.Sprintf("%d items not reached", skipped))))
		b.WriteString("\n")
	}

	return b.String()
}
