package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/progress"
	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/ui/layout"
	"github.com/abhisek/tango/internal/ui/theme"
)

// Limit is how many sessions the screen loads.
const Limit = 50

type historyLoadedMsg struct {
	Sessions []progress.SessionRecord
	Err      error
}

// HistoryScreen displays past sessions.
type HistoryScreen struct {
	history  progress.History
	userID   string
	sessions []progress.SessionRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen for userID.
func New(history progress.History, userID string) *HistoryScreen {
	return &HistoryScreen{
		history:  history,
		userID:   userID,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	hist, user := s.history, s.userID
	return func() tea.Msg {
		sessions, err := hist.RecentSessions(context.Background(), user, Limit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start studying!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-6s  %-9s  %s  %d/%d correct  %d%%",
			prefix,
			rec.StartedAt.Local().Format("Jan 02 15:04"),
			rec.Source,
			rec.Mode,
			layout.FormatClock(rec.DurationSeconds),
			rec.Correct, rec.ItemCount,
			rec.Accuracy())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range details(rec) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("    "+d)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func details(rec progress.SessionRecord) []string {
	var out []string
	if rec.TopicID != "" {
		out = append(out, "Topic: "+rec.TopicID)
	}
	out = append(out, fmt.Sprintf("Answered %d of %d, %d missed", rec.Correct+rec.Incorrect, rec.ItemCount, rec.Incorrect))
	switch {
	case rec.EndedAt == nil:
		out = append(out, "Not finished")
	case rec.TimeUp:
		out = append(out, "Ended when time ran out")
	}
	return out
}
