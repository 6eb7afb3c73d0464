package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/ui/theme"
)

// AnswerBar draws a session's answers as one bar: correct answers first,
// then misses, then the items still ahead.
type AnswerBar struct {
	Label     string
	Correct   int
	Incorrect int
	Total     int
	Width     int

	// ShowCount appends "answered/total".
	ShowCount bool
	// ShowAccuracy appends correct answers as a percentage of Total.
	ShowAccuracy bool
}

// Answered returns the number of graded items.
func (b AnswerBar) Answered() int {
	return b.Correct + b.Incorrect
}

// Accuracy returns round(Correct / Total * 100), or 0 for an empty session.
func (b AnswerBar) Accuracy() int {
	if b.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(b.Correct) / float64(b.Total) * 100))
}

// segments splits width cells into correct, missed and remaining runs.
// Missed cells are measured from the answered edge so the three always sum
// to width.
func (b AnswerBar) segments(width int) (correct, missed, rest int) {
	if b.Total <= 0 || width <= 0 {
		return 0, 0, max(width, 0)
	}
	scale := func(n int) int {
		return min(max(width*n/b.Total, 0), width)
	}
	correct = scale(b.Correct)
	answered := max(scale(b.Answered()), correct)
	return correct, answered - correct, width - answered
}

func (b AnswerBar) suffix() string {
	var parts []string
	if b.ShowCount {
		parts = append(parts, fmt.Sprintf("%d/%d", b.Answered(), b.Total))
	}
	if b.ShowAccuracy {
		parts = append(parts, fmt.Sprintf("%d%%", b.Accuracy()))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, "  ")
}

// View renders the bar in Width cells.
func (b AnswerBar) View() string {
	var out strings.Builder

	if b.Label != "" {
		out.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(b.Label))
		out.WriteString("  ")
	}
	suffix := b.suffix()

	barWidth := max(b.Width-lipgloss.Width(out.String())-lipgloss.Width(suffix), 4)
	correct, missed, rest := b.segments(barWidth)

	out.WriteString(lipgloss.NewStyle().Background(theme.Success).Render(strings.Repeat(" ", correct)))
	out.WriteString(lipgloss.NewStyle().Background(theme.Error).Render(strings.Repeat(" ", missed)))
	out.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", rest)))

	if suffix != "" {
		out.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}
	return out.String()
}
