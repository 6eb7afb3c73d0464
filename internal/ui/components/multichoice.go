package components

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/abhisek/tango/internal/ui/theme"
)

// MultiChoice renders a numbered option list. Options are chosen by
// number; once Chosen is set every option is shown disabled, with the
// correct one highlighted.
type MultiChoice struct {
	Options      []string
	CorrectIndex int
	// Chosen is the picked option, or -1 while unanswered.
	Chosen int
}

// NewMultiChoice creates an unanswered option list.
func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		Chosen:       -1,
	}
}

// View renders the options padded to a common cell width so the list
// stays aligned when labels mix CJK and Latin text.
func (m MultiChoice) View() string {
	width := 0
	for _, opt := range m.Options {
		width = max(width, runewidth.StringWidth(opt))
	}

	var b strings.Builder
	for i, opt := range m.Options {
		line := fmt.Sprintf(" %d) %s ", i+1, runewidth.FillRight(opt, width))
		switch {
		case m.Chosen < 0:
			line = theme.Unselected.Render(line)
		case i == m.CorrectIndex:
			line = theme.Correct.Render(line + "✓")
		case i == m.Chosen:
			line = theme.Incorrect.Render(line + "✗")
		default:
			line = theme.Disabled.Render(line)
		}
		b.WriteString(line)
		if i < len(m.Options)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
