package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/tango/internal/session"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/theme"
	"github.com/abhisek/tango/internal/vocab"
)

func (s *SessionScreen) View(width, height int) string {
	st := s.ctrl.State()
	switch st.Lifecycle {
	case sess.LifecycleSetup:
		if st.Empty != sess.EmptyNone {
			return renderEmpty(width, st.Empty)
		}
		return renderLoading(width)
	case sess.LifecycleFinished:
		return center(width, theme.Hint.Render("\n\n\n  Session complete."))
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}

	current, ok := s.ctrl.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(renderInfoLine(st, width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	switch st.Mode {
	case sess.ModeFlashcard:
		b.WriteString(renderFlashcard(current, st.Flipped, width))
	case sess.ModeQuiz:
		b.WriteString(renderQuiz(current, st.Quiz, width))
	case sess.ModeTyping:
		b.WriteString(s.renderTyping(current, st.Feedback, width))
	}

	if st.Feedback != sess.FeedbackNone {
		b.WriteString("\n\n")
		b.WriteString(renderFeedback(st.Feedback, width))
	}
	return b.String()
}

func renderInfoLine(st sess.State, width int) string {
	total := len(st.Items)
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %d/%d", st.Mode, st.CurrentIndex+1, total))

	right := fmt.Sprintf("%s %d  %s %d",
		theme.Correct.Render("✓"), st.Stats.Correct,
		theme.Incorrect.Render("✗"), st.Stats.Incorrect)

	barWidth := width - lipgloss.Width(left) - lipgloss.Width(right) - 8
	bar := ""
	if barWidth >= 10 && total > 0 {
		bar = components.AnswerBar{
			Correct:   st.Stats.Correct,
			Incorrect: st.Stats.Incorrect,
			Total:     total,
			Width:     barWidth,
		}.View()
	}

	line := left + "  " + bar
	pad := width - lipgloss.Width(line) - lipgloss.Width(right) - 4
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func renderFlashcard(item vocab.StudyItem, flipped bool, width int) string {
	dc := vocab.Normalize(item)

	var card strings.Builder
	if dc.Reading != "" {
		card.WriteString(theme.Reading.Render(dc.Reading))
		card.WriteString("\n")
	}
	card.WriteString(theme.Term.Render(dc.Term))
	card.WriteString("\n\n")
	if flipped {
		card.WriteString(theme.Meaning.Render(dc.English))
		card.WriteString("\n\n")
		card.WriteString(theme.Incorrect.Render("← Again") + "    " + theme.Correct.Render("Got it →"))
	} else {
		card.WriteString(theme.Hint.Render("space to flip"))
	}

	box := theme.Card.
		Width(min(width-8, 50)).
		Align(lipgloss.Center).
		Render(card.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func renderQuiz(item vocab.StudyItem, q *sess.QuizQuestion, width int) string {
	if q == nil {
		return ""
	}
	labels := make([]string, len(q.Options))
	correct := -1
	for i, opt := range q.Options {
		labels[i] = q.OptionLabel(i)
		if opt.ID == item.ID {
			correct = i
		}
	}
	mc := components.NewMultiChoice(labels, correct)
	mc.Chosen = q.Selected

	var b strings.Builder
	b.WriteString(center(width, theme.Term.Render(q.Prompt(item))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, mc.View()))
	return b.String()
}

func (s *SessionScreen) renderTyping(item vocab.StudyItem, fb sess.Feedback, width int) string {
	dc := vocab.Normalize(item)

	var b strings.Builder
	b.WriteString(center(width, theme.Term.Render(dc.Term)))
	b.WriteString("\n")
	b.WriteString(center(width, theme.Meaning.Render(dc.English)))
	b.WriteString("\n\n")
	b.WriteString(center(width, "Reading: "+s.input.View()))
	if fb == sess.FeedbackIncorrect {
		b.WriteString("\n")
		b.WriteString(center(width, theme.Hint.Render("answer: "+dc.Reading)))
	}
	return b.String()
}

func renderFeedback(fb sess.Feedback, width int) string {
	if fb == sess.FeedbackCorrect {
		return center(width, theme.Correct.Render("Correct!"))
	}
	return center(width, theme.Incorrect.Render("Not quite"))
}

func renderEmpty(width int, reason sess.EmptyReason) string {
	headline, detail := "No items to study", "This source has nothing to show."
	if reason == sess.EmptyAllCaughtUp {
		headline, detail = "All caught up!", "Nothing is due for review right now."
	}
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center(width, theme.Title.Render(headline)))
	b.WriteString("\n")
	b.WriteString(center(width, theme.Subtitle.Render(detail)))
	b.WriteString("\n\n")
	b.WriteString(center(width, theme.Hint.Render("Press any key to go back.")))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center(width, theme.Term.Render("End session early?")))
	b.WriteString("\n")
	b.WriteString(center(width, theme.Subtitle.Render("Answers so far are kept.")))
	b.WriteString("\n\n")
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] Yes, end session")))
	b.WriteString("\n")
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep going")))
	return b.String()
}

func renderLoading(width int) string {
	return center(width, theme.Hint.Render("\n\n\n  Preparing your session..."))
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
