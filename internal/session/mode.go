package session

import (
	"strings"

	"github.com/abhisek/tango/internal/vocab"
)

// Direction is the prompt direction of a quiz question.
type Direction int

const (
	// Forward prompts with the term and offers English meanings.
	Forward Direction = iota
	// Reverse prompts with the English meaning and offers terms.
	Reverse
)

// QuizQuestion is the option set for the current item in quiz mode.
type QuizQuestion struct {
	ItemID    string
	Direction Direction
	Options   []vocab.StudyItem
	// Selected is the chosen option index, or -1 before a choice is made.
	Selected int
}

// Answered reports whether an option was chosen. All options are disabled
// afterwards.
func (q *QuizQuestion) Answered() bool {
	return q.Selected >= 0
}

// Prompt returns the text shown above the options.
func (q *QuizQuestion) Prompt(current vocab.StudyItem) string {
	dc := vocab.Normalize(current)
	if q.Direction == Reverse {
		return dc.English
	}
	return dc.Term
}

// OptionLabel returns how option i is rendered for the question direction.
func (q *QuizQuestion) OptionLabel(i int) string {
	if i < 0 || i >= len(q.Options) {
		return ""
	}
	dc := vocab.Normalize(q.Options[i])
	if q.Direction == Reverse {
		if dc.Reading == "" {
			return dc.Term
		}
		return dc.Term + " (" + dc.Reading + ")"
	}
	return dc.English
}

func newQuizQuestion(current vocab.StudyItem, pool []vocab.StudyItem, sampler *vocab.Sampler) *QuizQuestion {
	dir := Forward
	if sampler.Rand().IntN(2) == 1 {
		dir = Reverse
	}
	return &QuizQuestion{
		ItemID:    current.ID,
		Direction: dir,
		Options:   sampler.Sample(current, pool),
		Selected:  -1,
	}
}

// CheckTyped grades free-text input against an item's reading. Comparison
// ignores case and surrounding whitespace.
func CheckTyped(input string, item vocab.StudyItem) bool {
	want := vocab.Normalize(item).Reading
	return strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(want))
}
