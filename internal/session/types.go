package session

import (
	"fmt"
	"strings"
	"time"
)

// FeedbackWindow is how long answer feedback stays up. Input is rejected
// while it is showing.
const FeedbackWindow = 500 * time.Millisecond

// TickInterval is the period of the session timer.
const TickInterval = time.Second

// Mode is the presentation mode of a session.
type Mode int

const (
	ModeFlashcard Mode = iota
	ModeQuiz
	ModeTyping
)

// Modes lists every mode in cycling order.
var Modes = []Mode{ModeFlashcard, ModeQuiz, ModeTyping}

func (m Mode) String() string {
	switch m {
	case ModeFlashcard:
		return "flashcard"
	case ModeQuiz:
		return "quiz"
	case ModeTyping:
		return "typing"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Next returns the mode after m in cycling order.
func (m Mode) Next() Mode {
	return Modes[(int(m)+1)%len(Modes)]
}

// ParseMode parses a mode name as printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flashcard", "flashcards", "card":
		return ModeFlashcard, nil
	case "quiz":
		return ModeQuiz, nil
	case "typing", "type":
		return ModeTyping, nil
	}
	return ModeFlashcard, fmt.Errorf("unknown mode %q", s)
}

// Feedback is the transient grading state shown after an answer.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackIncorrect
)

// Lifecycle is the coarse session state. Finished is terminal.
type Lifecycle int

const (
	LifecycleSetup Lifecycle = iota
	LifecycleActive
	LifecycleFinished
)

func (l Lifecycle) String() string {
	switch l {
	case LifecycleSetup:
		return "setup"
	case LifecycleActive:
		return "active"
	case LifecycleFinished:
		return "finished"
	}
	return fmt.Sprintf("lifecycle(%d)", int(l))
}

// Source selects where session items come from.
type Source string

const (
	SourceTopic  Source = "topic"
	SourceReview Source = "review"
	SourceTest   Source = "test"
)

// ParseSource validates a source name.
func ParseSource(s string) (Source, error) {
	switch src := Source(strings.ToLower(strings.TrimSpace(s))); src {
	case SourceTopic, SourceReview, SourceTest:
		return src, nil
	}
	return "", fmt.Errorf("unknown source %q", s)
}

// EmptyReason explains why a session never became active.
type EmptyReason int

const (
	EmptyNone EmptyReason = iota
	// EmptyAllCaughtUp means the review queue had nothing due.
	EmptyAllCaughtUp
	// EmptyNoItems means a topic or test source produced nothing.
	EmptyNoItems
)

// Config is an accepted session configuration.
type Config struct {
	Source   Source
	TopicID  string
	TopicIDs []string
	Count    int
	Mode     Mode
	// TimeLimit in seconds. Zero selects stopwatch mode.
	TimeLimit int
}

// Stats counts graded answers.
type Stats struct {
	Correct   int
	Incorrect int
}

// Answered returns the number of graded answers.
func (s Stats) Answered() int {
	return s.Correct + s.Incorrect
}
