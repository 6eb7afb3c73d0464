package session

import "time"

// Effect is a side effect requested by the Controller. The controller never
// performs I/O or schedules timers itself; the host runs effects and feeds the
// results back through the controller's methods.
type Effect interface {
	effect()
}

// FetchItems asks the host to load the item list for cfg.
// The result goes to Controller.ItemsLoaded.
type FetchItems struct {
	Config Config
}

// StartSession asks the host to open a session with the progress service.
// The result goes to Controller.SessionStarted.
type StartSession struct {
	Config    Config
	ItemCount int
}

// ReportAnswer is a fire-and-forget progress report for one answer.
type ReportAnswer struct {
	SessionID string
	ItemID    string
	Correct   bool
}

// ReportEnd is a fire-and-forget progress report for the end of a session.
type ReportEnd struct {
	SessionID       string
	DurationSeconds int
	TimeUp          bool
}

// ScheduleTick asks the host to call Controller.Tick with Generation after
// the delay.
type ScheduleTick struct {
	Generation int
	After      time.Duration
}

// ScheduleFeedbackClear asks the host to call Controller.FeedbackElapsed
// with Token after the delay.
type ScheduleFeedbackClear struct {
	Token int
	After time.Duration
}

// ReleaseInput tells the host the keyboard subscription is no longer needed.
type ReleaseInput struct{}

func (FetchItems) effect()            {}
func (StartSession) effect()          {}
func (ReportAnswer) effect()          {}
func (ReportEnd) effect()             {}
func (ScheduleTick) effect()          {}
func (ScheduleFeedbackClear) effect() {}
func (ReleaseInput) effect()          {}
