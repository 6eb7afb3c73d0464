// Package progress records study outcomes. Reports are best-effort: a lost
// report is lost telemetry, never a failure of the local session.
package progress

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/tango/internal/session"
)

// ErrUnknownSession is returned when a report names a session the service
// has no record of.
var ErrUnknownSession = errors.New("progress: unknown session")

// StartRequest opens a session.
type StartRequest struct {
	UserID    string `json:"user_id"`
	Source    string `json:"source" validate:"required,oneof=topic review test"`
	TopicID   string `json:"topic_id,omitempty"`
	Mode      string `json:"mode" validate:"required,oneof=flashcard quiz typing"`
	ItemCount int    `json:"item_count" validate:"gte=1"`
	TimeLimit int    `json:"time_limit" validate:"gte=0"`
}

// Answer is the result for one item.
type Answer struct {
	ItemID  string `json:"item_id" validate:"required"`
	Correct bool   `json:"correct"`
}

// End closes a session.
type End struct {
	DurationSeconds int  `json:"duration_seconds" validate:"gte=0"`
	TimeUp          bool `json:"time_up"`
}

// Service accepts progress events keyed by session id.
type Service interface {
	StartSession(ctx context.Context, req StartRequest) (string, error)
	SubmitAnswer(ctx context.Context, sessionID string, a Answer) error
	EndSession(ctx context.Context, sessionID string, e End) error
}

// SessionRecord is a stored session as shown in history.
type SessionRecord struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Source          string     `json:"source"`
	TopicID         string     `json:"topic_id,omitempty"`
	Mode            string     `json:"mode"`
	ItemCount       int        `json:"item_count"`
	Correct         int        `json:"correct"`
	Incorrect       int        `json:"incorrect"`
	DurationSeconds int        `json:"duration_seconds"`
	TimeUp          bool       `json:"time_up"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
}

// Accuracy returns the rounded percentage of correct answers over the
// session's item count.
func (r SessionRecord) Accuracy() int {
	return session.Accuracy(r.Correct, r.ItemCount)
}

// History lists recorded sessions, newest first.
type History interface {
	RecentSessions(ctx context.Context, userID string, limit int) ([]SessionRecord, error)
}
