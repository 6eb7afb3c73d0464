// Package api holds the JSON wire types shared by the tango server and the
// HTTP client.
package api

import (
	"github.com/abhisek/tango/internal/progress"
	"github.com/abhisek/tango/internal/vocab"
)

// Route paths, relative to the server root.
const (
	PathHealth   = "/healthz"
	PathTopics   = "/api/topics"
	PathReview   = "/api/review"
	PathTests    = "/api/tests"
	PathSessions = "/api/sessions"
)

// TopicItemsPath returns the item list path for a topic.
func TopicItemsPath(topicID string) string {
	return PathTopics + "/" + topicID + "/items"
}

// AnswersPath returns the answer submission path for a session.
func AnswersPath(sessionID string) string {
	return PathSessions + "/" + sessionID + "/answers"
}

// EndPath returns the end-of-session path for a session.
func EndPath(sessionID string) string {
	return PathSessions + "/" + sessionID + "/end"
}

// TopicsResponse lists topics.
type TopicsResponse struct {
	Topics []vocab.Topic `json:"topics"`
}

// ItemsResponse carries study items.
type ItemsResponse struct {
	Items []vocab.StudyItem `json:"items"`
}

// StartSessionResponse returns the id of a new session.
type StartSessionResponse struct {
	SessionID string `json:"session_id"`
}

// SessionsResponse lists recorded sessions.
type SessionsResponse struct {
	Sessions []progress.SessionRecord `json:"sessions"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
