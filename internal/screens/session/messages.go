package session

import (
	"github.com/abhisek/tango/internal/vocab"
)

// itemsLoadedMsg carries the content store's answer to a fetch.
type itemsLoadedMsg struct {
	Items []vocab.StudyItem
	Err   error
}

// sessionStartedMsg carries the progress service's session id.
type sessionStartedMsg struct {
	ID  string
	Err error
}

// tickMsg is one timer tick armed under Generation.
type tickMsg struct {
	Generation int
}

// feedbackClearMsg closes the feedback window opened with Token.
type feedbackClearMsg struct {
	Token int
}
