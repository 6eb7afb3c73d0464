package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tango/internal/content"
	"github.com/abhisek/tango/internal/router"
	sessionscreen "github.com/abhisek/tango/internal/screens/session"
	"github.com/abhisek/tango/internal/session"
	"github.com/abhisek/tango/internal/vocab"
)

type emptyStore struct{}

func (emptyStore) Topics(context.Context) ([]vocab.Topic, error) { return nil, nil }
func (emptyStore) ItemsByTopic(context.Context, string) ([]vocab.StudyItem, error) {
	return nil, nil
}
func (emptyStore) DueForReview(context.Context, string) ([]vocab.StudyItem, error) {
	return nil, nil
}
func (emptyStore) GenerateTest(context.Context, content.TestRequest) ([]vocab.StudyItem, error) {
	return nil, nil
}

func TestStudyOptionPushesSession(t *testing.T) {
	m := newAppModel(Options{
		Content: emptyStore{},
		Study:   &session.Config{Source: session.SourceReview},
	})

	msg := m.Init()()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		t.Fatalf("Init produced %T, want a batch", msg)
	}
	var push router.PushScreenMsg
	for _, cmd := range batch {
		if p, ok := cmd().(router.PushScreenMsg); ok {
			push = p
		}
	}
	if _, ok := push.Screen.(*sessionscreen.SessionScreen); !ok {
		t.Fatalf("expected a session screen push, got %T", push.Screen)
	}
}

func TestEscGoesToBackHandler(t *testing.T) {
	m := newAppModel(Options{Content: emptyStore{}})
	s := sessionscreen.New(session.Config{Source: session.SourceReview}, "", sessionscreen.Deps{Content: emptyStore{}})
	m.router.Push(s)

	// The session screen is still loading, so esc asks it to go back
	// itself rather than the app popping it.
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected the session screen to answer esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg from the session screen")
	}
	if m.router.Depth() != 2 {
		t.Error("app must not pop a back-handling screen itself")
	}
}

func TestEscAtHomeIsNoop(t *testing.T) {
	m := newAppModel(Options{Content: emptyStore{}})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the home screen should do nothing")
	}
}
