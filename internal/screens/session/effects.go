package session

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tango/internal/content"
	"github.com/abhisek/tango/internal/progress"
	sess "github.com/abhisek/tango/internal/session"
)

var errNoProgress = errors.New("no progress service configured")

// run turns controller effects into commands. ReleaseInput is applied
// immediately; everything else becomes a command whose result, if any,
// comes back through Update.
func (s *SessionScreen) run(effects []sess.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		switch e := e.(type) {
		case sess.FetchItems:
			cmds = append(cmds, fetchItems(s.deps.Content, e.Config, s.deps.UserID))
		case sess.StartSession:
			cmds = append(cmds, startSession(s.deps.Reporter, e, s.deps.UserID))
		case sess.ReportAnswer:
			cmds = append(cmds, reportAnswer(s.deps.Reporter, e))
		case sess.ReportEnd:
			cmds = append(cmds, reportEnd(s.deps.Reporter, e))
		case sess.ScheduleTick:
			gen := e.Generation
			cmds = append(cmds, tea.Tick(e.After, func(time.Time) tea.Msg {
				return tickMsg{Generation: gen}
			}))
		case sess.ScheduleFeedbackClear:
			token := e.Token
			cmds = append(cmds, tea.Tick(e.After, func(time.Time) tea.Msg {
				return feedbackClearMsg{Token: token}
			}))
		case sess.ReleaseInput:
			s.sub.Release()
		}
	}
	return tea.Batch(cmds...)
}

func fetchItems(store content.Store, cfg sess.Config, userID string) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return itemsLoadedMsg{Err: errors.New("no content store configured")}
		}
		items, err := content.Fetch(context.Background(), store, cfg, userID)
		return itemsLoadedMsg{Items: items, Err: err}
	}
}

func startSession(r *progress.Reporter, e sess.StartSession, userID string) tea.Cmd {
	return func() tea.Msg {
		if r == nil {
			return sessionStartedMsg{Err: errNoProgress}
		}
		id, err := r.Start(context.Background(), progress.StartRequest{
			UserID:    userID,
			Source:    string(e.Config.Source),
			TopicID:   e.Config.TopicID,
			Mode:      e.Config.Mode.String(),
			ItemCount: e.ItemCount,
			TimeLimit: e.Config.TimeLimit,
		})
		return sessionStartedMsg{ID: id, Err: err}
	}
}

// Reports are fire-and-forget: the reporter logs failures and the
// command delivers no message.

func reportAnswer(r *progress.Reporter, e sess.ReportAnswer) tea.Cmd {
	if r == nil {
		return nil
	}
	return func() tea.Msg {
		r.Answer(context.Background(), e.SessionID, progress.Answer{ItemID: e.ItemID, Correct: e.Correct})
		return nil
	}
}

func reportEnd(r *progress.Reporter, e sess.ReportEnd) tea.Cmd {
	if r == nil {
		return nil
	}
	return func() tea.Msg {
		r.End(context.Background(), e.SessionID, progress.End{DurationSeconds: e.DurationSeconds, TimeUp: e.TimeUp})
		return nil
	}
}
