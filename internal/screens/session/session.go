package session

import (
	"log/slog"
	"math/rand/v2"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tango/internal/content"
	"github.com/abhisek/tango/internal/progress"
	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/screens/summary"
	sess "github.com/abhisek/tango/internal/session"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/layout"
	"github.com/abhisek/tango/internal/vocab"
)

// Deps are the collaborators of a session screen.
type Deps struct {
	Content  content.Store
	Reporter *progress.Reporter
	UserID   string
	Logger   *slog.Logger
	// Rand drives quiz distractors and directions. Nil seeds a fresh one.
	Rand *rand.Rand
}

// SessionScreen hosts one study session. The controller holds all session
// state; the screen turns keys into controller calls and effects into
// commands.
type SessionScreen struct {
	deps  Deps
	log   *slog.Logger
	ctrl  *sess.Controller
	sub   *sess.Subscription
	input components.TextInput
	title string

	confirmQuit bool
	finished    bool
	closed      bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)
var _ screen.BackHandler = (*SessionScreen)(nil)
var _ screen.Closer = (*SessionScreen)(nil)

// New creates a session screen for cfg. title names the source in the
// header, e.g. the topic name.
func New(cfg sess.Config, title string, deps Deps) *SessionScreen {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	rng := deps.Rand
	if rng == nil {
		rng = vocab.NewRand()
	}
	return &SessionScreen{
		deps:  deps,
		log:   log.With("component", "session", "source", string(cfg.Source)),
		ctrl:  sess.NewController(cfg, vocab.NewSampler(rng)),
		input: components.NewTextInput("type the reading...", 64),
		title: title,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.run(s.ctrl.Start())
}

func (s *SessionScreen) Title() string {
	if s.title == "" {
		return "Study"
	}
	return "Study: " + s.title
}

// Status shows the countdown or stopwatch while the session runs.
func (s *SessionScreen) Status() string {
	st := s.ctrl.State()
	if st.Lifecycle == sess.LifecycleSetup {
		return ""
	}
	if st.Countdown {
		return "⏱ " + layout.FormatClock(st.TimeLeft)
	}
	return "⏱ " + layout.FormatClock(st.ElapsedSeconds)
}

// HandlesBack is always true: Esc asks before abandoning an active session.
func (s *SessionScreen) HandlesBack() bool { return true }

// Close abandons the session. Pending ticks and feedback clears become
// no-ops and the key subscription is released. No end report is sent.
func (s *SessionScreen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.run(s.ctrl.Close())
	s.sub.Release()
}

// Controller exposes the session state for inspection.
func (s *SessionScreen) Controller() *sess.Controller { return s.ctrl }

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	st := s.ctrl.State()
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if st.Lifecycle != sess.LifecycleActive {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if st.Feedback != sess.FeedbackNone {
		return nil
	}
	var hints []layout.KeyHint
	switch st.Mode {
	case sess.ModeFlashcard:
		if st.Flipped {
			hints = append(hints,
				layout.KeyHint{Key: "→/1", Description: "Knew it"},
				layout.KeyHint{Key: "←/2", Description: "Missed it"})
		} else {
			hints = append(hints, layout.KeyHint{Key: "Space", Description: "Flip"})
		}
		hints = append(hints, layout.KeyHint{Key: "Q/T", Description: "Quiz/Typing"})
	case sess.ModeQuiz:
		hints = append(hints,
			layout.KeyHint{Key: "1-4", Description: "Answer"},
			layout.KeyHint{Key: "F/T", Description: "Flashcard/Typing"})
	case sess.ModeTyping:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
	}
	return append(hints,
		layout.KeyHint{Key: "Tab", Description: "Mode"},
		layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.closed {
		return s, nil
	}

	switch msg := msg.(type) {
	case itemsLoadedMsg:
		if msg.Err != nil {
			s.log.Error("loading items failed", "error", msg.Err)
		}
		return s, s.run(s.ctrl.ItemsLoaded(msg.Items, msg.Err))

	case sessionStartedMsg:
		cmd := s.run(s.ctrl.SessionStarted(msg.ID, msg.Err))
		s.sub = sess.Subscribe(s.ctrl)
		if s.ctrl.State().Mode == sess.ModeTyping {
			cmd = tea.Batch(cmd, s.input.Reset())
		}
		return s, cmd

	case tickMsg:
		return s.settle(s.run(s.ctrl.Tick(msg.Generation)))

	case feedbackClearMsg:
		cmd := s.run(s.ctrl.FeedbackElapsed(msg.Token))
		if s.ctrl.CanAnswer() && s.input.Submitted() {
			cmd = tea.Batch(cmd, s.input.Reset())
		}
		return s.settle(cmd)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and similar messages belong to the text input.
	if s.ctrl.State().Mode == sess.ModeTyping {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// settle hands over to the summary once the session has finished.
func (s *SessionScreen) settle(cmd tea.Cmd) (screen.Screen, tea.Cmd) {
	if s.finished || s.ctrl.State().Lifecycle != sess.LifecycleFinished {
		return s, cmd
	}
	s.finished = true
	s.sub.Release()
	s.confirmQuit = false
	sum := summary.New(s.ctrl.Summary(), s.title)
	return s, tea.Batch(cmd, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: sum}
	})
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := keyName(msg)
	st := s.ctrl.State()

	switch st.Lifecycle {
	case sess.LifecycleSetup:
		// Loading or empty: any key on the empty state goes back.
		if st.Empty != sess.EmptyNone || key == "esc" {
			return s, pop
		}
		return s, nil
	case sess.LifecycleFinished:
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, pop
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	before := st.Mode
	effects, handled := s.sub.Dispatch(key, false)
	if handled {
		cmd := s.run(effects)
		if after := s.ctrl.State().Mode; after != before && after == sess.ModeTyping {
			cmd = tea.Batch(cmd, s.input.Reset())
		}
		return s.settle(cmd)
	}

	if st.Mode != sess.ModeTyping || !s.ctrl.CanAnswer() {
		return s, nil
	}
	if key == "enter" {
		cmd := s.run(s.ctrl.SubmitTyped(s.input.Value()))
		s.input.Submit(s.ctrl.State().Feedback == sess.FeedbackCorrect)
		return s.settle(cmd)
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// keyName returns the key in the form the input router matches on.
func keyName(msg tea.KeyPressMsg) string {
	k := msg.String()
	if k == " " {
		return "space"
	}
	return k
}

func pop() tea.Msg { return router.PopScreenMsg{} }
