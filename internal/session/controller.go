package session

import (
	"github.com/abhisek/tango/internal/vocab"
)

// State is a read-only snapshot of a session.
type State struct {
	Items        []vocab.StudyItem
	CurrentIndex int
	Stats        Stats
	Mode         Mode
	Feedback     Feedback
	SessionID    string
	Lifecycle    Lifecycle
	// TimeLeft is meaningful only when Countdown is true.
	TimeLeft       int
	Countdown      bool
	ElapsedSeconds int
	TimeUp         bool
	Empty          EmptyReason
	// Flipped is the flashcard phase of the current item.
	Flipped bool
	// Quiz is the option set of the current item while in quiz mode.
	Quiz *QuizQuestion
}

// Controller owns a study session. All mutation goes through its methods,
// which are called from a single goroutine (the UI event loop). Methods
// return the effects the host must run.
type Controller struct {
	cfg     Config
	sampler *vocab.Sampler
	timer   Timer

	items     []vocab.StudyItem
	index     int
	stats     Stats
	mode      Mode
	feedback  Feedback
	sessionID string
	lifecycle Lifecycle
	timeUp    bool
	empty     EmptyReason
	flipped   bool
	quiz      *QuizQuestion

	// feedbackToken identifies the pending feedback clear. Bumping it
	// invalidates any clear still in flight.
	feedbackToken int
	fetchErr      error
}

// NewController creates a controller for cfg in the Setup state.
func NewController(cfg Config, sampler *vocab.Sampler) *Controller {
	if sampler == nil {
		sampler = vocab.NewSampler(nil)
	}
	return &Controller{
		cfg:     cfg,
		sampler: sampler,
		timer:   NewTimer(cfg.TimeLimit),
		mode:    cfg.Mode,
	}
}

// Config returns the accepted configuration.
func (c *Controller) Config() Config { return c.cfg }

// State returns a snapshot of the session.
func (c *Controller) State() State {
	timeLeft, countdown := c.timer.TimeLeft()
	return State{
		Items:          c.items,
		CurrentIndex:   c.index,
		Stats:          c.stats,
		Mode:           c.mode,
		Feedback:       c.feedback,
		SessionID:      c.sessionID,
		Lifecycle:      c.lifecycle,
		TimeLeft:       timeLeft,
		Countdown:      countdown,
		ElapsedSeconds: c.timer.Elapsed(),
		TimeUp:         c.timeUp,
		Empty:          c.empty,
		Flipped:        c.flipped,
		Quiz:           c.quiz,
	}
}

// Current returns the item being studied.
func (c *Controller) Current() (vocab.StudyItem, bool) {
	if c.index < 0 || c.index >= len(c.items) {
		return vocab.StudyItem{}, false
	}
	return c.items[c.index], true
}

// FetchErr returns the error of the last failed item fetch, if any.
func (c *Controller) FetchErr() error { return c.fetchErr }

// Start requests the item list.
func (c *Controller) Start() []Effect {
	if c.lifecycle != LifecycleSetup || c.items != nil {
		return nil
	}
	return []Effect{FetchItems{Config: c.cfg}}
}

// ItemsLoaded receives the fetch result. An empty list or a failed fetch
// leaves the session in Setup with an empty-state reason; no session is
// opened with the progress service.
func (c *Controller) ItemsLoaded(items []vocab.StudyItem, err error) []Effect {
	if c.lifecycle != LifecycleSetup || c.items != nil {
		return nil
	}
	c.fetchErr = err
	if err != nil || len(items) == 0 {
		if c.cfg.Source == SourceReview {
			c.empty = EmptyAllCaughtUp
		} else {
			c.empty = EmptyNoItems
		}
		return nil
	}
	c.items = append([]vocab.StudyItem(nil), items...)
	return []Effect{StartSession{Config: c.cfg, ItemCount: len(c.items)}}
}

// SessionStarted receives the progress service's session id and activates
// the session. When the start request failed the session still runs
// locally, without a session id, and no progress is reported.
func (c *Controller) SessionStarted(id string, err error) []Effect {
	if c.lifecycle != LifecycleSetup || len(c.items) == 0 {
		return nil
	}
	if err == nil {
		c.sessionID = id
	}
	c.lifecycle = LifecycleActive
	c.index = 0
	c.prepareItem()
	return []Effect{c.timer.Start()}
}

// CanAnswer reports whether an answer would currently be accepted.
func (c *Controller) CanAnswer() bool {
	return c.lifecycle == LifecycleActive && c.feedback == FeedbackNone
}

// Flip turns the current flashcard over.
func (c *Controller) Flip() bool {
	if !c.CanAnswer() || c.mode != ModeFlashcard || c.flipped {
		return false
	}
	c.flipped = true
	return true
}

// Grade records a self-reported flashcard result. It is only accepted once
// the card has been flipped.
func (c *Controller) Grade(correct bool) []Effect {
	if c.mode != ModeFlashcard || !c.flipped {
		return nil
	}
	return c.answer(correct)
}

// SelectOption answers the quiz question with option i. Out-of-range
// indexes and repeated selections are ignored.
func (c *Controller) SelectOption(i int) []Effect {
	if c.mode != ModeQuiz || c.quiz == nil || c.quiz.Answered() {
		return nil
	}
	if i < 0 || i >= len(c.quiz.Options) || !c.CanAnswer() {
		return nil
	}
	current, _ := c.Current()
	c.quiz.Selected = i
	return c.answer(c.quiz.Options[i].ID == current.ID)
}

// SubmitTyped grades free-text input against the current item's reading.
func (c *Controller) SubmitTyped(text string) []Effect {
	if c.mode != ModeTyping {
		return nil
	}
	current, ok := c.Current()
	if !ok {
		return nil
	}
	return c.answer(CheckTyped(text, current))
}

// answer is the single grading entry point. It rejects input outside an
// active session and during the feedback window, so repeated events can
// never count twice.
func (c *Controller) answer(correct bool) []Effect {
	if !c.CanAnswer() {
		return nil
	}
	current, ok := c.Current()
	if !ok {
		return nil
	}

	if correct {
		c.feedback = FeedbackCorrect
		c.stats.Correct++
	} else {
		c.feedback = FeedbackIncorrect
		c.stats.Incorrect++
	}
	c.feedbackToken++

	effects := make([]Effect, 0, 2)
	if c.sessionID != "" {
		effects = append(effects, ReportAnswer{
			SessionID: c.sessionID,
			ItemID:    current.ID,
			Correct:   correct,
		})
	}
	effects = append(effects, ScheduleFeedbackClear{Token: c.feedbackToken, After: FeedbackWindow})
	return effects
}

// FeedbackElapsed closes the feedback window opened with token and moves
// to the next item, finishing the session after the last one.
func (c *Controller) FeedbackElapsed(token int) []Effect {
	if c.lifecycle != LifecycleActive || c.feedback == FeedbackNone || token != c.feedbackToken {
		return nil
	}
	c.feedback = FeedbackNone
	if c.index < len(c.items)-1 {
		c.index++
		c.prepareItem()
		return nil
	}
	return c.finish(false)
}

// Tick applies one timer tick armed under generation gen.
func (c *Controller) Tick(gen int) []Effect {
	if c.lifecycle != LifecycleActive {
		return nil
	}
	expired, ok := c.timer.Tick(gen, c.sessionID != "")
	if !ok {
		return nil
	}
	if expired {
		return c.finish(true)
	}
	return []Effect{c.timer.Next()}
}

// SetMode switches the presentation mode. Switching is refused while
// feedback is showing; index and stats are preserved.
func (c *Controller) SetMode(m Mode) bool {
	if c.feedback != FeedbackNone || c.lifecycle == LifecycleFinished {
		return false
	}
	if m == c.mode {
		return true
	}
	c.mode = m
	if c.lifecycle == LifecycleActive {
		c.prepareItem()
	}
	return true
}

// Close tears the session down without reporting its end, as when the
// session view is discarded. Outstanding ticks and feedback clears become
// no-ops.
func (c *Controller) Close() []Effect {
	c.timer.Stop()
	c.feedbackToken++
	if c.lifecycle == LifecycleActive {
		c.lifecycle = LifecycleFinished
		c.feedback = FeedbackNone
	}
	return []Effect{ReleaseInput{}}
}

// Summary returns the end-of-session figures.
func (c *Controller) Summary() Summary {
	return Summary{
		Total:           len(c.items),
		Correct:         c.stats.Correct,
		Incorrect:       c.stats.Incorrect,
		Accuracy:        Accuracy(c.stats.Correct, len(c.items)),
		DurationSeconds: c.timer.Duration(),
		TimeUp:          c.timeUp,
		Mode:            c.mode,
	}
}

func (c *Controller) finish(timeUp bool) []Effect {
	c.lifecycle = LifecycleFinished
	c.timeUp = timeUp
	c.feedback = FeedbackNone
	c.feedbackToken++
	c.timer.Stop()

	effects := []Effect{ReleaseInput{}}
	if c.sessionID != "" {
		effects = append(effects, ReportEnd{
			SessionID:       c.sessionID,
			DurationSeconds: c.timer.Duration(),
			TimeUp:          timeUp,
		})
	}
	return effects
}

// prepareItem resets the per-item mode state for the current item.
func (c *Controller) prepareItem() {
	c.flipped = false
	c.quiz = nil
	if c.mode != ModeQuiz {
		return
	}
	current, ok := c.Current()
	if !ok {
		return
	}
	c.quiz = newQuizQuestion(current, c.items, c.sampler)
}
