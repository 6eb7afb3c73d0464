package session

// Subscription is a scoped claim on keyboard input for an active session.
// It is acquired when the session becomes active and must be released on
// every exit path; Release is idempotent.
type Subscription struct {
	ctrl     *Controller
	released bool
}

// Subscribe acquires keyboard input for ctrl. It returns nil when the
// session is not active.
func Subscribe(ctrl *Controller) *Subscription {
	if ctrl == nil || ctrl.lifecycle != LifecycleActive {
		return nil
	}
	return &Subscription{ctrl: ctrl}
}

// Release drops the subscription. Later dispatches are ignored.
func (s *Subscription) Release() {
	if s == nil {
		return
	}
	s.released = true
	s.ctrl = nil
}

// Active reports whether the subscription still routes keys.
func (s *Subscription) Active() bool {
	return s != nil && !s.released
}

// Dispatch routes a key to the controller. Key names follow bubbletea's
// KeyPressMsg.String form ("space", "enter", "right", "1"...). configuring
// is true while the session setup form is showing. handled reports whether
// the key was consumed; unhandled keys in typing mode belong to the text
// input.
func (s *Subscription) Dispatch(key string, configuring bool) (effects []Effect, handled bool) {
	if !s.Active() || configuring {
		return nil, false
	}
	c := s.ctrl
	if c.lifecycle != LifecycleActive || c.feedback != FeedbackNone {
		return nil, false
	}

	if m, ok := modeKey(key, c.mode); ok {
		return nil, c.SetMode(m)
	}

	switch c.mode {
	case ModeFlashcard:
		return dispatchFlashcard(c, key)
	case ModeQuiz:
		return dispatchQuiz(c, key)
	}
	return nil, false
}

func dispatchFlashcard(c *Controller, key string) ([]Effect, bool) {
	if !c.flipped {
		switch key {
		case "space", "enter":
			return nil, c.Flip()
		}
		return nil, false
	}
	switch key {
	case "right", "1":
		return c.Grade(true), true
	case "left", "2":
		return c.Grade(false), true
	}
	return nil, false
}

func dispatchQuiz(c *Controller, key string) ([]Effect, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '4' {
		return nil, false
	}
	slot := int(key[0] - '1')
	if c.quiz == nil || slot >= len(c.quiz.Options) {
		return nil, true
	}
	return c.SelectOption(slot), true
}

// modeKey maps mode-switch keys. Letter shortcuts are disabled in typing
// mode, where letters are answer text.
func modeKey(key string, current Mode) (Mode, bool) {
	switch key {
	case "tab":
		return current.Next(), true
	}
	if current == ModeTyping {
		return current, false
	}
	switch key {
	case "f":
		return ModeFlashcard, true
	case "q":
		return ModeQuiz, true
	case "t":
		return ModeTyping, true
	}
	return current, false
}
