package session

// Timer drives the session clock. A countdown timer counts TimeLeft down to
// zero; a stopwatch counts Elapsed up without bound. Each scheduled tick
// carries the generation it was armed under, and Stop bumps the generation,
// so ticks delivered after teardown are ignored.
type Timer struct {
	countdown  bool
	limit      int
	timeLeft   int
	elapsed    int
	generation int
	running    bool
}

// NewTimer returns a countdown timer for limit > 0 and a stopwatch otherwise.
func NewTimer(limit int) Timer {
	if limit > 0 {
		return Timer{countdown: true, limit: limit, timeLeft: limit}
	}
	return Timer{}
}

// Countdown reports whether a time limit is configured.
func (t *Timer) Countdown() bool { return t.countdown }

// TimeLeft returns the remaining seconds and whether a countdown is configured.
func (t *Timer) TimeLeft() (int, bool) {
	return t.timeLeft, t.countdown
}

// Elapsed returns the stopwatch counter.
func (t *Timer) Elapsed() int { return t.elapsed }

// Running reports whether ticks are currently accepted.
func (t *Timer) Running() bool { return t.running }

// Duration returns the seconds spent in the session for reporting.
func (t *Timer) Duration() int {
	if t.countdown {
		return t.limit - t.timeLeft
	}
	return t.elapsed
}

// Start arms the timer and returns the first tick to schedule.
func (t *Timer) Start() ScheduleTick {
	t.generation++
	t.running = true
	return ScheduleTick{Generation: t.generation, After: TickInterval}
}

// Stop cancels outstanding ticks.
func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.running = false
	t.generation++
}

// Tick applies one elapsed second for generation gen. count reports whether
// the stopwatch should advance (it only runs once a session id exists).
// It returns ok=false for stale or stopped ticks, which must not be
// rescheduled, and expired=true when a countdown reaches zero.
func (t *Timer) Tick(gen int, count bool) (expired, ok bool) {
	if !t.running || gen != t.generation {
		return false, false
	}
	if t.countdown {
		if t.timeLeft > 0 {
			t.timeLeft--
		}
		return t.timeLeft == 0, true
	}
	if count {
		t.elapsed++
	}
	return false, true
}

// Next returns the tick that follows the current one.
func (t *Timer) Next() ScheduleTick {
	return ScheduleTick{Generation: t.generation, After: TickInterval}
}
