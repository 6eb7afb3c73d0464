package session

import "testing"

func TestTimerCountdown(t *testing.T) {
	tm := NewTimer(3)
	if !tm.Countdown() {
		t.Fatal("limit 3 is not a countdown")
	}
	first := tm.Start()
	if first.After != TickInterval {
		t.Errorf("interval = %v, want %v", first.After, TickInterval)
	}

	for i := 1; i <= 3; i++ {
		expired, ok := tm.Tick(first.Generation, true)
		if !ok {
			t.Fatalf("tick %d rejected", i)
		}
		if expired != (i == 3) {
			t.Errorf("tick %d expired = %v", i, expired)
		}
	}
	if got := tm.Duration(); got != 3 {
		t.Errorf("duration = %d, want 3", got)
	}
}

func TestTimerStaleGeneration(t *testing.T) {
	tm := NewTimer(0)
	first := tm.Start()
	tm.Stop()
	if _, ok := tm.Tick(first.Generation, true); ok {
		t.Error("tick accepted after stop")
	}
	second := tm.Start()
	if second.Generation == first.Generation {
		t.Fatal("restart reused generation")
	}
	if _, ok := tm.Tick(first.Generation, true); ok {
		t.Error("old generation accepted after restart")
	}
	if _, ok := tm.Tick(second.Generation, true); !ok {
		t.Error("current generation rejected")
	}
	if tm.Elapsed() != 1 {
		t.Errorf("elapsed = %d, want 1", tm.Elapsed())
	}
}

func TestTimerStopwatchCountGate(t *testing.T) {
	tm := NewTimer(0)
	tick := tm.Start()
	tm.Tick(tick.Generation, false)
	tm.Tick(tick.Generation, true)
	if got := tm.Elapsed(); got != 1 {
		t.Errorf("elapsed = %d, want 1", got)
	}
	if _, countdown := tm.TimeLeft(); countdown {
		t.Error("stopwatch reports a time left")
	}
}
