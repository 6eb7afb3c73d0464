package spacedrep

import (
	"testing"
	"time"
)

var day0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestIsDue(t *testing.T) {
	tests := []struct {
		name string
		next time.Time
		want bool
	}{
		{"before date", day0.Add(24 * time.Hour), false},
		{"on date", day0, true},
		{"after date", day0.Add(-48 * time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := &ReviewState{NextReviewDate: tt.next}
			if got := rs.IsDue(day0); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverdueDays(t *testing.T) {
	rs := &ReviewState{NextReviewDate: day0}
	if got := rs.OverdueDays(day0.Add(-time.Hour)); got != 0 {
		t.Errorf("OverdueDays() before due = %f, want 0", got)
	}
	got := rs.OverdueDays(day0.Add(72 * time.Hour))
	if got < 2.99 || got > 3.01 {
		t.Errorf("OverdueDays() = %f, want ~3.0", got)
	}
}

func TestRecord_FirstHit(t *testing.T) {
	rs := Record(nil, "neko", true, day0)
	if rs.ItemID != "neko" {
		t.Errorf("ItemID = %q, want neko", rs.ItemID)
	}
	if rs.Stage != 1 || rs.ConsecutiveHits != 1 {
		t.Errorf("Stage = %d, hits = %d, want 1/1", rs.Stage, rs.ConsecutiveHits)
	}
	if want := day0.AddDate(0, 0, 3); !rs.NextReviewDate.Equal(want) {
		t.Errorf("NextReviewDate = %v, want %v", rs.NextReviewDate, want)
	}
	if !rs.LastReviewDate.Equal(day0) {
		t.Errorf("LastReviewDate = %v, want %v", rs.LastReviewDate, day0)
	}
}

func TestRecord_FirstMiss(t *testing.T) {
	rs := Record(nil, "neko", false, day0)
	if rs.Stage != 0 || rs.ConsecutiveHits != 0 {
		t.Errorf("Stage = %d, hits = %d, want 0/0", rs.Stage, rs.ConsecutiveHits)
	}
	if want := day0.AddDate(0, 0, 1); !rs.NextReviewDate.Equal(want) {
		t.Errorf("NextReviewDate = %v, want %v", rs.NextReviewDate, want)
	}
}

func TestRecord_Graduation(t *testing.T) {
	var rs *ReviewState
	now := day0
	for i := 1; i <= GraduationHits; i++ {
		next := Record(rs, "neko", true, now)
		rs = &next
		if i < GraduationHits && rs.Graduated {
			t.Fatalf("graduated after %d hits", i)
		}
		now = rs.NextReviewDate
	}
	if !rs.Graduated {
		t.Fatal("expected graduated after six hits")
	}
	if got := rs.CurrentIntervalDays(); got != GraduatedIntervalDays {
		t.Errorf("interval = %d, want %d", got, GraduatedIntervalDays)
	}

	after := Record(rs, "neko", true, now)
	if !after.Graduated {
		t.Error("expected to stay graduated")
	}
	if want := now.AddDate(0, 0, 90); !after.NextReviewDate.Equal(want) {
		t.Errorf("NextReviewDate = %v, want %v", after.NextReviewDate, want)
	}
}

func TestRecord_MissResets(t *testing.T) {
	rs := &ReviewState{ItemID: "neko", Stage: 4, ConsecutiveHits: 7, Graduated: true}
	got := Record(rs, "neko", false, day0)
	if got.Stage != 0 || got.ConsecutiveHits != 0 || got.Graduated {
		t.Errorf("state after miss = %+v, want reset", got)
	}
	if want := day0.AddDate(0, 0, RelearnDays); !got.NextReviewDate.Equal(want) {
		t.Errorf("NextReviewDate = %v, want %v", got.NextReviewDate, want)
	}
	if rs.Stage != 4 {
		t.Error("Record mutated its input")
	}
}

func TestRecord_IntervalsExpand(t *testing.T) {
	var rs *ReviewState
	now := day0
	want := []int{3, 7, 14, 30, 60}
	for i, days := range want {
		next := Record(rs, "neko", true, now)
		rs = &next
		if got := rs.NextReviewDate.Sub(now); got != time.Duration(days)*24*time.Hour {
			t.Errorf("hit %d: interval = %v, want %d days", i+1, got, days)
		}
		now = rs.NextReviewDate
	}
}

func TestDueItems(t *testing.T) {
	states := []ReviewState{
		{ItemID: "b", NextReviewDate: day0.AddDate(0, 0, -1)},
		{ItemID: "future", NextReviewDate: day0.AddDate(0, 0, 2)},
		{ItemID: "c", NextReviewDate: day0.AddDate(0, 0, -5)},
		{ItemID: "a", NextReviewDate: day0.AddDate(0, 0, -1)},
		{ItemID: "now", NextReviewDate: day0},
	}
	got := DueItems(states, day0)
	want := []string{"c", "a", "b", "now"}
	if len(got) != len(want) {
		t.Fatalf("DueItems() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DueItems()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
