package spacedrep

import (
	"sort"
	"time"
)

// ReviewState is one learner's review schedule for one item.
type ReviewState struct {
	ItemID          string    `json:"item_id"`
	Stage           int       `json:"stage"`
	NextReviewDate  time.Time `json:"next_review_date"`
	ConsecutiveHits int       `json:"consecutive_hits"`
	Graduated       bool      `json:"graduated"`
	LastReviewDate  time.Time `json:"last_review_date"`
}

// IsDue reports whether the item is at or past its review date.
func (rs *ReviewState) IsDue(now time.Time) bool {
	return !now.Before(rs.NextReviewDate)
}

// OverdueDays returns how many days past due the item is, or 0 when it is
// not yet due.
func (rs *ReviewState) OverdueDays(now time.Time) float64 {
	if now.Before(rs.NextReviewDate) {
		return 0
	}
	return now.Sub(rs.NextReviewDate).Hours() / 24.0
}

// CurrentIntervalDays returns the interval for the current stage.
func (rs *ReviewState) CurrentIntervalDays() int {
	if rs.Graduated {
		return GraduatedIntervalDays
	}
	if rs.Stage >= len(BaseIntervals) {
		return BaseIntervals[MaxStage]
	}
	return BaseIntervals[rs.Stage]
}

// Record applies one graded answer to prev and returns the new state.
// A nil prev starts a fresh schedule for itemID. A hit advances the stage
// and pushes the next review out; a miss sends the item back to stage 0,
// due again tomorrow.
func Record(prev *ReviewState, itemID string, correct bool, now time.Time) ReviewState {
	rs := ReviewState{ItemID: itemID}
	if prev != nil {
		rs = *prev
	}
	rs.LastReviewDate = now

	if !correct {
		rs.Stage = 0
		rs.ConsecutiveHits = 0
		rs.Graduated = false
		rs.NextReviewDate = now.AddDate(0, 0, RelearnDays)
		return rs
	}

	rs.ConsecutiveHits++
	if !rs.Graduated {
		if rs.ConsecutiveHits >= GraduationHits {
			rs.Graduated = true
		} else {
			rs.Stage = min(rs.ConsecutiveHits, MaxStage)
		}
	}
	rs.NextReviewDate = now.AddDate(0, 0, rs.CurrentIntervalDays())
	return rs
}

// DueItems returns the ids of due items, most overdue first. Ties are
// broken by item id so the order is stable.
func DueItems(states []ReviewState, now time.Time) []string {
	due := make([]ReviewState, 0, len(states))
	for _, rs := range states {
		if rs.IsDue(now) {
			due = append(due, rs)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		oi, oj := due[i].OverdueDays(now), due[j].OverdueDays(now)
		if oi != oj {
			return oi > oj
		}
		return due[i].ItemID < due[j].ItemID
	})

	ids := make([]string, len(due))
	for i, rs := range due {
		ids[i] = rs.ItemID
	}
	return ids
}
