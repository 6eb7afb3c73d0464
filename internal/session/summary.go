package session

import "math"

// Summary holds the figures shown when a session finishes.
type Summary struct {
	Total           int
	Correct         int
	Incorrect       int
	Accuracy        int
	DurationSeconds int
	TimeUp          bool
	Mode            Mode
}

// Accuracy returns correct/total as a rounded percentage, or 0 when total
// is zero.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
