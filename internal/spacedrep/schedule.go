package spacedrep

// BaseIntervals is the expanding review schedule in days, indexed by stage.
var BaseIntervals = []int{1, 3, 7, 14, 30, 60}

// MaxStage is the highest stage index in BaseIntervals.
const MaxStage = 5

// GraduationHits is the number of consecutive correct reviews after which
// an item graduates to the long interval.
const GraduationHits = 6

// GraduatedIntervalDays is the review interval for graduated items.
const GraduatedIntervalDays = 90

// RelearnDays is how soon a missed item comes back.
const RelearnDays = 1
