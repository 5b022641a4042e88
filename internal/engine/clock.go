package engine

import "time"

// Clock abstracts time.Now() so "today" can be pinned in tests.
// Only the collaborators that report progress or validate a date of
// birth consult it; the estimator and layout never read the time.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
