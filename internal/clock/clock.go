package clock

import "time"

// Clock allows injecting the current time into services and filters.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystem returns a clock backed by time.Now in the given location.
func NewSystem(loc *time.Location) Clock {
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always returns the same instant.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t}
}

func (c fixedClock) Now() time.Time {
	return c.now
}
