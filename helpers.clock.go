package main

import (
	"time"
)

var _ Clocker = (*Clock)(nil) // ensure Clock implements Clocker.

// Clocker abstracts the wall clock so audit event timestamps stay
// deterministic under test.
type Clocker interface {
	Now() time.Time
}

// Clock is the real wall clock bound to a fixed location.
type Clock struct {
	tz *time.Location
}

// NewClock returns a Clock stamping in UTC when running in production,
// so audit records compare across hosts, and in local time otherwise.
func NewClock(isProd bool) *Clock {
	if isProd {
		return &Clock{time.UTC}
	}
	return &Clock{time.Local}
}

// Now reports the current time in the configured location.
func (ck *Clock) Now() time.Time {
	return time.Now().In(ck.tz)
}
