package ports

import "time"

// Clock abstracts wall-clock time so state transitions are testable
type Clock interface {
	Now() time.Time
}

// UTCClock is the production clock; it returns the current time in UTC
type UTCClock struct{}

// Now returns the current UTC time
func (UTCClock) Now() time.Time { return time.Now().UTC() }
