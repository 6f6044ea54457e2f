package domain

import "time"

// Clock supplies the current time. Services take one so tests can pin "now".
type Clock interface {
	Now() time.Time
}

// SystemClock returns the wall-clock time in UTC, truncated to microseconds
// to match PostgreSQL timestamptz precision.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
