package domain

import "time"

// Clock abstracts time operations for testing
type Clock interface {
	Now() time.Time
}

// SystemClock uses actual system time
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to the Clock interface
type ClockFunc func() time.Time

// Now calls f
func (f ClockFunc) Now() time.Time { return f() }
