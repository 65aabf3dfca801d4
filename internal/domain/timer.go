package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// MaxDurationMinutes is the largest timer length whose end can still be
// represented as a time.Duration offset from its start
const MaxDurationMinutes = uint64(math.MaxInt64 / int64(time.Minute))

// ErrDurationTooLarge is returned for durations beyond MaxDurationMinutes
var ErrDurationTooLarge = errors.New("duration too large")

// Timer is a single countdown. It is never mutated after NewTimer returns.
type Timer struct {
	ID    uuid.UUID `json:"id" yaml:"id" cbor:"id"`
	Start time.Time `json:"start" yaml:"start" cbor:"start"`
	End   time.Time `json:"end" yaml:"end" cbor:"end"`
}

// DurationFromMinutes converts a whole number of minutes to a duration
func DurationFromMinutes(minutes uint64) (time.Duration, error) {
	if minutes > MaxDurationMinutes {
		return 0, fmt.Errorf("%w: %d minutes exceeds %d", ErrDurationTooLarge, minutes, MaxDurationMinutes)
	}
	return time.Duration(minutes) * time.Minute, nil
}

// NewTimer creates a timer with a fresh random ID that starts at now and
// runs for d. Negative durations are treated as zero so that End >= Start.
func NewTimer(now time.Time, d time.Duration) Timer {
	if d < 0 {
		d = 0
	}
	start := now.UTC()
	return Timer{
		ID:    uuid.New(),
		Start: start,
		End:   start.Add(d),
	}
}

// Duration returns the configured length of the timer
func (t Timer) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// Remaining returns the signed time left until End, negative once elapsed
func (t Timer) Remaining(now time.Time) time.Duration {
	return t.End.Sub(now)
}

// StatusAt returns the remaining time at now
func (t Timer) StatusAt(now time.Time) Status {
	return NewStatus(t.Remaining(now))
}

// Status is the remaining time on a timer. Each unit is an independent
// truncation of the same delta, not a component of a decomposition.
type Status struct {
	Seconds int64 `json:"seconds" yaml:"seconds" cbor:"seconds"`
	Minutes int64 `json:"minutes" yaml:"minutes" cbor:"minutes"`
	Hours   int64 `json:"hours" yaml:"hours" cbor:"hours"`
}

// NewStatus truncates delta toward zero in each unit
func NewStatus(delta time.Duration) Status {
	return Status{
		Seconds: int64(delta / time.Second),
		Minutes: int64(delta / time.Minute),
		Hours:   int64(delta / time.Hour),
	}
}
