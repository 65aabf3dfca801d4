package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTimer(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("end is start plus duration", func(t *testing.T) {
		timer := NewTimer(now, 25*time.Minute)

		if !timer.Start.Equal(now) {
			t.Errorf("expected start %v, got %v", now, timer.Start)
		}
		if got := timer.End.Sub(timer.Start); got != 25*time.Minute {
			t.Errorf("expected 25m between start and end, got %v", got)
		}
		if timer.Duration() != 25*time.Minute {
			t.Errorf("expected Duration()=25m, got %v", timer.Duration())
		}
	})

	t.Run("zero duration ends at start", func(t *testing.T) {
		timer := NewTimer(now, 0)
		if !timer.End.Equal(timer.Start) {
			t.Errorf("expected end == start, got %v and %v", timer.End, timer.Start)
		}
	})

	t.Run("negative duration is clamped to zero", func(t *testing.T) {
		timer := NewTimer(now, -time.Minute)
		if timer.End.Before(timer.Start) {
			t.Errorf("end %v before start %v", timer.End, timer.Start)
		}
	})

	t.Run("timestamps are normalized to UTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+5", 5*60*60)
		timer := NewTimer(now.In(loc), time.Minute)

		if timer.Start.Location() != time.UTC {
			t.Errorf("expected UTC start, got %v", timer.Start.Location())
		}
		if timer.End.Location() != time.UTC {
			t.Errorf("expected UTC end, got %v", timer.End.Location())
		}
		if !timer.Start.Equal(now) {
			t.Errorf("expected same instant %v, got %v", now, timer.Start)
		}
	})

	t.Run("ids are random version 4 uuids", func(t *testing.T) {
		a := NewTimer(now, time.Minute)
		b := NewTimer(now, time.Minute)

		if a.ID == b.ID {
			t.Errorf("expected distinct ids, both were %s", a.ID)
		}
		if a.ID == uuid.Nil {
			t.Error("expected non-nil id")
		}
		if a.ID.Version() != 4 {
			t.Errorf("expected version 4, got %d", a.ID.Version())
		}
	})
}

func TestDurationFromMinutes(t *testing.T) {
	tests := []struct {
		name    string
		minutes uint64
		want    time.Duration
		wantErr bool
	}{
		{name: "zero", minutes: 0, want: 0},
		{name: "one", minutes: 1, want: time.Minute},
		{name: "ninety", minutes: 90, want: 90 * time.Minute},
		{name: "maximum", minutes: MaxDurationMinutes, want: time.Duration(MaxDurationMinutes) * time.Minute},
		{name: "overflow", minutes: MaxDurationMinutes + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationFromMinutes(tt.minutes)
			if tt.wantErr {
				if !errors.Is(err, ErrDurationTooLarge) {
					t.Fatalf("expected ErrDurationTooLarge, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DurationFromMinutes(%d) = %v, want %v", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestNewStatus(t *testing.T) {
	tests := []struct {
		name  string
		delta time.Duration
		want  Status
	}{
		{
			name:  "zero",
			delta: 0,
			want:  Status{},
		},
		{
			name:  "each unit recomputed from the full delta",
			delta: 2*time.Hour + 30*time.Minute + 15*time.Second,
			want:  Status{Seconds: 9015, Minutes: 150, Hours: 2},
		},
		{
			name:  "just under a minute",
			delta: 59*time.Second + 999*time.Millisecond,
			want:  Status{Seconds: 59, Minutes: 0, Hours: 0},
		},
		{
			name:  "negative truncates toward zero",
			delta: -(90*time.Second + 500*time.Millisecond),
			want:  Status{Seconds: -90, Minutes: -1, Hours: 0},
		},
		{
			name:  "sub-second negative is zero",
			delta: -400 * time.Millisecond,
			want:  Status{},
		},
		{
			name:  "long negative",
			delta: -(3*time.Hour + time.Second),
			want:  Status{Seconds: -10801, Minutes: -180, Hours: -3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewStatus(tt.delta); got != tt.want {
				t.Errorf("NewStatus(%v) = %+v, want %+v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestTimerStatusAt(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	timer := NewTimer(start, 90*time.Minute)

	t.Run("at start", func(t *testing.T) {
		got := timer.StatusAt(start)
		want := Status{Seconds: 5400, Minutes: 90, Hours: 1}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("half way", func(t *testing.T) {
		got := timer.StatusAt(start.Add(45 * time.Minute))
		want := Status{Seconds: 2700, Minutes: 45, Hours: 0}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("after end", func(t *testing.T) {
		got := timer.StatusAt(start.Add(2 * time.Hour))
		want := Status{Seconds: -1800, Minutes: -30, Hours: 0}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})
}

func TestNewQuote(t *testing.T) {
	if got := NewQuote("").Quote; got != "You can do it!" {
		t.Errorf("expected default quote, got %q", got)
	}
	if got := NewQuote("Keep going").Quote; got != "Keep going" {
		t.Errorf("expected override, got %q", got)
	}
}

func TestClockFunc(t *testing.T) {
	fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	var c Clock = ClockFunc(func() time.Time { return fixed })
	if !c.Now().Equal(fixed) {
		t.Errorf("expected %v, got %v", fixed, c.Now())
	}
}
