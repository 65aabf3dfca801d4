// Package repositorytest provides a conformance suite for
// repository.TimerStore implementations.
package repositorytest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"countdown/internal/domain"
	"countdown/internal/repository"
)

// Factory returns a fresh, empty store. The suite closes it.
type Factory func(t *testing.T) repository.TimerStore

// Run exercises the TimerStore contract against stores built by newStore
func Run(t *testing.T, newStore Factory) {
	t.Run("insert then get", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()
		timer := domain.NewTimer(time.Now(), 5*time.Minute)

		assertNoError(t, s.Insert(ctx, timer))

		got, err := s.Get(ctx, timer.ID)
		assertNoError(t, err)
		if got == nil {
			t.Fatal("expected timer, got nil")
		}
		assertTimerEqual(t, timer, *got)
	})

	t.Run("get unknown id returns nil", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()
		assertNoError(t, s.Insert(ctx, domain.NewTimer(time.Now(), time.Minute)))

		got, err := s.Get(ctx, uuid.New())
		assertNoError(t, err)
		if got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})

	t.Run("get returns a copy", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()
		timer := domain.NewTimer(time.Now(), time.Minute)
		assertNoError(t, s.Insert(ctx, timer))

		got, err := s.Get(ctx, timer.ID)
		assertNoError(t, err)
		got.End = got.End.Add(time.Hour)

		again, err := s.Get(ctx, timer.ID)
		assertNoError(t, err)
		assertTimerEqual(t, timer, *again)
	})

	t.Run("preserves nanosecond UTC timestamps", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()
		start := time.Date(2024, 2, 29, 23, 59, 59, 123456789, time.UTC)
		timer := domain.NewTimer(start, 61*time.Minute)
		assertNoError(t, s.Insert(ctx, timer))

		got, err := s.Get(ctx, timer.ID)
		assertNoError(t, err)
		if got.Start.Location() != time.UTC {
			t.Errorf("expected UTC start, got %v", got.Start.Location())
		}
		assertTimerEqual(t, timer, *got)
	})

	t.Run("list orders by start then id", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		late := domain.NewTimer(base.Add(time.Hour), time.Minute)
		early := domain.NewTimer(base, time.Minute)
		mid := domain.NewTimer(base.Add(time.Second), time.Minute)
		for _, timer := range []domain.Timer{late, early, mid} {
			assertNoError(t, s.Insert(ctx, timer))
		}

		list, err := s.List(ctx)
		assertNoError(t, err)
		if len(list) != 3 {
			t.Fatalf("expected 3 timers, got %d", len(list))
		}
		assertTimerEqual(t, early, list[0])
		assertTimerEqual(t, mid, list[1])
		assertTimerEqual(t, late, list[2])
	})

	t.Run("list on empty store", func(t *testing.T) {
		s := open(t, newStore)
		list, err := s.List(context.Background())
		assertNoError(t, err)
		if len(list) != 0 {
			t.Errorf("expected no timers, got %d", len(list))
		}
	})

	t.Run("len counts inserts", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()
		for i := 0; i < 5; i++ {
			assertNoError(t, s.Insert(ctx, domain.NewTimer(time.Now(), time.Duration(i)*time.Minute)))
		}
		n, err := s.Len(ctx)
		assertNoError(t, err)
		if n != 5 {
			t.Errorf("expected 5, got %d", n)
		}
	})

	t.Run("concurrent inserts and lookups", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()
		const workers = 1000

		ids := make([]uuid.UUID, workers)
		errs := make(chan error, 2*workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				timer := domain.NewTimer(time.Now(), time.Duration(i%60)*time.Minute)
				if err := s.Insert(ctx, timer); err != nil {
					errs <- err
					return
				}
				got, err := s.Get(ctx, timer.ID)
				if err != nil {
					errs <- err
					return
				}
				if got == nil {
					t.Errorf("timer %s not visible after its insert returned", timer.ID)
					return
				}
				ids[i] = timer.ID
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatalf("unexpected error: %v", err)
		}

		seen := make(map[uuid.UUID]struct{}, workers)
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				t.Fatalf("duplicate id %s", id)
			}
			seen[id] = struct{}{}
		}

		n, err := s.Len(ctx)
		assertNoError(t, err)
		if n != workers {
			t.Errorf("expected %d timers, got %d", workers, n)
		}
	})
}

func open(t *testing.T, newStore Factory) repository.TimerStore {
	t.Helper()
	s := newStore(t)
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

// assertNoError fails the test if err is not nil
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// assertTimerEqual compares timers by ID and instant
func assertTimerEqual(t *testing.T, expected, actual domain.Timer) {
	t.Helper()
	if expected.ID != actual.ID {
		t.Fatalf("expected id %s, got %s", expected.ID, actual.ID)
	}
	if !expected.Start.Equal(actual.Start) {
		t.Fatalf("expected start %v, got %v", expected.Start, actual.Start)
	}
	if !expected.End.Equal(actual.End) {
		t.Fatalf("expected end %v, got %v", expected.End, actual.End)
	}
}
