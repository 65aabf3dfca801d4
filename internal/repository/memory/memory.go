package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"countdown/internal/domain"
)

// Store implements repository.TimerStore with a mutex-guarded map
type Store struct {
	mu     sync.Mutex
	timers map[uuid.UUID]domain.Timer
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		timers: make(map[uuid.UUID]domain.Timer),
	}
}

// Insert adds the timer under its own ID. It never fails.
func (s *Store) Insert(ctx context.Context, timer domain.Timer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[timer.ID] = timer
	return nil
}

// Get returns a copy of the timer, or nil if no timer has that ID
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Timer, error) {
	s.mu.Lock()
	timer, ok := s.timers[id]
	s.mu.Unlock()

	if !ok {
		return nil, nil
	}
	return &timer, nil
}

// List returns every timer ordered by start time, then ID
func (s *Store) List(ctx context.Context) ([]domain.Timer, error) {
	s.mu.Lock()
	timers := make([]domain.Timer, 0, len(s.timers))
	for _, timer := range s.timers {
		timers = append(timers, timer)
	}
	s.mu.Unlock()

	sort.Slice(timers, func(i, j int) bool {
		if !timers[i].Start.Equal(timers[j].Start) {
			return timers[i].Start.Before(timers[j].Start)
		}
		return timers[i].ID.String() < timers[j].ID.String()
	})
	return timers, nil
}

// Len returns the number of stored timers
func (s *Store) Len(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers), nil
}

// Close is a no-op; contents are released with the store
func (s *Store) Close() error {
	return nil
}
