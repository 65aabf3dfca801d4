package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"countdown/internal/domain"
	"countdown/internal/repository"
)

// ErrTimerNotFound is returned when no timer has the requested ID
var ErrTimerNotFound = errors.New("timer not found")

// TimerService provides business logic for timer operations
type TimerService struct {
	store    repository.TimerStore
	eventBus *EventBus
	clock    domain.Clock
}

// NewTimerService creates a new timer service backed by store
func NewTimerService(store repository.TimerStore, eventBus *EventBus) *TimerService {
	return &TimerService{
		store:    store,
		eventBus: eventBus,
		clock:    domain.SystemClock{},
	}
}

// SetClock replaces the clock used for start and status computations
func (s *TimerService) SetClock(c domain.Clock) {
	s.clock = c
}

// CreateTimer starts a timer that ends the given number of minutes from now
func (s *TimerService) CreateTimer(ctx context.Context, minutes uint64) (domain.Timer, error) {
	d, err := domain.DurationFromMinutes(minutes)
	if err != nil {
		return domain.Timer{}, err
	}

	timer := domain.NewTimer(s.clock.Now(), d)
	if err := s.store.Insert(ctx, timer); err != nil {
		return domain.Timer{}, fmt.Errorf("store timer %s: %w", timer.ID, err)
	}

	if s.eventBus != nil {
		s.eventBus.Publish(Event{
			Type:    EventTimerCreated,
			Payload: timer,
		})
	}

	return timer, nil
}

// GetTimer retrieves a single timer by ID
func (s *TimerService) GetTimer(ctx context.Context, id uuid.UUID) (domain.Timer, error) {
	timer, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Timer{}, fmt.Errorf("lookup timer %s: %w", id, err)
	}
	if timer == nil {
		return domain.Timer{}, fmt.Errorf("timer %s: %w", id, ErrTimerNotFound)
	}
	return *timer, nil
}

// TimerStatus returns the time remaining on a timer, negative once elapsed
func (s *TimerService) TimerStatus(ctx context.Context, id uuid.UUID) (domain.Status, error) {
	timer, err := s.GetTimer(ctx, id)
	if err != nil {
		return domain.Status{}, err
	}
	return timer.StatusAt(s.clock.Now()), nil
}

// ListTimers returns every timer ordered by start time
func (s *TimerService) ListTimers(ctx context.Context) ([]domain.Timer, error) {
	return s.store.List(ctx)
}

// CountTimers returns the number of timers in the registry
func (s *TimerService) CountTimers(ctx context.Context) (int, error) {
	return s.store.Len(ctx)
}
