package repository

import (
	"context"

	"github.com/google/uuid"

	"countdown/internal/domain"
)

// TimerStore defines the interface for timer registry access
type TimerStore interface {
	// Insert adds the timer under its own ID
	Insert(ctx context.Context, timer domain.Timer) error

	// Get returns a copy of the timer, or nil and no error if absent
	Get(ctx context.Context, id uuid.UUID) (*domain.Timer, error)

	// List returns every timer ordered by start time, then ID
	List(ctx context.Context) ([]domain.Timer, error)

	// Len returns the number of stored timers
	Len(ctx context.Context) (int, error)

	// Close releases resources
	Close() error
}
