package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"countdown/internal/domain"
)

// Repository implements repository.TimerStore on an in-memory SQLite database
type Repository struct {
	// mu serializes every statement against the timers table
	mu sync.Mutex
	db *sql.DB
}

// New opens a private in-memory database and creates the schema.
// The database lives exactly as long as the Repository.
func New() (*Repository, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database, so pin the
	// pool to a single connection that is never recycled.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS timers (
		id TEXT PRIMARY KEY,
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_timers_start ON timers(start_at, id);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Close closes the database, discarding every timer
func (r *Repository) Close() error {
	return r.db.Close()
}

// Insert adds the timer under its own ID
func (r *Repository) Insert(ctx context.Context, timer domain.Timer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO timers (`+timerColumns+`) VALUES (?, ?, ?)
	`, timerInsertArgs(timer)...)
	if err != nil {
		return fmt.Errorf("failed to insert timer: %w", err)
	}
	return nil
}

// Get retrieves a single timer by ID, or nil if it does not exist
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*domain.Timer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var row timerRow
	err := r.db.QueryRowContext(ctx, `
		SELECT `+timerColumns+` FROM timers WHERE id = ?
	`, id.String()).Scan(row.scanArgs()...)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query timer: %w", err)
	}

	timer, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &timer, nil
}

// List returns every timer ordered by start time, then ID
func (r *Repository) List(ctx context.Context) ([]domain.Timer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+timerColumns+` FROM timers ORDER BY start_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query timers: %w", err)
	}
	defer rows.Close()

	timers := make([]domain.Timer, 0)
	for rows.Next() {
		var row timerRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan timer: %w", err)
		}
		timer, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		timers = append(timers, timer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timers: %w", err)
	}

	return timers, nil
}

// Len returns the number of stored timers
func (r *Repository) Len(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM timers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count timers: %w", err)
	}
	return n, nil
}
