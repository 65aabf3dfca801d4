package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"countdown/internal/domain"
)

// ============================================================================
// Timestamp Helpers
// ============================================================================

// timeLayout is fixed-width so that TEXT comparison orders chronologically.
// Only UTC values are stored, so the zone is always "Z".
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTime renders t in UTC using timeLayout
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a value written by formatTime
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ============================================================================
// Timer Row Scanner
// ============================================================================
//
// Column order must match between timerColumns and scanArgs().

// timerColumns is the SELECT column list for timer queries
const timerColumns = "id, start_at, end_at"

// timerRow holds all columns from a timer query for scanning
type timerRow struct {
	ID      string
	StartAt string
	EndAt   string
}

// scanArgs returns pointers to all fields for sql.Scan()
func (r *timerRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,      // 1
		&r.StartAt, // 2
		&r.EndAt,   // 3
	}
}

// toDomain converts the scanned row to a domain.Timer
func (r *timerRow) toDomain() (domain.Timer, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.Timer{}, fmt.Errorf("parse id %q: %w", r.ID, err)
	}
	start, err := parseTime(r.StartAt)
	if err != nil {
		return domain.Timer{}, fmt.Errorf("parse start_at: %w", err)
	}
	end, err := parseTime(r.EndAt)
	if err != nil {
		return domain.Timer{}, fmt.Errorf("parse end_at: %w", err)
	}
	return domain.Timer{ID: id, Start: start, End: end}, nil
}

// timerInsertArgs returns the INSERT arguments for a timer
func timerInsertArgs(t domain.Timer) []interface{} {
	return []interface{}{
		t.ID.String(),
		formatTime(t.Start),
		formatTime(t.End),
	}
}
