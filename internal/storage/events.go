package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/username/timesheet-tracker/internal/models"
	"github.com/username/timesheet-tracker/pkg/dateutil"
)

// EventStore persists one status per calendar date.
type EventStore interface {
	Upsert(ctx context.Context, date time.Time, status models.Status) error
	List(ctx context.Context) ([]models.Event, error)
	CountByMonth(ctx context.Context, year int, month time.Month, status models.Status) (int, error)
}

// SQLEventStore implements EventStore on the events table.
type SQLEventStore struct {
	db *DB
}

// NewEventStore creates a new SQLEventStore.
func NewEventStore(db *DB) *SQLEventStore {
	return &SQLEventStore{db: db}
}

// Upsert records status for date, or deletes the record when status is empty.
// PRE: date is a calendar date
// POST: at most one row exists for date; no row when status is empty
func (s *SQLEventStore) Upsert(ctx context.Context, date time.Time, status models.Status) error {
	key := dateutil.FormatDate(date)

	if status == models.StatusNone {
		if _, err := s.db.exec(ctx, "DELETE FROM events WHERE date = ?", key); err != nil {
			return fmt.Errorf("failed to delete event %s: %w", key, err)
		}
		return nil
	}

	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	_, err := s.db.exec(ctx,
		"INSERT INTO events (date, status) VALUES (?, ?) ON CONFLICT (date) DO UPDATE SET status = excluded.status",
		key, string(status),
	)
	if err != nil {
		return fmt.Errorf("failed to save event %s: %w", key, err)
	}
	return nil
}

// List returns every recorded event ordered by date.
func (s *SQLEventStore) List(ctx context.Context) ([]models.Event, error) {
	rows, err := s.db.query(ctx, "SELECT date, status FROM events ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var results []models.Event
	for rows.Next() {
		var dateStr, status string
		if err := rows.Scan(&dateStr, &status); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		date, err := dateutil.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt event row: %w", err)
		}
		results = append(results, models.Event{Date: date, Status: models.Status(status)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return results, nil
}

// CountByMonth counts events with status whose date lies inside the calendar month.
// Dates are stored as YYYY-MM-DD, so the half-open range compares calendar dates.
func (s *SQLEventStore) CountByMonth(ctx context.Context, year int, month time.Month, status models.Status) (int, error) {
	if !dateutil.ValidMonth(int(month)) {
		return 0, ErrInvalidMonth
	}

	from := dateutil.FormatDate(dateutil.MonthStart(year, month))
	to := dateutil.FormatDate(dateutil.NextMonthStart(year, month))

	var count int
	err := s.db.queryRow(ctx,
		"SELECT COUNT(*) FROM events WHERE status = ? AND date >= ? AND date < ?",
		string(status), from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events for %s: %w", dateutil.MonthKey(year, month), err)
	}
	return count, nil
}
