package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/username/timesheet-tracker/internal/models"
	"github.com/username/timesheet-tracker/pkg/dateutil"
)

// LockRegistry persists the set of locked months.
// Locks are advisory: EventStore never consults them.
type LockRegistry interface {
	Lock(ctx context.Context, year int, month time.Month) error
	Unlock(ctx context.Context, year int, month time.Month) error
	IsLocked(ctx context.Context, year int, month time.Month) (bool, error)
	List(ctx context.Context) ([]models.LockedMonth, error)
}

// SQLLockRegistry implements LockRegistry on the locked_months table.
type SQLLockRegistry struct {
	db *DB
}

// NewLockRegistry creates a new SQLLockRegistry.
func NewLockRegistry(db *DB) *SQLLockRegistry {
	return &SQLLockRegistry{db: db}
}

// Lock marks the month as locked. Locking twice is a no-op.
func (r *SQLLockRegistry) Lock(ctx context.Context, year int, month time.Month) error {
	if !dateutil.ValidMonth(int(month)) {
		return ErrInvalidMonth
	}
	_, err := r.db.exec(ctx,
		"INSERT INTO locked_months (year, month) VALUES (?, ?) ON CONFLICT DO NOTHING",
		year, int(month),
	)
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", dateutil.MonthKey(year, month), err)
	}
	return nil
}

// Unlock removes the lock. Unlocking an unlocked month is a no-op.
func (r *SQLLockRegistry) Unlock(ctx context.Context, year int, month time.Month) error {
	if !dateutil.ValidMonth(int(month)) {
		return ErrInvalidMonth
	}
	_, err := r.db.exec(ctx, "DELETE FROM locked_months WHERE year = ? AND month = ?", year, int(month))
	if err != nil {
		return fmt.Errorf("failed to unlock %s: %w", dateutil.MonthKey(year, month), err)
	}
	return nil
}

// IsLocked reports whether the month is locked.
func (r *SQLLockRegistry) IsLocked(ctx context.Context, year int, month time.Month) (bool, error) {
	if !dateutil.ValidMonth(int(month)) {
		return false, ErrInvalidMonth
	}

	var count int
	err := r.db.queryRow(ctx,
		"SELECT COUNT(*) FROM locked_months WHERE year = ? AND month = ?",
		year, int(month),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check lock for %s: %w", dateutil.MonthKey(year, month), err)
	}
	return count > 0, nil
}

// List returns all locked months in chronological order.
func (r *SQLLockRegistry) List(ctx context.Context) ([]models.LockedMonth, error) {
	rows, err := r.db.query(ctx, "SELECT year, month FROM locked_months ORDER BY year, month")
	if err != nil {
		return nil, fmt.Errorf("failed to list locked months: %w", err)
	}
	defer rows.Close()

	var results []models.LockedMonth
	for rows.Next() {
		var year, month int
		if err := rows.Scan(&year, &month); err != nil {
			return nil, fmt.Errorf("failed to scan locked month: %w", err)
		}
		results = append(results, models.LockedMonth{Year: year, Month: time.Month(month)})
	}
	return results, rows.Err()
}
