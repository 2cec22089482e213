package timesheet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/username/timesheet-tracker/internal/calendar"
	"github.com/username/timesheet-tracker/internal/models"
	"github.com/username/timesheet-tracker/internal/report"
	"github.com/username/timesheet-tracker/internal/storage"
	"github.com/username/timesheet-tracker/pkg/dateutil"
	"go.uber.org/zap"
)

// Format selects the export rendition
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

// ErrUnknownFormat is returned by Export for formats other than pdf and html
var ErrUnknownFormat = errors.New("unknown export format")

// Export is a rendered month ready to be served or written to disk
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

// MonthStatus summarizes one month for the CLI
type MonthStatus struct {
	Year      int
	Month     time.Month
	Workdays  int
	Absences  int
	Locked    bool
	Holidays  []calendar.Holiday
	Remaining int // weekdays that are neither holidays nor recorded
}

// Manager ties the stores, the holiday fetcher and the renderers together
type Manager struct {
	events   storage.EventStore
	locks    storage.LockRegistry
	holidays *calendar.HolidayFetcher
	renderer report.Renderer
	html     *report.HTMLRenderer
	title    string
	logger   *zap.Logger
}

// NewManager creates a new timesheet manager.
// renderer produces PDF exports; title is the optional export title.
func NewManager(
	events storage.EventStore,
	locks storage.LockRegistry,
	holidays *calendar.HolidayFetcher,
	renderer report.Renderer,
	title string,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		events:   events,
		locks:    locks,
		holidays: holidays,
		renderer: renderer,
		html:     report.NewHTMLRenderer(),
		title:    strings.TrimSpace(title),
		logger:   logger,
	}
}

// SetStatus records the status of a date. An empty status clears it.
func (m *Manager) SetStatus(ctx context.Context, date string, status string) error {
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return err
	}

	if err := m.events.Upsert(ctx, day, models.Status(status)); err != nil {
		return fmt.Errorf("failed to record status: %w", err)
	}

	m.logger.Debug("Status recorded",
		zap.String("date", dateutil.FormatDate(day)),
		zap.String("status", status))
	return nil
}

// Events returns every recorded day
func (m *Manager) Events(ctx context.Context) ([]models.Event, error) {
	events, err := m.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// Lock marks a month read-only for the UI
func (m *Manager) Lock(ctx context.Context, year int, month time.Month) error {
	if err := m.locks.Lock(ctx, year, month); err != nil {
		return fmt.Errorf("failed to lock month: %w", err)
	}
	m.logger.Info("Month locked", zap.String("month", dateutil.MonthKey(year, month)))
	return nil
}

// Unlock removes the lock of a month
func (m *Manager) Unlock(ctx context.Context, year int, month time.Month) error {
	if err := m.locks.Unlock(ctx, year, month); err != nil {
		return fmt.Errorf("failed to unlock month: %w", err)
	}
	m.logger.Info("Month unlocked", zap.String("month", dateutil.MonthKey(year, month)))
	return nil
}

// IsLocked reports whether the month is locked
func (m *Manager) IsLocked(ctx context.Context, year int, month time.Month) (bool, error) {
	locked, err := m.locks.IsLocked(ctx, year, month)
	if err != nil {
		return false, fmt.Errorf("failed to check lock: %w", err)
	}
	return locked, nil
}

// LockedMonths returns every locked month
func (m *Manager) LockedMonths(ctx context.Context) ([]models.LockedMonth, error) {
	months, err := m.locks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locked months: %w", err)
	}
	return months, nil
}

// Holidays returns holidays in [start, end) for raw query bounds.
// Missing or malformed bounds give an empty list.
func (m *Manager) Holidays(ctx context.Context, start, end string) []calendar.Holiday {
	return m.holidays.BetweenStrings(ctx, start, end)
}

// Summary returns the number of work days recorded in the month
func (m *Manager) Summary(ctx context.Context, year int, month time.Month) (int, error) {
	count, err := m.events.CountByMonth(ctx, year, month, models.StatusWork)
	if err != nil {
		return 0, fmt.Errorf("failed to count work days: %w", err)
	}
	return count, nil
}

// Grid builds the month grid from recorded events and public holidays
func (m *Manager) Grid(ctx context.Context, year int, month time.Month) (calendar.Grid, error) {
	if !dateutil.ValidMonth(int(month)) {
		return calendar.Grid{}, fmt.Errorf("%w: %d", storage.ErrInvalidMonth, month)
	}

	events, err := m.Events(ctx)
	if err != nil {
		return calendar.Grid{}, err
	}
	holidays := m.holidays.Month(ctx, year, month)

	return calendar.BuildGrid(year, month, events, holidays), nil
}

// Status gathers the monthly overview shown by the CLI
func (m *Manager) Status(ctx context.Context, year int, month time.Month) (*MonthStatus, error) {
	grid, err := m.Grid(ctx, year, month)
	if err != nil {
		return nil, err
	}
	locked, err := m.IsLocked(ctx, year, month)
	if err != nil {
		return nil, err
	}

	status := &MonthStatus{
		Year:     year,
		Month:    month,
		Workdays: grid.WorkdayCount,
		Locked:   locked,
		Holidays: m.holidays.Month(ctx, year, month),
	}
	for _, cell := range grid.Days() {
		switch {
		case cell.Status == models.StatusAbsence:
			status.Absences++
		case cell.Status == models.StatusNone && !cell.Weekend && !cell.Holiday:
			status.Remaining++
		}
	}

	return status, nil
}

// Export renders the month in the requested format
func (m *Manager) Export(ctx context.Context, year int, month time.Month, format Format) (*Export, error) {
	var renderer report.Renderer
	switch format {
	case FormatPDF, "":
		renderer = m.renderer
	case FormatHTML:
		renderer = m.html
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	grid, err := m.Grid(ctx, year, month)
	if err != nil {
		return nil, err
	}

	body, err := renderer.Render(ctx, report.Document{Grid: grid, Title: m.title})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", dateutil.MonthKey(year, month), err)
	}

	filename := report.Filename(m.title, year, month)
	if format == FormatHTML {
		filename = strings.TrimSuffix(filename, ".pdf") + ".html"
	}

	m.logger.Info("Month exported",
		zap.String("month", dateutil.MonthKey(year, month)),
		zap.String("filename", filename),
		zap.Int("workdays", grid.WorkdayCount),
		zap.Int("bytes", len(body)))

	return &Export{
		Filename:    filename,
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}
