package calendar

import (
	"context"
	"sort"
	"time"

	"github.com/username/timesheet-tracker/pkg/dateutil"
	"go.uber.org/zap"
)

// HolidayFetcher answers holiday queries from a YearCache, filling it from a HolidaySource
type HolidayFetcher struct {
	source HolidaySource
	cache  *YearCache
	logger *zap.Logger
}

// NewHolidayFetcher creates a new HolidayFetcher. A nil cache gets a fresh one.
func NewHolidayFetcher(source HolidaySource, cache *YearCache, logger *zap.Logger) *HolidayFetcher {
	if cache == nil {
		cache = NewYearCache()
	}

	return &HolidayFetcher{
		source: source,
		cache:  cache,
		logger: logger,
	}
}

// Year returns all holidays of the year.
// A failed fetch is cached as an empty year for the rest of the process lifetime.
func (f *HolidayFetcher) Year(ctx context.Context, year int) []Holiday {
	if holidays, ok := f.cache.Get(year); ok {
		f.logger.Debug("Using cached holidays", zap.Int("year", year))
		return holidays
	}

	holidays, err := f.source.PublicHolidays(ctx, year)
	if err != nil {
		f.logger.Warn("Failed to fetch holidays, caching empty year",
			zap.Int("year", year),
			zap.Error(err))
		holidays = nil
	}

	f.cache.Put(year, holidays)
	cached, _ := f.cache.Get(year)
	return cached
}

// Between returns holidays in [start, end), ordered by date.
// Only the years of start and end are consulted.
func (f *HolidayFetcher) Between(ctx context.Context, start, end time.Time) []Holiday {
	start = dateutil.Date(start.Year(), start.Month(), start.Day())
	end = dateutil.Date(end.Year(), end.Month(), end.Day())

	years := []int{start.Year()}
	if end.Year() != start.Year() {
		years = append(years, end.Year())
	}

	visible := []Holiday{}
	for _, year := range years {
		for _, h := range f.Year(ctx, year) {
			if !h.Date.Before(start) && h.Date.Before(end) {
				visible = append(visible, h)
			}
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Date.Before(visible[j].Date)
	})
	return visible
}

// BetweenStrings parses both bounds and delegates to Between.
// Missing or unparsable bounds yield an empty result.
func (f *HolidayFetcher) BetweenStrings(ctx context.Context, start, end string) []Holiday {
	if start == "" || end == "" {
		return []Holiday{}
	}

	from, err := dateutil.ParseDate(start)
	if err != nil {
		f.logger.Debug("Ignoring holiday query with bad start", zap.String("start", start))
		return []Holiday{}
	}
	to, err := dateutil.ParseDate(end)
	if err != nil {
		f.logger.Debug("Ignoring holiday query with bad end", zap.String("end", end))
		return []Holiday{}
	}

	return f.Between(ctx, from, to)
}

// Month returns the holidays of a single calendar month
func (f *HolidayFetcher) Month(ctx context.Context, year int, month time.Month) []Holiday {
	var result []Holiday
	for _, h := range f.Year(ctx, year) {
		if dateutil.InMonth(h.Date, year, month) {
			result = append(result, h)
		}
	}
	return result
}
