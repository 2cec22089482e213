package calendar

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/username/timesheet-tracker/pkg/dateutil"
	"go.uber.org/zap"
)

// stubSource counts calls per year and serves fixed data
type stubSource struct {
	mu       sync.Mutex
	calls    map[int]int
	holidays map[int][]Holiday
	err      error
}

func newStubSource(holidays map[int][]Holiday) *stubSource {
	return &stubSource{calls: make(map[int]int), holidays: holidays}
}

func (s *stubSource) PublicHolidays(ctx context.Context, year int) ([]Holiday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[year]++
	if s.err != nil {
		return nil, s.err
	}
	return s.holidays[year], nil
}

func (s *stubSource) callCount(year int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[year]
}

func holidays2024() map[int][]Holiday {
	return map[int][]Holiday{
		2024: {
			{Date: dateutil.Date(2024, 1, 1), Name: "New Year"},
			{Date: dateutil.Date(2024, 5, 1), Name: "Labour Day"},
			{Date: dateutil.Date(2024, 12, 25), Name: "Christmas"},
		},
		2025: {
			{Date: dateutil.Date(2025, 1, 1), Name: "New Year"},
		},
	}
}

func TestHolidayFetcher_BetweenFiltersRange(t *testing.T) {
	src := newStubSource(map[int][]Holiday{
		2024: {
			{Date: dateutil.Date(2024, 1, 1), Name: "New Year"},
			{Date: dateutil.Date(2024, 5, 1), Name: "Labour Day"},
		},
	})
	f := NewHolidayFetcher(src, nil, zap.NewNop())

	got := f.Between(context.Background(), dateutil.Date(2024, 1, 1), dateutil.Date(2024, 2, 1))

	if len(got) != 1 {
		t.Fatalf("Between() returned %d holidays, want 1: %+v", len(got), got)
	}
	if got[0].Name != "New Year" || !got[0].Date.Equal(dateutil.Date(2024, 1, 1)) {
		t.Errorf("Between()[0] = %+v, want 2024-01-01 New Year", got[0])
	}
}

func TestHolidayFetcher_BetweenEndExclusive(t *testing.T) {
	f := NewHolidayFetcher(newStubSource(holidays2024()), nil, zap.NewNop())

	got := f.Between(context.Background(), dateutil.Date(2024, 4, 1), dateutil.Date(2024, 5, 1))
	if len(got) != 0 {
		t.Errorf("Between() = %+v, want none (end is exclusive)", got)
	}
}

func TestHolidayFetcher_BetweenSpansYearBoundary(t *testing.T) {
	src := newStubSource(holidays2024())
	f := NewHolidayFetcher(src, nil, zap.NewNop())

	got := f.Between(context.Background(), dateutil.Date(2024, 12, 1), dateutil.Date(2025, 1, 31))

	if len(got) != 2 {
		t.Fatalf("Between() returned %d holidays, want 2: %+v", len(got), got)
	}
	if got[0].Name != "Christmas" || got[1].Name != "New Year" {
		t.Errorf("Between() = %+v, want Christmas then New Year", got)
	}
	if src.callCount(2024) != 1 || src.callCount(2025) != 1 {
		t.Errorf("calls = %v, want one per year", src.calls)
	}
}

func TestHolidayFetcher_OnlyEndpointYears(t *testing.T) {
	src := newStubSource(holidays2024())
	f := NewHolidayFetcher(src, nil, zap.NewNop())

	f.Between(context.Background(), dateutil.Date(2023, 6, 1), dateutil.Date(2025, 6, 1))

	if src.callCount(2024) != 0 {
		t.Errorf("year 2024 fetched %d times, want 0 (only endpoint years are consulted)", src.callCount(2024))
	}
	if src.callCount(2023) != 1 || src.callCount(2025) != 1 {
		t.Errorf("calls = %v, want 2023 and 2025 once each", src.calls)
	}
}

func TestHolidayFetcher_Memoizes(t *testing.T) {
	src := newStubSource(holidays2024())
	f := NewHolidayFetcher(src, nil, zap.NewNop())
	ctx := context.Background()

	f.Between(ctx, dateutil.Date(2024, 1, 1), dateutil.Date(2024, 2, 1))
	f.Between(ctx, dateutil.Date(2024, 5, 1), dateutil.Date(2024, 6, 1))
	f.Year(ctx, 2024)

	if got := src.callCount(2024); got != 1 {
		t.Errorf("source called %d times for 2024, want 1", got)
	}
}

func TestHolidayFetcher_FailureCachedAsEmpty(t *testing.T) {
	src := newStubSource(nil)
	src.err = errors.New("upstream down")
	cache := NewYearCache()
	f := NewHolidayFetcher(src, cache, zap.NewNop())
	ctx := context.Background()

	if got := f.Year(ctx, 2024); len(got) != 0 {
		t.Errorf("Year() = %+v, want empty on failure", got)
	}
	if got := f.Year(ctx, 2024); len(got) != 0 {
		t.Errorf("Year() second call = %+v, want empty", got)
	}

	if got := src.callCount(2024); got != 1 {
		t.Errorf("source called %d times, want 1 (failure must be cached)", got)
	}
	if cached, ok := cache.Get(2024); !ok || cached == nil || len(cached) != 0 {
		t.Errorf("cache.Get(2024) = %v, %v; want empty non-nil entry", cached, ok)
	}
}

func TestHolidayFetcher_BetweenStrings(t *testing.T) {
	src := newStubSource(holidays2024())
	f := NewHolidayFetcher(src, nil, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"valid range", "2024-01-01", "2024-02-01", 1},
		{"unparsable start", "yesterday", "2024-02-01", 0},
		{"unparsable end", "2024-01-01", "soon", 0},
		{"missing start", "", "2024-02-01", 0},
		{"missing end", "2024-01-01", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.BetweenStrings(ctx, tt.start, tt.end)
			if got == nil {
				t.Fatal("BetweenStrings() = nil, want non-nil slice")
			}
			if len(got) != tt.want {
				t.Errorf("BetweenStrings(%q, %q) returned %d holidays, want %d", tt.start, tt.end, len(got), tt.want)
			}
		})
	}

	if src.callCount(2024) != 1 {
		t.Errorf("source called %d times, want 1 (malformed queries must not fetch)", src.callCount(2024))
	}
}

func TestHolidayFetcher_Month(t *testing.T) {
	f := NewHolidayFetcher(newStubSource(holidays2024()), nil, zap.NewNop())

	got := f.Month(context.Background(), 2024, time.May)
	if len(got) != 1 || got[0].Name != "Labour Day" {
		t.Errorf("Month(2024, May) = %+v, want Labour Day only", got)
	}
}

func TestYearCache_FirstWriteWins(t *testing.T) {
	cache := NewYearCache()
	cache.Put(2024, []Holiday{{Name: "first"}})
	cache.Put(2024, []Holiday{{Name: "second"}})

	got, ok := cache.Get(2024)
	if !ok || len(got) != 1 || got[0].Name != "first" {
		t.Errorf("Get(2024) = %+v, %v; want first entry", got, ok)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}
