package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	expected := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	result := StartOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("StartOfDay(%v) = %v, want %v", input, result, expected)
	}
}

func TestWeekdayIndex(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  int
	}{
		{"Monday", time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), 0},
		{"Thursday", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 3},
		{"Saturday", time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC), 5},
		{"Sunday", time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekdayIndex(tt.input); got != tt.want {
				t.Errorf("WeekdayIndex(%v) = %d, want %d", tt.input.Format("2006-01-02 Mon"), got, tt.want)
			}
		})
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  bool
	}{
		{"Saturday is weekend", time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC), true},
		{"Sunday is weekend", time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC), true},
		{"Monday is not weekend", time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), false},
		{"Friday is not weekend", time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsWeekend(tt.input)

			if result != tt.want {
				t.Errorf("IsWeekend(%v) = %v, want %v",
					tt.input.Format("2006-01-02 Mon"), result, tt.want)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestNextMonthStart(t *testing.T) {
	got := NextMonthStart(2024, time.December)
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NextMonthStart(2024, December) = %v, want %v", got, want)
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(2024, time.February); got != "2024-02" {
		t.Errorf("MonthKey() = %q, want %q", got, "2024-02")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			"ISO format YYYY-MM-DD",
			"2025-01-15",
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"Dotted format DD.MM.YYYY",
			"15.01.2025",
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"ISO with time is truncated to the date",
			"2025-01-15T10:30:00",
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"Surrounding whitespace",
			" 2024-02-29 ",
			time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			false,
		},
		{"Garbage", "not-a-date", time.Time{}, true},
		{"Empty", "", time.Time{}, true},
		{"Impossible day", "2023-02-29", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Errorf("ParseDate(%v) error = %v, want ErrInvalidDate", tt.input, err)
				}
				return
			}

			if !result.Equal(tt.want) {
				t.Errorf("ParseDate(%v) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input     string
		wantYear  int
		wantMonth time.Month
		wantErr   bool
	}{
		{"2024-02", 2024, time.February, false},
		{" 2023-12 ", 2023, time.December, false},
		{"2024-13", 0, 0, true},
		{"2024-2", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		year, month, err := ParseMonth(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMonth(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if year != tt.wantYear || month != tt.wantMonth {
			t.Errorf("ParseMonth(%q) = %d-%d, want %d-%d", tt.input, year, month, tt.wantYear, tt.wantMonth)
		}
	}
}
