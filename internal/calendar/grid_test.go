package calendar

import (
	"testing"
	"time"

	"github.com/username/timesheet-tracker/internal/models"
	"github.com/username/timesheet-tracker/pkg/dateutil"
)

func TestBuildGrid_February2024Shape(t *testing.T) {
	grid := BuildGrid(2024, time.February, nil, nil)

	if len(grid.Weeks) != 5 {
		t.Fatalf("Weeks = %d, want 5", len(grid.Weeks))
	}

	realDays := 0
	for w, week := range grid.Weeks {
		for col, cell := range week {
			if cell.Empty() {
				continue
			}
			realDays++
			if cell.Weekend != (col >= 5) {
				t.Errorf("week %d col %d: Weekend = %v, want %v", w, col, cell.Weekend, col >= 5)
			}
		}
	}
	if realDays != 29 {
		t.Errorf("real day cells = %d, want 29", realDays)
	}

	// February 1st 2024 is a Thursday
	first := grid.Weeks[0]
	for col := 0; col < 3; col++ {
		if !first[col].Empty() {
			t.Errorf("week 0 col %d = %+v, want placeholder", col, first[col])
		}
	}
	if first[3].Day != 1 {
		t.Errorf("week 0 col 3 Day = %d, want 1", first[3].Day)
	}

	last := grid.Weeks[4]
	if last[3].Day != 29 {
		t.Errorf("week 4 col 3 Day = %d, want 29", last[3].Day)
	}
	for col := 4; col < 7; col++ {
		if !last[col].Empty() {
			t.Errorf("week 4 col %d = %+v, want placeholder", col, last[col])
		}
	}

	days := grid.Days()
	for i, cell := range days {
		if cell.Day != i+1 {
			t.Fatalf("Days()[%d].Day = %d, want %d", i, cell.Day, i+1)
		}
	}
}

func TestBuildGrid_MonthStartingMonday(t *testing.T) {
	// April 2024 starts on a Monday and has 30 days
	grid := BuildGrid(2024, time.April, nil, nil)

	if grid.Weeks[0][0].Day != 1 {
		t.Errorf("first cell Day = %d, want 1", grid.Weeks[0][0].Day)
	}
	if len(grid.Weeks) != 5 {
		t.Errorf("Weeks = %d, want 5", len(grid.Weeks))
	}
	if len(grid.Days()) != 30 {
		t.Errorf("Days() = %d, want 30", len(grid.Days()))
	}
}

func TestBuildGrid_StatusesAndHolidays(t *testing.T) {
	events := []models.Event{
		{Date: dateutil.Date(2024, 5, 2), Status: models.StatusWork},
		{Date: dateutil.Date(2024, 5, 3), Status: models.StatusAbsence},
		{Date: dateutil.Date(2024, 5, 4), Status: models.StatusWork}, // Saturday
		{Date: dateutil.Date(2024, 4, 30), Status: models.StatusWork},
		{Date: dateutil.Date(2023, 5, 2), Status: models.StatusWork},
	}
	holidays := []Holiday{
		{Date: dateutil.Date(2024, 5, 1), Name: "Labour Day"},
		{Date: dateutil.Date(2024, 1, 1), Name: "New Year"},
		{Date: dateutil.Date(2025, 5, 8), Name: "Other year"},
	}

	grid := BuildGrid(2024, time.May, events, holidays)
	days := grid.Days()

	if grid.WorkdayCount != 2 {
		t.Errorf("WorkdayCount = %d, want 2", grid.WorkdayCount)
	}

	may1 := days[0]
	if !may1.Holiday || may1.HolidayName != "Labour Day" {
		t.Errorf("May 1 = %+v, want Labour Day holiday", may1)
	}
	if may1.Background() != BackgroundHoliday {
		t.Errorf("May 1 Background() = %q, want %q", may1.Background(), BackgroundHoliday)
	}

	if days[1].Status != models.StatusWork || days[1].Color() != ColorWork {
		t.Errorf("May 2 = %+v color %q, want work", days[1], days[1].Color())
	}
	if days[2].Status != models.StatusAbsence || days[2].Color() != ColorAbsence {
		t.Errorf("May 3 = %+v color %q, want absence", days[2], days[2].Color())
	}
	if days[3].Background() != BackgroundWeekend {
		t.Errorf("May 4 Background() = %q, want weekend", days[3].Background())
	}
	if days[4].Status != models.StatusNone || days[4].Color() != "" {
		t.Errorf("May 5 = %+v, want no status", days[4])
	}
	if days[5].Background() != BackgroundDefault {
		t.Errorf("May 6 Background() = %q, want %q", days[5].Background(), BackgroundDefault)
	}

	for _, cell := range days {
		if cell.Day == 8 && cell.Holiday {
			t.Error("May 8 flagged as holiday from another year")
		}
	}
}

func TestCell_BackgroundPriority(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{"holiday on weekend", Cell{Day: 1, Holiday: true, Weekend: true}, BackgroundHoliday},
		{"weekend", Cell{Day: 1, Weekend: true}, BackgroundWeekend},
		{"weekday", Cell{Day: 1}, BackgroundDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.Background(); got != tt.want {
				t.Errorf("Background() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildGrid_WorkdayCountMatchesCells(t *testing.T) {
	var events []models.Event
	for d := 1; d <= 29; d++ {
		status := models.StatusWork
		if d%4 == 0 {
			status = models.StatusAbsence
		}
		events = append(events, models.Event{Date: dateutil.Date(2024, 2, d), Status: status})
	}

	grid := BuildGrid(2024, time.February, events, nil)

	cells := 0
	for _, cell := range grid.Days() {
		if cell.Status == models.StatusWork {
			cells++
		}
	}
	if grid.WorkdayCount != cells {
		t.Errorf("WorkdayCount = %d, want %d (cells with work)", grid.WorkdayCount, cells)
	}
	if cells != 22 {
		t.Errorf("work cells = %d, want 22", cells)
	}
}
