package calendar

import (
	"time"

	"github.com/username/timesheet-tracker/internal/models"
	"github.com/username/timesheet-tracker/pkg/dateutil"
)

const (
	ColorWork    = "#16a34a"
	ColorAbsence = "#dc2626"

	BackgroundHoliday = "#e5e7eb"
	BackgroundWeekend = "#fef9c3"
	BackgroundDefault = "white"
)

// Weekdays are the column headers of a Grid
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Cell is one square of the month grid. Day is 0 for placeholders outside the month.
type Cell struct {
	Day         int
	Status      models.Status
	Holiday     bool
	HolidayName string
	Weekend     bool
}

// Empty reports whether the cell is a placeholder
func (c Cell) Empty() bool {
	return c.Day == 0
}

// Color returns the status marker colour, or "" when no status is recorded
func (c Cell) Color() string {
	switch c.Status {
	case models.StatusWork:
		return ColorWork
	case models.StatusAbsence:
		return ColorAbsence
	default:
		return ""
	}
}

// Background returns the cell fill: holiday over weekend over default
func (c Cell) Background() string {
	switch {
	case c.Holiday:
		return BackgroundHoliday
	case c.Weekend:
		return BackgroundWeekend
	default:
		return BackgroundDefault
	}
}

// Grid is a month laid out in Monday-first weeks
type Grid struct {
	Year         int
	Month        time.Month
	Weeks        [][7]Cell
	WorkdayCount int
}

// Days returns the real day cells in calendar order
func (g Grid) Days() []Cell {
	days := make([]Cell, 0, 31)
	for _, week := range g.Weeks {
		for _, cell := range week {
			if !cell.Empty() {
				days = append(days, cell)
			}
		}
	}
	return days
}

// BuildGrid reconciles events and holidays into the month grid.
// events and holidays may cover any period; only entries inside the month are used.
func BuildGrid(year int, month time.Month, events []models.Event, holidays []Holiday) Grid {
	statusByDay := make(map[int]models.Status)
	workdays := 0
	for _, e := range events {
		if !dateutil.InMonth(e.Date, year, month) {
			continue
		}
		statusByDay[e.Date.Day()] = e.Status
	}
	for _, status := range statusByDay {
		if status == models.StatusWork {
			workdays++
		}
	}

	holidayByDay := make(map[int]string)
	for _, h := range holidays {
		if dateutil.InMonth(h.Date, year, month) {
			holidayByDay[h.Date.Day()] = h.Name
		}
	}

	grid := Grid{Year: year, Month: month, WorkdayCount: workdays}

	first := dateutil.MonthStart(year, month)
	offset := dateutil.WeekdayIndex(first)
	days := dateutil.DaysInMonth(year, month)

	var week [7]Cell
	col := offset
	for d := 1; d <= days; d++ {
		date := dateutil.Date(year, month, d)
		name, isHoliday := holidayByDay[d]
		week[col] = Cell{
			Day:         d,
			Status:      statusByDay[d],
			Holiday:     isHoliday,
			HolidayName: name,
			Weekend:     dateutil.IsWeekend(date),
		}

		col++
		if col == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = [7]Cell{}
			col = 0
		}
	}
	if col > 0 {
		grid.Weeks = append(grid.Weeks, week)
	}

	return grid
}
