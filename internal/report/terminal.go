package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/username/timesheet-tracker/internal/calendar"
	"github.com/username/timesheet-tracker/internal/models"
)

const terminalCellWidth = 6

var (
	headingStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

	weekdayStyle = lipgloss.NewStyle().
			Width(terminalCellWidth).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(lipgloss.Color("245"))

	cellStyle = lipgloss.NewStyle().
			Width(terminalCellWidth).
			Align(lipgloss.Center)

	footerStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	legendStyle = lipgloss.NewStyle().Faint(true)
)

// Terminal renders the grid as a coloured month view for the CLI
func Terminal(grid calendar.Grid, title string) string {
	doc := Document{Grid: grid, Title: title}

	var b strings.Builder
	b.WriteString(headingStyle.Render(doc.Heading()))
	b.WriteString("\n")

	headers := make([]string, 0, len(calendar.Weekdays))
	for _, wd := range calendar.Weekdays {
		headers = append(headers, weekdayStyle.Render(wd))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	b.WriteString("\n")

	var holidays []string
	for _, week := range grid.Weeks {
		cells := make([]string, 0, len(week))
		for _, cell := range week {
			cells = append(cells, terminalCell(cell))
			if cell.Holiday {
				holidays = append(holidays, fmt.Sprintf("%02d %s", cell.Day, cell.HolidayName))
			}
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	if len(holidays) > 0 {
		b.WriteString("\n")
		b.WriteString(legendStyle.Render("Holidays: " + strings.Join(holidays, ", ")))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render(doc.Footer()))
	b.WriteString("\n")
	return b.String()
}

func terminalCell(cell calendar.Cell) string {
	if cell.Empty() {
		return cellStyle.Render("")
	}

	style := cellStyle
	switch {
	case cell.Holiday:
		style = style.Background(lipgloss.Color(calendar.BackgroundHoliday)).Foreground(lipgloss.Color("0"))
	case cell.Weekend:
		style = style.Background(lipgloss.Color(calendar.BackgroundWeekend)).Foreground(lipgloss.Color("0"))
	}

	text := fmt.Sprintf("%2d", cell.Day)
	switch cell.Status {
	case models.StatusWork:
		text += "W"
		style = style.Foreground(lipgloss.Color(calendar.ColorWork)).Bold(true)
	case models.StatusAbsence:
		text += "A"
		style = style.Foreground(lipgloss.Color(calendar.ColorAbsence)).Bold(true)
	default:
		text += " "
	}
	return style.Render(text)
}
