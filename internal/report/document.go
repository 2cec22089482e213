package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/username/timesheet-tracker/internal/calendar"
	"github.com/username/timesheet-tracker/pkg/dateutil"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// Document is one month of the timesheet ready for rendering
type Document struct {
	Grid  calendar.Grid
	Title string
}

// Renderer turns a Document into a printable file
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
	ContentType() string
}

// Heading returns the page heading, e.g. "Timesheet Calendar - Jane Doe – 2024-02"
func (d Document) Heading() string {
	var b strings.Builder
	b.WriteString("Timesheet Calendar")
	if title := strings.TrimSpace(d.Title); title != "" {
		b.WriteString(" - ")
		b.WriteString(title)
	}
	b.WriteString(" – ")
	b.WriteString(dateutil.MonthKey(d.Grid.Year, d.Grid.Month))
	return b.String()
}

// Footer returns the work day total line
func (d Document) Footer() string {
	return fmt.Sprintf("Total work days: %d", d.Grid.WorkdayCount)
}

// Filename returns the download name of a PDF export.
// The trimmed title, spaces replaced by underscores, is inserted when present.
func Filename(title string, year int, month time.Month) string {
	prefix := ""
	if title = strings.TrimSpace(title); title != "" {
		prefix = strings.ReplaceAll(title, " ", "_") + "_"
	}
	return fmt.Sprintf("timesheet_%s%d_%02d.pdf", prefix, year, int(month))
}
