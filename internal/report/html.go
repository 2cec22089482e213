package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/username/timesheet-tracker/internal/calendar"
)

var pageTemplate = template.Must(template.New("timesheet").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Heading}}</title>
<style>
@page { size: A4 landscape; margin: 1cm; }
body { font-family: sans-serif; }
table { width: 100%; border-collapse: collapse; }
td { width: 14.28%; border: 1px solid #ccc; vertical-align: top; padding: 5px; height: 100px; }
th { background-color: #f3f4f6; padding: 6px; }
.day { display: flex; align-items: flex-start; }
.bar { width: 6px; height: 1em; margin-right: 6px; }
.holiday { font-size: 0.8em; font-style: italic; }
.footer { margin-top: 20px; font-size: 1rem; }
</style>
</head>
<body>
<h2>{{.Heading}}</h2>
<table>
  <thead><tr>{{range .Weekdays}}<th>{{.}}</th>{{end}}</tr></thead>
  <tbody>
{{- range .Weeks}}
  <tr>
  {{- range .}}
    {{- if .Empty}}<td></td>
    {{- else}}<td style="background-color: {{.Background}};"><div class="day">
      {{- with .Color}}<div class="bar" style="background-color: {{.}};"></div>{{end -}}
      <div><strong>{{.Day}}</strong><br>{{.Status}}{{if .HolidayName}}<div class="holiday">{{.HolidayName}}</div>{{end}}</div></div></td>
    {{- end}}
  {{- end}}
  </tr>
{{- end}}
  </tbody>
</table>
<div class="footer"><strong>Total work days:</strong> {{.Workdays}}</div>
</body>
</html>
`))

type pageData struct {
	Heading  string
	Weekdays [7]string
	Weeks    [][7]calendar.Cell
	Workdays int
}

// HTMLRenderer renders the month as a standalone printable HTML page
type HTMLRenderer struct{}

// NewHTMLRenderer creates a new HTMLRenderer
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// ContentType returns the MIME type of rendered documents
func (r *HTMLRenderer) ContentType() string {
	return ContentTypeHTML
}

// Render executes the page template
func (r *HTMLRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := pageData{
		Heading:  doc.Heading(),
		Weekdays: calendar.Weekdays,
		Weeks:    doc.Grid.Weeks,
		Workdays: doc.Grid.WorkdayCount,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.Bytes(), nil
}
