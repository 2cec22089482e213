package report

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/username/timesheet-tracker/internal/calendar"
)

// page geometry in millimetres, A4 landscape
const (
	pageMargin  = 10.0
	pageWidth   = 297.0
	pageHeight  = 210.0
	headingH    = 12.0
	headerRowH  = 8.0
	footerH     = 10.0
	maxRowH     = 28.0
	statusBarW  = 1.6
	statusBarH  = 4.5
	cellPadding = 2.0
	fontFamily  = "Helvetica"
	borderColor = "#cccccc"
	headerColor = "#f3f4f6"
)

// PDFRenderer draws the month grid natively with fpdf
type PDFRenderer struct {
	compress bool
}

// NewPDFRenderer creates a new PDFRenderer. Uncompressed output keeps text searchable in the raw file.
func NewPDFRenderer(compress bool) *PDFRenderer {
	return &PDFRenderer{compress: compress}
}

// ContentType returns the MIME type of rendered documents
func (r *PDFRenderer) ContentType() string {
	return ContentTypePDF
}

// Render produces a single A4 landscape page
func (r *PDFRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetTitle(doc.Heading(), true)
	pdf.AddPage()

	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, headingH, tr(doc.Heading()), "", 1, "L", false, 0, "")

	colW := (pageWidth - 2*pageMargin) / 7
	weeks := doc.Grid.Weeks
	rowH := maxRowH
	if len(weeks) > 0 {
		avail := pageHeight - 2*pageMargin - headingH - headerRowH - footerH
		if h := avail / float64(len(weeks)); h < rowH {
			rowH = h
		}
	}

	setDraw(pdf, borderColor)
	setFill(pdf, headerColor)
	pdf.SetFont(fontFamily, "B", 11)
	for _, wd := range calendar.Weekdays {
		pdf.CellFormat(colW, headerRowH, wd, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	for _, week := range weeks {
		y := pdf.GetY()
		for col, cell := range week {
			x := pageMargin + float64(col)*colW
			drawCell(pdf, tr, cell, x, y, colW, rowH)
		}
		pdf.SetXY(pageMargin, y+rowH)
	}

	pdf.Ln(4)
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(0, footerH-4, tr(doc.Footer()), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func drawCell(pdf *fpdf.Fpdf, tr func(string) string, cell calendar.Cell, x, y, w, h float64) {
	setDraw(pdf, borderColor)
	if cell.Empty() {
		pdf.Rect(x, y, w, h, "D")
		return
	}

	setFill(pdf, cell.Background())
	pdf.Rect(x, y, w, h, "FD")

	textX := x + cellPadding
	if color := cell.Color(); color != "" {
		setFill(pdf, color)
		pdf.Rect(x+cellPadding, y+cellPadding, statusBarW, statusBarH, "F")
		textX += statusBarW + cellPadding
	}

	pdf.SetXY(textX, y+cellPadding)
	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(w-(textX-x)-cellPadding, statusBarH, strconv.Itoa(cell.Day), "", 2, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 9)
	if cell.Status != "" {
		pdf.CellFormat(w-(textX-x)-cellPadding, 4.5, string(cell.Status), "", 2, "L", false, 0, "")
	}
	if cell.Holiday && cell.HolidayName != "" {
		pdf.SetFont(fontFamily, "I", 8)
		pdf.MultiCell(w-(textX-x)-cellPadding, 3.5, tr(cell.HolidayName), "", "L", false)
	}
}

func setFill(pdf *fpdf.Fpdf, color string) {
	r, g, b := rgb(color)
	pdf.SetFillColor(r, g, b)
}

func setDraw(pdf *fpdf.Fpdf, color string) {
	r, g, b := rgb(color)
	pdf.SetDrawColor(r, g, b)
}

// rgb converts "#rrggbb" or "white" into components. Unknown values map to white.
func rgb(color string) (int, int, int) {
	hex := strings.TrimPrefix(color, "#")
	if len(hex) != 6 {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
