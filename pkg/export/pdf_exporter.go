package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth  = 277.0
	nameWidth  = 42.0
	idWidth    = 22.0
	minColumn  = 9.0
	fixedCols  = 2
	headerSize = 7.0
)

// PDFExporter renders a Sheet into a landscape tabular PDF.
type PDFExporter struct {
	uncompressed bool
}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title followed by one table block per section.
func (e *PDFExporter) Render(sheet Sheet, title string) ([]byte, error) {
	if len(sheet.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	widths := columnWidths(len(sheet.Headers))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.SetCompression(!e.uncompressed)
	pdf.AddPage()
	// core fonts are cp1252 encoded
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	header := func() {
		pdf.SetFont("Arial", "B", headerSize)
		pdf.SetFillColor(236, 240, 241)
		for i, h := range sheet.Headers {
			pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	header()

	for _, section := range sheet.Sections {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(0, 8, tr(section.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", headerSize)
		for _, row := range section.Rows {
			for i := range sheet.Headers {
				value := ""
				if i < len(row) {
					value = row[i]
				}
				align := "C"
				if i < fixedCols {
					align = "L"
				}
				pdf.CellFormat(widths[i], 6, tr(value), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths gives the name and id columns a fixed width and splits the rest evenly.
func columnWidths(n int) []float64 {
	widths := make([]float64, n)
	if n <= fixedCols {
		for i := range widths {
			widths[i] = pageWidth / float64(n)
		}
		return widths
	}
	widths[0], widths[1] = nameWidth, idWidth
	rest := (pageWidth - nameWidth - idWidth) / float64(n-fixedCols)
	if rest < minColumn {
		rest = minColumn
	}
	for i := fixedCols; i < n; i++ {
		widths[i] = rest
	}
	return widths
}
