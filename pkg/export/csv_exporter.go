package export

import (
	"bytes"
	"fmt"
	"strings"
)

// Content types of the rendered documents.
const (
	ContentTypeCSV = "text/csv; charset=utf-8"
	ContentTypePDF = "application/pdf"
)

const rowTerminator = "\r\n"

// Section is a titled block of rows.
type Section struct {
	Title string
	Rows  [][]string
}

// Sheet defines tabular export content grouped into sections that share one header row.
type Sheet struct {
	Headers  []string
	Sections []Section
}

// CSVExporter renders a Sheet into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render writes the header row, then for every section a quoted title row, its
// rows and a blank separator row. Rows end with CRLF.
func (e *CSVExporter) Render(sheet Sheet) ([]byte, error) {
	if len(sheet.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writeRecord(buf, sheet.Headers)
	for _, section := range sheet.Sections {
		buf.WriteString(quote(section.Title))
		buf.WriteString(rowTerminator)
		for i, row := range section.Rows {
			if len(row) != len(sheet.Headers) {
				return nil, fmt.Errorf("csv row %d of %q has %d fields, want %d", i, section.Title, len(row), len(sheet.Headers))
			}
			writeRecord(buf, row)
		}
		buf.WriteString(rowTerminator)
	}
	return buf.Bytes(), nil
}

func writeRecord(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(EscapeField(field))
	}
	buf.WriteString(rowTerminator)
}

// EscapeField quotes a field containing a comma, double quote or newline and
// doubles its inner quotes. Other fields are returned unchanged.
func EscapeField(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return quote(field)
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
