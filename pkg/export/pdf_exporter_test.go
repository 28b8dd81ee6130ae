package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleSheet(), "Gradebook")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Sheet{}, "")
	assert.Error(t, err)
}

func TestPDFExporterEncodesLatin1Text(t *testing.T) {
	sheet := Sheet{
		Headers: []string{"Student Name", "Student ID", "Résumé"},
		Sections: []Section{{
			Title: "Français",
			Rows:  [][]string{{"Zoë Müller", "SID-1001", "9"}},
		}},
	}

	out, err := (&PDFExporter{uncompressed: true}).Render(sheet, "")
	require.NoError(t, err)
	assert.Contains(t, string(out), "R\xe9sum\xe9")
	assert.Contains(t, string(out), "Fran\xe7ais")
	assert.Contains(t, string(out), "Zo\xeb M\xfcller")
	assert.NotContains(t, string(out), "Résumé")
}

func TestColumnWidths(t *testing.T) {
	assert.Equal(t, []float64{pageWidth / 2, pageWidth / 2}, columnWidths(2))

	widths := columnWidths(4)
	assert.Equal(t, nameWidth, widths[0])
	assert.Equal(t, idWidth, widths[1])
	assert.InDelta(t, (pageWidth-nameWidth-idWidth)/2, widths[2], 1e-9)

	narrow := columnWidths(60)
	assert.Equal(t, minColumn, narrow[59])
}
