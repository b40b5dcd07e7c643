package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf/v2"
)

const (
	pageMargin = 10.0
	rowHeight  = 6.0
)

// PDF writes t as a landscape A4 table. Columns share the page width evenly and
// the header row is repeated on every page.
func PDF(w io.Writer, t Table) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, pageHeight := pdf.GetPageSize()
	colWidth := pageWidth - 2*pageMargin
	if len(t.Headers) > 0 {
		colWidth /= float64(len(t.Headers))
	}

	header := func() {
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range t.Headers {
			pdf.CellFormat(colWidth, rowHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}

	pdf.AddPage()
	if t.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 8, tr(t.Title), "", 1, "L", false, 0, "")
	}
	if t.Subtitle != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, tr(t.Subtitle), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	header()

	for _, row := range t.Rows {
		if pdf.GetY()+rowHeight > pageHeight-pageMargin {
			pdf.AddPage()
			header()
		}
		for i := range t.Headers {
			var v string
			if i < len(row) {
				v = row[i]
			}
			pdf.CellFormat(colWidth, rowHeight, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// Line is one labelled value of a statement.
type Line struct {
	Label string
	Value string
	Bold  bool
}

type Section struct {
	Heading string
	Lines   []Line
}

// Statement is a portrait document of labelled sections, such as a salary slip.
type Statement struct {
	Title    string
	Subtitle string
	Sections []Section
	Footer   string
}

func StatementPDF(w io.Writer, s Statement) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(s.Title), "", 1, "C", false, 0, "")
	if s.Subtitle != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, tr(s.Subtitle), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	for _, sec := range s.Sections {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(0, 8, tr(sec.Heading), "", 1, "L", true, 0, "")
		for _, l := range sec.Lines {
			style := ""
			if l.Bold {
				style = "B"
			}
			pdf.SetFont("Arial", style, 11)
			pdf.CellFormat(100, 7, tr(l.Label), "B", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, tr(l.Value), "B", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	if s.Footer != "" {
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(0, 8, tr(s.Footer), "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
