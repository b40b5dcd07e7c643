// Package export renders tabular reports and statements as CSV, XLSX and PDF.
package export

import (
	"fmt"
	"io"
	"strings"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/json"
}

// Filename returns base with the format's extension.
func (f Format) Filename(base string) string {
	return base + "." + string(f)
}

// Table is a titled grid of string cells. Every row should have len(Headers) cells.
type Table struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
}

// Write renders t in format f. JSON is not a table format and is rejected.
func Write(w io.Writer, f Format, t Table) error {
	switch f {
	case FormatCSV:
		return CSV(w, t)
	case FormatXLSX:
		return XLSX(w, t)
	case FormatPDF:
		return PDF(w, t)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// sheetName trims s to the 31 characters a worksheet name may hold and drops
// characters excel rejects.
func sheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "Sheet1"
	}
	if len(s) > 31 {
		s = s[:31]
	}
	return s
}
