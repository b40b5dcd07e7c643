package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSX writes t to a single worksheet. The title occupies the first row when set.
func XLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(t.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	row := 1
	if t.Title != "" {
		title := t.Title
		if t.Subtitle != "" {
			title += " (" + t.Subtitle + ")"
		}
		if err := f.SetCellValue(sheet, "A1", title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
			return err
		}
		row = 3
	}

	headerCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, headerCell, &t.Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if len(t.Headers) > 0 {
		lastHeader, _ := excelize.CoordinatesToCellName(len(t.Headers), row)
		if err := f.SetCellStyle(sheet, headerCell, lastHeader, bold); err != nil {
			return err
		}
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for i, r := range t.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, row+1+i)
		values := make([]interface{}, len(r))
		for j, v := range r {
			values[j] = v
			if j < len(widths) && len(v) > widths[j] {
				widths[j] = len(v)
			}
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, float64(min(width+2, 60))); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
