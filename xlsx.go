package main

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook persists every report sheet into one Excel workbook,
// header rows bolded. Sheet data is the same delimited rows the CSV
// sinks receive.
func writeWorkbook(path string, sheets []sheet) error {
	if len(sheets) == 0 {
		return nil
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, s := range sheets {
		name := clipRunes(s.Name, 31)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", name, err)
			}
		}

		for rowIdx, row := range s.Rows {
			for colIdx, value := range row {
				cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					return fmt.Errorf("failed to map cell: %w", err)
				}
				if err := f.SetCellValue(name, cell, value); err != nil {
					return fmt.Errorf("failed to set cell %s: %w", cell, err)
				}
			}
		}

		if len(s.Rows) > 0 {
			endCell, err := excelize.CoordinatesToCellName(len(s.Rows[0]), 1)
			if err != nil {
				return fmt.Errorf("failed to map header range: %w", err)
			}
			if err := f.SetCellStyle(name, "A1", endCell, headerStyle); err != nil {
				return fmt.Errorf("failed to style header: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
