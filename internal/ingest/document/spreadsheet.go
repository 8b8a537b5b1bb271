package document

import (
	"fmt"

	"github.com/claude/liftplan/internal/ingest/program"
	"github.com/xuri/excelize/v2"
)

// extractSpreadsheet reads every sheet of a workbook as one table. Sheet
// names become page text so a sheet called "Program Week 1" can still name
// the plan.
func extractSpreadsheet(path string) (program.Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return program.Document{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var doc program.Document
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return program.Document{}, fmt.Errorf("reading sheet %q: %w", sheet, err)
		}

		var grid program.Table
		for _, r := range rows {
			if row := rowCells(r); row != nil {
				grid = append(grid, row)
			}
		}
		if len(grid) == 0 {
			continue
		}
		doc.Pages = append(doc.Pages, sheet)
		doc.Tables = append(doc.Tables, grid)
	}
	return doc, nil
}
