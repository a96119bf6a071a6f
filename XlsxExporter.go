package main

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XlsxExporter writes a workbook's computed values into an xlsx file.
// Formula cells export both the formula and its last computed result, so
// other spreadsheet tools open the file without recalculating.
type XlsxExporter struct {
	workbook *Workbook
}

func NewXlsxExporter(workbook *Workbook) *XlsxExporter {
	return &XlsxExporter{workbook: workbook}
}

func (e *XlsxExporter) Export(out io.Writer) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	names := e.workbook.SheetNames()
	for i, name := range names {
		if i == 0 {
			// excelize starts with one default sheet; rename it into place
			if err := file.SetSheetName(file.GetSheetName(0), name); err != nil {
				return err
			}
		} else if _, err := file.NewSheet(name); err != nil {
			return err
		}

		if err := e.exportSheet(file, name); err != nil {
			return fmt.Errorf("export sheet %s: %w", name, err)
		}
	}

	if active := e.workbook.ActiveSheet(); active != "" {
		if index, err := file.GetSheetIndex(active); err == nil && index >= 0 {
			file.SetActiveSheet(index)
		}
	}

	return file.Write(out)
}

func (e *XlsxExporter) exportSheet(file *excelize.File, name string) error {
	sh, err := e.workbook.Registry().Get(name)
	if err != nil {
		return err
	}

	for _, key := range sh.Store().Keys() {
		cell := sh.Store().Get(key)
		if cell.IsFormula {
			if err := file.SetCellFormula(name, key, cell.Value); err != nil {
				return err
			}
			if err := file.SetCellValue(name, key, cell.Result); err != nil {
				return err
			}
		} else if err := file.SetCellValue(name, key, cell.Value); err != nil {
			return err
		}

		if cell.Comment != "" {
			err := file.AddComment(name, excelize.Comment{
				Cell: key,
				Text: cell.Comment,
			})
			if err != nil {
				return err
			}
		}
	}

	for col, width := range sh.state.ColumnWidths {
		letters := ColumnLetters(col)
		if err := file.SetColWidth(name, letters, letters, width); err != nil {
			return err
		}
	}
	for row, height := range sh.state.RowHeights {
		if err := file.SetRowHeight(name, row, height); err != nil {
			return err
		}
	}
	for row := range sh.state.HiddenRows {
		if err := file.SetRowVisible(name, row, false); err != nil {
			return err
		}
	}
	for col := range sh.state.HiddenColumns {
		if err := file.SetColVisible(name, ColumnLetters(col), false); err != nil {
			return err
		}
	}
	for topLeft, bottomRight := range sh.state.MergedCells {
		if err := file.MergeCell(name, topLeft, bottomRight); err != nil {
			return err
		}
	}
	if sh.state.FrozenRows > 0 || sh.state.FrozenColumns > 0 {
		topLeft := Ref{Col: sh.state.FrozenColumns + 1, Row: sh.state.FrozenRows + 1}
		err := file.SetPanes(name, &excelize.Panes{
			Freeze:      true,
			XSplit:      sh.state.FrozenColumns,
			YSplit:      sh.state.FrozenRows,
			TopLeftCell: topLeft.Key(),
			ActivePane:  "bottomRight",
		})
		if err != nil {
			return err
		}
	}

	return nil
}
