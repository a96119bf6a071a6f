package main

import (
	stdjson "encoding/json"
	"errors"
	"fmt"
	"sort"

	json "github.com/bytedance/sonic"

	"gridcalc/contracts"
)

var DocumentFormatError = errors.New("unrecognized document format")

// WorkbookDocument is the persisted shape of a whole workbook. Version 2 is
// the current layout; version 1 documents were a flat {ref: content} object
// and are still accepted on import.
type WorkbookDocument struct {
	Version         int                      `json:"version"`
	ActiveSheetName string                   `json:"activeSheetName"`
	SheetOrder      []string                 `json:"sheetOrder"`
	Sheets          map[string]SheetDocument `json:"sheets"`
}

type SheetDocument struct {
	Cells          map[string]stdjson.RawMessage    `json:"cells"`
	HiddenRows     []int                            `json:"hiddenRows,omitempty"`
	HiddenColumns  []int                            `json:"hiddenColumns,omitempty"`
	ColumnWidths   map[string]float64               `json:"columnWidths,omitempty"`
	RowHeights     map[string]float64               `json:"rowHeights,omitempty"`
	FrozenRows     int                              `json:"frozenRows,omitempty"`
	FrozenColumns  int                              `json:"frozenColumns,omitempty"`
	NamedRanges    map[string]string                `json:"namedRanges,omitempty"`
	Validations    map[string]*ValidationRule       `json:"validations,omitempty"`
	MergedCells    map[string]string                `json:"mergedCells,omitempty"`
	CellEditors    map[string]*contracts.EditorSpec `json:"cellEditors,omitempty"`
	FilterCriteria map[string]any                   `json:"filterCriteria,omitempty"`
	PivotTables    map[string]any                   `json:"pivotTables,omitempty"`
	Tables         map[string]any                   `json:"tables,omitempty"`
}

// CellDocument is the long form of one exported cell. Cells with no
// metadata export as a bare JSON string holding the raw content instead.
type CellDocument struct {
	Content string `json:"content"`
	Comment string `json:"comment,omitempty"`
	Format  string `json:"format,omitempty"`
}

// ExportJSON serializes the whole workbook, raw content only. Computed
// results are recomputed on import rather than persisted.
func (w *Workbook) ExportJSON() ([]byte, error) {
	doc := WorkbookDocument{
		Version:         2,
		ActiveSheetName: w.registry.ActiveName(),
		SheetOrder:      w.registry.Names(),
		Sheets:          map[string]SheetDocument{},
	}

	for _, name := range doc.SheetOrder {
		sh, err := w.registry.Get(name)
		if err != nil {
			return nil, err
		}
		sheetDoc, err := exportSheet(sh)
		if err != nil {
			return nil, fmt.Errorf("export sheet %s: %w", name, err)
		}
		doc.Sheets[name] = sheetDoc
	}

	return json.Marshal(&doc)
}

func exportSheet(sh *Sheet) (SheetDocument, error) {
	doc := SheetDocument{
		Cells:          map[string]stdjson.RawMessage{},
		ColumnWidths:   map[string]float64{},
		RowHeights:     map[string]float64{},
		FrozenRows:     sh.state.FrozenRows,
		FrozenColumns:  sh.state.FrozenColumns,
		NamedRanges:    sh.state.NamedRanges,
		Validations:    sh.state.Validations,
		MergedCells:    sh.state.MergedCells,
		CellEditors:    map[string]*contracts.EditorSpec{},
		FilterCriteria: sh.FilterCriteria,
		PivotTables:    sh.PivotTables,
		Tables:         sh.Tables,
	}

	for key, cell := range sh.Store().All() {
		var encoded []byte
		var err error
		if cell.Comment == "" && cell.Format == "" {
			encoded, err = json.Marshal(cell.Input())
		} else {
			encoded, err = json.Marshal(CellDocument{
				Content: cell.Input(),
				Comment: cell.Comment,
				Format:  cell.Format,
			})
		}
		if err != nil {
			return doc, err
		}
		doc.Cells[key] = encoded
		if cell.Editor != nil {
			doc.CellEditors[key] = cell.Editor
		}
	}

	doc.HiddenRows = sortedInts(sh.state.HiddenRows)
	doc.HiddenColumns = sortedInts(sh.state.HiddenColumns)
	for col, width := range sh.state.ColumnWidths {
		doc.ColumnWidths[ColumnLetters(col)] = width
	}
	for row, height := range sh.state.RowHeights {
		doc.RowHeights[fmt.Sprintf("%d", row)] = height
	}

	return doc, nil
}

// ImportJSON replaces the whole workbook with the document's content and
// recomputes every formula. Undo history does not survive an import.
func (w *Workbook) ImportJSON(document []byte) error {
	var doc WorkbookDocument
	if err := json.Unmarshal(document, &doc); err == nil && doc.Version == 2 {
		return w.importDocument(&doc)
	}

	// version 1: a flat {ref: content} object loaded into a single sheet
	var flat map[string]string
	if err := json.Unmarshal(document, &flat); err != nil {
		return fmt.Errorf("%w: %s", DocumentFormatError, err)
	}
	return w.importFlat(flat)
}

func (w *Workbook) importDocument(doc *WorkbookDocument) error {
	registry := NewSheetRegistry()
	if len(doc.SheetOrder) == 0 {
		return fmt.Errorf("%w: no sheets", DocumentFormatError)
	}

	for i, name := range doc.SheetOrder {
		if i == 0 {
			// the registry starts with a default sheet; rename it into place
			if err := registry.Rename(DefaultSheetName, name); err != nil && name != DefaultSheetName {
				return err
			}
		} else if err := registry.Add(name); err != nil {
			return err
		}

		sheetDoc, ok := doc.Sheets[name]
		if !ok {
			continue
		}
		sh, err := registry.Get(name)
		if err != nil {
			return err
		}
		if err := importSheet(sh, &sheetDoc); err != nil {
			return fmt.Errorf("import sheet %s: %w", name, err)
		}
	}

	if doc.ActiveSheetName != "" {
		if err := registry.SetActive(doc.ActiveSheetName); err != nil {
			return err
		}
	}

	w.registry = registry
	w.scheduler.registry = registry
	return w.Recalculate()
}

func importSheet(sh *Sheet, doc *SheetDocument) error {
	if doc.NamedRanges != nil {
		sh.state.NamedRanges = doc.NamedRanges
	}

	keys := make([]string, 0, len(doc.Cells))
	for key := range doc.Cells {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := doc.Cells[key]
		content, meta, err := decodeCell(raw)
		if err != nil {
			return fmt.Errorf("cell %s: %w", key, err)
		}
		if editor, ok := doc.CellEditors[key]; ok {
			meta.Editor = editor
		}
		if _, _, err := sh.WriteCell(key, content, meta); err != nil {
			return fmt.Errorf("cell %s: %w", key, err)
		}
	}

	for _, row := range doc.HiddenRows {
		sh.state.HiddenRows[row] = true
	}
	for _, col := range doc.HiddenColumns {
		sh.state.HiddenColumns[col] = true
	}
	for letters, width := range doc.ColumnWidths {
		col, err := ColumnNumber(letters)
		if err != nil {
			return err
		}
		sh.state.ColumnWidths[col] = width
	}
	for rowText, height := range doc.RowHeights {
		var row int
		if _, err := fmt.Sscanf(rowText, "%d", &row); err != nil {
			return fmt.Errorf("row height key %q: %w", rowText, DocumentFormatError)
		}
		sh.state.RowHeights[row] = height
	}
	sh.state.FrozenRows = doc.FrozenRows
	sh.state.FrozenColumns = doc.FrozenColumns
	if doc.Validations != nil {
		sh.state.Validations = doc.Validations
	}
	if doc.MergedCells != nil {
		sh.state.MergedCells = doc.MergedCells
	}
	if doc.FilterCriteria != nil {
		sh.FilterCriteria = doc.FilterCriteria
	}
	if doc.PivotTables != nil {
		sh.PivotTables = doc.PivotTables
	}
	if doc.Tables != nil {
		sh.Tables = doc.Tables
	}

	return nil
}

func decodeCell(raw []byte) (string, *CellMetadata, error) {
	var content string
	if err := json.Unmarshal(raw, &content); err == nil {
		return content, &CellMetadata{}, nil
	}

	var cellDoc CellDocument
	if err := json.Unmarshal(raw, &cellDoc); err != nil {
		return "", nil, err
	}
	meta := &CellMetadata{}
	if cellDoc.Comment != "" {
		meta.Comment = &cellDoc.Comment
	}
	if cellDoc.Format != "" {
		meta.Format = &cellDoc.Format
	}
	return cellDoc.Content, meta, nil
}

func (w *Workbook) importFlat(cells map[string]string) error {
	registry := NewSheetRegistry()
	sh, err := registry.Get(DefaultSheetName)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(cells))
	for key := range cells {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, _, err := sh.WriteCell(key, cells[key], nil); err != nil {
			return fmt.Errorf("cell %s: %w", key, err)
		}
	}

	w.registry = registry
	w.scheduler.registry = registry
	return w.Recalculate()
}

func sortedInts(set map[int]bool) []int {
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
