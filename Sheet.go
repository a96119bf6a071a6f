package main

import (
	"fmt"
	"strings"

	"gridcalc/contracts"
)

// SheetState is the mutable state of one sheet, the unit history snapshots
// deep-copy. Fields are exported for reflection-based copying.
type SheetState struct {
	Cells         contracts.CellList
	HiddenRows    map[int]bool
	HiddenColumns map[int]bool
	ColumnWidths  map[int]float64
	RowHeights    map[int]float64
	FrozenRows    int
	FrozenColumns int
	NamedRanges   map[string]string
	Validations   map[string]*ValidationRule
	MergedCells   map[string]string
}

func newSheetState() SheetState {
	return SheetState{
		Cells:         contracts.CellList{},
		HiddenRows:    map[int]bool{},
		HiddenColumns: map[int]bool{},
		ColumnWidths:  map[int]float64{},
		RowHeights:    map[int]float64{},
		NamedRanges:   map[string]string{},
		Validations:   map[string]*ValidationRule{},
		MergedCells:   map[string]string{},
	}
}

// Sheet is one fully isolated unit: its cells, its dependency graph, its
// undo/redo history and its view state travel together. No ambient globals.
type Sheet struct {
	Name string

	state   SheetState
	store   *CellStore
	graph   *DependencyGraph
	history *HistoryManager

	// set by the registry; fans a structural edit out to the other sheets
	onStructural func(Edit)

	// presentation metadata carried through import/export untouched
	FilterCriteria map[string]any
	PivotTables    map[string]any
	Tables         map[string]any
}

func NewSheet(name string) *Sheet {
	state := newSheetState()
	return &Sheet{
		Name:    name,
		state:   state,
		store:   &CellStore{cells: state.Cells},
		graph:   NewDependencyGraph(),
		history: NewHistoryManager(DefaultHistoryDepth),
	}
}

func (sh *Sheet) Store() *CellStore { return sh.store }
func (sh *Sheet) Graph() *DependencyGraph { return sh.graph }
func (sh *Sheet) History() *HistoryManager { return sh.history }
func (sh *Sheet) NamedRanges() map[string]string {
	return sh.state.NamedRanges
}

// WriteCell stores content at ref without evaluating: classification,
// named-range normalization, metadata inheritance and dependency-graph
// maintenance happen here; the scheduler owns evaluation. Empty content
// clears the cell. Returns the stored cell (nil when cleared) and its key.
func (sh *Sheet) WriteCell(refText string, content string, meta *CellMetadata) (*contracts.Cell, string, error) {
	ref, err := ParseRef(refText)
	if err != nil {
		return nil, "", err
	}
	if ref.Sheet != "" && ref.Sheet != sh.Name {
		return nil, "", fmt.Errorf("%q: %w", refText, contracts.InvalidReferenceError)
	}
	key := ref.Key()

	if strings.TrimSpace(content) == "" {
		sh.ClearCell(key)
		return nil, key, nil
	}

	value, isFormula := classify(content)

	cell := &contracts.Cell{Value: value, IsFormula: isFormula}
	if isFormula {
		cell.Value = resolveNames(cell.Value, sh.state.NamedRanges)
		cell.Dependencies = ExtractReferences(cell.Value)
	}

	// re-setting a value keeps prior metadata unless the write supplies its own
	if existing := sh.store.Lookup(key); existing != nil {
		cell.Format = existing.Format
		cell.Comment = existing.Comment
		cell.Editor = existing.Editor
	}
	if meta != nil {
		if meta.Format != nil {
			cell.Format = *meta.Format
		}
		if meta.Comment != nil {
			cell.Comment = *meta.Comment
		}
		if meta.Editor != nil {
			cell.Editor = meta.Editor
		}
	}

	sh.store.Put(key, cell)
	sh.graph.SetDependencies(key, cell.Dependencies)

	return cell, key, nil
}

// ClearCell removes the store entry and every edge the cell contributed.
func (sh *Sheet) ClearCell(key string) {
	sh.store.Delete(key)
	sh.graph.Remove(key)
}

// ReadCell returns a zero-value cell for unknown addresses, never an error
// beyond reference syntax.
func (sh *Sheet) ReadCell(refText string) (*contracts.Cell, error) {
	ref, err := ParseRef(refText)
	if err != nil {
		return nil, err
	}
	return sh.store.Get(ref.Key()), nil
}

// InsertRow shifts every cell at row >= pos down one and rewrites every
// formula on the sheet under the same edit.
func (sh *Sheet) InsertRow(pos int) error {
	if pos < 1 || pos > MaxRows {
		return fmt.Errorf("row %d: %w", pos, contracts.OutOfBoundsError)
	}
	edit := Edit{Kind: EditInsertRow, Sheet: sh.Name, Pos: pos}
	sh.applyStructural(edit, func(col, row int) (int, int, bool) {
		if row >= pos {
			return col, row + 1, true
		}
		return col, row, true
	})
	shiftIntKeys(sh.state.HiddenRows, pos, 1)
	shiftFloatKeys(sh.state.RowHeights, pos, 1)
	return nil
}

// DeleteRow removes row pos outright; cells below shift up and references to
// the removed row become #REF! tokens.
func (sh *Sheet) DeleteRow(pos int) error {
	if pos < 1 || pos > MaxRows {
		return fmt.Errorf("row %d: %w", pos, contracts.OutOfBoundsError)
	}
	edit := Edit{Kind: EditDeleteRow, Sheet: sh.Name, Pos: pos}
	sh.applyStructural(edit, func(col, row int) (int, int, bool) {
		switch {
		case row == pos:
			return 0, 0, false
		case row > pos:
			return col, row - 1, true
		}
		return col, row, true
	})
	shiftIntKeys(sh.state.HiddenRows, pos, -1)
	shiftFloatKeys(sh.state.RowHeights, pos, -1)
	return nil
}

// InsertColumn is InsertRow on the column axis.
func (sh *Sheet) InsertColumn(pos int) error {
	if pos < 1 || pos > MaxColumns {
		return fmt.Errorf("column %d: %w", pos, contracts.OutOfBoundsError)
	}
	edit := Edit{Kind: EditInsertColumn, Sheet: sh.Name, Pos: pos}
	sh.applyStructural(edit, func(col, row int) (int, int, bool) {
		if col >= pos {
			return col + 1, row, true
		}
		return col, row, true
	})
	shiftIntKeys(sh.state.HiddenColumns, pos, 1)
	shiftFloatKeys(sh.state.ColumnWidths, pos, 1)
	return nil
}

// DeleteColumn is DeleteRow on the column axis.
func (sh *Sheet) DeleteColumn(pos int) error {
	if pos < 1 || pos > MaxColumns {
		return fmt.Errorf("column %d: %w", pos, contracts.OutOfBoundsError)
	}
	edit := Edit{Kind: EditDeleteColumn, Sheet: sh.Name, Pos: pos}
	sh.applyStructural(edit, func(col, row int) (int, int, bool) {
		switch {
		case col == pos:
			return 0, 0, false
		case col > pos:
			return col - 1, row, true
		}
		return col, row, true
	})
	shiftIntKeys(sh.state.HiddenColumns, pos, -1)
	shiftFloatKeys(sh.state.ColumnWidths, pos, -1)
	return nil
}

// SwapColumns exchanges column pos with pos+1. Relative references follow
// their column; absolute-column references stay put.
func (sh *Sheet) SwapColumns(pos int) error {
	if pos < 1 || pos+1 > MaxColumns {
		return fmt.Errorf("column %d: %w", pos, contracts.OutOfBoundsError)
	}
	edit := Edit{Kind: EditSwapColumns, Sheet: sh.Name, ColA: pos, ColB: pos + 1}
	sh.applyStructural(edit, func(col, row int) (int, int, bool) {
		switch col {
		case pos:
			return pos + 1, row, true
		case pos + 1:
			return pos, row, true
		}
		return col, row, true
	})
	sh.state.HiddenColumns[pos], sh.state.HiddenColumns[pos+1] = sh.state.HiddenColumns[pos+1], sh.state.HiddenColumns[pos]
	sh.state.ColumnWidths[pos], sh.state.ColumnWidths[pos+1] = sh.state.ColumnWidths[pos+1], sh.state.ColumnWidths[pos]
	pruneZero(sh.state.HiddenColumns)
	pruneZeroFloat(sh.state.ColumnWidths)
	return nil
}

// applyStructural relocates every stored cell through move, rewriting
// formula text under edit first, then rebuilds the graph wholesale (many
// formula texts just changed at once) and rewrites named ranges, merged
// ranges and validation keys under the same edit.
func (sh *Sheet) applyStructural(edit Edit, move func(col, row int) (int, int, bool)) {
	moved := contracts.CellList{}
	for key, cell := range sh.state.Cells {
		ref, err := ParseRef(key)
		if err != nil {
			continue
		}
		col, row, keep := move(ref.Col, ref.Row)
		if !keep {
			continue
		}
		if cell.IsFormula {
			cell.Value = RewriteFormula(cell.Value, edit)
			cell.Dependencies = ExtractReferences(cell.Value)
		}
		moved[(Ref{Col: col, Row: row}).Key()] = cell
	}
	sh.replaceCells(moved)

	for name, rangeRef := range sh.state.NamedRanges {
		sh.state.NamedRanges[name] = RewriteFormula(rangeRef, edit)
	}

	validations := map[string]*ValidationRule{}
	for key, rule := range sh.state.Validations {
		if newKey, ok := relocateKey(key, move); ok {
			validations[newKey] = rule
		}
	}
	sh.state.Validations = validations

	merged := map[string]string{}
	for topLeft, bottomRight := range sh.state.MergedCells {
		newTopLeft, okTL := relocateKey(topLeft, move)
		newBottomRight, okBR := relocateKey(bottomRight, move)
		if okTL && okBR {
			merged[newTopLeft] = newBottomRight
		}
	}
	sh.state.MergedCells = merged

	sh.graph.Rebuild(sh.store.Formulas())

	if sh.onStructural != nil {
		sh.onStructural(edit)
	}
}

// rewriteQualified applies an edit that happened on another sheet to the
// qualified references this sheet holds into it. Local references are out
// of scope; they did not move.
func (sh *Sheet) rewriteQualified(edit Edit) {
	for key, cell := range sh.state.Cells {
		if !cell.IsFormula {
			continue
		}
		value := RewriteQualifiedRefs(cell.Value, edit)
		if value == cell.Value {
			continue
		}
		cell.Value = value
		cell.Dependencies = ExtractReferences(value)
		sh.graph.SetDependencies(key, cell.Dependencies)
	}

	for name, rangeRef := range sh.state.NamedRanges {
		sh.state.NamedRanges[name] = RewriteQualifiedRefs(rangeRef, edit)
	}
}

func (sh *Sheet) replaceCells(cells contracts.CellList) {
	sh.state.Cells = cells
	sh.store.cells = cells
}

// RecordSnapshot pushes the current state onto the undo stack.
func (sh *Sheet) RecordSnapshot(action string) error {
	return sh.history.Record(action, sh.state)
}

// Undo swaps the state with the newest undo snapshot; Redo reverses that.
// Both rebuild the graph, since snapshots carry no edges.
func (sh *Sheet) Undo() error {
	state, err := sh.history.Undo(sh.state)
	if err != nil {
		return err
	}
	sh.restore(state)
	return nil
}

func (sh *Sheet) Redo() error {
	state, err := sh.history.Redo(sh.state)
	if err != nil {
		return err
	}
	sh.restore(state)
	return nil
}

func (sh *Sheet) restore(state SheetState) {
	sh.state = state
	sh.store.cells = state.Cells
	sh.graph.Rebuild(sh.store.Formulas())
}

func (sh *Sheet) SetNamedRange(name string, rangeRef string) error {
	if !isIdentifier(name) || !isLetter(name[0]) {
		return fmt.Errorf("%q: %w", name, contracts.NamedRangeNameError)
	}
	if _, err := ParseRange(rangeRef); err != nil {
		return err
	}
	sh.state.NamedRanges[name] = rangeRef
	return nil
}

func (sh *Sheet) DeleteNamedRange(name string) {
	delete(sh.state.NamedRanges, name)
}

func relocateKey(key string, move func(col, row int) (int, int, bool)) (string, bool) {
	ref, err := ParseRef(key)
	if err != nil {
		return "", false
	}
	col, row, keep := move(ref.Col, ref.Row)
	if !keep {
		return "", false
	}
	return (Ref{Col: col, Row: row}).Key(), true
}

func shiftIntKeys(set map[int]bool, pos int, delta int) {
	shifted := map[int]bool{}
	for k, v := range set {
		switch {
		case delta < 0 && k == pos:
			continue
		case k >= pos:
			shifted[k+delta] = v
		default:
			shifted[k] = v
		}
	}
	for k := range set {
		delete(set, k)
	}
	for k, v := range shifted {
		set[k] = v
	}
}

func shiftFloatKeys(m map[int]float64, pos int, delta int) {
	shifted := map[int]float64{}
	for k, v := range m {
		switch {
		case delta < 0 && k == pos:
			continue
		case k >= pos:
			shifted[k+delta] = v
		default:
			shifted[k] = v
		}
	}
	for k := range m {
		delete(m, k)
	}
	for k, v := range shifted {
		m[k] = v
	}
}

func pruneZero(set map[int]bool) {
	for k, v := range set {
		if !v {
			delete(set, k)
		}
	}
}

func pruneZeroFloat(m map[int]float64) {
	for k, v := range m {
		if v == 0 {
			delete(m, k)
		}
	}
}
