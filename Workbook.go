package main

import (
	"strconv"

	"gridcalc/contracts"
)

// Workbook is the top of the engine: the sheet registry, the scheduler and
// the evaluator behind one operation surface. Every mutating operation runs
// to completion, propagation cascade included, and fires exactly one change
// notification.
type Workbook struct {
	registry  *SheetRegistry
	scheduler *EvaluationScheduler

	dispatcher contracts.ChangeDispatcher
	onChange   func(sheet string)
}

func NewWorkbook(evaluator contracts.Evaluator) *Workbook {
	registry := NewSheetRegistry()
	return &Workbook{
		registry:  registry,
		scheduler: NewEvaluationScheduler(registry, evaluator),
	}
}

func (w *Workbook) Registry() *SheetRegistry { return w.registry }

// SetDispatcher attaches the webhook dispatcher; SetOnChange a lighter
// in-process listener. Both observe the same single event per operation.
func (w *Workbook) SetDispatcher(d contracts.ChangeDispatcher) { w.dispatcher = d }
func (w *Workbook) SetOnChange(fn func(sheet string))          { w.onChange = fn }

func (w *Workbook) notify(sheet string, cells []*contracts.Cell) {
	if w.onChange != nil {
		w.onChange(sheet)
	}
	if w.dispatcher != nil {
		w.dispatcher.Notify(sheet, cells)
	}
}

// SetCell writes content at ref and propagates to every transitive
// dependent. Empty content clears the cell; the returned cell is the stored
// record, or a zero-value one after a clear.
func (w *Workbook) SetCell(sheet string, ref string, content string) (*contracts.Cell, error) {
	sh, err := w.registry.Get(sheet)
	if err != nil {
		return nil, err
	}
	if err := sh.RecordSnapshot("set " + ref); err != nil {
		return nil, err
	}

	cell, key, err := sh.WriteCell(ref, content, nil)
	if err != nil {
		sh.History().DiscardLast()
		return nil, err
	}
	w.scheduler.Propagate(sheet, key)
	if cell == nil {
		cell = &contracts.Cell{}
	}

	w.notify(sheet, []*contracts.Cell{cell})
	return cell, nil
}

// SetCellMetadata attaches format, comment or a custom editor without
// touching the content.
func (w *Workbook) SetCellMetadata(sheet string, ref string, meta CellMetadata) error {
	sh, err := w.registry.Get(sheet)
	if err != nil {
		return err
	}
	if err := sh.RecordSnapshot("format " + ref); err != nil {
		return err
	}

	parsed, err := ParseRef(ref)
	if err != nil {
		sh.History().DiscardLast()
		return err
	}
	cell, err := sh.ReadCell(ref)
	if err != nil {
		sh.History().DiscardLast()
		return err
	}
	if content := cell.Input(); content != "" {
		if _, _, err := sh.WriteCell(ref, content, &meta); err != nil {
			sh.History().DiscardLast()
			return err
		}
	} else {
		// formatting an empty cell stores a metadata-only record
		if meta.Format != nil {
			cell.Format = *meta.Format
		}
		if meta.Comment != nil {
			cell.Comment = *meta.Comment
		}
		if meta.Editor != nil {
			cell.Editor = meta.Editor
		}
		sh.Store().Put(parsed.Key(), cell)
	}
	w.notify(sheet, []*contracts.Cell{cell})
	return nil
}

func (w *Workbook) GetCell(sheet string, ref string) (*contracts.Cell, error) {
	sh, err := w.registry.Get(sheet)
	if err != nil {
		return nil, err
	}
	return sh.ReadCell(ref)
}

// SheetCells returns every stored cell of one sheet.
func (w *Workbook) SheetCells(sheet string) (contracts.CellList, error) {
	sh, err := w.registry.Get(sheet)
	if err != nil {
		return nil, err
	}
	cells := contracts.CellList{}
	for key, cell := range sh.Store().All() {
		cells[key] = cell
	}
	return cells, nil
}

func (w *Workbook) InsertRow(sheet string, pos int) error {
	return w.structural(sheet, "insert row "+strconv.Itoa(pos), func(sh *Sheet) error {
		return sh.InsertRow(pos)
	})
}

func (w *Workbook) DeleteRow(sheet string, pos int) error {
	return w.structural(sheet, "delete row "+strconv.Itoa(pos), func(sh *Sheet) error {
		return sh.DeleteRow(pos)
	})
}

func (w *Workbook) InsertColumn(sheet string, pos int) error {
	return w.structural(sheet, "insert column "+ColumnLetters(pos), func(sh *Sheet) error {
		return sh.InsertColumn(pos)
	})
}

func (w *Workbook) DeleteColumn(sheet string, pos int) error {
	return w.structural(sheet, "delete column "+ColumnLetters(pos), func(sh *Sheet) error {
		return sh.DeleteColumn(pos)
	})
}

// SwapColumns exchanges column col with col+1.
func (w *Workbook) SwapColumns(sheet string, col int) error {
	return w.structural(sheet, "swap columns "+ColumnLetters(col), func(sh *Sheet) error {
		return sh.SwapColumns(col)
	})
}

// structural wraps one bulk edit: snapshot, mutate, full recalculation, one
// notification. Bounds violations surface before anything is recorded. The
// recalculation spans every sheet: the edit rewrote qualified references
// held elsewhere and moved cells other sheets read.
func (w *Workbook) structural(sheet string, action string, edit func(*Sheet) error) error {
	sh, err := w.registry.Get(sheet)
	if err != nil {
		return err
	}
	if err := sh.RecordSnapshot(action); err != nil {
		return err
	}
	if err := edit(sh); err != nil {
		// the edit had no effect; drop the snapshot it would undo to
		sh.History().DiscardLast()
		return err
	}
	if err := w.Recalculate(); err != nil {
		return err
	}
	w.notify(sheet, nil)
	return nil
}

func (w *Workbook) SortRange(sheet string, rangeRef string, byColumn string, ascending bool) error {
	rng, err := ParseRange(rangeRef)
	if err != nil {
		return err
	}
	col, err := ColumnNumber(byColumn)
	if err != nil {
		return err
	}
	return w.structural(sheet, "sort "+rangeRef, func(sh *Sheet) error {
		return sh.SortRange(rng, col, ascending)
	})
}

// Fill tiles sourceRange over targetRange, auto-detecting the direction.
func (w *Workbook) Fill(sheet string, sourceRange string, targetRange string) error {
	source, err := ParseRange(sourceRange)
	if err != nil {
		return err
	}
	target, err := ParseRange(targetRange)
	if err != nil {
		return err
	}
	return w.structural(sheet, "fill "+targetRange, func(sh *Sheet) error {
		return sh.AutoFill(source, target)
	})
}

// FillDirected is Fill with an explicit direction, for callers that already
// know which way they are dragging.
func (w *Workbook) FillDirected(sheet string, sourceRange string, targetRange string, direction FillDirection) error {
	source, err := ParseRange(sourceRange)
	if err != nil {
		return err
	}
	target, err := ParseRange(targetRange)
	if err != nil {
		return err
	}
	return w.structural(sheet, "fill "+targetRange, func(sh *Sheet) error {
		return sh.Fill(source, target, direction)
	})
}

// FindReplace runs one replace pass and returns how many cells actually
// changed. Changed formula cells propagate like any other write.
func (w *Workbook) FindReplace(sheet string, find string, replace string, opts contracts.FindReplaceOptions) (int, error) {
	sh, err := w.registry.Get(sheet)
	if err != nil {
		return 0, err
	}
	if err := sh.RecordSnapshot("replace " + find); err != nil {
		return 0, err
	}

	changed, err := sh.FindReplace(find, replace, opts)
	if err != nil {
		sh.History().DiscardLast()
		return 0, err
	}
	if len(changed) == 0 {
		sh.History().DiscardLast()
		return 0, nil
	}
	for _, key := range changed {
		w.scheduler.Propagate(sheet, key)
	}
	w.notify(sheet, nil)
	return len(changed), nil
}

func (w *Workbook) Undo(sheet string) error {
	sh, err := w.registry.Get(sheet)
	if err != nil {
		return err
	}
	if err := sh.Undo(); err != nil {
		return err
	}
	if err := w.Recalculate(); err != nil {
		return err
	}
	w.notify(sheet, nil)
	return nil
}

func (w *Workbook) Redo(sheet string) error {
	sh, err := w.registry.Get(sheet)
	if err != nil {
		return err
	}
	if err := sh.Redo(); err != nil {
		return err
	}
	if err := w.Recalculate(); err != nil {
		return err
	}
	w.notify(sheet, nil)
	return nil
}

func (w *Workbook) AddSheet(name string) error {
	if err := w.registry.Add(name); err != nil {
		return err
	}
	w.notify(name, nil)
	return nil
}

func (w *Workbook) DeleteSheet(name string) error {
	if err := w.registry.Delete(name); err != nil {
		return err
	}
	w.notify(name, nil)
	return nil
}

func (w *Workbook) RenameSheet(oldName string, newName string) error {
	if err := w.registry.Rename(oldName, newName); err != nil {
		return err
	}
	w.notify(newName, nil)
	return nil
}

func (w *Workbook) SetActiveSheet(name string) error {
	if err := w.registry.SetActive(name); err != nil {
		return err
	}
	w.notify(name, nil)
	return nil
}

func (w *Workbook) SheetNames() []string { return w.registry.Names() }

func (w *Workbook) ActiveSheet() string { return w.registry.ActiveName() }

func (w *Workbook) SetNamedRange(sheet string, name string, rangeRef string) error {
	sh, err := w.registry.Get(sheet)
	if err != nil {
		return err
	}
	if err := sh.RecordSnapshot("name " + name); err != nil {
		return err
	}
	if err := sh.SetNamedRange(name, rangeRef); err != nil {
		sh.History().DiscardLast()
		return err
	}
	w.notify(sheet, nil)
	return nil
}

func (w *Workbook) DeleteNamedRange(sheet string, name string) error {
	sh, err := w.registry.Get(sheet)
	if err != nil {
		return err
	}
	if err := sh.RecordSnapshot("unname " + name); err != nil {
		return err
	}
	sh.DeleteNamedRange(name)
	w.notify(sheet, nil)
	return nil
}

// SetValidation attaches a rule to a reference; CheckValidation applies it
// to the stored value on demand. Failure is a result, not an error.
func (w *Workbook) SetValidation(sheet string, ref string, rule *ValidationRule) error {
	sh, err := w.registry.Get(sheet)
	if err != nil {
		return err
	}
	parsed, err := ParseRef(ref)
	if err != nil {
		return err
	}
	sh.state.Validations[parsed.Key()] = rule
	return nil
}

func (w *Workbook) CheckValidation(sheet string, ref string) (ValidationResult, error) {
	sh, err := w.registry.Get(sheet)
	if err != nil {
		return ValidationResult{}, err
	}
	parsed, err := ParseRef(ref)
	if err != nil {
		return ValidationResult{}, err
	}

	rule, ok := sh.state.Validations[parsed.Key()]
	if !ok {
		return ValidationResult{Valid: true}, nil
	}
	cell := sh.Store().Get(parsed.Key())
	value := cell.Value
	if cell.IsFormula {
		value = cell.Result
	}
	return rule.Check(value), nil
}

func (w *Workbook) HideRow(sheet string, row int) error {
	return w.viewState(sheet, func(sh *Sheet) { sh.state.HiddenRows[row] = true })
}

func (w *Workbook) ShowRow(sheet string, row int) error {
	return w.viewState(sheet, func(sh *Sheet) { delete(sh.state.HiddenRows, row) })
}

func (w *Workbook) HideColumn(sheet string, col int) error {
	return w.viewState(sheet, func(sh *Sheet) { sh.state.HiddenColumns[col] = true })
}

func (w *Workbook) ShowColumn(sheet string, col int) error {
	return w.viewState(sheet, func(sh *Sheet) { delete(sh.state.HiddenColumns, col) })
}

func (w *Workbook) SetFrozen(sheet string, rows int, cols int) error {
	return w.viewState(sheet, func(sh *Sheet) {
		sh.state.FrozenRows = rows
		sh.state.FrozenColumns = cols
	})
}

func (w *Workbook) SetColumnWidth(sheet string, col int, width float64) error {
	return w.viewState(sheet, func(sh *Sheet) { sh.state.ColumnWidths[col] = width })
}

func (w *Workbook) SetRowHeight(sheet string, row int, height float64) error {
	return w.viewState(sheet, func(sh *Sheet) { sh.state.RowHeights[row] = height })
}

func (w *Workbook) MergeCells(sheet string, rangeRef string) error {
	rng, err := ParseRange(rangeRef)
	if err != nil {
		return err
	}
	return w.viewState(sheet, func(sh *Sheet) {
		topLeft := (Ref{Col: rng.StartCol, Row: rng.StartRow}).Key()
		bottomRight := (Ref{Col: rng.EndCol, Row: rng.EndRow}).Key()
		sh.state.MergedCells[topLeft] = bottomRight
	})
}

func (w *Workbook) UnmergeCells(sheet string, topLeft string) error {
	ref, err := ParseRef(topLeft)
	if err != nil {
		return err
	}
	return w.viewState(sheet, func(sh *Sheet) { delete(sh.state.MergedCells, ref.Key()) })
}

func (w *Workbook) viewState(sheet string, mutate func(*Sheet)) error {
	sh, err := w.registry.Get(sheet)
	if err != nil {
		return err
	}
	mutate(sh)
	w.notify(sheet, nil)
	return nil
}

// Recalculate re-evaluates every formula in the workbook in one pass.
func (w *Workbook) Recalculate() error {
	return w.scheduler.RecalculateAll()
}
