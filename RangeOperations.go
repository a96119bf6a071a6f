package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gridcalc/contracts"
)

// FillDirection is the axis and sense of a fill operation.
type FillDirection int

const (
	FillDown FillDirection = iota
	FillUp
	FillRight
	FillLeft
)

// SortRange reorders the rows of a rectangular range by one column.
// Comparison is numeric when both keys parse as numbers, case-insensitive
// lexicographic otherwise; an empty key sorts below any non-empty one.
// Relocated formulas are rewritten with a copy offset equal to the row
// delta, so absolute rows keep pointing where they pointed.
func (sh *Sheet) SortRange(rng Range, byColumn int, ascending bool) error {
	if byColumn < rng.StartCol || byColumn > rng.EndCol {
		return fmt.Errorf("sort column %s: %w", ColumnLetters(byColumn), contracts.OutOfBoundsError)
	}

	type sortedRow struct {
		rowNum int
		cells  map[int]*contracts.Cell
	}

	rows := make([]sortedRow, 0, rng.Height())
	for row := rng.StartRow; row <= rng.EndRow; row++ {
		entry := sortedRow{rowNum: row, cells: map[int]*contracts.Cell{}}
		for col := rng.StartCol; col <= rng.EndCol; col++ {
			key := (Ref{Col: col, Row: row}).Key()
			if cell := sh.store.Lookup(key); cell != nil {
				entry.cells[col] = cell
			}
		}
		rows = append(rows, entry)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a := sortKey(rows[i].cells[byColumn])
		b := sortKey(rows[j].cells[byColumn])
		if ascending {
			return compareCellValues(a, b) < 0
		}
		return compareCellValues(a, b) > 0
	})

	for row := rng.StartRow; row <= rng.EndRow; row++ {
		for col := rng.StartCol; col <= rng.EndCol; col++ {
			sh.store.Delete((Ref{Col: col, Row: row}).Key())
		}
	}

	for i, entry := range rows {
		newRow := rng.StartRow + i
		delta := newRow - entry.rowNum
		for col, cell := range entry.cells {
			if cell.IsFormula && delta != 0 {
				cell.Value = RewriteFormula(cell.Value, Edit{Kind: EditCopyOffset, Sheet: sh.Name, DeltaRow: delta})
				cell.Dependencies = ExtractReferences(cell.Value)
			}
			sh.store.Put((Ref{Col: col, Row: newRow}).Key(), cell)
		}
	}

	sh.graph.Rebuild(sh.store.Formulas())
	return nil
}

func sortKey(cell *contracts.Cell) string {
	if cell == nil {
		return ""
	}
	if cell.IsFormula {
		return cell.Result
	}
	return cell.Value
}

// compareCellValues orders empty lowest, then numerically when both sides
// parse, then case-insensitively.
func compareCellValues(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	case b == "":
		return 1
	}

	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}

	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// AutoFill picks the fill direction from where the target sits relative to
// the source and dispatches to Fill.
func (sh *Sheet) AutoFill(source, target Range) error {
	var direction FillDirection
	switch {
	case target.StartRow > source.EndRow:
		direction = FillDown
	case target.EndRow < source.StartRow:
		direction = FillUp
	case target.StartCol > source.EndCol:
		direction = FillRight
	case target.EndCol < source.StartCol:
		direction = FillLeft
	default:
		return fmt.Errorf("target overlaps source: %w", contracts.SizeMismatchError)
	}
	return sh.Fill(source, target, direction)
}

// Fill tiles the source vector across the target. The source cycles with
// modulo arithmetic when shorter than the target; extents along the other
// axis must match exactly. Formulas shift per target cell with a copy
// offset; format and comment travel along.
func (sh *Sheet) Fill(source, target Range, direction FillDirection) error {
	vertical := direction == FillDown || direction == FillUp
	if vertical && source.Width() != target.Width() {
		return fmt.Errorf("fill: source is %d columns, target %d: %w", source.Width(), target.Width(), contracts.SizeMismatchError)
	}
	if !vertical && source.Height() != target.Height() {
		return fmt.Errorf("fill: source is %d rows, target %d: %w", source.Height(), target.Height(), contracts.SizeMismatchError)
	}

	// snapshot the source first so an overlapping target cannot clobber it
	type sourceCell struct {
		cell *contracts.Cell
		ok   bool
	}
	srcCells := map[cellID]sourceCell{}
	for row := source.StartRow; row <= source.EndRow; row++ {
		for col := source.StartCol; col <= source.EndCol; col++ {
			key := (Ref{Col: col, Row: row}).Key()
			if cell := sh.store.Lookup(key); cell != nil {
				srcCells[cellID{Key: key}] = sourceCell{cell: cell, ok: true}
			}
		}
	}

	for row := target.StartRow; row <= target.EndRow; row++ {
		for col := target.StartCol; col <= target.EndCol; col++ {
			var srcRow, srcCol int
			if vertical {
				srcRow = source.StartRow + mod(row-target.StartRow, source.Height())
				srcCol = source.StartCol + (col - target.StartCol)
			} else {
				srcCol = source.StartCol + mod(col-target.StartCol, source.Width())
				srcRow = source.StartRow + (row - target.StartRow)
			}

			targetKey := (Ref{Col: col, Row: row}).Key()
			src, ok := srcCells[cellID{Key: (Ref{Col: srcCol, Row: srcRow}).Key()}]
			if !ok {
				sh.ClearCell(targetKey)
				continue
			}

			copied := &contracts.Cell{
				Value:     src.cell.Value,
				IsFormula: src.cell.IsFormula,
				Format:    src.cell.Format,
				Comment:   src.cell.Comment,
				Editor:    src.cell.Editor,
			}
			if copied.IsFormula {
				copied.Value = RewriteFormula(copied.Value, Edit{
					Kind:     EditCopyOffset,
					Sheet:    sh.Name,
					DeltaRow: row - srcRow,
					DeltaCol: col - srcCol,
				})
				copied.Dependencies = ExtractReferences(copied.Value)
			}

			sh.store.Put(targetKey, copied)
			sh.graph.SetDependencies(targetKey, copied.Dependencies)
		}
	}

	return nil
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// FindReplace scans every stored cell and replaces occurrences of find in
// either the display value or the raw formula text. Returns the keys of
// cells actually changed, sorted; no-op replacements do not count.
func (sh *Sheet) FindReplace(find, replace string, opts contracts.FindReplaceOptions) ([]string, error) {
	if find == "" {
		return nil, nil
	}

	changed := make([]string, 0)
	keys := sh.store.Keys()
	sort.Strings(keys)

	for _, key := range keys {
		cell := sh.store.Lookup(key)

		subject := cell.Value
		if !opts.SearchFormulas && cell.IsFormula {
			subject = cell.Result
		}

		if !matches(subject, find, opts) {
			continue
		}

		// replacing in a formula's computed value is meaningless; those
		// matches only count when the formula text itself is the subject
		if cell.IsFormula && !opts.SearchFormulas {
			continue
		}

		var replaced string
		if opts.MatchEntireCell {
			replaced = replace
		} else {
			replaced = replaceFold(subject, find, replace, opts.MatchCase)
		}
		if replaced == subject {
			continue
		}

		content := replaced
		if cell.IsFormula {
			content = contracts.FormulaPrefix + replaced
		}
		meta := &CellMetadata{}
		if _, _, err := sh.WriteCell(key, content, meta); err != nil {
			return changed, err
		}
		changed = append(changed, key)
	}

	return changed, nil
}

func matches(subject, find string, opts contracts.FindReplaceOptions) bool {
	s, f := subject, find
	if !opts.MatchCase {
		s, f = strings.ToLower(s), strings.ToLower(f)
	}
	if opts.MatchEntireCell {
		return s == f
	}
	return strings.Contains(s, f)
}

// replaceFold is strings.ReplaceAll with optional case-insensitive matching;
// the replacement text is inserted verbatim either way.
func replaceFold(s, old, new string, matchCase bool) string {
	if matchCase {
		return strings.ReplaceAll(s, old, new)
	}

	var b strings.Builder
	lower := strings.ToLower(s)
	oldLower := strings.ToLower(old)

	i := 0
	for {
		j := strings.Index(lower[i:], oldLower)
		if j < 0 {
			b.WriteString(s[i:])
			return b.String()
		}
		b.WriteString(s[i : i+j])
		b.WriteString(new)
		i += j + len(old)
	}
}
