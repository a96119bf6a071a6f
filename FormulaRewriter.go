package main

import (
	"regexp"

	"gridcalc/contracts"
)

// EditKind enumerates the structural edits a formula reference can be
// rewritten under.
type EditKind int

const (
	EditInsertRow EditKind = iota
	EditDeleteRow
	EditInsertColumn
	EditDeleteColumn
	EditCopyOffset
	EditSwapColumns
)

// Edit is one structural edit, the parameter of a rewrite pass.
type Edit struct {
	Kind  EditKind
	Sheet string // sheet the edit happened on

	Pos int // 1-based row/column for insert and delete

	DeltaRow int // copy-offset shift
	DeltaCol int

	ColA int // swap pair
	ColB int
}

// refTokenPattern matches one written cell reference: optional sheet
// qualifier, optional absolute markers, column letters, row digits.
// Boundary checks are done by the scanner, not the pattern, because a
// reference may begin with "$".
var refTokenPattern = regexp.MustCompile(`(?:([A-Za-z_][A-Za-z0-9_]*)\.)?(\$?)([A-Za-z]+)(\$?)([0-9]+)`)

func isWordByte(b byte) bool {
	return isLetter(b) || (b >= '0' && b <= '9') || b == '_'
}

// scanRefs walks every reference token in formula and lets visit decide
// whether to replace it. Tokens glued to surrounding identifier characters
// (e.g. the "B2" inside "A1B2") are not references and are left alone.
func scanRefs(formula string, visit func(ref Ref) (string, bool)) string {
	matches := refTokenPattern.FindAllStringSubmatchIndex(formula, -1)
	if matches == nil {
		return formula
	}

	out := make([]byte, 0, len(formula)+8)
	last := 0

	for _, m := range matches {
		start, end := m[0], m[1]

		if start > 0 {
			prev := formula[start-1]
			if isWordByte(prev) || prev == '$' || prev == '.' {
				continue
			}
		}
		if end < len(formula) && isWordByte(formula[end]) {
			continue
		}

		ref := Ref{}
		if m[2] >= 0 {
			ref.Sheet = formula[m[2]:m[3]]
		}
		ref.AbsCol = m[4] != m[5]
		ref.AbsRow = m[8] != m[9]

		col, err := ColumnNumber(formula[m[6]:m[7]])
		if err != nil {
			continue
		}
		ref.Col = col

		row := 0
		for i := m[10]; i < m[11]; i++ {
			row = row*10 + int(formula[i]-'0')
		}
		if row < 1 {
			continue
		}
		ref.Row = row

		replacement, replace := visit(ref)
		if !replace {
			continue
		}

		out = append(out, formula[last:start]...)
		out = append(out, replacement...)
		last = end
	}

	return string(append(out, formula[last:]...))
}

// RewriteFormula applies one structural edit to every reference token in the
// formula text. Invalidated tokens become "#REF!"; the rest of the formula is
// untouched.
func RewriteFormula(formula string, edit Edit) string {
	return scanRefs(formula, func(ref Ref) (string, bool) {
		rewritten, ok := ApplyEdit(ref, edit)
		if !ok {
			return contracts.RefErrorToken, true
		}
		if rewritten == ref {
			return "", false
		}
		return rewritten.String(), true
	})
}

// RewriteQualifiedRefs applies an edit to a formula held on a different
// sheet: only references qualified with the edited sheet's name are in
// scope. Unqualified references belong to the holding sheet and stay put.
func RewriteQualifiedRefs(formula string, edit Edit) string {
	return scanRefs(formula, func(ref Ref) (string, bool) {
		if ref.Sheet != edit.Sheet {
			return "", false
		}
		rewritten, ok := ApplyEdit(ref, edit)
		if !ok {
			return contracts.RefErrorToken, true
		}
		if rewritten == ref {
			return "", false
		}
		return rewritten.String(), true
	})
}

// ApplyEdit rewrites a single parsed reference under an edit. The second
// return value is false when the edit invalidates the reference outright.
//
// Absolute axes never move. Insert/delete/swap edits act on one sheet only:
// a reference qualified with a different sheet name is out of scope. A copy
// offset follows the copied cell wherever its relative references point.
func ApplyEdit(ref Ref, edit Edit) (Ref, bool) {
	sameSheet := ref.Sheet == "" || ref.Sheet == edit.Sheet

	switch edit.Kind {
	case EditInsertRow:
		if sameSheet && !ref.AbsRow && ref.Row >= edit.Pos {
			ref.Row++
		}

	case EditDeleteRow:
		if sameSheet && !ref.AbsRow {
			if ref.Row == edit.Pos {
				return Ref{}, false
			}
			if ref.Row > edit.Pos {
				ref.Row--
			}
		}

	case EditInsertColumn:
		if sameSheet && !ref.AbsCol && ref.Col >= edit.Pos {
			ref.Col++
		}

	case EditDeleteColumn:
		if sameSheet && !ref.AbsCol {
			if ref.Col == edit.Pos {
				return Ref{}, false
			}
			if ref.Col > edit.Pos {
				ref.Col--
			}
		}

	case EditCopyOffset:
		if !ref.AbsRow {
			ref.Row += edit.DeltaRow
		}
		if !ref.AbsCol {
			ref.Col += edit.DeltaCol
		}
		if ref.Row < 1 || ref.Col < 1 || ref.Row > MaxRows || ref.Col > MaxColumns {
			return Ref{}, false
		}

	case EditSwapColumns:
		if sameSheet && !ref.AbsCol {
			switch ref.Col {
			case edit.ColA:
				ref.Col = edit.ColB
			case edit.ColB:
				ref.Col = edit.ColA
			}
		}
	}

	return ref, true
}
