package main

import (
	"fmt"
	"strconv"
	"strings"

	"gridcalc/contracts"
)

// Grid bounds for structural edits.
const (
	MaxRows    = 1048576
	MaxColumns = 16384
)

// Ref is the parsed form of a cell reference: optional sheet qualifier,
// 1-based column/row, and one absolute flag per axis. Rewrite rules operate
// on this struct, never on raw text.
type Ref struct {
	Sheet  string
	Col    int
	Row    int
	AbsCol bool
	AbsRow bool
}

// ColumnNumber converts column letters to a 1-based column number.
// Base-26 with no zero digit: A=1, Z=26, AA=27.
func ColumnNumber(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("%q: %w", letters, contracts.InvalidReferenceError)
	}

	n := 0
	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("%q: %w", letters, contracts.InvalidReferenceError)
		}
		n = n*26 + int(r-'A') + 1
	}
	return n, nil
}

// ColumnLetters is the inverse of ColumnNumber: 1 -> "A", 27 -> "AA".
func ColumnLetters(n int) string {
	letters := make([]byte, 0, 3)
	for n > 0 {
		n--
		letters = append(letters, byte('A'+n%26))
		n /= 26
	}

	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters)
}

// ParseRef parses "A1", "$A$1", "Sheet2.B10" or combinations thereof.
// A sheet qualifier is everything before the last dot; it is kept verbatim
// so that "Sheet2.A1" never contributes a stray "A1".
func ParseRef(text string) (Ref, error) {
	ref := Ref{}

	cellPart := strings.TrimSpace(text)
	if idx := strings.LastIndex(cellPart, "."); idx >= 0 {
		ref.Sheet = cellPart[:idx]
		cellPart = cellPart[idx+1:]
		if !isIdentifier(ref.Sheet) {
			return Ref{}, fmt.Errorf("%q: %w", text, contracts.InvalidReferenceError)
		}
	}

	if strings.HasPrefix(cellPart, "$") {
		ref.AbsCol = true
		cellPart = cellPart[1:]
	}

	i := 0
	for i < len(cellPart) && isLetter(cellPart[i]) {
		i++
	}
	if i == 0 {
		return Ref{}, fmt.Errorf("%q: %w", text, contracts.InvalidReferenceError)
	}

	col, err := ColumnNumber(cellPart[:i])
	if err != nil {
		return Ref{}, err
	}
	ref.Col = col

	rowPart := cellPart[i:]
	if strings.HasPrefix(rowPart, "$") {
		ref.AbsRow = true
		rowPart = rowPart[1:]
	}
	if rowPart == "" {
		return Ref{}, fmt.Errorf("%q: %w", text, contracts.InvalidReferenceError)
	}
	for j := 0; j < len(rowPart); j++ {
		if rowPart[j] < '0' || rowPart[j] > '9' {
			return Ref{}, fmt.Errorf("%q: %w", text, contracts.InvalidReferenceError)
		}
	}

	row, err := strconv.Atoi(rowPart)
	if err != nil || row < 1 {
		return Ref{}, fmt.Errorf("%q: %w", text, contracts.InvalidReferenceError)
	}
	ref.Row = row

	return ref, nil
}

// String renders the reference back to text, absolute markers and sheet
// qualifier included.
func (r Ref) String() string {
	var b strings.Builder
	if r.Sheet != "" {
		b.WriteString(r.Sheet)
		b.WriteByte('.')
	}
	if r.AbsCol {
		b.WriteByte('$')
	}
	b.WriteString(ColumnLetters(r.Col))
	if r.AbsRow {
		b.WriteByte('$')
	}
	b.WriteString(strconv.Itoa(r.Row))
	return b.String()
}

// Key is the normalized per-sheet storage key: column letters plus row,
// absolute markers and qualifier dropped.
func (r Ref) Key() string {
	return ColumnLetters(r.Col) + strconv.Itoa(r.Row)
}

// QualifiedKey prefixes Key with the sheet qualifier when one is present,
// forming the dependency-graph node id.
func (r Ref) QualifiedKey() string {
	if r.Sheet == "" {
		return r.Key()
	}
	return r.Sheet + "." + r.Key()
}

// Range is a rectangular block of cells, both corners inclusive.
type Range struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// ParseRange parses "A1:B5" or a single cell "A1" (a 1x1 range). Corners are
// normalized so Start is always the top-left one.
func ParseRange(text string) (Range, error) {
	first, rest, found := strings.Cut(strings.TrimSpace(text), ":")

	startRef, err := ParseRef(first)
	if err != nil {
		return Range{}, fmt.Errorf("%q: %w", text, contracts.InvalidRangeError)
	}
	endRef := startRef
	if found {
		endRef, err = ParseRef(rest)
		if err != nil {
			return Range{}, fmt.Errorf("%q: %w", text, contracts.InvalidRangeError)
		}
	}
	if endRef.Sheet != "" && startRef.Sheet != "" && endRef.Sheet != startRef.Sheet {
		return Range{}, fmt.Errorf("%q: %w", text, contracts.InvalidRangeError)
	}

	rng := Range{
		Sheet:    startRef.Sheet,
		StartCol: min(startRef.Col, endRef.Col),
		StartRow: min(startRef.Row, endRef.Row),
		EndCol:   max(startRef.Col, endRef.Col),
		EndRow:   max(startRef.Row, endRef.Row),
	}
	return rng, nil
}

func (r Range) String() string {
	start := Ref{Sheet: r.Sheet, Col: r.StartCol, Row: r.StartRow}
	end := Ref{Col: r.EndCol, Row: r.EndRow}
	if r.StartCol == r.EndCol && r.StartRow == r.EndRow {
		return start.String()
	}
	return start.String() + ":" + end.String()
}

// Width and Height are the range extents in cells.
func (r Range) Width() int  { return r.EndCol - r.StartCol + 1 }
func (r Range) Height() int { return r.EndRow - r.StartRow + 1 }

func (r Range) Contains(col, row int) bool {
	return col >= r.StartCol && col <= r.EndCol && row >= r.StartRow && row <= r.EndRow
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case isLetter(b):
		case b == '_' && i > 0:
		case b >= '0' && b <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
