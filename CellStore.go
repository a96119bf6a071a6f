package main

import (
	"strings"

	"gridcalc/contracts"
)

// CellStore is the per-sheet cell map. Keys are normalized references
// ("A1", no absolute markers, no qualifier). A key absent from the map is an
// empty literal cell; clearing a cell removes its entry, which is what keeps
// "count non-empty cells" honest.
type CellStore struct {
	cells contracts.CellList
}

func NewCellStore() *CellStore {
	return &CellStore{cells: contracts.CellList{}}
}

// Lookup returns the stored cell, or nil when the address holds nothing.
func (s *CellStore) Lookup(key string) *contracts.Cell {
	return s.cells[key]
}

// Get never fails: addresses with no stored entry read as a zero-value cell.
func (s *CellStore) Get(key string) *contracts.Cell {
	if cell, ok := s.cells[key]; ok {
		return cell
	}
	return &contracts.Cell{}
}

func (s *CellStore) Put(key string, cell *contracts.Cell) {
	s.cells[key] = cell
}

func (s *CellStore) Delete(key string) {
	delete(s.cells, key)
}

func (s *CellStore) Len() int {
	return len(s.cells)
}

// Keys returns every stored reference in map order; callers that need a
// stable order sort the result themselves.
func (s *CellStore) Keys() []string {
	keys := make([]string, 0, len(s.cells))
	for k := range s.cells {
		keys = append(keys, k)
	}
	return keys
}

// Formulas returns the raw formula text of every formula cell, keyed by
// reference. This is the input of DependencyGraph.Rebuild.
func (s *CellStore) Formulas() map[string]string {
	formulas := map[string]string{}
	for key, cell := range s.cells {
		if cell.IsFormula {
			formulas[key] = cell.Value
		}
	}
	return formulas
}

// All exposes the underlying map for iteration. The map must not be mutated
// while iterating.
func (s *CellStore) All() contracts.CellList {
	return s.cells
}

// CellMetadata carries the optional metadata of a write. Nil fields inherit
// whatever the existing cell at that address already has.
type CellMetadata struct {
	Format  *string
	Comment *string
	Editor  *contracts.EditorSpec
}

// classify splits raw input into content and the formula flag: content
// beginning with "=" after trimming is a formula with the marker stripped.
func classify(content string) (string, bool) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, contracts.FormulaPrefix) {
		return strings.TrimPrefix(trimmed, contracts.FormulaPrefix), true
	}
	return content, false
}

// resolveNames performs the write-time textual substitution of named ranges:
// every identifier token matching a defined name becomes the literal range
// reference, so the dependency extractor never sees the alias. Tokens that
// are sheet qualifiers (followed by a dot) or already qualified (preceded by
// a dot) are left alone.
func resolveNames(formula string, names map[string]string) string {
	if len(names) == 0 {
		return formula
	}

	var b strings.Builder
	b.Grow(len(formula))

	i := 0
	for i < len(formula) {
		c := formula[i]
		if !isLetter(c) {
			b.WriteByte(c)
			i++
			continue
		}

		start := i
		for i < len(formula) && isWordByte(formula[i]) {
			i++
		}
		token := formula[start:i]

		qualified := start > 0 && (formula[start-1] == '.' || formula[start-1] == '$')
		isQualifier := i < len(formula) && formula[i] == '.'

		if rangeRef, ok := names[token]; ok && !qualified && !isQualifier {
			b.WriteString(rangeRef)
		} else {
			b.WriteString(token)
		}
	}

	return b.String()
}
