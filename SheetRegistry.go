package main

import (
	"fmt"

	"gridcalc/contracts"
)

const DefaultSheetName = "Sheet1"

// SheetRegistry owns every sheet, their order, and the active-sheet pointer.
// Sheet names are identifier-safe tokens because they appear unquoted inside
// cross-sheet formula references.
type SheetRegistry struct {
	order  []string
	sheets map[string]*Sheet
	active string
}

func NewSheetRegistry() *SheetRegistry {
	r := &SheetRegistry{sheets: map[string]*Sheet{}}
	_ = r.Add(DefaultSheetName)
	return r
}

func validSheetName(name string) bool {
	return isIdentifier(name) && isLetter(name[0])
}

func (r *SheetRegistry) Add(name string) error {
	if !validSheetName(name) {
		return fmt.Errorf("%q: %w", name, contracts.SheetNameError)
	}
	if _, exists := r.sheets[name]; exists {
		return fmt.Errorf("%q: %w", name, contracts.SheetExistsError)
	}

	sheet := NewSheet(name)
	sheet.onStructural = r.propagateEdit
	r.sheets[name] = sheet
	r.order = append(r.order, name)
	if r.active == "" {
		r.active = name
	}
	return nil
}

// propagateEdit rewrites, on every sheet except the edited one, the
// qualified references pointing into the edited sheet. A row that moved on
// one sheet moves for everyone who named it.
func (r *SheetRegistry) propagateEdit(edit Edit) {
	for _, sh := range r.sheets {
		if sh.Name == edit.Sheet {
			continue
		}
		sh.rewriteQualified(edit)
	}
}

func (r *SheetRegistry) Get(name string) (*Sheet, error) {
	sheet, ok := r.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, contracts.SheetNotFoundError)
	}
	return sheet, nil
}

// Lookup is Get without the error, for resolution paths where a missing
// sheet just reads as empty.
func (r *SheetRegistry) Lookup(name string) (*Sheet, bool) {
	sheet, ok := r.sheets[name]
	return sheet, ok
}

// Delete refuses to remove the last sheet. Deleting the active sheet moves
// the pointer to the first remaining one.
func (r *SheetRegistry) Delete(name string) error {
	if _, ok := r.sheets[name]; !ok {
		return fmt.Errorf("%q: %w", name, contracts.SheetNotFoundError)
	}
	if len(r.order) == 1 {
		return fmt.Errorf("%q: %w", name, contracts.LastSheetError)
	}

	delete(r.sheets, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.active == name {
		r.active = r.order[0]
	}
	return nil
}

// Rename keeps the sheet's position in the order. Cross-sheet formula
// references written elsewhere are not rewritten; they now point at a name
// that resolves to nothing.
func (r *SheetRegistry) Rename(oldName, newName string) error {
	sheet, ok := r.sheets[oldName]
	if !ok {
		return fmt.Errorf("%q: %w", oldName, contracts.SheetNotFoundError)
	}
	if !validSheetName(newName) {
		return fmt.Errorf("%q: %w", newName, contracts.SheetNameError)
	}
	if _, exists := r.sheets[newName]; exists {
		return fmt.Errorf("%q: %w", newName, contracts.SheetExistsError)
	}

	delete(r.sheets, oldName)
	sheet.Name = newName
	r.sheets[newName] = sheet
	for i, n := range r.order {
		if n == oldName {
			r.order[i] = newName
			break
		}
	}
	if r.active == oldName {
		r.active = newName
	}
	return nil
}

func (r *SheetRegistry) SetActive(name string) error {
	if _, ok := r.sheets[name]; !ok {
		return fmt.Errorf("%q: %w", name, contracts.SheetNotFoundError)
	}
	r.active = name
	return nil
}

func (r *SheetRegistry) Active() *Sheet {
	return r.sheets[r.active]
}

func (r *SheetRegistry) ActiveName() string {
	return r.active
}

// Names returns the sheet order as a copy.
func (r *SheetRegistry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r *SheetRegistry) Len() int {
	return len(r.order)
}
