package contracts

import "errors"

// Cell is one addressable cell. Value holds the raw content (formula text
// with the leading "=" stripped when IsFormula is set), Result the computed
// display value.
type Cell struct {
	Value        string      `json:"value"`
	IsFormula    bool        `json:"isFormula,omitempty"`
	Result       string      `json:"result"`
	Dependencies []string    `json:"dependencies,omitempty"`
	Error        string      `json:"error,omitempty"`
	Format       string      `json:"format,omitempty"`
	Comment      string      `json:"comment,omitempty"`
	Editor       *EditorSpec `json:"editor,omitempty"`
}

// EditorSpec describes a custom editor attached to a cell.
type EditorSpec struct {
	Type   string            `json:"type"`
	Config map[string]string `json:"config,omitempty"`
}

// Input reconstructs the text a user would type to produce this cell.
func (c *Cell) Input() string {
	if c.IsFormula {
		return FormulaPrefix + c.Value
	}
	return c.Value
}

// CellList maps normalized references to cells, as returned by sheet reads.
type CellList map[string]*Cell

const FormulaPrefix = "="

// Sentinel display values stored in Result when evaluation cannot produce one.
const (
	CircularValue = "#CIRCULAR!"
	ErrorValue    = "#ERROR!"
	RefErrorToken = "#REF!"
)

// CircularErrorTag is the Error tag recorded on cells caught in a reference cycle.
const CircularErrorTag = "circular reference"

var InvalidReferenceError = errors.New("invalid cell reference")

var InvalidRangeError = errors.New("invalid range reference")

var OutOfBoundsError = errors.New("position outside the addressable grid")

var SizeMismatchError = errors.New("source and target extents do not match")

var SheetNotFoundError = errors.New("sheet not found")

var SheetExistsError = errors.New("sheet already exists")

var SheetNameError = errors.New("sheet name must start with a letter and contain only letters, digits and underscore")

var LastSheetError = errors.New("cannot delete the last remaining sheet")

var NamedRangeNameError = errors.New("named range name must start with a letter and contain only letters, digits and underscore")

var CircularReferenceError = errors.New("circular reference detected")

var RefInvalidatedError = errors.New("formula contains an invalidated reference")
