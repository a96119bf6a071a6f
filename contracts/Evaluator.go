package contracts

// DataContext is the read-only view of the model an Evaluator resolves
// references against. CellValue returns the computed value of a single cell;
// resolving a cell that is part of the in-progress evaluation path must fail
// with CircularReferenceError.
type DataContext interface {
	CellValue(ref string) (string, error)
	RangeValues(rangeRef string) ([][]string, error)
	NamedRange(name string) (rangeRef string, ok bool)
}

// Evaluator executes formula text against a data context. The engine never
// parses formula syntax itself; everything between the stripped "=" and the
// resulting display value is the evaluator's business.
type Evaluator interface {
	Evaluate(formula string, data DataContext) (string, error)
}
