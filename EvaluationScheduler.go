package main

import (
	"errors"
	"fmt"
	"sort"

	"gridcalc/contracts"
)

// cellID addresses a cell across the whole registry.
type cellID struct {
	Sheet string
	Key   string
}

func (id cellID) onSheet(sheet string) string {
	if id.Sheet == sheet {
		return id.Key
	}
	return id.Sheet + "." + id.Key
}

func (id cellID) String() string {
	return id.Sheet + "." + id.Key
}

// EvaluationScheduler drives re-evaluation through the external evaluator.
// One propagation pass runs to exhaustion before the next operation is
// accepted; evaluator calls run serially because overlapping them would
// invalidate the in-progress cycle detection.
type EvaluationScheduler struct {
	registry  *SheetRegistry
	evaluator contracts.Evaluator
}

func NewEvaluationScheduler(registry *SheetRegistry, evaluator contracts.Evaluator) *EvaluationScheduler {
	return &EvaluationScheduler{registry: registry, evaluator: evaluator}
}

// Propagate re-evaluates the cell at (sheet, key) and then every transitive
// dependent. The whole dependent closure is marked dirty first and each
// member evaluates exactly once per pass: resolution forces dirty precedents
// on demand, so a diamond dependent sees fresh values from every path.
func (s *EvaluationScheduler) Propagate(sheet string, key string) {
	if s.evaluator == nil {
		return
	}
	pass := s.newPass()
	start := cellID{Sheet: sheet, Key: key}
	pass.markDirtyClosure(start)
	pass.walk(start)
}

// RecalculateSheet re-evaluates every formula cell of one sheet plus every
// transitive dependent elsewhere. Used after bulk structural edits, undo/redo
// and imports, when many formula texts changed at once.
func (s *EvaluationScheduler) RecalculateSheet(sheet string) error {
	if s.evaluator == nil {
		return nil
	}
	sh, err := s.registry.Get(sheet)
	if err != nil {
		return err
	}

	pass := s.newPass()
	keys := make([]string, 0, sh.Store().Len())
	for key, cell := range sh.Store().All() {
		if cell.IsFormula {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		pass.markDirtyClosure(cellID{Sheet: sheet, Key: key})
	}
	for _, key := range keys {
		id := cellID{Sheet: sheet, Key: key}
		if pass.dirty[id] {
			pass.walk(id)
		}
	}
	return nil
}

// RecalculateAll re-evaluates every formula cell in the registry in one
// pass. Structural edits and undo/redo use it: rewritten formulas and moved
// literals can have dependents on any sheet, and a single pass lets demand
// resolution order the evaluations regardless of sheet order.
func (s *EvaluationScheduler) RecalculateAll() error {
	if s.evaluator == nil {
		return nil
	}

	pass := s.newPass()
	ids := make([]cellID, 0)
	for _, name := range s.registry.Names() {
		sh, ok := s.registry.Lookup(name)
		if !ok {
			continue
		}
		keys := make([]string, 0, sh.Store().Len())
		for key, cell := range sh.Store().All() {
			if cell.IsFormula {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		for _, key := range keys {
			ids = append(ids, cellID{Sheet: name, Key: key})
		}
	}

	for _, id := range ids {
		pass.markDirtyClosure(id)
	}
	for _, id := range ids {
		if pass.dirty[id] {
			pass.walk(id)
		}
	}
	return nil
}

func (s *EvaluationScheduler) newPass() *evalPass {
	return &evalPass{
		scheduler: s,
		inFlight:  map[cellID]bool{},
		walked:    map[cellID]bool{},
		dirty:     map[cellID]bool{},
	}
}

// evalPass is the state of one propagation cascade. inFlight holds the cells
// whose evaluator call has started and not yet returned (the cycle-detection
// set), walked the cells whose dependent edges were already followed, dirty
// the cells still awaiting evaluation in this pass.
type evalPass struct {
	scheduler *EvaluationScheduler
	inFlight  map[cellID]bool
	walked    map[cellID]bool
	dirty     map[cellID]bool
}

// markDirtyClosure marks start and every transitive dependent as awaiting
// evaluation.
func (p *evalPass) markDirtyClosure(start cellID) {
	queue := []cellID{start}
	p.dirty[start] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, dep := range p.dependentsOf(id) {
			if !p.dirty[dep] {
				p.dirty[dep] = true
				queue = append(queue, dep)
			}
		}
	}
}

type walkFrame struct {
	id         cellID
	dependents []cellID
	next       int
}

// walk drives the pass with an explicit stack rather than recursion, so a
// thousand-cell dependency chain cannot blow the call stack. Each pushed
// cell is evaluated (if still awaiting it) and then its dependents are
// walked depth-first.
func (p *evalPass) walk(start cellID) {
	stack := make([]*walkFrame, 0, 8)

	push := func(id cellID) {
		if p.walked[id] {
			return
		}
		p.walked[id] = true
		if p.dirty[id] {
			p.evaluate(id)
		}
		stack = append(stack, &walkFrame{id: id, dependents: p.dependentsOf(id)})
	}

	push(start)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next < len(top.dependents) {
			next := top.dependents[top.next]
			top.next++
			push(next)
			continue
		}
		stack = stack[:len(stack)-1]
	}
}

// dependentsOf collects reverse edges from every sheet: unqualified edges on
// the cell's own sheet plus sheet-qualified edges held elsewhere.
func (p *evalPass) dependentsOf(id cellID) []cellID {
	var out []cellID
	for _, name := range p.scheduler.registry.Names() {
		sh, ok := p.scheduler.registry.Lookup(name)
		if !ok {
			continue
		}
		for _, dep := range sh.Graph().Dependents(id.onSheet(name)) {
			out = append(out, cellID{Sheet: name, Key: dep})
		}
	}
	return out
}

// evaluate runs the external evaluator for a formula cell and records result
// or failure on the cell. Literal cells just mirror their content; cleared
// cells have nothing to evaluate but their dependents still propagate.
func (p *evalPass) evaluate(id cellID) {
	delete(p.dirty, id)

	sh, ok := p.scheduler.registry.Lookup(id.Sheet)
	if !ok {
		return
	}
	cell := sh.Store().Lookup(id.Key)
	if cell == nil {
		return
	}
	if !cell.IsFormula {
		cell.Result = cell.Value
		cell.Error = ""
		return
	}

	p.inFlight[id] = true
	result, err := p.scheduler.evaluator.Evaluate(cell.Value, p.context(id.Sheet))
	delete(p.inFlight, id)

	switch {
	case errors.Is(err, contracts.CircularReferenceError):
		cell.Result = contracts.CircularValue
		cell.Error = contracts.CircularErrorTag
	case err != nil:
		cell.Result = contracts.ErrorValue
		cell.Error = err.Error()
	default:
		cell.Result = result
		cell.Error = ""
	}
}

// context binds the read-only data view the evaluator sees to the sheet the
// evaluated cell lives on.
func (p *evalPass) context(sheet string) *dataContext {
	return &dataContext{pass: p, sheet: sheet}
}

// dataContext implements contracts.DataContext for one evaluated cell.
type dataContext struct {
	pass  *evalPass
	sheet string
}

func (c *dataContext) CellValue(refText string) (string, error) {
	ref, err := ParseRef(refText)
	if err != nil {
		return "", err
	}
	return c.pass.resolve(c.id(ref))
}

func (c *dataContext) RangeValues(rangeRef string) ([][]string, error) {
	rng, err := ParseRange(rangeRef)
	if err != nil {
		return nil, err
	}
	sheet := rng.Sheet
	if sheet == "" {
		sheet = c.sheet
	}

	rows := make([][]string, 0, rng.Height())
	for row := rng.StartRow; row <= rng.EndRow; row++ {
		cols := make([]string, 0, rng.Width())
		for col := rng.StartCol; col <= rng.EndCol; col++ {
			value, err := c.pass.resolve(cellID{Sheet: sheet, Key: (Ref{Col: col, Row: row}).Key()})
			if err != nil {
				return nil, err
			}
			cols = append(cols, value)
		}
		rows = append(rows, cols)
	}
	return rows, nil
}

func (c *dataContext) NamedRange(name string) (string, bool) {
	sh, ok := c.pass.scheduler.registry.Lookup(c.sheet)
	if !ok {
		return "", false
	}
	rangeRef, ok := sh.NamedRanges()[name]
	return rangeRef, ok
}

func (c *dataContext) id(ref Ref) cellID {
	sheet := ref.Sheet
	if sheet == "" {
		sheet = c.sheet
	}
	return cellID{Sheet: sheet, Key: ref.Key()}
}

// resolve reads a cell value for the evaluator. Reading a cell whose own
// evaluator call has not returned yet is the cycle. Reading a formula cell
// still awaiting evaluation in this pass evaluates it first; that demand
// ordering keeps bulk passes and diamond fan-ins consistent. A missing
// sheet or cell reads as empty.
func (p *evalPass) resolve(id cellID) (string, error) {
	if p.inFlight[id] {
		return "", fmt.Errorf("%s: %w", id, contracts.CircularReferenceError)
	}

	sh, ok := p.scheduler.registry.Lookup(id.Sheet)
	if !ok {
		return "", nil
	}
	cell := sh.Store().Lookup(id.Key)
	if cell == nil {
		return "", nil
	}
	if !cell.IsFormula {
		return cell.Value, nil
	}

	if p.dirty[id] {
		p.evaluate(id)
		if cell.Error == contracts.CircularErrorTag {
			return "", fmt.Errorf("%s: %w", id, contracts.CircularReferenceError)
		}
	}

	return cell.Result, nil
}
