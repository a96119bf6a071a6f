package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/expr-lang/expr/vm/runtime"

	"gridcalc/contracts"
)

// ExpressionEvaluator is the default evaluator supplied to the engine. It
// compiles formula text with expr after normalizing references into valid
// identifiers: absolute markers are stripped, sheet qualifiers become member
// access, range tokens become cells("...") calls resolved through the data
// context. The engine only ever sees the contracts.Evaluator interface.
type ExpressionEvaluator struct {
	vmPool sync.Pool
}

func NewExpressionEvaluator() *ExpressionEvaluator {
	return &ExpressionEvaluator{
		vmPool: sync.Pool{
			New: func() any {
				return new(vm.VM)
			},
		},
	}
}

var evaluatorQual = `(?:[A-Za-z_][A-Za-z0-9_]*\.)?`
var evaluatorRef = evaluatorQual + `\$?[A-Za-z]+\$?[0-9]+`

// formulaTokenPattern matches one reference or one range token; the range
// alternative comes first so endpoints never match on their own.
var formulaTokenPattern = regexp.MustCompile(evaluatorRef + `(?::` + evaluatorRef + `)?`)

func (e *ExpressionEvaluator) Evaluate(formula string, data contracts.DataContext) (string, error) {
	if strings.Contains(formula, contracts.RefErrorToken) {
		return "", fmt.Errorf("%q: %w", formula, contracts.RefInvalidatedError)
	}

	prepared, refs := prepareFormula(formula)

	vars := map[string]any{}
	for _, ref := range refs {
		value, err := data.CellValue(ref.String())
		if err != nil {
			return "", normalizeCircular(err)
		}
		bindVar(vars, ref, value)
	}

	program, err := expr.Compile(prepared, e.compileOptions(data)...)
	if err != nil {
		return "", fmt.Errorf("%q: %w", formula, err)
	}

	machine := e.vmPool.Get().(*vm.VM)
	out, err := machine.Run(program, vars)
	e.vmPool.Put(machine)
	if err != nil {
		return "", normalizeCircular(err)
	}

	return outputToString(out), nil
}

func (e *ExpressionEvaluator) compileOptions(data contracts.DataContext) []expr.Option {
	return []expr.Option{
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
		expr.Optimize(false),
		expr.DisableAllBuiltins(),
		expr.Function("cells", makeCellsFunction(data)),
		sumFunction,
		minFunction,
		maxFunction,
		avgFunction,
		countFunction,
	}
}

// prepareFormula rewrites reference and range tokens into expr-friendly text
// and collects the single-cell references that must be bound as variables.
func prepareFormula(formula string) (string, []Ref) {
	matches := formulaTokenPattern.FindAllStringIndex(formula, -1)
	if matches == nil {
		return formula, nil
	}

	var refs []Ref
	seen := map[string]bool{}
	out := make([]byte, 0, len(formula))
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

		token := formula[start:end]
		out = append(out, formula[last:start]...)
		last = end

		if strings.Contains(token, ":") {
			out = append(out, `cells("`...)
			out = append(out, strings.ReplaceAll(token, "$", "")...)
			out = append(out, `")`...)
			continue
		}

		ref, err := ParseRef(token)
		if err != nil {
			out = append(out, token...)
			continue
		}
		ref.AbsCol, ref.AbsRow = false, false
		name := ref.QualifiedKey()
		out = append(out, name...)
		if !seen[name] {
			seen[name] = true
			refs = append(refs, ref)
		}
	}

	return string(append(out, formula[last:]...)), refs
}

// bindVar places a resolved value into the run environment: unqualified
// references are top-level variables, qualified ones member access on a
// per-sheet map. Empty cells read as zero.
func bindVar(vars map[string]any, ref Ref, value string) {
	coerced := any(int64(0))
	if value != "" {
		coerced = coerceScalar(value)
	}

	if ref.Sheet == "" {
		vars[ref.Key()] = coerced
		return
	}

	sheetVars, ok := vars[ref.Sheet].(map[string]any)
	if !ok {
		sheetVars = map[string]any{}
		vars[ref.Sheet] = sheetVars
	}
	sheetVars[ref.Key()] = coerced
}

// makeCellsFunction resolves a range token (or named range) to the flat list
// of its values via the data context.
func makeCellsFunction(data contracts.DataContext) func(args ...any) (any, error) {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, errors.New("cells expects one range argument")
		}
		rangeRef, ok := args[0].(string)
		if !ok {
			return nil, errors.New("cells expects a string range argument")
		}

		if _, err := ParseRange(rangeRef); err != nil {
			resolved, found := data.NamedRange(rangeRef)
			if !found {
				return nil, err
			}
			rangeRef = resolved
		}

		rows, err := data.RangeValues(rangeRef)
		if err != nil {
			return nil, err
		}

		flat := make([]any, 0, len(rows)*2)
		for _, row := range rows {
			for _, value := range row {
				if value == "" {
					continue
				}
				flat = append(flat, coerceScalar(value))
			}
		}
		return flat, nil
	}
}

// flattenArgs expands array arguments (the output of cells) so aggregate
// functions accept both scalars and ranges.
func flattenArgs(args []any) []any {
	flat := make([]any, 0, len(args))
	for _, arg := range args {
		if list, ok := arg.([]any); ok {
			flat = append(flat, list...)
			continue
		}
		flat = append(flat, arg)
	}
	return flat
}

var sumFunction = expr.Function("sum", func(args ...any) (any, error) {
	values := flattenArgs(args)
	if len(values) == 0 {
		return int64(0), nil
	}
	total := values[0]
	for i := 1; i < len(values); i++ {
		total = runtime.Add(total, values[i])
	}
	return total, nil
})

var minFunction = expr.Function("min", func(args ...any) (any, error) {
	var minValue any
	for _, arg := range flattenArgs(args) {
		if minValue == nil || runtime.Less(arg, minValue) {
			minValue = arg
		}
	}
	return minValue, nil
})

var maxFunction = expr.Function("max", func(args ...any) (any, error) {
	var maxValue any
	for _, arg := range flattenArgs(args) {
		if maxValue == nil || runtime.More(arg, maxValue) {
			maxValue = arg
		}
	}
	return maxValue, nil
})

var avgFunction = expr.Function("avg", func(args ...any) (any, error) {
	values := flattenArgs(args)
	if len(values) == 0 {
		return int64(0), nil
	}
	total := values[0]
	for i := 1; i < len(values); i++ {
		total = runtime.Add(total, values[i])
	}
	return runtime.Divide(total, len(values)), nil
})

var countFunction = expr.Function("count", func(args ...any) (any, error) {
	return int64(len(flattenArgs(args))), nil
})

// normalizeCircular keeps circular failures recognizable after they cross
// the expr runtime, which does not always preserve wrapped chains.
func normalizeCircular(err error) error {
	if errors.Is(err, contracts.CircularReferenceError) {
		return err
	}
	if strings.Contains(err.Error(), contracts.CircularReferenceError.Error()) {
		return fmt.Errorf("%s: %w", err.Error(), contracts.CircularReferenceError)
	}
	return err
}

func outputToString(output any) string {
	switch v := output.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
