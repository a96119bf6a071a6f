package main

import (
	"fmt"
	"strconv"

	"github.com/expr-lang/expr"
)

// ValidationRule is a pure value check attached to a cell reference. Rules
// are not enforced at write time; callers check on demand.
type ValidationRule struct {
	Type string `json:"type"` // list | number | text | custom

	AllowedValues []string `json:"allowedValues,omitempty"` // list
	Min           *float64 `json:"min,omitempty"`           // number
	Max           *float64 `json:"max,omitempty"`           // number
	MaxLength     int      `json:"maxLength,omitempty"`     // text
	Expression    string   `json:"expression,omitempty"`    // custom, boolean over `value`

	Message string `json:"message,omitempty"`
}

// ValidationResult reports a check outcome; failure is data, not an error.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

func (r *ValidationRule) Check(value string) ValidationResult {
	switch r.Type {
	case "list":
		for _, allowed := range r.AllowedValues {
			if value == allowed {
				return ValidationResult{Valid: true}
			}
		}
		return r.fail(fmt.Sprintf("%q is not one of the allowed values", value))

	case "number":
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return r.fail(fmt.Sprintf("%q is not a number", value))
		}
		if r.Min != nil && n < *r.Min {
			return r.fail(fmt.Sprintf("%v is below the minimum %v", n, *r.Min))
		}
		if r.Max != nil && n > *r.Max {
			return r.fail(fmt.Sprintf("%v is above the maximum %v", n, *r.Max))
		}
		return ValidationResult{Valid: true}

	case "text":
		if r.MaxLength > 0 && len(value) > r.MaxLength {
			return r.fail(fmt.Sprintf("text longer than %d characters", r.MaxLength))
		}
		return ValidationResult{Valid: true}

	case "custom":
		return r.checkCustom(value)
	}

	return r.fail(fmt.Sprintf("unknown validation type %q", r.Type))
}

// checkCustom evaluates the rule expression with the cell value bound to
// `value`, coerced through the usual int/float/string ladder.
func (r *ValidationRule) checkCustom(value string) ValidationResult {
	program, err := expr.Compile(r.Expression, expr.Env(map[string]any{}), expr.AllowUndefinedVariables())
	if err != nil {
		return r.fail(fmt.Sprintf("invalid rule expression: %s", err))
	}

	out, err := expr.Run(program, map[string]any{"value": coerceScalar(value)})
	if err != nil {
		return r.fail(fmt.Sprintf("rule expression failed: %s", err))
	}

	if ok, isBool := out.(bool); isBool && ok {
		return ValidationResult{Valid: true}
	}
	return r.fail("value rejected by custom rule")
}

func (r *ValidationRule) fail(fallback string) ValidationResult {
	message := r.Message
	if message == "" {
		message = fallback
	}
	return ValidationResult{Valid: false, Message: message}
}

// coerceScalar applies the int -> float -> string ladder used everywhere a
// stored string meets arithmetic.
func coerceScalar(value string) any {
	if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
		return intValue
	}
	if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
		return floatValue
	}
	return value
}
