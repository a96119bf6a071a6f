package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestValidationRule_Check(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		rule := &ValidationRule{Type: "list", AllowedValues: []string{"red", "green", "blue"}}

		assert.True(t, rule.Check("green").Valid)

		result := rule.Check("yellow")
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Message)
	})

	t.Run("number bounds", func(t *testing.T) {
		rule := &ValidationRule{Type: "number", Min: floatPtr(1), Max: floatPtr(10)}

		assert.True(t, rule.Check("5").Valid)
		assert.True(t, rule.Check("1").Valid)
		assert.True(t, rule.Check("10").Valid)
		assert.False(t, rule.Check("0").Valid)
		assert.False(t, rule.Check("11").Valid)
		assert.False(t, rule.Check("abc").Valid)
	})

	t.Run("text length", func(t *testing.T) {
		rule := &ValidationRule{Type: "text", MaxLength: 3}

		assert.True(t, rule.Check("abc").Valid)
		assert.False(t, rule.Check("abcd").Valid)
	})

	t.Run("custom expression over value", func(t *testing.T) {
		rule := &ValidationRule{Type: "custom", Expression: "value % 2 == 0"}

		assert.True(t, rule.Check("4").Valid)
		assert.False(t, rule.Check("5").Valid)
	})

	t.Run("custom message wins", func(t *testing.T) {
		rule := &ValidationRule{Type: "number", Max: floatPtr(1), Message: "too big"}

		result := rule.Check("2")
		assert.False(t, result.Valid)
		assert.Equal(t, "too big", result.Message)
	})

	t.Run("unknown type fails closed", func(t *testing.T) {
		rule := &ValidationRule{Type: "nope"}
		assert.False(t, rule.Check("anything").Valid)
	})
}

func TestCoerceScalar(t *testing.T) {
	assert.Equal(t, int64(42), coerceScalar("42"))
	assert.Equal(t, 3.5, coerceScalar("3.5"))
	assert.Equal(t, "hello", coerceScalar("hello"))
	assert.Equal(t, int64(-7), coerceScalar("-7"))
}
