package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gridcalc/contracts"
)

func TestSheet_WriteCell(t *testing.T) {
	t.Run("literal write", func(t *testing.T) {
		sh := NewSheet("Sheet1")

		cell, key, err := sh.WriteCell("A1", "42", nil)
		assert.NoError(t, err)
		assert.Equal(t, "A1", key)
		assert.Equal(t, "42", cell.Value)
		assert.False(t, cell.IsFormula)
	})

	t.Run("formula write extracts dependencies", func(t *testing.T) {
		sh := NewSheet("Sheet1")

		cell, _, err := sh.WriteCell("C1", "=A1+B1", nil)
		assert.NoError(t, err)
		assert.True(t, cell.IsFormula)
		assert.Equal(t, "A1+B1", cell.Value)
		assert.Equal(t, []string{"A1", "B1"}, cell.Dependencies)
		assert.Equal(t, []string{"C1"}, sh.Graph().Dependents("A1"))
	})

	t.Run("absolute markers normalize to one storage key", func(t *testing.T) {
		sh := NewSheet("Sheet1")

		_, key, err := sh.WriteCell("$B$2", "7", nil)
		assert.NoError(t, err)
		assert.Equal(t, "B2", key)

		cell, err := sh.ReadCell("B2")
		assert.NoError(t, err)
		assert.Equal(t, "7", cell.Value)
	})

	t.Run("empty content clears the cell", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		_, _, _ = sh.WriteCell("A1", "5", nil)

		cell, key, err := sh.WriteCell("A1", "", nil)
		assert.NoError(t, err)
		assert.Equal(t, "A1", key)
		assert.Nil(t, cell)
		assert.Equal(t, 0, sh.Store().Len())
	})

	t.Run("named ranges are resolved at write time", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		assert.NoError(t, sh.SetNamedRange("total", "B1:B3"))

		cell, _, err := sh.WriteCell("C1", "=sum(total)", nil)
		assert.NoError(t, err)
		assert.Equal(t, "sum(B1:B3)", cell.Value)
		assert.Equal(t, []string{"B1", "B3"}, cell.Dependencies)
	})

	t.Run("rewriting keeps prior metadata", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		comment := "checked"
		_, _, err := sh.WriteCell("A1", "5", &CellMetadata{Comment: &comment})
		assert.NoError(t, err)

		cell, _, err := sh.WriteCell("A1", "6", nil)
		assert.NoError(t, err)
		assert.Equal(t, "checked", cell.Comment)
	})

	t.Run("foreign sheet qualifier is rejected", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		_, _, err := sh.WriteCell("Sheet2.A1", "5", nil)
		assert.ErrorIs(t, err, contracts.InvalidReferenceError)
	})
}

func TestSheet_InsertRow(t *testing.T) {
	t.Run("cells shift and formulas rewrite", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		_, _, _ = sh.WriteCell("A1", "1", nil)
		_, _, _ = sh.WriteCell("A2", "2", nil)
		_, _, _ = sh.WriteCell("A3", "=A1+A2", nil)

		assert.NoError(t, sh.InsertRow(2))

		cell, _ := sh.ReadCell("A3")
		assert.Equal(t, "2", cell.Value)

		cell, _ = sh.ReadCell("A4")
		assert.Equal(t, "A1+A3", cell.Value)

		cell, _ = sh.ReadCell("A2")
		assert.Equal(t, "", cell.Value)
	})

	t.Run("out of bounds", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		assert.ErrorIs(t, sh.InsertRow(0), contracts.OutOfBoundsError)
		assert.ErrorIs(t, sh.InsertRow(MaxRows+1), contracts.OutOfBoundsError)
	})

	t.Run("hidden rows and heights shift along", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		sh.state.HiddenRows[3] = true
		sh.state.RowHeights[3] = 24

		assert.NoError(t, sh.InsertRow(2))

		assert.True(t, sh.state.HiddenRows[4])
		assert.False(t, sh.state.HiddenRows[3])
		assert.Equal(t, 24.0, sh.state.RowHeights[4])
	})
}

func TestSheet_DeleteRow(t *testing.T) {
	t.Run("references to the deleted row break", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		_, _, _ = sh.WriteCell("A1", "1", nil)
		_, _, _ = sh.WriteCell("A2", "2", nil)
		_, _, _ = sh.WriteCell("A3", "3", nil)
		_, _, _ = sh.WriteCell("A4", "=A1+A2+A3", nil)

		assert.NoError(t, sh.DeleteRow(2))

		cell, _ := sh.ReadCell("A3")
		assert.Equal(t, "A1+#REF!+A2", cell.Value)

		cell, _ = sh.ReadCell("A2")
		assert.Equal(t, "3", cell.Value)
	})

	t.Run("insert then delete at the same position is the identity", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		_, _, _ = sh.WriteCell("A1", "1", nil)
		_, _, _ = sh.WriteCell("A5", "=A1*2", nil)
		_, _, _ = sh.WriteCell("B3", "hello", nil)

		assert.NoError(t, sh.InsertRow(2))
		assert.NoError(t, sh.DeleteRow(2))

		cell, _ := sh.ReadCell("A5")
		assert.Equal(t, "A1*2", cell.Value)
		cell, _ = sh.ReadCell("B3")
		assert.Equal(t, "hello", cell.Value)
		assert.Equal(t, 3, sh.Store().Len())
	})
}

func TestSheet_Columns(t *testing.T) {
	t.Run("insert column shifts cells right", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		_, _, _ = sh.WriteCell("A1", "1", nil)
		_, _, _ = sh.WriteCell("B1", "2", nil)
		_, _, _ = sh.WriteCell("C1", "=A1+B1", nil)

		assert.NoError(t, sh.InsertColumn(2))

		cell, _ := sh.ReadCell("C1")
		assert.Equal(t, "2", cell.Value)
		cell, _ = sh.ReadCell("D1")
		assert.Equal(t, "A1+C1", cell.Value)
	})

	t.Run("delete column breaks its references", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		_, _, _ = sh.WriteCell("A1", "1", nil)
		_, _, _ = sh.WriteCell("B1", "2", nil)
		_, _, _ = sh.WriteCell("C1", "=A1+B1", nil)

		assert.NoError(t, sh.DeleteColumn(2))

		cell, _ := sh.ReadCell("B1")
		assert.Equal(t, "A1+#REF!", cell.Value)
	})

	t.Run("swap exchanges adjacent columns", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		_, _, _ = sh.WriteCell("A1", "left", nil)
		_, _, _ = sh.WriteCell("B1", "right", nil)
		_, _, _ = sh.WriteCell("C1", "=A1", nil)

		assert.NoError(t, sh.SwapColumns(1))

		cell, _ := sh.ReadCell("A1")
		assert.Equal(t, "right", cell.Value)
		cell, _ = sh.ReadCell("B1")
		assert.Equal(t, "left", cell.Value)
		cell, _ = sh.ReadCell("C1")
		assert.Equal(t, "B1", cell.Value)
	})
}

func TestSheet_StructuralEditsRewriteSheetState(t *testing.T) {
	t.Run("named ranges follow the edit", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		assert.NoError(t, sh.SetNamedRange("data", "B2:B5"))

		assert.NoError(t, sh.InsertRow(3))
		assert.Equal(t, "B2:B6", sh.NamedRanges()["data"])
	})

	t.Run("merged regions relocate", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		sh.state.MergedCells["A2"] = "B3"

		assert.NoError(t, sh.InsertRow(1))
		assert.Equal(t, map[string]string{"A3": "B4"}, sh.state.MergedCells)
	})

	t.Run("validation keys relocate", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		sh.state.Validations["A2"] = &ValidationRule{Type: "number"}

		assert.NoError(t, sh.DeleteRow(1))
		_, ok := sh.state.Validations["A1"]
		assert.True(t, ok)
	})
}

func TestSheet_UndoRedo(t *testing.T) {
	t.Run("undo restores content and graph", func(t *testing.T) {
		sh := NewSheet("Sheet1")
		_, _, _ = sh.WriteCell("A1", "1", nil)

		assert.NoError(t, sh.RecordSnapshot("set B1"))
		_, _, _ = sh.WriteCell("B1", "=A1*2", nil)

		assert.NoError(t, sh.Undo())
		cell, _ := sh.ReadCell("B1")
		assert.Equal(t, "", cell.Value)
		assert.Empty(t, sh.Graph().Dependents("A1"))

		assert.NoError(t, sh.Redo())
		cell, _ = sh.ReadCell("B1")
		assert.Equal(t, "A1*2", cell.Value)
		assert.Equal(t, []string{"B1"}, sh.Graph().Dependents("A1"))
	})
}

func TestSheet_SetNamedRange(t *testing.T) {
	sh := NewSheet("Sheet1")

	t.Run("name must be an identifier starting with a letter", func(t *testing.T) {
		assert.ErrorIs(t, sh.SetNamedRange("1prices", "A1:A2"), contracts.NamedRangeNameError)
		assert.ErrorIs(t, sh.SetNamedRange("", "A1:A2"), contracts.NamedRangeNameError)
		assert.ErrorIs(t, sh.SetNamedRange("pri ces", "A1:A2"), contracts.NamedRangeNameError)
	})

	t.Run("range must parse", func(t *testing.T) {
		assert.ErrorIs(t, sh.SetNamedRange("prices", "A1:"), contracts.InvalidRangeError)
	})

	t.Run("delete removes the alias", func(t *testing.T) {
		assert.NoError(t, sh.SetNamedRange("prices", "A1:A2"))
		sh.DeleteNamedRange("prices")
		_, ok := sh.NamedRanges()["prices"]
		assert.False(t, ok)
	})
}
