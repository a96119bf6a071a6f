package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gridcalc/contracts"
)

func TestSheetRegistry_Add(t *testing.T) {
	t.Run("starts with the default sheet active", func(t *testing.T) {
		r := NewSheetRegistry()
		assert.Equal(t, []string{DefaultSheetName}, r.Names())
		assert.Equal(t, DefaultSheetName, r.ActiveName())
	})

	t.Run("added sheets keep insertion order", func(t *testing.T) {
		r := NewSheetRegistry()
		assert.NoError(t, r.Add("Data"))
		assert.NoError(t, r.Add("Archive"))
		assert.Equal(t, []string{DefaultSheetName, "Data", "Archive"}, r.Names())
	})

	t.Run("duplicate names are rejected", func(t *testing.T) {
		r := NewSheetRegistry()
		assert.NoError(t, r.Add("Data"))
		assert.ErrorIs(t, r.Add("Data"), contracts.SheetExistsError)
	})

	t.Run("invalid names are rejected", func(t *testing.T) {
		r := NewSheetRegistry()
		assert.ErrorIs(t, r.Add(""), contracts.SheetNameError)
		assert.ErrorIs(t, r.Add("1data"), contracts.SheetNameError)
		assert.ErrorIs(t, r.Add("My Sheet"), contracts.SheetNameError)
		assert.ErrorIs(t, r.Add("a.b"), contracts.SheetNameError)
	})
}

func TestSheetRegistry_Delete(t *testing.T) {
	t.Run("the last sheet cannot be deleted", func(t *testing.T) {
		r := NewSheetRegistry()
		assert.ErrorIs(t, r.Delete(DefaultSheetName), contracts.LastSheetError)
	})

	t.Run("deleting the active sheet moves activation", func(t *testing.T) {
		r := NewSheetRegistry()
		assert.NoError(t, r.Add("Data"))
		assert.NoError(t, r.SetActive("Data"))

		assert.NoError(t, r.Delete("Data"))
		assert.Equal(t, DefaultSheetName, r.ActiveName())
		assert.Equal(t, 1, r.Len())
	})

	t.Run("unknown sheet", func(t *testing.T) {
		r := NewSheetRegistry()
		assert.NoError(t, r.Add("Data"))
		assert.ErrorIs(t, r.Delete("Nope"), contracts.SheetNotFoundError)
	})
}

func TestSheetRegistry_Rename(t *testing.T) {
	t.Run("rename keeps order position", func(t *testing.T) {
		r := NewSheetRegistry()
		assert.NoError(t, r.Add("Data"))
		assert.NoError(t, r.Add("Archive"))

		assert.NoError(t, r.Rename("Data", "Figures"))
		assert.Equal(t, []string{DefaultSheetName, "Figures", "Archive"}, r.Names())

		sh, err := r.Get("Figures")
		assert.NoError(t, err)
		assert.Equal(t, "Figures", sh.Name)
	})

	t.Run("rename to an existing name is rejected", func(t *testing.T) {
		r := NewSheetRegistry()
		assert.NoError(t, r.Add("Data"))
		assert.ErrorIs(t, r.Rename("Data", DefaultSheetName), contracts.SheetExistsError)
	})

	t.Run("cross-sheet formulas keep the old qualifier text", func(t *testing.T) {
		r := NewSheetRegistry()
		assert.NoError(t, r.Add("Data"))

		sh, _ := r.Get(DefaultSheetName)
		_, _, err := sh.WriteCell("A1", "=Data.B1*2", nil)
		assert.NoError(t, err)

		assert.NoError(t, r.Rename("Data", "Figures"))

		cell, _ := sh.ReadCell("A1")
		assert.Equal(t, "Data.B1*2", cell.Value)
	})
}

func TestSheetRegistry_Isolation(t *testing.T) {
	t.Run("same address on different sheets holds different cells", func(t *testing.T) {
		r := NewSheetRegistry()
		assert.NoError(t, r.Add("Data"))

		first, _ := r.Get(DefaultSheetName)
		second, _ := r.Get("Data")

		_, _, _ = first.WriteCell("A1", "one", nil)
		_, _, _ = second.WriteCell("A1", "two", nil)

		cell, _ := first.ReadCell("A1")
		assert.Equal(t, "one", cell.Value)
		cell, _ = second.ReadCell("A1")
		assert.Equal(t, "two", cell.Value)
	})
}

func TestSheetRegistry_SetActive(t *testing.T) {
	r := NewSheetRegistry()
	assert.NoError(t, r.Add("Data"))

	assert.NoError(t, r.SetActive("Data"))
	assert.Equal(t, "Data", r.ActiveName())

	assert.ErrorIs(t, r.SetActive("Nope"), contracts.SheetNotFoundError)
}
