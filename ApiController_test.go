package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"gridcalc/contracts"
	"gridcalc/mocks"
)

func requestJson(t *testing.T, controller contracts.ApiController, method string, path string, body any) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		bodyReader = bytes.NewReader(jsonBody)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	router := SetupRouter(controller)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, "/api/"+ApiVersion+path, bodyReader)
	router.ServeHTTP(w, req)
	return w
}

func _parseJsonBody(w *httptest.ResponseRecorder) (response map[string]any, err error) {
	err = json.Unmarshal(w.Body.Bytes(), &response)
	return
}

func TestApiController_GetCellAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("should return cell value and result", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("GetCell", "Sheet1", "A1").
			Return(&contracts.Cell{Value: "A2*2", IsFormula: true, Result: "10"}, nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodGet, "/sheets/Sheet1/cells/A1", nil)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "A2*2", response["value"])
		assert.Equal(t, "10", response["result"])
	})

	t.Run("sheet not found", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("GetCell", "Nope", "A1").Return(nil, contracts.SheetNotFoundError)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodGet, "/sheets/Nope/cells/A1", nil)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, contracts.SheetNotFoundError.Error(), response["error"])
	})

	t.Run("custom error", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("GetCell", "Sheet1", "A1").Return(nil, errors.New("test"))

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodGet, "/sheets/Sheet1/cells/A1", nil)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "test", response["error"])
	})
}

func TestApiController_SetCellAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success write", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("SetCell", "Sheet1", "A1", "=B1+1").
			Return(&contracts.Cell{Value: "B1+1", IsFormula: true, Result: "3"}, nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/cells/A1", map[string]string{"value": "=B1+1"})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "B1+1", response["value"])
		assert.Equal(t, "3", response["result"])
	})

	t.Run("empty value clears the cell", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("SetCell", "Sheet1", "A1", "").
			Return(&contracts.Cell{}, nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/cells/A1", map[string]string{"value": ""})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rejected reference", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("SetCell", "Sheet1", "garbage", "1").
			Return(nil, contracts.InvalidReferenceError)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/cells/garbage", map[string]string{"value": "1"})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, contracts.InvalidReferenceError.Error(), response["error"])
	})
}

func TestApiController_GetSheetAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		list := contracts.CellList{
			"A1": {Value: "1", Result: "1"},
			"B1": {Value: "A1*2", IsFormula: true, Result: "2"},
		}

		workbook := mocks.NewWorkbook(t)
		workbook.On("SheetCells", "Sheet1").Return(list, nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodGet, "/sheets/Sheet1", nil)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)

		for key, cell := range list {
			assert.Contains(t, response, key)
			responseCell := response[key].(map[string]any)
			assert.Equal(t, cell.Value, responseCell["value"])
			assert.Equal(t, cell.Result, responseCell["result"])
		}
	})

	t.Run("not found", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("SheetCells", "Nope").Return(nil, contracts.SheetNotFoundError)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodGet, "/sheets/Nope", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApiController_SheetActions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list sheets", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("SheetNames").Return([]string{"Sheet1", "Data"})
		workbook.On("ActiveSheet").Return("Data")

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodGet, "/sheets", nil)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{"Sheet1", "Data"}, response["sheets"])
		assert.Equal(t, "Data", response["active"])
	})

	t.Run("add sheet", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("AddSheet", "Data").Return(nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets", map[string]string{"name": "Data"})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("add duplicate sheet", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("AddSheet", "Data").Return(contracts.SheetExistsError)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets", map[string]string{"name": "Data"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("add sheet without a name", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets", map[string]string{})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		workbook.AssertNotCalled(t, "AddSheet")
	})

	t.Run("delete last sheet", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("DeleteSheet", "Sheet1").Return(contracts.LastSheetError)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodDelete, "/sheets/Sheet1", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("rename sheet", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("RenameSheet", "Data", "Figures").Return(nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPut, "/sheets/Data/name", map[string]string{"name": "Figures"})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("activate sheet", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("SetActiveSheet", "Data").Return(nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Data/activate", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestApiController_StructuralActions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("insert row", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("InsertRow", "Sheet1", 3).Return(nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/rows/3", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("delete row out of bounds", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("DeleteRow", "Sheet1", 9).Return(contracts.OutOfBoundsError)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodDelete, "/sheets/Sheet1/rows/9", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("insert column by letters", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("InsertColumn", "Sheet1", 28).Return(nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/columns/AB", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("bad column letters never reach the workbook", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/columns/12", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		workbook.AssertNotCalled(t, "InsertColumn")
	})

	t.Run("swap columns", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("SwapColumns", "Sheet1", 2).Return(nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/columns/B/swap", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestApiController_RangeActions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("sort defaults to ascending", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("SortRange", "Sheet1", "A1:B5", "B", true).Return(nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/sort", map[string]string{
			"range":    "A1:B5",
			"byColumn": "B",
		})

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("sort descending", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("SortRange", "Sheet1", "A1:B5", "A", false).Return(nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/sort", map[string]any{
			"range":     "A1:B5",
			"byColumn":  "A",
			"ascending": false,
		})

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("fill", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("Fill", "Sheet1", "A1:A2", "A3:A8").Return(nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/fill", map[string]string{
			"source": "A1:A2",
			"target": "A3:A8",
		})

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("fill size mismatch", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("Fill", "Sheet1", "A1:B1", "C1:C4").Return(contracts.SizeMismatchError)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/fill", map[string]string{
			"source": "A1:B1",
			"target": "C1:C4",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("replace returns the count", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("FindReplace", "Sheet1", "old", "new", contracts.FindReplaceOptions{MatchCase: true}).
			Return(3, nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/replace", map[string]any{
			"find":      "old",
			"replace":   "new",
			"matchCase": true,
		})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(3), response["replaced"])
	})
}

func TestApiController_HistoryActions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("undo", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("Undo", "Sheet1").Return(nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/undo", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("nothing to redo", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("Redo", "Sheet1").Return(NothingToRedoError)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/redo", nil)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, NothingToRedoError.Error(), response["error"])
	})
}

func TestApiController_NamedRangeActions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("set named range", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("SetNamedRange", "Sheet1", "totals", "B1:B9").Return(nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/names", map[string]string{
			"name":  "totals",
			"range": "B1:B9",
		})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "totals", response["name"])
		assert.Equal(t, "B1:B9", response["range"])
	})

	t.Run("invalid name", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("SetNamedRange", "Sheet1", "B2", "B1:B9").Return(contracts.NamedRangeNameError)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/names", map[string]string{
			"name":  "B2",
			"range": "B1:B9",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("delete named range", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("DeleteNamedRange", "Sheet1", "totals").Return(nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodDelete, "/sheets/Sheet1/names/totals", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestApiController_SubscribeAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("registers the webhook", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		dispatcher := mocks.NewChangeDispatcher(t)
		dispatcher.On("SetWebhookURL", "Sheet1", "http://example.com/hook").Return()

		controller := NewApiController(workbook, dispatcher)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/subscribe", map[string]string{
			"webhook_url": "http://example.com/hook",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rejects a bad url", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		dispatcher := mocks.NewChangeDispatcher(t)

		controller := NewApiController(workbook, dispatcher)

		w := requestJson(t, controller, http.MethodPost, "/sheets/Sheet1/subscribe", map[string]string{
			"webhook_url": "not a url",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		dispatcher.AssertNotCalled(t, "SetWebhookURL")
	})
}

func TestApiController_ExportImportActions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("export streams the document", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("ExportJSON").Return([]byte(`{"version":2}`), nil)

		controller := NewApiController(workbook, nil)

		w := requestJson(t, controller, http.MethodGet, "/workbook", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t, `{"version":2}`, w.Body.String())
	})

	t.Run("import accepts the document", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("ImportJSON", []byte(`{"A1":"5"}`)).Return(nil)

		controller := NewApiController(workbook, nil)

		router := SetupRouter(controller)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/api/"+ApiVersion+"/workbook", bytes.NewReader([]byte(`{"A1":"5"}`)))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("import rejects garbage", func(t *testing.T) {
		workbook := mocks.NewWorkbook(t)
		workbook.On("ImportJSON", []byte(`[1]`)).Return(DocumentFormatError)

		controller := NewApiController(workbook, nil)

		router := SetupRouter(controller)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/api/"+ApiVersion+"/workbook", bytes.NewReader([]byte(`[1]`)))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
