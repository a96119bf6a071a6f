package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"gridcalc/contracts"
)

type ApiController struct {
	Workbook   contracts.Workbook
	Dispatcher contracts.ChangeDispatcher
}

func NewApiController(workbook contracts.Workbook, dispatcher contracts.ChangeDispatcher) *ApiController {
	return &ApiController{Workbook: workbook, Dispatcher: dispatcher}
}

type SheetEndpointParams struct {
	Sheet string `uri:"sheet" binding:"required"`
}

type CellEndpointParams struct {
	Sheet string `uri:"sheet" binding:"required"`
	Cell  string `uri:"cell_id" binding:"required"`
}

type RowEndpointParams struct {
	Sheet string `uri:"sheet" binding:"required"`
	Row   int    `uri:"row" binding:"required"`
}

type ColumnEndpointParams struct {
	Sheet  string `uri:"sheet" binding:"required"`
	Column string `uri:"column" binding:"required"`
}

type NamedRangeEndpointParams struct {
	Sheet string `uri:"sheet" binding:"required"`
	Name  string `uri:"name" binding:"required"`
}

type SetCellRequest struct {
	Value string `json:"value"`
}

type AddSheetRequest struct {
	Name string `json:"name" binding:"required"`
}

type RenameSheetRequest struct {
	Name string `json:"name" binding:"required"`
}

type SortRangeRequest struct {
	Range     string `json:"range" binding:"required"`
	ByColumn  string `json:"byColumn" binding:"required"`
	Ascending *bool  `json:"ascending"`
}

type FillRequest struct {
	Source string `json:"source" binding:"required"`
	Target string `json:"target" binding:"required"`
}

type FindReplaceRequest struct {
	Find    string `json:"find" binding:"required"`
	Replace string `json:"replace"`
	contracts.FindReplaceOptions
}

type SetNamedRangeRequest struct {
	Name  string `json:"name" binding:"required"`
	Range string `json:"range" binding:"required"`
}

type SubscribeRequest struct {
	WebhookURL string `json:"webhook_url" binding:"required,url"`
}

// respondError maps engine errors onto HTTP statuses: unknown sheets are
// 404, every rejected operation is 422, anything else is 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, contracts.SheetNotFoundError):
		status = http.StatusNotFound
	case errors.Is(err, contracts.InvalidReferenceError),
		errors.Is(err, contracts.InvalidRangeError),
		errors.Is(err, contracts.OutOfBoundsError),
		errors.Is(err, contracts.SizeMismatchError),
		errors.Is(err, contracts.SheetExistsError),
		errors.Is(err, contracts.SheetNameError),
		errors.Is(err, contracts.LastSheetError),
		errors.Is(err, contracts.NamedRangeNameError),
		errors.Is(err, NothingToUndoError),
		errors.Is(err, NothingToRedoError),
		errors.Is(err, DocumentFormatError):
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func (api *ApiController) ListSheetsAction(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sheets": api.Workbook.SheetNames(),
		"active": api.Workbook.ActiveSheet(),
	})
}

func (api *ApiController) AddSheetAction(c *gin.Context) {
	request := AddSheetRequest{}

	err := c.ShouldBindJSON(&request)
	if err == nil {
		err = api.Workbook.AddSheet(request.Name)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusCreated, gin.H{"name": request.Name})
	}
}

func (api *ApiController) DeleteSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = api.Workbook.DeleteSheet(params.Sheet)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.Status(http.StatusNoContent)
	}
}

func (api *ApiController) RenameSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}
	request := RenameSheetRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err == nil {
		err = api.Workbook.RenameSheet(params.Sheet, request.Name)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusOK, gin.H{"name": request.Name})
	}
}

func (api *ApiController) ActivateSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = api.Workbook.SetActiveSheet(params.Sheet)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusOK, gin.H{"active": params.Sheet})
	}
}

func (api *ApiController) GetSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}
	var response contracts.CellList

	err := c.ShouldBindUri(&params)
	if err == nil {
		response, err = api.Workbook.SheetCells(params.Sheet)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) GetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)
	if err == nil {
		response, err = api.Workbook.GetCell(params.Sheet, params.Cell)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) SetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SetCellRequest{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err == nil {
		response, err = api.Workbook.SetCell(params.Sheet, params.Cell, request.Value)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusCreated, response)
	}
}

func (api *ApiController) InsertRowAction(c *gin.Context) {
	api.rowAction(c, api.Workbook.InsertRow)
}

func (api *ApiController) DeleteRowAction(c *gin.Context) {
	api.rowAction(c, api.Workbook.DeleteRow)
}

func (api *ApiController) rowAction(c *gin.Context, op func(sheet string, pos int) error) {
	params := RowEndpointParams{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = op(params.Sheet, params.Row)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.Status(http.StatusNoContent)
	}
}

func (api *ApiController) InsertColumnAction(c *gin.Context) {
	api.columnAction(c, api.Workbook.InsertColumn)
}

func (api *ApiController) DeleteColumnAction(c *gin.Context) {
	api.columnAction(c, api.Workbook.DeleteColumn)
}

func (api *ApiController) SwapColumnsAction(c *gin.Context) {
	api.columnAction(c, api.Workbook.SwapColumns)
}

func (api *ApiController) columnAction(c *gin.Context, op func(sheet string, col int) error) {
	params := ColumnEndpointParams{}

	err := c.ShouldBindUri(&params)

	var col int
	if err == nil {
		col, err = ColumnNumber(params.Column)
	}
	if err == nil {
		err = op(params.Sheet, col)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.Status(http.StatusNoContent)
	}
}

func (api *ApiController) SortRangeAction(c *gin.Context) {
	params := SheetEndpointParams{}
	request := SortRangeRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err == nil {
		ascending := request.Ascending == nil || *request.Ascending
		err = api.Workbook.SortRange(params.Sheet, request.Range, request.ByColumn, ascending)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.Status(http.StatusNoContent)
	}
}

func (api *ApiController) FillAction(c *gin.Context) {
	params := SheetEndpointParams{}
	request := FillRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err == nil {
		err = api.Workbook.Fill(params.Sheet, request.Source, request.Target)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.Status(http.StatusNoContent)
	}
}

func (api *ApiController) FindReplaceAction(c *gin.Context) {
	params := SheetEndpointParams{}
	request := FindReplaceRequest{}
	var replaced int

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err == nil {
		replaced, err = api.Workbook.FindReplace(params.Sheet, request.Find, request.Replace, request.FindReplaceOptions)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusOK, gin.H{"replaced": replaced})
	}
}

func (api *ApiController) UndoAction(c *gin.Context) {
	api.historyAction(c, api.Workbook.Undo)
}

func (api *ApiController) RedoAction(c *gin.Context) {
	api.historyAction(c, api.Workbook.Redo)
}

func (api *ApiController) historyAction(c *gin.Context, op func(sheet string) error) {
	params := SheetEndpointParams{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = op(params.Sheet)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.Status(http.StatusNoContent)
	}
}

func (api *ApiController) SetNamedRangeAction(c *gin.Context) {
	params := SheetEndpointParams{}
	request := SetNamedRangeRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err == nil {
		err = api.Workbook.SetNamedRange(params.Sheet, request.Name, request.Range)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.JSON(http.StatusCreated, gin.H{"name": request.Name, "range": request.Range})
	}
}

func (api *ApiController) DeleteNamedRangeAction(c *gin.Context) {
	params := NamedRangeEndpointParams{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = api.Workbook.DeleteNamedRange(params.Sheet, params.Name)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.Status(http.StatusNoContent)
	}
}

func (api *ApiController) SubscribeAction(c *gin.Context) {
	params := SheetEndpointParams{}
	request := SubscribeRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err != nil {
		respondError(c, err)
		return
	}

	api.Dispatcher.SetWebhookURL(params.Sheet, request.WebhookURL)
	c.JSON(http.StatusCreated, gin.H{"webhook_url": request.WebhookURL})
}

func (api *ApiController) ExportAction(c *gin.Context) {
	document, err := api.Workbook.ExportJSON()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", document)
}

func (api *ApiController) ImportAction(c *gin.Context) {
	document, err := io.ReadAll(c.Request.Body)
	if err == nil {
		err = api.Workbook.ImportJSON(document)
	}

	if err != nil {
		respondError(c, err)
	} else {
		c.Status(http.StatusNoContent)
	}
}
