package contracts

import "github.com/gin-gonic/gin"

type ApiController interface {
	ListSheetsAction(c *gin.Context)
	AddSheetAction(c *gin.Context)
	DeleteSheetAction(c *gin.Context)
	RenameSheetAction(c *gin.Context)
	ActivateSheetAction(c *gin.Context)

	GetSheetAction(c *gin.Context)
	GetCellAction(c *gin.Context)
	SetCellAction(c *gin.Context)

	InsertRowAction(c *gin.Context)
	DeleteRowAction(c *gin.Context)
	InsertColumnAction(c *gin.Context)
	DeleteColumnAction(c *gin.Context)
	SwapColumnsAction(c *gin.Context)

	SortRangeAction(c *gin.Context)
	FillAction(c *gin.Context)
	FindReplaceAction(c *gin.Context)

	UndoAction(c *gin.Context)
	RedoAction(c *gin.Context)

	SetNamedRangeAction(c *gin.Context)
	DeleteNamedRangeAction(c *gin.Context)

	SubscribeAction(c *gin.Context)

	ExportAction(c *gin.Context)
	ImportAction(c *gin.Context)
}
