package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gridcalc/contracts"
)

const ApiVersion = "v1"

func SetupRouter(controller contracts.ApiController) *gin.Engine {
	router := gin.New()

	api := router.Group("/api/" + ApiVersion)

	api.GET("/sheets", controller.ListSheetsAction)
	api.POST("/sheets", controller.AddSheetAction)
	api.DELETE("/sheets/:sheet", controller.DeleteSheetAction)
	api.PUT("/sheets/:sheet/name", controller.RenameSheetAction)
	api.POST("/sheets/:sheet/activate", controller.ActivateSheetAction)

	api.GET("/sheets/:sheet", controller.GetSheetAction)
	api.GET("/sheets/:sheet/cells/:cell_id", controller.GetCellAction)
	api.POST("/sheets/:sheet/cells/:cell_id", controller.SetCellAction)

	api.POST("/sheets/:sheet/rows/:row", controller.InsertRowAction)
	api.DELETE("/sheets/:sheet/rows/:row", controller.DeleteRowAction)
	api.POST("/sheets/:sheet/columns/:column", controller.InsertColumnAction)
	api.DELETE("/sheets/:sheet/columns/:column", controller.DeleteColumnAction)
	api.POST("/sheets/:sheet/columns/:column/swap", controller.SwapColumnsAction)

	api.POST("/sheets/:sheet/sort", controller.SortRangeAction)
	api.POST("/sheets/:sheet/fill", controller.FillAction)
	api.POST("/sheets/:sheet/replace", controller.FindReplaceAction)

	api.POST("/sheets/:sheet/undo", controller.UndoAction)
	api.POST("/sheets/:sheet/redo", controller.RedoAction)

	api.POST("/sheets/:sheet/names", controller.SetNamedRangeAction)
	api.DELETE("/sheets/:sheet/names/:name", controller.DeleteNamedRangeAction)

	api.POST("/sheets/:sheet/subscribe", controller.SubscribeAction)

	api.GET("/workbook", controller.ExportAction)
	api.PUT("/workbook", controller.ImportAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}
