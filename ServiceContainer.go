package main

import (
	"github.com/gin-gonic/gin"

	"gridcalc/contracts"
)

type ServiceContainer struct {
	Evaluator     contracts.Evaluator
	Workbook      *Workbook
	Dispatcher    contracts.ChangeDispatcher
	Store         *WorkbookStore
	ApiController contracts.ApiController
	Router        *gin.Engine
}

func BuildServiceContainer(configDbPath string) (container ServiceContainer, err error) {
	container.Evaluator = NewExpressionEvaluator()
	container.Dispatcher = NewWebhookChangeDispatcher()

	container.Workbook = NewWorkbook(container.Evaluator)
	container.Workbook.SetDispatcher(container.Dispatcher)

	if configDbPath != "" {
		container.Store, err = NewWorkbookStore(configDbPath)
		if err != nil {
			return
		}
	}

	container.ApiController = NewApiController(container.Workbook, container.Dispatcher)
	container.Router = SetupRouter(container.ApiController)

	return
}
