package routes

import (
	"lumber-app/config"
	"lumber-app/controllers"
	"lumber-app/database"
	"lumber-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupStageRoutes(app *fiber.App) {

	stageController := &controllers.StageController{}
	api := app.Group(config.MAIN_ROUTES+"/stages", middleware.AuthMiddleware)
	api.Use(database.InjectDBMiddleware(stageController))

	api.Get("/queues/tally-entry", stageController.GetTallyEntryQueue)
	api.Get("/queues/rip-entry", stageController.GetRipEntryQueue)
	api.Get("/queues/inventory-ready", stageController.GetInventoryReadyQueue)
	api.Get("/queues/po-needed", stageController.GetPoNeededQueue)
	api.Get("/queues/paid", stageController.GetPaidQueue)
	api.Get("/loads/:id/explain", stageController.ExplainLoadStages)
}
