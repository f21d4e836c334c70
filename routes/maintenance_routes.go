package routes

import (
	"lumber-app/config"
	"lumber-app/controllers"
	"lumber-app/database"
	"lumber-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupMaintenanceRoutes(app *fiber.App) {

	maintenanceController := &controllers.MaintenanceController{}
	api := app.Group(config.MAIN_ROUTES+"/maintenance", middleware.AuthMiddleware)
	api.Use(database.InjectDBMiddleware(maintenanceController))

	api.Get("/integrity", maintenanceController.GetIntegrityReport)
	api.Post("/repair/duplicate-packs", maintenanceController.RepairDuplicatePacks)
	api.Post("/repair/orphans", maintenanceController.RepairOrphans)
}
