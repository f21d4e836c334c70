package routes

import (
	"lumber-app/config"
	"lumber-app/controllers"
	"lumber-app/database"
	"lumber-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupLoadRoutes(app *fiber.App) {

	loadController := &controllers.LoadController{}
	api := app.Group(config.MAIN_ROUTES+"/loads", middleware.AuthMiddleware)
	api.Use(database.InjectDBMiddleware(loadController))

	api.Post("/upload-excel", loadController.CreateLoadsFromExcel)
	api.Post("/export", loadController.ExportLoads)
	api.Post("/bulk", loadController.BulkCreateLoads)
	api.Post("/", loadController.CreateLoad)
	api.Get("/", loadController.GetAllLoads)
	api.Get("/:id", loadController.GetLoadByID)
	api.Put("/:id", loadController.UpdateLoad)
	api.Delete("/:id", loadController.DeleteLoad)
	api.Post("/:id/po-generated", loadController.MarkPoGenerated)
	api.Post("/:id/arrival", loadController.MarkArrived)
	api.Post("/:id/paid", loadController.MarkPaid)
}
