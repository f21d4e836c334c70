package routes

import (
	"lumber-app/config"
	"lumber-app/controllers"
	"lumber-app/database"
	"lumber-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupSupplierRoutes(app *fiber.App) {

	supplierController := &controllers.SupplierController{}
	api := app.Group(config.MAIN_ROUTES+"/suppliers", middleware.AuthMiddleware)
	api.Use(database.InjectDBMiddleware(supplierController))

	api.Post("/", supplierController.CreateSupplier)
	api.Get("/", supplierController.GetAllSuppliers)
	api.Get("/:id", supplierController.GetSupplierByID)
}
