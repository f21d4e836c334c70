package routes

import (
	"lumber-app/config"
	"lumber-app/controllers"
	"lumber-app/database"
	"lumber-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupPackRoutes(app *fiber.App) {

	packController := &controllers.PackController{}
	api := app.Group(config.MAIN_ROUTES+"/packs", middleware.AuthMiddleware)
	api.Use(database.InjectDBMiddleware(packController))

	api.Post("/item/:id", packController.CreatePacks)
	api.Put("/item/:id/footage", packController.UpdateItemFootage)
	api.Get("/:id", packController.GetPack)
	api.Put("/:id", packController.UpdatePack)
	api.Delete("/:id", packController.DeletePack)
	api.Post("/:id/finish", packController.FinishPack)
	api.Post("/:id/partial-finish", packController.PartialFinishPack)
	api.Post("/:id/reopen", packController.ReopenPack)
}
