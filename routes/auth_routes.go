package routes

import (
	"lumber-app/config"
	"lumber-app/controllers"
	"lumber-app/database"
	"lumber-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {

	authController := &controllers.AuthController{}
	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Use(database.InjectDBMiddleware(authController))

	api.Post("/login", authController.Login)
	api.Get("/is-logged-in", middleware.AuthMiddleware, authController.IsLoggedIn)
	api.Get("/logout", middleware.AuthMiddleware, authController.Logout)
}
