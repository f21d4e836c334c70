package main

import (
	"fmt"
	"log"

	"lumber-app/config"
	"lumber-app/controllers/idgen"
	"lumber-app/database"
	"lumber-app/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {

	config.LoadConfig()

	app := fiber.New()

	// Make sure the database exists
	database.EnsureDatabaseExists(config.DBName)

	db, err := database.GetDBConnection(config.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate models and the maintenance view
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	// Setup CORS middleware
	config.SetupCORS(app)

	// Setup routes
	routes.SetupAuthRoutes(app)
	routes.SetupSupplierRoutes(app)
	routes.SetupLoadRoutes(app)
	routes.SetupPackRoutes(app)
	routes.SetupStageRoutes(app)
	routes.SetupMaintenanceRoutes(app)

	port := config.APP_PORT
	fmt.Println("🚀 Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
