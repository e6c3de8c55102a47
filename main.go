package main

import (
	"fmt"
	"log"

	"inspection-app/catalog/checklist"
	"inspection-app/config"
	"inspection-app/controllers/idgen"
	"inspection-app/database"
	"inspection-app/migration"
	"inspection-app/routes"
	"inspection-app/services"
	"inspection-app/storage"

	"github.com/gofiber/fiber/v2"
)

func main() {

	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // foto inspeksi bisa banyak
	})

	config.LoadConfig()

	// Connect to database
	db, err := database.GetDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate models
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)
	checklist.SeedChecklist(db)
	database.InitRedis()

	blobs, err := storage.NewMinioStore()
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	inspectionService := services.NewInspectionService(db, blobs)
	checkerService := services.NewCheckerService(db, blobs, services.NewMailNotifier())

	// Setup CORS middleware
	config.SetupCORS(app)

	// Setup routes
	routes.SetupAuthRoutes(app, db)
	routes.SetupDashboardRoutes(app, db)
	routes.SetupInspectionRoutes(app, db, inspectionService)
	routes.SetupCheckerRoutes(app, db, checkerService)
	routes.SetupReportRoutes(app, db)
	checklist.SetupChecklistRoutes(app, db)

	port := config.APP_PORT
	fmt.Println("🚀 Server berjalan di port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}

}
