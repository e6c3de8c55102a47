package routes

import (
	"inspection-app/config"
	"inspection-app/controllers"
	"inspection-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReportRoutes(app *fiber.App, db *gorm.DB) {
	reportController := controllers.NewReportController(db)

	api := app.Group(config.MAIN_ROUTES+"/report", middleware.AuthMiddleware)
	api.Get("/", reportController.GetReport)
	api.Get("/export", reportController.ExportExcel)
}
