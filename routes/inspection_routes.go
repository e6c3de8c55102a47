package routes

import (
	"inspection-app/config"
	"inspection-app/controllers"
	"inspection-app/middleware"
	"inspection-app/models"
	"inspection-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupInspectionRoutes(app *fiber.App, db *gorm.DB, service *services.InspectionService) {
	inspectionController := controllers.NewInspectionController(db, service)

	api := app.Group(config.MAIN_ROUTES+"/inspections", middleware.AuthMiddleware)

	api.Get("/", inspectionController.GetAllInspections)
	api.Get("/:id", inspectionController.GetInspectionByID)
	api.Post("/", middleware.RequireRole(models.RoleSecurity), inspectionController.CreateInspection)
	api.Put("/:id", middleware.RequireRole(models.RoleSecurity), inspectionController.UpdateInspection)
	api.Delete("/photo/:photo_id", inspectionController.DeletePhoto)
	api.Delete("/:id", middleware.RequireRole(models.RoleSecurity), inspectionController.DeleteInspection)
}
