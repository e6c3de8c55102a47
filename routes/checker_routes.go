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

func SetupCheckerRoutes(app *fiber.App, db *gorm.DB, service *services.CheckerService) {
	checkerController := controllers.NewCheckerController(db, service)

	api := app.Group(config.MAIN_ROUTES+"/checker", middleware.AuthMiddleware)

	api.Get("/pending", checkerController.GetPendingCheckers)
	api.Post("/:container_id", middleware.RequireRole(models.RoleChecker), checkerController.SubmitCheckerData)
	api.Put("/:id", middleware.RequireRole(models.RoleChecker), checkerController.UpdateCheckerData)
}
