package checklist

import (
	"inspection-app/config"
	"inspection-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupChecklistRoutes(app *fiber.App, db *gorm.DB) {
	handler := NewChecklistHandler(db)

	api := app.Group(config.MAIN_ROUTES, middleware.AuthMiddleware)
	api.Get("/checklists", handler.GetSecurityChecklist)
	api.Get("/vehicle-checklists", handler.GetVehicleChecklist)
}
