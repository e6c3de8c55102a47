package migration

import (
	"inspection-app/catalog/checklist"
	"inspection-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.LoginLog{},
		&checklist.ChecklistCategory{},
		&checklist.ChecklistItem{},
		&checklist.VehicleInspectionCategory{},
		&checklist.VehicleInspectionItem{},
		&models.Container{},
		&models.SecurityCheck{},
		&models.SecurityCheckResponse{},
		&models.ResponseHistory{},
		&models.CheckerData{},
		&models.Photo{},
	)
}
