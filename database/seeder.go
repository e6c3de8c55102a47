// database/seeder.go
package database

import (
	"errors"
	"log"

	"inspection-app/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedUserMaster(db)
}

// SeedUserMaster membuat user default per role kalau belum ada.
func SeedUserMaster(db *gorm.DB) {
	users := []models.User{
		{
			Username: "admin",
			Name:     "Administrator",
			Email:    "admin@local",
			Role:     models.RoleAdmin,
		},
		{
			Username: "security1",
			Name:     "Petugas Security",
			Email:    "security1@local",
			Role:     models.RoleSecurity,
		},
		{
			Username: "checker1",
			Name:     "Petugas Checker",
			Email:    "checker1@local",
			Role:     models.RoleChecker,
		},
	}

	for _, u := range users {
		var existing models.User
		err := db.Where("username = ?", u.Username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Seed user: unexpected DB error: %v", err)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Seed user: failed to hash password: %v", err)
			continue
		}
		u.Password = string(hashed)

		if err := db.Create(&u).Error; err != nil {
			log.Printf("Seed user: failed to create %s: %v", u.Username, err)
		}
	}
}
