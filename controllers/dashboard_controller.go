package controllers

import (
	"encoding/json"
	"time"

	"inspection-app/database"
	"inspection-app/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GetDashboard mengembalikan jumlah inspeksi per state turunan.
// Hasil dihitung dari keberadaan SecurityCheck/CheckerData, di-cache
// di redis dan di-invalidate oleh setiap mutasi workflow.
func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	if rdb := database.GetRedis(); rdb != nil {
		cached, err := rdb.Get(ctx.Context(), database.DashboardCacheKey).Result()
		if err == nil && cached != "" {
			var counts repositories.DashboardCounts
			if json.Unmarshal([]byte(cached), &counts) == nil {
				return ctx.JSON(fiber.Map{
					"success": true,
					"data":    counts,
					"cached":  true,
				})
			}
		}
	}

	repo := repositories.NewInspectionRepository(c.DB)
	counts, err := repo.GetDashboardCounts()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if rdb := database.GetRedis(); rdb != nil {
		if payload, err := json.Marshal(counts); err == nil {
			rdb.Set(ctx.Context(), database.DashboardCacheKey, payload, 5*time.Minute)
		}
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    counts,
	})
}
