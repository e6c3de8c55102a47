package checklist

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ChecklistHandler struct {
	DB *gorm.DB
}

func NewChecklistHandler(db *gorm.DB) *ChecklistHandler {
	return &ChecklistHandler{DB: db}
}

// GetSecurityChecklist mengembalikan katalog checklist security,
// dikelompokkan per kategori dan diurutkan per kolom order.
func (h *ChecklistHandler) GetSecurityChecklist(ctx *fiber.Ctx) error {
	var categories []ChecklistCategory
	if err := h.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("item_order ASC")
		}).
		Order("item_order ASC").
		Find(&categories).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to retrieve checklist",
			"error":   err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Checklist retrieved successfully",
		"data":    categories,
	})
}

func (h *ChecklistHandler) GetVehicleChecklist(ctx *fiber.Ctx) error {
	var categories []VehicleInspectionCategory
	if err := h.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("item_order ASC")
		}).
		Order("item_order ASC").
		Find(&categories).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to retrieve vehicle checklist",
			"error":   err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Vehicle checklist retrieved successfully",
		"data":    categories,
	})
}

// ListActiveItems mengambil semua item security yang aktif, urut katalog.
// Dipakai engine untuk validasi kelengkapan jawaban.
func ListActiveItems(db *gorm.DB) ([]ChecklistItem, error) {
	var items []ChecklistItem
	err := db.
		Joins("JOIN checklist_categories cc ON cc.id = checklist_items.category_id").
		Where("checklist_items.is_active = ?", true).
		Order("cc.item_order ASC, checklist_items.item_order ASC").
		Find(&items).Error
	return items, err
}

func ListActiveVehicleItems(db *gorm.DB) ([]VehicleInspectionItem, error) {
	var items []VehicleInspectionItem
	err := db.
		Joins("JOIN vehicle_inspection_categories vc ON vc.id = vehicle_inspection_items.category_id").
		Where("vehicle_inspection_items.is_active = ?", true).
		Order("vc.item_order ASC, vehicle_inspection_items.item_order ASC").
		Find(&items).Error
	return items, err
}
