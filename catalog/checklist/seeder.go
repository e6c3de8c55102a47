package checklist

import (
	"errors"
	"log"

	"gorm.io/gorm"
)

// SeedChecklist mengisi katalog checklist security dan vehicle inspection.
// Idempotent: kategori yang sudah ada tidak dibuat ulang.
func SeedChecklist(db *gorm.DB) {
	securityCatalog := []struct {
		Category string
		Items    []string
	}{
		{
			Category: "Pemeriksaan 7 Titik Container",
			Items: []string{
				"Dinding depan",
				"Dinding kiri",
				"Dinding kanan",
				"Lantai",
				"Atap / plafon",
				"Pintu dalam dan luar",
				"Bagian bawah / kolong",
			},
		},
		{
			Category: "Kondisi dan Kelengkapan",
			Items: []string{
				"Container bersih, kering, tidak bau",
				"Tidak ada hama / serangga",
				"Seal dalam kondisi baik",
				"Nomor seal sesuai dokumen",
				"Engsel dan kunci pintu berfungsi",
				"Tidak ada modifikasi / kompartemen tersembunyi",
				"Karet pintu utuh",
			},
		},
	}

	for order, cat := range securityCatalog {
		var existing ChecklistCategory
		err := db.Where("name = ?", cat.Category).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Seed checklist: unexpected DB error: %v", err)
			continue
		}

		category := ChecklistCategory{Name: cat.Category, Order: order + 1}
		if err := db.Create(&category).Error; err != nil {
			log.Printf("Seed checklist: failed to create category %s: %v", cat.Category, err)
			continue
		}
		for i, name := range cat.Items {
			item := ChecklistItem{
				CategoryID: category.ID,
				Name:       name,
				Order:      i + 1,
				IsActive:   true,
			}
			if err := db.Create(&item).Error; err != nil {
				log.Printf("Seed checklist: failed to create item %s: %v", name, err)
			}
		}
	}

	vehicleCatalog := []struct {
		Category string
		Items    []string
	}{
		{
			Category: "Pemeriksaan Kendaraan",
			Items: []string{
				"Kabin dan tempat duduk",
				"Ban dan ban cadangan",
				"Tangki bahan bakar",
				"Bumper depan dan belakang",
				"Ruang mesin",
				"Chassis / rangka",
			},
		},
	}

	for order, cat := range vehicleCatalog {
		var existing VehicleInspectionCategory
		err := db.Where("name = ?", cat.Category).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Seed vehicle checklist: unexpected DB error: %v", err)
			continue
		}

		category := VehicleInspectionCategory{Name: cat.Category, Order: order + 1}
		if err := db.Create(&category).Error; err != nil {
			log.Printf("Seed vehicle checklist: failed to create category %s: %v", cat.Category, err)
			continue
		}
		for i, name := range cat.Items {
			item := VehicleInspectionItem{
				CategoryID: category.ID,
				Name:       name,
				Order:      i + 1,
				IsActive:   true,
			}
			if err := db.Create(&item).Error; err != nil {
				log.Printf("Seed vehicle checklist: failed to create item %s: %v", name, err)
			}
		}
	}
}
