package checklist

import "time"

// Katalog checklist inspeksi. Read-only dari sisi workflow,
// urutan tampilan ditentukan kolom Order.

type ChecklistCategory struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"unique;not null"`
	Order     int    `json:"order" gorm:"column:item_order;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`

	Items []ChecklistItem `json:"items,omitempty" gorm:"foreignKey:CategoryID"`
}

type ChecklistItem struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	CategoryID uint   `json:"category_id" gorm:"index;not null;uniqueIndex:idx_checklist_cat_order"`
	Name       string `json:"name" gorm:"not null"`
	Order      int    `json:"order" gorm:"column:item_order;uniqueIndex:idx_checklist_cat_order"`
	IsActive   bool   `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time `json:"created_at"`
}

type VehicleInspectionCategory struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"unique;not null"`
	Order     int    `json:"order" gorm:"column:item_order;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`

	Items []VehicleInspectionItem `json:"items,omitempty" gorm:"foreignKey:CategoryID"`
}

type VehicleInspectionItem struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	CategoryID uint   `json:"category_id" gorm:"index;not null;uniqueIndex:idx_vehicle_cat_order"`
	Name       string `json:"name" gorm:"not null"`
	Order      int    `json:"order" gorm:"column:item_order;uniqueIndex:idx_vehicle_cat_order"`
	IsActive   bool   `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time `json:"created_at"`
}
