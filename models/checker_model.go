package models

import "time"

// CheckerData adalah verifikasi tahap kedua oleh CHECKER.
// Hanya bisa dibuat setelah SecurityCheck ada dan semua item-nya checked.
type CheckerData struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	ContainerID   uint   `json:"container_id" gorm:"uniqueIndex;not null"`
	UserID        uint   `json:"user_id" gorm:"index;not null"`
	UTCNo         string `json:"utc_no" gorm:"uniqueIndex;not null"`
	InspectorName string `json:"inspector_name"`
	Remarks       string `json:"remarks"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Photos []Photo `json:"photos,omitempty" gorm:"foreignKey:CheckerDataID;constraint:OnDelete:CASCADE"`
}

func (CheckerData) TableName() string {
	return "checker_data"
}
