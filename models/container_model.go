package models

import (
	"time"

	"inspection-app/controllers/idgen"
	"inspection-app/types"

	"gorm.io/gorm"
)

// Container adalah satu kejadian inspeksi container fisik.
// Dibuat bersamaan dengan SecurityCheck pertamanya dalam satu transaksi.
type Container struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	ContainerNo    string `json:"container_no" gorm:"uniqueIndex;not null"`
	CompanyName    string `json:"company_name"`
	SealNo         string `json:"seal_no"`
	PlateNo        string `json:"plate_no"`
	InspectionDate time.Time `json:"inspection_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	SecurityCheck *SecurityCheck `json:"security_check,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CheckerData   *CheckerData   `json:"checker_data,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// SecurityCheck adalah inspeksi tahap pertama oleh petugas SECURITY.
// Maksimal satu per Container.
type SecurityCheck struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	ContainerID    uint   `json:"container_id" gorm:"uniqueIndex;not null"`
	UserID         uint   `json:"user_id" gorm:"index;not null"`
	InspectorName  string `json:"inspector_name"`
	Remarks        string `json:"remarks"`
	InspectionDate time.Time `json:"inspection_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Responses []SecurityCheckResponse `json:"responses,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Photos    []Photo                 `json:"photos,omitempty" gorm:"foreignKey:SecurityCheckID;constraint:OnDelete:CASCADE"`
}

// SecurityCheckResponse adalah satu jawaban checklist di dalam satu SecurityCheck.
// Tepat satu dari ChecklistItemID / VehicleInspectionItemID yang terisi.
type SecurityCheckResponse struct {
	ID                      uint  `json:"id" gorm:"primaryKey"`
	SecurityCheckID         uint  `json:"security_check_id" gorm:"index;not null;uniqueIndex:idx_resp_checklist_item;uniqueIndex:idx_resp_vehicle_item"`
	ChecklistItemID         *uint `json:"checklist_item_id,omitempty" gorm:"uniqueIndex:idx_resp_checklist_item"`
	VehicleInspectionItemID *uint `json:"vehicle_inspection_item_id,omitempty" gorm:"uniqueIndex:idx_resp_vehicle_item"`
	Checked                 bool   `json:"checked"`
	Notes                   string `json:"notes"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`

	History []ResponseHistory `json:"history,omitempty" gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE"`
}

// ResponseHistory menyimpan snapshot nilai lama sebuah response sebelum di-edit.
// Append-only, tidak pernah diubah atau dihapus satuan.
type ResponseHistory struct {
	ID            types.SnowflakeID `json:"id" gorm:"primaryKey"`
	ResponseID    uint              `json:"response_id" gorm:"index;not null"`
	Checked       bool              `json:"checked"`
	Notes         string            `json:"notes"`
	ChangedAt     time.Time         `json:"changed_at" gorm:"index"`
	ChangedBy     uint              `json:"changed_by"`
	ChangedByName string            `json:"changed_by_name"`
}

func (h *ResponseHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == 0 {
		h.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}
