package models

import (
	"time"

	"inspection-app/controllers/idgen"
	"inspection-app/types"

	"gorm.io/gorm"
)

// Photo adalah satu foto upload milik SecurityCheck ATAU CheckerData, tidak keduanya.
// ObjectKey dipakai untuk hapus blob di object storage, URL untuk ditampilkan.
type Photo struct {
	ID              types.SnowflakeID `json:"id" gorm:"primaryKey"`
	SecurityCheckID *uint             `json:"security_check_id,omitempty" gorm:"index"`
	CheckerDataID   *uint             `json:"checker_data_id,omitempty" gorm:"index"`
	URL             string            `json:"url"`
	Filename        string            `json:"filename"`
	ObjectKey       string            `json:"-"`
	UploadedBy      uint              `json:"uploaded_by"`
	CreatedAt       time.Time         `json:"created_at"`
}

func (p *Photo) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == 0 {
		p.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}
