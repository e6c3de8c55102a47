package models

import (
	"time"

	"gorm.io/gorm"
)

// Role user. Workflow hanya mengenal tiga role ini.
const (
	RoleSecurity = "SECURITY"
	RoleChecker  = "CHECKER"
	RoleAdmin    = "ADMIN"
)

type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"unique"`
	Password  string `json:"-"`
	Name      string `json:"name"`
	Email     string `json:"email" gorm:"unique"`
	Role      string `json:"role"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int
}

type UserSession struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint64 `gorm:"index"`
	SessionID      string `gorm:"index"`
	DeviceID       string
	IPAddress      string
	UserAgent      string
	IsActive       bool
	LastActivityAt time.Time
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type LoginLog struct {
	ID            uint   `gorm:"primaryKey"`
	SessionID     string `gorm:"index"`
	Username      string
	UserID        *uint64
	LoginAt       *time.Time
	LogoutAt      *time.Time
	IPAddress     string
	UserAgent     string
	Browser       string
	OS            string
	DeviceType    string
	LoginStatus   string
	FailureReason *string
	CreatedAt     time.Time
}
