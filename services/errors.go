package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Taksonomi error workflow. Controller yang menerjemahkan ke HTTP status.
var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrDuplicateContainer   = errors.New("container number already exists")
	ErrDuplicateUTC         = errors.New("UTC number already exists")
	ErrIncompleteChecklist  = errors.New("all checklist items must be checked")
	ErrPrerequisiteMissing  = errors.New("security inspection does not exist")
	ErrAlreadyChecked       = errors.New("container already has checker data")
	ErrNotFound             = errors.New("record not found")
	ErrForeignKeyConstraint = errors.New("record is still referenced by other data")
)

// SecurityIncompleteError menolak tahap checker selama masih ada
// item checklist yang belum checked.
type SecurityIncompleteError struct {
	Outstanding int
}

func (e *SecurityIncompleteError) Error() string {
	return fmt.Sprintf("security inspection incomplete: %d item(s) not checked", e.Outstanding)
}

type PhotoCountError struct {
	Min    int
	Max    int
	Actual int
}

func (e *PhotoCountError) Error() string {
	return fmt.Sprintf("photo count %d out of range [%d, %d]", e.Actual, e.Min, e.Max)
}

type PhotoUploadError struct {
	Filename string
	Err      error
}

func (e *PhotoUploadError) Error() string {
	return fmt.Sprintf("failed to upload photo %s: %v", e.Filename, e.Err)
}

func (e *PhotoUploadError) Unwrap() error {
	return e.Err
}

// isDuplicateErr mendeteksi pelanggaran unique constraint lintas driver.
// Tidak semua driver menerjemahkan ke gorm.ErrDuplicatedKey.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

func isForeignKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}
