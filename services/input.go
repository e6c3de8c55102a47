package services

import (
	"io"
	"time"

	"inspection-app/models"
)

// Session adalah identitas pemanggil yang sudah terautentikasi.
// Engine hanya memeriksa role dan kepemilikan userID.
type Session struct {
	UserID uint
	Name   string
	Role   string
}

func (s Session) canActAs(role string) bool {
	return s.Role == role || s.Role == models.RoleAdmin
}

// Target jawaban checklist: item security atau item kendaraan, tidak keduanya.
const (
	TargetChecklist = "checklist"
	TargetVehicle   = "vehicle"
)

type ResponseTarget struct {
	Kind   string
	ItemID uint
}

type Answer struct {
	Checked bool
	Notes   string
}

// ChecklistAnswers memetakan target item ke jawabannya,
// lepas dari encoding transport apa pun.
type ChecklistAnswers map[ResponseTarget]Answer

// PhotoFile adalah satu file foto yang akan diupload ke blob store.
type PhotoFile struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type ContainerFields struct {
	ContainerNo    string
	CompanyName    string
	SealNo         string
	PlateNo        string
	InspectionDate time.Time
}

type CreateInspectionInput struct {
	Container     ContainerFields
	InspectorName string
	Remarks       string
	Answers       ChecklistAnswers
	Photos        []PhotoFile
}

type UpdateInspectionInput struct {
	Container       ContainerFields
	InspectorName   string
	Remarks         string
	Answers         ChecklistAnswers
	DeletedPhotoIDs []int64
	NewPhotos       []PhotoFile
}

type SubmitCheckerInput struct {
	UTCNo         string
	InspectorName string
	Remarks       string
	Photos        []PhotoFile
}

type UpdateCheckerInput struct {
	UTCNo           string
	InspectorName   string
	Remarks         string
	DeletedPhotoIDs []int64
	NewPhotos       []PhotoFile
}
