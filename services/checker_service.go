package services

import (
	"context"
	"errors"

	"inspection-app/database"
	"inspection-app/models"
	"inspection-app/storage"

	"gorm.io/gorm"
)

// Notifier dipanggil setelah inspeksi lengkap (security + checker).
type Notifier interface {
	InspectionCompleted(containerNo, utcNo, inspectorName string)
}

// CheckerService adalah engine workflow tahap checker: gerbang
// kelengkapan security, penerbitan nomor UTC, dan edit datanya.
type CheckerService struct {
	DB       *gorm.DB
	Blobs    storage.BlobStore
	Notifier Notifier
}

func NewCheckerService(db *gorm.DB, blobs storage.BlobStore, notifier Notifier) *CheckerService {
	return &CheckerService{DB: db, Blobs: blobs, Notifier: notifier}
}

// UncheckedCount menghitung item security yang belum checked
// untuk satu SecurityCheck. Hanya item checklist security yang
// dihitung sebagai gerbang, bukan item kendaraan.
func UncheckedCount(db *gorm.DB, securityCheckID uint) (int64, error) {
	var count int64
	err := db.Model(&models.SecurityCheckResponse{}).
		Where("security_check_id = ? AND checked = ? AND checklist_item_id IS NOT NULL", securityCheckID, false).
		Count(&count).Error
	return count, err
}

// SubmitCheckerData membuat verifikasi checker untuk satu container.
// Ditolak selama masih ada item security yang belum checked.
func (s *CheckerService) SubmitCheckerData(ctx context.Context, session Session, containerID uint, input SubmitCheckerInput) (*models.CheckerData, error) {
	if !session.canActAs(models.RoleChecker) {
		return nil, ErrUnauthorized
	}

	var container models.Container
	if err := s.DB.First(&container, containerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var sc models.SecurityCheck
	if err := s.DB.Where("container_id = ?", containerID).First(&sc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPrerequisiteMissing
		}
		return nil, err
	}

	unchecked, err := UncheckedCount(s.DB, sc.ID)
	if err != nil {
		return nil, err
	}
	if unchecked > 0 {
		return nil, &SecurityIncompleteError{Outstanding: int(unchecked)}
	}

	var count int64
	if err := s.DB.Model(&models.CheckerData{}).
		Where("container_id = ?", containerID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyChecked
	}

	if err := s.DB.Model(&models.CheckerData{}).
		Where("utc_no = ?", input.UTCNo).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUTC
	}

	if err := validatePhotoCount(len(input.Photos)); err != nil {
		return nil, err
	}

	uploaded, err := uploadPhotos(ctx, s.Blobs, "checker", input.Photos)
	if err != nil {
		return nil, err
	}

	var cd models.CheckerData
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		cd = models.CheckerData{
			ContainerID:   containerID,
			UserID:        session.UserID,
			UTCNo:         input.UTCNo,
			InspectorName: input.InspectorName,
			Remarks:       input.Remarks,
		}
		if err := tx.Create(&cd).Error; err != nil {
			if isDuplicateErr(err) {
				// Race dua submit bersamaan: constraint unik yang memutuskan.
				var existing int64
				tx.Model(&models.CheckerData{}).Where("container_id = ?", containerID).Count(&existing)
				if existing > 0 {
					return ErrAlreadyChecked
				}
				return ErrDuplicateUTC
			}
			return err
		}

		photos := make([]models.Photo, 0, len(uploaded))
		for _, u := range uploaded {
			photos = append(photos, models.Photo{
				CheckerDataID: &cd.ID,
				URL:           u.URL,
				Filename:      u.Filename,
				ObjectKey:     u.ObjectKey,
				UploadedBy:    session.UserID,
			})
		}
		return tx.Create(&photos).Error
	})
	if err != nil {
		rollbackUploads(ctx, s.Blobs, uploaded)
		return nil, err
	}

	database.InvalidateDashboardCache(ctx)

	if s.Notifier != nil {
		go s.Notifier.InspectionCompleted(container.ContainerNo, cd.UTCNo, cd.InspectorName)
	}

	return &cd, nil
}

// UpdateCheckerData mengedit CheckerData miliknya sendiri:
// nomor UTC, remarks, dan rekonsiliasi foto hapus-lalu-tambah.
func (s *CheckerService) UpdateCheckerData(ctx context.Context, session Session, checkerDataID uint, input UpdateCheckerInput) error {
	if !session.canActAs(models.RoleChecker) {
		return ErrUnauthorized
	}

	var cd models.CheckerData
	if err := s.DB.Preload("Photos").First(&cd, checkerDataID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if cd.UserID != session.UserID && session.Role != models.RoleAdmin {
		return ErrUnauthorized
	}

	if input.UTCNo != cd.UTCNo {
		var count int64
		if err := s.DB.Model(&models.CheckerData{}).
			Where("utc_no = ? AND id <> ?", input.UTCNo, cd.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUTC
		}
	}

	deleted, err := resolveDeletedPhotos(cd.Photos, input.DeletedPhotoIDs)
	if err != nil {
		return err
	}
	if err := validatePhotoCount(len(cd.Photos) - len(deleted) + len(input.NewPhotos)); err != nil {
		return err
	}

	uploaded, err := uploadPhotos(ctx, s.Blobs, "checker", input.NewPhotos)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CheckerData{}).Where("id = ?", cd.ID).
			Updates(map[string]interface{}{
				"utc_no":         input.UTCNo,
				"inspector_name": input.InspectorName,
				"remarks":        input.Remarks,
			}).Error; err != nil {
			if isDuplicateErr(err) {
				return ErrDuplicateUTC
			}
			return err
		}

		for _, photo := range deleted {
			if err := tx.Delete(&models.Photo{}, "id = ?", int64(photo.ID)).Error; err != nil {
				return err
			}
		}

		for _, u := range uploaded {
			photo := models.Photo{
				CheckerDataID: &cd.ID,
				URL:           u.URL,
				Filename:      u.Filename,
				ObjectKey:     u.ObjectKey,
				UploadedBy:    session.UserID,
			}
			if err := tx.Create(&photo).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		rollbackUploads(ctx, s.Blobs, uploaded)
		return err
	}

	keys := make([]string, 0, len(deleted))
	for _, photo := range deleted {
		keys = append(keys, photo.ObjectKey)
	}
	removeBlobs(ctx, s.Blobs, keys)

	database.InvalidateDashboardCache(ctx)
	return nil
}
