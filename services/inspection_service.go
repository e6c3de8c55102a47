package services

import (
	"context"
	"errors"
	"time"

	"inspection-app/catalog/checklist"
	"inspection-app/config"
	"inspection-app/database"
	"inspection-app/models"
	"inspection-app/storage"

	"gorm.io/gorm"
)

// InspectionService adalah engine workflow tahap security:
// pembuatan, edit, hapus inspeksi beserta foto dan riwayat jawabannya.
type InspectionService struct {
	DB    *gorm.DB
	Blobs storage.BlobStore
}

func NewInspectionService(db *gorm.DB, blobs storage.BlobStore) *InspectionService {
	return &InspectionService{DB: db, Blobs: blobs}
}

func photoBounds() (int, int) {
	min, max := config.MinPhotoCount, config.MaxPhotoCount
	if min <= 0 {
		min = 1
	}
	if max <= 0 {
		max = 20
	}
	return min, max
}

func validatePhotoCount(actual int) error {
	min, max := photoBounds()
	if actual < min || actual > max {
		return &PhotoCountError{Min: min, Max: max, Actual: actual}
	}
	return nil
}

// CreateInspection membuat Container + SecurityCheck + jawaban + foto
// dalam satu transaksi. Semua item checklist security harus terjawab
// dan checked; inspeksi tidak bisa disimpan setengah jadi.
func (s *InspectionService) CreateInspection(ctx context.Context, session Session, input CreateInspectionInput) (*models.SecurityCheck, error) {
	if !session.canActAs(models.RoleSecurity) {
		return nil, ErrUnauthorized
	}

	var count int64
	if err := s.DB.Model(&models.Container{}).
		Where("container_no = ?", input.Container.ContainerNo).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateContainer
	}

	responses, err := s.buildResponses(input.Answers, true)
	if err != nil {
		return nil, err
	}

	if err := validatePhotoCount(len(input.Photos)); err != nil {
		return nil, err
	}

	uploaded, err := uploadPhotos(ctx, s.Blobs, "security", input.Photos)
	if err != nil {
		return nil, err
	}

	var sc models.SecurityCheck
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		container := models.Container{
			ContainerNo:    input.Container.ContainerNo,
			CompanyName:    input.Container.CompanyName,
			SealNo:         input.Container.SealNo,
			PlateNo:        input.Container.PlateNo,
			InspectionDate: input.Container.InspectionDate,
		}
		if err := tx.Create(&container).Error; err != nil {
			if isDuplicateErr(err) {
				return ErrDuplicateContainer
			}
			return err
		}

		sc = models.SecurityCheck{
			ContainerID:    container.ID,
			UserID:         session.UserID,
			InspectorName:  input.InspectorName,
			Remarks:        input.Remarks,
			InspectionDate: input.Container.InspectionDate,
		}
		if err := tx.Create(&sc).Error; err != nil {
			if isDuplicateErr(err) {
				return ErrDuplicateContainer
			}
			return err
		}

		for i := range responses {
			responses[i].SecurityCheckID = sc.ID
		}
		if len(responses) > 0 {
			if err := tx.Create(&responses).Error; err != nil {
				return err
			}
		}

		photos := make([]models.Photo, 0, len(uploaded))
		for _, u := range uploaded {
			photos = append(photos, models.Photo{
				SecurityCheckID: &sc.ID,
				URL:             u.URL,
				Filename:        u.Filename,
				ObjectKey:       u.ObjectKey,
				UploadedBy:      session.UserID,
			})
		}
		return tx.Create(&photos).Error
	})
	if err != nil {
		// Transaksi gagal setelah blob terupload: bersihkan lagi.
		rollbackUploads(ctx, s.Blobs, uploaded)
		return nil, err
	}

	database.InvalidateDashboardCache(ctx)
	return &sc, nil
}

// validateAnswerTargets memastikan jawaban hanya menunjuk item katalog
// yang ada dan aktif. Response yang menunjuk item hantu tidak pernah
// bisa di-check ulang lewat form, jadi ditolak di semua jalur tulis.
func validateAnswerTargets(answers ChecklistAnswers, items []checklist.ChecklistItem, vehicleItems []checklist.VehicleInspectionItem) error {
	activeChecklist := make(map[uint]bool, len(items))
	for _, item := range items {
		activeChecklist[item.ID] = true
	}
	activeVehicle := make(map[uint]bool, len(vehicleItems))
	for _, item := range vehicleItems {
		activeVehicle[item.ID] = true
	}

	for target := range answers {
		switch target.Kind {
		case TargetChecklist:
			if !activeChecklist[target.ItemID] {
				return ErrNotFound
			}
		case TargetVehicle:
			if !activeVehicle[target.ItemID] {
				return ErrNotFound
			}
		default:
			return ErrNotFound
		}
	}
	return nil
}

// buildResponses memvalidasi jawaban terhadap katalog aktif lalu
// menyiapkan baris response. strict = semua item security wajib checked.
func (s *InspectionService) buildResponses(answers ChecklistAnswers, strict bool) ([]models.SecurityCheckResponse, error) {
	items, err := checklist.ListActiveItems(s.DB)
	if err != nil {
		return nil, err
	}
	vehicleItems, err := checklist.ListActiveVehicleItems(s.DB)
	if err != nil {
		return nil, err
	}

	if err := validateAnswerTargets(answers, items, vehicleItems); err != nil {
		return nil, err
	}

	responses := make([]models.SecurityCheckResponse, 0, len(items)+len(vehicleItems))
	for _, item := range items {
		itemID := item.ID
		ans, ok := answers[ResponseTarget{Kind: TargetChecklist, ItemID: itemID}]
		if !ok {
			return nil, ErrIncompleteChecklist
		}
		if strict && !ans.Checked {
			return nil, ErrIncompleteChecklist
		}
		responses = append(responses, models.SecurityCheckResponse{
			ChecklistItemID: &itemID,
			Checked:         ans.Checked,
			Notes:           ans.Notes,
		})
	}

	// Checklist kendaraan opsional: hanya item yang dijawab yang disimpan.
	for _, item := range vehicleItems {
		itemID := item.ID
		ans, ok := answers[ResponseTarget{Kind: TargetVehicle, ItemID: itemID}]
		if !ok {
			continue
		}
		responses = append(responses, models.SecurityCheckResponse{
			VehicleInspectionItemID: &itemID,
			Checked:                 ans.Checked,
			Notes:                   ans.Notes,
		})
	}

	return responses, nil
}

// UpdateInspection mengedit SecurityCheck milik user yang sama.
// Jawaban yang berubah disnapshot dulu ke ResponseHistory, foto
// direkonsiliasi hapus-lalu-tambah dalam batas jumlah foto.
func (s *InspectionService) UpdateInspection(ctx context.Context, session Session, securityCheckID uint, input UpdateInspectionInput) error {
	if !session.canActAs(models.RoleSecurity) {
		return ErrUnauthorized
	}

	items, err := checklist.ListActiveItems(s.DB)
	if err != nil {
		return err
	}
	vehicleItems, err := checklist.ListActiveVehicleItems(s.DB)
	if err != nil {
		return err
	}
	if err := validateAnswerTargets(input.Answers, items, vehicleItems); err != nil {
		return err
	}

	var sc models.SecurityCheck
	if err := s.DB.Preload("Photos").First(&sc, securityCheckID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if sc.UserID != session.UserID && session.Role != models.RoleAdmin {
		return ErrUnauthorized
	}

	var container models.Container
	if err := s.DB.First(&container, sc.ContainerID).Error; err != nil {
		return err
	}

	if input.Container.ContainerNo != container.ContainerNo {
		var count int64
		if err := s.DB.Model(&models.Container{}).
			Where("container_no = ? AND id <> ?", input.Container.ContainerNo, container.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateContainer
		}
	}

	deleted, err := resolveDeletedPhotos(sc.Photos, input.DeletedPhotoIDs)
	if err != nil {
		return err
	}
	if err := validatePhotoCount(len(sc.Photos) - len(deleted) + len(input.NewPhotos)); err != nil {
		return err
	}

	var current []models.SecurityCheckResponse
	if err := s.DB.Where("security_check_id = ?", sc.ID).Find(&current).Error; err != nil {
		return err
	}

	uploaded, err := uploadPhotos(ctx, s.Blobs, "security", input.NewPhotos)
	if err != nil {
		return err
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Container{}).Where("id = ?", container.ID).
			Updates(map[string]interface{}{
				"container_no":    input.Container.ContainerNo,
				"company_name":    input.Container.CompanyName,
				"seal_no":         input.Container.SealNo,
				"plate_no":        input.Container.PlateNo,
				"inspection_date": input.Container.InspectionDate,
			}).Error; err != nil {
			if isDuplicateErr(err) {
				return ErrDuplicateContainer
			}
			return err
		}

		if err := tx.Model(&models.SecurityCheck{}).Where("id = ?", sc.ID).
			Updates(map[string]interface{}{
				"inspector_name":  input.InspectorName,
				"remarks":         input.Remarks,
				"inspection_date": input.Container.InspectionDate,
			}).Error; err != nil {
			return err
		}

		if err := s.applyAnswerDiff(tx, sc.ID, current, input.Answers, session, now); err != nil {
			return err
		}

		for _, photo := range deleted {
			if err := tx.Delete(&models.Photo{}, "id = ?", int64(photo.ID)).Error; err != nil {
				return err
			}
		}

		for _, u := range uploaded {
			photo := models.Photo{
				SecurityCheckID: &sc.ID,
				URL:             u.URL,
				Filename:        u.Filename,
				ObjectKey:       u.ObjectKey,
				UploadedBy:      session.UserID,
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

	// Hapus blob di luar transaksi: cleanup storage bersifat best-effort.
	keys := make([]string, 0, len(deleted))
	for _, photo := range deleted {
		keys = append(keys, photo.ObjectKey)
	}
	removeBlobs(ctx, s.Blobs, keys)

	database.InvalidateDashboardCache(ctx)
	return nil
}

// applyAnswerDiff membandingkan jawaban masuk dengan response tersimpan.
// Nilai yang berubah: snapshot lama ditulis ke history, lalu di-overwrite.
// Nilai yang sama tidak menghasilkan baris history.
func (s *InspectionService) applyAnswerDiff(tx *gorm.DB, securityCheckID uint, current []models.SecurityCheckResponse, answers ChecklistAnswers, session Session, now time.Time) error {
	byTarget := make(map[ResponseTarget]*models.SecurityCheckResponse, len(current))
	for i := range current {
		resp := &current[i]
		if resp.ChecklistItemID != nil {
			byTarget[ResponseTarget{Kind: TargetChecklist, ItemID: *resp.ChecklistItemID}] = resp
		} else if resp.VehicleInspectionItemID != nil {
			byTarget[ResponseTarget{Kind: TargetVehicle, ItemID: *resp.VehicleInspectionItemID}] = resp
		}
	}

	for target, ans := range answers {
		resp, ok := byTarget[target]
		if !ok {
			// Item baru di katalog sejak inspeksi dibuat: buat response
			// baru tanpa history.
			newResp := models.SecurityCheckResponse{
				SecurityCheckID: securityCheckID,
				Checked:         ans.Checked,
				Notes:           ans.Notes,
			}
			itemID := target.ItemID
			switch target.Kind {
			case TargetChecklist:
				newResp.ChecklistItemID = &itemID
			case TargetVehicle:
				newResp.VehicleInspectionItemID = &itemID
			default:
				return ErrNotFound
			}
			if err := tx.Create(&newResp).Error; err != nil {
				return err
			}
			continue
		}

		if resp.Checked == ans.Checked && resp.Notes == ans.Notes {
			continue
		}

		history := models.ResponseHistory{
			ResponseID:    resp.ID,
			Checked:       resp.Checked,
			Notes:         resp.Notes,
			ChangedAt:     now,
			ChangedBy:     session.UserID,
			ChangedByName: session.Name,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		resp.Checked = ans.Checked
		resp.Notes = ans.Notes
		if err := tx.Model(&models.SecurityCheckResponse{}).
			Where("id = ?", resp.ID).
			Updates(map[string]interface{}{"checked": ans.Checked, "notes": ans.Notes}).Error; err != nil {
			return err
		}
	}

	return nil
}

func resolveDeletedPhotos(photos []models.Photo, deletedIDs []int64) ([]models.Photo, error) {
	if len(deletedIDs) == 0 {
		return nil, nil
	}
	byID := make(map[int64]models.Photo, len(photos))
	for _, p := range photos {
		byID[int64(p.ID)] = p
	}
	deleted := make([]models.Photo, 0, len(deletedIDs))
	for _, id := range deletedIDs {
		photo, ok := byID[id]
		if !ok {
			return nil, ErrNotFound
		}
		deleted = append(deleted, photo)
	}
	return deleted, nil
}

// DeleteInspection menghapus satu kejadian inspeksi secara cascade:
// Container, SecurityCheck, CheckerData, semua response, history dan foto.
// Blob foto dihapus best-effort setelah transaksi metadata commit.
func (s *InspectionService) DeleteInspection(ctx context.Context, session Session, containerID uint) error {
	if !session.canActAs(models.RoleSecurity) {
		return ErrUnauthorized
	}

	var sc models.SecurityCheck
	if err := s.DB.Preload("Photos").Where("container_id = ?", containerID).First(&sc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if sc.UserID != session.UserID && session.Role != models.RoleAdmin {
		return ErrUnauthorized
	}

	var keys []string
	for _, photo := range sc.Photos {
		keys = append(keys, photo.ObjectKey)
	}

	var cd models.CheckerData
	hasChecker := true
	if err := s.DB.Preload("Photos").Where("container_id = ?", containerID).First(&cd).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		hasChecker = false
	}
	if hasChecker {
		for _, photo := range cd.Photos {
			keys = append(keys, photo.ObjectKey)
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("response_id IN (SELECT id FROM security_check_responses WHERE security_check_id = ?)", sc.ID).
			Delete(&models.ResponseHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("security_check_id = ?", sc.ID).Delete(&models.SecurityCheckResponse{}).Error; err != nil {
			return err
		}
		if err := tx.Where("security_check_id = ?", sc.ID).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		if hasChecker {
			if err := tx.Where("checker_data_id = ?", cd.ID).Delete(&models.Photo{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.CheckerData{}, cd.ID).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.SecurityCheck{}, sc.ID).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Container{}, containerID)
		if result.Error != nil {
			if isForeignKeyErr(result.Error) {
				return ErrForeignKeyConstraint
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Race: container sudah dihapus request lain.
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	removeBlobs(ctx, s.Blobs, keys)
	database.InvalidateDashboardCache(ctx)
	return nil
}

// DeletePhoto menghapus satu foto dari SecurityCheck atau CheckerData
// miliknya sendiri, selama jumlah foto tidak turun di bawah minimum.
func (s *InspectionService) DeletePhoto(ctx context.Context, session Session, photoID int64) error {
	var photo models.Photo
	if err := s.DB.Where("id = ?", photoID).First(&photo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var remaining int64
	switch {
	case photo.SecurityCheckID != nil:
		if !session.canActAs(models.RoleSecurity) {
			return ErrUnauthorized
		}
		var sc models.SecurityCheck
		if err := s.DB.First(&sc, *photo.SecurityCheckID).Error; err != nil {
			return err
		}
		if sc.UserID != session.UserID && session.Role != models.RoleAdmin {
			return ErrUnauthorized
		}
		if err := s.DB.Model(&models.Photo{}).
			Where("security_check_id = ?", sc.ID).Count(&remaining).Error; err != nil {
			return err
		}
	case photo.CheckerDataID != nil:
		if !session.canActAs(models.RoleChecker) {
			return ErrUnauthorized
		}
		var cd models.CheckerData
		if err := s.DB.First(&cd, *photo.CheckerDataID).Error; err != nil {
			return err
		}
		if cd.UserID != session.UserID && session.Role != models.RoleAdmin {
			return ErrUnauthorized
		}
		if err := s.DB.Model(&models.Photo{}).
			Where("checker_data_id = ?", cd.ID).Count(&remaining).Error; err != nil {
			return err
		}
	default:
		return ErrNotFound
	}

	min, max := photoBounds()
	if int(remaining)-1 < min {
		return &PhotoCountError{Min: min, Max: max, Actual: int(remaining) - 1}
	}

	removeBlobs(ctx, s.Blobs, []string{photo.ObjectKey})
	return s.DB.Delete(&models.Photo{}, "id = ?", photoID).Error
}
