package services

import (
	"context"
	"testing"

	"inspection-app/config"
	"inspection-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInspection(t *testing.T) {
	db := setupTestDB(t)
	blobs := newFakeBlobStore()
	svc := NewInspectionService(db, blobs)

	sc := createInspection(t, svc, "TEMU1234567", 3)

	var container models.Container
	require.NoError(t, db.First(&container, sc.ContainerID).Error)
	assert.Equal(t, "TEMU1234567", container.ContainerNo)

	var responseCount int64
	require.NoError(t, db.Model(&models.SecurityCheckResponse{}).
		Where("security_check_id = ?", sc.ID).Count(&responseCount).Error)
	assert.EqualValues(t, 14, responseCount)

	var photos []models.Photo
	require.NoError(t, db.Where("security_check_id = ?", sc.ID).Find(&photos).Error)
	require.Len(t, photos, 3)
	for _, photo := range photos {
		assert.True(t, blobs.has(photo.ObjectKey))
		assert.NotEmpty(t, photo.URL)
		assert.Equal(t, securitySession.UserID, photo.UploadedBy)
	}
	assert.Equal(t, 3, blobs.count())
}

func TestCreateInspectionDuplicateContainer(t *testing.T) {
	db := setupTestDB(t)
	blobs := newFakeBlobStore()
	svc := NewInspectionService(db, blobs)

	createInspection(t, svc, "TEMU1234567", 1)

	_, err := svc.CreateInspection(context.Background(), securitySession, CreateInspectionInput{
		Container:     containerFields("TEMU1234567"),
		InspectorName: securitySession.Name,
		Answers:       fullAnswers(t, db),
		Photos:        makePhotos(1),
	})
	assert.ErrorIs(t, err, ErrDuplicateContainer)

	// Duplikat ditolak sebelum upload, blob tidak bertambah.
	assert.Equal(t, 1, blobs.count())
}

func TestCreateInspectionIncompleteChecklist(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInspectionService(db, newFakeBlobStore())

	answers := fullAnswers(t, db)
	itemIDs := firstChecklistItems(t, db, 2)

	// Satu item tidak dijawab sama sekali.
	missing := ChecklistAnswers{}
	for target, ans := range answers {
		missing[target] = ans
	}
	delete(missing, ResponseTarget{Kind: TargetChecklist, ItemID: itemIDs[0]})

	_, err := svc.CreateInspection(context.Background(), securitySession, CreateInspectionInput{
		Container:     containerFields("MSKU0000001"),
		InspectorName: securitySession.Name,
		Answers:       missing,
		Photos:        makePhotos(1),
	})
	assert.ErrorIs(t, err, ErrIncompleteChecklist)

	// Satu item dijawab tapi tidak checked.
	unchecked := fullAnswers(t, db)
	unchecked[ResponseTarget{Kind: TargetChecklist, ItemID: itemIDs[1]}] = Answer{Checked: false, Notes: "ada karat"}

	_, err = svc.CreateInspection(context.Background(), securitySession, CreateInspectionInput{
		Container:     containerFields("MSKU0000001"),
		InspectorName: securitySession.Name,
		Answers:       unchecked,
		Photos:        makePhotos(1),
	})
	assert.ErrorIs(t, err, ErrIncompleteChecklist)

	var count int64
	require.NoError(t, db.Model(&models.Container{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateInspectionUnknownChecklistItem(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInspectionService(db, newFakeBlobStore())

	answers := fullAnswers(t, db)
	answers[ResponseTarget{Kind: TargetChecklist, ItemID: 99999}] = Answer{Checked: true}

	_, err := svc.CreateInspection(context.Background(), securitySession, CreateInspectionInput{
		Container:     containerFields("MSKU0000002"),
		InspectorName: securitySession.Name,
		Answers:       answers,
		Photos:        makePhotos(1),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateInspectionPhotoBounds(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInspectionService(db, newFakeBlobStore())

	_, err := svc.CreateInspection(context.Background(), securitySession, CreateInspectionInput{
		Container:     containerFields("MSKU0000003"),
		InspectorName: securitySession.Name,
		Answers:       fullAnswers(t, db),
		Photos:        nil,
	})
	var pcErr *PhotoCountError
	require.ErrorAs(t, err, &pcErr)
	assert.Equal(t, 0, pcErr.Actual)
	assert.Equal(t, 1, pcErr.Min)

	_, err = svc.CreateInspection(context.Background(), securitySession, CreateInspectionInput{
		Container:     containerFields("MSKU0000003"),
		InspectorName: securitySession.Name,
		Answers:       fullAnswers(t, db),
		Photos:        makePhotos(21),
	})
	require.ErrorAs(t, err, &pcErr)
	assert.Equal(t, 21, pcErr.Actual)
	assert.Equal(t, 20, pcErr.Max)

	// Batas atas inklusif.
	createInspection(t, svc, "MSKU0000003", 20)
}

func TestCreateInspectionConfiguredMinimum(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInspectionService(db, newFakeBlobStore())

	config.MinPhotoCount = 3
	defer func() { config.MinPhotoCount = 0 }()

	_, err := svc.CreateInspection(context.Background(), securitySession, CreateInspectionInput{
		Container:     containerFields("MSKU0000004"),
		InspectorName: securitySession.Name,
		Answers:       fullAnswers(t, db),
		Photos:        makePhotos(2),
	})
	var pcErr *PhotoCountError
	require.ErrorAs(t, err, &pcErr)
	assert.Equal(t, 3, pcErr.Min)
	assert.Equal(t, 2, pcErr.Actual)

	createInspection(t, svc, "MSKU0000004", 3)
}

func TestCreateInspectionRejectsNonSecurity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInspectionService(db, newFakeBlobStore())

	_, err := svc.CreateInspection(context.Background(), checkerSession, CreateInspectionInput{
		Container:     containerFields("MSKU0000005"),
		InspectorName: checkerSession.Name,
		Answers:       fullAnswers(t, db),
		Photos:        makePhotos(1),
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateInspectionUploadFailureRollsBack(t *testing.T) {
	db := setupTestDB(t)
	blobs := newFakeBlobStore()
	blobs.failAfter = 3
	svc := NewInspectionService(db, blobs)

	_, err := svc.CreateInspection(context.Background(), securitySession, CreateInspectionInput{
		Container:     containerFields("MSKU0000006"),
		InspectorName: securitySession.Name,
		Answers:       fullAnswers(t, db),
		Photos:        makePhotos(3),
	})

	var upErr *PhotoUploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "foto_2.jpg", upErr.Filename)

	// Dua blob yang sempat terupload ikut dibersihkan, DB tidak tersentuh.
	assert.Zero(t, blobs.count())
	var count int64
	require.NoError(t, db.Model(&models.Container{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateInspectionHistory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInspectionService(db, newFakeBlobStore())
	sc := createInspection(t, svc, "TEMU7654321", 1)

	itemID := firstChecklistItems(t, db, 1)[0]
	target := ResponseTarget{Kind: TargetChecklist, ItemID: itemID}

	input := UpdateInspectionInput{
		Container:     containerFields("TEMU7654321"),
		InspectorName: securitySession.Name,
		Answers: ChecklistAnswers{
			target: {Checked: false, Notes: "Ada karat di dinding"},
		},
	}
	require.NoError(t, svc.UpdateInspection(context.Background(), securitySession, sc.ID, input))

	var resp models.SecurityCheckResponse
	require.NoError(t, db.Where("security_check_id = ? AND checklist_item_id = ?", sc.ID, itemID).First(&resp).Error)
	assert.False(t, resp.Checked)
	assert.Equal(t, "Ada karat di dinding", resp.Notes)

	// Snapshot nilai sebelum edit tersimpan di history.
	var history []models.ResponseHistory
	require.NoError(t, db.Where("response_id = ?", resp.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.True(t, history[0].Checked)
	assert.Empty(t, history[0].Notes)
	assert.Equal(t, securitySession.UserID, history[0].ChangedBy)
	assert.Equal(t, securitySession.Name, history[0].ChangedByName)

	// Edit dengan nilai yang sama tidak menambah history.
	require.NoError(t, svc.UpdateInspection(context.Background(), securitySession, sc.ID, input))
	require.NoError(t, db.Where("response_id = ?", resp.ID).Find(&history).Error)
	assert.Len(t, history, 1)

	// Edit kedua yang benar-benar berubah menambah satu snapshot lagi.
	input.Answers[target] = Answer{Checked: true, Notes: "Sudah diperbaiki"}
	require.NoError(t, svc.UpdateInspection(context.Background(), securitySession, sc.ID, input))
	require.NoError(t, db.Where("response_id = ?", resp.ID).Find(&history).Error)
	assert.Len(t, history, 2)
}

func TestUpdateInspectionUnknownChecklistItem(t *testing.T) {
	db := setupTestDB(t)
	blobs := newFakeBlobStore()
	svc := NewInspectionService(db, blobs)
	checkerSvc := NewCheckerService(db, blobs, nil)

	sc := createInspection(t, svc, "TEMU8888888", 1)

	// Jawaban yang menunjuk item di luar katalog ditolak, tidak boleh
	// jadi response hantu yang memblokir gerbang checker selamanya.
	err := svc.UpdateInspection(context.Background(), securitySession, sc.ID, UpdateInspectionInput{
		Container:     containerFields("TEMU8888888"),
		InspectorName: securitySession.Name,
		Answers: ChecklistAnswers{
			{Kind: TargetChecklist, ItemID: 99999}: {Checked: false},
		},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.UpdateInspection(context.Background(), securitySession, sc.ID, UpdateInspectionInput{
		Container:     containerFields("TEMU8888888"),
		InspectorName: securitySession.Name,
		Answers: ChecklistAnswers{
			{Kind: TargetVehicle, ItemID: 99999}: {Checked: true},
		},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	var phantom int64
	require.NoError(t, db.Model(&models.SecurityCheckResponse{}).
		Where("security_check_id = ? AND checklist_item_id = ?", sc.ID, 99999).
		Count(&phantom).Error)
	assert.Zero(t, phantom)

	// Checklist asli masih 100% checked, checker tetap lolos gerbang.
	_, err = checkerSvc.SubmitCheckerData(context.Background(), checkerSession, sc.ContainerID, SubmitCheckerInput{
		UTCNo:         "UTC-2026-8888",
		InspectorName: checkerSession.Name,
		Photos:        makePhotos(1),
	})
	assert.NoError(t, err)
}

func TestUpdateInspectionOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInspectionService(db, newFakeBlobStore())
	sc := createInspection(t, svc, "TEMU1111111", 1)

	input := UpdateInspectionInput{
		Container:     containerFields("TEMU1111111"),
		InspectorName: "Orang Lain",
	}

	other := Session{UserID: 77, Name: "Security Lain", Role: models.RoleSecurity}
	assert.ErrorIs(t, svc.UpdateInspection(context.Background(), other, sc.ID, input), ErrUnauthorized)

	// Admin boleh mengedit milik siapa pun.
	assert.NoError(t, svc.UpdateInspection(context.Background(), adminSession, sc.ID, input))
}

func TestUpdateInspectionDuplicateContainerNo(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInspectionService(db, newFakeBlobStore())
	createInspection(t, svc, "TEMU2222222", 1)
	sc := createInspection(t, svc, "TEMU3333333", 1)

	err := svc.UpdateInspection(context.Background(), securitySession, sc.ID, UpdateInspectionInput{
		Container:     containerFields("TEMU2222222"),
		InspectorName: securitySession.Name,
	})
	assert.ErrorIs(t, err, ErrDuplicateContainer)
}

func TestUpdateInspectionPhotoReconciliation(t *testing.T) {
	db := setupTestDB(t)
	blobs := newFakeBlobStore()
	svc := NewInspectionService(db, blobs)
	sc := createInspection(t, svc, "TEMU4444444", 2)

	var photos []models.Photo
	require.NoError(t, db.Where("security_check_id = ?", sc.ID).Find(&photos).Error)
	require.Len(t, photos, 2)
	removedKey := photos[0].ObjectKey

	err := svc.UpdateInspection(context.Background(), securitySession, sc.ID, UpdateInspectionInput{
		Container:       containerFields("TEMU4444444"),
		InspectorName:   securitySession.Name,
		DeletedPhotoIDs: []int64{int64(photos[0].ID)},
		NewPhotos:       makePhotos(1),
	})
	require.NoError(t, err)

	require.NoError(t, db.Where("security_check_id = ?", sc.ID).Find(&photos).Error)
	assert.Len(t, photos, 2)
	assert.False(t, blobs.has(removedKey))
	assert.Equal(t, 2, blobs.count())

	// Hapus semua foto tanpa pengganti melanggar batas minimum.
	ids := make([]int64, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, int64(p.ID))
	}
	err = svc.UpdateInspection(context.Background(), securitySession, sc.ID, UpdateInspectionInput{
		Container:       containerFields("TEMU4444444"),
		InspectorName:   securitySession.Name,
		DeletedPhotoIDs: ids,
	})
	var pcErr *PhotoCountError
	assert.ErrorAs(t, err, &pcErr)

	// ID foto yang bukan milik inspeksi ini ditolak.
	err = svc.UpdateInspection(context.Background(), securitySession, sc.ID, UpdateInspectionInput{
		Container:       containerFields("TEMU4444444"),
		InspectorName:   securitySession.Name,
		DeletedPhotoIDs: []int64{123456789},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteInspectionCascade(t *testing.T) {
	db := setupTestDB(t)
	blobs := newFakeBlobStore()
	svc := NewInspectionService(db, blobs)
	checkerSvc := NewCheckerService(db, blobs, nil)

	sc := createInspection(t, svc, "TEMU5555555", 2)

	// Tambah history lewat satu kali edit.
	itemID := firstChecklistItems(t, db, 1)[0]
	require.NoError(t, svc.UpdateInspection(context.Background(), securitySession, sc.ID, UpdateInspectionInput{
		Container:     containerFields("TEMU5555555"),
		InspectorName: securitySession.Name,
		Answers: ChecklistAnswers{
			{Kind: TargetChecklist, ItemID: itemID}: {Checked: true, Notes: "dicek ulang"},
		},
	}))

	_, err := checkerSvc.SubmitCheckerData(context.Background(), checkerSession, sc.ContainerID, SubmitCheckerInput{
		UTCNo:         "UTC-2026-0001",
		InspectorName: checkerSession.Name,
		Photos:        makePhotos(1),
	})
	require.NoError(t, err)
	require.Equal(t, 3, blobs.count())

	require.NoError(t, svc.DeleteInspection(context.Background(), securitySession, sc.ContainerID))

	for _, model := range []interface{}{
		&models.Container{}, &models.SecurityCheck{}, &models.SecurityCheckResponse{},
		&models.ResponseHistory{}, &models.CheckerData{}, &models.Photo{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "tabel %T harus kosong", model)
	}
	assert.Zero(t, blobs.count())
}

func TestDeleteInspectionNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInspectionService(db, newFakeBlobStore())

	assert.ErrorIs(t, svc.DeleteInspection(context.Background(), securitySession, 424242), ErrNotFound)
}

func TestDeletePhoto(t *testing.T) {
	db := setupTestDB(t)
	blobs := newFakeBlobStore()
	svc := NewInspectionService(db, blobs)
	sc := createInspection(t, svc, "TEMU6666666", 2)

	var photos []models.Photo
	require.NoError(t, db.Where("security_check_id = ?", sc.ID).Find(&photos).Error)
	require.Len(t, photos, 2)

	// Checker tidak boleh menghapus foto security.
	assert.ErrorIs(t, svc.DeletePhoto(context.Background(), checkerSession, int64(photos[0].ID)), ErrUnauthorized)

	require.NoError(t, svc.DeletePhoto(context.Background(), securitySession, int64(photos[0].ID)))
	assert.False(t, blobs.has(photos[0].ObjectKey))

	var remaining int64
	require.NoError(t, db.Model(&models.Photo{}).
		Where("security_check_id = ?", sc.ID).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)

	// Foto terakhir tidak boleh dihapus.
	var pcErr *PhotoCountError
	assert.ErrorAs(t, svc.DeletePhoto(context.Background(), securitySession, int64(photos[1].ID)), &pcErr)
}

func TestDeriveStateAfterEachStage(t *testing.T) {
	db := setupTestDB(t)
	blobs := newFakeBlobStore()
	svc := NewInspectionService(db, blobs)
	checkerSvc := NewCheckerService(db, blobs, nil)

	sc := createInspection(t, svc, "TEMU7777777", 1)
	assert.Equal(t, models.StatePendingChecker, models.DeriveState(true, false))

	_, err := checkerSvc.SubmitCheckerData(context.Background(), checkerSession, sc.ContainerID, SubmitCheckerInput{
		UTCNo:         "UTC-2026-0099",
		InspectorName: checkerSession.Name,
		Photos:        makePhotos(1),
	})
	require.NoError(t, err)

	var container models.Container
	require.NoError(t, db.Preload("SecurityCheck").Preload("CheckerData").
		First(&container, sc.ContainerID).Error)
	assert.Equal(t, models.StateComplete,
		models.DeriveState(container.SecurityCheck != nil, container.CheckerData != nil))
}
