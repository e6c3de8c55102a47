package repositories

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"inspection-app/migration"
	"inspection-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(db))
	return db
}

// seedWorkflowFixtures membuat tiga container di state yang berbeda:
// baru dicatat, menunggu checker, dan lengkap.
func seedWorkflowFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()

	date := func(day int) time.Time {
		return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
	}

	// Pending security: container tanpa SecurityCheck.
	pendingSecurity := models.Container{
		ContainerNo:    "TEMU0000001",
		CompanyName:    "PT Satu",
		InspectionDate: date(1),
	}
	require.NoError(t, db.Create(&pendingSecurity).Error)

	// Pending checker: sudah diinspeksi security, 2 foto, 1 item belum checked.
	pendingChecker := models.Container{
		ContainerNo:    "MSKU0000002",
		CompanyName:    "PT Dua",
		PlateNo:        "B 1234 ABC",
		SealNo:         "SEAL-002",
		InspectionDate: date(2),
	}
	require.NoError(t, db.Create(&pendingChecker).Error)

	sc := models.SecurityCheck{
		ContainerID:    pendingChecker.ID,
		UserID:         1,
		InspectorName:  "Budi Santoso",
		InspectionDate: date(2),
	}
	require.NoError(t, db.Create(&sc).Error)

	itemA, itemB := uint(101), uint(102)
	require.NoError(t, db.Create(&[]models.SecurityCheckResponse{
		{SecurityCheckID: sc.ID, ChecklistItemID: &itemA, Checked: true},
		{SecurityCheckID: sc.ID, ChecklistItemID: &itemB, Checked: false, Notes: "belum dicek"},
	}).Error)
	require.NoError(t, db.Create(&[]models.Photo{
		{SecurityCheckID: &sc.ID, URL: "http://blob.test/a.jpg", Filename: "a.jpg", ObjectKey: "security/a.jpg", UploadedBy: 1},
		{SecurityCheckID: &sc.ID, URL: "http://blob.test/b.jpg", Filename: "b.jpg", ObjectKey: "security/b.jpg", UploadedBy: 1},
	}).Error)

	// Complete: security + checker dengan nomor UTC.
	complete := models.Container{
		ContainerNo:    "HLCU0000003",
		CompanyName:    "PT Tiga",
		InspectionDate: date(3),
	}
	require.NoError(t, db.Create(&complete).Error)

	scComplete := models.SecurityCheck{
		ContainerID:    complete.ID,
		UserID:         1,
		InspectorName:  "Budi Santoso",
		InspectionDate: date(3),
	}
	require.NoError(t, db.Create(&scComplete).Error)
	require.NoError(t, db.Create(&models.SecurityCheckResponse{
		SecurityCheckID: scComplete.ID, ChecklistItemID: &itemA, Checked: true,
	}).Error)
	require.NoError(t, db.Create(&models.CheckerData{
		ContainerID:   complete.ID,
		UserID:        2,
		UTCNo:         "UTC-2026-0777",
		InspectorName: "Andi Wijaya",
	}).Error)
}

func TestListInspections(t *testing.T) {
	db := setupTestDB(t)
	seedWorkflowFixtures(t, db)
	repo := NewInspectionRepository(db)

	rows, err := repo.ListInspections(InspectionFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Urutan: inspection_date paling baru dulu.
	assert.Equal(t, "HLCU0000003", rows[0].ContainerNo)
	assert.Equal(t, models.StateComplete, rows[0].State)
	assert.Equal(t, "UTC-2026-0777", rows[0].UTCNo)
	assert.Equal(t, "Andi Wijaya", rows[0].CheckerInspector)

	assert.Equal(t, "MSKU0000002", rows[1].ContainerNo)
	assert.Equal(t, models.StatePendingChecker, rows[1].State)
	assert.Equal(t, 2, rows[1].PhotoCount)
	assert.Equal(t, 1, rows[1].UncheckedCount)
	assert.Equal(t, "Budi Santoso", rows[1].SecurityInspector)

	assert.Equal(t, "TEMU0000001", rows[2].ContainerNo)
	assert.Equal(t, models.StatePendingSecurity, rows[2].State)
}

func TestListInspectionsSearch(t *testing.T) {
	db := setupTestDB(t)
	seedWorkflowFixtures(t, db)
	repo := NewInspectionRepository(db)

	// Cari berdasarkan nomor container.
	rows, err := repo.ListInspections(InspectionFilter{Search: "MSKU"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MSKU0000002", rows[0].ContainerNo)

	// Cari berdasarkan nomor UTC milik checker.
	rows, err = repo.ListInspections(InspectionFilter{Search: "UTC-2026-0777"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "HLCU0000003", rows[0].ContainerNo)

	// Cari berdasarkan plat kendaraan.
	rows, err = repo.ListInspections(InspectionFilter{Search: "1234 ABC"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MSKU0000002", rows[0].ContainerNo)

	rows, err = repo.ListInspections(InspectionFilter{Search: "tidak-ada"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListInspectionsFilterStateAndDate(t *testing.T) {
	db := setupTestDB(t)
	seedWorkflowFixtures(t, db)
	repo := NewInspectionRepository(db)

	rows, err := repo.ListInspections(InspectionFilter{State: models.StatePendingChecker})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MSKU0000002", rows[0].ContainerNo)

	from := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 2, 23, 59, 59, 0, time.UTC)
	rows, err = repo.ListInspections(InspectionFilter{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MSKU0000002", rows[0].ContainerNo)
}

func TestListPendingChecker(t *testing.T) {
	db := setupTestDB(t)
	seedWorkflowFixtures(t, db)
	repo := NewInspectionRepository(db)

	rows, err := repo.ListPendingChecker()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MSKU0000002", rows[0].ContainerNo)
	assert.Equal(t, 1, rows[0].UncheckedCount)
}

func TestGetDashboardCounts(t *testing.T) {
	db := setupTestDB(t)
	seedWorkflowFixtures(t, db)
	repo := NewInspectionRepository(db)

	counts, err := repo.GetDashboardCounts()
	require.NoError(t, err)
	assert.EqualValues(t, 3, counts.Total)
	assert.EqualValues(t, 1, counts.PendingSecurity)
	assert.EqualValues(t, 1, counts.PendingChecker)
	assert.EqualValues(t, 1, counts.Complete)
}

func TestGetInspectionDetail(t *testing.T) {
	db := setupTestDB(t)
	seedWorkflowFixtures(t, db)
	repo := NewInspectionRepository(db)

	var container models.Container
	require.NoError(t, db.Where("container_no = ?", "MSKU0000002").First(&container).Error)

	detail, err := repo.GetInspectionDetail(container.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.SecurityCheck)
	assert.Len(t, detail.SecurityCheck.Responses, 2)
	assert.Len(t, detail.SecurityCheck.Photos, 2)
	assert.Nil(t, detail.CheckerData)

	_, err = repo.GetInspectionDetail(424242)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
