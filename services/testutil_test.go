package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"inspection-app/catalog/checklist"
	"inspection-app/migration"
	"inspection-app/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeBlobStore menyimpan object di memory supaya engine bisa dites
// tanpa MinIO. failAfter > 0 membuat Put ke-N (dan seterusnya) gagal.
type fakeBlobStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	puts      int
	failAfter int
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (f *fakeBlobStore) Put(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.failAfter > 0 && f.puts >= f.failAfter {
		return "", errors.New("storage unavailable")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.objects[objectKey] = data
	return "http://blob.test/" + objectKey, nil
}

func (f *fakeBlobStore) Remove(ctx context.Context, objectKeys []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range objectKeys {
		delete(f.objects, key)
	}
	return nil
}

func (f *fakeBlobStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

func (f *fakeBlobStore) has(objectKey string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[objectKey]
	return ok
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(db))
	checklist.SeedChecklist(db)
	return db
}

var (
	securitySession = Session{UserID: 1, Name: "Budi Santoso", Role: models.RoleSecurity}
	checkerSession  = Session{UserID: 2, Name: "Andi Wijaya", Role: models.RoleChecker}
	adminSession    = Session{UserID: 3, Name: "Admin", Role: models.RoleAdmin}
)

// fullAnswers menjawab semua item checklist security dengan checked.
func fullAnswers(t *testing.T, db *gorm.DB) ChecklistAnswers {
	t.Helper()
	items, err := checklist.ListActiveItems(db)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	answers := ChecklistAnswers{}
	for _, item := range items {
		answers[ResponseTarget{Kind: TargetChecklist, ItemID: item.ID}] = Answer{Checked: true}
	}
	return answers
}

func firstChecklistItems(t *testing.T, db *gorm.DB, n int) []uint {
	t.Helper()
	items, err := checklist.ListActiveItems(db)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(items), n)

	ids := make([]uint, 0, n)
	for _, item := range items[:n] {
		ids = append(ids, item.ID)
	}
	return ids
}

func makePhotos(n int) []PhotoFile {
	photos := make([]PhotoFile, 0, n)
	for i := 0; i < n; i++ {
		content := []byte(fmt.Sprintf("isi foto %d", i))
		photos = append(photos, PhotoFile{
			Filename:    fmt.Sprintf("foto_%d.jpg", i),
			ContentType: "image/jpeg",
			Size:        int64(len(content)),
			Reader:      bytes.NewReader(content),
		})
	}
	return photos
}

func containerFields(containerNo string) ContainerFields {
	return ContainerFields{
		ContainerNo:    containerNo,
		CompanyName:    "PT Maju Jaya Logistik",
		SealNo:         "SEAL-0001",
		PlateNo:        "B 9001 KJU",
		InspectionDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	}
}

func createInspection(t *testing.T, svc *InspectionService, containerNo string, photoCount int) *models.SecurityCheck {
	t.Helper()
	sc, err := svc.CreateInspection(context.Background(), securitySession, CreateInspectionInput{
		Container:     containerFields(containerNo),
		InspectorName: securitySession.Name,
		Answers:       fullAnswers(t, svc.DB),
		Photos:        makePhotos(photoCount),
	})
	require.NoError(t, err)
	require.NotNil(t, sc)
	return sc
}

type fakeNotifier struct {
	completed chan string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{completed: make(chan string, 1)}
}

func (n *fakeNotifier) InspectionCompleted(containerNo, utcNo, inspectorName string) {
	n.completed <- containerNo + "|" + utcNo
}
