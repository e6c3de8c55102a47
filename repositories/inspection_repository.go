package repositories

import (
	"time"

	"inspection-app/models"

	"gorm.io/gorm"
)

type InspectionRepository struct {
	db *gorm.DB
}

func NewInspectionRepository(db *gorm.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

// InspectionFilter menyaring daftar inspeksi untuk dashboard dan report.
type InspectionFilter struct {
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	State    models.InspectionState
}

type ListInspection struct {
	ContainerID       uint                   `json:"container_id"`
	ContainerNo       string                 `json:"container_no"`
	CompanyName       string                 `json:"company_name"`
	SealNo            string                 `json:"seal_no"`
	PlateNo           string                 `json:"plate_no"`
	InspectionDate    time.Time              `json:"inspection_date"`
	State             models.InspectionState `json:"state"`
	SecurityCheckID   uint                   `json:"security_check_id,omitempty"`
	SecurityInspector string                 `json:"security_inspector,omitempty"`
	CheckerDataID     uint                   `json:"checker_data_id,omitempty"`
	CheckerInspector  string                 `json:"checker_inspector,omitempty"`
	UTCNo             string                 `json:"utc_no,omitempty"`
	PhotoCount        int                    `json:"photo_count"`
	UncheckedCount    int                    `json:"unchecked_count"`
}

type DashboardCounts struct {
	PendingSecurity int64 `json:"pending_security"`
	PendingChecker  int64 `json:"pending_checker"`
	Complete        int64 `json:"complete"`
	Total           int64 `json:"total"`
}

// ListInspections mengambil daftar container dengan state turunannya.
// Free-text search meliputi container no, nama perusahaan, plat, seal
// dan nomor UTC milik checker.
func (r *InspectionRepository) ListInspections(filter InspectionFilter) ([]ListInspection, error) {
	query := r.db.Model(&models.Container{}).
		Preload("SecurityCheck").
		Preload("CheckerData").
		Order("containers.inspection_date DESC, containers.id DESC")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.
			Select("containers.*").
			Joins("LEFT JOIN checker_data cd ON cd.container_id = containers.id").
			Where(`containers.container_no LIKE ? OR containers.company_name LIKE ?
				OR containers.plate_no LIKE ? OR containers.seal_no LIKE ? OR cd.utc_no LIKE ?`,
				like, like, like, like, like)
	}
	if filter.DateFrom != nil {
		query = query.Where("containers.inspection_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("containers.inspection_date <= ?", *filter.DateTo)
	}

	var containers []models.Container
	if err := query.Find(&containers).Error; err != nil {
		return nil, err
	}

	photoCounts, err := r.photoCountBySecurityCheck()
	if err != nil {
		return nil, err
	}
	uncheckedCounts, err := r.uncheckedCountBySecurityCheck()
	if err != nil {
		return nil, err
	}

	rows := make([]ListInspection, 0, len(containers))
	for _, container := range containers {
		state := models.DeriveState(container.SecurityCheck != nil, container.CheckerData != nil)
		if filter.State != "" && filter.State != state {
			continue
		}

		row := ListInspection{
			ContainerID:    container.ID,
			ContainerNo:    container.ContainerNo,
			CompanyName:    container.CompanyName,
			SealNo:         container.SealNo,
			PlateNo:        container.PlateNo,
			InspectionDate: container.InspectionDate,
			State:          state,
		}
		if container.SecurityCheck != nil {
			row.SecurityCheckID = container.SecurityCheck.ID
			row.SecurityInspector = container.SecurityCheck.InspectorName
			row.PhotoCount = photoCounts[container.SecurityCheck.ID]
			row.UncheckedCount = uncheckedCounts[container.SecurityCheck.ID]
		}
		if container.CheckerData != nil {
			row.CheckerDataID = container.CheckerData.ID
			row.CheckerInspector = container.CheckerData.InspectorName
			row.UTCNo = container.CheckerData.UTCNo
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (r *InspectionRepository) photoCountBySecurityCheck() (map[uint]int, error) {
	var rows []struct {
		SecurityCheckID uint
		Total           int
	}
	err := r.db.Model(&models.Photo{}).
		Select("security_check_id, COUNT(*) AS total").
		Where("security_check_id IS NOT NULL").
		Group("security_check_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.SecurityCheckID] = row.Total
	}
	return counts, nil
}

func (r *InspectionRepository) uncheckedCountBySecurityCheck() (map[uint]int, error) {
	var rows []struct {
		SecurityCheckID uint
		Total           int
	}
	err := r.db.Model(&models.SecurityCheckResponse{}).
		Select("security_check_id, COUNT(*) AS total").
		Where("checked = ? AND checklist_item_id IS NOT NULL", false).
		Group("security_check_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.SecurityCheckID] = row.Total
	}
	return counts, nil
}

// GetInspectionDetail mengambil satu inspeksi lengkap: container,
// security check + jawaban + riwayat + foto, dan checker data + foto.
func (r *InspectionRepository) GetInspectionDetail(containerID uint) (*models.Container, error) {
	var container models.Container
	err := r.db.
		Preload("SecurityCheck.Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("SecurityCheck.Responses.History", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at DESC")
		}).
		Preload("SecurityCheck.Photos").
		Preload("CheckerData.Photos").
		First(&container, containerID).Error
	if err != nil {
		return nil, err
	}
	return &container, nil
}

// GetDashboardCounts menghitung jumlah inspeksi per state turunan.
func (r *InspectionRepository) GetDashboardCounts() (*DashboardCounts, error) {
	var counts DashboardCounts

	if err := r.db.Model(&models.Container{}).Count(&counts.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Container{}).
		Joins("LEFT JOIN security_checks sc ON sc.container_id = containers.id").
		Where("sc.id IS NULL").
		Count(&counts.PendingSecurity).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Container{}).
		Joins("JOIN security_checks sc ON sc.container_id = containers.id").
		Joins("LEFT JOIN checker_data cd ON cd.container_id = containers.id").
		Where("cd.id IS NULL").
		Count(&counts.PendingChecker).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Container{}).
		Joins("JOIN security_checks sc ON sc.container_id = containers.id").
		Joins("JOIN checker_data cd ON cd.container_id = containers.id").
		Count(&counts.Complete).Error; err != nil {
		return nil, err
	}

	return &counts, nil
}

// ListPendingChecker mengambil container yang menunggu verifikasi checker.
func (r *InspectionRepository) ListPendingChecker() ([]ListInspection, error) {
	return r.ListInspections(InspectionFilter{State: models.StatePendingChecker})
}
