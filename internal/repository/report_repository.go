package repository

import (
	"context"

	"github.com/yukikurage/daily-report-api/internal/database"
	"github.com/yukikurage/daily-report-api/internal/models"
	"gorm.io/gorm"
)

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

// FindByID finds a report by ID with its owner
func (r *GormReportRepository) FindByID(ctx context.Context, id uint64) (*models.Report, error) {
	var report models.Report
	if err := database.Conn(ctx, r.db).Preload("Employee").First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// FindAll lists reports of every employee
func (r *GormReportRepository) FindAll(ctx context.Context, filter ReportFilter) ([]models.Report, error) {
	var reports []models.Report
	if err := r.listQuery(ctx, filter).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// FindByEmployee lists the reports owned by one employee
func (r *GormReportRepository) FindByEmployee(ctx context.Context, employeeID uint64, filter ReportFilter) ([]models.Report, error) {
	var reports []models.Report
	if err := r.listQuery(ctx, filter).
		Where("employee_id = ?", employeeID).
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// Save inserts or overwrites a report. The owner row is never written.
func (r *GormReportRepository) Save(ctx context.Context, report *models.Report) error {
	return database.Conn(ctx, r.db).Omit("Employee").Save(report).Error
}

func (r *GormReportRepository) listQuery(ctx context.Context, filter ReportFilter) *gorm.DB {
	query := database.Conn(ctx, r.db).Model(&models.Report{})

	if !filter.IncludeDeleted {
		query = query.Where("delete_flg = ?", false)
	}
	if filter.PreloadEmployee {
		query = query.Preload("Employee")
	}

	return query.Order("report_date DESC").Order("id DESC")
}
