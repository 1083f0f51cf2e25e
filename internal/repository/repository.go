package repository

import (
	"context"

	"github.com/yukikurage/daily-report-api/internal/models"
)

// ReportRepository defines the interface for report data access. Every
// method runs inside the transaction carried by ctx when there is one.
type ReportRepository interface {
	// FindByID finds a report by ID, soft-deleted or not. The owning
	// employee is preloaded.
	FindByID(ctx context.Context, id uint64) (*models.Report, error)

	// FindAll lists reports of every employee
	FindAll(ctx context.Context, filter ReportFilter) ([]models.Report, error)

	// FindByEmployee lists the reports owned by one employee
	FindByEmployee(ctx context.Context, employeeID uint64, filter ReportFilter) ([]models.Report, error)

	// Save inserts the report when its ID is zero and overwrites it otherwise
	Save(ctx context.Context, report *models.Report) error
}

// ReportFilter holds listing options for reports
type ReportFilter struct {
	IncludeDeleted  bool
	PreloadEmployee bool
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	// Create creates a new employee
	Create(ctx context.Context, employee *models.Employee) error

	// FindByID finds an employee by ID
	FindByID(ctx context.Context, id uint64) (*models.Employee, error)

	// FindByCode finds an employee by login code
	FindByCode(ctx context.Context, code string) (*models.Employee, error)
}
