package repository

import (
	"context"

	"github.com/yukikurage/daily-report-api/internal/database"
	"github.com/yukikurage/daily-report-api/internal/models"
	"gorm.io/gorm"
)

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create creates a new employee
func (r *GormEmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return database.Conn(ctx, r.db).Create(employee).Error
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uint64) (*models.Employee, error) {
	var employee models.Employee
	if err := database.Conn(ctx, r.db).First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByCode finds an employee by login code
func (r *GormEmployeeRepository) FindByCode(ctx context.Context, code string) (*models.Employee, error) {
	var employee models.Employee
	if err := database.Conn(ctx, r.db).Where("code = ?", code).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}
