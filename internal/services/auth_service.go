package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/daily-report-api/internal/models"
	"github.com/yukikurage/daily-report-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid employee code or password")
	ErrEmployeeNotFound   = errors.New("employee not found")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	employeeRepo repository.EmployeeRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(employeeRepo repository.EmployeeRepository) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Code     string
	Password string
}

// Login verifies credentials and returns the authenticated employee.
// Soft-deleted employees cannot log in.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByCode(ctx, input.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	if employee.DeleteFlg {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return employee, nil
}

// GetEmployee retrieves an active employee by ID.
func (s *AuthService) GetEmployee(ctx context.Context, id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	if employee.DeleteFlg {
		return nil, ErrEmployeeNotFound
	}

	return employee, nil
}
