package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/daily-report-api/internal/constants"
	"github.com/yukikurage/daily-report-api/internal/models"
	"github.com/yukikurage/daily-report-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmployeeCodeTaken    = errors.New("employee code already exists")
	ErrEmployeeCodeRequired = errors.New("employee code is required")
	ErrEmployeeNameRequired = errors.New("employee name is required")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidRole          = errors.New("invalid role")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// EmployeeService provides business logic for employee accounts.
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
	}
}

// RegisterInput represents the information required to create an employee.
type RegisterInput struct {
	Code     string
	Name     string
	Password string
	Role     models.Role
}

// Register creates a new employee with a hashed password.
func (s *EmployeeService) Register(ctx context.Context, input RegisterInput) (*models.Employee, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, ErrEmployeeCodeRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEmployeeNameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if input.Role == "" {
		input.Role = models.RoleGeneral
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.employeeRepo.FindByCode(ctx, code); err == nil {
		return nil, ErrEmployeeCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check employee code: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	employee := &models.Employee{
		Code:         code,
		Name:         name,
		Role:         input.Role,
		PasswordHash: string(hashedPassword),
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmployeeCodeTaken
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, nil
}

// EnsureAdmin creates the bootstrap administrator unless an employee with
// the same code already exists. It reports whether an employee was created.
func (s *EmployeeService) EnsureAdmin(ctx context.Context, code, name, password string) (bool, error) {
	_, err := s.Register(ctx, RegisterInput{
		Code:     code,
		Name:     name,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if errors.Is(err, ErrEmployeeCodeTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
