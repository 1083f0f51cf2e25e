package dto

import (
	"github.com/yukikurage/daily-report-api/internal/models"
)

// EmployeeDTO represents an employee in API responses
type EmployeeDTO struct {
	ID   uint64      `json:"id"`
	Code string      `json:"code"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

// ToEmployeeDTO converts an Employee model to EmployeeDTO
func ToEmployeeDTO(employee models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:   employee.ID,
		Code: employee.Code,
		Name: employee.Name,
		Role: employee.Role,
	}
}
