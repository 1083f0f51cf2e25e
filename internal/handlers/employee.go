package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daily-report-api/internal/constants"
	"github.com/yukikurage/daily-report-api/internal/dto"
	apierrors "github.com/yukikurage/daily-report-api/internal/errors"
	"github.com/yukikurage/daily-report-api/internal/models"
	"github.com/yukikurage/daily-report-api/internal/services"
)

// EmployeeHandler serves employee administration endpoints.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// RegisterEmployee creates a new employee account.
func (h *EmployeeHandler) RegisterEmployee(c *gin.Context) {
	type RegisterRequest struct {
		Code     string      `json:"code" binding:"required,max=10"`
		Name     string      `json:"name" binding:"required,max=20"`
		Password string      `json:"password" binding:"required"`
		Role     models.Role `json:"role" binding:"omitempty,oneof=ADMIN GENERAL"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	employee, err := h.employeeService.Register(c.Request.Context(), services.RegisterInput{
		Code:     req.Code,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmployeeCodeRequired),
		errors.Is(err, services.ErrEmployeeNameRequired),
		errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmployeeCodeTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
