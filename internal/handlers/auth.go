package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daily-report-api/internal/constants"
	"github.com/yukikurage/daily-report-api/internal/dto"
	apierrors "github.com/yukikurage/daily-report-api/internal/errors"
	"github.com/yukikurage/daily-report-api/internal/middleware"
	"github.com/yukikurage/daily-report-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates an employee and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Code     string `json:"code" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	employee, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Code:     req.Code,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.InvalidCredentials(c)
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, employee.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated employee.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	employee, ok := middleware.GetCurrentEmployee(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}
