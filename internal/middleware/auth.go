package middleware

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daily-report-api/internal/constants"
	apierrors "github.com/yukikurage/daily-report-api/internal/errors"
	"github.com/yukikurage/daily-report-api/internal/models"
	"github.com/yukikurage/daily-report-api/internal/services"
)

// RequireAuth checks that the session belongs to an active employee and
// stores that employee in the context
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if userID := session.Get(constants.ContextKeyUserID); userID != nil {
			c.Set(constants.ContextKeyUserID, userID)
		}

		userID, ok := GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		employee, err := authService.GetEmployee(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrEmployeeNotFound) {
				// The account was removed after login.
				session.Clear()
				_ = session.Save()
				apierrors.Unauthorized(c, "")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyEmployee, employee)
		c.Next()
	}
}

// RequireAdmin allows only ADMIN employees; it must run after RequireAuth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		employee, ok := GetCurrentEmployee(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !employee.IsAdmin() {
			apierrors.Forbidden(c, "Only administrators can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetCurrentEmployee retrieves the employee resolved by RequireAuth
func GetCurrentEmployee(c *gin.Context) (*models.Employee, bool) {
	value, exists := c.Get(constants.ContextKeyEmployee)
	if !exists {
		return nil, false
	}
	employee, ok := value.(*models.Employee)
	return employee, ok && employee != nil
}
