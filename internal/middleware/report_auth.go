package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daily-report-api/internal/constants"
	apierrors "github.com/yukikurage/daily-report-api/internal/errors"
	"github.com/yukikurage/daily-report-api/internal/models"
	"github.com/yukikurage/daily-report-api/internal/services"
)

// RequireReportAccess loads the report named by the :id parameter. Admins
// may access any report, other employees only their own.
func RequireReportAccess(reportService *services.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid report ID")
			c.Abort()
			return
		}

		employee, ok := GetCurrentEmployee(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		report, err := reportService.FindByID(c.Request.Context(), reportID)
		if err != nil {
			if errors.Is(err, services.ErrReportNotFound) {
				apierrors.NotFound(c, "Report not found")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		if !employee.IsAdmin() && report.EmployeeID != employee.ID {
			// Return 404 instead of 403 to avoid leaking report existence
			apierrors.NotFound(c, "Report not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyReport, report)
		c.Next()
	}
}

// GetReport retrieves the report loaded by RequireReportAccess
func GetReport(c *gin.Context) (*models.Report, bool) {
	value, exists := c.Get(constants.ContextKeyReport)
	if !exists {
		return nil, false
	}
	report, ok := value.(*models.Report)
	return report, ok && report != nil
}
