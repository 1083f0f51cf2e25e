package dto

import (
	"time"

	"github.com/yukikurage/daily-report-api/internal/constants"
	"github.com/yukikurage/daily-report-api/internal/models"
)

// ReportDTO represents a report in API responses. Dates use the
// YYYY-MM-DD layout.
type ReportDTO struct {
	ID         uint64       `json:"id"`
	ReportDate string       `json:"report_date"`
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	EmployeeID uint64       `json:"employee_id"`
	Employee   *EmployeeDTO `json:"employee,omitempty"`
	DeleteFlg  bool         `json:"delete_flg"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// ReportListResponse represents the report list screen
type ReportListResponse struct {
	Reports  []ReportDTO `json:"reports"`
	ListSize int         `json:"list_size"`
}

// ReportInput echoes submitted form values back on a date conflict
type ReportInput struct {
	ReportDate string `json:"report_date"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

// ToReportDTO converts a Report model to ReportDTO
func ToReportDTO(report models.Report) ReportDTO {
	dto := ReportDTO{
		ID:         report.ID,
		ReportDate: report.ReportDate.Format(constants.ReportDateLayout),
		Title:      report.Title,
		Content:    report.Content,
		EmployeeID: report.EmployeeID,
		DeleteFlg:  report.DeleteFlg,
		CreatedAt:  report.CreatedAt,
		UpdatedAt:  report.UpdatedAt,
	}

	// Include employee if preloaded
	if report.Employee.ID != 0 {
		employee := ToEmployeeDTO(report.Employee)
		dto.Employee = &employee
	}

	return dto
}

// ToReportListResponse converts a slice of reports to ReportListResponse
func ToReportListResponse(reports []models.Report) ReportListResponse {
	items := make([]ReportDTO, len(reports))
	for i, report := range reports {
		items[i] = ToReportDTO(report)
	}

	return ReportListResponse{
		Reports:  items,
		ListSize: len(items),
	}
}
