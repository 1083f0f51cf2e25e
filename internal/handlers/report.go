package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/daily-report-api/internal/constants"
	"github.com/yukikurage/daily-report-api/internal/dto"
	apierrors "github.com/yukikurage/daily-report-api/internal/errors"
	"github.com/yukikurage/daily-report-api/internal/logger"
	"github.com/yukikurage/daily-report-api/internal/middleware"
	"github.com/yukikurage/daily-report-api/internal/models"
	"github.com/yukikurage/daily-report-api/internal/services"
)

// ReportHandler serves the daily report endpoints.
type ReportHandler struct {
	reportService *services.ReportService
	draftService  *services.ReportDraftService
	log           logrus.FieldLogger
}

// NewReportHandler creates a new ReportHandler. draftService may be nil
// when no AI backend is configured.
func NewReportHandler(reportService *services.ReportService, draftService *services.ReportDraftService, log logrus.FieldLogger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		draftService:  draftService,
		log:           log,
	}
}

type reportRequest struct {
	ReportDate string `json:"report_date" binding:"required"`
	Title      string `json:"title" binding:"required,notblank,max=100"`
	Content    string `json:"content" binding:"required,notblank,max=600"`
}

func (r reportRequest) input() dto.ReportInput {
	return dto.ReportInput{
		ReportDate: r.ReportDate,
		Title:      r.Title,
		Content:    r.Content,
	}
}

// bindReport decodes and validates a report body. It writes the error
// response itself and returns false on failure.
func bindReport(c *gin.Context) (reportRequest, time.Time, bool) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return req, time.Time{}, false
	}

	date, err := time.Parse(constants.ReportDateLayout, req.ReportDate)
	if err != nil {
		apierrors.InvalidFormat(c, "report_date must be formatted as YYYY-MM-DD")
		return req, time.Time{}, false
	}

	return req, date, true
}

// ListReports returns the reports visible to the current employee
func (h *ReportHandler) ListReports(c *gin.Context) {
	employee, ok := middleware.GetCurrentEmployee(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	reports, err := h.reportService.ListForViewer(c.Request.Context(), employee)
	if err != nil {
		h.internalError(c, err, "Failed to fetch reports")
		return
	}

	c.JSON(http.StatusOK, dto.ToReportListResponse(reports))
}

// CreateReport registers a report owned by the current employee
func (h *ReportHandler) CreateReport(c *gin.Context) {
	employee, ok := middleware.GetCurrentEmployee(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	req, date, ok := bindReport(c)
	if !ok {
		return
	}

	report := &models.Report{
		ReportDate: date,
		Title:      req.Title,
		Content:    req.Content,
	}

	outcome, err := h.reportService.Create(c.Request.Context(), report, employee)
	if err != nil {
		h.internalError(c, err, "Failed to create report")
		return
	}
	if outcome == services.OutcomeDateConflict {
		apierrors.DateConflict(c, req.input())
		return
	}

	c.JSON(http.StatusCreated, dto.ToReportDTO(*report))
}

// GetReport returns a report loaded by RequireReportAccess
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, ok := middleware.GetReport(c)
	if !ok {
		apierrors.InternalError(c, "Report not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToReportDTO(*report))
}

// UpdateReport edits a report loaded by RequireReportAccess
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	report, ok := middleware.GetReport(c)
	if !ok {
		apierrors.InternalError(c, "Report not found in context")
		return
	}

	req, date, ok := bindReport(c)
	if !ok {
		return
	}

	candidate := *report
	candidate.ReportDate = date
	candidate.Title = req.Title
	candidate.Content = req.Content

	outcome, err := h.reportService.Update(c.Request.Context(), &candidate)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			apierrors.NotFound(c, "Report not found")
			return
		}
		h.internalError(c, err, "Failed to update report")
		return
	}
	if outcome == services.OutcomeDateConflict {
		apierrors.DateConflict(c, req.input())
		return
	}

	c.JSON(http.StatusOK, dto.ToReportDTO(candidate))
}

// DeleteReport soft-deletes a report loaded by RequireReportAccess
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	report, ok := middleware.GetReport(c)
	if !ok {
		apierrors.InternalError(c, "Report not found in context")
		return
	}

	if err := h.reportService.Delete(c.Request.Context(), report.ID); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			apierrors.NotFound(c, "Report not found")
			return
		}
		h.internalError(c, err, "Failed to delete report")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report deleted successfully",
	})
}

// DraftReport suggests a title and content from free-form notes
func (h *ReportHandler) DraftReport(c *gin.Context) {
	type DraftRequest struct {
		Notes      string `json:"notes" binding:"required,notblank"`
		ReportDate string `json:"report_date"`
	}

	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	date := time.Now()
	if req.ReportDate != "" {
		parsed, err := time.Parse(constants.ReportDateLayout, req.ReportDate)
		if err != nil {
			apierrors.InvalidFormat(c, "report_date must be formatted as YYYY-MM-DD")
			return
		}
		date = parsed
	}

	if h.draftService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	draft, err := h.draftService.Draft(c.Request.Context(), req.Notes, date)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDraftNotesRequired):
			apierrors.BadRequest(c, err.Error())
		default:
			h.internalError(c, err, "Failed to draft report")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report_date": date.Format(constants.ReportDateLayout),
		"title":       draft.Title,
		"content":     draft.Content,
	})
}

func (h *ReportHandler) internalError(c *gin.Context, err error, message string) {
	logger.FromContext(c, h.log).WithError(err).Error(message)
	apierrors.InternalError(c, message)
}
