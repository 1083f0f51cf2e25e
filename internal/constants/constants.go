package constants

const (
	// ContextKeyUserID is the session and gin context key holding the logged-in employee ID
	ContextKeyUserID = "employee_id"
	// ContextKeyEmployee holds the resolved *models.Employee for the request
	ContextKeyEmployee = "employee"
	// ContextKeyReport holds the report loaded by RequireReportAccess
	ContextKeyReport = "report"
	// ContextKeyRequestID holds the request id assigned by the logging middleware
	ContextKeyRequestID = "request_id"

	SessionCookieName = "report_session"
	RequestIDHeader   = "X-Request-ID"

	MinPasswordLength = 8

	// ReportDateLayout is the wire format of report dates
	ReportDateLayout = "2006-01-02"

	MaxReportTitleLength   = 100
	MaxReportContentLength = 600
)
