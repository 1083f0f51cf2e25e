package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeInvalidFormat = "INVALID_FORMAT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	// Business logic errors
	ErrCodeDateCheck = "DATECHECK_ERROR"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// DateCheckMessage is shown when an employee already has a report for the day
const DateCheckMessage = "A report for this date has already been registered"

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// InvalidCredentials sends a 401 response for a failed login
func InvalidCredentials(c *gin.Context) {
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeInvalidCredentials, "Invalid employee code or password"))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeConflict, message))
}

// InvalidFormat sends a 400 response for malformed field values
func InvalidFormat(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid format"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidFormat, message))
}

// DateConflict sends a 409 response echoing the submitted input so the
// client can present the form again
func DateConflict(c *gin.Context, input interface{}) {
	RespondWithError(c, http.StatusConflict, NewAPIErrorWithDetails(ErrCodeDateCheck, DateCheckMessage, input))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, message))
}
