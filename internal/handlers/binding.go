package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	apierrors "github.com/yukikurage/daily-report-api/internal/errors"
)

func init() {
	// Report validation failures by their JSON field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

// FieldError describes one failed binding rule
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// respondBindError sends a 400 listing the violated rules when the body
// failed validation, and a plain 400 when it could not be decoded.
func respondBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	details := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	apierrors.BadRequestWithDetails(c, "Validation failed", details)
}
