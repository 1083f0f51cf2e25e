package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daily-report-api/internal/dto"
	apierrors "github.com/yukikurage/daily-report-api/internal/errors"
	"github.com/yukikurage/daily-report-api/internal/models"
	"github.com/yukikurage/daily-report-api/internal/testutil"
)

func TestEmployeeHandler_RegisterEmployee(t *testing.T) {
	env := setupTestEnv(t, nil)
	testutil.CreateEmployee(t, env.db, "A001", models.RoleAdmin)
	cookies := env.login(t, "A001")

	w := env.do(t, http.MethodPost, "/api/employees", map[string]string{
		"code":     "E100",
		"name":     "New Hire",
		"password": "supersecret",
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response dto.EmployeeDTO
	decode(t, w, &response)
	require.Equal(t, "E100", response.Code)
	require.Equal(t, models.RoleGeneral, response.Role)

	// The new employee can log in right away.
	env.loginWith(t, "E100", "supersecret")
}

func TestEmployeeHandler_RegisterEmployeeErrors(t *testing.T) {
	env := setupTestEnv(t, nil)
	testutil.CreateEmployee(t, env.db, "A001", models.RoleAdmin)
	testutil.CreateEmployee(t, env.db, "E001", models.RoleGeneral)
	admin := env.login(t, "A001")

	tests := []struct {
		name       string
		payload    map[string]string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "duplicate code",
			payload:    map[string]string{"code": "E001", "name": "Dup", "password": "supersecret"},
			wantStatus: http.StatusConflict,
			wantCode:   apierrors.ErrCodeConflict,
		},
		{
			name:       "short password",
			payload:    map[string]string{"code": "E200", "name": "Short", "password": "short"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.ErrCodeInvalidInput,
		},
		{
			name:       "unknown role",
			payload:    map[string]string{"code": "E201", "name": "Role", "password": "supersecret", "role": "OWNER"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.ErrCodeInvalidInput,
		},
		{
			name:       "missing name",
			payload:    map[string]string{"code": "E202", "password": "supersecret"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/employees", tt.payload, admin)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			var response apierrors.APIError
			decode(t, w, &response)
			require.Equal(t, tt.wantCode, response.Code)
		})
	}
}

func TestEmployeeHandler_RequiresAdmin(t *testing.T) {
	env := setupTestEnv(t, nil)
	testutil.CreateEmployee(t, env.db, "E001", models.RoleGeneral)
	cookies := env.login(t, "E001")

	w := env.do(t, http.MethodPost, "/api/employees", map[string]string{
		"code":     "E100",
		"name":     "New Hire",
		"password": "supersecret",
	}, cookies)
	require.Equal(t, http.StatusForbidden, w.Code)
}
