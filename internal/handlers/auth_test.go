package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daily-report-api/internal/constants"
	"github.com/yukikurage/daily-report-api/internal/dto"
	apierrors "github.com/yukikurage/daily-report-api/internal/errors"
	"github.com/yukikurage/daily-report-api/internal/models"
	"github.com/yukikurage/daily-report-api/internal/testutil"
)

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t, nil)
	testutil.CreateEmployee(t, env.db, "E001", models.RoleGeneral)

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"code":     "E001",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.EmployeeDTO
	decode(t, w, &response)
	require.Equal(t, "E001", response.Code)
	require.Equal(t, models.RoleGeneral, response.Role)
	require.NotContains(t, w.Body.String(), "password")

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
}

func TestAuthHandler_LoginRejectsWrongPassword(t *testing.T) {
	env := setupTestEnv(t, nil)
	testutil.CreateEmployee(t, env.db, "E001", models.RoleGeneral)

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"code":     "E001",
		"password": "wrong-password",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var response apierrors.APIError
	decode(t, w, &response)
	require.Equal(t, apierrors.ErrCodeInvalidCredentials, response.Code)
}

func TestAuthHandler_LoginValidation(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"code": "E001",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var response struct {
		Code    string       `json:"code"`
		Details []FieldError `json:"details"`
	}
	decode(t, w, &response)
	require.Equal(t, apierrors.ErrCodeInvalidInput, response.Code)
	require.Equal(t, []FieldError{{Field: "password", Rule: "required"}}, response.Details)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupTestEnv(t, nil)
	employee := testutil.CreateEmployee(t, env.db, "E001", models.RoleAdmin)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyEmployee, employee)

	NewAuthHandler(nil).GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.EmployeeDTO
	decode(t, w, &response)
	require.Equal(t, employee.ID, response.ID)
	require.Equal(t, models.RoleAdmin, response.Role)
}

func TestAuthHandler_SessionLifecycle(t *testing.T) {
	env := setupTestEnv(t, nil)
	testutil.CreateEmployee(t, env.db, "E001", models.RoleGeneral)

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	cookies := env.login(t, "E001")

	w = env.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/auth/me", nil, w.Result().Cookies())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_DeletedEmployeeLosesSession(t *testing.T) {
	env := setupTestEnv(t, nil)
	employee := testutil.CreateEmployee(t, env.db, "E001", models.RoleGeneral)
	cookies := env.login(t, "E001")

	require.NoError(t, env.db.Model(employee).Update("delete_flg", true).Error)

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
