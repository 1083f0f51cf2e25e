package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daily-report-api/internal/constants"
	"github.com/yukikurage/daily-report-api/internal/database"
	"github.com/yukikurage/daily-report-api/internal/middleware"
	"github.com/yukikurage/daily-report-api/internal/repository"
	"github.com/yukikurage/daily-report-api/internal/services"
	"github.com/yukikurage/daily-report-api/internal/testutil"
	"gorm.io/gorm"
)

type testEnv struct {
	db              *gorm.DB
	router          *gin.Engine
	reportService   *services.ReportService
	employeeService *services.EmployeeService
}

func setupTestEnv(t *testing.T, draftService *services.ReportDraftService) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	log, _ := test.NewNullLogger()

	employeeRepo := repository.NewEmployeeRepository(db)
	reportRepo := repository.NewReportRepository(db)

	authService := services.NewAuthService(employeeRepo)
	employeeService := services.NewEmployeeService(employeeRepo)
	reportService := services.NewReportService(reportRepo, database.NewTransactor(db), services.ReportPolicy{}, log)
	reportService.SetClock(func() time.Time {
		return time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	})

	authHandler := NewAuthHandler(authService)
	employeeHandler := NewEmployeeHandler(employeeService)
	reportHandler := NewReportHandler(reportService, draftService, log)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	api := r.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", middleware.RequireAuth(authService), authHandler.GetCurrentUser)

	employees := api.Group("/employees")
	employees.Use(middleware.RequireAuth(authService), middleware.RequireAdmin())
	employees.POST("", employeeHandler.RegisterEmployee)

	reports := api.Group("/reports")
	reports.Use(middleware.RequireAuth(authService))
	reports.GET("", reportHandler.ListReports)
	reports.POST("", reportHandler.CreateReport)
	reports.POST("/draft", reportHandler.DraftReport)
	reports.GET("/:id", middleware.RequireReportAccess(reportService), reportHandler.GetReport)
	reports.PUT("/:id", middleware.RequireReportAccess(reportService), reportHandler.UpdateReport)
	reports.DELETE("/:id", middleware.RequireReportAccess(reportService), reportHandler.DeleteReport)

	return testEnv{
		db:              db,
		router:          r,
		reportService:   reportService,
		employeeService: employeeService,
	}
}

// do sends a JSON request carrying cookies and returns the recorder
func (env testEnv) do(t *testing.T, method, path string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// login authenticates code with the testutil password and returns the
// session cookies
func (env testEnv) login(t *testing.T, code string) []*http.Cookie {
	t.Helper()
	return env.loginWith(t, code, "password123")
}

// loginWith authenticates code with password and returns the session cookies
func (env testEnv) loginWith(t *testing.T, code, password string) []*http.Cookie {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"code":     code,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
