package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daily-report-api/internal/config"
	"github.com/yukikurage/daily-report-api/internal/constants"
)

func TestNew_LevelAndFormat(t *testing.T) {
	log := New(config.LogConfig{Level: "debug", Format: "json"})
	require.Equal(t, logrus.DebugLevel, log.GetLevel())
	require.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = New(config.LogConfig{Level: "nonsense"})
	require.Equal(t, logrus.InfoLevel, log.GetLevel())
	require.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestMiddleware_AssignsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(Middleware(log))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	requestID := w.Header().Get(constants.RequestIDHeader)
	require.NotEmpty(t, requestID)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, requestID, entry.Data["request_id"])
	require.Equal(t, "/ping", entry.Data["path"])
}

func TestMiddleware_ReusesInboundRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(Middleware(log))
	r.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(constants.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "req-123", w.Header().Get(constants.RequestIDHeader))
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	require.Equal(t, "req-123", hook.LastEntry().Data["request_id"])
}
