package logger

import (
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/daily-report-api/internal/config"
	"github.com/yukikurage/daily-report-api/internal/constants"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the application logger. When cfg.File is set, output goes to
// both stdout and a rotated log file.
func New(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		})
	}
	log.SetOutput(out)

	return log
}

// Middleware assigns a request id (reusing an inbound X-Request-ID) and
// logs every request once it completes.
func Middleware(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(constants.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(constants.RequestIDHeader, requestID)

		c.Next()

		entry := log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
		if userID, ok := c.Get(constants.ContextKeyUserID); ok {
			entry = entry.WithField("employee_id", userID)
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request completed")
		}
	}
}

// FromContext returns a log entry tagged with the request id of c.
func FromContext(c *gin.Context, log logrus.FieldLogger) *logrus.Entry {
	entry := log.WithField("path", c.FullPath())
	if requestID, ok := c.Get(constants.ContextKeyRequestID); ok {
		entry = entry.WithField("request_id", requestID)
	}
	return entry
}
