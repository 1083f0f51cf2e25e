package main

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/daily-report-api/internal/config"
	"github.com/yukikurage/daily-report-api/internal/constants"
	"github.com/yukikurage/daily-report-api/internal/database"
	"github.com/yukikurage/daily-report-api/internal/handlers"
	"github.com/yukikurage/daily-report-api/internal/logger"
	"github.com/yukikurage/daily-report-api/internal/middleware"
	"github.com/yukikurage/daily-report-api/internal/repository"
	"github.com/yukikurage/daily-report-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.Log)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg, log); err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	db := database.GetDB()

	// Run migrations
	if err := database.Migrate(db, log); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize repositories and services
	employeeRepo := repository.NewEmployeeRepository(db)
	reportRepo := repository.NewReportRepository(db)

	authService := services.NewAuthService(employeeRepo)
	employeeService := services.NewEmployeeService(employeeRepo)
	reportService := services.NewReportService(
		reportRepo,
		database.NewTransactor(db),
		services.ReportPolicy{
			DateCheckIncludesDeleted: cfg.Report.DateCheckIncludesDeleted,
			ListIncludesDeleted:      cfg.Report.ListIncludesDeleted,
		},
		log,
	)

	// Seed the administrator account
	if cfg.Admin.Password != "" {
		created, err := employeeService.EnsureAdmin(context.Background(), cfg.Admin.Code, cfg.Admin.Name, cfg.Admin.Password)
		if err != nil {
			log.WithError(err).Fatal("Failed to seed administrator")
		}
		if created {
			log.WithField("code", cfg.Admin.Code).Info("Administrator account created")
		}
	}

	// Initialize AI draft service
	var draftService *services.ReportDraftService
	if cfg.OpenAIAPIKey != "" {
		draftService = services.NewReportDraftService(cfg.OpenAIAPIKey)
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(logger.Middleware(log), gin.Recovery())

	store, err := newSessionStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create session store")
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	reportHandler := handlers.NewReportHandler(reportService, draftService, log)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Daily Report API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(authService), authHandler.GetCurrentUser)
		}

		// Employee routes (admin only)
		employees := api.Group("/employees")
		employees.Use(middleware.RequireAuth(authService), middleware.RequireAdmin())
		{
			employees.POST("", employeeHandler.RegisterEmployee)
		}

		// Report routes (protected)
		reports := api.Group("/reports")
		reports.Use(middleware.RequireAuth(authService))
		{
			reports.GET("", reportHandler.ListReports)
			reports.POST("", reportHandler.CreateReport)
			reports.POST("/draft", reportHandler.DraftReport)
			reports.GET("/:id", middleware.RequireReportAccess(reportService), reportHandler.GetReport)
			reports.PUT("/:id", middleware.RequireReportAccess(reportService), reportHandler.UpdateReport)
			reports.DELETE("/:id", middleware.RequireReportAccess(reportService), reportHandler.DeleteReport)
		}
	}

	// Start server
	log.WithField("port", cfg.Port).Info("Server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

// newSessionStore builds the Redis store by default and a signed cookie
// store when SESSION_STORE=cookie.
func newSessionStore(cfg *config.Config, log logrus.FieldLogger) (sessions.Store, error) {
	if cfg.SessionStore == "cookie" {
		log.Warn("Using cookie session store")
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		redisAddr,                 // Redis address from config
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		return nil, err
	}
	log.WithField("addr", redisAddr).Info("Using Redis session store")
	return store, nil
}
