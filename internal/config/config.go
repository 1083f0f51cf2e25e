package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SessionStore  string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	Port          string
	OpenAIAPIKey  string

	Log    LogConfig
	Admin  AdminConfig
	Report ReportConfig
}

// LogConfig controls the application logger
type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

// AdminConfig describes the administrator seeded at startup. Seeding is
// skipped when Password is empty.
type AdminConfig struct {
	Code     string
	Name     string
	Password string
}

// ReportConfig holds the soft-delete policy of the report service.
type ReportConfig struct {
	DateCheckIncludesDeleted bool
	ListIncludesDeleted      bool
}

// Load reads configuration from the environment. Values from a .env file in
// the working directory are loaded first when present; real environment
// variables win over the file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "reportuser"),
		DBPassword:    getEnv("DB_PASSWORD", "reportpassword"),
		DBName:        getEnv("DB_NAME", "daily_report"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		SessionStore:  strings.ToLower(getEnv("SESSION_STORE", "redis")),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		Port:          getEnv("PORT", "8080"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		Log: LogConfig{
			Level:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format:     strings.ToLower(getEnv("LOG_FORMAT", "text")),
			File:       getEnv("LOG_FILE", ""),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 7),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 7),
		},
		Admin: AdminConfig{
			Code:     getEnv("ADMIN_CODE", "admin"),
			Name:     getEnv("ADMIN_NAME", "Administrator"),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Report: ReportConfig{
			DateCheckIncludesDeleted: getEnvBool("REPORT_DATE_CHECK_INCLUDE_DELETED", false),
			ListIncludesDeleted:      getEnvBool("REPORT_LIST_INCLUDE_DELETED", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
