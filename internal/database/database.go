package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/daily-report-api/internal/config"
	"github.com/yukikurage/daily-report-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Dialector returns the gorm dialector selected by cfg.DBDriver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBSSLMode,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// GormConfig returns the gorm settings shared by the server and tests.
// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey.
func GormConfig(log *logrus.Logger) *gorm.Config {
	gormLogger := logger.Default.LogMode(logger.Silent)
	if log != nil {
		level := logger.Warn
		if log.IsLevelEnabled(logrus.DebugLevel) {
			level = logger.Info
		}
		gormLogger = logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		})
	}

	return &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func Connect(cfg *config.Config, log *logrus.Logger) error {
	dialector, err := Dialector(cfg)
	if err != nil {
		return err
	}

	DB, err = gorm.Open(dialector, GormConfig(log))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.WithField("driver", cfg.DBDriver).Info("Database connection established")
	return nil
}

func Migrate(db *gorm.DB, log logrus.FieldLogger) error {
	log.Info("Running database migrations...")
	err := db.AutoMigrate(
		&models.Employee{},
		&models.Report{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db, log); err != nil {
		return err
	}

	log.Info("Database migrations completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
