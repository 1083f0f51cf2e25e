// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daily-report-api/internal/database"
	"github.com/yukikurage/daily-report-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database. The pool is pinned to a
// single connection because every connection to ":memory:" is a separate
// database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(nil))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	require.NoError(t, database.Migrate(db, log))

	database.SetDB(db)
	return db
}

// CreateEmployee inserts an employee whose password is "password123".
func CreateEmployee(t *testing.T, db *gorm.DB, code string, role models.Role) *models.Employee {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	employee := &models.Employee{
		Code:         code,
		Name:         "Employee " + code,
		Role:         role,
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}
