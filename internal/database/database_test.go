package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daily-report-api/internal/config"
	"github.com/yukikurage/daily-report-api/internal/database"
	"github.com/yukikurage/daily-report-api/internal/models"
	"github.com/yukikurage/daily-report-api/internal/testutil"
)

func TestDialector(t *testing.T) {
	cfg := &config.Config{DBDriver: "mysql"}
	d, err := database.Dialector(cfg)
	require.NoError(t, err)
	require.Equal(t, "mysql", d.Name())

	cfg.DBDriver = "postgres"
	d, err = database.Dialector(cfg)
	require.NoError(t, err)
	require.Equal(t, "postgres", d.Name())

	cfg.DBDriver = "oracle"
	_, err = database.Dialector(cfg)
	require.Error(t, err)
}

func TestTransactor_CommitAndRollback(t *testing.T) {
	db := testutil.NewDB(t)
	tx := database.NewTransactor(db)
	ctx := context.Background()

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return database.Conn(ctx, db).Create(&models.Employee{Code: "E1", Name: "kept", Role: models.RoleGeneral, PasswordHash: "x"}).Error
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := database.Conn(ctx, db).Create(&models.Employee{Code: "E2", Name: "dropped", Role: models.RoleGeneral, PasswordHash: "x"}).Error; err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.Employee{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestTransactor_NestedCallJoinsOuter(t *testing.T) {
	db := testutil.NewDB(t)
	tx := database.NewTransactor(db)

	err := tx.WithinTransaction(context.Background(), func(outer context.Context) error {
		return tx.WithinTransaction(outer, func(inner context.Context) error {
			require.Same(t, database.Conn(outer, db), database.Conn(inner, db))
			return nil
		})
	})
	require.NoError(t, err)

	require.Error(t, tx.WithinTransaction(context.Background(), nil))
}

func TestAddIndexes_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	log, _ := test.NewNullLogger()

	require.NoError(t, database.AddIndexes(db, log))
	require.True(t, db.Migrator().HasIndex(&models.Report{}, database.ActiveReportDateIndex))
}
