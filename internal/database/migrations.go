package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ActiveReportDateIndex is the partial unique index guarding one active
// report per employee and day.
const ActiveReportDateIndex = "uq_reports_employee_date_active"

// AddIndexes adds the indexes AutoMigrate cannot express.
func AddIndexes(db *gorm.DB, log logrus.FieldLogger) error {
	dialect := db.Dialector.Name()

	switch dialect {
	case "postgres", "sqlite":
	default:
		// MySQL has no partial indexes; the service-level check is the only guard there.
		log.WithField("dialect", dialect).Warn("Skipping partial unique index on reports; dialect does not support it")
		return nil
	}

	sql := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON reports (employee_id, report_date) WHERE NOT delete_flg",
		ActiveReportDateIndex,
	)
	if err := db.Exec(sql).Error; err != nil {
		return fmt.Errorf("failed to create index %s: %w", ActiveReportDateIndex, err)
	}

	log.WithField("index", ActiveReportDateIndex).Info("Ensured index on reports(employee_id, report_date)")
	return nil
}
