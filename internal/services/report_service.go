package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/daily-report-api/internal/constants"
	"github.com/yukikurage/daily-report-api/internal/database"
	"github.com/yukikurage/daily-report-api/internal/models"
	"github.com/yukikurage/daily-report-api/internal/repository"
	"gorm.io/gorm"
)

// Outcome is the business result of a report mutation. Infrastructure
// failures are reported through the accompanying error instead.
type Outcome string

const (
	OutcomeSuccess      Outcome = "SUCCESS"
	OutcomeDateConflict Outcome = "DATECHECK_ERROR"
)

var (
	ErrReportNotFound     = errors.New("report not found")
	ErrReportNoOwner      = errors.New("report owner is not set")
	ErrReportOwnerChanged = errors.New("report owner cannot be changed")
)

// ReportPolicy decides whether soft-deleted reports take part in the date
// check and in listings.
type ReportPolicy struct {
	DateCheckIncludesDeleted bool
	ListIncludesDeleted      bool
}

// ReportService handles the report lifecycle and the rule that an employee
// has at most one report per day.
type ReportService struct {
	reportRepo repository.ReportRepository
	tx         database.Transactor
	policy     ReportPolicy
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo repository.ReportRepository, tx database.Transactor, policy ReportPolicy, log logrus.FieldLogger) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		tx:         tx,
		policy:     policy,
		log:        log,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// SetClock replaces the clock used for timestamps (used for testing)
func (s *ReportService) SetClock(now func() time.Time) {
	s.now = now
}

// ListForViewer returns every report for administrators and only the
// viewer's own reports otherwise.
func (s *ReportService) ListForViewer(ctx context.Context, viewer *models.Employee) ([]models.Report, error) {
	filter := repository.ReportFilter{
		IncludeDeleted:  s.policy.ListIncludesDeleted,
		PreloadEmployee: true,
	}

	if viewer.IsAdmin() {
		reports, err := s.reportRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", err)
		}
		return reports, nil
	}

	return s.listByEmployee(ctx, viewer.ID, filter)
}

// ListByEmployee returns the reports owned by employee
func (s *ReportService) ListByEmployee(ctx context.Context, employee *models.Employee) ([]models.Report, error) {
	return s.listByEmployee(ctx, employee.ID, repository.ReportFilter{
		IncludeDeleted:  s.policy.ListIncludesDeleted,
		PreloadEmployee: true,
	})
}

func (s *ReportService) listByEmployee(ctx context.Context, employeeID uint64, filter repository.ReportFilter) ([]models.Report, error) {
	reports, err := s.reportRepo.FindByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports of employee %d: %w", employeeID, err)
	}
	return reports, nil
}

// FindByID returns a report with its owner. Soft-deleted reports are
// returned too.
func (s *ReportService) FindByID(ctx context.Context, id uint64) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return report, nil
}

// Create stores candidate as a new report owned by owner. Any owner set on
// candidate by the client is overwritten.
func (s *ReportService) Create(ctx context.Context, candidate *models.Report, owner *models.Employee) (Outcome, error) {
	outcome := OutcomeSuccess

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := s.now()
		candidate.ID = 0
		candidate.ReportDate = models.DateOnly(candidate.ReportDate)
		candidate.CreatedAt = now
		candidate.UpdatedAt = now
		candidate.DeleteFlg = false

		conflict, err := s.dateConflict(ctx, candidate, owner.ID)
		if err != nil {
			return err
		}
		if conflict {
			outcome = OutcomeDateConflict
			return nil
		}

		candidate.EmployeeID = owner.ID
		candidate.Employee = *owner

		return s.reportRepo.Save(ctx, candidate)
	})

	return s.finish(candidate, owner.ID, outcome, err, "create")
}

// Update overwrites the stored report with candidate. candidate must carry
// the owner of the stored report; createdAt is preserved and updatedAt
// refreshed. On a date conflict nothing is written.
func (s *ReportService) Update(ctx context.Context, candidate *models.Report) (Outcome, error) {
	if candidate.EmployeeID == 0 {
		return "", ErrReportNoOwner
	}

	outcome := OutcomeSuccess

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		stored, err := s.reportRepo.FindByID(ctx, candidate.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportNotFound
			}
			return fmt.Errorf("failed to find report: %w", err)
		}
		if stored.EmployeeID != candidate.EmployeeID {
			return ErrReportOwnerChanged
		}

		candidate.ReportDate = models.DateOnly(candidate.ReportDate)

		// A deleted report only competes for its date when deleted reports
		// take part in the check.
		if !stored.DeleteFlg || s.policy.DateCheckIncludesDeleted {
			conflict, err := s.dateConflict(ctx, candidate, candidate.EmployeeID)
			if err != nil {
				return err
			}
			if conflict {
				outcome = OutcomeDateConflict
				return nil
			}
		}

		candidate.Employee = stored.Employee
		candidate.DeleteFlg = stored.DeleteFlg
		candidate.CreatedAt = stored.CreatedAt
		candidate.UpdatedAt = s.now()

		return s.reportRepo.Save(ctx, candidate)
	})

	return s.finish(candidate, candidate.EmployeeID, outcome, err, "update")
}

// Delete soft-deletes a report. The row is kept with deleteFlg set.
func (s *ReportService) Delete(ctx context.Context, id uint64) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		report, err := s.reportRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportNotFound
			}
			return fmt.Errorf("failed to find report: %w", err)
		}

		report.DeleteFlg = true
		report.UpdatedAt = s.now()

		if err := s.reportRepo.Save(ctx, report); err != nil {
			return fmt.Errorf("failed to delete report: %w", err)
		}
		return nil
	})
}

// dateConflict reports whether another report of the employee already
// uses the candidate's date. The candidate itself never conflicts.
func (s *ReportService) dateConflict(ctx context.Context, candidate *models.Report, employeeID uint64) (bool, error) {
	reports, err := s.reportRepo.FindByEmployee(ctx, employeeID, repository.ReportFilter{
		IncludeDeleted: s.policy.DateCheckIncludesDeleted,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check report date: %w", err)
	}

	for _, existing := range reports {
		if !models.SameDay(existing.ReportDate, candidate.ReportDate) {
			continue
		}
		if candidate.ID != 0 && candidate.ID == existing.ID {
			continue
		}
		return true, nil
	}

	return false, nil
}

// finish turns the transaction result into an outcome. A unique index
// violation means a concurrent writer took the date first.
func (s *ReportService) finish(report *models.Report, employeeID uint64, outcome Outcome, err error, op string) (Outcome, error) {
	entry := s.log.WithFields(logrus.Fields{
		"op":          op,
		"employee_id": employeeID,
		"report_date": report.ReportDate.Format(constants.ReportDateLayout),
	})

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		entry.Warn("report date rejected by unique index")
		return OutcomeDateConflict, nil
	case errors.Is(err, ErrReportNotFound), errors.Is(err, ErrReportOwnerChanged):
		return "", err
	case err != nil:
		return "", fmt.Errorf("failed to %s report: %w", op, err)
	}

	if outcome == OutcomeDateConflict {
		entry.Info("report date already used")
	}
	return outcome, nil
}
