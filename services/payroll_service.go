package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/pkg/period"
	"staffly/pkg/realtime"
	"staffly/repository"
)

type PayrollService struct {
	payroll   repository.PayrollRepository
	employees repository.EmployeeRepository
	notifier  Notifier
	events    Publisher
	clock     Clock
	log       *zap.Logger
}

func NewPayrollService(
	payroll repository.PayrollRepository,
	employees repository.EmployeeRepository,
	notifier Notifier,
	events Publisher,
	clock Clock,
	log *zap.Logger,
) *PayrollService {
	return &PayrollService{payroll: payroll, employees: employees, notifier: notifier, events: events, clock: clock, log: log}
}

// NetPay is base minus deductions in exact decimal arithmetic, rounded to
// cents. It may be negative.
func NetPay(base, deductions decimal.Decimal) decimal.Decimal {
	return base.Sub(deductions).Round(2)
}

// Generate creates the pending payroll record for (employee, month).
func (s *PayrollService) Generate(ctx context.Context, claims *models.Claims, payload *models.PayrollGeneratePayload) (*models.Payroll, error) {
	employeeID, err := parseID(payload.EmployeeID, "employee_id")
	if err != nil {
		return nil, err
	}
	if _, err := period.ParseMonth(payload.Month); err != nil {
		return nil, apperr.Validation("Month must be formatted as YYYY-MM")
	}
	if payload.BaseSalary == nil {
		return nil, apperr.Validation("base_salary is required")
	}
	base := decimal.NewFromFloat(*payload.BaseSalary)
	if base.IsNegative() {
		return nil, apperr.Validation("base_salary must not be negative")
	}
	deductions := decimal.Zero
	if payload.Deductions != nil {
		deductions = decimal.NewFromFloat(*payload.Deductions)
	}
	if deductions.IsNegative() {
		return nil, apperr.Validation("deductions must not be negative")
	}

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, unexpected("failed to load employee", err)
	}
	if emp == nil || emp.CompanyID != claims.CompanyID {
		return nil, apperr.NotFound("Employee not found")
	}

	now := s.clock.now()
	record := &models.Payroll{
		EmployeeID: employeeID,
		CompanyID:  claims.CompanyID,
		Month:      payload.Month,
		BaseSalary: base.Round(2).InexactFloat64(),
		Deductions: deductions.Round(2).InexactFloat64(),
		NetPay:     NetPay(base, deductions).InexactFloat64(),
		Status:     models.PayrollPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.payroll.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.Conflict("Payroll for this month already exists for this employee.")
		}
		return nil, unexpected("failed to create payroll", err)
	}

	s.notifier.PayrollGenerated(emp, record)
	s.events.ToUser(emp.ID.Hex(), realtime.Event{Type: realtime.EventPayrollGenerated, Payload: record})
	return record, nil
}

// MarkPaid settles a record of the admin's tenant. Marking a paid record
// again returns it unchanged and sends nothing.
func (s *PayrollService) MarkPaid(ctx context.Context, claims *models.Claims, id primitive.ObjectID) (*models.Payroll, error) {
	record, err := s.payroll.FindByID(ctx, id)
	if err != nil {
		return nil, unexpected("failed to load payroll", err)
	}
	if record == nil || record.CompanyID != claims.CompanyID {
		return nil, apperr.NotFound("Payroll record not found")
	}
	if record.Status == models.PayrollPaid {
		return record, nil
	}

	now := s.clock.now()
	changed, err := s.payroll.MarkPaid(ctx, id, now)
	if err != nil {
		return nil, unexpected("failed to mark payroll paid", err)
	}
	if !changed {
		// Paid concurrently; report the stored state.
		if record, err = s.payroll.FindByID(ctx, id); err != nil || record == nil {
			return nil, unexpected("failed to reload payroll", err)
		}
		return record, nil
	}
	record.Status = models.PayrollPaid
	record.PaidAt = &now
	record.UpdatedAt = now

	if emp, err := s.employees.FindByID(ctx, record.EmployeeID); err != nil || emp == nil {
		s.log.Warn("skipping payroll paid mail, employee not loaded", zap.String("payroll_id", id.Hex()), zap.Error(err))
	} else {
		s.notifier.PayrollPaid(emp, record)
	}
	return record, nil
}

func (s *PayrollService) ListForEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]models.Payroll, error) {
	records, err := s.payroll.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, unexpected("failed to list payroll", err)
	}
	return records, nil
}

func (s *PayrollService) ListForTenant(ctx context.Context, companyID primitive.ObjectID) ([]models.PayrollWithEmployee, error) {
	records, err := s.payroll.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, unexpected("failed to list payroll", err)
	}
	return records, nil
}
