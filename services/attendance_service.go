package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/pkg/period"
	"staffly/repository"
)

const DefaultRecentActivity = 5

type AttendanceService struct {
	attendance repository.AttendanceRepository
	employees  repository.EmployeeRepository
	leaves     repository.LeaveRequestRepository
	clock      Clock
	log        *zap.Logger
}

func NewAttendanceService(
	attendance repository.AttendanceRepository,
	employees repository.EmployeeRepository,
	leaves repository.LeaveRequestRepository,
	clock Clock,
	log *zap.Logger,
) *AttendanceService {
	return &AttendanceService{attendance: attendance, employees: employees, leaves: leaves, clock: clock, log: log}
}

func (s *AttendanceService) today() time.Time {
	return period.StartOfDay(s.clock.now())
}

// WorkDuration is the time between check-in and check-out in hours, rounded
// to two decimals.
func WorkDuration(checkIn, checkOut time.Time) float64 {
	ms := decimal.NewFromInt(checkOut.Sub(checkIn).Milliseconds())
	return ms.Div(decimal.NewFromInt(int64(time.Hour / time.Millisecond))).Round(2).InexactFloat64()
}

// CheckIn opens today's record. The unique (employee, date) index turns a
// concurrent second check-in into a DuplicateOperation.
func (s *AttendanceService) CheckIn(ctx context.Context, claims *models.Claims) (*models.Attendance, error) {
	now := s.clock.now()
	rec := &models.Attendance{
		ID:          primitive.NewObjectID(),
		EmployeeID:  claims.UserID,
		CompanyID:   claims.CompanyID,
		Date:        period.StartOfDay(now),
		CheckInTime: &now,
		Status:      models.AttendancePresent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.attendance.Insert(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return s.checkInOverAbsence(ctx, claims, rec.Date, now)
		}
		return nil, unexpected("failed to check in", err)
	}
	return rec, nil
}

// checkInOverAbsence handles a check-in that collided with today's record.
// A record the absence sweep left behind is turned into a check-in; anything
// else means the employee already checked in.
func (s *AttendanceService) checkInOverAbsence(ctx context.Context, claims *models.Claims, date, now time.Time) (*models.Attendance, error) {
	existing, err := s.attendance.FindByEmployeeAndDate(ctx, claims.UserID, date)
	if err != nil {
		return nil, unexpected("failed to load attendance", err)
	}
	if existing == nil || existing.CheckInTime != nil || existing.Status != models.AttendanceAbsent {
		return nil, apperr.DuplicateOperation("You have already checked in today.")
	}

	reopened, err := s.attendance.CheckInOverAbsent(ctx, existing.ID, now)
	if err != nil {
		return nil, unexpected("failed to check in", err)
	}
	if !reopened {
		return nil, apperr.DuplicateOperation("You have already checked in today.")
	}
	existing.CheckInTime = &now
	existing.Status = models.AttendancePresent
	existing.Note = ""
	existing.UpdatedAt = now
	return existing, nil
}

func (s *AttendanceService) CheckOut(ctx context.Context, claims *models.Claims) (*models.Attendance, error) {
	now := s.clock.now()
	rec, err := s.attendance.FindByEmployeeAndDate(ctx, claims.UserID, period.StartOfDay(now))
	if err != nil {
		return nil, unexpected("failed to load attendance", err)
	}
	if rec == nil || rec.CheckInTime == nil {
		return nil, apperr.InvalidState("You have not checked in today.")
	}
	if rec.CheckOutTime != nil {
		return nil, apperr.DuplicateOperation("You have already checked out today.")
	}
	if now.Before(*rec.CheckInTime) {
		return nil, apperr.InvalidState("Check-out cannot be earlier than check-in.")
	}

	duration := WorkDuration(*rec.CheckInTime, now)
	closed, err := s.attendance.CloseOut(ctx, rec.ID, now, duration)
	if err != nil {
		return nil, unexpected("failed to check out", err)
	}
	if !closed {
		return nil, apperr.DuplicateOperation("You have already checked out today.")
	}

	rec.CheckOutTime = &now
	rec.WorkDuration = duration
	rec.UpdatedAt = now
	return rec, nil
}

// GetToday returns nil without error when there is no record yet.
func (s *AttendanceService) GetToday(ctx context.Context, employeeID primitive.ObjectID) (*models.Attendance, error) {
	rec, err := s.attendance.FindByEmployeeAndDate(ctx, employeeID, s.today())
	if err != nil {
		return nil, unexpected("failed to load attendance", err)
	}
	return rec, nil
}

func (s *AttendanceService) ListForEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]models.Attendance, error) {
	records, err := s.attendance.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, unexpected("failed to list attendance", err)
	}
	return records, nil
}

func (s *AttendanceService) ListForTenant(ctx context.Context, companyID primitive.ObjectID) ([]models.AttendanceWithEmployee, error) {
	records, err := s.attendance.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, unexpected("failed to list attendance", err)
	}
	return records, nil
}

// TeamStatus counts every active user of the tenant, admins included.
func (s *AttendanceService) TeamStatus(ctx context.Context, companyID primitive.ObjectID) (*models.TeamStatus, error) {
	today := s.today()

	total, err := s.employees.CountActive(ctx, companyID, "")
	if err != nil {
		return nil, unexpected("failed to count employees", err)
	}
	inOffice, err := s.attendance.CountCheckedIn(ctx, companyID, today)
	if err != nil {
		return nil, unexpected("failed to count attendance", err)
	}
	onLeave, err := s.leaves.EmployeesOnLeave(ctx, companyID, today)
	if err != nil {
		return nil, unexpected("failed to count leave", err)
	}
	pending, err := s.leaves.CountPending(ctx, companyID)
	if err != nil {
		return nil, unexpected("failed to count pending leave", err)
	}

	return &models.TeamStatus{
		TotalEmployees: total,
		InOffice:       inOffice,
		OnLeave:        int64(len(onLeave)),
		PendingLeaves:  pending,
	}, nil
}

func (s *AttendanceService) RecentActivity(ctx context.Context, companyID primitive.ObjectID, limit int64) ([]models.AttendanceWithEmployee, error) {
	if limit <= 0 {
		limit = DefaultRecentActivity
	}
	records, err := s.attendance.RecentForDate(ctx, companyID, s.today(), limit)
	if err != nil {
		return nil, unexpected("failed to load recent activity", err)
	}
	return records, nil
}
