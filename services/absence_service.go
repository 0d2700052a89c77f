package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/period"
	"staffly/repository"
)

// AbsenceService records Absent for employees who neither checked in nor were
// on approved leave on a scheduled work day.
type AbsenceService struct {
	schedules  repository.WorkScheduleRepository
	employees  repository.EmployeeRepository
	leaves     repository.LeaveRequestRepository
	attendance repository.AttendanceRepository
	clock      Clock
	log        *zap.Logger
}

func NewAbsenceService(
	schedules repository.WorkScheduleRepository,
	employees repository.EmployeeRepository,
	leaves repository.LeaveRequestRepository,
	attendance repository.AttendanceRepository,
	clock Clock,
	log *zap.Logger,
) *AbsenceService {
	return &AbsenceService{schedules: schedules, employees: employees, leaves: leaves, attendance: attendance, clock: clock, log: log}
}

// Sweep marks absences for every tenant whose schedules for today have all
// ended.
// It returns how many records were inserted and is safe to rerun.
func (s *AbsenceService) Sweep(ctx context.Context) (int, error) {
	now := s.clock.now()
	today := period.StartOfDay(now)

	schedules, err := s.schedules.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	// A tenant is due once the last of its shifts today has ended.
	lastEnd := map[primitive.ObjectID]time.Time{}
	for _, sc := range schedules {
		if !OccursOn(sc, s.clock.Loc, today) {
			continue
		}
		end, err := EndOn(sc, s.clock.Loc, today)
		if err != nil {
			s.log.Warn("skipping schedule with bad end time", zap.String("schedule_id", sc.ID.Hex()), zap.Error(err))
			continue
		}
		if end.After(lastEnd[sc.CompanyID]) {
			lastEnd[sc.CompanyID] = end
		}
	}
	due := map[primitive.ObjectID]bool{}
	for companyID, end := range lastEnd {
		if !now.Before(end) {
			due[companyID] = true
		}
	}

	inserted := 0
	for companyID := range due {
		n, err := s.markCompany(ctx, companyID, today, now)
		inserted += n
		if err != nil {
			return inserted, err
		}
	}
	return inserted, nil
}

func (s *AbsenceService) markCompany(ctx context.Context, companyID primitive.ObjectID, today, now time.Time) (int, error) {
	employees, err := s.employees.FindByCompany(ctx, companyID, models.RoleEmployee)
	if err != nil {
		return 0, err
	}
	onLeave, err := s.leaves.EmployeesOnLeave(ctx, companyID, today)
	if err != nil {
		return 0, err
	}
	excused := make(map[primitive.ObjectID]bool, len(onLeave))
	for _, id := range onLeave {
		excused[id] = true
	}

	inserted := 0
	for _, emp := range employees {
		if !emp.IsActive || excused[emp.ID] || emp.JoiningDate.After(now) {
			continue
		}
		rec := &models.Attendance{
			EmployeeID: emp.ID,
			CompanyID:  companyID,
			Date:       today,
			Status:     models.AttendanceAbsent,
			Note:       "Marked absent by schedule",
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.attendance.Insert(ctx, rec); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				continue
			}
			return inserted, err
		}
		inserted++
	}
	if inserted > 0 {
		s.log.Info("marked absences", zap.String("company_id", companyID.Hex()), zap.Int("count", inserted))
	}
	return inserted, nil
}
