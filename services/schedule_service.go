package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/pkg/period"
	"staffly/repository"
)

const clockLayout = "15:04"

type ScheduleService struct {
	schedules repository.WorkScheduleRepository
	clock     Clock
}

func NewScheduleService(schedules repository.WorkScheduleRepository, clock Clock) *ScheduleService {
	return &ScheduleService{schedules: schedules, clock: clock}
}

func (s *ScheduleService) List(ctx context.Context, companyID primitive.ObjectID) ([]models.WorkSchedule, error) {
	schedules, err := s.schedules.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, unexpected("failed to list work schedules", err)
	}
	return schedules, nil
}

func (s *ScheduleService) Get(ctx context.Context, companyID, id primitive.ObjectID) (*models.WorkSchedule, error) {
	schedule, err := s.schedules.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, unexpected("failed to load work schedule", err)
	}
	if schedule == nil {
		return nil, apperr.NotFound("Work schedule not found")
	}
	return schedule, nil
}

func (s *ScheduleService) Create(ctx context.Context, companyID primitive.ObjectID, payload *models.WorkSchedulePayload) (*models.WorkSchedule, error) {
	schedule := &models.WorkSchedule{CompanyID: companyID}
	if err := s.apply(schedule, payload); err != nil {
		return nil, err
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, unexpected("failed to create work schedule", err)
	}
	return schedule, nil
}

func (s *ScheduleService) Update(ctx context.Context, companyID, id primitive.ObjectID, payload *models.WorkSchedulePayload) (*models.WorkSchedule, error) {
	schedule, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(schedule, payload); err != nil {
		return nil, err
	}
	found, err := s.schedules.Update(ctx, schedule)
	if err != nil {
		return nil, unexpected("failed to update work schedule", err)
	}
	if !found {
		return nil, apperr.NotFound("Work schedule not found")
	}
	return schedule, nil
}

func (s *ScheduleService) Delete(ctx context.Context, companyID, id primitive.ObjectID) error {
	deleted, err := s.schedules.Delete(ctx, companyID, id)
	if err != nil {
		return unexpected("failed to delete work schedule", err)
	}
	if !deleted {
		return apperr.NotFound("Work schedule not found")
	}
	return nil
}

// Occurrences expands the tenant's schedules into concrete days within
// [from, to], sorted by date.
func (s *ScheduleService) Occurrences(ctx context.Context, companyID primitive.ObjectID, from, to time.Time) ([]models.ScheduledDay, error) {
	if to.Before(from) {
		return nil, apperr.Validation("to must not be before from")
	}
	if to.Sub(from) > 366*24*time.Hour {
		return nil, apperr.Validation("Range must not exceed one year")
	}
	schedules, err := s.List(ctx, companyID)
	if err != nil {
		return nil, err
	}

	days := []models.ScheduledDay{}
	for _, sc := range schedules {
		dates, err := ScheduleDates(sc, s.clock.Loc, from, to)
		if err != nil {
			continue
		}
		for _, d := range dates {
			days = append(days, models.ScheduledDay{
				ScheduleID: sc.ID,
				Date:       d.Format(period.DateLayout),
				StartTime:  sc.StartTime,
				EndTime:    sc.EndTime,
				Note:       sc.Note,
			})
		}
	}
	sortScheduledDays(days)
	return days, nil
}

func (s *ScheduleService) apply(schedule *models.WorkSchedule, payload *models.WorkSchedulePayload) error {
	start, err := period.ParseDate(payload.Date, s.clock.Loc)
	if err != nil {
		return apperr.Validation("Invalid date format, use YYYY-MM-DD")
	}
	begin, err1 := time.Parse(clockLayout, payload.StartTime)
	end, err2 := time.Parse(clockLayout, payload.EndTime)
	if err1 != nil || err2 != nil {
		return apperr.Validation("Times must be formatted as HH:MM")
	}
	if !end.After(begin) {
		return apperr.Validation("end_time must be after start_time")
	}
	rule := strings.TrimSpace(payload.RecurrenceRule)
	if rule != "" {
		if _, err := parseRule(rule, start); err != nil {
			return apperr.Validation(fmt.Sprintf("Invalid recurrence_rule: %v", err))
		}
	}

	schedule.Date = payload.Date
	schedule.StartTime = payload.StartTime
	schedule.EndTime = payload.EndTime
	schedule.Note = strings.TrimSpace(payload.Note)
	schedule.RecurrenceRule = rule
	return nil
}

func parseRule(rule string, dtstart time.Time) (*rrule.RRule, error) {
	opt, err := rrule.StrToROption(strings.TrimPrefix(rule, "RRULE:"))
	if err != nil {
		return nil, err
	}
	opt.Dtstart = dtstart
	return rrule.NewRRule(*opt)
}

// ScheduleDates lists the days in [from, to] on which sc applies, as
// midnights in loc.
func ScheduleDates(sc models.WorkSchedule, loc *time.Location, from, to time.Time) ([]time.Time, error) {
	start, err := period.ParseDate(sc.Date, loc)
	if err != nil {
		return nil, err
	}
	from = period.StartOfDay(from.In(loc))
	to = period.StartOfDay(to.In(loc))

	if sc.RecurrenceRule == "" {
		if start.Before(from) || start.After(to) {
			return nil, nil
		}
		return []time.Time{start}, nil
	}

	r, err := parseRule(sc.RecurrenceRule, start)
	if err != nil {
		return nil, err
	}
	var out []time.Time
	for _, t := range r.Between(from, to, true) {
		out = append(out, period.StartOfDay(t.In(loc)))
	}
	return out, nil
}

// OccursOn reports whether sc applies to the day containing day.
func OccursOn(sc models.WorkSchedule, loc *time.Location, day time.Time) bool {
	dates, err := ScheduleDates(sc, loc, day, day)
	return err == nil && len(dates) > 0
}

// EndOn returns the instant sc ends on day.
func EndOn(sc models.WorkSchedule, loc *time.Location, day time.Time) (time.Time, error) {
	end, err := time.Parse(clockLayout, sc.EndTime)
	if err != nil {
		return time.Time{}, err
	}
	d := period.StartOfDay(day.In(loc))
	return time.Date(d.Year(), d.Month(), d.Day(), end.Hour(), end.Minute(), 0, 0, loc), nil
}
