package services

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/pkg/period"
	"staffly/pkg/realtime"
	"staffly/repository"
)

type LeaveService struct {
	leaves    repository.LeaveRequestRepository
	employees repository.EmployeeRepository
	policy    models.LeaveDays
	notifier  Notifier
	events    Publisher
	clock     Clock
	log       *zap.Logger
}

func NewLeaveService(
	leaves repository.LeaveRequestRepository,
	employees repository.EmployeeRepository,
	policy models.LeaveDays,
	notifier Notifier,
	events Publisher,
	clock Clock,
	log *zap.Logger,
) *LeaveService {
	return &LeaveService{
		leaves:    leaves,
		employees: employees,
		policy:    policy,
		notifier:  notifier,
		events:    events,
		clock:     clock,
		log:       log,
	}
}

// Apply files a pending request. Remaining balance is not checked.
func (s *LeaveService) Apply(ctx context.Context, claims *models.Claims, payload *models.LeaveRequestCreatePayload) (*models.LeaveRequest, error) {
	switch payload.Type {
	case models.LeaveCasual, models.LeaveSick, models.LeavePaid:
	default:
		return nil, apperr.Validation("Leave type must be one of casual, sick, paid")
	}
	from, err := period.ParseDate(payload.FromDate, s.clock.Loc)
	if err != nil {
		return nil, apperr.Validation("Invalid from_date format, use YYYY-MM-DD")
	}
	to, err := period.ParseDate(payload.ToDate, s.clock.Loc)
	if err != nil {
		return nil, apperr.Validation("Invalid to_date format, use YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, apperr.Validation("to_date must not be before from_date")
	}

	now := s.clock.now()
	req := &models.LeaveRequest{
		EmployeeID: claims.UserID,
		CompanyID:  claims.CompanyID,
		Type:       payload.Type,
		FromDate:   from,
		ToDate:     to,
		Reason:     strings.TrimSpace(payload.Reason),
		Status:     models.LeavePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.leaves.Create(ctx, req); err != nil {
		return nil, unexpected("failed to create leave request", err)
	}

	s.events.ToAdmins(claims.CompanyID.Hex(), realtime.Event{Type: realtime.EventNewLeaveRequest, Payload: req})
	s.notifyAdmins(ctx, req)
	return req, nil
}

func (s *LeaveService) notifyAdmins(ctx context.Context, req *models.LeaveRequest) {
	emp, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil || emp == nil {
		s.log.Warn("skipping leave request mail, employee not loaded", zap.String("leave_id", req.ID.Hex()), zap.Error(err))
		return
	}
	admins, err := s.employees.FindByCompany(ctx, req.CompanyID, models.RoleAdmin)
	if err != nil {
		s.log.Warn("skipping leave request mail, admins not loaded", zap.String("leave_id", req.ID.Hex()), zap.Error(err))
		return
	}
	for i := range admins {
		if admins[i].IsActive {
			s.notifier.NewLeaveRequest(&admins[i], emp, req)
		}
	}
}

// Balance reports the remaining entitlement for year. Approved requests count
// toward the year their from date falls in, and remainders can be negative.
func (s *LeaveService) Balance(ctx context.Context, employeeID primitive.ObjectID, year int) (*models.LeaveBalance, error) {
	start, end := period.YearBounds(year, s.clock.Loc)
	approved, err := s.leaves.ApprovedStartingIn(ctx, employeeID, start, end)
	if err != nil {
		return nil, unexpected("failed to load approved leave", err)
	}
	return ComputeBalance(s.policy, year, approved), nil
}

// ComputeBalance sums the inclusive days of each approved request per
// category and subtracts them from the entitlement.
func ComputeBalance(policy models.LeaveDays, year int, approved []models.LeaveRequest) *models.LeaveBalance {
	var used models.LeaveDays
	for _, req := range approved {
		days := period.InclusiveDays(req.FromDate, req.ToDate)
		switch req.Type {
		case models.LeaveCasual:
			used.Casual += days
		case models.LeaveSick:
			used.Sick += days
		case models.LeavePaid:
			used.Paid += days
		}
	}
	return &models.LeaveBalance{
		Year:   year,
		Casual: policy.Casual - used.Casual,
		Sick:   policy.Sick - used.Sick,
		Paid:   policy.Paid - used.Paid,
		Used:   used,
	}
}

func (s *LeaveService) CurrentYear() int {
	return s.clock.now().Year()
}

// SetStatus approves or rejects a pending request of the admin's tenant.
func (s *LeaveService) SetStatus(ctx context.Context, claims *models.Claims, id primitive.ObjectID, status string) (*models.LeaveRequest, error) {
	if status != models.LeaveApproved && status != models.LeaveRejected {
		return nil, apperr.Validation("Status must be approved or rejected")
	}

	req, err := s.leaves.FindByID(ctx, id)
	if err != nil {
		return nil, unexpected("failed to load leave request", err)
	}
	if req == nil || req.CompanyID != claims.CompanyID {
		return nil, apperr.NotFound("Leave not found")
	}
	if req.Status != models.LeavePending {
		return nil, apperr.InvalidState(fmt.Sprintf("Leave request is already %s", req.Status))
	}

	now := s.clock.now()
	moved, err := s.leaves.TransitionStatus(ctx, id, models.LeavePending, status, now)
	if err != nil {
		return nil, unexpected("failed to update leave request", err)
	}
	if !moved {
		return nil, apperr.InvalidState("Leave request was already decided")
	}
	req.Status = status
	req.UpdatedAt = now

	s.events.ToUser(req.EmployeeID.Hex(), realtime.Event{Type: realtime.EventLeaveStatusUpdated, Payload: req})
	if emp, err := s.employees.FindByID(ctx, req.EmployeeID); err != nil || emp == nil {
		s.log.Warn("skipping leave status mail, employee not loaded", zap.String("leave_id", req.ID.Hex()), zap.Error(err))
	} else {
		s.notifier.LeaveStatusUpdated(emp, req)
	}
	return req, nil
}

func (s *LeaveService) ListMine(ctx context.Context, employeeID primitive.ObjectID) ([]models.LeaveRequest, error) {
	requests, err := s.leaves.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, unexpected("failed to list leave requests", err)
	}
	return requests, nil
}

func (s *LeaveService) ListForTenant(ctx context.Context, companyID primitive.ObjectID) ([]models.LeaveRequestWithEmployee, error) {
	requests, err := s.leaves.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, unexpected("failed to list leave requests", err)
	}
	return requests, nil
}
