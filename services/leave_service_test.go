package services

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"staffly/config"
	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/pkg/realtime"
)

type leaveFixture struct {
	svc      *LeaveService
	leaves   *fakeLeaves
	notifier *recordingNotifier
	events   *recordingPublisher
	admin    *models.Employee
	emp      *models.Employee
}

func newLeaveFixture(now *time.Time) *leaveFixture {
	company := primitive.NewObjectID()
	admin := newEmployee(company, "admin", models.RoleAdmin)
	emp := newEmployee(company, "emma", models.RoleEmployee)
	f := &leaveFixture{
		leaves:   &fakeLeaves{},
		notifier: &recordingNotifier{},
		events:   &recordingPublisher{},
		admin:    admin,
		emp:      emp,
	}
	f.svc = NewLeaveService(f.leaves, newFakeEmployees(admin, emp), config.DefaultLeavePolicy,
		f.notifier, f.events, fakeClock(now), nopLog)
	return f
}

func (f *leaveFixture) apply(t *testing.T, kind, from, to string) *models.LeaveRequest {
	t.Helper()
	req, err := f.svc.Apply(context.Background(), claimsFor(f.emp), &models.LeaveRequestCreatePayload{
		Type: kind, FromDate: from, ToDate: to, Reason: "family trip",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	return req
}

func (f *leaveFixture) approve(t *testing.T, req *models.LeaveRequest) {
	t.Helper()
	if _, err := f.svc.SetStatus(context.Background(), claimsFor(f.admin), req.ID, models.LeaveApproved); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
}

func TestApplyCreatesPendingAndNotifiesAdmins(t *testing.T) {
	now := day(2024, time.February, 20, 10, 0)
	f := newLeaveFixture(&now)

	req := f.apply(t, models.LeaveCasual, "2024-03-01", "2024-03-03")
	if req.Status != models.LeavePending {
		t.Fatalf("status = %q, want pending", req.Status)
	}
	if f.notifier.count("new_leave") != 1 {
		t.Fatalf("admin mails = %v", f.notifier.events)
	}
	if len(f.events.events) != 1 || f.events.events[0].ev.Type != realtime.EventNewLeaveRequest ||
		f.events.events[0].to != "admins:"+f.emp.CompanyID.Hex() {
		t.Fatalf("published = %+v", f.events.events)
	}
}

func TestApplyRejectsReversedDates(t *testing.T) {
	now := day(2024, time.February, 20, 10, 0)
	f := newLeaveFixture(&now)

	_, err := f.svc.Apply(context.Background(), claimsFor(f.emp), &models.LeaveRequestCreatePayload{
		Type: models.LeaveSick, FromDate: "2024-03-05", ToDate: "2024-03-01", Reason: "flu",
	})
	wantKind(t, err, apperr.KindValidation)
	if len(f.leaves.requests) != 0 {
		t.Fatal("request stored despite validation error")
	}
}

func TestBalanceCountsInclusiveDays(t *testing.T) {
	now := day(2024, time.February, 20, 10, 0)
	f := newLeaveFixture(&now)
	ctx := context.Background()

	f.approve(t, f.apply(t, models.LeaveCasual, "2024-03-01", "2024-03-03"))

	bal, err := f.svc.Balance(ctx, f.emp.ID, 2024)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if bal.Casual != 9 || bal.Used.Casual != 3 || bal.Sick != 12 || bal.Paid != 15 {
		t.Fatalf("balance = %+v", bal)
	}

	again, err := f.svc.Balance(ctx, f.emp.ID, 2024)
	if err != nil || *again != *bal {
		t.Fatalf("second Balance = %+v, %v; want %+v", again, err, bal)
	}
}

func TestBalanceGoesNegative(t *testing.T) {
	now := day(2024, time.January, 2, 10, 0)
	f := newLeaveFixture(&now)

	f.approve(t, f.apply(t, models.LeaveCasual, "2024-02-05", "2024-02-09"))
	f.approve(t, f.apply(t, models.LeaveCasual, "2024-04-08", "2024-04-12"))

	bal, err := f.svc.Balance(context.Background(), f.emp.ID, 2024)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if bal.Casual != 2 {
		t.Fatalf("casual = %d, want 2", bal.Casual)
	}

	f.approve(t, f.apply(t, models.LeaveCasual, "2024-06-03", "2024-06-07"))
	bal, _ = f.svc.Balance(context.Background(), f.emp.ID, 2024)
	if bal.Casual != -3 {
		t.Fatalf("casual = %d, want -3", bal.Casual)
	}
}

func TestBalanceIgnoresPendingRejectedAndOtherYears(t *testing.T) {
	now := day(2024, time.January, 2, 10, 0)
	f := newLeaveFixture(&now)
	ctx := context.Background()

	f.apply(t, models.LeaveSick, "2024-03-01", "2024-03-02")
	rejected := f.apply(t, models.LeaveSick, "2024-03-04", "2024-03-05")
	if _, err := f.svc.SetStatus(ctx, claimsFor(f.admin), rejected.ID, models.LeaveRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}
	// Counted in the year it starts in.
	f.approve(t, f.apply(t, models.LeavePaid, "2023-12-30", "2024-01-02"))

	bal, err := f.svc.Balance(ctx, f.emp.ID, 2024)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if bal.Sick != 12 || bal.Paid != 15 {
		t.Fatalf("2024 balance = %+v", bal)
	}
	prev, _ := f.svc.Balance(ctx, f.emp.ID, 2023)
	if prev.Paid != 11 {
		t.Fatalf("2023 paid = %d, want 11", prev.Paid)
	}
}

func TestSetStatusRules(t *testing.T) {
	now := day(2024, time.January, 2, 10, 0)
	f := newLeaveFixture(&now)
	ctx := context.Background()
	req := f.apply(t, models.LeaveCasual, "2024-02-01", "2024-02-01")

	outsider := newEmployee(primitive.NewObjectID(), "intruder", models.RoleAdmin)
	_, err := f.svc.SetStatus(ctx, claimsFor(outsider), req.ID, models.LeaveApproved)
	wantKind(t, err, apperr.KindNotFound)

	_, err = f.svc.SetStatus(ctx, claimsFor(f.admin), primitive.NewObjectID(), models.LeaveApproved)
	wantKind(t, err, apperr.KindNotFound)

	_, err = f.svc.SetStatus(ctx, claimsFor(f.admin), req.ID, models.LeavePending)
	wantKind(t, err, apperr.KindValidation)

	updated, err := f.svc.SetStatus(ctx, claimsFor(f.admin), req.ID, models.LeaveApproved)
	if err != nil || updated.Status != models.LeaveApproved {
		t.Fatalf("SetStatus = %+v, %v", updated, err)
	}
	if f.notifier.count("leave_status") != 1 {
		t.Fatalf("status mails = %v", f.notifier.events)
	}
	last := f.events.events[len(f.events.events)-1]
	if last.to != "user:"+f.emp.ID.Hex() || last.ev.Type != realtime.EventLeaveStatusUpdated {
		t.Fatalf("last event = %+v", last)
	}

	_, err = f.svc.SetStatus(ctx, claimsFor(f.admin), req.ID, models.LeaveRejected)
	wantKind(t, err, apperr.KindInvalidState)
	if f.leaves.requests[0].Status != models.LeaveApproved {
		t.Fatal("decided request changed status")
	}
}

func TestComputeBalanceWithCustomPolicy(t *testing.T) {
	policy := models.LeaveDays{Casual: 5, Sick: 0, Paid: 20}
	approved := []models.LeaveRequest{
		{Type: models.LeaveSick, FromDate: day(2025, time.May, 1, 0, 0), ToDate: day(2025, time.May, 1, 0, 0)},
	}
	bal := ComputeBalance(policy, 2025, approved)
	if bal.Sick != -1 || bal.Casual != 5 || bal.Paid != 20 || bal.Year != 2025 {
		t.Fatalf("balance = %+v", bal)
	}
}

func TestComputeBalanceAcrossDSTChange(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	approved := []models.LeaveRequest{
		{
			Type:     models.LeaveCasual,
			FromDate: time.Date(2024, time.October, 26, 0, 0, 0, 0, berlin),
			ToDate:   time.Date(2024, time.October, 28, 0, 0, 0, 0, berlin),
		},
	}
	bal := ComputeBalance(models.LeaveDays{Casual: 12, Sick: 12, Paid: 15}, 2024, approved)
	if bal.Used.Casual != 3 || bal.Casual != 9 {
		t.Fatalf("balance = %+v, want 3 casual days used", bal)
	}
}
