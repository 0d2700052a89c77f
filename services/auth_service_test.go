package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"staffly/models"
	"staffly/pkg/apperr"
)

func TestRegisterAndLogin(t *testing.T) {
	now := day(2024, time.May, 2, 9, 0)
	companies := newFakeCompanies()
	employees := newFakeEmployees()
	departments := &fakeDepartments{}
	notifier := &recordingNotifier{}
	svc := NewAuthService(companies, employees, departments, notifier, fakeClock(&now), nopLog)
	ctx := context.Background()

	admin, err := svc.Register(ctx, &models.RegisterPayload{
		Name: "Maya", Email: " Maya@Acme.io ", Password: "Secret123", CompanyName: "Acme",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if admin.Role != models.RoleAdmin || admin.Department != ManagementDepartment || !strings.HasPrefix(admin.EmployeeCode, "ADMIN-") {
		t.Fatalf("admin = %+v", admin)
	}
	if admin.Email != "maya@acme.io" || len(companies.companies) != 1 || len(departments.items) != 1 {
		t.Fatalf("email=%q companies=%d departments=%d", admin.Email, len(companies.companies), len(departments.items))
	}
	if notifier.count("welcome") != 1 {
		t.Fatalf("mails = %v", notifier.events)
	}

	_, err = svc.Register(ctx, &models.RegisterPayload{Name: "Maya", Email: "maya@acme.io", Password: "Secret123", CompanyName: "Other"})
	wantKind(t, err, apperr.KindConflict)
	if len(companies.companies) != 1 {
		t.Fatalf("companies = %d after duplicate register", len(companies.companies))
	}

	got, err := svc.Login(ctx, &models.LoginPayload{Email: "MAYA@acme.io", Password: "Secret123"})
	if err != nil || got.ID != admin.ID {
		t.Fatalf("Login = %+v, %v", got, err)
	}
	_, err = svc.Login(ctx, &models.LoginPayload{Email: "maya@acme.io", Password: "wrong"})
	wantKind(t, err, apperr.KindUnauthorized)
	_, err = svc.Login(ctx, &models.LoginPayload{Email: "nobody@acme.io", Password: "Secret123"})
	wantKind(t, err, apperr.KindUnauthorized)

	me, err := svc.Me(ctx, claimsFor(admin))
	if err != nil || me.ID != admin.ID {
		t.Fatalf("Me = %+v, %v", me, err)
	}
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	now := day(2024, time.May, 2, 9, 0)
	employees := newFakeEmployees()
	svc := NewAuthService(newFakeCompanies(), employees, &fakeDepartments{}, &recordingNotifier{}, fakeClock(&now), nopLog)
	ctx := context.Background()

	admin, err := svc.Register(ctx, &models.RegisterPayload{Name: "Noor", Email: "noor@acme.io", Password: "Secret123", CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	employees.byID[admin.ID].IsActive = false

	_, err = svc.Login(ctx, &models.LoginPayload{Email: "noor@acme.io", Password: "Secret123"})
	wantKind(t, err, apperr.KindUnauthorized)
}
