package services

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/apperr"
)

// fakeClock returns a Clock pinned to *at; tests move time by assigning.
func fakeClock(at *time.Time) Clock {
	return Clock{Loc: time.UTC, Now: func() time.Time { return *at }}
}

func day(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func newEmployee(company primitive.ObjectID, name, role string) *models.Employee {
	return &models.Employee{
		ID:        primitive.NewObjectID(),
		CompanyID: company,
		Name:      name,
		Email:     name + "@example.com",
		Role:      role,
		IsActive:  true,
	}
}

func claimsFor(emp *models.Employee) *models.Claims {
	return &models.Claims{UserID: emp.ID, CompanyID: emp.CompanyID, Email: emp.Email, Role: emp.Role}
}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", kind)
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("error kind = %v, want %v (%v)", got, kind, err)
	}
}

var nopLog = zap.NewNop()
