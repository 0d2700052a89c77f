package router

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/handlers"
	"staffly/models"
	"staffly/pkg/authz"
)

type stubUsers map[primitive.ObjectID]*models.Employee

func (s stubUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.Employee, error) {
	return s[id], nil
}

type stubTokens map[string]*models.Claims

func (s stubTokens) ValidateToken(token string) (*models.Claims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Requests in this test are stopped by middleware before any service is
// reached, so the handlers run without backing services.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	authorizer, err := authz.NewAuthorizer()
	if err != nil {
		t.Fatal(err)
	}
	log := zap.NewNop()
	employee := &models.Employee{ID: primitive.NewObjectID(), CompanyID: primitive.NewObjectID(), Role: models.RoleEmployee, IsActive: true}
	users := stubUsers{employee.ID: employee}
	tokens := stubTokens{
		"employee": {UserID: employee.ID, CompanyID: employee.CompanyID, Role: employee.Role},
	}
	h := Handlers{
		Auth:        handlers.NewAuthHandler(nil, nil, log),
		Employees:   handlers.NewEmployeeHandler(nil, log),
		Departments: handlers.NewDepartmentHandler(nil, log),
		Attendance:  handlers.NewAttendanceHandler(nil, nil, log),
		Leaves:      handlers.NewLeaveRequestHandler(nil, log),
		Payroll:     handlers.NewPayrollHandler(nil, log),
		Assets:      handlers.NewAssetHandler(nil, log),
		Candidates:  handlers.NewCandidateHandler(nil, log),
		Documents:   handlers.NewDocumentHandler(nil, log),
		Schedules:   handlers.NewWorkScheduleHandler(nil, nil, log),
		Socket:      handlers.NewSocketHandler(nil, log),
	}
	app := fiber.New()
	SetupRoutes(app, h, tokens, users, authorizer, log)
	return app
}

func TestRouteGuards(t *testing.T) {
	app := newTestApp(t)
	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"health", "GET", "/", "", fiber.StatusOK},
		{"no token", "GET", "/api/v1/attendance/today", "", fiber.StatusUnauthorized},
		{"bad token", "GET", "/api/v1/leaves/me", "forged", fiber.StatusUnauthorized},
		{"employee generates payroll", "POST", "/api/v1/payroll", "employee", fiber.StatusForbidden},
		{"employee lists employees", "GET", "/api/v1/employees", "employee", fiber.StatusForbidden},
		{"employee approves leave", "PUT", "/api/v1/leaves/" + primitive.NewObjectID().Hex() + "/status", "employee", fiber.StatusForbidden},
		{"employee edits schedule", "POST", "/api/v1/schedules", "employee", fiber.StatusForbidden},
		{"employee creates department", "POST", "/api/v1/departments", "employee", fiber.StatusForbidden},
		{"plain http on socket", "GET", "/ws", "", fiber.StatusUpgradeRequired},
		{"unknown route", "GET", "/api/v1/nope", "", fiber.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tc.want {
				t.Fatalf("got %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}
