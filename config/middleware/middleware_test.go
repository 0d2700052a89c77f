package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
)

type stubTokens map[string]*models.Claims

func (s stubTokens) ValidateToken(token string) (*models.Claims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, errors.New("bad token")
}

type stubAuthz map[string]bool

func (s stubAuthz) Authorize(role, obj, act string) (bool, error) {
	return s[role+":"+obj+":"+act], nil
}

type stubUsers map[primitive.ObjectID]*models.Employee

func (s stubUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.Employee, error) {
	if u, ok := s[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s stubUsers) add(role string) *models.Employee {
	u := &models.Employee{ID: primitive.NewObjectID(), CompanyID: primitive.NewObjectID(), Role: role, IsActive: true}
	s[u.ID] = u
	return u
}

func tokenFor(u *models.Employee) *models.Claims {
	return &models.Claims{UserID: u.ID, CompanyID: u.CompanyID, Role: u.Role}
}

func newTestApp(tokens stubTokens, users stubUsers) *fiber.App {
	authz := stubAuthz{"admin:payroll:manage": true}

	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendString(Claims(c).Role) }
	app.Get("/me", AuthMiddleware(tokens, users), ok)
	app.Post("/payroll", AuthMiddleware(tokens, users), RequirePermission(authz, zap.NewNop(), "payroll", "manage"), ok)
	app.Get("/ws", SocketAuth(tokens, users), ok)
	return app
}

func TestAuthMiddleware(t *testing.T) {
	users := stubUsers{}
	tokens := stubTokens{
		"admin-token":    tokenFor(users.add(models.RoleAdmin)),
		"employee-token": tokenFor(users.add(models.RoleEmployee)),
	}
	app := newTestApp(tokens, users)
	cases := []struct {
		name   string
		method string
		path   string
		header string
		want   int
	}{
		{"missing header", "GET", "/me", "", fiber.StatusUnauthorized},
		{"wrong scheme", "GET", "/me", "Token admin-token", fiber.StatusUnauthorized},
		{"unknown token", "GET", "/me", "Bearer forged", fiber.StatusUnauthorized},
		{"valid token", "GET", "/me", "Bearer employee-token", fiber.StatusOK},
		{"admin allowed", "POST", "/payroll", "Bearer admin-token", fiber.StatusOK},
		{"employee forbidden", "POST", "/payroll", "Bearer employee-token", fiber.StatusForbidden},
		{"socket query token", "GET", "/ws?token=employee-token", "", fiber.StatusOK},
		{"socket header token", "GET", "/ws", "Bearer admin-token", fiber.StatusOK},
		{"socket without token", "GET", "/ws", "", fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestAuthMiddlewareRechecksStoredUser(t *testing.T) {
	users := stubUsers{}
	admin := users.add(models.RoleAdmin)
	employee := users.add(models.RoleEmployee)
	tokens := stubTokens{"admin": tokenFor(admin), "employee": tokenFor(employee)}
	app := newTestApp(tokens, users)

	do := func(method, path, token string) (int, string) {
		t.Helper()
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(body)
	}

	if status, _ := do("POST", "/payroll", "admin"); status != fiber.StatusOK {
		t.Fatalf("admin before demotion = %d", status)
	}
	users[admin.ID].Role = models.RoleEmployee
	if status, _ := do("POST", "/payroll", "admin"); status != fiber.StatusForbidden {
		t.Fatalf("demoted admin = %d, want 403", status)
	}
	if status, body := do("GET", "/me", "admin"); status != fiber.StatusOK || body != models.RoleEmployee {
		t.Fatalf("demoted admin role = %d %q", status, body)
	}

	users[employee.ID].IsActive = false
	if status, _ := do("GET", "/me", "employee"); status != fiber.StatusUnauthorized {
		t.Fatalf("deactivated user = %d, want 401", status)
	}
	if status, _ := do("GET", "/ws", "employee"); status != fiber.StatusUnauthorized {
		t.Fatalf("deactivated socket = %d, want 401", status)
	}

	delete(users, admin.ID)
	if status, _ := do("GET", "/me", "admin"); status != fiber.StatusUnauthorized {
		t.Fatalf("deleted user = %d, want 401", status)
	}
}
