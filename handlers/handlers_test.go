package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/services"
)

var nopLog = zap.NewNop()

func withClaims(claims *models.Claims) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", claims)
		return c.Next()
	}
}

func employeeClaims() *models.Claims {
	return &models.Claims{
		UserID:    primitive.NewObjectID(),
		CompanyID: primitive.NewObjectID(),
		Email:     "budi@example.com",
		Role:      models.RoleEmployee,
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]interface{}{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestStatusFor(t *testing.T) {
	cases := map[apperr.Kind]int{
		apperr.KindValidation:         fiber.StatusBadRequest,
		apperr.KindInvalidState:       fiber.StatusBadRequest,
		apperr.KindDuplicateOperation: fiber.StatusConflict,
		apperr.KindConflict:           fiber.StatusConflict,
		apperr.KindNotFound:           fiber.StatusNotFound,
		apperr.KindUnauthorized:       fiber.StatusForbidden,
		apperr.KindUnexpected:         fiber.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := statusFor(kind); got != want {
			t.Errorf("statusFor(%s) = %d, want %d", kind, got, want)
		}
	}
}

type stubAuth struct {
	user *models.Employee
	err  error
}

func (s stubAuth) Register(context.Context, *models.RegisterPayload) (*models.Employee, error) {
	return s.user, s.err
}
func (s stubAuth) Login(context.Context, *models.LoginPayload) (*models.Employee, error) {
	return s.user, s.err
}
func (s stubAuth) Me(context.Context, *models.Claims) (*models.Employee, error) { return s.user, s.err }

type stubIssuer struct{}

func (stubIssuer) GenerateToken(*models.Employee) (string, error) { return "v2.local.test", nil }

func TestLogin(t *testing.T) {
	body := `{"email":"budi@example.com","password":"Secret123"}`

	app := fiber.New()
	h := NewAuthHandler(stubAuth{err: apperr.Unauthorized("Invalid email or password")}, stubIssuer{}, nopLog)
	app.Post("/login", h.Login)
	status, out := doJSON(t, app, "POST", "/login", body)
	if status != fiber.StatusUnauthorized || out["error"] != "Invalid email or password" {
		t.Fatalf("bad credentials: got %d %v", status, out)
	}

	app = fiber.New()
	h = NewAuthHandler(stubAuth{user: &models.Employee{Name: "Budi"}}, stubIssuer{}, nopLog)
	app.Post("/login", h.Login)
	status, out = doJSON(t, app, "POST", "/login", body)
	if status != fiber.StatusOK || out["token"] != "v2.local.test" {
		t.Fatalf("login: got %d %v", status, out)
	}

	status, out = doJSON(t, app, "POST", "/login", `{"email":"not-an-email"}`)
	if status != fiber.StatusBadRequest || out["error"] != "Validation failed" {
		t.Fatalf("invalid payload: got %d %v", status, out)
	}
}

type stubAttendance struct {
	AttendanceService
	checkIns int
}

func (s *stubAttendance) CheckIn(_ context.Context, claims *models.Claims) (*models.Attendance, error) {
	s.checkIns++
	if s.checkIns > 1 {
		return nil, apperr.DuplicateOperation("You have already checked in today")
	}
	return &models.Attendance{EmployeeID: claims.UserID, Status: "Present"}, nil
}

func TestCheckInStatusCodes(t *testing.T) {
	app := fiber.New()
	h := NewAttendanceHandler(&stubAttendance{}, nil, nopLog)
	app.Post("/check-in", withClaims(employeeClaims()), h.CheckIn)

	status, _ := doJSON(t, app, "POST", "/check-in", "")
	if status != fiber.StatusCreated {
		t.Fatalf("first check-in: got %d", status)
	}
	status, out := doJSON(t, app, "POST", "/check-in", "")
	if status != fiber.StatusConflict || out["error"] != "You have already checked in today" {
		t.Fatalf("second check-in: got %d %v", status, out)
	}
}

func TestMissingClaimsIsForbidden(t *testing.T) {
	app := fiber.New()
	h := NewAttendanceHandler(&stubAttendance{}, nil, nopLog)
	app.Post("/check-in", h.CheckIn)

	status, _ := doJSON(t, app, "POST", "/check-in", "")
	if status != fiber.StatusForbidden {
		t.Fatalf("got %d", status)
	}
}

type stubPayroll struct {
	PayrollService
	err     error
	payload *models.PayrollGeneratePayload
}

func (s *stubPayroll) Generate(_ context.Context, _ *models.Claims, p *models.PayrollGeneratePayload) (*models.Payroll, error) {
	s.payload = p
	if s.err != nil {
		return nil, s.err
	}
	return &models.Payroll{Month: p.Month, Status: models.PayrollPending}, nil
}

func (s *stubPayroll) MarkPaid(context.Context, *models.Claims, primitive.ObjectID) (*models.Payroll, error) {
	return nil, s.err
}

func TestPayrollGenerate(t *testing.T) {
	empID := primitive.NewObjectID().Hex()
	cases := []struct {
		name   string
		err    error
		body   string
		status int
	}{
		{"created", nil, `{"employee_id":"` + empID + `","month":"2024-03","base_salary":50000,"deductions":2000}`, fiber.StatusCreated},
		{"bad month", nil, `{"employee_id":"` + empID + `","month":"2024-13","base_salary":50000}`, fiber.StatusBadRequest},
		{"missing base", nil, `{"employee_id":"` + empID + `","month":"2024-03"}`, fiber.StatusBadRequest},
		{"malformed json", nil, `{"employee_id":`, fiber.StatusBadRequest},
		{"duplicate month", apperr.Conflict("Payroll for this month already exists"), `{"employee_id":"` + empID + `","month":"2024-03","base_salary":1}`, fiber.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			h := NewPayrollHandler(&stubPayroll{err: tc.err}, nopLog)
			app.Post("/payroll", withClaims(employeeClaims()), h.Generate)
			if status, out := doJSON(t, app, "POST", "/payroll", tc.body); status != tc.status {
				t.Fatalf("got %d %v, want %d", status, out, tc.status)
			}
		})
	}
}

func TestUnexpectedErrorHidesDetail(t *testing.T) {
	app := fiber.New()
	h := NewPayrollHandler(&stubPayroll{err: apperr.Unexpected("failed to update payroll", errors.New("connection reset"))}, nopLog)
	app.Put("/payroll/:id/pay", withClaims(employeeClaims()), h.MarkPaid)

	status, out := doJSON(t, app, "PUT", "/payroll/"+primitive.NewObjectID().Hex()+"/pay", "")
	if status != fiber.StatusInternalServerError {
		t.Fatalf("got %d", status)
	}
	if msg, _ := out["error"].(string); strings.Contains(msg, "connection reset") {
		t.Fatalf("internal detail leaked: %q", msg)
	}

	status, out = doJSON(t, app, "PUT", "/payroll/not-an-id/pay", "")
	if status != fiber.StatusBadRequest || out["error"] != "Invalid ID format" {
		t.Fatalf("bad id: got %d %v", status, out)
	}
}

type stubDocuments struct {
	DocumentService
	doc     *models.Document
	content []byte
	err     error
}

func (s stubDocuments) Open(context.Context, *models.Claims, primitive.ObjectID) (*models.Document, io.ReadCloser, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.doc, io.NopCloser(bytes.NewReader(s.content)), nil
}

func (s stubDocuments) Upload(_ context.Context, _ *models.Claims, up *services.Upload) (*models.Document, error) {
	data, _ := io.ReadAll(up.Content)
	return &models.Document{Title: up.Title, FileName: up.FileName, FileSize: int64(len(data)), IsPublic: up.IsPublic}, nil
}

func TestDownloadSendsContent(t *testing.T) {
	app := fiber.New()
	h := NewDocumentHandler(stubDocuments{
		doc:     &models.Document{FileName: "contract.pdf", FileType: "application/pdf"},
		content: []byte("%PDF-1.4 body"),
	}, nopLog)
	app.Get("/documents/:id/download", withClaims(employeeClaims()), h.Download)

	req := httptest.NewRequest("GET", "/documents/"+primitive.NewObjectID().Hex()+"/download", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != fiber.StatusOK || string(body) != "%PDF-1.4 body" {
		t.Fatalf("got %d %q", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, `filename="contract.pdf"`) {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestDownloadForbidden(t *testing.T) {
	app := fiber.New()
	h := NewDocumentHandler(stubDocuments{err: apperr.Unauthorized("Not authorized")}, nopLog)
	app.Get("/documents/:id/download", withClaims(employeeClaims()), h.Download)

	status, _ := doJSON(t, app, "GET", "/documents/"+primitive.NewObjectID().Hex()+"/download", "")
	if status != fiber.StatusForbidden {
		t.Fatalf("got %d", status)
	}
}

func TestUploadMultipart(t *testing.T) {
	app := fiber.New()
	h := NewDocumentHandler(stubDocuments{}, nopLog)
	app.Post("/documents", withClaims(employeeClaims()), h.Upload)

	body, contentType := multipartBody(t, map[string]string{"title": "Contract", "is_public": "true"}, "contract.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest("POST", "/documents", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var doc models.Document
	_ = json.NewDecoder(resp.Body).Decode(&doc)
	if resp.StatusCode != fiber.StatusCreated || doc.Title != "Contract" || !doc.IsPublic || doc.FileSize != 8 {
		t.Fatalf("got %d %+v", resp.StatusCode, doc)
	}

	status, out := doJSON(t, app, "POST", "/documents", "")
	if status != fiber.StatusBadRequest || out["error"] != "No file uploaded" {
		t.Fatalf("no file: got %d %v", status, out)
	}
}

type stubSchedules struct {
	ScheduleService
	from, to time.Time
}

func (s *stubSchedules) Occurrences(_ context.Context, _ primitive.ObjectID, from, to time.Time) ([]models.ScheduledDay, error) {
	s.from, s.to = from, to
	return []models.ScheduledDay{}, nil
}

func TestOccurrencesParsesRange(t *testing.T) {
	stub := &stubSchedules{}
	app := fiber.New()
	h := NewWorkScheduleHandler(stub, time.UTC, nopLog)
	app.Get("/schedules/occurrences", withClaims(employeeClaims()), h.GetOccurrences)

	status, _ := doJSON(t, app, "GET", "/schedules/occurrences?from=2024-03-01&to=2024-03-07", "")
	if status != fiber.StatusOK {
		t.Fatalf("got %d", status)
	}
	if !stub.from.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) || !stub.to.Equal(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("range = %s .. %s", stub.from, stub.to)
	}

	status, _ = doJSON(t, app, "GET", "/schedules/occurrences?from=03/01/2024", "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("bad range: got %d", status)
	}
}
