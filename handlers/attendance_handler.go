package handlers

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, claims *models.Claims) (*models.Attendance, error)
	CheckOut(ctx context.Context, claims *models.Claims) (*models.Attendance, error)
	GetToday(ctx context.Context, employeeID primitive.ObjectID) (*models.Attendance, error)
	ListForEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]models.Attendance, error)
	ListForTenant(ctx context.Context, companyID primitive.ObjectID) ([]models.AttendanceWithEmployee, error)
	TeamStatus(ctx context.Context, companyID primitive.ObjectID) (*models.TeamStatus, error)
	RecentActivity(ctx context.Context, companyID primitive.ObjectID, limit int64) ([]models.AttendanceWithEmployee, error)
}

type QRService interface {
	Today(ctx context.Context, claims *models.Claims) (*models.QRCode, []byte, error)
	Scan(ctx context.Context, claims *models.Claims, code string) (string, *models.Attendance, error)
}

type AttendanceHandler struct {
	attendance AttendanceService
	qr         QRService
	log        *zap.Logger
}

func NewAttendanceHandler(attendance AttendanceService, qr QRService, log *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, qr: qr, log: log}
}

// CheckIn godoc
// @Summary Check in
// @Description Opens today's attendance record for the caller
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Attendance
// @Failure 409 {object} models.ErrorResponse "Already checked in today"
// @Router /attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	rec, err := h.attendance.CheckIn(ctx, claims)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// CheckOut godoc
// @Summary Check out
// @Description Closes today's record and stores the worked hours
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Attendance
// @Failure 400 {object} models.ErrorResponse "Not checked in today"
// @Failure 409 {object} models.ErrorResponse "Already checked out today"
// @Router /attendance/check-out [put]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	rec, err := h.attendance.CheckOut(ctx, claims)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(rec)
}

// GetToday godoc
// @Summary Today's record
// @Description Returns null when the caller has not checked in yet
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Attendance
// @Router /attendance/today [get]
func (h *AttendanceHandler) GetToday(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	rec, err := h.attendance.GetToday(ctx, claims.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(rec)
}

// GetMyHistory godoc
// @Summary My attendance history
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Attendance
// @Router /attendance/me [get]
func (h *AttendanceHandler) GetMyHistory(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	records, err := h.attendance.ListForEmployee(ctx, claims.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(records)
}

// GetAll godoc
// @Summary Company attendance
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AttendanceWithEmployee
// @Router /attendance/all [get]
func (h *AttendanceHandler) GetAll(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	records, err := h.attendance.ListForTenant(ctx, claims.CompanyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(records)
}

// TeamStatus godoc
// @Summary Dashboard counters
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.TeamStatus
// @Router /attendance/team-status [get]
func (h *AttendanceHandler) TeamStatus(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	status, err := h.attendance.TeamStatus(ctx, claims.CompanyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(status)
}

// RecentActivity godoc
// @Summary Latest attendance changes today
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum records" default(5)
// @Success 200 {array} models.AttendanceWithEmployee
// @Router /attendance/recent-activity [get]
func (h *AttendanceHandler) RecentActivity(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	limit := c.QueryInt("limit", 0)
	ctx, cancel := requestContext(c)
	defer cancel()

	records, err := h.attendance.RecentActivity(ctx, claims.CompanyID, int64(limit))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(records)
}

// GenerateQRCode godoc
// @Summary Today's QR code
// @Description Returns the company's attendance code for today as a base64 PNG
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.QRCodeResponse
// @Router /attendance/generate-qr [get]
func (h *AttendanceHandler) GenerateQRCode(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	qr, png, err := h.qr.Today(ctx, claims)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.QRCodeResponse{
		Code:      qr.Code,
		ImageB64:  "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		ExpiresAt: qr.ExpiresAt.Format(time.RFC3339),
	})
}

// ScanQRCode godoc
// @Summary Scan QR code
// @Description Checks the caller in, or out when already checked in
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.QRCodeScanPayload true "Scanned code"
// @Success 200 {object} models.ScanResponse
// @Failure 400 {object} models.ErrorResponse "Expired code"
// @Failure 404 {object} models.ErrorResponse "Unknown code"
// @Router /attendance/scan [post]
func (h *AttendanceHandler) ScanQRCode(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var payload models.QRCodeScanPayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	action, rec, err := h.qr.Scan(ctx, claims, payload.Code)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.ScanResponse{Action: action, Attendance: rec})
}
