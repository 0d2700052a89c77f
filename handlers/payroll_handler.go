package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
)

type PayrollService interface {
	Generate(ctx context.Context, claims *models.Claims, payload *models.PayrollGeneratePayload) (*models.Payroll, error)
	MarkPaid(ctx context.Context, claims *models.Claims, id primitive.ObjectID) (*models.Payroll, error)
	ListForEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]models.Payroll, error)
	ListForTenant(ctx context.Context, companyID primitive.ObjectID) ([]models.PayrollWithEmployee, error)
}

type PayrollHandler struct {
	payroll PayrollService
	log     *zap.Logger
}

func NewPayrollHandler(payroll PayrollService, log *zap.Logger) *PayrollHandler {
	return &PayrollHandler{payroll: payroll, log: log}
}

// Generate godoc
// @Summary Generate payroll
// @Description Creates the pending record for an employee and month; net pay may be negative
// @Tags Payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.PayrollGeneratePayload true "Payroll input"
// @Success 201 {object} models.Payroll
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 409 {object} models.ErrorResponse "Payroll for this month already exists"
// @Router /payroll [post]
func (h *PayrollHandler) Generate(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var payload models.PayrollGeneratePayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	record, err := h.payroll.Generate(ctx, claims, &payload)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// MarkPaid godoc
// @Summary Mark payroll paid
// @Description Idempotent; a paid record is returned unchanged
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payroll ID"
// @Success 200 {object} models.Payroll
// @Failure 404 {object} models.ErrorResponse
// @Router /payroll/{id}/pay [put]
func (h *PayrollHandler) MarkPaid(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	record, err := h.payroll.MarkPaid(ctx, claims, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(record)
}

// GetMine godoc
// @Summary My payslips
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Payroll
// @Router /payroll/me [get]
func (h *PayrollHandler) GetMine(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	records, err := h.payroll.ListForEmployee(ctx, claims.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(records)
}

// GetAll godoc
// @Summary Company payroll
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PayrollWithEmployee
// @Router /payroll/all [get]
func (h *PayrollHandler) GetAll(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	records, err := h.payroll.ListForTenant(ctx, claims.CompanyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(records)
}
