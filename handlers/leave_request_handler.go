package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
)

type LeaveService interface {
	Apply(ctx context.Context, claims *models.Claims, payload *models.LeaveRequestCreatePayload) (*models.LeaveRequest, error)
	Balance(ctx context.Context, employeeID primitive.ObjectID, year int) (*models.LeaveBalance, error)
	CurrentYear() int
	SetStatus(ctx context.Context, claims *models.Claims, id primitive.ObjectID, status string) (*models.LeaveRequest, error)
	ListMine(ctx context.Context, employeeID primitive.ObjectID) ([]models.LeaveRequest, error)
	ListForTenant(ctx context.Context, companyID primitive.ObjectID) ([]models.LeaveRequestWithEmployee, error)
}

type LeaveRequestHandler struct {
	leaves LeaveService
	log    *zap.Logger
}

func NewLeaveRequestHandler(leaves LeaveService, log *zap.Logger) *LeaveRequestHandler {
	return &LeaveRequestHandler{leaves: leaves, log: log}
}

// Create godoc
// @Summary Apply for leave
// @Description Files a pending request. The remaining balance is not checked.
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.LeaveRequestCreatePayload true "Leave request"
// @Success 201 {object} models.LeaveRequest
// @Failure 400 {object} models.ValidationErrorResponse
// @Router /leaves [post]
func (h *LeaveRequestHandler) Create(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var payload models.LeaveRequestCreatePayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	req, err := h.leaves.Apply(ctx, claims, &payload)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// GetMine godoc
// @Summary My leave requests
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.LeaveRequest
// @Router /leaves/me [get]
func (h *LeaveRequestHandler) GetMine(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	requests, err := h.leaves.ListMine(ctx, claims.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(requests)
}

// GetBalance godoc
// @Summary My leave balance
// @Description Remaining days per category; values can be negative
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Param year query int false "Calendar year, defaults to the current one"
// @Success 200 {object} models.LeaveBalance
// @Router /leaves/balance [get]
func (h *LeaveRequestHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	year := c.QueryInt("year", h.leaves.CurrentYear())
	ctx, cancel := requestContext(c)
	defer cancel()

	balance, err := h.leaves.Balance(ctx, claims.UserID, year)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(balance)
}

// GetAll godoc
// @Summary Company leave requests
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.LeaveRequestWithEmployee
// @Router /leaves/all [get]
func (h *LeaveRequestHandler) GetAll(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	requests, err := h.leaves.ListForTenant(ctx, claims.CompanyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(requests)
}

// UpdateStatus godoc
// @Summary Approve or reject
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Param payload body models.LeaveRequestUpdatePayload true "New status"
// @Success 200 {object} models.LeaveRequest
// @Failure 400 {object} models.ErrorResponse "Request already decided"
// @Failure 404 {object} models.ErrorResponse
// @Router /leaves/{id}/status [put]
func (h *LeaveRequestHandler) UpdateStatus(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var payload models.LeaveRequestUpdatePayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	req, err := h.leaves.SetStatus(ctx, claims, id, payload.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(req)
}
