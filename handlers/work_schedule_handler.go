package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/pkg/period"
)

type ScheduleService interface {
	List(ctx context.Context, companyID primitive.ObjectID) ([]models.WorkSchedule, error)
	Get(ctx context.Context, companyID, id primitive.ObjectID) (*models.WorkSchedule, error)
	Create(ctx context.Context, companyID primitive.ObjectID, payload *models.WorkSchedulePayload) (*models.WorkSchedule, error)
	Update(ctx context.Context, companyID, id primitive.ObjectID, payload *models.WorkSchedulePayload) (*models.WorkSchedule, error)
	Delete(ctx context.Context, companyID, id primitive.ObjectID) error
	Occurrences(ctx context.Context, companyID primitive.ObjectID, from, to time.Time) ([]models.ScheduledDay, error)
}

type WorkScheduleHandler struct {
	schedules ScheduleService
	loc       *time.Location
	log       *zap.Logger
}

func NewWorkScheduleHandler(schedules ScheduleService, loc *time.Location, log *zap.Logger) *WorkScheduleHandler {
	return &WorkScheduleHandler{schedules: schedules, loc: loc, log: log}
}

// GetAll godoc
// @Summary List work schedules
// @Tags Work Schedules
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.WorkSchedule
// @Router /schedules [get]
func (h *WorkScheduleHandler) GetAll(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	schedules, err := h.schedules.List(ctx, claims.CompanyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(schedules)
}

// GetOccurrences godoc
// @Summary Expand schedules into days
// @Tags Work Schedules
// @Produce json
// @Security BearerAuth
// @Param from query string true "First day, YYYY-MM-DD"
// @Param to query string true "Last day, YYYY-MM-DD"
// @Success 200 {array} models.ScheduledDay
// @Failure 400 {object} models.ErrorResponse
// @Router /schedules/occurrences [get]
func (h *WorkScheduleHandler) GetOccurrences(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	from, err1 := period.ParseDate(c.Query("from"), h.loc)
	to, err2 := period.ParseDate(c.Query("to"), h.loc)
	if err1 != nil || err2 != nil {
		return respondError(c, h.log, apperr.Validation("from and to must be formatted as YYYY-MM-DD"))
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	days, err := h.schedules.Occurrences(ctx, claims.CompanyID, from, to)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(days)
}

// GetByID godoc
// @Summary Get work schedule
// @Tags Work Schedules
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 200 {object} models.WorkSchedule
// @Failure 404 {object} models.ErrorResponse
// @Router /schedules/{id} [get]
func (h *WorkScheduleHandler) GetByID(c *fiber.Ctx) error {
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

	schedule, err := h.schedules.Get(ctx, claims.CompanyID, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(schedule)
}

// Create godoc
// @Summary Create work schedule
// @Description recurrence_rule is an optional RFC 5545 RRULE starting at date
// @Tags Work Schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.WorkSchedulePayload true "Schedule"
// @Success 201 {object} models.WorkSchedule
// @Failure 400 {object} models.ErrorResponse
// @Router /schedules [post]
func (h *WorkScheduleHandler) Create(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var payload models.WorkSchedulePayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	schedule, err := h.schedules.Create(ctx, claims.CompanyID, &payload)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(schedule)
}

// Update godoc
// @Summary Update work schedule
// @Tags Work Schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Param payload body models.WorkSchedulePayload true "Schedule"
// @Success 200 {object} models.WorkSchedule
// @Failure 404 {object} models.ErrorResponse
// @Router /schedules/{id} [put]
func (h *WorkScheduleHandler) Update(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var payload models.WorkSchedulePayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	schedule, err := h.schedules.Update(ctx, claims.CompanyID, id, &payload)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(schedule)
}

// Delete godoc
// @Summary Delete work schedule
// @Tags Work Schedules
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 200 {object} models.MessageResponse
// @Router /schedules/{id} [delete]
func (h *WorkScheduleHandler) Delete(c *fiber.Ctx) error {
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

	if err := h.schedules.Delete(ctx, claims.CompanyID, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Message: "Work schedule deleted"})
}
