package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
)

type DepartmentService interface {
	List(ctx context.Context, companyID primitive.ObjectID) ([]models.Department, error)
	Create(ctx context.Context, companyID primitive.ObjectID, payload *models.DepartmentPayload) (*models.Department, error)
	Rename(ctx context.Context, companyID, id primitive.ObjectID, payload *models.DepartmentPayload) (*models.Department, error)
	Delete(ctx context.Context, companyID, id primitive.ObjectID) error
}

type DepartmentHandler struct {
	departments DepartmentService
	log         *zap.Logger
}

func NewDepartmentHandler(departments DepartmentService, log *zap.Logger) *DepartmentHandler {
	return &DepartmentHandler{departments: departments, log: log}
}

// GetAll godoc
// @Summary List departments
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Department
// @Router /departments [get]
func (h *DepartmentHandler) GetAll(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	departments, err := h.departments.List(ctx, claims.CompanyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(departments)
}

// Create godoc
// @Summary Create department
// @Tags Departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.DepartmentPayload true "Department"
// @Success 201 {object} models.Department
// @Failure 409 {object} models.ErrorResponse
// @Router /departments [post]
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var payload models.DepartmentPayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	d, err := h.departments.Create(ctx, claims.CompanyID, &payload)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

// Update godoc
// @Summary Rename department
// @Description Members are moved to the new name
// @Tags Departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department ID"
// @Param payload body models.DepartmentPayload true "New name"
// @Success 200 {object} models.Department
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /departments/{id} [put]
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var payload models.DepartmentPayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	d, err := h.departments.Rename(ctx, claims.CompanyID, id, &payload)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(d)
}

// Delete godoc
// @Summary Delete department
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department ID"
// @Success 200 {object} models.MessageResponse
// @Failure 409 {object} models.ErrorResponse "Department still has employees"
// @Router /departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
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

	if err := h.departments.Delete(ctx, claims.CompanyID, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Message: "Department deleted"})
}
