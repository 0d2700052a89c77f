package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
)

type EmployeeService interface {
	List(ctx context.Context, companyID primitive.ObjectID) ([]models.Employee, error)
	Create(ctx context.Context, claims *models.Claims, payload *models.EmployeeCreatePayload) (*models.Employee, error)
	Update(ctx context.Context, claims *models.Claims, id primitive.ObjectID, payload *models.EmployeeUpdatePayload) (*models.Employee, error)
	Delete(ctx context.Context, claims *models.Claims, id primitive.ObjectID) error
	OrgChart(ctx context.Context, companyID primitive.ObjectID) ([]*models.OrgNode, error)
	DepartmentStats(ctx context.Context, companyID primitive.ObjectID) ([]models.DepartmentCount, error)
}

type EmployeeHandler struct {
	employees EmployeeService
	log       *zap.Logger
}

func NewEmployeeHandler(employees EmployeeService, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, log: log}
}

// GetAll godoc
// @Summary List employees
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Employee
// @Router /employees [get]
func (h *EmployeeHandler) GetAll(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	employees, err := h.employees.List(ctx, claims.CompanyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(employees)
}

// Create godoc
// @Summary Create employee
// @Description Adds an employee to the caller's company and mails them a welcome note
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.EmployeeCreatePayload true "Employee"
// @Success 201 {object} models.Employee
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var payload models.EmployeeCreatePayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	emp, err := h.employees.Create(ctx, claims, &payload)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(emp)
}

// Update godoc
// @Summary Update employee
// @Description reports_to accepts an ID, or null to clear the manager
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param payload body models.EmployeeUpdatePayload true "Fields to change"
// @Success 200 {object} models.Employee
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var payload models.EmployeeUpdatePayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	emp, err := h.employees.Update(ctx, claims, id, &payload)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(emp)
}

// Delete godoc
// @Summary Delete employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
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

	if err := h.employees.Delete(ctx, claims, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Message: "Employee removed"})
}

// OrgChart godoc
// @Summary Organization chart
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.OrgNode
// @Router /employees/org-chart [get]
func (h *EmployeeHandler) OrgChart(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	chart, err := h.employees.OrgChart(ctx, claims.CompanyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(chart)
}

// DepartmentStats godoc
// @Summary Active employees per department
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.DepartmentCount
// @Router /employees/department-stats [get]
func (h *EmployeeHandler) DepartmentStats(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.employees.DepartmentStats(ctx, claims.CompanyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(stats)
}
