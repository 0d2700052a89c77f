package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/services"
)

type CandidateService interface {
	List(ctx context.Context, companyID primitive.ObjectID) ([]models.Candidate, error)
	Board(ctx context.Context, companyID primitive.ObjectID) ([]services.BoardColumn, error)
	Create(ctx context.Context, companyID primitive.ObjectID, payload *models.CandidateCreatePayload) (*models.Candidate, error)
	Move(ctx context.Context, companyID, id primitive.ObjectID, status string) (*models.Candidate, error)
	Delete(ctx context.Context, companyID, id primitive.ObjectID) error
}

type CandidateHandler struct {
	candidates CandidateService
	log        *zap.Logger
}

func NewCandidateHandler(candidates CandidateService, log *zap.Logger) *CandidateHandler {
	return &CandidateHandler{candidates: candidates, log: log}
}

// GetAll godoc
// @Summary List candidates
// @Tags Recruitment
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Candidate
// @Router /candidates [get]
func (h *CandidateHandler) GetAll(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	candidates, err := h.candidates.List(ctx, claims.CompanyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(candidates)
}

// GetBoard godoc
// @Summary Kanban board
// @Description Candidates grouped by stage, in pipeline order
// @Tags Recruitment
// @Produce json
// @Security BearerAuth
// @Success 200 {array} services.BoardColumn
// @Router /candidates/board [get]
func (h *CandidateHandler) GetBoard(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	board, err := h.candidates.Board(ctx, claims.CompanyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(board)
}

// Create godoc
// @Summary Add candidate
// @Tags Recruitment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CandidateCreatePayload true "Candidate"
// @Success 201 {object} models.Candidate
// @Failure 409 {object} models.ErrorResponse
// @Router /candidates [post]
func (h *CandidateHandler) Create(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var payload models.CandidateCreatePayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	candidate, err := h.candidates.Create(ctx, claims.CompanyID, &payload)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(candidate)
}

// UpdateStatus godoc
// @Summary Move candidate
// @Tags Recruitment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Candidate ID"
// @Param payload body models.CandidateStatusPayload true "Target column"
// @Success 200 {object} models.Candidate
// @Failure 404 {object} models.ErrorResponse
// @Router /candidates/{id}/status [put]
func (h *CandidateHandler) UpdateStatus(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var payload models.CandidateStatusPayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	candidate, err := h.candidates.Move(ctx, claims.CompanyID, id, payload.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(candidate)
}

// Delete godoc
// @Summary Delete candidate
// @Tags Recruitment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Candidate ID"
// @Success 200 {object} models.MessageResponse
// @Router /candidates/{id} [delete]
func (h *CandidateHandler) Delete(c *fiber.Ctx) error {
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

	if err := h.candidates.Delete(ctx, claims.CompanyID, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Message: "Candidate removed"})
}
