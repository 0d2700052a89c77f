package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
)

type AssetService interface {
	List(ctx context.Context, companyID primitive.ObjectID) ([]models.AssetWithAssignee, error)
	Create(ctx context.Context, companyID primitive.ObjectID, payload *models.AssetCreatePayload) (*models.Asset, error)
	Update(ctx context.Context, companyID, id primitive.ObjectID, payload *models.AssetUpdatePayload) (*models.Asset, error)
	Delete(ctx context.Context, companyID, id primitive.ObjectID) error
}

type AssetHandler struct {
	assets AssetService
	log    *zap.Logger
}

func NewAssetHandler(assets AssetService, log *zap.Logger) *AssetHandler {
	return &AssetHandler{assets: assets, log: log}
}

// GetAll godoc
// @Summary List assets
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AssetWithAssignee
// @Router /assets [get]
func (h *AssetHandler) GetAll(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	assets, err := h.assets.List(ctx, claims.CompanyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(assets)
}

// Create godoc
// @Summary Register asset
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.AssetCreatePayload true "Asset"
// @Success 201 {object} models.Asset
// @Failure 409 {object} models.ErrorResponse "Serial number already exists"
// @Router /assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var payload models.AssetCreatePayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	asset, err := h.assets.Create(ctx, claims.CompanyID, &payload)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(asset)
}

// Update godoc
// @Summary Update asset
// @Description assigned_to takes an employee ID to assign, null to return the asset to the pool, or is omitted to leave it
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset ID"
// @Param payload body models.AssetUpdatePayload true "Fields to change"
// @Success 200 {object} models.Asset
// @Failure 404 {object} models.ErrorResponse
// @Router /assets/{id} [put]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var payload models.AssetUpdatePayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	asset, err := h.assets.Update(ctx, claims.CompanyID, id, &payload)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(asset)
}

// Delete godoc
// @Summary Delete asset
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /assets/{id} [delete]
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
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

	if err := h.assets.Delete(ctx, claims.CompanyID, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Message: "Asset deleted"})
}
