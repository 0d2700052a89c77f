package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/pkg/period"
	"staffly/repository"
)

type AssetService struct {
	assets    repository.AssetRepository
	employees repository.EmployeeRepository
	clock     Clock
}

func NewAssetService(assets repository.AssetRepository, employees repository.EmployeeRepository, clock Clock) *AssetService {
	return &AssetService{assets: assets, employees: employees, clock: clock}
}

func (s *AssetService) List(ctx context.Context, companyID primitive.ObjectID) ([]models.AssetWithAssignee, error) {
	assets, err := s.assets.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, unexpected("failed to list assets", err)
	}
	return assets, nil
}

func (s *AssetService) Create(ctx context.Context, companyID primitive.ObjectID, payload *models.AssetCreatePayload) (*models.Asset, error) {
	purchased, err := period.ParseDate(payload.PurchaseDate, s.clock.Loc)
	if err != nil {
		return nil, apperr.Validation("Invalid purchase_date format, use YYYY-MM-DD")
	}
	asset := &models.Asset{
		CompanyID:    companyID,
		Name:         strings.TrimSpace(payload.Name),
		Type:         strings.TrimSpace(payload.Type),
		SerialNumber: strings.TrimSpace(payload.SerialNumber),
		Status:       models.AssetAvailable,
		PurchaseDate: purchased,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.Conflict("Asset with this serial number already exists")
		}
		return nil, unexpected("failed to create asset", err)
	}
	return asset, nil
}

// Update edits an asset. A status other than Assigned drops the assignee; an
// assigned_to value assigns, and an explicit null returns the asset to the
// pool. Assignment is applied after status.
func (s *AssetService) Update(ctx context.Context, companyID, id primitive.ObjectID, payload *models.AssetUpdatePayload) (*models.Asset, error) {
	asset, err := s.assets.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, unexpected("failed to load asset", err)
	}
	if asset == nil {
		return nil, apperr.NotFound("Asset not found")
	}

	if payload.Name != "" {
		asset.Name = strings.TrimSpace(payload.Name)
	}
	if payload.Type != "" {
		asset.Type = strings.TrimSpace(payload.Type)
	}
	if payload.SerialNumber != "" {
		asset.SerialNumber = strings.TrimSpace(payload.SerialNumber)
	}
	if payload.Status != "" {
		asset.Status = payload.Status
		if payload.Status != models.AssetAssigned {
			asset.AssignedTo = nil
		}
	}
	if payload.AssignedTo.Present {
		if payload.AssignedTo.Clear {
			asset.AssignedTo = nil
			asset.Status = models.AssetAvailable
		} else {
			emp, err := s.employees.FindByID(ctx, payload.AssignedTo.ID)
			if err != nil {
				return nil, unexpected("failed to load employee", err)
			}
			if emp == nil || emp.CompanyID != companyID {
				return nil, apperr.NotFound("User not found")
			}
			assignee := emp.ID
			asset.AssignedTo = &assignee
			asset.Status = models.AssetAssigned
		}
	}
	if asset.Status == models.AssetAssigned && asset.AssignedTo == nil {
		return nil, apperr.Validation("An assigned asset needs assigned_to")
	}

	found, err := s.assets.Update(ctx, asset)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.Conflict("Asset with this serial number already exists")
		}
		return nil, unexpected("failed to update asset", err)
	}
	if !found {
		return nil, apperr.NotFound("Asset not found")
	}
	return asset, nil
}

func (s *AssetService) Delete(ctx context.Context, companyID, id primitive.ObjectID) error {
	deleted, err := s.assets.Delete(ctx, companyID, id)
	if err != nil {
		return unexpected("failed to delete asset", err)
	}
	if !deleted {
		return apperr.NotFound("Asset not found")
	}
	return nil
}
