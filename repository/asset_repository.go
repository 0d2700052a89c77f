package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"staffly/config"
	"staffly/models"
)

type AssetRepository interface {
	// Create fails with ErrDuplicateKey when the serial number is taken
	// within the tenant.
	Create(ctx context.Context, a *models.Asset) error
	FindByID(ctx context.Context, companyID, id primitive.ObjectID) (*models.Asset, error)
	ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.AssetWithAssignee, error)
	Update(ctx context.Context, a *models.Asset) (bool, error)
	Delete(ctx context.Context, companyID, id primitive.ObjectID) (bool, error)
	// ReleaseFrom returns everything assigned to employeeID to the pool.
	ReleaseFrom(ctx context.Context, companyID, employeeID primitive.ObjectID) error
}

type assetRepository struct {
	collection *mongo.Collection
}

func NewAssetRepository(db *mongo.Database) AssetRepository {
	return &assetRepository{collection: db.Collection(config.AssetCollection)}
}

func (r *assetRepository) Create(ctx context.Context, a *models.Asset) error {
	now := time.Now()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, a); err != nil {
		return wrapWrite("failed to create asset", err)
	}
	return nil
}

func (r *assetRepository) FindByID(ctx context.Context, companyID, id primitive.ObjectID) (*models.Asset, error) {
	var a models.Asset
	if err := r.collection.FindOne(ctx, bson.M{"_id": id, "company_id": companyID}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find asset: %w", err)
	}
	return &a, nil
}

func (r *assetRepository) ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.AssetWithAssignee, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"company_id": companyID}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, append(pipeline, joinEmployee("assigned_to", "assignee")...))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate assets: %w", err)
	}
	defer cursor.Close(ctx)

	assets := []models.AssetWithAssignee{}
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, fmt.Errorf("failed to decode assets: %w", err)
	}
	return assets, nil
}

func (r *assetRepository) Update(ctx context.Context, a *models.Asset) (bool, error) {
	a.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": a.ID, "company_id": a.CompanyID}, a)
	if err != nil {
		return false, wrapWrite("failed to update asset", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *assetRepository) Delete(ctx context.Context, companyID, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "company_id": companyID})
	if err != nil {
		return false, fmt.Errorf("failed to delete asset: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *assetRepository) ReleaseFrom(ctx context.Context, companyID, employeeID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"company_id": companyID, "assigned_to": employeeID},
		bson.M{
			"$unset": bson.M{"assigned_to": ""},
			"$set":   bson.M{"status": models.AssetAvailable, "updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to release assets: %w", err)
	}
	return nil
}
