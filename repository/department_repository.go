package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staffly/config"
	"staffly/models"
)

type DepartmentRepository interface {
	// Create fails with ErrDuplicateKey when the tenant already has the name.
	Create(ctx context.Context, d *models.Department) error
	// Ensure creates the named department unless it already exists.
	Ensure(ctx context.Context, companyID primitive.ObjectID, name string) error
	FindByID(ctx context.Context, companyID, id primitive.ObjectID) (*models.Department, error)
	ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.Department, error)
	Rename(ctx context.Context, companyID, id primitive.ObjectID, name string) (bool, error)
	Delete(ctx context.Context, companyID, id primitive.ObjectID) (bool, error)
}

type departmentRepository struct {
	collection *mongo.Collection
}

func NewDepartmentRepository(db *mongo.Database) DepartmentRepository {
	return &departmentRepository{collection: db.Collection(config.DepartmentCollection)}
}

func (r *departmentRepository) Create(ctx context.Context, d *models.Department) error {
	now := time.Now()
	d.ID = primitive.NewObjectID()
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, d); err != nil {
		return wrapWrite("failed to create department", err)
	}
	return nil
}

func (r *departmentRepository) Ensure(ctx context.Context, companyID primitive.ObjectID, name string) error {
	now := time.Now()
	filter := bson.M{"company_id": companyID, "name": name}
	update := bson.M{"$setOnInsert": bson.M{
		"_id":        primitive.NewObjectID(),
		"company_id": companyID,
		"name":       name,
		"created_at": now,
		"updated_at": now,
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to ensure department: %w", err)
	}
	return nil
}

func (r *departmentRepository) FindByID(ctx context.Context, companyID, id primitive.ObjectID) (*models.Department, error) {
	var d models.Department
	if err := r.collection.FindOne(ctx, bson.M{"_id": id, "company_id": companyID}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return &d, nil
}

func (r *departmentRepository) ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.Department, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"company_id": companyID}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer cursor.Close(ctx)

	departments := []models.Department{}
	if err := cursor.All(ctx, &departments); err != nil {
		return nil, fmt.Errorf("failed to decode departments: %w", err)
	}
	return departments, nil
}

func (r *departmentRepository) Rename(ctx context.Context, companyID, id primitive.ObjectID, name string) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "company_id": companyID},
		bson.M{"$set": bson.M{"name": name, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, wrapWrite("failed to rename department", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *departmentRepository) Delete(ctx context.Context, companyID, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "company_id": companyID})
	if err != nil {
		return false, fmt.Errorf("failed to delete department: %w", err)
	}
	return res.DeletedCount > 0, nil
}
