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

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Company, error)
	FindByName(ctx context.Context, name string) (*models.Company, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type companyRepository struct {
	collection *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) CompanyRepository {
	return &companyRepository{collection: db.Collection(config.CompanyCollection)}
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	now := time.Now()
	company.ID = primitive.NewObjectID()
	company.CreatedAt = now
	company.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, company); err != nil {
		return wrapWrite("failed to create company", err)
	}
	return nil
}

func (r *companyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Company, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *companyRepository) FindByName(ctx context.Context, name string) (*models.Company, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *companyRepository) findOne(ctx context.Context, filter bson.M) (*models.Company, error) {
	var company models.Company
	if err := r.collection.FindOne(ctx, filter).Decode(&company); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return &company, nil
}

func (r *companyRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return nil
}
