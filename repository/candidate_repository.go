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

type CandidateRepository interface {
	// Create fails with ErrDuplicateKey when the email is taken within the
	// tenant.
	Create(ctx context.Context, c *models.Candidate) error
	FindByID(ctx context.Context, companyID, id primitive.ObjectID) (*models.Candidate, error)
	ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.Candidate, error)
	SetStatus(ctx context.Context, companyID, id primitive.ObjectID, status string, at time.Time) (bool, error)
	Delete(ctx context.Context, companyID, id primitive.ObjectID) (bool, error)
}

type candidateRepository struct {
	collection *mongo.Collection
}

func NewCandidateRepository(db *mongo.Database) CandidateRepository {
	return &candidateRepository{collection: db.Collection(config.CandidateCollection)}
}

func (r *candidateRepository) Create(ctx context.Context, c *models.Candidate) error {
	now := time.Now()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, c); err != nil {
		return wrapWrite("failed to create candidate", err)
	}
	return nil
}

func (r *candidateRepository) FindByID(ctx context.Context, companyID, id primitive.ObjectID) (*models.Candidate, error) {
	var c models.Candidate
	if err := r.collection.FindOne(ctx, bson.M{"_id": id, "company_id": companyID}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &c, nil
}

func (r *candidateRepository) ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.Candidate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"company_id": companyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer cursor.Close(ctx)

	candidates := []models.Candidate{}
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) SetStatus(ctx context.Context, companyID, id primitive.ObjectID, status string, at time.Time) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "company_id": companyID},
		bson.M{"$set": bson.M{"status": status, "updated_at": at}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update candidate: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *candidateRepository) Delete(ctx context.Context, companyID, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "company_id": companyID})
	if err != nil {
		return false, fmt.Errorf("failed to delete candidate: %w", err)
	}
	return res.DeletedCount > 0, nil
}
