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

type WorkScheduleRepository interface {
	Create(ctx context.Context, s *models.WorkSchedule) error
	FindByID(ctx context.Context, companyID, id primitive.ObjectID) (*models.WorkSchedule, error)
	ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.WorkSchedule, error)
	// ListAll returns every tenant's schedules, for the absence sweep.
	ListAll(ctx context.Context) ([]models.WorkSchedule, error)
	Update(ctx context.Context, s *models.WorkSchedule) (bool, error)
	Delete(ctx context.Context, companyID, id primitive.ObjectID) (bool, error)
}

type workScheduleRepository struct {
	collection *mongo.Collection
}

func NewWorkScheduleRepository(db *mongo.Database) WorkScheduleRepository {
	return &workScheduleRepository{collection: db.Collection(config.WorkScheduleCollection)}
}

func (r *workScheduleRepository) Create(ctx context.Context, s *models.WorkSchedule) error {
	now := time.Now()
	s.ID = primitive.NewObjectID()
	s.CreatedAt = now
	s.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		return wrapWrite("failed to create work schedule", err)
	}
	return nil
}

func (r *workScheduleRepository) FindByID(ctx context.Context, companyID, id primitive.ObjectID) (*models.WorkSchedule, error) {
	var s models.WorkSchedule
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "company_id": companyID}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find work schedule: %w", err)
	}
	return &s, nil
}

func (r *workScheduleRepository) ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.WorkSchedule, error) {
	return r.find(ctx, bson.M{"company_id": companyID})
}

func (r *workScheduleRepository) ListAll(ctx context.Context) ([]models.WorkSchedule, error) {
	return r.find(ctx, bson.M{})
}

func (r *workScheduleRepository) find(ctx context.Context, filter bson.M) ([]models.WorkSchedule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list work schedules: %w", err)
	}
	defer cursor.Close(ctx)

	schedules := []models.WorkSchedule{}
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, fmt.Errorf("failed to decode work schedules: %w", err)
	}
	return schedules, nil
}

func (r *workScheduleRepository) Update(ctx context.Context, s *models.WorkSchedule) (bool, error) {
	s.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": s.ID, "company_id": s.CompanyID}, s)
	if err != nil {
		return false, fmt.Errorf("failed to update work schedule: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *workScheduleRepository) Delete(ctx context.Context, companyID, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "company_id": companyID})
	if err != nil {
		return false, fmt.Errorf("failed to delete work schedule: %w", err)
	}
	return res.DeletedCount > 0, nil
}
