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

type PayrollRepository interface {
	// Create fails with ErrDuplicateKey when (employee, month) exists.
	Create(ctx context.Context, p *models.Payroll) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payroll, error)
	// MarkPaid moves a pending record to paid and reports whether it did.
	MarkPaid(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error)
	ListByEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]models.Payroll, error)
	ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.PayrollWithEmployee, error)
}

type payrollRepository struct {
	collection *mongo.Collection
}

func NewPayrollRepository(db *mongo.Database) PayrollRepository {
	return &payrollRepository{collection: db.Collection(config.PayrollCollection)}
}

func (r *payrollRepository) Create(ctx context.Context, p *models.Payroll) error {
	p.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		return wrapWrite("failed to create payroll", err)
	}
	return nil
}

func (r *payrollRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payroll, error) {
	var p models.Payroll
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find payroll: %w", err)
	}
	return &p, nil
}

func (r *payrollRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": models.PayrollPaid}},
		bson.M{"$set": bson.M{"status": models.PayrollPaid, "paid_at": at, "updated_at": at}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark payroll paid: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *payrollRepository) ListByEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]models.Payroll, error) {
	opts := options.Find().SetSort(bson.D{{Key: "month", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"employee_id": employeeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.Payroll{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode payroll: %w", err)
	}
	return records, nil
}

func (r *payrollRepository) ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.PayrollWithEmployee, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"company_id": companyID}}},
		{{Key: "$sort", Value: bson.D{{Key: "month", Value: -1}, {Key: "created_at", Value: -1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, append(pipeline, joinEmployee("employee_id", "employee")...))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payroll: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.PayrollWithEmployee{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode payroll: %w", err)
	}
	return records, nil
}
