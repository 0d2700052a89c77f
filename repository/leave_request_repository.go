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

type LeaveRequestRepository interface {
	Create(ctx context.Context, req *models.LeaveRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error)
	// TransitionStatus moves the request from one status to another and
	// reports false when it is no longer in the from status.
	TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to string, at time.Time) (bool, error)
	ListByEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]models.LeaveRequest, error)
	ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.LeaveRequestWithEmployee, error)
	// ApprovedStartingIn returns approved requests whose from date is in
	// [start, end).
	ApprovedStartingIn(ctx context.Context, employeeID primitive.ObjectID, start, end time.Time) ([]models.LeaveRequest, error)
	// EmployeesOnLeave returns the distinct employees of the tenant with an
	// approved leave covering day.
	EmployeesOnLeave(ctx context.Context, companyID primitive.ObjectID, day time.Time) ([]primitive.ObjectID, error)
	CountPending(ctx context.Context, companyID primitive.ObjectID) (int64, error)
}

type leaveRequestRepository struct {
	collection *mongo.Collection
}

func NewLeaveRequestRepository(db *mongo.Database) LeaveRequestRepository {
	return &leaveRequestRepository{collection: db.Collection(config.LeaveRequestCollection)}
}

func (r *leaveRequestRepository) Create(ctx context.Context, req *models.LeaveRequest) error {
	req.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, req); err != nil {
		return wrapWrite("failed to create leave request", err)
	}
	return nil
}

func (r *leaveRequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error) {
	var req models.LeaveRequest
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find leave request: %w", err)
	}
	return &req, nil
}

func (r *leaveRequestRepository) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to string, at time.Time) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": at}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update leave status: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]models.LeaveRequest, error) {
	return r.find(ctx, bson.M{"employee_id": employeeID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *leaveRequestRepository) ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.LeaveRequestWithEmployee, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"company_id": companyID}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, append(pipeline, joinEmployee("employee_id", "employee")...))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate leave requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := []models.LeaveRequestWithEmployee{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode leave requests: %w", err)
	}
	return requests, nil
}

func (r *leaveRequestRepository) ApprovedStartingIn(ctx context.Context, employeeID primitive.ObjectID, start, end time.Time) ([]models.LeaveRequest, error) {
	filter := bson.M{
		"employee_id": employeeID,
		"status":      models.LeaveApproved,
		"from_date":   bson.M{"$gte": start, "$lt": end},
	}
	return r.find(ctx, filter, options.Find())
}

func (r *leaveRequestRepository) EmployeesOnLeave(ctx context.Context, companyID primitive.ObjectID, day time.Time) ([]primitive.ObjectID, error) {
	filter := bson.M{
		"company_id": companyID,
		"status":     models.LeaveApproved,
		"from_date":  bson.M{"$lte": day},
		"to_date":    bson.M{"$gte": day},
	}
	values, err := r.collection.Distinct(ctx, "employee_id", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find employees on leave: %w", err)
	}
	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *leaveRequestRepository) CountPending(ctx context.Context, companyID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"company_id": companyID, "status": models.LeavePending})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending leave requests: %w", err)
	}
	return count, nil
}

func (r *leaveRequestRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.LeaveRequest, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := []models.LeaveRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode leave requests: %w", err)
	}
	return requests, nil
}
