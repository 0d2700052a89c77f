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

type EmployeeRepository interface {
	Create(ctx context.Context, emp *models.Employee) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)
	// FindByCompany lists a tenant's users; an empty role lists all of them.
	FindByCompany(ctx context.Context, companyID primitive.ObjectID, role string) ([]models.Employee, error)
	CountActive(ctx context.Context, companyID primitive.ObjectID, role string) (int64, error)
	// Update replaces the tenant's employee; false means no such employee.
	Update(ctx context.Context, emp *models.Employee) (bool, error)
	Delete(ctx context.Context, companyID, id primitive.ObjectID) (bool, error)
	// ClearManager detaches everyone reporting to managerID.
	ClearManager(ctx context.Context, companyID, managerID primitive.ObjectID) error
	CountByDepartment(ctx context.Context, companyID primitive.ObjectID) ([]models.DepartmentCount, error)
	MoveDepartment(ctx context.Context, companyID primitive.ObjectID, from, to string) error
}

type employeeRepository struct {
	collection *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) EmployeeRepository {
	return &employeeRepository{collection: db.Collection(config.UserCollection)}
}

func (r *employeeRepository) Create(ctx context.Context, emp *models.Employee) error {
	now := time.Now()
	emp.ID = primitive.NewObjectID()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, emp); err != nil {
		return wrapWrite("failed to create employee", err)
	}
	return nil
}

func (r *employeeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *employeeRepository) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *employeeRepository) findOne(ctx context.Context, filter bson.M) (*models.Employee, error) {
	var emp models.Employee
	if err := r.collection.FindOne(ctx, filter).Decode(&emp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return &emp, nil
}

func (r *employeeRepository) FindByCompany(ctx context.Context, companyID primitive.ObjectID, role string) ([]models.Employee, error) {
	filter := bson.M{"company_id": companyID}
	if role != "" {
		filter["role"] = role
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer cursor.Close(ctx)

	employees := []models.Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}
	return employees, nil
}

func (r *employeeRepository) CountActive(ctx context.Context, companyID primitive.ObjectID, role string) (int64, error) {
	filter := bson.M{"company_id": companyID, "is_active": true}
	if role != "" {
		filter["role"] = role
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

func (r *employeeRepository) Update(ctx context.Context, emp *models.Employee) (bool, error) {
	emp.UpdatedAt = time.Now()
	filter := bson.M{"_id": emp.ID, "company_id": emp.CompanyID}
	res, err := r.collection.ReplaceOne(ctx, filter, emp)
	if err != nil {
		return false, wrapWrite("failed to update employee", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *employeeRepository) Delete(ctx context.Context, companyID, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "company_id": companyID})
	if err != nil {
		return false, fmt.Errorf("failed to delete employee: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *employeeRepository) ClearManager(ctx context.Context, companyID, managerID primitive.ObjectID) error {
	filter := bson.M{"company_id": companyID, "reports_to": managerID}
	update := bson.M{
		"$unset": bson.M{"reports_to": ""},
		"$set":   bson.M{"updated_at": time.Now()},
	}
	if _, err := r.collection.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to detach reports: %w", err)
	}
	return nil
}

func (r *employeeRepository) MoveDepartment(ctx context.Context, companyID primitive.ObjectID, from, to string) error {
	filter := bson.M{"company_id": companyID, "department": from}
	update := bson.M{"$set": bson.M{"department": to, "updated_at": time.Now()}}
	if _, err := r.collection.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to move department members: %w", err)
	}
	return nil
}

func (r *employeeRepository) CountByDepartment(ctx context.Context, companyID primitive.ObjectID) ([]models.DepartmentCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"company_id": companyID, "is_active": true}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$department"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate departments: %w", err)
	}
	defer cursor.Close(ctx)

	counts := []models.DepartmentCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode department counts: %w", err)
	}
	return counts, nil
}
