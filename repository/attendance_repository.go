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

type AttendanceRepository interface {
	// Insert fails with ErrDuplicateKey when the employee already has a
	// record for that date.
	Insert(ctx context.Context, a *models.Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID primitive.ObjectID, date time.Time) (*models.Attendance, error)
	// CloseOut sets the check-out of a record that has none yet. It reports
	// false when the record is missing or already closed.
	CloseOut(ctx context.Context, id primitive.ObjectID, checkOut time.Time, workDuration float64) (bool, error)
	// CheckInOverAbsent turns an Absent record without a check-in into a
	// Present one. It reports false when the record no longer qualifies.
	CheckInOverAbsent(ctx context.Context, id primitive.ObjectID, checkIn time.Time) (bool, error)
	ListByEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]models.Attendance, error)
	ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.AttendanceWithEmployee, error)
	CountCheckedIn(ctx context.Context, companyID primitive.ObjectID, date time.Time) (int64, error)
	// RecentForDate returns the day's records, most recently touched first.
	RecentForDate(ctx context.Context, companyID primitive.ObjectID, date time.Time, limit int64) ([]models.AttendanceWithEmployee, error)
}

type attendanceRepository struct {
	collection *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) AttendanceRepository {
	return &attendanceRepository{collection: db.Collection(config.AttendanceCollection)}
}

func (r *attendanceRepository) Insert(ctx context.Context, a *models.Attendance) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, a); err != nil {
		return wrapWrite("failed to insert attendance", err)
	}
	return nil
}

func (r *attendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID primitive.ObjectID, date time.Time) (*models.Attendance, error) {
	var a models.Attendance
	err := r.collection.FindOne(ctx, bson.M{"employee_id": employeeID, "date": date}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance: %w", err)
	}
	return &a, nil
}

func (r *attendanceRepository) CloseOut(ctx context.Context, id primitive.ObjectID, checkOut time.Time, workDuration float64) (bool, error) {
	filter := bson.M{
		"_id":            id,
		"check_in_time":  bson.M{"$exists": true},
		"check_out_time": bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{
		"check_out_time": checkOut,
		"work_duration":  workDuration,
		"updated_at":     checkOut,
	}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to record check-out: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *attendanceRepository) CheckInOverAbsent(ctx context.Context, id primitive.ObjectID, checkIn time.Time) (bool, error) {
	filter := bson.M{
		"_id":           id,
		"status":        models.AttendanceAbsent,
		"check_in_time": bson.M{"$exists": false},
	}
	update := bson.M{
		"$set": bson.M{
			"check_in_time": checkIn,
			"status":        models.AttendancePresent,
			"updated_at":    checkIn,
		},
		"$unset": bson.M{"note": ""},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to record check-in: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]models.Attendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"employee_id": employeeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.Attendance{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance: %w", err)
	}
	return records, nil
}

func (r *attendanceRepository) ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.AttendanceWithEmployee, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"company_id": companyID}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}, {Key: "check_in_time", Value: -1}}}},
	}
	return r.aggregate(ctx, append(pipeline, joinEmployee("employee_id", "employee")...))
}

func (r *attendanceRepository) CountCheckedIn(ctx context.Context, companyID primitive.ObjectID, date time.Time) (int64, error) {
	filter := bson.M{
		"company_id":    companyID,
		"date":          date,
		"check_in_time": bson.M{"$exists": true},
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendance: %w", err)
	}
	return count, nil
}

func (r *attendanceRepository) RecentForDate(ctx context.Context, companyID primitive.ObjectID, date time.Time, limit int64) ([]models.AttendanceWithEmployee, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"company_id": companyID, "date": date}}},
		{{Key: "$sort", Value: bson.D{{Key: "updated_at", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
	return r.aggregate(ctx, append(pipeline, joinEmployee("employee_id", "employee")...))
}

func (r *attendanceRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.AttendanceWithEmployee, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attendance: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.AttendanceWithEmployee{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance: %w", err)
	}
	return records, nil
}
