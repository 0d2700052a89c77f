package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CompanyCollection      = "companies"
	UserCollection         = "users"
	AttendanceCollection   = "attendances"
	LeaveRequestCollection = "leave_requests"
	PayrollCollection      = "payrolls"
	QRCodeCollection       = "qr_codes"
	WorkScheduleCollection = "work_schedules"
	DepartmentCollection   = "departments"
	AssetCollection        = "assets"
	CandidateCollection    = "candidates"
	DocumentCollection     = "documents"
	DocumentBucket         = "document_files"
)

func MongoConnect(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("MONGOSTRING is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("Connected to MongoDB!")
	return client, nil
}

func DisconnectDB(client *mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting from MongoDB: %v", err)
		return
	}
	log.Println("Disconnected from MongoDB")
}

// GetGridFSBucket opens the bucket holding document vault file contents.
func GetGridFSBucket(db *mongo.Database) (*gridfs.Bucket, error) {
	return gridfs.NewBucket(db, options.GridFSBucket().SetName(DocumentBucket))
}

type indexSpec struct {
	collection string
	keys       bson.D
	unique     bool
}

// The unique indexes are what make check-in, payroll generation and the
// per-tenant keys race free.
var indexes = []indexSpec{
	{UserCollection, bson.D{{Key: "email", Value: 1}}, true},
	{UserCollection, bson.D{{Key: "company_id", Value: 1}, {Key: "role", Value: 1}}, false},
	{AttendanceCollection, bson.D{{Key: "employee_id", Value: 1}, {Key: "date", Value: 1}}, true},
	{AttendanceCollection, bson.D{{Key: "company_id", Value: 1}, {Key: "date", Value: -1}}, false},
	{LeaveRequestCollection, bson.D{{Key: "employee_id", Value: 1}, {Key: "from_date", Value: 1}}, false},
	{LeaveRequestCollection, bson.D{{Key: "company_id", Value: 1}, {Key: "status", Value: 1}}, false},
	{PayrollCollection, bson.D{{Key: "employee_id", Value: 1}, {Key: "month", Value: 1}}, true},
	{PayrollCollection, bson.D{{Key: "company_id", Value: 1}, {Key: "month", Value: -1}}, false},
	{QRCodeCollection, bson.D{{Key: "code", Value: 1}}, true},
	{QRCodeCollection, bson.D{{Key: "company_id", Value: 1}, {Key: "date", Value: 1}}, true},
	{DepartmentCollection, bson.D{{Key: "company_id", Value: 1}, {Key: "name", Value: 1}}, true},
	{AssetCollection, bson.D{{Key: "company_id", Value: 1}, {Key: "serial_number", Value: 1}}, true},
	{CandidateCollection, bson.D{{Key: "company_id", Value: 1}, {Key: "email", Value: 1}}, true},
	{DocumentCollection, bson.D{{Key: "company_id", Value: 1}, {Key: "owner", Value: 1}}, false},
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, idx := range indexes {
		model := mongo.IndexModel{Keys: idx.keys}
		if idx.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.collection, err)
		}
	}
	return nil
}
