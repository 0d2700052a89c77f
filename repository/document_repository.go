package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staffly/config"
	"staffly/models"
)

// ErrFileNotFound is returned when a document's stored file is missing.
var ErrFileNotFound = errors.New("file not found")

type DocumentRepository interface {
	// Create stores content in GridFS and then the metadata. FileID, ID and
	// timestamps are filled in.
	Create(ctx context.Context, doc *models.Document, content io.Reader) error
	FindByID(ctx context.Context, companyID, id primitive.ObjectID) (*models.Document, error)
	// ListVisible returns the user's own documents and the tenant's public ones.
	ListVisible(ctx context.Context, companyID, userID primitive.ObjectID) ([]models.DocumentWithUploader, error)
	ListByOwner(ctx context.Context, companyID, ownerID primitive.ObjectID) ([]models.DocumentWithUploader, error)
	Open(ctx context.Context, fileID primitive.ObjectID) (io.ReadCloser, error)
	Delete(ctx context.Context, doc *models.Document) error
}

type documentRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) DocumentRepository {
	return &documentRepository{db: db, collection: db.Collection(config.DocumentCollection)}
}

func (r *documentRepository) Create(ctx context.Context, doc *models.Document, content io.Reader) error {
	bucket, err := config.GetGridFSBucket(r.db)
	if err != nil {
		return fmt.Errorf("failed to open file bucket: %w", err)
	}

	opts := options.GridFSUpload().SetMetadata(bson.M{
		"company_id":  doc.CompanyID,
		"owner":       doc.Owner,
		"contentType": doc.FileType,
	})
	fileID, err := bucket.UploadFromStream(doc.FileName, content, opts)
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	now := time.Now()
	doc.ID = primitive.NewObjectID()
	doc.FileID = fileID
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if delErr := bucket.Delete(fileID); delErr != nil {
			return fmt.Errorf("failed to save document (orphaned file %s: %v): %w", fileID.Hex(), delErr, err)
		}
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (r *documentRepository) FindByID(ctx context.Context, companyID, id primitive.ObjectID) (*models.Document, error) {
	var doc models.Document
	if err := r.collection.FindOne(ctx, bson.M{"_id": id, "company_id": companyID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return &doc, nil
}

func (r *documentRepository) ListVisible(ctx context.Context, companyID, userID primitive.ObjectID) ([]models.DocumentWithUploader, error) {
	return r.list(ctx, bson.M{
		"company_id": companyID,
		"$or": bson.A{
			bson.M{"owner": userID},
			bson.M{"uploaded_by": userID},
			bson.M{"is_public": true},
		},
	})
}

func (r *documentRepository) ListByOwner(ctx context.Context, companyID, ownerID primitive.ObjectID) ([]models.DocumentWithUploader, error) {
	return r.list(ctx, bson.M{"company_id": companyID, "owner": ownerID})
}

func (r *documentRepository) list(ctx context.Context, match bson.M) ([]models.DocumentWithUploader, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, append(pipeline, joinEmployee("uploaded_by", "uploader")...))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate documents: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []models.DocumentWithUploader{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}

func (r *documentRepository) Open(ctx context.Context, fileID primitive.ObjectID) (io.ReadCloser, error) {
	bucket, err := config.GetGridFSBucket(r.db)
	if err != nil {
		return nil, fmt.Errorf("failed to open file bucket: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := bucket.SetReadDeadline(deadline); err != nil {
			return nil, fmt.Errorf("failed to set read deadline: %w", err)
		}
	}
	stream, err := bucket.OpenDownloadStream(fileID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return stream, nil
}

func (r *documentRepository) Delete(ctx context.Context, doc *models.Document) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": doc.ID, "company_id": doc.CompanyID}); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	bucket, err := config.GetGridFSBucket(r.db)
	if err != nil {
		return fmt.Errorf("failed to open file bucket: %w", err)
	}
	if err := bucket.Delete(doc.FileID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
