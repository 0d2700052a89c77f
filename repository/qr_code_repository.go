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

type QRCodeRepository interface {
	// Create fails with ErrDuplicateKey when the tenant already has a code
	// for that date.
	Create(ctx context.Context, qr *models.QRCode) error
	FindByCode(ctx context.Context, code string) (*models.QRCode, error)
	FindByCompanyAndDate(ctx context.Context, companyID primitive.ObjectID, date time.Time) (*models.QRCode, error)
}

type qrCodeRepository struct {
	collection *mongo.Collection
}

func NewQRCodeRepository(db *mongo.Database) QRCodeRepository {
	return &qrCodeRepository{collection: db.Collection(config.QRCodeCollection)}
}

func (r *qrCodeRepository) Create(ctx context.Context, qr *models.QRCode) error {
	qr.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, qr); err != nil {
		return wrapWrite("failed to create QR code", err)
	}
	return nil
}

func (r *qrCodeRepository) FindByCode(ctx context.Context, code string) (*models.QRCode, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *qrCodeRepository) FindByCompanyAndDate(ctx context.Context, companyID primitive.ObjectID, date time.Time) (*models.QRCode, error) {
	return r.findOne(ctx, bson.M{"company_id": companyID, "date": date})
}

func (r *qrCodeRepository) findOne(ctx context.Context, filter bson.M) (*models.QRCode, error) {
	var qr models.QRCode
	if err := r.collection.FindOne(ctx, filter).Decode(&qr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find QR code: %w", err)
	}
	return &qr, nil
}
