package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QRCode is a per-tenant daily attendance code that employees scan to check
// in or out.
type QRCode struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CompanyID primitive.ObjectID `json:"company_id" bson:"company_id"`
	Code      string             `json:"code" bson:"code"`
	Date      time.Time          `json:"date" bson:"date"`
	ExpiresAt time.Time          `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

type QRCodeScanPayload struct {
	Code string `json:"code" validate:"required,uuid"`
}
