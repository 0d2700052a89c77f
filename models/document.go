package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is the metadata of a file whose bytes live in GridFS under FileID.
type Document struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CompanyID   primitive.ObjectID `json:"company_id" bson:"company_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	FileID      primitive.ObjectID `json:"file_id" bson:"file_id"`
	FileName    string             `json:"file_name" bson:"file_name"`
	FileType    string             `json:"file_type" bson:"file_type"`
	FileSize    int64              `json:"file_size" bson:"file_size"`
	UploadedBy  primitive.ObjectID `json:"uploaded_by" bson:"uploaded_by"`
	Owner       primitive.ObjectID `json:"owner" bson:"owner"`
	IsPublic    bool               `json:"is_public" bson:"is_public"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

type DocumentWithUploader struct {
	Document `bson:",inline"`
	Uploader EmployeeRef `json:"uploader" bson:"uploader"`
}
