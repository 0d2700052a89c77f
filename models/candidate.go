package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kanban columns, in board order.
var CandidateStages = []string{"Applied", "Screening", "Interview", "Offer", "Hired", "Rejected"}

type Candidate struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CompanyID primitive.ObjectID `json:"company_id" bson:"company_id"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Phone     string             `json:"phone" bson:"phone"`
	Position  string             `json:"position" bson:"position"`
	Status    string             `json:"status" bson:"status"`
	ResumeURL string             `json:"resume_url,omitempty" bson:"resume_url,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

type CandidateCreatePayload struct {
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,max=30"`
	Position  string `json:"position" validate:"required,max=100"`
	ResumeURL string `json:"resume_url" validate:"omitempty,url"`
}

type CandidateStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=Applied Screening Interview Offer Hired Rejected"`
}
