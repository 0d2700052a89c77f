package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AssetAvailable = "Available"
	AssetAssigned  = "Assigned"
	AssetBroken    = "Broken"
	AssetLost      = "Lost"
)

type Asset struct {
	ID           primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	CompanyID    primitive.ObjectID  `json:"company_id" bson:"company_id"`
	Name         string              `json:"name" bson:"name"`
	Type         string              `json:"type" bson:"type"`
	SerialNumber string              `json:"serial_number" bson:"serial_number"`
	Status       string              `json:"status" bson:"status"`
	AssignedTo   *primitive.ObjectID `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	PurchaseDate time.Time           `json:"purchase_date" bson:"purchase_date"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" bson:"updated_at"`
}

type AssetWithAssignee struct {
	Asset    `bson:",inline"`
	Assignee *EmployeeRef `json:"assignee,omitempty" bson:"assignee,omitempty"`
}

type AssetCreatePayload struct {
	Name         string `json:"name" validate:"required,max=100"`
	Type         string `json:"type" validate:"required,max=50"`
	SerialNumber string `json:"serial_number" validate:"required,max=100"`
	PurchaseDate string `json:"purchase_date" validate:"required,datetime=2006-01-02"`
}

type AssetUpdatePayload struct {
	Name         string     `json:"name,omitempty" validate:"omitempty,max=100"`
	Type         string     `json:"type,omitempty" validate:"omitempty,max=50"`
	SerialNumber string     `json:"serial_number,omitempty" validate:"omitempty,max=100"`
	Status       string     `json:"status,omitempty" validate:"omitempty,oneof=Available Assigned Broken Lost"`
	AssignedTo   OptionalID `json:"assigned_to"`
}
