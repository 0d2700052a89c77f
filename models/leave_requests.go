package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LeaveCasual = "casual"
	LeaveSick   = "sick"
	LeavePaid   = "paid"
)

const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

type LeaveRequest struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID primitive.ObjectID `json:"employee_id" bson:"employee_id"`
	CompanyID  primitive.ObjectID `json:"company_id" bson:"company_id"`
	Type       string             `json:"type" bson:"type"`
	FromDate   time.Time          `json:"from_date" bson:"from_date"`
	ToDate     time.Time          `json:"to_date" bson:"to_date"`
	Reason     string             `json:"reason" bson:"reason"`
	Status     string             `json:"status" bson:"status"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

type LeaveRequestWithEmployee struct {
	LeaveRequest `bson:",inline"`
	Employee     EmployeeRef `json:"employee" bson:"employee"`
}

type LeaveRequestCreatePayload struct {
	Type     string `json:"type" validate:"required,oneof=casual sick paid"`
	FromDate string `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate   string `json:"to_date" validate:"required,datetime=2006-01-02"`
	Reason   string `json:"reason" validate:"required,min=3,max=500"`
}

type LeaveRequestUpdatePayload struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// LeaveDays holds a day count per leave category.
type LeaveDays struct {
	Casual int `json:"casual" yaml:"casual"`
	Sick   int `json:"sick" yaml:"sick"`
	Paid   int `json:"paid" yaml:"paid"`
}

type LeaveBalance struct {
	Year   int       `json:"year"`
	Casual int       `json:"casual"`
	Sick   int       `json:"sick"`
	Paid   int       `json:"paid"`
	Used   LeaveDays `json:"used"`
}
