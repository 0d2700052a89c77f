package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceHalfDay = "Half-day"
)

// Attendance is keyed by (employee_id, date); date is always a start-of-day
// instant.
type Attendance struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID   primitive.ObjectID `json:"employee_id" bson:"employee_id"`
	CompanyID    primitive.ObjectID `json:"company_id" bson:"company_id"`
	Date         time.Time          `json:"date" bson:"date"`
	CheckInTime  *time.Time         `json:"check_in_time,omitempty" bson:"check_in_time,omitempty"`
	CheckOutTime *time.Time         `json:"check_out_time,omitempty" bson:"check_out_time,omitempty"`
	Status       string             `json:"status" bson:"status"`
	WorkDuration float64            `json:"work_duration" bson:"work_duration"`
	Note         string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

type AttendanceWithEmployee struct {
	Attendance `bson:",inline"`
	Employee   EmployeeRef `json:"employee" bson:"employee"`
}

type TeamStatus struct {
	TotalEmployees int64 `json:"total_employees"`
	InOffice       int64 `json:"in_office"`
	OnLeave        int64 `json:"on_leave"`
	PendingLeaves  int64 `json:"pending_leaves"`
}
