package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkSchedule marks the days a tenant expects attendance. Date is the first
// day; RecurrenceRule, when set, is an RFC 5545 RRULE repeating from Date.
type WorkSchedule struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CompanyID      primitive.ObjectID `json:"company_id" bson:"company_id"`
	Date           string             `json:"date" bson:"date"`
	StartTime      string             `json:"start_time" bson:"start_time"`
	EndTime        string             `json:"end_time" bson:"end_time"`
	Note           string             `json:"note,omitempty" bson:"note,omitempty"`
	RecurrenceRule string             `json:"recurrence_rule,omitempty" bson:"recurrence_rule,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

type WorkSchedulePayload struct {
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime        string `json:"end_time" validate:"required,datetime=15:04"`
	Note           string `json:"note"`
	RecurrenceRule string `json:"recurrence_rule,omitempty"`
}

// ScheduledDay is one concrete occurrence of a schedule.
type ScheduledDay struct {
	ScheduleID primitive.ObjectID `json:"schedule_id"`
	Date       string             `json:"date"`
	StartTime  string             `json:"start_time"`
	EndTime    string             `json:"end_time"`
	Note       string             `json:"note,omitempty"`
}
