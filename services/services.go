// Package services holds the business rules of the HR ledger. Handlers call
// into it; it talks to storage only through repository interfaces.
package services

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/pkg/realtime"
)

// Notifier sends mail about domain events. Implementations must not block
// the caller on delivery.
type Notifier interface {
	Welcome(emp *models.Employee)
	NewLeaveRequest(admin, emp *models.Employee, leave *models.LeaveRequest)
	LeaveStatusUpdated(emp *models.Employee, leave *models.LeaveRequest)
	PayrollGenerated(emp *models.Employee, p *models.Payroll)
	PayrollPaid(emp *models.Employee, p *models.Payroll)
}

// Publisher pushes realtime events to connected clients.
type Publisher interface {
	ToUser(userID string, ev realtime.Event)
	ToAdmins(companyID string, ev realtime.Event)
}

// Clock is the time source, in the configured location.
type Clock struct {
	Loc *time.Location
	Now func() time.Time
}

func NewClock(loc *time.Location) Clock {
	return Clock{Loc: loc, Now: time.Now}
}

func (c Clock) now() time.Time {
	return c.Now().In(c.Loc)
}

func parseID(hex, field string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("Invalid " + field + " format")
	}
	return id, nil
}

func unexpected(msg string, err error) error {
	return apperr.Unexpected(msg, err)
}
