package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PayrollPending = "pending"
	PayrollPaid    = "paid"
)

// Payroll is keyed by (employee_id, month). NetPay is fixed at generation.
type Payroll struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID primitive.ObjectID `json:"employee_id" bson:"employee_id"`
	CompanyID  primitive.ObjectID `json:"company_id" bson:"company_id"`
	Month      string             `json:"month" bson:"month"`
	BaseSalary float64            `json:"base_salary" bson:"base_salary"`
	Deductions float64            `json:"deductions" bson:"deductions"`
	NetPay     float64            `json:"net_pay" bson:"net_pay"`
	Status     string             `json:"status" bson:"status"`
	PaidAt     *time.Time         `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

type PayrollWithEmployee struct {
	Payroll  `bson:",inline"`
	Employee EmployeeRef `json:"employee" bson:"employee"`
}

type PayrollGeneratePayload struct {
	EmployeeID string   `json:"employee_id" validate:"required,len=24,hexadecimal"`
	Month      string   `json:"month" validate:"required,yearmonth"`
	BaseSalary *float64 `json:"base_salary" validate:"required"`
	Deductions *float64 `json:"deductions,omitempty"`
}

// FormatMoney renders an amount with two decimals.
func FormatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
