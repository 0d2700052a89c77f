package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type Company struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

type Employee struct {
	ID           primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	CompanyID    primitive.ObjectID  `json:"company_id" bson:"company_id"`
	Name         string              `json:"name" bson:"name"`
	Email        string              `json:"email" bson:"email"`
	Password     string              `json:"-" bson:"password"`
	Role         string              `json:"role" bson:"role"`
	EmployeeCode string              `json:"employee_code" bson:"employee_code"`
	Department   string              `json:"department" bson:"department,omitempty"`
	JoiningDate  time.Time           `json:"joining_date" bson:"joining_date"`
	IsActive     bool                `json:"is_active" bson:"is_active"`
	ReportsTo    *primitive.ObjectID `json:"reports_to,omitempty" bson:"reports_to,omitempty"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" bson:"updated_at"`
}

// EmployeeRef is the slice of an employee joined into ledger listings.
type EmployeeRef struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email,omitempty" bson:"email,omitempty"`
	EmployeeCode string             `json:"employee_code,omitempty" bson:"employee_code,omitempty"`
	Department   string             `json:"department,omitempty" bson:"department,omitempty"`
}

type Claims struct {
	UserID    primitive.ObjectID `json:"user_id"`
	CompanyID primitive.ObjectID `json:"company_id"`
	Email     string             `json:"email"`
	Role      string             `json:"role"`
}

func (c *Claims) IsAdmin() bool { return c != nil && c.Role == RoleAdmin }

type RegisterPayload struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=50,hasuppercase"`
	CompanyName string `json:"company_name" validate:"required,min=2,max=100"`
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type EmployeeCreatePayload struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=50,hasuppercase"`
	Department  string `json:"department" validate:"omitempty,max=100"`
	JoiningDate string `json:"joining_date" validate:"omitempty,datetime=2006-01-02"`
	ReportsTo   string `json:"reports_to" validate:"omitempty,len=24,hexadecimal"`
}

type EmployeeUpdatePayload struct {
	Name       string     `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Email      string     `json:"email,omitempty" validate:"omitempty,email"`
	Department string     `json:"department,omitempty" validate:"omitempty,max=100"`
	Role       string     `json:"role,omitempty" validate:"omitempty,oneof=admin employee"`
	IsActive   *bool      `json:"is_active,omitempty"`
	ReportsTo  OptionalID `json:"reports_to"`
}

// OrgNode is one employee in the organization chart with their direct reports.
type OrgNode struct {
	Employee EmployeeRef `json:"employee"`
	Children []*OrgNode  `json:"children"`
}

type DepartmentCount struct {
	Department string `bson:"_id" json:"department"`
	Count      int64  `bson:"count" json:"count"`
}
