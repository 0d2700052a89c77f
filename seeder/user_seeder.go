package seeder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/password"
	"staffly/repository"
)

type demoUser struct {
	name       string
	email      string
	role       string
	department string
	// reportsToAdmin puts the user directly under the demo admin.
	reportsToAdmin bool
}

var demoUsers = []demoUser{
	{"Demo Admin", DemoAdmin, models.RoleAdmin, "Management", false},
	{"Sari Wulandari", "sari@staffly.demo", models.RoleEmployee, "Finance", true},
	{"Budi Santoso", "budi@staffly.demo", models.RoleEmployee, "Engineering", true},
	{"Rina Kurnia", "rina@staffly.demo", models.RoleEmployee, "Human Resources", true},
	{"Agus Pratama", "agus@staffly.demo", models.RoleEmployee, "Sales", true},
}

func seedUsers(ctx context.Context, employees repository.EmployeeRepository, company *models.Company, log *zap.Logger) error {
	hashed, err := password.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	var adminID *primitive.ObjectID
	for _, u := range demoUsers {
		existing, err := employees.FindByEmail(ctx, u.email)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
		if existing != nil {
			log.Debug("user exists, skipping", zap.String("email", u.email))
			if u.role == models.RoleAdmin {
				adminID = &existing.ID
			}
			continue
		}

		prefix := "EMP"
		if u.role == models.RoleAdmin {
			prefix = "ADMIN"
		}
		now := time.Now()
		emp := &models.Employee{
			ID:           primitive.NewObjectID(),
			CompanyID:    company.ID,
			Name:         u.name,
			Email:        u.email,
			Password:     hashed,
			Role:         u.role,
			EmployeeCode: demoCode(prefix),
			Department:   u.department,
			JoiningDate:  now,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if u.reportsToAdmin && adminID != nil {
			manager := *adminID
			emp.ReportsTo = &manager
		}
		if err := employees.Create(ctx, emp); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
		if u.role == models.RoleAdmin {
			adminID = &emp.ID
		}
		log.Info("user seeded", zap.String("email", u.email), zap.String("role", u.role))
	}
	return nil
}

func demoCode(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(id[:6])
}
