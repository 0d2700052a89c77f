// Package seeder fills an empty database with a demo company so the API can
// be tried out right after start-up. Every step skips what already exists.
package seeder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"staffly/models"
	"staffly/repository"
)

const (
	DemoCompany  = "Staffly Demo"
	DemoAdmin    = "admin@staffly.demo"
	DemoPassword = "Password123"
)

type Repositories struct {
	Companies   repository.CompanyRepository
	Employees   repository.EmployeeRepository
	Departments repository.DepartmentRepository
}

// SeedDemo creates the demo company, its departments, an admin and a few
// employees, all sharing DemoPassword.
func SeedDemo(ctx context.Context, repos Repositories, log *zap.Logger) error {
	log.Info("seeding demo data")

	company, err := seedCompany(ctx, repos.Companies, log)
	if err != nil {
		return err
	}
	if err := seedDepartments(ctx, repos.Departments, company, log); err != nil {
		return err
	}
	if err := seedUsers(ctx, repos.Employees, company, log); err != nil {
		return err
	}

	log.Info("demo data ready", zap.String("company", company.Name), zap.String("admin", DemoAdmin))
	return nil
}

func seedCompany(ctx context.Context, companies repository.CompanyRepository, log *zap.Logger) (*models.Company, error) {
	existing, err := companies.FindByName(ctx, DemoCompany)
	if err != nil {
		return nil, fmt.Errorf("seed company: %w", err)
	}
	if existing != nil {
		log.Debug("demo company exists, skipping")
		return existing, nil
	}

	now := time.Now()
	company := &models.Company{Name: DemoCompany, CreatedAt: now, UpdatedAt: now}
	if err := companies.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("seed company: %w", err)
	}
	return company, nil
}
