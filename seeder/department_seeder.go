package seeder

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
)

var demoDepartments = []string{
	"Management",
	"Finance",
	"Human Resources",
	"Engineering",
	"Marketing",
	"Sales",
	"Customer Support",
}

type departmentEnsurer interface {
	Ensure(ctx context.Context, companyID primitive.ObjectID, name string) error
}

func seedDepartments(ctx context.Context, departments departmentEnsurer, company *models.Company, log *zap.Logger) error {
	for _, name := range demoDepartments {
		if err := departments.Ensure(ctx, company.ID, name); err != nil {
			return fmt.Errorf("seed department %q: %w", name, err)
		}
	}
	log.Debug("departments seeded", zap.Int("count", len(demoDepartments)))
	return nil
}
