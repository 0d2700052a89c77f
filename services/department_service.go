package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/repository"
)

type DepartmentService struct {
	departments repository.DepartmentRepository
	employees   repository.EmployeeRepository
}

func NewDepartmentService(departments repository.DepartmentRepository, employees repository.EmployeeRepository) *DepartmentService {
	return &DepartmentService{departments: departments, employees: employees}
}

func (s *DepartmentService) List(ctx context.Context, companyID primitive.ObjectID) ([]models.Department, error) {
	departments, err := s.departments.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, unexpected("failed to list departments", err)
	}
	return departments, nil
}

func (s *DepartmentService) Create(ctx context.Context, companyID primitive.ObjectID, payload *models.DepartmentPayload) (*models.Department, error) {
	d := &models.Department{CompanyID: companyID, Name: strings.TrimSpace(payload.Name)}
	if err := s.departments.Create(ctx, d); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.Conflict("Department name already exists")
		}
		return nil, unexpected("failed to create department", err)
	}
	return d, nil
}

// Rename changes the department name and moves its members along.
func (s *DepartmentService) Rename(ctx context.Context, companyID, id primitive.ObjectID, payload *models.DepartmentPayload) (*models.Department, error) {
	d, err := s.departments.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, unexpected("failed to load department", err)
	}
	if d == nil {
		return nil, apperr.NotFound("Department not found")
	}
	name := strings.TrimSpace(payload.Name)
	if name == d.Name {
		return d, nil
	}

	found, err := s.departments.Rename(ctx, companyID, id, name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.Conflict("Department name already exists")
		}
		return nil, unexpected("failed to rename department", err)
	}
	if !found {
		return nil, apperr.NotFound("Department not found")
	}
	if err := s.employees.MoveDepartment(ctx, companyID, d.Name, name); err != nil {
		return nil, unexpected("failed to move department members", err)
	}
	d.Name = name
	return d, nil
}

// Delete removes a department nobody active belongs to.
func (s *DepartmentService) Delete(ctx context.Context, companyID, id primitive.ObjectID) error {
	d, err := s.departments.FindByID(ctx, companyID, id)
	if err != nil {
		return unexpected("failed to load department", err)
	}
	if d == nil {
		return apperr.NotFound("Department not found")
	}

	counts, err := s.employees.CountByDepartment(ctx, companyID)
	if err != nil {
		return unexpected("failed to count employees", err)
	}
	for _, c := range counts {
		if c.Department == d.Name && c.Count > 0 {
			return apperr.Conflict("Department still has employees")
		}
	}

	if _, err := s.departments.Delete(ctx, companyID, id); err != nil {
		return unexpected("failed to delete department", err)
	}
	return nil
}
