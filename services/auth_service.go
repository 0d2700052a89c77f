package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/pkg/password"
	"staffly/repository"
)

const ManagementDepartment = "Management"

type AuthService struct {
	companies   repository.CompanyRepository
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	notifier    Notifier
	clock       Clock
	log         *zap.Logger
}

func NewAuthService(
	companies repository.CompanyRepository,
	employees repository.EmployeeRepository,
	departments repository.DepartmentRepository,
	notifier Notifier,
	clock Clock,
	log *zap.Logger,
) *AuthService {
	return &AuthService{companies: companies, employees: employees, departments: departments, notifier: notifier, clock: clock, log: log}
}

// Register creates a company together with its first admin.
func (s *AuthService) Register(ctx context.Context, payload *models.RegisterPayload) (*models.Employee, error) {
	email := normalizeEmail(payload.Email)
	existing, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		return nil, unexpected("failed to check email", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("User already exists")
	}

	hashed, err := password.HashPassword(payload.Password)
	if err != nil {
		return nil, unexpected("failed to hash password", err)
	}

	company := &models.Company{Name: strings.TrimSpace(payload.CompanyName)}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, unexpected("failed to create company", err)
	}

	admin := &models.Employee{
		CompanyID:    company.ID,
		Name:         strings.TrimSpace(payload.Name),
		Email:        email,
		Password:     hashed,
		Role:         models.RoleAdmin,
		EmployeeCode: newEmployeeCode("ADMIN"),
		Department:   ManagementDepartment,
		JoiningDate:  s.clock.now(),
		IsActive:     true,
	}
	if err := s.employees.Create(ctx, admin); err != nil {
		if delErr := s.companies.Delete(ctx, company.ID); delErr != nil {
			s.log.Error("failed to roll back company", zap.String("company_id", company.ID.Hex()), zap.Error(delErr))
		}
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, unexpected("failed to create admin", err)
	}
	if err := s.departments.Ensure(ctx, company.ID, ManagementDepartment); err != nil {
		s.log.Warn("failed to create default department", zap.String("company_id", company.ID.Hex()), zap.Error(err))
	}

	s.notifier.Welcome(admin)
	return admin, nil
}

func (s *AuthService) Login(ctx context.Context, payload *models.LoginPayload) (*models.Employee, error) {
	emp, err := s.employees.FindByEmail(ctx, normalizeEmail(payload.Email))
	if err != nil {
		return nil, unexpected("failed to load user", err)
	}
	if emp == nil || !password.CheckPasswordHash(payload.Password, emp.Password) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	if !emp.IsActive {
		return nil, apperr.Unauthorized("Your account has been deactivated")
	}
	return emp, nil
}

func (s *AuthService) Me(ctx context.Context, claims *models.Claims) (*models.Employee, error) {
	emp, err := s.employees.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, unexpected("failed to load user", err)
	}
	if emp == nil {
		return nil, apperr.NotFound("User not found")
	}
	return emp, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
