package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/pkg/password"
	"staffly/pkg/period"
	"staffly/repository"
)

type EmployeeService struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	assets      repository.AssetRepository
	notifier    Notifier
	clock       Clock
	log         *zap.Logger
}

func NewEmployeeService(
	employees repository.EmployeeRepository,
	departments repository.DepartmentRepository,
	assets repository.AssetRepository,
	notifier Notifier,
	clock Clock,
	log *zap.Logger,
) *EmployeeService {
	return &EmployeeService{employees: employees, departments: departments, assets: assets, notifier: notifier, clock: clock, log: log}
}

// newEmployeeCode returns prefix-XXXXXX. Codes are labels, not keys.
func newEmployeeCode(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(id[:6])
}

func (s *EmployeeService) List(ctx context.Context, companyID primitive.ObjectID) ([]models.Employee, error) {
	employees, err := s.employees.FindByCompany(ctx, companyID, models.RoleEmployee)
	if err != nil {
		return nil, unexpected("failed to list employees", err)
	}
	return employees, nil
}

func (s *EmployeeService) Create(ctx context.Context, claims *models.Claims, payload *models.EmployeeCreatePayload) (*models.Employee, error) {
	email := normalizeEmail(payload.Email)
	existing, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		return nil, unexpected("failed to check email", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("User already exists")
	}

	joining := s.clock.now()
	if payload.JoiningDate != "" {
		if joining, err = period.ParseDate(payload.JoiningDate, s.clock.Loc); err != nil {
			return nil, apperr.Validation("Invalid joining_date format, use YYYY-MM-DD")
		}
	}

	var manager *primitive.ObjectID
	if payload.ReportsTo != "" {
		id, err := parseID(payload.ReportsTo, "reports_to")
		if err != nil {
			return nil, err
		}
		if err := s.checkManagerInTenant(ctx, claims.CompanyID, id); err != nil {
			return nil, err
		}
		manager = &id
	}

	hashed, err := password.HashPassword(payload.Password)
	if err != nil {
		return nil, unexpected("failed to hash password", err)
	}

	emp := &models.Employee{
		CompanyID:    claims.CompanyID,
		Name:         strings.TrimSpace(payload.Name),
		Email:        email,
		Password:     hashed,
		Role:         models.RoleEmployee,
		EmployeeCode: newEmployeeCode("EMP"),
		Department:   strings.TrimSpace(payload.Department),
		JoiningDate:  joining,
		IsActive:     true,
		ReportsTo:    manager,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, unexpected("failed to create employee", err)
	}
	s.ensureDepartment(ctx, emp)

	s.notifier.Welcome(emp)
	return emp, nil
}

func (s *EmployeeService) Update(ctx context.Context, claims *models.Claims, id primitive.ObjectID, payload *models.EmployeeUpdatePayload) (*models.Employee, error) {
	emp, err := s.findInTenant(ctx, claims.CompanyID, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != "" {
		emp.Name = strings.TrimSpace(payload.Name)
	}
	if payload.Email != "" {
		emp.Email = normalizeEmail(payload.Email)
	}
	if payload.Department != "" {
		emp.Department = strings.TrimSpace(payload.Department)
	}
	if payload.Role != "" {
		emp.Role = payload.Role
	}
	if payload.IsActive != nil {
		emp.IsActive = *payload.IsActive
	}
	if payload.ReportsTo.Present {
		if payload.ReportsTo.Clear {
			emp.ReportsTo = nil
		} else {
			if err := s.checkReportingLine(ctx, emp, payload.ReportsTo.ID); err != nil {
				return nil, err
			}
			managerID := payload.ReportsTo.ID
			emp.ReportsTo = &managerID
		}
	}
	if emp.ID == claims.UserID && (emp.Role != models.RoleAdmin || !emp.IsActive) {
		return nil, apperr.InvalidState("You cannot demote or deactivate your own account")
	}

	found, err := s.employees.Update(ctx, emp)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.Conflict("Email is already in use")
		}
		return nil, unexpected("failed to update employee", err)
	}
	if !found {
		return nil, apperr.NotFound("User not found")
	}
	s.ensureDepartment(ctx, emp)
	return emp, nil
}

func (s *EmployeeService) Delete(ctx context.Context, claims *models.Claims, id primitive.ObjectID) error {
	if id == claims.UserID {
		return apperr.InvalidState("You cannot delete your own account")
	}
	deleted, err := s.employees.Delete(ctx, claims.CompanyID, id)
	if err != nil {
		return unexpected("failed to delete employee", err)
	}
	if !deleted {
		return apperr.NotFound("User not found")
	}

	if err := s.employees.ClearManager(ctx, claims.CompanyID, id); err != nil {
		s.log.Error("failed to detach direct reports", zap.String("employee_id", id.Hex()), zap.Error(err))
	}
	if err := s.assets.ReleaseFrom(ctx, claims.CompanyID, id); err != nil {
		s.log.Error("failed to release assets", zap.String("employee_id", id.Hex()), zap.Error(err))
	}
	return nil
}

// OrgChart returns the tenant's reporting forest, admins included.
func (s *EmployeeService) OrgChart(ctx context.Context, companyID primitive.ObjectID) ([]*models.OrgNode, error) {
	employees, err := s.employees.FindByCompany(ctx, companyID, "")
	if err != nil {
		return nil, unexpected("failed to load employees", err)
	}
	return BuildOrgChart(employees), nil
}

func (s *EmployeeService) DepartmentStats(ctx context.Context, companyID primitive.ObjectID) ([]models.DepartmentCount, error) {
	counts, err := s.employees.CountByDepartment(ctx, companyID)
	if err != nil {
		return nil, unexpected("failed to count departments", err)
	}
	return counts, nil
}

func (s *EmployeeService) findInTenant(ctx context.Context, companyID, id primitive.ObjectID) (*models.Employee, error) {
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, unexpected("failed to load employee", err)
	}
	if emp == nil || emp.CompanyID != companyID {
		return nil, apperr.NotFound("User not found")
	}
	return emp, nil
}

func (s *EmployeeService) checkManagerInTenant(ctx context.Context, companyID, managerID primitive.ObjectID) error {
	manager, err := s.employees.FindByID(ctx, managerID)
	if err != nil {
		return unexpected("failed to load manager", err)
	}
	if manager == nil || manager.CompanyID != companyID {
		return apperr.Validation("reports_to must reference an employee of your company")
	}
	return nil
}

// checkReportingLine rejects a manager outside the tenant and any edge that
// would make emp its own indirect manager.
func (s *EmployeeService) checkReportingLine(ctx context.Context, emp *models.Employee, managerID primitive.ObjectID) error {
	if managerID == emp.ID {
		return apperr.Validation("An employee cannot report to themselves")
	}
	if err := s.checkManagerInTenant(ctx, emp.CompanyID, managerID); err != nil {
		return err
	}

	colleagues, err := s.employees.FindByCompany(ctx, emp.CompanyID, "")
	if err != nil {
		return unexpected("failed to load employees", err)
	}
	managerOf := make(map[primitive.ObjectID]primitive.ObjectID, len(colleagues))
	for _, c := range colleagues {
		if c.ReportsTo != nil {
			managerOf[c.ID] = *c.ReportsTo
		}
	}
	if createsCycle(managerOf, emp.ID, managerID) {
		return apperr.Validation("This reporting line would create a cycle")
	}
	return nil
}

// createsCycle reports whether pointing node at manager closes a loop in the
// manager graph.
func createsCycle(managerOf map[primitive.ObjectID]primitive.ObjectID, node, manager primitive.ObjectID) bool {
	seen := map[primitive.ObjectID]bool{}
	for cur := manager; ; {
		if cur == node {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		next, ok := managerOf[cur]
		if !ok {
			return false
		}
		cur = next
	}
}

func (s *EmployeeService) ensureDepartment(ctx context.Context, emp *models.Employee) {
	if emp.Department == "" {
		return
	}
	if err := s.departments.Ensure(ctx, emp.CompanyID, emp.Department); err != nil {
		s.log.Warn("failed to register department", zap.String("department", emp.Department), zap.Error(err))
	}
}
