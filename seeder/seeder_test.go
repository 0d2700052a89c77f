package seeder

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/repository"
)

type memCompanies struct {
	repository.CompanyRepository
	byName map[string]*models.Company
}

func (m *memCompanies) FindByName(_ context.Context, name string) (*models.Company, error) {
	return m.byName[name], nil
}

func (m *memCompanies) Create(_ context.Context, c *models.Company) error {
	c.ID = primitive.NewObjectID()
	m.byName[c.Name] = c
	return nil
}

type memEmployees struct {
	repository.EmployeeRepository
	byEmail map[string]*models.Employee
}

func (m *memEmployees) FindByEmail(_ context.Context, email string) (*models.Employee, error) {
	return m.byEmail[email], nil
}

func (m *memEmployees) Create(_ context.Context, e *models.Employee) error {
	m.byEmail[e.Email] = e
	return nil
}

type memDepartments struct {
	repository.DepartmentRepository
	names map[string]bool
}

func (m *memDepartments) Ensure(_ context.Context, _ primitive.ObjectID, name string) error {
	m.names[name] = true
	return nil
}

func TestSeedDemoIsIdempotent(t *testing.T) {
	companies := &memCompanies{byName: map[string]*models.Company{}}
	employees := &memEmployees{byEmail: map[string]*models.Employee{}}
	departments := &memDepartments{names: map[string]bool{}}
	repos := Repositories{Companies: companies, Employees: employees, Departments: departments}

	for i := 0; i < 2; i++ {
		if err := SeedDemo(context.Background(), repos, zap.NewNop()); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}

	if len(companies.byName) != 1 {
		t.Fatalf("companies = %d, want 1", len(companies.byName))
	}
	if len(employees.byEmail) != len(demoUsers) {
		t.Fatalf("employees = %d, want %d", len(employees.byEmail), len(demoUsers))
	}
	if len(departments.names) != len(demoDepartments) {
		t.Fatalf("departments = %d, want %d", len(departments.names), len(demoDepartments))
	}

	admin := employees.byEmail[DemoAdmin]
	if admin.Role != models.RoleAdmin || admin.ReportsTo != nil {
		t.Fatalf("admin = %+v", admin)
	}
	company := companies.byName[DemoCompany]
	for _, emp := range employees.byEmail {
		if emp.CompanyID != company.ID {
			t.Errorf("%s belongs to another company", emp.Email)
		}
		if !emp.IsActive || emp.Password == DemoPassword {
			t.Errorf("%s: active=%v, password stored in clear", emp.Email, emp.IsActive)
		}
		if emp.Role == models.RoleEmployee && (emp.ReportsTo == nil || *emp.ReportsTo != admin.ID) {
			t.Errorf("%s does not report to the admin", emp.Email)
		}
	}
}
