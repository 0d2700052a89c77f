package services

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"staffly/models"
	"staffly/pkg/apperr"
)

func TestDepartmentLifecycle(t *testing.T) {
	company := primitive.NewObjectID()
	emp := newEmployee(company, "lea", models.RoleEmployee)
	emp.Department = "Sales"
	employees := newFakeEmployees(emp)
	svc := NewDepartmentService(&fakeDepartments{}, employees)
	ctx := context.Background()

	sales, err := svc.Create(ctx, company, &models.DepartmentPayload{Name: "Sales"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = svc.Create(ctx, company, &models.DepartmentPayload{Name: "Sales"})
	wantKind(t, err, apperr.KindConflict)
	ops, _ := svc.Create(ctx, company, &models.DepartmentPayload{Name: "Ops"})

	err = svc.Delete(ctx, company, sales.ID)
	wantKind(t, err, apperr.KindConflict)

	_, err = svc.Rename(ctx, company, sales.ID, &models.DepartmentPayload{Name: "Ops"})
	wantKind(t, err, apperr.KindConflict)

	renamed, err := svc.Rename(ctx, company, sales.ID, &models.DepartmentPayload{Name: "Revenue"})
	if err != nil || renamed.Name != "Revenue" {
		t.Fatalf("Rename = %+v, %v", renamed, err)
	}
	if got, _ := employees.FindByID(ctx, emp.ID); got.Department != "Revenue" {
		t.Fatalf("member department = %q", got.Department)
	}

	if err := svc.Delete(ctx, company, ops.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	err = svc.Delete(ctx, primitive.NewObjectID(), sales.ID)
	wantKind(t, err, apperr.KindNotFound)
}
