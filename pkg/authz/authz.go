// Package authz answers role questions of the form "may role R perform action
// A on object O" using an in-process casbin enforcer.
package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Objects guarded by role.
const (
	ObjEmployees   = "employees"
	ObjAttendance  = "attendance"
	ObjLeaves      = "leaves"
	ObjPayroll     = "payroll"
	ObjAssets      = "assets"
	ObjDocuments   = "documents"
	ObjCandidates  = "candidates"
	ObjSchedules   = "schedules"
	ObjDepartments = "departments"
)

const (
	ActRead   = "read"
	ActWrite  = "write"
	ActManage = "manage"
)

// defaultPolicy mirrors the original route guards: admins manage everything,
// employees get self-service and the shared boards.
var defaultPolicy = [][]string{
	{"role:admin", "*", "*"},
	{"role:employee", ObjAttendance, ActWrite},
	{"role:employee", ObjAttendance, ActRead},
	{"role:employee", ObjLeaves, ActWrite},
	{"role:employee", ObjLeaves, ActRead},
	{"role:employee", ObjPayroll, ActRead},
	{"role:employee", ObjDocuments, ActRead},
	{"role:employee", ObjDocuments, ActWrite},
	{"role:employee", ObjAssets, ActRead},
	{"role:employee", ObjAssets, ActWrite},
	{"role:employee", ObjCandidates, ActRead},
	{"role:employee", ObjCandidates, ActWrite},
	{"role:employee", ObjSchedules, ActRead},
	{"role:employee", ObjDepartments, ActRead},
}

type Authorizer struct {
	enforcer *casbin.Enforcer
}

func NewAuthorizer() (*Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz: load model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: new enforcer: %w", err)
	}
	if _, err := enforcer.AddPolicies(defaultPolicy); err != nil {
		return nil, fmt.Errorf("authz: add policies: %w", err)
	}
	return &Authorizer{enforcer: enforcer}, nil
}

func SubjectFromRole(role string) string {
	role = strings.TrimSpace(strings.ToLower(role))
	if role == "" {
		role = "anonymous"
	}
	return "role:" + role
}

func (a *Authorizer) Authorize(role, object, action string) (bool, error) {
	return a.enforcer.Enforce(SubjectFromRole(role), object, action)
}
