package authz

import "testing"

func TestAuthorize(t *testing.T) {
	a, err := NewAuthorizer()
	if err != nil {
		t.Fatalf("NewAuthorizer: %v", err)
	}

	cases := []struct {
		role, obj, act string
		want           bool
	}{
		{"admin", ObjPayroll, ActManage, true},
		{"admin", ObjEmployees, ActWrite, true},
		{"employee", ObjPayroll, ActRead, true},
		{"employee", ObjPayroll, ActManage, false},
		{"employee", ObjEmployees, ActRead, false},
		{"employee", ObjAttendance, ActWrite, true},
		{"employee", ObjLeaves, ActManage, false},
		{"", ObjAttendance, ActRead, false},
		{"ADMIN", ObjLeaves, ActManage, true},
		{"employee", ObjDepartments, ActRead, true},
		{"employee", ObjDepartments, ActManage, false},
	}
	for _, tc := range cases {
		got, err := a.Authorize(tc.role, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("Authorize(%q,%q,%q): %v", tc.role, tc.obj, tc.act, err)
		}
		if got != tc.want {
			t.Errorf("Authorize(%q,%q,%q) = %v, want %v", tc.role, tc.obj, tc.act, got, tc.want)
		}
	}
}
