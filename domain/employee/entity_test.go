package employee

import (
	"errors"
	"testing"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

func TestParsePermission(t *testing.T) {
	tests := []struct {
		in      string
		want    Permission
		wantErr bool
	}{
		{"PERMISSION_CREATE", PermPermissionCreate, false},
		{" ORDER_VIEW ", PermOrderView, false},
		{"order_view", "", true},
		{"1ORDER", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePermission(tt.in)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidInput) {
					t.Fatalf("err = %v, want invalid input", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ParsePermission(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}

func TestProfileResolvesRolePermissions(t *testing.T) {
	role, err := NewRole("catalogue", PermProductView, PermProductCreate)
	if err != nil {
		t.Fatal(err)
	}
	role.AssignID(3)
	emp, err := NewEmployee("Bob", "bob@shop.local", "hash", role.ID())
	if err != nil {
		t.Fatal(err)
	}

	p := NewProfile(emp, role)
	if !p.Permissions.Has(PermProductCreate) {
		t.Error("profile should hold PRODUCT_CREATE")
	}
	if p.Permissions.Has(PermProductDelete) {
		t.Error("profile must not hold PRODUCT_DELETE")
	}

	// the profile keeps its own copy
	role.Revoke(PermProductCreate)
	if !p.Permissions.Has(PermProductCreate) {
		t.Error("revoking on the role must not mutate an already resolved profile")
	}
}

func TestNewEmployeeRequiresRole(t *testing.T) {
	if _, err := NewEmployee("Bob", "bob@shop.local", "hash", 0); !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}
