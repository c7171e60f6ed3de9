/*
Package employee models staff accounts, roles and the permission nodes that
roles grant. Permission nodes are plain upper-case tags checked by exact match.
*/
package employee

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

// Permission is an atomic capability tag such as PERMISSION_CREATE.
type Permission string

const (
	PermProductView      Permission = "PRODUCT_VIEW"
	PermProductCreate    Permission = "PRODUCT_CREATE"
	PermProductUpdate    Permission = "PRODUCT_UPDATE"
	PermProductDelete    Permission = "PRODUCT_DELETE"
	PermOrderView        Permission = "ORDER_VIEW"
	PermOrderUpdate      Permission = "ORDER_UPDATE"
	PermPermissionView   Permission = "PERMISSION_VIEW"
	PermPermissionCreate Permission = "PERMISSION_CREATE"
	PermPermissionDelete Permission = "PERMISSION_DELETE"
	PermRoleView         Permission = "ROLE_VIEW"
	PermRoleCreate       Permission = "ROLE_CREATE"
	PermRoleUpdate       Permission = "ROLE_UPDATE"
	PermEmployeeView     Permission = "EMPLOYEE_VIEW"
	PermEmployeeCreate   Permission = "EMPLOYEE_CREATE"
	PermAdminDashboard   Permission = "ADMIN_DASHBOARD"
)

// BuiltinPermissions lists every node the router checks; seeding grants all of them to the admin role.
func BuiltinPermissions() []Permission {
	return []Permission{
		PermProductView, PermProductCreate, PermProductUpdate, PermProductDelete,
		PermOrderView, PermOrderUpdate,
		PermPermissionView, PermPermissionCreate, PermPermissionDelete,
		PermRoleView, PermRoleCreate, PermRoleUpdate,
		PermEmployeeView, PermEmployeeCreate,
		PermAdminDashboard,
	}
}

var nodeRegex = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

func ParsePermission(node string) (Permission, error) {
	node = strings.TrimSpace(node)
	if !nodeRegex.MatchString(node) {
		return "", shared.NewValidationError("permission", "node", "permission node must match "+nodeRegex.String())
	}
	return Permission(node), nil
}

// PermissionSet is the immutable set of nodes an employee holds for one request.
type PermissionSet map[Permission]struct{}

func NewPermissionSet(nodes ...Permission) PermissionSet {
	set := make(PermissionSet, len(nodes))
	for _, n := range nodes {
		set[n] = struct{}{}
	}
	return set
}

func (s PermissionSet) Has(node Permission) bool {
	_, ok := s[node]
	return ok
}

// Sorted returns the nodes in lexical order.
func (s PermissionSet) Sorted() []Permission {
	out := make([]Permission, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PermissionDefinition is a registered node with a numeric id for the admin API.
type PermissionDefinition struct {
	ID          uint64
	Node        Permission
	Description string
}
