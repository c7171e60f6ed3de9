package admin

import "github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"

type CreatePermissionRequest struct {
	Node        string `json:"node" binding:"required"`
	Description string `json:"description"`
}

type PermissionResponse struct {
	ID          uint64 `json:"id"`
	Node        string `json:"node"`
	Description string `json:"description"`
	Builtin     bool   `json:"builtin"`
}

type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Permissions []string `json:"permissions"`
}

// SetRolePermissionsRequest replaces every node the role grants.
type SetRolePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

type RoleResponse struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	RoleID   uint64 `json:"role_id" binding:"required"`
}

// SummaryResponse backs the admin dashboard.
type SummaryResponse struct {
	Products       int              `json:"products"`
	ActiveProducts int              `json:"active_products"`
	Employees      int              `json:"employees"`
	Roles          int              `json:"roles"`
	Orders         int64            `json:"orders"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
}

// BootstrapRequest describes the administrator created on first start.
type BootstrapRequest struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

func toPermissionResponse(def *employee.PermissionDefinition) *PermissionResponse {
	return &PermissionResponse{
		ID:          def.ID,
		Node:        string(def.Node),
		Description: def.Description,
		Builtin:     isBuiltin(def.Node),
	}
}

func toRoleResponse(r *employee.Role) *RoleResponse {
	nodes := r.Permissions().Sorted()
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = string(n)
	}
	return &RoleResponse{ID: r.ID(), Name: r.Name(), Permissions: out}
}
