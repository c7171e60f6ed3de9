package access

import (
	"net/http"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
)

// DefaultPolicyConfig is the shop's route table. loginURL and logoutPath come from configuration.
func DefaultPolicyConfig(loginURL, logoutPath string) PolicyConfig {
	return PolicyConfig{
		Bypass: []Route{
			{http.MethodGet, "/"},
			{http.MethodGet, "/login"},
			{http.MethodGet, "/register"},
			{http.MethodPost, "/api/customer/register"},
			{http.MethodPost, "/api/customer/login"},
			{http.MethodPost, "/api/employee/login"},
			{http.MethodGet, "/api/products"},
			{http.MethodGet, "/api/v1/health"},
			{http.MethodGet, "/api/v1/health/live"},
			{http.MethodGet, "/api/v1/health/ready"},
		},
		Permissions: map[Route]employee.Permission{
			{http.MethodGet, "/employee/product/"}:       employee.PermProductView,
			{http.MethodPost, "/employee/product/"}:      employee.PermProductCreate,
			{http.MethodPut, "/employee/product/"}:       employee.PermProductUpdate,
			{http.MethodPatch, "/employee/product/"}:     employee.PermProductUpdate,
			{http.MethodDelete, "/employee/product/"}:    employee.PermProductDelete,
			{http.MethodGet, "/employee/order/"}:         employee.PermOrderView,
			{http.MethodPut, "/employee/order/"}:         employee.PermOrderUpdate,
			{http.MethodGet, "/employee/permission/"}:    employee.PermPermissionView,
			{http.MethodPost, "/employee/permission/"}:   employee.PermPermissionCreate,
			{http.MethodDelete, "/employee/permission/"}: employee.PermPermissionDelete,
			{http.MethodGet, "/employee/role/"}:          employee.PermRoleView,
			{http.MethodPost, "/employee/role/"}:         employee.PermRoleCreate,
			{http.MethodPut, "/employee/role/"}:          employee.PermRoleUpdate,
			{http.MethodGet, "/employee/staff/"}:         employee.PermEmployeeView,
			{http.MethodPost, "/employee/staff/"}:        employee.PermEmployeeCreate,
			{http.MethodGet, "/api/admin/summary"}:       employee.PermAdminDashboard,
		},
		EmployeePrefixes: []string{"/employee/", "/api/employee/"},
		AdminMarker:      "/admin",
		APIPrefix:        "/api/",
		LoginURL:         loginURL,
		LogoutPath:       logoutPath,
	}
}

// DefaultPolicy builds the shop's immutable policy.
func DefaultPolicy(loginURL, logoutPath string) *Policy {
	return NewPolicy(DefaultPolicyConfig(loginURL, logoutPath))
}
