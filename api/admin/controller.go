/*
Package admin is the staff administration surface: permissions, roles, staff
accounts and the dashboard summary. Every route sits behind an employee
permission check.
*/
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/ctxutil"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/response"
	adminapp "github.com/Fubuki233/WebAppDev-Ca-sub001/application/admin"
)

type Controller struct {
	adminService *adminapp.Service
}

func NewController(adminService *adminapp.Service) *Controller {
	return &Controller{adminService: adminService}
}

func (c *Controller) RegisterRoutes(router gin.IRouter) {
	permissions := router.Group("/employee/permission")
	{
		permissions.GET("/", c.ListPermissions)
		permissions.POST("/", c.CreatePermission)
		permissions.DELETE("/:id", c.DeletePermission)
	}

	roles := router.Group("/employee/role")
	{
		roles.GET("/", c.ListRoles)
		roles.POST("/", c.CreateRole)
		roles.PUT("/:id", c.SetRolePermissions)
	}

	staff := router.Group("/employee/staff")
	{
		staff.GET("/", c.ListEmployees)
		staff.POST("/", c.CreateEmployee)
	}

	router.GET("/api/admin/summary", c.Summary)
}

// ListPermissions GET /employee/permission/
func (c *Controller) ListPermissions(ctx *gin.Context) {
	perms, err := c.adminService.ListPermissions(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, perms, "permissions retrieved successfully")
}

// CreatePermission POST /employee/permission/
func (c *Controller) CreatePermission(ctx *gin.Context) {
	var req adminapp.CreatePermissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	perm, err := c.adminService.CreatePermission(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, perm, "permission created successfully")
}

// DeletePermission DELETE /employee/permission/:id
func (c *Controller) DeletePermission(ctx *gin.Context) {
	id, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if err := c.adminService.DeletePermission(ctxutil.WithRequestID(ctx), id); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// ListRoles GET /employee/role/
func (c *Controller) ListRoles(ctx *gin.Context) {
	roles, err := c.adminService.ListRoles(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, roles, "roles retrieved successfully")
}

// CreateRole POST /employee/role/
func (c *Controller) CreateRole(ctx *gin.Context) {
	var req adminapp.CreateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	role, err := c.adminService.CreateRole(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, role, "role created successfully")
}

// SetRolePermissions PUT /employee/role/:id
func (c *Controller) SetRolePermissions(ctx *gin.Context) {
	id, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	var req adminapp.SetRolePermissionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	role, err := c.adminService.SetRolePermissions(ctxutil.WithRequestID(ctx), id, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, role, "role updated successfully")
}

// ListEmployees GET /employee/staff/
func (c *Controller) ListEmployees(ctx *gin.Context) {
	staff, err := c.adminService.ListEmployees(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, staff, "employees retrieved successfully")
}

// CreateEmployee POST /employee/staff/
func (c *Controller) CreateEmployee(ctx *gin.Context) {
	var req adminapp.CreateEmployeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	staff, err := c.adminService.CreateEmployee(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, staff, "employee created successfully")
}

// Summary GET /api/admin/summary
func (c *Controller) Summary(ctx *gin.Context) {
	summary, err := c.adminService.Summary(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, summary, "summary retrieved successfully")
}
