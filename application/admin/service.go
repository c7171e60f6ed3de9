/*
Package admin implements staff administration: the permission registry, roles,
employee accounts and the dashboard summary.
*/
package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/application/auth"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/product"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

// AdministratorRole is the role bootstrap grants every builtin node to.
const AdministratorRole = "Administrator"

type Service struct {
	employees   employee.Repository
	roles       employee.RoleRepository
	permissions employee.PermissionRepository
	products    product.Repository
	orders      order.Repository
	hasher      auth.PasswordHasher
	uow         shared.UnitOfWork
}

func NewService(
	employees employee.Repository,
	roles employee.RoleRepository,
	permissions employee.PermissionRepository,
	products product.Repository,
	orders order.Repository,
	hasher auth.PasswordHasher,
	uow shared.UnitOfWork,
) *Service {
	return &Service{
		employees:   employees,
		roles:       roles,
		permissions: permissions,
		products:    products,
		orders:      orders,
		hasher:      hasher,
		uow:         uow,
	}
}

func isBuiltin(node employee.Permission) bool {
	for _, b := range employee.BuiltinPermissions() {
		if b == node {
			return true
		}
	}
	return false
}

func (s *Service) ListPermissions(ctx context.Context) ([]*PermissionResponse, error) {
	defs, err := s.permissions.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*PermissionResponse, len(defs))
	for i, def := range defs {
		out[i] = toPermissionResponse(def)
	}
	return out, nil
}

func (s *Service) CreatePermission(ctx context.Context, req CreatePermissionRequest) (*PermissionResponse, error) {
	node, err := employee.ParsePermission(req.Node)
	if err != nil {
		return nil, err
	}
	def := &employee.PermissionDefinition{Node: node, Description: req.Description}
	if err := s.uow.Execute(ctx, func(ctx context.Context) error {
		return s.permissions.Save(ctx, def)
	}); err != nil {
		return nil, err
	}

	logger.Info("Permission created", zap.String("node", string(node)))
	return toPermissionResponse(def), nil
}

// DeletePermission removes a custom node and revokes it from every role.
// Builtin nodes guard the router and cannot be deleted.
func (s *Service) DeletePermission(ctx context.Context, id uint64) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		def, err := s.permissions.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if isBuiltin(def.Node) {
			return shared.NewInvalidStateError("permission", "builtin permission "+string(def.Node)+" cannot be deleted")
		}
		if err := s.permissions.Delete(ctx, id); err != nil {
			return err
		}
		logger.Info("Permission deleted", zap.String("node", string(def.Node)))
		return nil
	})
}

func (s *Service) ListRoles(ctx context.Context) ([]*RoleResponse, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*RoleResponse, len(roles))
	for i, r := range roles {
		out[i] = toRoleResponse(r)
	}
	return out, nil
}

// CreateRole creates a role granting registered nodes only.
func (s *Service) CreateRole(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error) {
	var role *employee.Role
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		nodes, err := s.resolveNodes(ctx, req.Permissions)
		if err != nil {
			return err
		}
		if role, err = employee.NewRole(req.Name, nodes...); err != nil {
			return err
		}
		return s.roles.Save(ctx, role)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Role created", zap.Uint64("role_id", role.ID()), zap.String("name", role.Name()))
	return toRoleResponse(role), nil
}

func (s *Service) SetRolePermissions(ctx context.Context, roleID uint64, req SetRolePermissionsRequest) (*RoleResponse, error) {
	var role *employee.Role
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		if role, err = s.roles.FindByID(ctx, roleID); err != nil {
			return err
		}
		nodes, err := s.resolveNodes(ctx, req.Permissions)
		if err != nil {
			return err
		}
		role.SetPermissions(nodes)
		return s.roles.Save(ctx, role)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Role permissions replaced",
		zap.Uint64("role_id", roleID),
		zap.Int("permissions", len(role.Permissions())),
	)
	return toRoleResponse(role), nil
}

func (s *Service) resolveNodes(ctx context.Context, raw []string) ([]employee.Permission, error) {
	nodes := make([]employee.Permission, 0, len(raw))
	for _, r := range raw {
		node, err := employee.ParsePermission(r)
		if err != nil {
			return nil, err
		}
		if _, err := s.permissions.FindByNode(ctx, node); err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// Summary counts the catalogue, staff and orders for the dashboard.
func (s *Service) Summary(ctx context.Context) (*SummaryResponse, error) {
	products, err := s.products.List(ctx, false)
	if err != nil {
		return nil, err
	}
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &SummaryResponse{
		Products:       len(products),
		Employees:      len(employees),
		Roles:          len(roles),
		OrdersByStatus: make(map[string]int64),
	}
	for _, p := range products {
		if p.IsActive() {
			summary.ActiveProducts++
		}
	}

	statuses := []order.Status{order.StatusPending, order.StatusPaid, order.StatusShipped, order.StatusDelivered, order.StatusCancelled}
	for _, st := range statuses {
		_, total, err := s.orders.Search(ctx, order.SearchCriteria{Status: st, PageSize: 1})
		if err != nil {
			return nil, err
		}
		summary.OrdersByStatus[string(st)] = total
		summary.Orders += total
	}
	return summary, nil
}
