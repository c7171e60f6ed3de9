package admin

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

// EnsureBootstrap registers the builtin permission nodes, makes sure the
// Administrator role grants all of them and creates the administrator account
// when its email is not taken yet. It is safe to run on every start.
func (s *Service) EnsureBootstrap(ctx context.Context, req BootstrapRequest) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		builtin := employee.BuiltinPermissions()
		for _, node := range builtin {
			_, err := s.permissions.FindByNode(ctx, node)
			if err == nil {
				continue
			}
			if !errors.Is(err, employee.ErrPermissionNotFound) {
				return err
			}
			if err := s.permissions.Save(ctx, &employee.PermissionDefinition{Node: node, Description: "builtin"}); err != nil {
				return err
			}
		}

		role, err := s.roles.FindByName(ctx, AdministratorRole)
		switch {
		case errors.Is(err, employee.ErrRoleNotFound):
			if role, err = employee.NewRole(AdministratorRole, builtin...); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			granted := role.Permissions()
			for _, node := range builtin {
				granted[node] = struct{}{}
			}
			role.SetPermissions(granted.Sorted())
		}
		if err := s.roles.Save(ctx, role); err != nil {
			return err
		}

		if req.AdminEmail == "" {
			return nil
		}
		_, err = s.employees.FindByEmail(ctx, req.AdminEmail)
		if err == nil {
			return nil
		}
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}

		hash, err := s.hasher.Hash(req.AdminPassword)
		if err != nil {
			return err
		}
		admin, err := employee.NewEmployee(req.AdminName, req.AdminEmail, hash, role.ID())
		if err != nil {
			return err
		}
		if err := s.employees.Save(ctx, admin); err != nil {
			return err
		}
		logger.Warn("Bootstrap administrator created, change its password",
			zap.String("email", admin.Email()),
			zap.Uint64("employee_id", admin.ID()),
		)
		return nil
	})
}
