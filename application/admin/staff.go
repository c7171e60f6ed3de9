package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/application/auth"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

// CreateEmployee creates an active staff account under an existing role.
func (s *Service) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*auth.EmployeeResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	var profile *employee.Profile
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		role, err := s.roles.FindByID(ctx, req.RoleID)
		if err != nil {
			return err
		}
		e, err := employee.NewEmployee(req.Name, req.Email, hash, role.ID())
		if err != nil {
			return err
		}
		if err := s.employees.Save(ctx, e); err != nil {
			return err
		}
		profile = employee.NewProfile(e, role)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Employee created",
		zap.Uint64("employee_id", profile.Employee.ID()),
		zap.Uint64("role_id", req.RoleID),
	)
	return auth.ToEmployeeResponse(profile), nil
}

// ListEmployees returns every staff account with its role's permissions.
func (s *Service) ListEmployees(ctx context.Context) ([]*auth.EmployeeResponse, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*employee.Role, len(roles))
	for _, r := range roles {
		byID[r.ID()] = r
	}

	out := make([]*auth.EmployeeResponse, len(employees))
	for i, e := range employees {
		out[i] = auth.ToEmployeeResponse(employee.NewProfile(e, byID[e.RoleID()]))
	}
	return out, nil
}
