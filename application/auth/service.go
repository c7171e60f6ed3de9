/*
Package auth handles customer and employee credentials and answers the
identity lookups the access engine performs on every request.

Sessions themselves live in infrastructure/session; this package only decides
who a set of credentials belongs to.
*/
package auth

import (
	"context"
	"errors"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/access"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/customer"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

// dummyHash keeps the cost of a failed lookup close to a failed comparison.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3vFCPP8sN.Ai8cWO2Y.0Nq6"

type Service struct {
	customers customer.Repository
	employees employee.Repository
	roles     employee.RoleRepository
	hasher    PasswordHasher
}

func NewService(
	customers customer.Repository,
	employees employee.Repository,
	roles employee.RoleRepository,
	hasher PasswordHasher,
) *Service {
	return &Service{customers: customers, employees: employees, roles: roles, hasher: hasher}
}

// Register creates a customer account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*CustomerResponse, error) {
	if _, err := s.customers.FindByEmail(ctx, req.Email); err == nil {
		return nil, customer.NewEmailExistsError(req.Email)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	c, err := customer.NewCustomer(req.Name, req.Email, hash, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Login verifies customer credentials.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*CustomerResponse, error) {
	c, err := s.customers.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			_ = s.hasher.Compare(dummyHash, req.Password)
			return nil, customer.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(c.PasswordHash(), req.Password); err != nil {
		return nil, customer.ErrInvalidCredentials
	}
	return toCustomerResponse(c), nil
}

// LoginEmployee verifies staff credentials; deactivated accounts are refused.
func (s *Service) LoginEmployee(ctx context.Context, req LoginRequest) (*EmployeeResponse, error) {
	e, err := s.employees.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			_ = s.hasher.Compare(dummyHash, req.Password)
			return nil, employee.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(e.PasswordHash(), req.Password); err != nil {
		return nil, employee.ErrInvalidCredentials
	}
	if !e.IsActive() {
		return nil, employee.ErrEmployeeInactive
	}

	profile, err := s.profile(ctx, e)
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponse(profile), nil
}

func (s *Service) GetCustomer(ctx context.Context, id uint64) (*CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

func (s *Service) GetEmployee(ctx context.Context, id uint64) (*EmployeeResponse, error) {
	e, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile, err := s.profile(ctx, e)
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponse(profile), nil
}

// CustomerExists implements access.CustomerLookup.
func (s *Service) CustomerExists(ctx context.Context, id uint64) (bool, error) {
	if _, err := s.customers.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// EmployeePermissions implements access.EmployeeLookup. Inactive employees count as missing.
func (s *Service) EmployeePermissions(ctx context.Context, id uint64) (employee.PermissionSet, bool, error) {
	e, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !e.IsActive() {
		return nil, false, nil
	}

	profile, err := s.profile(ctx, e)
	if err != nil {
		return nil, false, err
	}
	return profile.Permissions, true, nil
}

func (s *Service) profile(ctx context.Context, e *employee.Employee) (*employee.Profile, error) {
	role, err := s.roles.FindByID(ctx, e.RoleID())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// a dangling role grants nothing
			return employee.NewProfile(e, nil), nil
		}
		return nil, err
	}
	return employee.NewProfile(e, role), nil
}

var (
	_ access.CustomerLookup = (*Service)(nil)
	_ access.EmployeeLookup = (*Service)(nil)
)
