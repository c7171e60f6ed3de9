package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/customer"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/mocks"
)

func newTestService(t *testing.T) (*Service, *mocks.Repositories) {
	t.Helper()
	repos := mocks.NewRepositories()
	return NewService(repos.Customers, repos.Employees, repos.Roles, NewBcryptHasher(bcrypt.MinCost)), repos
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if created.ID == 0 {
		t.Fatal("id not assigned")
	}

	if _, err := svc.Register(ctx, RegisterRequest{Name: "Ann2", Email: "ANN@example.com", Password: "s3cret-pass"}); !errors.Is(err, customer.ErrEmailAlreadyExists) {
		t.Errorf("duplicate register: err = %v", err)
	}
	if _, err := svc.Register(ctx, RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "short"}); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("short password: err = %v", err)
	}

	got, err := svc.Login(ctx, LoginRequest{Email: "ann@example.com", Password: "s3cret-pass"})
	if err != nil || got.ID != created.ID {
		t.Fatalf("Login() = %+v, %v", got, err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "ann@example.com", Password: "wrong-pass"}); !errors.Is(err, customer.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"}); !errors.Is(err, customer.ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v", err)
	}
}

func TestCustomerExists(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestService(t)
	c, _ := svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "s3cret-pass"})

	if ok, err := svc.CustomerExists(ctx, c.ID); !ok || err != nil {
		t.Errorf("CustomerExists() = %v, %v", ok, err)
	}
	repos.Customers.Delete(c.ID)
	if ok, err := svc.CustomerExists(ctx, c.ID); ok || err != nil {
		t.Errorf("after delete: CustomerExists() = %v, %v", ok, err)
	}
}

func TestEmployeeLoginAndPermissions(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestService(t)

	role, _ := employee.NewRole("clerk", employee.PermOrderView)
	_ = repos.Roles.Save(ctx, role)
	hash, _ := svc.hasher.Hash("staff-pass")
	e, _ := employee.NewEmployee("Eve", "eve@shop.local", hash, role.ID())
	_ = repos.Employees.Save(ctx, e)

	resp, err := svc.LoginEmployee(ctx, LoginRequest{Email: "eve@shop.local", Password: "staff-pass"})
	if err != nil {
		t.Fatalf("LoginEmployee() error = %v", err)
	}
	if resp.RoleName != "clerk" || len(resp.Permissions) != 1 || resp.Permissions[0] != "ORDER_VIEW" {
		t.Errorf("response = %+v", resp)
	}

	perms, found, err := svc.EmployeePermissions(ctx, e.ID())
	if err != nil || !found || !perms.Has(employee.PermOrderView) {
		t.Fatalf("EmployeePermissions() = %v, %v, %v", perms, found, err)
	}

	e.Deactivate()
	_ = repos.Employees.Save(ctx, e)
	if _, found, _ := svc.EmployeePermissions(ctx, e.ID()); found {
		t.Error("inactive employee reported as found")
	}
	if _, err := svc.LoginEmployee(ctx, LoginRequest{Email: "eve@shop.local", Password: "staff-pass"}); !errors.Is(err, employee.ErrEmployeeInactive) {
		t.Errorf("inactive login: err = %v", err)
	}

	if _, found, err := svc.EmployeePermissions(ctx, 999); found || err != nil {
		t.Errorf("unknown employee: found = %v, err = %v", found, err)
	}
}

func TestEmployeeWithDanglingRoleHasNoPermissions(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestService(t)

	hash, _ := svc.hasher.Hash("staff-pass")
	e, _ := employee.NewEmployee("Eve", "eve@shop.local", hash, 42)
	_ = repos.Employees.Save(ctx, e)

	perms, found, err := svc.EmployeePermissions(ctx, e.ID())
	if err != nil || !found || len(perms) != 0 {
		t.Errorf("EmployeePermissions() = %v, %v, %v", perms, found, err)
	}
}
