package admin

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/application/auth"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/mocks"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/retry"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

var testAdmin = BootstrapRequest{AdminName: "Root", AdminEmail: "root@shop.local", AdminPassword: "change-me"}

func newTestService(t *testing.T) (*Service, *mocks.Repositories) {
	t.Helper()
	repos := mocks.NewRepositories()
	svc := NewService(
		repos.Employees, repos.Roles, repos.Permissions, repos.Products, repos.Orders,
		auth.NewBcryptHasher(bcrypt.MinCost),
		mocks.NewMockUnitOfWork(retry.DefaultConfig),
	)
	return svc, repos
}

func TestEnsureBootstrapIsIdempotent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer logger.Replace(zap.New(core))()

	ctx := context.Background()
	svc, repos := newTestService(t)

	for i := 0; i < 2; i++ {
		if err := svc.EnsureBootstrap(ctx, testAdmin); err != nil {
			t.Fatalf("EnsureBootstrap() run %d error = %v", i, err)
		}
	}

	perms, _ := svc.ListPermissions(ctx)
	if len(perms) != len(employee.BuiltinPermissions()) {
		t.Errorf("permissions = %d, want %d", len(perms), len(employee.BuiltinPermissions()))
	}
	roles, _ := svc.ListRoles(ctx)
	if len(roles) != 1 || roles[0].Name != AdministratorRole || len(roles[0].Permissions) != len(perms) {
		t.Errorf("roles = %+v", roles)
	}
	staff, _ := svc.ListEmployees(ctx)
	if len(staff) != 1 || staff[0].Email != "root@shop.local" || staff[0].RoleName != AdministratorRole {
		t.Fatalf("staff = %+v", staff)
	}

	if got := logs.FilterMessage("Bootstrap administrator created, change its password").Len(); got != 1 {
		t.Errorf("bootstrap warning logged %d times, want 1", got)
	}

	e, _ := repos.Employees.FindByEmail(ctx, "root@shop.local")
	if bcrypt.CompareHashAndPassword([]byte(e.PasswordHash()), []byte("change-me")) != nil {
		t.Error("stored hash does not match the seed password")
	}
}

func TestEnsureBootstrapRestoresAdministratorGrants(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestService(t)
	_ = svc.EnsureBootstrap(ctx, testAdmin)

	role, _ := repos.Roles.FindByName(ctx, AdministratorRole)
	role.SetPermissions([]employee.Permission{employee.PermOrderView})
	_ = repos.Roles.Save(ctx, role)

	if err := svc.EnsureBootstrap(ctx, testAdmin); err != nil {
		t.Fatal(err)
	}
	role, _ = repos.Roles.FindByName(ctx, AdministratorRole)
	for _, node := range employee.BuiltinPermissions() {
		if !role.Permissions().Has(node) {
			t.Errorf("administrator lost %s", node)
		}
	}
}

func TestPermissionRegistry(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestService(t)
	_ = svc.EnsureBootstrap(ctx, testAdmin)

	created, err := svc.CreatePermission(ctx, CreatePermissionRequest{Node: "REPORT_EXPORT", Description: "export reports"})
	if err != nil {
		t.Fatalf("CreatePermission() error = %v", err)
	}
	if created.Builtin {
		t.Error("custom node reported as builtin")
	}
	if _, err := svc.CreatePermission(ctx, CreatePermissionRequest{Node: "REPORT_EXPORT"}); !errors.Is(err, employee.ErrPermissionExists) {
		t.Errorf("duplicate node: err = %v", err)
	}
	if _, err := svc.CreatePermission(ctx, CreatePermissionRequest{Node: "report export"}); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("malformed node: err = %v", err)
	}

	role, err := svc.CreateRole(ctx, CreateRoleRequest{Name: "Analyst", Permissions: []string{"REPORT_EXPORT", "ORDER_VIEW"}})
	if err != nil {
		t.Fatalf("CreateRole() error = %v", err)
	}

	if err := svc.DeletePermission(ctx, created.ID); err != nil {
		t.Fatalf("DeletePermission() error = %v", err)
	}
	reloaded, _ := repos.Roles.FindByID(ctx, role.ID)
	if reloaded.Permissions().Has("REPORT_EXPORT") || !reloaded.Permissions().Has(employee.PermOrderView) {
		t.Errorf("role grants after delete = %v", reloaded.Permissions().Sorted())
	}

	builtin, _ := repos.Permissions.FindByNode(ctx, employee.PermOrderView)
	if err := svc.DeletePermission(ctx, builtin.ID); !errors.Is(err, shared.ErrInvalidState) {
		t.Errorf("delete builtin: err = %v", err)
	}
	if err := svc.DeletePermission(ctx, 999); !errors.Is(err, employee.ErrPermissionNotFound) {
		t.Errorf("delete missing: err = %v", err)
	}
}

func TestRolesOnlyGrantRegisteredNodes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	_ = svc.EnsureBootstrap(ctx, testAdmin)

	if _, err := svc.CreateRole(ctx, CreateRoleRequest{Name: "Ghost", Permissions: []string{"NOT_REGISTERED"}}); !errors.Is(err, employee.ErrPermissionNotFound) {
		t.Errorf("unregistered node: err = %v", err)
	}
	if _, err := svc.CreateRole(ctx, CreateRoleRequest{Name: AdministratorRole}); !errors.Is(err, employee.ErrRoleExists) {
		t.Errorf("duplicate role: err = %v", err)
	}

	clerk, err := svc.CreateRole(ctx, CreateRoleRequest{Name: "Clerk", Permissions: []string{"ORDER_VIEW"}})
	if err != nil {
		t.Fatal(err)
	}
	updated, err := svc.SetRolePermissions(ctx, clerk.ID, SetRolePermissionsRequest{Permissions: []string{"ORDER_UPDATE", "PRODUCT_VIEW"}})
	if err != nil {
		t.Fatalf("SetRolePermissions() error = %v", err)
	}
	if len(updated.Permissions) != 2 || updated.Permissions[0] != "ORDER_UPDATE" {
		t.Errorf("permissions = %v", updated.Permissions)
	}
	if _, err := svc.SetRolePermissions(ctx, 404, SetRolePermissionsRequest{}); !errors.Is(err, employee.ErrRoleNotFound) {
		t.Errorf("missing role: err = %v", err)
	}
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	_ = svc.EnsureBootstrap(ctx, testAdmin)
	clerk, _ := svc.CreateRole(ctx, CreateRoleRequest{Name: "Clerk", Permissions: []string{"ORDER_VIEW"}})

	created, err := svc.CreateEmployee(ctx, CreateEmployeeRequest{Name: "Sam", Email: "sam@shop.local", Password: "warehouse1", RoleID: clerk.ID})
	if err != nil {
		t.Fatalf("CreateEmployee() error = %v", err)
	}
	if created.RoleName != "Clerk" || len(created.Permissions) != 1 || created.Permissions[0] != "ORDER_VIEW" {
		t.Errorf("created = %+v", created)
	}

	tests := []struct {
		name string
		req  CreateEmployeeRequest
		want error
	}{
		{"unknown role", CreateEmployeeRequest{Name: "Kim", Email: "kim@shop.local", Password: "warehouse1", RoleID: 99}, employee.ErrRoleNotFound},
		{"duplicate email", CreateEmployeeRequest{Name: "Sam2", Email: "SAM@shop.local", Password: "warehouse1", RoleID: clerk.ID}, employee.ErrEmailAlreadyExists},
		{"short password", CreateEmployeeRequest{Name: "Kim", Email: "kim@shop.local", Password: "short", RoleID: clerk.ID}, shared.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateEmployee(ctx, tt.req); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestService(t)
	_ = svc.EnsureBootstrap(ctx, testAdmin)

	price := shared.NewMoney(500, "")
	for _, customerID := range []uint64{1, 2, 3} {
		o, err := order.NewOrder(customerID, []order.ItemRequest{{ProductID: 1, ProductName: "Kettle", SKU: "KIT-1", Quantity: 1, UnitPrice: price}})
		if err != nil {
			t.Fatal(err)
		}
		if customerID == 3 {
			_ = o.Pay()
		}
		_ = repos.Orders.Save(ctx, o)
	}

	summary, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.Orders != 3 || summary.OrdersByStatus["Pending"] != 2 || summary.OrdersByStatus["Paid"] != 1 {
		t.Errorf("order counts = %d %v", summary.Orders, summary.OrdersByStatus)
	}
	if summary.Employees != 1 || summary.Roles != 1 || summary.Products != 0 {
		t.Errorf("summary = %+v", summary)
	}
}
