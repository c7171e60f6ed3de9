package employee

import (
	"fmt"
	"strconv"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

var (
	ErrEmployeeNotFound   = fmt.Errorf("employee %w", shared.ErrNotFound)
	ErrRoleNotFound       = fmt.Errorf("role %w", shared.ErrNotFound)
	ErrPermissionNotFound = fmt.Errorf("permission %w", shared.ErrNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("email already exists: %w", shared.ErrConflict)
	ErrRoleExists         = fmt.Errorf("role already exists: %w", shared.ErrConflict)
	ErrPermissionExists   = fmt.Errorf("permission already exists: %w", shared.ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", shared.ErrUnauthenticated)
	ErrEmployeeInactive   = fmt.Errorf("employee account is disabled: %w", shared.ErrForbidden)
)

func NewEmployeeNotFoundError(id uint64) error {
	return shared.NewError(ErrEmployeeNotFound, "employee", "employee not found: "+strconv.FormatUint(id, 10))
}

func NewRoleNotFoundError(id uint64) error {
	return shared.NewError(ErrRoleNotFound, "role", "role not found: "+strconv.FormatUint(id, 10))
}

func NewPermissionNotFoundError(ref string) error {
	return shared.NewError(ErrPermissionNotFound, "permission", "permission not found: "+ref)
}
