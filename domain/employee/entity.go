package employee

import (
	"strings"
	"time"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

// Employee is a staff account. Permissions come from its role.
type Employee struct {
	id           uint64
	name         string
	email        shared.Email
	passwordHash string
	roleID       uint64
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewEmployee(name, email, passwordHash string, roleID uint64) (*Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("employee", "name", "name cannot be empty")
	}
	emailVO, err := shared.NewEmail(email)
	if err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, shared.NewValidationError("employee", "password", "password hash is required")
	}
	if roleID == 0 {
		return nil, shared.NewValidationError("employee", "role_id", "role is required")
	}
	now := time.Now()
	return &Employee{
		name:         name,
		email:        emailVO,
		passwordHash: passwordHash,
		roleID:       roleID,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructionDTO is for repository implementations only.
type ReconstructionDTO struct {
	ID           uint64
	Name         string
	Email        string
	PasswordHash string
	RoleID       uint64
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func Rebuild(dto ReconstructionDTO) *Employee {
	email, _ := shared.NewEmail(dto.Email)
	return &Employee{
		id:           dto.ID,
		name:         dto.Name,
		email:        email,
		passwordHash: dto.PasswordHash,
		roleID:       dto.RoleID,
		active:       dto.Active,
		createdAt:    dto.CreatedAt,
		updatedAt:    dto.UpdatedAt,
	}
}

func (e *Employee) AssignID(id uint64) {
	if e.id == 0 {
		e.id = id
	}
}

func (e *Employee) Deactivate() {
	e.active = false
	e.updatedAt = time.Now()
}

func (e *Employee) ChangeRole(roleID uint64) error {
	if roleID == 0 {
		return shared.NewValidationError("employee", "role_id", "role is required")
	}
	e.roleID = roleID
	e.updatedAt = time.Now()
	return nil
}

func (e *Employee) ID() uint64           { return e.id }
func (e *Employee) Name() string         { return e.name }
func (e *Employee) Email() string        { return e.email.Value() }
func (e *Employee) PasswordHash() string { return e.passwordHash }
func (e *Employee) RoleID() uint64       { return e.roleID }
func (e *Employee) IsActive() bool       { return e.active }
func (e *Employee) CreatedAt() time.Time { return e.createdAt }
func (e *Employee) UpdatedAt() time.Time { return e.updatedAt }

// Role groups permission nodes under a name.
type Role struct {
	id          uint64
	name        string
	permissions PermissionSet
}

func NewRole(name string, nodes ...Permission) (*Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("role", "name", "role name cannot be empty")
	}
	return &Role{name: name, permissions: NewPermissionSet(nodes...)}, nil
}

func RebuildRole(id uint64, name string, nodes []Permission) *Role {
	return &Role{id: id, name: name, permissions: NewPermissionSet(nodes...)}
}

func (r *Role) AssignID(id uint64) {
	if r.id == 0 {
		r.id = id
	}
}

// SetPermissions replaces the granted nodes.
func (r *Role) SetPermissions(nodes []Permission) {
	r.permissions = NewPermissionSet(nodes...)
}

func (r *Role) Revoke(node Permission) {
	delete(r.permissions, node)
}

func (r *Role) ID() uint64   { return r.id }
func (r *Role) Name() string { return r.name }

func (r *Role) Permissions() PermissionSet {
	out := make(PermissionSet, len(r.permissions))
	for n := range r.permissions {
		out[n] = struct{}{}
	}
	return out
}

// Profile is an employee together with the permissions its role resolves to.
type Profile struct {
	Employee    *Employee
	Role        *Role
	Permissions PermissionSet
}

func NewProfile(e *Employee, r *Role) *Profile {
	perms := PermissionSet{}
	if r != nil {
		perms = r.Permissions()
	}
	return &Profile{Employee: e, Role: r, Permissions: perms}
}
