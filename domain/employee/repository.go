package employee

import "context"

// Repository persists employees.
type Repository interface {
	Save(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id uint64) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
}

// RoleRepository persists roles together with their granted nodes.
type RoleRepository interface {
	Save(ctx context.Context, r *Role) error
	FindByID(ctx context.Context, id uint64) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context) ([]*Role, error)
}

// PermissionRepository persists the registry of known nodes.
type PermissionRepository interface {
	Save(ctx context.Context, def *PermissionDefinition) error
	FindByID(ctx context.Context, id uint64) (*PermissionDefinition, error)
	FindByNode(ctx context.Context, node Permission) (*PermissionDefinition, error)
	List(ctx context.Context) ([]*PermissionDefinition, error)

	// Delete removes the definition and revokes the node from every role.
	Delete(ctx context.Context, id uint64) error
}
