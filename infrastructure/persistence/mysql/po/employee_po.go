package po

import (
	"time"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
)

// EmployeePO Employee persistence object; only the role id is stored, no association.
type EmployeePO struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"size:100;not null"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:100;not null"`
	RoleID       uint64    `gorm:"index;not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (EmployeePO) TableName() string {
	return "employees"
}

func FromEmployeeDomain(e *employee.Employee) *EmployeePO {
	return &EmployeePO{
		ID:           e.ID(),
		Name:         e.Name(),
		Email:        e.Email(),
		PasswordHash: e.PasswordHash(),
		RoleID:       e.RoleID(),
		Active:       e.IsActive(),
		CreatedAt:    e.CreatedAt(),
		UpdatedAt:    e.UpdatedAt(),
	}
}

func (po *EmployeePO) ToDomain() *employee.Employee {
	return employee.Rebuild(employee.ReconstructionDTO{
		ID:           po.ID,
		Name:         po.Name,
		Email:        po.Email,
		PasswordHash: po.PasswordHash,
		RoleID:       po.RoleID,
		Active:       po.Active,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	})
}

// RolePO Role persistence object
type RolePO struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (RolePO) TableName() string {
	return "roles"
}

// RolePermissionPO is one granted node; (role_id, node) is unique.
type RolePermissionPO struct {
	RoleID uint64 `gorm:"primaryKey"`
	Node   string `gorm:"primaryKey;size:100;index"`
}

func (RolePermissionPO) TableName() string {
	return "role_permissions"
}

func FromRoleDomain(r *employee.Role) (*RolePO, []RolePermissionPO) {
	nodes := r.Permissions().Sorted()
	grants := make([]RolePermissionPO, len(nodes))
	for i, n := range nodes {
		grants[i] = RolePermissionPO{RoleID: r.ID(), Node: string(n)}
	}
	return &RolePO{ID: r.ID(), Name: r.Name()}, grants
}

func (po *RolePO) ToDomain(grants []RolePermissionPO) *employee.Role {
	nodes := make([]employee.Permission, len(grants))
	for i, g := range grants {
		nodes[i] = employee.Permission(g.Node)
	}
	return employee.RebuildRole(po.ID, po.Name, nodes)
}

// PermissionPO is a registered permission node.
type PermissionPO struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Node        string    `gorm:"size:100;uniqueIndex;not null"`
	Description string    `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (PermissionPO) TableName() string {
	return "permissions"
}

func FromPermissionDomain(d *employee.PermissionDefinition) *PermissionPO {
	return &PermissionPO{ID: d.ID, Node: string(d.Node), Description: d.Description}
}

func (po *PermissionPO) ToDomain() *employee.PermissionDefinition {
	return &employee.PermissionDefinition{ID: po.ID, Node: employee.Permission(po.Node), Description: po.Description}
}
