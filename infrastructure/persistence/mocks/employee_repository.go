package mocks

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

// MockEmployeeRepository keeps employees in memory.
type MockEmployeeRepository struct {
	mu        sync.RWMutex
	nextID    uint64
	employees map[uint64]employee.ReconstructionDTO
}

func NewMockEmployeeRepository() *MockEmployeeRepository {
	return &MockEmployeeRepository{employees: make(map[uint64]employee.ReconstructionDTO)}
}

func (r *MockEmployeeRepository) Save(ctx context.Context, e *employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.employees {
		if existing.Email == e.Email() && id != e.ID() {
			return shared.NewError(employee.ErrEmailAlreadyExists, "employee", "email already exists: "+e.Email())
		}
	}
	if e.ID() == 0 {
		r.nextID++
		e.AssignID(r.nextID)
	}
	r.employees[e.ID()] = employee.ReconstructionDTO{
		ID:           e.ID(),
		Name:         e.Name(),
		Email:        e.Email(),
		PasswordHash: e.PasswordHash(),
		RoleID:       e.RoleID(),
		Active:       e.IsActive(),
		CreatedAt:    e.CreatedAt(),
		UpdatedAt:    e.UpdatedAt(),
	}
	return nil
}

func (r *MockEmployeeRepository) FindByID(ctx context.Context, id uint64) (*employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.employees[id]
	if !ok {
		return nil, employee.NewEmployeeNotFoundError(id)
	}
	return employee.Rebuild(dto), nil
}

func (r *MockEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	normalized, err := shared.NewEmail(email)
	if err == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()

		for _, dto := range r.employees {
			if dto.Email == normalized.Value() {
				return employee.Rebuild(dto), nil
			}
		}
	}
	return nil, shared.NewError(employee.ErrEmployeeNotFound, "employee", "employee not found: "+email)
}

func (r *MockEmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*employee.Employee, 0, len(r.employees))
	for _, dto := range r.employees {
		out = append(out, employee.Rebuild(dto))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// Delete is a test helper that removes an employee behind a live session.
func (r *MockEmployeeRepository) Delete(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.employees, id)
}

var _ employee.Repository = (*MockEmployeeRepository)(nil)

type roleRecord struct {
	name  string
	nodes []employee.Permission
}

// MockRoleRepository keeps roles in memory.
type MockRoleRepository struct {
	mu     sync.RWMutex
	nextID uint64
	roles  map[uint64]roleRecord
}

func NewMockRoleRepository() *MockRoleRepository {
	return &MockRoleRepository{roles: make(map[uint64]roleRecord)}
}

func (r *MockRoleRepository) Save(ctx context.Context, role *employee.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.roles {
		if existing.name == role.Name() && id != role.ID() {
			return shared.NewError(employee.ErrRoleExists, "role", "role already exists: "+role.Name())
		}
	}
	if role.ID() == 0 {
		r.nextID++
		role.AssignID(r.nextID)
	}
	r.roles[role.ID()] = roleRecord{name: role.Name(), nodes: role.Permissions().Sorted()}
	return nil
}

func (r *MockRoleRepository) FindByID(ctx context.Context, id uint64) (*employee.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.roles[id]
	if !ok {
		return nil, employee.NewRoleNotFoundError(id)
	}
	return employee.RebuildRole(id, rec.name, rec.nodes), nil
}

func (r *MockRoleRepository) FindByName(ctx context.Context, name string) (*employee.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, rec := range r.roles {
		if rec.name == name {
			return employee.RebuildRole(id, rec.name, rec.nodes), nil
		}
	}
	return nil, shared.NewError(employee.ErrRoleNotFound, "role", "role not found: "+name)
}

func (r *MockRoleRepository) List(ctx context.Context) ([]*employee.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*employee.Role, 0, len(r.roles))
	for id, rec := range r.roles {
		out = append(out, employee.RebuildRole(id, rec.name, rec.nodes))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// revoke strips node from every role; called by MockPermissionRepository.Delete.
func (r *MockRoleRepository) revoke(node employee.Permission) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.roles {
		kept := rec.nodes[:0:0]
		for _, n := range rec.nodes {
			if n != node {
				kept = append(kept, n)
			}
		}
		rec.nodes = kept
		r.roles[id] = rec
	}
}

var _ employee.RoleRepository = (*MockRoleRepository)(nil)

// MockPermissionRepository keeps the node registry in memory.
type MockPermissionRepository struct {
	mu     sync.RWMutex
	nextID uint64
	defs   map[uint64]employee.PermissionDefinition
	roles  *MockRoleRepository
}

// NewMockPermissionRepository revokes deleted nodes from roles.
func NewMockPermissionRepository(roles *MockRoleRepository) *MockPermissionRepository {
	return &MockPermissionRepository{defs: make(map[uint64]employee.PermissionDefinition), roles: roles}
}

func (r *MockPermissionRepository) Save(ctx context.Context, def *employee.PermissionDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.defs {
		if existing.Node == def.Node && id != def.ID {
			return shared.NewError(employee.ErrPermissionExists, "permission", "permission already exists: "+string(def.Node))
		}
	}
	if def.ID == 0 {
		r.nextID++
		def.ID = r.nextID
	}
	r.defs[def.ID] = *def
	return nil
}

func (r *MockPermissionRepository) FindByID(ctx context.Context, id uint64) (*employee.PermissionDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[id]
	if !ok {
		return nil, employee.NewPermissionNotFoundError(strconv.FormatUint(id, 10))
	}
	return &def, nil
}

func (r *MockPermissionRepository) FindByNode(ctx context.Context, node employee.Permission) (*employee.PermissionDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, def := range r.defs {
		if def.Node == node {
			d := def
			return &d, nil
		}
	}
	return nil, employee.NewPermissionNotFoundError(string(node))
}

func (r *MockPermissionRepository) List(ctx context.Context) ([]*employee.PermissionDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*employee.PermissionDefinition, 0, len(r.defs))
	for _, def := range r.defs {
		d := def
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Node < out[j].Node })
	return out, nil
}

func (r *MockPermissionRepository) Delete(ctx context.Context, id uint64) error {
	r.mu.Lock()
	def, ok := r.defs[id]
	if ok {
		delete(r.defs, id)
	}
	r.mu.Unlock()

	if !ok {
		return employee.NewPermissionNotFoundError(strconv.FormatUint(id, 10))
	}
	if r.roles != nil {
		r.roles.revoke(def.Node)
	}
	return nil
}

var _ employee.PermissionRepository = (*MockPermissionRepository)(nil)
