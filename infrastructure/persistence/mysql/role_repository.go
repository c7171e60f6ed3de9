package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/mysql/po"
)

// RoleRepository stores a role row plus one role_permissions row per granted node.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Save(ctx context.Context, role *employee.Role) error {
	rolePO, grants := po.FromRoleDomain(role)

	err := inTx(ctx, r.db, func(tx *gorm.DB) error {
		if role.ID() == 0 {
			if err := tx.Create(rolePO).Error; err != nil {
				return err
			}
		} else if err := tx.Model(&po.RolePO{}).Where("id = ?", rolePO.ID).Update("name", rolePO.Name).Error; err != nil {
			return err
		}

		// Replace grants: delete then insert
		if err := tx.Where("role_id = ?", rolePO.ID).Delete(&po.RolePermissionPO{}).Error; err != nil {
			return err
		}
		for i := range grants {
			grants[i].RoleID = rolePO.ID
		}
		if len(grants) > 0 {
			if err := tx.Create(&grants).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return shared.NewError(employee.ErrRoleExists, "role", "role already exists: "+rolePO.Name)
		}
		return err
	}
	role.AssignID(rolePO.ID)
	return nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id uint64) (*employee.Role, error) {
	return r.findOne(ctx, "id = ?", id, func() error { return employee.NewRoleNotFoundError(id) })
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*employee.Role, error) {
	return r.findOne(ctx, "name = ?", name, func() error {
		return shared.NewError(employee.ErrRoleNotFound, "role", "role not found: "+name)
	})
}

func (r *RoleRepository) findOne(ctx context.Context, query string, arg interface{}, notFound func() error) (*employee.Role, error) {
	db := conn(ctx, r.db)

	var rolePO po.RolePO
	if err := db.First(&rolePO, query, arg).Error; err != nil {
		if isNotFound(err) {
			return nil, notFound()
		}
		return nil, err
	}

	var grants []po.RolePermissionPO
	if err := db.Where("role_id = ?", rolePO.ID).Find(&grants).Error; err != nil {
		return nil, err
	}
	return rolePO.ToDomain(grants), nil
}

func (r *RoleRepository) List(ctx context.Context) ([]*employee.Role, error) {
	db := conn(ctx, r.db)

	var rolePOs []po.RolePO
	if err := db.Order("id").Find(&rolePOs).Error; err != nil {
		return nil, err
	}
	if len(rolePOs) == 0 {
		return nil, nil
	}

	ids := make([]uint64, len(rolePOs))
	for i, rp := range rolePOs {
		ids[i] = rp.ID
	}
	var grants []po.RolePermissionPO
	if err := db.Where("role_id IN ?", ids).Find(&grants).Error; err != nil {
		return nil, err
	}
	byRole := make(map[uint64][]po.RolePermissionPO, len(rolePOs))
	for _, g := range grants {
		byRole[g.RoleID] = append(byRole[g.RoleID], g)
	}

	out := make([]*employee.Role, len(rolePOs))
	for i := range rolePOs {
		out[i] = rolePOs[i].ToDomain(byRole[rolePOs[i].ID])
	}
	return out, nil
}

var _ employee.RoleRepository = (*RoleRepository)(nil)
