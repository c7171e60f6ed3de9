package mysql

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/mysql/po"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Save(ctx context.Context, def *employee.PermissionDefinition) error {
	permissionPO := po.FromPermissionDomain(def)
	db := conn(ctx, r.db)

	var err error
	if def.ID == 0 {
		err = db.Create(permissionPO).Error
	} else {
		err = db.Model(&po.PermissionPO{}).Where("id = ?", def.ID).
			Update("description", permissionPO.Description).Error
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return shared.NewError(employee.ErrPermissionExists, "permission", "permission already exists: "+permissionPO.Node)
		}
		return err
	}
	def.ID = permissionPO.ID
	return nil
}

func (r *PermissionRepository) FindByID(ctx context.Context, id uint64) (*employee.PermissionDefinition, error) {
	var permissionPO po.PermissionPO
	if err := conn(ctx, r.db).First(&permissionPO, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, employee.NewPermissionNotFoundError(strconv.FormatUint(id, 10))
		}
		return nil, err
	}
	return permissionPO.ToDomain(), nil
}

func (r *PermissionRepository) FindByNode(ctx context.Context, node employee.Permission) (*employee.PermissionDefinition, error) {
	var permissionPO po.PermissionPO
	if err := conn(ctx, r.db).First(&permissionPO, "node = ?", string(node)).Error; err != nil {
		if isNotFound(err) {
			return nil, employee.NewPermissionNotFoundError(string(node))
		}
		return nil, err
	}
	return permissionPO.ToDomain(), nil
}

func (r *PermissionRepository) List(ctx context.Context) ([]*employee.PermissionDefinition, error) {
	var permissionPOs []po.PermissionPO
	if err := conn(ctx, r.db).Order("node").Find(&permissionPOs).Error; err != nil {
		return nil, err
	}
	out := make([]*employee.PermissionDefinition, len(permissionPOs))
	for i := range permissionPOs {
		out[i] = permissionPOs[i].ToDomain()
	}
	return out, nil
}

// Delete removes the node and every grant of it.
func (r *PermissionRepository) Delete(ctx context.Context, id uint64) error {
	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		var permissionPO po.PermissionPO
		if err := tx.First(&permissionPO, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return employee.NewPermissionNotFoundError(strconv.FormatUint(id, 10))
			}
			return err
		}
		if err := tx.Where("node = ?", permissionPO.Node).Delete(&po.RolePermissionPO{}).Error; err != nil {
			return err
		}
		return tx.Delete(&po.PermissionPO{}, "id = ?", id).Error
	})
}

var _ employee.PermissionRepository = (*PermissionRepository)(nil)
