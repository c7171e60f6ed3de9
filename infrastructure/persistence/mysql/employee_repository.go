package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/mysql/po"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Save(ctx context.Context, e *employee.Employee) error {
	employeePO := po.FromEmployeeDomain(e)
	db := conn(ctx, r.db)

	var err error
	if e.ID() == 0 {
		err = db.Create(employeePO).Error
	} else {
		err = db.Model(&po.EmployeePO{}).
			Where("id = ?", e.ID()).
			Updates(map[string]interface{}{
				"name":          employeePO.Name,
				"email":         employeePO.Email,
				"password_hash": employeePO.PasswordHash,
				"role_id":       employeePO.RoleID,
				"active":        employeePO.Active,
				"updated_at":    employeePO.UpdatedAt,
			}).Error
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return shared.NewError(employee.ErrEmailAlreadyExists, "employee", "email already exists: "+employeePO.Email)
		}
		return err
	}
	e.AssignID(employeePO.ID)
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id uint64) (*employee.Employee, error) {
	var employeePO po.EmployeePO
	if err := conn(ctx, r.db).First(&employeePO, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, employee.NewEmployeeNotFoundError(id)
		}
		return nil, err
	}
	return employeePO.ToDomain(), nil
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	normalized, err := shared.NewEmail(email)
	if err != nil {
		return nil, shared.NewError(employee.ErrEmployeeNotFound, "employee", "employee not found: "+email)
	}

	var employeePO po.EmployeePO
	if err := conn(ctx, r.db).First(&employeePO, "email = ?", normalized.Value()).Error; err != nil {
		if isNotFound(err) {
			return nil, shared.NewError(employee.ErrEmployeeNotFound, "employee", "employee not found: "+normalized.Value())
		}
		return nil, err
	}
	return employeePO.ToDomain(), nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	var employeePOs []po.EmployeePO
	if err := conn(ctx, r.db).Order("id").Find(&employeePOs).Error; err != nil {
		return nil, err
	}
	out := make([]*employee.Employee, len(employeePOs))
	for i := range employeePOs {
		out[i] = employeePOs[i].ToDomain()
	}
	return out, nil
}

var _ employee.Repository = (*EmployeeRepository)(nil)
