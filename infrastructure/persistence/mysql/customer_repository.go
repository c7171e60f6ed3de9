package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/customer"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/mysql/po"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	customerPO := po.FromCustomerDomain(c)
	db := conn(ctx, r.db)

	var err error
	if c.ID() == 0 {
		err = db.Create(customerPO).Error
	} else {
		err = db.Model(&po.CustomerPO{}).
			Where("id = ?", c.ID()).
			Updates(map[string]interface{}{
				"name":       customerPO.Name,
				"email":      customerPO.Email,
				"address":    customerPO.Address,
				"updated_at": customerPO.UpdatedAt,
			}).Error
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return customer.NewEmailExistsError(customerPO.Email)
		}
		return err
	}
	c.AssignID(customerPO.ID)
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uint64) (*customer.Customer, error) {
	var customerPO po.CustomerPO
	if err := conn(ctx, r.db).First(&customerPO, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, customer.NewCustomerNotFoundError(id)
		}
		return nil, err
	}
	return customerPO.ToDomain(), nil
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	normalized, err := shared.NewEmail(email)
	if err != nil {
		return nil, shared.NewError(customer.ErrCustomerNotFound, "customer", "customer not found: "+email)
	}

	var customerPO po.CustomerPO
	if err := conn(ctx, r.db).First(&customerPO, "email = ?", normalized.Value()).Error; err != nil {
		if isNotFound(err) {
			return nil, shared.NewError(customer.ErrCustomerNotFound, "customer", "customer not found: "+normalized.Value())
		}
		return nil, err
	}
	return customerPO.ToDomain(), nil
}

var _ customer.Repository = (*CustomerRepository)(nil)
