package po

import (
	"time"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/customer"
)

// CustomerPO Customer persistence object
type CustomerPO struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"size:100;not null"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:100;not null"`
	Address      string    `gorm:"size:500"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (CustomerPO) TableName() string {
	return "customers"
}

func FromCustomerDomain(c *customer.Customer) *CustomerPO {
	return &CustomerPO{
		ID:           c.ID(),
		Name:         c.Name(),
		Email:        c.Email(),
		PasswordHash: c.PasswordHash(),
		Address:      c.Address(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}

func (po *CustomerPO) ToDomain() *customer.Customer {
	return customer.Rebuild(customer.ReconstructionDTO{
		ID:           po.ID,
		Name:         po.Name,
		Email:        po.Email,
		PasswordHash: po.PasswordHash,
		Address:      po.Address,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	})
}
