package po

import (
	"time"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/product"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

// ProductPO Product persistence object
type ProductPO struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	SKU           string    `gorm:"column:sku;size:64;uniqueIndex;not null"`
	Name          string    `gorm:"size:255;not null"`
	Description   string    `gorm:"type:text"`
	PriceAmount   int64     `gorm:"not null"`
	PriceCurrency string    `gorm:"size:3;not null"`
	Stock         int       `gorm:"not null"`
	Active        bool      `gorm:"not null;default:true;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (ProductPO) TableName() string {
	return "products"
}

func FromProductDomain(p *product.Product) *ProductPO {
	return &ProductPO{
		ID:            p.ID(),
		SKU:           string(p.SKU()),
		Name:          p.Name(),
		Description:   p.Description(),
		PriceAmount:   p.Price().Amount(),
		PriceCurrency: p.Price().Currency(),
		Stock:         p.Stock(),
		Active:        p.IsActive(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func (po *ProductPO) ToDomain() *product.Product {
	return product.Rebuild(product.ReconstructionDTO{
		ID:          po.ID,
		SKU:         po.SKU,
		Name:        po.Name,
		Description: po.Description,
		Price:       shared.NewMoney(po.PriceAmount, po.PriceCurrency),
		Stock:       po.Stock,
		Active:      po.Active,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	})
}
