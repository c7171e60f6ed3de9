package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/product"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/mysql/po"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	productPO := po.FromProductDomain(p)
	db := conn(ctx, r.db)

	var err error
	if p.ID() == 0 {
		err = db.Create(productPO).Error
	} else {
		err = db.Model(&po.ProductPO{}).
			Where("id = ?", p.ID()).
			Updates(map[string]interface{}{
				"sku":            productPO.SKU,
				"name":           productPO.Name,
				"description":    productPO.Description,
				"price_amount":   productPO.PriceAmount,
				"price_currency": productPO.PriceCurrency,
				"stock":          productPO.Stock,
				"active":         productPO.Active,
				"updated_at":     productPO.UpdatedAt,
			}).Error
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return shared.NewError(product.ErrSKUExists, "product", "sku already exists: "+productPO.SKU)
		}
		return err
	}
	p.AssignID(productPO.ID)
	return nil
}

// FindByID locks the row when called inside a UoW transaction so stock
// reservations from concurrent orders serialize.
func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (*product.Product, error) {
	db := conn(ctx, r.db)
	if persistence.TxFromContext(ctx) != nil {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var productPO po.ProductPO
	if err := db.First(&productPO, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, product.NewProductNotFoundError(id)
		}
		return nil, err
	}
	return productPO.ToDomain(), nil
}

func (r *ProductRepository) FindBySKU(ctx context.Context, sku product.SKU) (*product.Product, error) {
	var productPO po.ProductPO
	if err := conn(ctx, r.db).First(&productPO, "sku = ?", string(sku)).Error; err != nil {
		if isNotFound(err) {
			return nil, shared.NewError(product.ErrProductNotFound, "product", "product not found: "+string(sku))
		}
		return nil, err
	}
	return productPO.ToDomain(), nil
}

func (r *ProductRepository) List(ctx context.Context, activeOnly bool) ([]*product.Product, error) {
	db := conn(ctx, r.db).Order("id")
	if activeOnly {
		db = db.Where("active = ?", true)
	}

	var productPOs []po.ProductPO
	if err := db.Find(&productPOs).Error; err != nil {
		return nil, err
	}
	out := make([]*product.Product, len(productPOs))
	for i := range productPOs {
		out[i] = productPOs[i].ToDomain()
	}
	return out, nil
}

var _ product.Repository = (*ProductRepository)(nil)
