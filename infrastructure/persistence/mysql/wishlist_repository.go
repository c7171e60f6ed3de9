package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/wishlist"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/mysql/po"
)

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) Add(ctx context.Context, e wishlist.Entry) error {
	entryPO := &po.WishlistEntryPO{CustomerID: e.CustomerID, ProductID: e.ProductID, CreatedAt: e.CreatedAt}
	return conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(entryPO).Error
}

func (r *WishlistRepository) Remove(ctx context.Context, customerID, productID uint64) (bool, error) {
	result := conn(ctx, r.db).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&po.WishlistEntryPO{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *WishlistRepository) ListByCustomer(ctx context.Context, customerID uint64) ([]wishlist.Entry, error) {
	var entryPOs []po.WishlistEntryPO
	if err := conn(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&entryPOs).Error; err != nil {
		return nil, err
	}
	out := make([]wishlist.Entry, len(entryPOs))
	for i, e := range entryPOs {
		out[i] = e.ToDomain()
	}
	return out, nil
}

var _ wishlist.Repository = (*WishlistRepository)(nil)
