package po

import (
	"time"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/wishlist"
)

// WishlistEntryPO is keyed by (customer_id, product_id).
type WishlistEntryPO struct {
	CustomerID uint64    `gorm:"primaryKey"`
	ProductID  uint64    `gorm:"primaryKey"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (WishlistEntryPO) TableName() string {
	return "wishlist_entries"
}

func (po WishlistEntryPO) ToDomain() wishlist.Entry {
	return wishlist.Entry{CustomerID: po.CustomerID, ProductID: po.ProductID, CreatedAt: po.CreatedAt}
}
