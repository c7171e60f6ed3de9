package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/mysql/po"
)

// OrderRepository MySQL/GORM implementation of order repository
// Association features are not used; items are written explicitly inside the aggregate transaction.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Save inserts or updates the order and rewrites its items.
// Updates are conditional on the version the order was loaded with.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order) error {
	orderPO, itemPOs := po.FromOrderDomain(o)
	expectedVersion := o.Version()

	if o.ID() == 0 {
		orderPO.Version = expectedVersion + 1
		if err := tx.Create(orderPO).Error; err != nil {
			return err
		}
	} else {
		result := tx.Model(&po.OrderPO{}).
			Where("id = ? AND version = ?", o.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"status":         orderPO.Status,
				"total_amount":   orderPO.TotalAmount,
				"total_currency": orderPO.TotalCurrency,
				"version":        expectedVersion + 1,
				"updated_at":     orderPO.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.OrderPO{}).Where("id = ?", o.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return order.NewOrderNotFoundError(o.ID())
			}
			return order.NewConcurrentModificationError(o.ID())
		}

		// Delete old order items (simple strategy: delete then insert)
		if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
			return err
		}
	}

	for i := range itemPOs {
		itemPOs[i].OrderID = orderPO.ID
	}
	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}

	o.AssignID(orderPO.ID)
	o.MarkSaved()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint64) (*order.Order, error) {
	db := conn(ctx, r.db)

	var orderPO po.OrderPO
	if err := db.First(&orderPO, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, err
	}

	// Manually query order items (do not use GORM's Preload to keep aggregate boundaries clear)
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", id).Order("id").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	return orderPO.ToDomain(itemPOs), nil
}

func (r *OrderRepository) FindByCustomerID(ctx context.Context, customerID uint64) ([]*order.Order, error) {
	db := conn(ctx, r.db)

	var orderPOs []po.OrderPO
	if err := db.Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	return r.withItems(db, orderPOs)
}

func (r *OrderRepository) Search(ctx context.Context, criteria order.SearchCriteria) ([]*order.Order, int64, error) {
	criteria = criteria.Normalize()
	db := conn(ctx, r.db)

	query := db.Model(&po.OrderPO{})
	if criteria.Status != "" {
		query = query.Where("status = ?", string(criteria.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderPOs []po.OrderPO
	if err := query.Order("created_at DESC, id DESC").
		Offset(criteria.Offset()).
		Limit(criteria.PageSize).
		Find(&orderPOs).Error; err != nil {
		return nil, 0, err
	}

	orders, err := r.withItems(db, orderPOs)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// withItems loads the items of all orders in one query.
func (r *OrderRepository) withItems(db *gorm.DB, orderPOs []po.OrderPO) ([]*order.Order, error) {
	if len(orderPOs) == 0 {
		return []*order.Order{}, nil
	}

	ids := make([]uint64, len(orderPOs))
	for i, op := range orderPOs {
		ids[i] = op.ID
	}
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id IN ?", ids).Order("id").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[uint64][]po.OrderItemPO, len(orderPOs))
	for _, it := range itemPOs {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		orders[i] = orderPOs[i].ToDomain(byOrder[orderPOs[i].ID])
	}
	return orders, nil
}

// Compile-time interface implementation check
var _ order.Repository = (*OrderRepository)(nil)
