package po

import (
	"time"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

// OrderPO Order persistence object
// Note: Only used for database mapping, does not contain any business logic
// Defining GORM associations is prohibited here
type OrderPO struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	CustomerID    uint64    `gorm:"index;not null"` // Only store ID, no association with Customer
	Status        string    `gorm:"size:20;not null;index"`
	TotalAmount   int64     `gorm:"not null"`
	TotalCurrency string    `gorm:"size:3;not null"`
	Version       int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO Order item persistence object
type OrderItemPO struct {
	ID               uint64 `gorm:"primaryKey;autoIncrement"`
	OrderID          uint64 `gorm:"index;not null"` // Only store ID, no GORM association
	ProductID        uint64 `gorm:"not null"`
	ProductName      string `gorm:"size:255;not null"`
	SKU              string `gorm:"column:sku;size:64;not null"`
	Quantity         int    `gorm:"not null"`
	UnitPrice        int64  `gorm:"not null"`
	UnitCurrency     string `gorm:"size:3;not null"`
	Subtotal         int64  `gorm:"not null"`
	SubtotalCurrency string `gorm:"size:3;not null"`
}

func (OrderItemPO) TableName() string {
	return "order_items"
}

// FromOrderDomain Convert domain model to persistence objects. Item rows carry
// the order id only when the order already has one.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	orderPO := &OrderPO{
		ID:            o.ID(),
		CustomerID:    o.CustomerID(),
		Status:        string(o.Status()),
		TotalAmount:   o.Total().Amount(),
		TotalCurrency: o.Total().Currency(),
		Version:       o.Version(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			OrderID:          o.ID(),
			ProductID:        item.ProductID(),
			ProductName:      item.ProductName(),
			SKU:              item.SKU(),
			Quantity:         item.Quantity(),
			UnitPrice:        item.UnitPrice().Amount(),
			UnitCurrency:     item.UnitPrice().Currency(),
			Subtotal:         item.Subtotal().Amount(),
			SubtotalCurrency: item.Subtotal().Currency(),
		}
	}

	return orderPO, itemPOs
}

// ToDomain Convert persistence object to domain model
func (po *OrderPO) ToDomain(itemPOs []OrderItemPO) *order.Order {
	items := make([]order.ItemReconstructionDTO, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.ItemReconstructionDTO{
			ProductID:   itemPO.ProductID,
			ProductName: itemPO.ProductName,
			SKU:         itemPO.SKU,
			Quantity:    itemPO.Quantity,
			UnitPrice:   shared.NewMoney(itemPO.UnitPrice, itemPO.UnitCurrency),
			Subtotal:    shared.NewMoney(itemPO.Subtotal, itemPO.SubtotalCurrency),
		}
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:         po.ID,
		CustomerID: po.CustomerID,
		Items:      items,
		Total:      shared.NewMoney(po.TotalAmount, po.TotalCurrency),
		Status:     order.Status(po.Status),
		Version:    po.Version,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
	})
}

// AllModels lists every persistence object for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&CustomerPO{},
		&EmployeePO{},
		&RolePO{},
		&RolePermissionPO{},
		&PermissionPO{},
		&ProductPO{},
		&OrderPO{},
		&OrderItemPO{},
		&WishlistEntryPO{},
	}
}
