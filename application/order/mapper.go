package order

import (
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

// ToResponse converts the aggregate into its API shape.
func ToResponse(o *order.Order) *OrderResponse {
	items := o.Items()
	itemResponses := make([]OrderItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = OrderItemResponse{
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			SKU:         item.SKU(),
			Quantity:    item.Quantity(),
			UnitPrice:   toMoneyResponse(item.UnitPrice()),
			Subtotal:    toMoneyResponse(item.Subtotal()),
		}
	}

	return &OrderResponse{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Items:      itemResponses,
		Total:      toMoneyResponse(o.Total()),
		Status:     string(o.Status()),
		Mutable:    o.IsMutable(),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	}
}

func toResponses(orders []*order.Order) []*OrderResponse {
	out := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToResponse(o)
	}
	return out
}

func toMoneyResponse(m shared.Money) MoneyResponse {
	return MoneyResponse{Amount: m.Amount(), Currency: m.Currency()}
}
