package order

import "time"

// CreateOrderRequest lists the products to order; prices come from the catalogue.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateItemsRequest replaces every line of a pending order.
type UpdateItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type OrderItemRequest struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateOrderStatusRequest is the employee status change.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrdersQuery filters the employee order listing.
type ListOrdersQuery struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type OrderResponse struct {
	ID         uint64              `json:"id"`
	CustomerID uint64              `json:"customer_id"`
	Items      []OrderItemResponse `json:"items"`
	Total      MoneyResponse       `json:"total"`
	Status     string              `json:"status"`
	Mutable    bool                `json:"mutable"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

type OrderItemResponse struct {
	ProductID   uint64        `json:"product_id"`
	ProductName string        `json:"product_name"`
	SKU         string        `json:"sku"`
	Quantity    int           `json:"quantity"`
	UnitPrice   MoneyResponse `json:"unit_price"`
	Subtotal    MoneyResponse `json:"subtotal"`
}

type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// OrderPage is one page of the employee listing.
type OrderPage struct {
	Orders   []*OrderResponse `json:"orders"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}
