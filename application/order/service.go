/*
Package order coordinates order use cases: placing orders against the
catalogue, changing pending orders, payment, cancellation and the staff
status workflow.

Every write runs inside the unit of work. Stock is reserved when items are
ordered and released when they are removed or the order is cancelled, in the
same transaction as the order itself.
*/
package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/product"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

// Service Order application service
type Service struct {
	orders   order.Repository
	products product.Repository
	uow      shared.UnitOfWork
}

func NewService(orders order.Repository, products product.Repository, uow shared.UnitOfWork) *Service {
	return &Service{orders: orders, products: products, uow: uow}
}

// CreateOrder prices the requested items from the catalogue, reserves stock and stores a Pending order.
func (s *Service) CreateOrder(ctx context.Context, customerID uint64, req CreateOrderRequest) (*OrderResponse, error) {
	var o *order.Order

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		requests, touched, err := s.reserve(ctx, nil, req.Items)
		if err != nil {
			return err
		}

		o, err = order.NewOrder(customerID, requests)
		if err != nil {
			return err
		}
		if err := s.saveProducts(ctx, touched); err != nil {
			return err
		}
		return s.orders.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order created",
		zap.Uint64("order_id", o.ID()),
		zap.Uint64("customer_id", customerID),
		zap.Int64("total", o.Total().Amount()),
	)
	return ToResponse(o), nil
}

// ListCustomerOrders returns the customer's orders, newest first.
func (s *Service) ListCustomerOrders(ctx context.Context, customerID uint64) ([]*OrderResponse, error) {
	orders, err := s.orders.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toResponses(orders), nil
}

// Cart returns the customer's pending orders.
func (s *Service) Cart(ctx context.Context, customerID uint64) ([]*OrderResponse, error) {
	orders, err := s.orders.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	pending := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o.IsMutable() {
			pending = append(pending, o)
		}
	}
	return toResponses(pending), nil
}

// GetOrder loads an order for its owner.
func (s *Service) GetOrder(ctx context.Context, customerID, orderID uint64) (*OrderResponse, error) {
	o, err := s.loadOwned(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	return ToResponse(o), nil
}

// UpdateItems replaces the lines of a pending order and moves stock by the difference.
func (s *Service) UpdateItems(ctx context.Context, customerID, orderID uint64, req UpdateItemsRequest) (*OrderResponse, error) {
	var o *order.Order

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.loadOwned(ctx, customerID, orderID)
		if err != nil {
			return err
		}
		if !o.IsMutable() {
			return order.NewCannotModifyError(o.ID(), o.Status())
		}

		requests, touched, err := s.reserve(ctx, o.Items(), req.Items)
		if err != nil {
			return err
		}
		if err := o.ReplaceItems(requests); err != nil {
			return err
		}
		if err := s.saveProducts(ctx, touched); err != nil {
			return err
		}
		return s.orders.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return ToResponse(o), nil
}

// Pay moves an owned order from Pending to Paid.
func (s *Service) Pay(ctx context.Context, customerID, orderID uint64) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(ctx context.Context) (*order.Order, error) {
		o, err := s.loadOwned(ctx, customerID, orderID)
		if err != nil {
			return nil, err
		}
		return o, o.Pay()
	})
}

// Cancel cancels an owned Pending order and returns its stock.
func (s *Service) Cancel(ctx context.Context, customerID, orderID uint64) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(ctx context.Context) (*order.Order, error) {
		o, err := s.loadOwned(ctx, customerID, orderID)
		if err != nil {
			return nil, err
		}
		if err := o.Cancel(); err != nil {
			return nil, err
		}
		return o, s.restock(ctx, o)
	})
}

// ListAll is the employee view over every order.
func (s *Service) ListAll(ctx context.Context, q ListOrdersQuery) (*OrderPage, error) {
	criteria := order.SearchCriteria{Page: q.Page, PageSize: q.PageSize}
	if q.Status != "" {
		status, err := order.ParseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		criteria.Status = status
	}
	criteria = criteria.Normalize()

	orders, total, err := s.orders.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return &OrderPage{
		Orders:   toResponses(orders),
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}, nil
}

// UpdateStatus applies an employee status change. Cancelling returns stock.
func (s *Service) UpdateStatus(ctx context.Context, orderID uint64, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, orderID, func(ctx context.Context) (*order.Order, error) {
		o, err := s.orders.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if err := o.TransitionTo(target); err != nil {
			return nil, err
		}
		if target == order.StatusCancelled {
			return o, s.restock(ctx, o)
		}
		return o, nil
	})
}

// transition loads, mutates and saves one order inside the unit of work.
func (s *Service) transition(ctx context.Context, orderID uint64, mutate func(ctx context.Context) (*order.Order, error)) (*OrderResponse, error) {
	var o *order.Order
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		if o, err = mutate(ctx); err != nil {
			return err
		}
		return s.orders.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order status changed",
		zap.Uint64("order_id", orderID),
		zap.String("status", string(o.Status())),
	)
	return ToResponse(o), nil
}

func (s *Service) loadOwned(ctx context.Context, customerID, orderID uint64) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(customerID) {
		return nil, order.NewNotOwnerError(orderID)
	}
	return o, nil
}

// reserve prices wanted from the catalogue and adjusts stock by the difference
// against current. Products are only modified in memory; the caller saves them.
func (s *Service) reserve(ctx context.Context, current []order.Item, wanted []OrderItemRequest) ([]order.ItemRequest, map[uint64]*product.Product, error) {
	delta := make(map[uint64]int, len(wanted)+len(current))
	for _, it := range current {
		delta[it.ProductID()] -= it.Quantity()
	}
	for _, it := range wanted {
		delta[it.ProductID] += it.Quantity
	}

	touched := make(map[uint64]*product.Product, len(delta))
	load := func(id uint64) (*product.Product, error) {
		if p, ok := touched[id]; ok {
			return p, nil
		}
		p, err := s.products.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		touched[id] = p
		return p, nil
	}

	requests := make([]order.ItemRequest, 0, len(wanted))
	for _, it := range wanted {
		p, err := load(it.ProductID)
		if err != nil {
			return nil, nil, err
		}
		requests = append(requests, order.ItemRequest{
			ProductID:   p.ID(),
			ProductName: p.Name(),
			SKU:         string(p.SKU()),
			Quantity:    it.Quantity,
			UnitPrice:   p.Price(),
		})
	}

	for id, d := range delta {
		if d == 0 {
			continue
		}
		p, err := load(id)
		if err != nil {
			return nil, nil, err
		}
		if d > 0 {
			if err := p.Reserve(d); err != nil {
				return nil, nil, err
			}
		} else {
			p.Release(-d)
		}
	}
	return requests, touched, nil
}

func (s *Service) restock(ctx context.Context, o *order.Order) error {
	for _, it := range o.Items() {
		p, err := s.products.FindByID(ctx, it.ProductID())
		if err != nil {
			return err
		}
		p.Release(it.Quantity())
		if err := s.products.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) saveProducts(ctx context.Context, products map[uint64]*product.Product) error {
	for _, p := range products {
		if err := s.products.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
