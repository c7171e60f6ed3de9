package wishlist

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appproduct "github.com/Fubuki233/WebAppDev-Ca-sub001/application/product"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/product"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/wishlist"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

// Service Wishlist application service
type Service struct {
	entries  wishlist.Repository
	products product.Repository
}

func NewService(entries wishlist.Repository, products product.Repository) *Service {
	return &Service{entries: entries, products: products}
}

// ItemResponse is a wishlist entry with the current product details.
type ItemResponse struct {
	AddedAt time.Time                   `json:"added_at"`
	Product *appproduct.ProductResponse `json:"product"`
}

// List returns the customer's wishlist, newest first. Entries whose product
// has since been removed from the catalogue are left out.
func (s *Service) List(ctx context.Context, customerID uint64) ([]*ItemResponse, error) {
	entries, err := s.entries.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	out := make([]*ItemResponse, 0, len(entries))
	for _, e := range entries {
		p, err := s.products.FindByID(ctx, e.ProductID)
		if errors.Is(err, product.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, &ItemResponse{AddedAt: e.CreatedAt, Product: appproduct.ToResponse(p)})
	}
	return out, nil
}

// Add puts an active product on the wishlist. Adding it twice is a no-op.
func (s *Service) Add(ctx context.Context, customerID, productID uint64) error {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !p.IsActive() {
		return product.NewProductNotFoundError(productID)
	}
	if err := s.entries.Add(ctx, wishlist.NewEntry(customerID, productID)); err != nil {
		return err
	}

	logger.Debug("Wishlist entry added", zap.Uint64("customer_id", customerID), zap.Uint64("product_id", productID))
	return nil
}

// Remove reports whether the product was on the wishlist.
func (s *Service) Remove(ctx context.Context, customerID, productID uint64) (bool, error) {
	return s.entries.Remove(ctx, customerID, productID)
}
