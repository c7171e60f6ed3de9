package product

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/product"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

// Service Product application service - catalogue browsing and staff product management
type Service struct {
	products product.Repository
	uow      shared.UnitOfWork
}

func NewService(products product.Repository, uow shared.UnitOfWork) *Service {
	return &Service{products: products, uow: uow}
}

// ProductRequest Create/update product request DTO
type ProductRequest struct {
	SKU         string `json:"sku" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	Currency    string `json:"currency"`
	Stock       int    `json:"stock" binding:"min=0"`
}

// AdjustStockRequest Stock correction; negative deltas remove units
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ProductResponse Product response DTO
type ProductResponse struct {
	ID          uint64    `json:"id"`
	SKU         string    `json:"sku"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	Stock       int       `json:"stock"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToResponse converts a product into its API shape.
func ToResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID(),
		SKU:         string(p.SKU()),
		Category:    p.SKU().Category(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price().Amount(),
		Currency:    p.Price().Currency(),
		Stock:       p.Stock(),
		Active:      p.IsActive(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func (r ProductRequest) details() product.Details {
	return product.Details{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Price:       shared.NewMoney(r.Price, r.Currency),
		Stock:       r.Stock,
	}
}

// List returns the catalogue; activeOnly hides deactivated products.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*ProductResponse, error) {
	products, err := s.products.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]*ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToResponse(p)
	}
	return out, nil
}

// Get returns a product; activeOnly turns deactivated products into not found.
func (s *Service) Get(ctx context.Context, id uint64, activeOnly bool) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activeOnly && !p.IsActive() {
		return nil, product.NewProductNotFoundError(id)
	}
	return ToResponse(p), nil
}

func (s *Service) GetBySKU(ctx context.Context, raw string) (*ProductResponse, error) {
	sku, err := product.ParseSKU(raw)
	if err != nil {
		return nil, err
	}
	p, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	return ToResponse(p), nil
}

func (s *Service) Create(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	p, err := product.NewProduct(req.details())
	if err != nil {
		return nil, err
	}
	if err := s.uow.Execute(ctx, func(ctx context.Context) error {
		return s.products.Save(ctx, p)
	}); err != nil {
		return nil, err
	}

	logger.Info("Product created", zap.Uint64("product_id", p.ID()), zap.String("sku", string(p.SKU())))
	return ToResponse(p), nil
}

// Update replaces the editable attributes, stock included.
func (s *Service) Update(ctx context.Context, id uint64, req ProductRequest) (*ProductResponse, error) {
	return s.modify(ctx, id, func(p *product.Product) error {
		return p.Update(req.details())
	})
}

// Delete deactivates the product; existing orders keep referring to it.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	_, err := s.modify(ctx, id, func(p *product.Product) error {
		p.Deactivate()
		return nil
	})
	return err
}

func (s *Service) AdjustStock(ctx context.Context, id uint64, req AdjustStockRequest) (*ProductResponse, error) {
	return s.modify(ctx, id, func(p *product.Product) error {
		return p.AdjustStock(req.Delta)
	})
}

func (s *Service) modify(ctx context.Context, id uint64, change func(p *product.Product) error) (*ProductResponse, error) {
	var p *product.Product
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		if p, err = s.products.FindByID(ctx, id); err != nil {
			return err
		}
		if err := change(p); err != nil {
			return err
		}
		return s.products.Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Product updated", zap.Uint64("product_id", id), zap.Int("stock", p.Stock()), zap.Bool("active", p.IsActive()))
	return ToResponse(p), nil
}
