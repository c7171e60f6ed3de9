/*
Package product models the catalogue.
*/
package product

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

var skuRegex = regexp.MustCompile(`^[A-Z0-9]+(-[A-Z0-9]+)*$`)

// SKU is an upper-case stock keeping unit such as "KIT-KETTLE-01".
type SKU string

func ParseSKU(s string) (SKU, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !skuRegex.MatchString(s) {
		return "", shared.NewValidationError("product", "sku", "invalid sku: "+s)
	}
	return SKU(s), nil
}

// Segments splits the SKU on dashes; the first segment is the category code.
func (s SKU) Segments() []string {
	return strings.Split(string(s), "-")
}

func (s SKU) Category() string {
	return s.Segments()[0]
}

// Product catalogue entry
type Product struct {
	id          uint64
	sku         SKU
	name        string
	description string
	price       shared.Money
	stock       int
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

// Details are the editable attributes of a product.
type Details struct {
	SKU         string
	Name        string
	Description string
	Price       shared.Money
	Stock       int
}

func NewProduct(d Details) (*Product, error) {
	p := &Product{active: true, createdAt: time.Now()}
	if err := p.apply(d); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) apply(d Details) error {
	sku, err := ParseSKU(d.SKU)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewValidationError("product", "name", "name cannot be empty")
	}
	if d.Price.Amount() < 0 {
		return shared.NewValidationError("product", "price", "price must not be negative")
	}
	if d.Stock < 0 {
		return shared.NewValidationError("product", "stock", "stock must not be negative")
	}
	p.sku = sku
	p.name = name
	p.description = strings.TrimSpace(d.Description)
	p.price = d.Price
	p.stock = d.Stock
	p.updatedAt = time.Now()
	return nil
}

// Update replaces the editable attributes.
func (p *Product) Update(d Details) error {
	return p.apply(d)
}

// Deactivate hides the product from the storefront without deleting order history.
func (p *Product) Deactivate() {
	p.active = false
	p.updatedAt = time.Now()
}

// Reserve takes quantity units out of stock.
func (p *Product) Reserve(quantity int) error {
	if !p.active {
		return shared.NewError(ErrProductUnavailable, "product", "product "+string(p.sku)+" is no longer sold")
	}
	if quantity <= 0 {
		return shared.NewValidationError("product", "quantity", "quantity must be positive")
	}
	if p.stock < quantity {
		return shared.NewError(ErrInsufficientStock, "product", "insufficient stock for "+string(p.sku))
	}
	p.stock -= quantity
	p.updatedAt = time.Now()
	return nil
}

// Release returns quantity units to stock.
func (p *Product) Release(quantity int) {
	if quantity > 0 {
		p.stock += quantity
		p.updatedAt = time.Now()
	}
}

// AdjustStock applies a stock correction; the result may not go below zero.
func (p *Product) AdjustStock(delta int) error {
	if p.stock+delta < 0 {
		return shared.NewError(ErrInsufficientStock, "product",
			"cannot remove "+strconv.Itoa(-delta)+" units from "+string(p.sku)+", only "+strconv.Itoa(p.stock)+" left")
	}
	p.stock += delta
	p.updatedAt = time.Now()
	return nil
}

// ReconstructionDTO is for repository implementations only.
type ReconstructionDTO struct {
	ID          uint64
	SKU         string
	Name        string
	Description string
	Price       shared.Money
	Stock       int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func Rebuild(dto ReconstructionDTO) *Product {
	return &Product{
		id:          dto.ID,
		sku:         SKU(dto.SKU),
		name:        dto.Name,
		description: dto.Description,
		price:       dto.Price,
		stock:       dto.Stock,
		active:      dto.Active,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
	}
}

func (p *Product) AssignID(id uint64) {
	if p.id == 0 {
		p.id = id
	}
}

func (p *Product) ID() uint64           { return p.id }
func (p *Product) SKU() SKU             { return p.sku }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() shared.Money  { return p.price }
func (p *Product) Stock() int           { return p.stock }
func (p *Product) IsActive() bool       { return p.active }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
