package product

import (
	"fmt"
	"strconv"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

var (
	ErrProductNotFound    = fmt.Errorf("product %w", shared.ErrNotFound)
	ErrSKUExists          = fmt.Errorf("sku already exists: %w", shared.ErrConflict)
	ErrInsufficientStock  = fmt.Errorf("insufficient stock: %w", shared.ErrInvalidState)
	ErrProductUnavailable = fmt.Errorf("product unavailable: %w", shared.ErrInvalidState)
)

func NewProductNotFoundError(id uint64) error {
	return shared.NewError(ErrProductNotFound, "product", "product not found: "+strconv.FormatUint(id, 10))
}
