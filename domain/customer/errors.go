package customer

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

var (
	ErrCustomerNotFound   = fmt.Errorf("customer %w", shared.ErrNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("email already exists: %w", shared.ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", shared.ErrUnauthenticated)
	ErrInvalidName        = errors.New("name cannot be empty")
)

func NewCustomerNotFoundError(id uint64) error {
	return shared.NewError(ErrCustomerNotFound, "customer", "customer not found: "+strconv.FormatUint(id, 10))
}

func NewEmailExistsError(email string) error {
	return shared.NewError(ErrEmailAlreadyExists, "customer", "email already exists: "+email)
}
