/*
Package customer models shop customers: the principals behind customer sessions
and the owners of orders and wishlists.
*/
package customer

import (
	"strings"
	"time"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

// Customer aggregate root. Fields are private; repositories rebuild it through ReconstructionDTO.
type Customer struct {
	id           uint64
	name         string
	email        shared.Email
	passwordHash string
	address      string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewCustomer validates and creates an unsaved customer; the repository assigns the id.
func NewCustomer(name, email, passwordHash, address string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("customer", "name", ErrInvalidName.Error())
	}
	emailVO, err := shared.NewEmail(email)
	if err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, shared.NewValidationError("customer", "password", "password hash is required")
	}

	now := time.Now()
	return &Customer{
		name:         name,
		email:        emailVO,
		passwordHash: passwordHash,
		address:      strings.TrimSpace(address),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructionDTO is for repository implementations only.
type ReconstructionDTO struct {
	ID           uint64
	Name         string
	Email        string
	PasswordHash string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func Rebuild(dto ReconstructionDTO) *Customer {
	email, _ := shared.NewEmail(dto.Email)
	return &Customer{
		id:           dto.ID,
		name:         dto.Name,
		email:        email,
		passwordHash: dto.PasswordHash,
		address:      dto.Address,
		createdAt:    dto.CreatedAt,
		updatedAt:    dto.UpdatedAt,
	}
}

// AssignID is called by repositories once the row has been inserted.
func (c *Customer) AssignID(id uint64) {
	if c.id == 0 {
		c.id = id
	}
}

func (c *Customer) UpdateProfile(name, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("customer", "name", ErrInvalidName.Error())
	}
	c.name = name
	c.address = strings.TrimSpace(address)
	c.updatedAt = time.Now()
	return nil
}

func (c *Customer) ID() uint64           { return c.id }
func (c *Customer) Name() string         { return c.name }
func (c *Customer) Email() string        { return c.email.Value() }
func (c *Customer) PasswordHash() string { return c.passwordHash }
func (c *Customer) Address() string      { return c.address }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time { return c.updatedAt }
