package auth

import (
	"time"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/customer"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
)

// RegisterRequest is the customer sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Address  string `json:"address"`
}

// LoginRequest is shared by customer and employee login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CustomerResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type EmployeeResponse struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	RoleID      uint64   `json:"role_id"`
	RoleName    string   `json:"role_name,omitempty"`
	Permissions []string `json:"permissions"`
}

func toCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID(),
		Name:      c.Name(),
		Email:     c.Email(),
		Address:   c.Address(),
		CreatedAt: c.CreatedAt(),
	}
}

func ToEmployeeResponse(p *employee.Profile) *EmployeeResponse {
	resp := &EmployeeResponse{
		ID:          p.Employee.ID(),
		Name:        p.Employee.Name(),
		Email:       p.Employee.Email(),
		RoleID:      p.Employee.RoleID(),
		Permissions: make([]string, 0, len(p.Permissions)),
	}
	if p.Role != nil {
		resp.RoleName = p.Role.Name()
	}
	for _, n := range p.Permissions.Sorted() {
		resp.Permissions = append(resp.Permissions, string(n))
	}
	return resp
}
