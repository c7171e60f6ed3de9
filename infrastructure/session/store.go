/*
Package session keeps server-side sessions keyed by an opaque cookie value.

A session holds at most one principal. Stores refresh the expiry on every
read, so an active session never times out mid-visit.
*/
package session

import (
	"context"
	"errors"
	"time"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/access"
)

// ErrInvalidID is returned for empty session ids.
var ErrInvalidID = errors.New("session: invalid id")

// Data is what a session stores.
type Data struct {
	Kind        string    `json:"kind"`
	PrincipalID uint64    `json:"principal_id"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	kindCustomer = "customer"
	kindEmployee = "employee"
)

// DataFor converts an identity into storable session data.
func DataFor(id access.Identity) Data {
	d := Data{CreatedAt: time.Now()}
	if cid, ok := id.CustomerID(); ok {
		d.Kind, d.PrincipalID = kindCustomer, cid
	} else if eid, ok := id.EmployeeID(); ok {
		d.Kind, d.PrincipalID = kindEmployee, eid
	}
	return d
}

// Identity decodes the principal. Unknown kinds read as anonymous.
func (d Data) Identity() access.Identity {
	switch d.Kind {
	case kindCustomer:
		return access.Customer(d.PrincipalID)
	case kindEmployee:
		return access.Employee(d.PrincipalID)
	default:
		return access.Anonymous()
	}
}

// Store persists session data.
type Store interface {
	// Get returns the data and slides its expiry. found is false for unknown or expired ids.
	Get(ctx context.Context, id string) (data Data, found bool, err error)
	Save(ctx context.Context, id string, data Data) error
	Delete(ctx context.Context, id string) error
}
