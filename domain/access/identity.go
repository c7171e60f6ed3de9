/*
Package access decides whether a request may proceed.

The package is pure decision logic. Policy answers the static questions (does
this route bypass authentication, which permission node does it need, is it
employee-gated). Engine combines the policy with the session Identity and the
customer/employee lookups into a Decision. OrderGuard checks order-scoped
routes. Applying a Decision to an HTTP response is the caller's job.
*/
package access

import (
	"fmt"
)

// Kind discriminates the session principal.
type Kind int

const (
	KindAnonymous Kind = iota
	KindCustomer
	KindEmployee
)

func (k Kind) String() string {
	switch k {
	case KindCustomer:
		return "customer"
	case KindEmployee:
		return "employee"
	default:
		return "anonymous"
	}
}

// Identity is the principal held in a session: nobody, one customer, or one employee.
type Identity struct {
	kind Kind
	id   uint64
}

func Anonymous() Identity {
	return Identity{}
}

// Customer returns a customer identity; a zero id yields Anonymous.
func Customer(id uint64) Identity {
	if id == 0 {
		return Anonymous()
	}
	return Identity{kind: KindCustomer, id: id}
}

// Employee returns an employee identity; a zero id yields Anonymous.
func Employee(id uint64) Identity {
	if id == 0 {
		return Anonymous()
	}
	return Identity{kind: KindEmployee, id: id}
}

func (i Identity) Kind() Kind {
	return i.kind
}

func (i Identity) IsAnonymous() bool {
	return i.kind == KindAnonymous
}

func (i Identity) CustomerID() (uint64, bool) {
	return i.id, i.kind == KindCustomer
}

func (i Identity) EmployeeID() (uint64, bool) {
	return i.id, i.kind == KindEmployee
}

func (i Identity) String() string {
	if i.IsAnonymous() {
		return "anonymous"
	}
	return fmt.Sprintf("%s:%d", i.kind, i.id)
}
