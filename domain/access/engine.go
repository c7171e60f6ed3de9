package access

import (
	"context"
	"fmt"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
)

// Outcome is the terminal state of one access decision.
type Outcome int

const (
	// OutcomeAllow hands the request to the next handler.
	OutcomeAllow Outcome = iota
	// OutcomeRedirect sends a page request to Decision.Location.
	OutcomeRedirect
	// OutcomeUnauthorized answers 401 with Decision.Body.
	OutcomeUnauthorized
	// OutcomeForbidden answers 403 with Decision.Body.
	OutcomeForbidden
	// OutcomeRespond answers 200 with Decision.Body without reaching the handler.
	OutcomeRespond
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAllow:
		return "allow"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeForbidden:
		return "forbidden"
	case OutcomeRespond:
		return "respond"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Body is the JSON payload of a denial. RedirectTo is only set for 401s.
type Body struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

const (
	MsgEmployeeLoginRequired = "Employee authentication required"
	MsgEmployeeNotFound      = "Employee account not found"
	MsgPermissionDenied      = "Permission denied"
	MsgLoginRequired         = "Please log in to continue"
	MsgSessionExpired        = "Session expired, please log in again"
	MsgAlreadyLoggedOut      = "Already logged out"
)

// Decision is what the caller applies to the response.
type Decision struct {
	Outcome  Outcome
	Body     Body
	Location string

	// InvalidateSession asks the caller to destroy the session before responding.
	InvalidateSession bool

	// Identity is the principal the request runs as when allowed.
	Identity Identity

	// Permission is the node that was checked, if any.
	Permission employee.Permission

	// Reason is a short log-friendly explanation.
	Reason string
}

func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}

// Request is the part of an HTTP request the engine looks at.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Identity Identity
}

// CustomerLookup confirms a session's customer still exists.
type CustomerLookup interface {
	CustomerExists(ctx context.Context, id uint64) (bool, error)
}

// EmployeeLookup loads the permission set of an employee.
// found is false when the employee no longer exists or is inactive.
type EmployeeLookup interface {
	EmployeePermissions(ctx context.Context, id uint64) (perms employee.PermissionSet, found bool, err error)
}

// Engine decides, per request, whether it may proceed.
type Engine struct {
	policy    *Policy
	customers CustomerLookup
	employees EmployeeLookup
}

func NewEngine(policy *Policy, customers CustomerLookup, employees EmployeeLookup) *Engine {
	return &Engine{policy: policy, customers: customers, employees: employees}
}

// Decide runs bypass, employee and customer checks in that order.
// An error means a lookup failed; no decision was reached.
func (e *Engine) Decide(ctx context.Context, req Request) (Decision, error) {
	if e.policy.Bypasses(req.Path, req.Method) {
		return Decision{Outcome: OutcomeAllow, Identity: req.Identity, Reason: "bypass"}, nil
	}
	if e.policy.IsEmployeeGated(req.Path) {
		return e.decideEmployee(ctx, req)
	}
	return e.decideCustomer(ctx, req)
}

func (e *Engine) decideEmployee(ctx context.Context, req Request) (Decision, error) {
	id, ok := req.Identity.EmployeeID()
	if !ok {
		return Decision{
			Outcome: OutcomeUnauthorized,
			Body:    Body{Message: MsgEmployeeLoginRequired},
			Reason:  "no employee in session",
		}, nil
	}

	perms, found, err := e.employees.EmployeePermissions(ctx, id)
	if err != nil {
		return Decision{}, fmt.Errorf("load employee %d permissions: %w", id, err)
	}
	if !found {
		return Decision{
			Outcome:           OutcomeForbidden,
			Body:              Body{Message: MsgEmployeeNotFound},
			InvalidateSession: true,
			Reason:            "employee no longer exists",
		}, nil
	}

	node, required := e.policy.RequiredPermission(req.Method, req.Path)
	if required && !perms.Has(node) {
		return Decision{
			Outcome:    OutcomeForbidden,
			Body:       Body{Message: fmt.Sprintf("%s: %s required", MsgPermissionDenied, node)},
			Identity:   req.Identity,
			Permission: node,
			Reason:     "missing permission",
		}, nil
	}

	return Decision{Outcome: OutcomeAllow, Identity: req.Identity, Permission: node, Reason: "employee"}, nil
}

func (e *Engine) decideCustomer(ctx context.Context, req Request) (Decision, error) {
	id, ok := req.Identity.CustomerID()
	if !ok {
		return e.unauthenticated(req, MsgLoginRequired, false), nil
	}

	exists, err := e.customers.CustomerExists(ctx, id)
	if err != nil {
		return Decision{}, fmt.Errorf("load customer %d: %w", id, err)
	}
	if !exists {
		return e.unauthenticated(req, MsgSessionExpired, true), nil
	}

	return Decision{Outcome: OutcomeAllow, Identity: req.Identity, Reason: "customer"}, nil
}

func (e *Engine) unauthenticated(req Request, message string, invalidate bool) Decision {
	if e.policy.IsLogout(req.Path) {
		return Decision{
			Outcome:           OutcomeRespond,
			Body:              Body{Message: MsgAlreadyLoggedOut},
			InvalidateSession: invalidate,
			Reason:            "logout without customer",
		}
	}

	location := e.policy.LoginRedirect(req.Path, req.RawQuery)
	if e.policy.IsAPI(req.Path) {
		return Decision{
			Outcome:           OutcomeUnauthorized,
			Body:              Body{Message: message, RedirectTo: location},
			InvalidateSession: invalidate,
			Reason:            "no customer in session",
		}
	}
	return Decision{
		Outcome:           OutcomeRedirect,
		Location:          location,
		InvalidateSession: invalidate,
		Reason:            "no customer in session",
	}
}
