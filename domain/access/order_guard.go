package access

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

// Messages carried in the cart redirect's error parameter.
const (
	GuardMsgNotFound     = "Order not found"
	GuardMsgAccessDenied = "Access denied"
	GuardMsgNotMutable   = "Order cannot be modified"
)

// OrderLookup is the slice of order.Repository the guard needs.
type OrderLookup interface {
	FindByID(ctx context.Context, id uint64) (*order.Order, error)
}

// GuardResult is the verdict for one order-scoped request.
// When Allowed is false Location holds the redirect target.
type GuardResult struct {
	Allowed  bool
	Order    *order.Order
	Location string
	Reason   string
}

// OrderGuard stops customers from touching orders that are not theirs
// and from mutating orders that have left the pending state.
type OrderGuard struct {
	orders   OrderLookup
	cartURL  string
	prefixes []string
	excluded map[string]struct{}
}

// NewOrderGuard guards "<prefix><id>" paths. Sub-paths named in excludedActions
// ("<prefix><id>/<action>") are left to their handlers.
func NewOrderGuard(orders OrderLookup, cartURL string, prefixes []string, excludedActions ...string) *OrderGuard {
	g := &OrderGuard{
		orders:   orders,
		cartURL:  cartURL,
		prefixes: append([]string(nil), prefixes...),
		excluded: make(map[string]struct{}, len(excludedActions)),
	}
	for _, a := range excludedActions {
		g.excluded[a] = struct{}{}
	}
	return g
}

// Match reports whether path addresses a single order and returns its raw id segment.
func (g *OrderGuard) Match(path string) (rawID string, ok bool) {
	for _, prefix := range g.prefixes {
		rest, found := strings.CutPrefix(path, prefix)
		if !found || rest == "" {
			continue
		}
		id, action, hasAction := strings.Cut(rest, "/")
		if id == "" {
			return "", false
		}
		if hasAction {
			if _, skip := g.excluded[action]; skip {
				return "", false
			}
			if action != "" {
				return "", false
			}
		}
		return id, true
	}
	return "", false
}

// Check validates the order named by rawID for the given customer.
// Only lookup failures other than "not found" are returned as errors.
func (g *OrderGuard) Check(ctx context.Context, who Identity, method, rawID string) (GuardResult, error) {
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		return g.deny(GuardMsgNotFound, "unparsable order id"), nil
	}

	o, err := g.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return g.deny(GuardMsgNotFound, "order does not exist"), nil
		}
		return GuardResult{}, err
	}

	customerID, ok := who.CustomerID()
	if !ok || !o.IsOwnedBy(customerID) {
		return g.deny(GuardMsgAccessDenied, "order owned by another customer"), nil
	}

	if IsMutating(method) && !o.IsMutable() {
		return g.deny(GuardMsgNotMutable, "order status is "+string(o.Status())), nil
	}

	return GuardResult{Allowed: true, Order: o}, nil
}

func (g *OrderGuard) deny(message, reason string) GuardResult {
	return GuardResult{
		Location: g.cartURL + "?error=" + url.QueryEscape(message),
		Reason:   reason,
	}
}

// IsMutating reports whether method changes server state.
func IsMutating(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
