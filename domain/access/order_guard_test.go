package access

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

type fakeOrders map[uint64]*order.Order

func (f fakeOrders) FindByID(_ context.Context, id uint64) (*order.Order, error) {
	if o, ok := f[id]; ok {
		return o, nil
	}
	return nil, order.NewOrderNotFoundError(id)
}

type brokenOrders struct{}

func (brokenOrders) FindByID(context.Context, uint64) (*order.Order, error) {
	return nil, errors.New("connection reset")
}

func newOrder(t *testing.T, id, customerID uint64, status order.Status) *order.Order {
	t.Helper()
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:         id,
		CustomerID: customerID,
		Items: []order.ItemReconstructionDTO{{
			ProductID: 1, ProductName: "Mug", SKU: "KIT-002", Quantity: 1,
			UnitPrice: shared.NewMoney(500, "SGD"), Subtotal: shared.NewMoney(500, "SGD"),
		}},
		Total:  shared.NewMoney(500, "SGD"),
		Status: status,
	})
}

func newTestGuard(t *testing.T) *OrderGuard {
	orders := fakeOrders{
		1: newOrder(t, 1, 100, order.StatusPending),
		2: newOrder(t, 2, 100, order.StatusPaid),
		3: newOrder(t, 3, 200, order.StatusPending),
	}
	return NewOrderGuard(orders, "/cart", []string{"/order/", "/api/orders/"}, "pay", "cancel")
}

func TestGuardMatch(t *testing.T) {
	g := newTestGuard(t)
	tests := []struct {
		path   string
		wantID string
		wantOK bool
	}{
		{"/order/5", "5", true},
		{"/order/5/", "5", true},
		{"/api/orders/12", "12", true},
		{"/order/abc", "abc", true},
		{"/order/5/pay", "", false},
		{"/order/5/cancel", "", false},
		{"/order/5/items", "", false},
		{"/order/", "", false},
		{"/orders/5", "", false},
		{"/api/orders", "", false},
		{"/employee/order/5", "", false},
	}
	for _, tt := range tests {
		id, ok := g.Match(tt.path)
		if id != tt.wantID || ok != tt.wantOK {
			t.Errorf("Match(%q) = (%q, %v), want (%q, %v)", tt.path, id, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestGuardCheck(t *testing.T) {
	g := newTestGuard(t)
	tests := []struct {
		name     string
		who      Identity
		method   string
		rawID    string
		allowed  bool
		location string
	}{
		{"owner reads pending", Customer(100), http.MethodGet, "1", true, ""},
		{"owner updates pending", Customer(100), http.MethodPost, "1", true, ""},
		{"owner reads paid", Customer(100), http.MethodGet, "2", true, ""},
		{"owner updates paid", Customer(100), http.MethodPut, "2", false, "/cart?error=Order+cannot+be+modified"},
		{"owner deletes paid", Customer(100), http.MethodDelete, "2", false, "/cart?error=Order+cannot+be+modified"},
		{"other customer reads", Customer(100), http.MethodGet, "3", false, "/cart?error=Access+denied"},
		{"other customer on paid order is denied before state check", Customer(200), http.MethodPost, "2", false, "/cart?error=Access+denied"},
		{"missing order", Customer(100), http.MethodGet, "999", false, "/cart?error=Order+not+found"},
		{"unparsable id", Customer(100), http.MethodGet, "abc", false, "/cart?error=Order+not+found"},
		{"zero id", Customer(100), http.MethodGet, "0", false, "/cart?error=Order+not+found"},
		{"no customer", Anonymous(), http.MethodGet, "1", false, "/cart?error=Access+denied"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := g.Check(context.Background(), tt.who, tt.method, tt.rawID)
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if res.Allowed != tt.allowed {
				t.Fatalf("allowed = %v, want %v (reason %q)", res.Allowed, tt.allowed, res.Reason)
			}
			if res.Location != tt.location {
				t.Errorf("location = %q, want %q", res.Location, tt.location)
			}
			if res.Allowed && res.Order == nil {
				t.Error("allowed result must carry the order")
			}
		})
	}
}

func TestGuardLookupFailure(t *testing.T) {
	g := NewOrderGuard(brokenOrders{}, "/cart", []string{"/order/"})
	if _, err := g.Check(context.Background(), Customer(1), http.MethodGet, "1"); err == nil {
		t.Fatal("expected infrastructure error to surface")
	}
}

func TestIsMutating(t *testing.T) {
	for method, want := range map[string]bool{
		http.MethodGet: false, http.MethodHead: false, http.MethodOptions: false,
		http.MethodPost: true, http.MethodPut: true, "patch": true, http.MethodDelete: true,
	} {
		if got := IsMutating(method); got != want {
			t.Errorf("IsMutating(%s) = %v, want %v", method, got, want)
		}
	}
}
