package mocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

func newTestOrder(t *testing.T, customerID uint64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(customerID, []order.ItemRequest{
		{ProductID: 1, ProductName: "Mug", SKU: "KIT-002", Quantity: 1, UnitPrice: shared.NewMoney(500, "SGD")},
	})
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestMockOrderRepositoryVersionCheck(t *testing.T) {
	ctx := context.Background()
	repo := NewMockOrderRepository()

	o := newTestOrder(t, 1)
	if err := repo.Save(ctx, o); err != nil {
		t.Fatal(err)
	}
	if o.ID() != 1 || o.Version() != 1 {
		t.Fatalf("id = %d, version = %d", o.ID(), o.Version())
	}

	a, _ := repo.FindByID(ctx, o.ID())
	b, _ := repo.FindByID(ctx, o.ID())
	if a == b {
		t.Fatal("FindByID must return independent copies")
	}

	_ = a.Pay()
	if err := repo.Save(ctx, a); err != nil {
		t.Fatal(err)
	}
	_ = b.Cancel()
	if err := repo.Save(ctx, b); !errors.Is(err, order.ErrConcurrentModification) {
		t.Fatalf("stale save: err = %v", err)
	}

	stored, _ := repo.FindByID(ctx, o.ID())
	if stored.Status() != order.StatusPaid {
		t.Errorf("status = %s, want Paid", stored.Status())
	}
}

func TestMockOrderRepositorySearch(t *testing.T) {
	ctx := context.Background()
	repo := NewMockOrderRepository()
	for i := 0; i < 5; i++ {
		o := newTestOrder(t, uint64(i%2+1))
		if i < 2 {
			_ = o.Pay()
		}
		_ = repo.Save(ctx, o)
		time.Sleep(time.Millisecond)
	}

	mine, _ := repo.FindByCustomerID(ctx, 1)
	if len(mine) != 3 {
		t.Fatalf("customer 1 has %d orders, want 3", len(mine))
	}
	if mine[0].ID() < mine[len(mine)-1].ID() {
		t.Error("orders not newest first")
	}

	page, total, _ := repo.Search(ctx, order.SearchCriteria{Page: 2, PageSize: 2})
	if total != 5 || len(page) != 2 {
		t.Errorf("page 2 = %d orders, total %d", len(page), total)
	}
	paid, total, _ := repo.Search(ctx, order.SearchCriteria{Status: order.StatusPaid})
	if total != 2 || len(paid) != 2 {
		t.Errorf("paid = %d, total %d", len(paid), total)
	}
}
