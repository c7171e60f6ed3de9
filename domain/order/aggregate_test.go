package order

import (
	"errors"
	"testing"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

func sampleItems() []ItemRequest {
	return []ItemRequest{
		{ProductID: 1, ProductName: "Kettle", SKU: "KIT-001", Quantity: 2, UnitPrice: shared.NewMoney(1500, "SGD")},
		{ProductID: 2, ProductName: "Mug", SKU: "KIT-002", Quantity: 1, UnitPrice: shared.NewMoney(500, "SGD")},
	}
}

func TestNewOrder(t *testing.T) {
	o, err := NewOrder(10, sampleItems())
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}
	if o.Status() != StatusPending {
		t.Errorf("status = %s, want Pending", o.Status())
	}
	if o.Total().Amount() != 3500 {
		t.Errorf("total = %d, want 3500", o.Total().Amount())
	}
	if !o.IsOwnedBy(10) || o.IsOwnedBy(11) || o.IsOwnedBy(0) {
		t.Error("ownership check wrong")
	}

	if _, err := NewOrder(10, nil); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("empty items: err = %v", err)
	}
	bad := sampleItems()
	bad[0].Quantity = 0
	if _, err := NewOrder(10, bad); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("zero quantity: err = %v", err)
	}
	dup := append(sampleItems(), sampleItems()[0])
	if _, err := NewOrder(10, dup); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("duplicate product: err = %v", err)
	}
}

func TestLifecycle(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(o *Order) error
		act     func(o *Order) error
		want    Status
		wantErr error
	}{
		{"pay pending", nil, (*Order).Pay, StatusPaid, nil},
		{"cancel pending", nil, (*Order).Cancel, StatusCancelled, nil},
		{"cancel paid by customer", (*Order).Pay, (*Order).Cancel, StatusPaid, ErrInvalidTransition},
		{"pay twice", (*Order).Pay, (*Order).Pay, StatusPaid, ErrInvalidTransition},
		{"staff ships paid", (*Order).Pay, func(o *Order) error { return o.TransitionTo(StatusShipped) }, StatusShipped, nil},
		{"staff cannot ship pending", nil, func(o *Order) error { return o.TransitionTo(StatusShipped) }, StatusPending, ErrInvalidTransition},
		{"staff refunds paid", (*Order).Pay, func(o *Order) error { return o.TransitionTo(StatusCancelled) }, StatusCancelled, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOrder(1, sampleItems())
			if err != nil {
				t.Fatal(err)
			}
			if tt.setup != nil {
				if err := tt.setup(o); err != nil {
					t.Fatal(err)
				}
			}
			err = tt.act(o)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, shared.ErrInvalidState) {
					t.Fatalf("transition errors must classify as invalid state: %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if o.Status() != tt.want {
				t.Errorf("status = %s, want %s", o.Status(), tt.want)
			}
		})
	}
}

func TestReplaceItemsOnlyWhilePending(t *testing.T) {
	o, _ := NewOrder(1, sampleItems())
	replacement := []ItemRequest{{ProductID: 3, ProductName: "Pan", Quantity: 1, UnitPrice: shared.NewMoney(4200, "SGD")}}

	if err := o.ReplaceItems(replacement); err != nil {
		t.Fatalf("ReplaceItems on Pending: %v", err)
	}
	if len(o.Items()) != 1 || o.Total().Amount() != 4200 {
		t.Fatalf("items not replaced: %+v", o.Items())
	}

	_ = o.Pay()
	if err := o.ReplaceItems(sampleItems()); !errors.Is(err, ErrCannotModify) {
		t.Fatalf("ReplaceItems on Paid: err = %v, want ErrCannotModify", err)
	}
}

func TestParseStatus(t *testing.T) {
	if s, err := ParseStatus("shipped"); err != nil || s != StatusShipped {
		t.Fatalf("ParseStatus(shipped) = %s, %v", s, err)
	}
	if _, err := ParseStatus("lost"); !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("ParseStatus(lost) err = %v", err)
	}
}
