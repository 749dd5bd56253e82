package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/ivmish/teremok/internal/domain/errors"
	"github.com/ivmish/teremok/internal/domain/model"
	"github.com/ivmish/teremok/internal/test"
)

func TestOrderSubmitDelegatesToPendingQueue(t *testing.T) {
	pendings := &test.PendingRepositoryStub{}
	uc := NewOrderUseCase(pendings, &test.OrderRepositoryStub{})

	pending, err := uc.Submit(context.Background(), 10, "@guest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pending.UserID != 10 || pending.Handle != "@guest" {
		t.Fatalf("unexpected snapshot: %+v", pending)
	}
}

func TestOrderSubmitEmptyCart(t *testing.T) {
	pendings := &test.PendingRepositoryStub{
		CreateFn: func(context.Context, int64, string) (*model.PendingOrder, error) {
			return nil, domainErrors.ErrEmptyCart
		},
	}
	uc := NewOrderUseCase(pendings, &test.OrderRepositoryStub{})

	if _, err := uc.Submit(context.Background(), 10, "@guest"); !errors.Is(err, domainErrors.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestOrderApprovePromotesEveryLine(t *testing.T) {
	pendings := &test.PendingRepositoryStub{
		Pendings: []model.PendingOrder{{
			ID:     5,
			UserID: 10,
			Handle: "@guest",
			Lines: []model.PendingLine{
				{Item: "Кружка", Quantity: 2, UnitPrice: 30000, LineTotal: 60000},
				{Item: "Футболка", Quantity: 1, UnitPrice: 80000, LineTotal: 80000},
			},
			Total: 140000,
		}},
	}
	uc := NewOrderUseCase(pendings, &test.OrderRepositoryStub{})

	orders, err := uc.Approve(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected one ledger row per line, got %d", len(orders))
	}
	for _, o := range orders {
		if o.Status != model.OrderStatusProcessing {
			t.Fatalf("new ledger rows must start processing, got %s", o.Status)
		}
	}
}

func TestOrderApproveUnknownPending(t *testing.T) {
	uc := NewOrderUseCase(&test.PendingRepositoryStub{}, &test.OrderRepositoryStub{})

	if _, err := uc.Approve(context.Background(), 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderSetStatusRejectsUnknownValue(t *testing.T) {
	orders := &test.OrderRepositoryStub{Orders: []model.Order{{ID: 1, Status: model.OrderStatusProcessing}}}
	uc := NewOrderUseCase(&test.PendingRepositoryStub{}, orders)

	if _, err := uc.SetStatus(context.Background(), 1, "CANCELLED"); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if len(orders.StatusCalls) != 0 {
		t.Fatal("invalid status must never reach the repository")
	}
}

func TestOrderSetStatusForbidsLeavingTerminal(t *testing.T) {
	orders := &test.OrderRepositoryStub{Orders: []model.Order{{ID: 1, Status: model.OrderStatusDelivered}}}
	uc := NewOrderUseCase(&test.PendingRepositoryStub{}, orders)

	if _, err := uc.SetStatus(context.Background(), 1, model.OrderStatusShipped); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestOrderSetStatusTransitions(t *testing.T) {
	orders := &test.OrderRepositoryStub{Orders: []model.Order{{ID: 1, Status: model.OrderStatusProcessing}}}
	uc := NewOrderUseCase(&test.PendingRepositoryStub{}, orders)

	order, err := uc.SetStatus(context.Background(), 1, model.OrderStatusShipped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusShipped {
		t.Fatalf("unexpected status: %s", order.Status)
	}
}

func TestOrderDeleteWorksForAnyStatus(t *testing.T) {
	orders := &test.OrderRepositoryStub{Orders: []model.Order{{ID: 1, Status: model.OrderStatusDelivered}}}
	uc := NewOrderUseCase(&test.PendingRepositoryStub{}, orders)

	order, err := uc.Delete(context.Background(), 1)
	if err != nil {
		t.Fatalf("delete must ignore status: %v", err)
	}
	if order.ID != 1 {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestOrderRecentFiltersDelivered(t *testing.T) {
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{ID: 1, Status: model.OrderStatusProcessing},
		{ID: 2, Status: model.OrderStatusDelivered},
		{ID: 3, Status: model.OrderStatusRejected},
	}}
	uc := NewOrderUseCase(&test.PendingRepositoryStub{}, orders)

	filtered, err := uc.Recent(context.Background(), 10, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("delivered orders must be hidden by default, got %d", len(filtered))
	}

	all, err := uc.Recent(context.Background(), 10, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected full list, got %d", len(all))
	}
}
